package command

import (
	"github.com/urfave/cli/v2"
)

// BucketRow is one stored key and where it lives.
type BucketRow struct {
	Key        string `json:"key"`
	Value      string `json:"value" table:"-"`
	Bucket     int    `json:"bucket"`
	Slot       int    `json:"slot"`
	BucketSize int    `json:"bucket_size"`
}

// BucketLength is the length of one bucket.
type BucketLength struct {
	Bucket int `json:"bucket"`
	Length int `json:"length"`
}

// BucketsCommand returns the buckets command.
func BucketsCommand() *cli.Command {
	return &cli.Command{
		Name:  "buckets",
		Usage: "Show the bucket of every key in traversal order",
		Flags: []cli.Flag{
			fileFlag(true),
			noEnvFlag(),
			&cli.BoolFlag{
				Name:  "lengths",
				Usage: "Show the length of every bucket instead",
			},
			&cli.BoolFlag{
				Name:  "skip-empty",
				Usage: "With --lengths, leave out empty buckets",
			},
		},
		Action: buckets,
	}
}

func buckets(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	w, err := loadWorkload(c, flags)
	if err != nil {
		return err
	}
	d, err := w.Build()
	if err != nil {
		return err
	}

	if c.Bool("lengths") {
		var rows []BucketLength
		for i, n := range d.BucketLengths() {
			if n == 0 && c.Bool("skip-empty") {
				continue
			}
			rows = append(rows, BucketLength{Bucket: i, Length: n})
		}
		return render(c, flags, rows)
	}

	rows := make([]BucketRow, 0, d.Size())
	prev, slot := -1, 0
	for cur := d.Begin(); !cur.Done(); cur.Next() {
		k, v := cur.Pair()
		idx, err := d.BucketIndex(k)
		if err != nil {
			return err
		}
		size, err := d.BucketSize(k)
		if err != nil {
			return err
		}
		if idx != prev {
			prev, slot = idx, 0
		}
		rows = append(rows, BucketRow{Key: k, Value: v, Bucket: idx, Slot: slot, BucketSize: size})
		slot++
	}
	return render(c, flags, rows)
}
