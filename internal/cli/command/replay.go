package command

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/internal/cli/output"
	"github.com/yndnr/chainmap-go/internal/telemetry/logger"
	"github.com/yndnr/chainmap-go/internal/telemetry/metric"
	"github.com/yndnr/chainmap-go/internal/workload"
	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

// ReplayResult is the replay output.
type ReplayResult struct {
	RunID string          `json:"run_id"`
	Name  string          `json:"name,omitempty"`
	Steps []workload.Step `json:"steps"`
	Final Summary         `json:"final"`
}

// ReplayCommand returns the replay command.
func ReplayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Apply a workload's ops one by one and show each step",
		Flags: []cli.Flag{
			fileFlag(true),
			noEnvFlag(),
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Stop at the first failing op",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print the collected metrics in Prometheus text format afterwards",
			},
		},
		Action: replay,
	}
}

func replay(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	w, err := loadWorkload(c, flags)
	if err != nil {
		return err
	}

	runID := ulid.Make().String()
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithRunID(logger.WithLogger(ctx, appLogger(c)), runID)
	log := logger.L(ctx)

	table := w.Name
	if table == "" {
		table = "workload"
	}
	reg := metric.NewRegistry(false)
	observer := hashmap.Observers(
		logger.RehashObserver(log, 0),
		reg.RehashObserver(table),
	)

	d, err := w.Build(hashmap.WithObserver[string](observer))
	if err != nil {
		return err
	}
	if err := reg.Register(metric.NewCollector(table, d, nil)); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}

	log.Info("replay started", "ops", len(w.Ops), "size", d.Size())
	r := workload.NewReplayer(d,
		workload.WithStrict(c.Bool("strict")),
		workload.WithRecorder(func(op, result string) {
			reg.RecordOperation(table, op, result)
		}),
	)
	steps, replayErr := r.Replay(ctx, w.Ops)
	log.Info("replay finished", "steps", len(steps), "size", d.Size(), "capacity", d.Capacity())

	result := ReplayResult{RunID: runID, Name: w.Name, Steps: steps, Final: summarize(w, d)}
	if flags.Output == output.FormatTable {
		if err := render(c, flags, steps); err != nil {
			return err
		}
	} else if err := render(c, flags, result); err != nil {
		return err
	}

	if c.Bool("metrics") {
		fmt.Fprintln(writer(c))
		if err := reg.WriteText(writer(c)); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return replayErr
}
