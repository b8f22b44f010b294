package command

import (
	"encoding/json"
	"testing"

	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

func TestBuckets(t *testing.T) {
	path := writeWorkload(t, sampleWorkload)
	res := runApp(t, "", "-o", "json", "buckets", "-f", path)
	if res.err != nil {
		t.Fatalf("buckets error = %v", res.err)
	}

	var rows []BucketRow
	if err := json.Unmarshal([]byte(res.stdout), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, res.stdout)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	h := hashmap.Murmur3[string]()
	prev := -1
	for _, r := range rows {
		if want := int(h.Hash(r.Key) & 15); r.Bucket != want {
			t.Errorf("key %q in bucket %d, want %d", r.Key, r.Bucket, want)
		}
		if r.Bucket < prev {
			t.Errorf("rows not in traversal order: %v", rows)
		}
		if r.Slot >= r.BucketSize {
			t.Errorf("slot %d outside bucket of size %d", r.Slot, r.BucketSize)
		}
		prev = r.Bucket
	}
}

func TestBuckets_Lengths(t *testing.T) {
	path := writeWorkload(t, sampleWorkload)
	res := runApp(t, "", "-o", "json", "buckets", "-f", path, "--lengths")
	if res.err != nil {
		t.Fatalf("buckets error = %v", res.err)
	}
	var all []BucketLength
	if err := json.Unmarshal([]byte(res.stdout), &all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(all) != 16 {
		t.Errorf("got %d buckets, want 16", len(all))
	}

	res = runApp(t, "", "-o", "json", "buckets", "-f", path, "--lengths", "--skip-empty")
	if res.err != nil {
		t.Fatalf("buckets error = %v", res.err)
	}
	var used []BucketLength
	if err := json.Unmarshal([]byte(res.stdout), &used); err != nil {
		t.Fatalf("decode: %v", err)
	}
	total := 0
	for _, b := range used {
		if b.Length == 0 {
			t.Errorf("empty bucket %d listed", b.Bucket)
		}
		total += b.Length
	}
	if total != 4 {
		t.Errorf("lengths add up to %d, want 4", total)
	}
}
