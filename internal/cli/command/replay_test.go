package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/yndnr/chainmap-go/internal/workload"
)

func TestReplay(t *testing.T) {
	path := writeWorkload(t, sampleWorkload)
	res := runApp(t, "", "-o", "json", "replay", "-f", path)
	if res.err != nil {
		t.Fatalf("replay error = %v", res.err)
	}

	var out ReplayResult
	if err := json.Unmarshal([]byte(res.stdout), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, res.stdout)
	}
	if len(out.RunID) != 26 {
		t.Errorf("RunID = %q, want a ULID", out.RunID)
	}
	if len(out.Steps) != 6 {
		t.Fatalf("got %d steps, want 6", len(out.Steps))
	}
	if out.Steps[3].Result != workload.ResultFailed {
		t.Errorf("erase of a missing key = %+v, want failure", out.Steps[3])
	}
	if out.Steps[4].Value != "10" {
		t.Errorf("get = %+v, want value 10", out.Steps[4])
	}
	if out.Final.Size != 0 || out.Final.Capacity != 16 {
		t.Errorf("final = %+v, want empty table with capacity 16", out.Final)
	}
}

func TestReplay_TableAndMetrics(t *testing.T) {
	path := writeWorkload(t, sampleWorkload)
	res := runApp(t, "", "replay", "-f", path, "--metrics")
	if res.err != nil {
		t.Fatalf("replay error = %v", res.err)
	}
	for _, want := range []string{
		"INDEX",
		"CM-KEY-4001",
		`chainmap_operations_total{op="erase",result="error",table="sample"} 1`,
		`chainmap_operations_total{op="erase",result="ok",table="sample"} 1`,
		`chainmap_table_size{table="sample"} 0`,
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("missing %q in:\n%s", want, res.stdout)
		}
	}
}

func TestReplay_Strict(t *testing.T) {
	path := writeWorkload(t, sampleWorkload)
	res := runApp(t, "", "-o", "json", "replay", "-f", path, "--strict")
	if res.err == nil || !strings.Contains(res.err.Error(), "op 3") {
		t.Errorf("error = %v, want failure at op 3", res.err)
	}
}

func TestReplay_RunIDLogged(t *testing.T) {
	path := writeWorkload(t, sampleWorkload)
	res := runApp(t, "", "-o", "json", "--log-level", "info", "--log-format", "json", "replay", "-f", path)
	if res.err != nil {
		t.Fatalf("replay error = %v", res.err)
	}

	var out ReplayResult
	if err := json.Unmarshal([]byte(res.stdout), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(res.stderr, `"run_id":"`+out.RunID+`"`) {
		t.Errorf("logs should carry the run id %s:\n%s", out.RunID, res.stderr)
	}
	if !strings.Contains(res.stderr, "replay step failed") {
		t.Errorf("failed step should be logged:\n%s", res.stderr)
	}
}
