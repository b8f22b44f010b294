package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestREPLCommand(t *testing.T) {
	res := runApp(t, "set a 1\nget a\nkeys\nexit\n", "repl", "--no-history")
	if res.err != nil {
		t.Fatalf("repl error = %v", res.err)
	}
	if !strings.Contains(res.stdout, `"1"`) {
		t.Errorf("get output missing:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "chainmap> ") {
		t.Errorf("prompt missing:\n%s", res.stdout)
	}
}

func TestREPLCommand_Prompt(t *testing.T) {
	res := runApp(t, "set a 1\n", "repl", "--no-history", "--prompt", "dict$ ")
	if res.err != nil {
		t.Fatalf("repl error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "dict$ ") || strings.Contains(res.stdout, "chainmap> ") {
		t.Errorf("prompt not applied:\n%s", res.stdout)
	}
}

func TestREPLCommand_Workload(t *testing.T) {
	path := writeWorkload(t, sampleWorkload)
	res := runApp(t, "has x\nat b\n", "repl", "--no-history", "-f", path)
	if res.err != nil {
		t.Fatalf("repl error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "true") || !strings.Contains(res.stdout, `"2"`) {
		t.Errorf("workload not loaded:\n%s", res.stdout)
	}
}

func TestREPLCommand_History(t *testing.T) {
	res := runApp(t, "set a 1\n", "repl")
	if res.err != nil {
		t.Fatalf("repl error = %v", res.err)
	}
	data, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), ".chainmap", "history"))
	if err != nil {
		t.Fatalf("history file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "set a 1" {
		t.Errorf("history = %q", data)
	}
}
