package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const sampleWorkload = `
name: sample
table:
  capacity: 16
  hasher: murmur3
keys: [a, b, c]
values: ["1", "2", "3"]
pairs:
  - {key: x, value: "9"}
ops:
  - {op: insert, key: d, value: "4"}
  - {op: set, key: a, value: "10"}
  - {op: erase, key: b}
  - {op: erase, key: missing}
  - {op: get, key: a}
  - {op: clear}
`

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// writeWorkload writes content to a temp workload file.
func writeWorkload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// runApp runs the CLI with stdin and returns what it wrote. The user's
// home directory and config file are isolated.
func runApp(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	return runAppContext(context.Background(), t, stdin, &syncBuffer{}, args...)
}

func runAppContext(ctx context.Context, t *testing.T, stdin string, stdout *syncBuffer, args ...string) runResult {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = stdout
	stderr := &syncBuffer{}
	app.ErrWriter = stderr

	full := append([]string{"chainmap", "--config", filepath.Join(home, "config.yaml")}, args...)
	err := app.RunContext(ctx, full)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
