package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/chainmap-go/internal/cli/output"
	"github.com/yndnr/chainmap-go/internal/telemetry/logger"
	"github.com/yndnr/chainmap-go/pkg/dictionary"
)

// DefaultPrompt is printed before every line.
const DefaultPrompt = "chainmap> "

// REPL is a read-eval-print loop over one Dictionary.
type REPL struct {
	dict      *dictionary.Dictionary
	in        io.Reader
	out       io.Writer
	prompt    string
	formatter output.Formatter
	completer *Completer
	history   *History
	log       logger.Logger
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.in = in
		r.out = out
	}
}

// WithFormat sets the format used by stats and items.
func WithFormat(f output.Format) Option {
	return func(r *REPL) {
		r.formatter = output.NewFormatter(f)
	}
}

// WithHistory sets the command history.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithPrompt sets the prompt. An empty prompt prints nothing.
func WithPrompt(p string) Option {
	return func(r *REPL) {
		r.prompt = p
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) {
		r.log = l
	}
}

// New creates a REPL over d reading stdin and writing stdout.
func New(d *dictionary.Dictionary, opts ...Option) *REPL {
	r := &REPL{
		dict:      d,
		in:        os.Stdin,
		out:       os.Stdout,
		prompt:    DefaultPrompt,
		formatter: output.NewFormatter(output.FormatTable),
		completer: NewCompleter().WithKeys(d),
		history:   NewHistory(""),
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads and executes lines until exit, quit or end of input.
// Command errors are printed and the loop continues.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		r.log.Warn("load history failed", "error", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			r.log.Warn("save history failed", "error", err)
		}
	}()

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, r.prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		line = strings.TrimSpace(line)
		if line != "" {
			r.history.Add(line)
			if err := r.Execute(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
		}
		if eof {
			fmt.Fprintln(r.out)
			return nil
		}
	}
}

// Execute runs one command line against the Dictionary.
func (r *REPL) Execute(line string) error {
	name, args, err := parse(line)
	if err != nil || name == "" {
		return err
	}
	r.log.Debug("repl command", "command", name, "args", len(args))
	return commands[name].run(r, args)
}

// Complete returns command names starting with prefix.
func (r *REPL) Complete(prefix string) []string {
	return r.completer.Complete(prefix)
}

func (r *REPL) println(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *REPL) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
