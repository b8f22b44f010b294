package repl

import (
	"strings"

	"github.com/yndnr/chainmap-go/pkg/dictionary"
)

// Completer suggests command names and, for commands taking a key, keys
// stored in a Dictionary.
type Completer struct {
	commands []string
	dict     *dictionary.Dictionary
}

// NewCompleter creates a Completer over the shell's commands.
func NewCompleter() *Completer {
	return &Completer{commands: commandNames()}
}

// WithKeys returns a copy of c that also completes keys of d.
func (c *Completer) WithKeys(d *dictionary.Dictionary) *Completer {
	return &Completer{commands: c.commands, dict: d}
}

// Complete returns suggestions for a partial line. A line without a space
// completes command names; "cmd prefix" completes keys for commands that
// take one.
func (c *Completer) Complete(line string) []string {
	name, prefix, found := strings.Cut(line, " ")
	if !found {
		var out []string
		for _, cmd := range c.commands {
			if strings.HasPrefix(cmd, line) {
				out = append(out, cmd)
			}
		}
		return out
	}

	cmd, ok := commands[strings.ToLower(name)]
	if !ok || cmd.minArgs == 0 || c.dict == nil || strings.ContainsAny(prefix, " \t") {
		return nil
	}
	var out []string
	for k := range c.dict.Keys() {
		if strings.HasPrefix(k, prefix) {
			out = append(out, name+" "+k)
		}
	}
	return out
}
