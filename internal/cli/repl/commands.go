package repl

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yndnr/chainmap-go/internal/cli/output"
)

// errQuit ends the loop.
var errQuit = errors.New("quit")

// command is one shell command.
type command struct {
	usage string
	help  string
	// minArgs is the minimum number of arguments; maxArgs < 0 means the
	// last argument takes the rest of the line.
	minArgs, maxArgs int
	run              func(r *REPL, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"set":     {"set <key> <value>", "store value under key, replacing any old value", 2, -1, cmdSet},
		"insert":  {"insert <key> <value>", "store value only if key is absent", 2, -1, cmdInsert},
		"get":     {"get <key>", "print the value for key or (nil)", 1, 1, cmdGet},
		"at":      {"at <key>", "print the value for key, failing if absent", 1, 1, cmdAt},
		"peek":    {"peek <key>", "print the value for key or an empty value", 1, 1, cmdPeek},
		"has":     {"has <key>", "report whether key is stored", 1, 1, cmdHas},
		"del":     {"del <key>", "remove key, failing if absent", 1, 1, cmdDel},
		"bucket":  {"bucket <key>", "print the bucket index and bucket size for key", 1, 1, cmdBucket},
		"stats":   {"stats", "print size, capacity and bucket statistics", 0, 0, cmdStats},
		"keys":    {"keys", "list keys in traversal order", 0, 0, cmdKeys},
		"items":   {"items", "list pairs in traversal order", 0, 0, cmdItems},
		"clear":   {"clear", "remove every pair, keeping the capacity", 0, 0, cmdClear},
		"history": {"history [n]", "show the last n commands", 0, 1, cmdHistory},
		"help":    {"help", "show this help", 0, 0, cmdHelp},
		"exit":    {"exit", "leave the shell", 0, 0, cmdExit},
		"quit":    {"quit", "leave the shell", 0, 0, cmdExit},
	}
}

// commandNames returns all command names sorted.
func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parse splits line into a command and its arguments.
func parse(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, nil
	}
	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown command %q (try help)", fields[0])
	}

	args := fields[1:]
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return "", nil, fmt.Errorf("usage: %s", cmd.usage)
	}
	if cmd.maxArgs < 0 {
		// The value keeps its inner spacing.
		args = append(args[:cmd.minArgs-1], skipFields(strings.TrimSpace(line), cmd.minArgs))
	}
	return name, args, nil
}

// skipFields drops the first n whitespace-separated fields of s.
func skipFields(s string, n int) string {
	for i := 0; i < n; i++ {
		s = strings.TrimLeft(s, " \t")
		j := strings.IndexAny(s, " \t")
		if j < 0 {
			return ""
		}
		s = s[j:]
	}
	return strings.TrimLeft(s, " \t")
}

func cmdSet(r *REPL, args []string) error {
	*r.dict.Index(args[0]) = args[1]
	r.println("OK")
	return nil
}

func cmdInsert(r *REPL, args []string) error {
	if r.dict.Insert(args[0], args[1]) {
		r.println("inserted")
	} else {
		r.println("exists")
	}
	return nil
}

func cmdGet(r *REPL, args []string) error {
	if v, ok := r.dict.Get(args[0]); ok {
		r.println(strconv.Quote(v))
	} else {
		r.println("(nil)")
	}
	return nil
}

func cmdAt(r *REPL, args []string) error {
	v, err := r.dict.At(args[0])
	if err != nil {
		return err
	}
	r.println(strconv.Quote(v))
	return nil
}

func cmdPeek(r *REPL, args []string) error {
	r.println(strconv.Quote(r.dict.Peek(args[0])))
	return nil
}

func cmdHas(r *REPL, args []string) error {
	r.println(strconv.FormatBool(r.dict.Contains(args[0])))
	return nil
}

func cmdDel(r *REPL, args []string) error {
	if err := r.dict.Erase(args[0]); err != nil {
		return err
	}
	r.println("OK")
	return nil
}

func cmdBucket(r *REPL, args []string) error {
	idx, err := r.dict.BucketIndex(args[0])
	if err != nil {
		return err
	}
	size, err := r.dict.BucketSize(args[0])
	if err != nil {
		return err
	}
	r.printf("bucket %d of %d, %d pair(s)\n", idx, r.dict.Capacity(), size)
	return nil
}

func cmdStats(r *REPL, _ []string) error {
	return r.formatter.Format(r.out, r.dict.Stats())
}

func cmdKeys(r *REPL, _ []string) error {
	for k := range r.dict.Keys() {
		r.println(k)
	}
	return nil
}

func cmdItems(r *REPL, _ []string) error {
	return r.formatter.Format(r.out, r.dict.Items())
}

func cmdClear(r *REPL, _ []string) error {
	r.dict.Clear()
	r.println("OK")
	return nil
}

func cmdHistory(r *REPL, args []string) error {
	n := r.history.Len()
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		n = min(v, n)
	}
	for i := n - 1; i >= 0; i-- {
		r.println(r.history.Get(i))
	}
	return nil
}

func cmdHelp(r *REPL, _ []string) error {
	t := &output.Table{}
	for _, name := range commandNames() {
		cmd := commands[name]
		t.AddRow(cmd.usage, cmd.help)
	}
	return t.RenderWithOptions(r.out, true)
}

func cmdExit(*REPL, []string) error {
	return errQuit
}
