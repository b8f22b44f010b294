package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/internal/cli/repl"
	"github.com/yndnr/chainmap-go/internal/workload"
)

// REPLCommand returns the repl command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive shell over a dictionary",
		Flags: []cli.Flag{
			fileFlag(false),
			noEnvFlag(),
			&cli.StringFlag{
				Name:  "prompt",
				Usage: "Prompt printed before each line",
				Value: repl.DefaultPrompt,
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not read or write the history file",
			},
		},
		Action: runREPL,
	}
}

func runREPL(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}

	var w *workload.Workload
	if c.String("file") != "" {
		if w, err = loadWorkload(c, flags); err != nil {
			return err
		}
	} else {
		w = emptyWorkload(flags)
	}
	d, err := w.Build()
	if err != nil {
		return err
	}

	opts := []repl.Option{
		repl.WithFormat(flags.Output),
		repl.WithPrompt(c.String("prompt")),
		repl.WithLogger(appLogger(c)),
		repl.WithHistory(repl.NewHistory(historyFile(c))),
	}
	if c.App.Reader != nil {
		opts = append(opts, repl.WithIO(c.App.Reader, writer(c)))
	}
	return repl.New(d, opts...).Run()
}

func historyFile(c *cli.Context) string {
	hist := cliConfig(c).History
	if c.Bool("no-history") || hist.Disabled {
		return ""
	}
	if hist.File != "" {
		return hist.File
	}
	return repl.DefaultHistoryFile()
}
