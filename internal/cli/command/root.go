package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/internal/cli/config"
	"github.com/yndnr/chainmap-go/internal/cli/output"
	"github.com/yndnr/chainmap-go/internal/infra/buildinfo"
	"github.com/yndnr/chainmap-go/internal/infra/confloader"
	"github.com/yndnr/chainmap-go/internal/telemetry/logger"
	"github.com/yndnr/chainmap-go/internal/workload"
	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

const (
	metaConfig = "config"
	metaLogger = "logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "chainmap",
		Usage:   "inspect and replay separate-chaining hash table workloads",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			InspectCommand(),
			BucketsCommand(),
			ReplayCommand(),
			REPLCommand(),
			VersionCommand(),
		},
		Before: before,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "CLI config file",
			EnvVars: []string{"CHAINMAP_CONFIG"},
			Value:   config.DefaultPath(),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "hasher",
			Usage: "Hash function: murmur3, maphash (overrides the workload file)",
		},
		&cli.UintFlag{
			Name:  "seed",
			Usage: "Seed for murmur3",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.BoolFlag{
			Name:  "log-values",
			Usage: "Include stored values in logs",
		},
	}
}

// GlobalFlags holds the global flags merged with the config file.
type GlobalFlags struct {
	Output    output.Format
	Hasher    string
	Seed      uint32
	LogLevel  string
	LogFormat string
	LogValues bool
}

// ParseGlobalFlags merges explicitly set flags over the config file.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	cfg := cliConfig(c)
	f := &GlobalFlags{
		Hasher:    cfg.Hasher,
		Seed:      cfg.Seed,
		LogLevel:  cfg.Log.Level,
		LogFormat: cfg.Log.Format,
		LogValues: cfg.Log.Values,
	}

	out := cfg.Output
	if c.IsSet("output") {
		out = c.String("output")
	}
	format, err := output.ParseFormat(out)
	if err != nil {
		return nil, err
	}
	f.Output = format

	if c.IsSet("hasher") {
		f.Hasher = c.String("hasher")
	}
	if c.IsSet("seed") {
		f.Seed = uint32(c.Uint("seed"))
	}
	if c.IsSet("log-level") {
		f.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		f.LogFormat = c.String("log-format")
	}
	if c.IsSet("log-values") {
		f.LogValues = c.Bool("log-values")
	}
	return f, nil
}

// before loads the config file and installs the logger.
func before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaConfig] = cfg

	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:      flags.LogLevel,
		Format:     flags.LogFormat,
		Output:     errWriter(c),
		ShowValues: flags.LogValues,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	c.App.Metadata[metaLogger] = log
	return nil
}

func cliConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func appLogger(c *cli.Context) logger.Logger {
	if l, ok := c.App.Metadata[metaLogger].(logger.Logger); ok {
		return l
	}
	return logger.Default()
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// render writes data in the selected output format.
func render(c *cli.Context, flags *GlobalFlags, data any) error {
	return output.NewFormatter(flags.Output).Format(writer(c), data)
}

// loadWorkload reads the --file workload and applies the global hasher
// flags on top of its table settings.
func loadWorkload(c *cli.Context, flags *GlobalFlags) (*workload.Workload, error) {
	src, err := workloadSource(c)
	if err != nil {
		return nil, err
	}
	return readWorkload(c, flags, src)
}

func workloadSource(c *cli.Context) (*workload.Source, error) {
	path := c.String("file")
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}
	var opts []confloader.Option
	if c.Bool("no-env") {
		opts = append(opts, confloader.WithEnvPrefix(""))
	}
	return workload.NewSource(path, opts...), nil
}

func readWorkload(c *cli.Context, flags *GlobalFlags, src *workload.Source) (*workload.Workload, error) {
	w, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("load workload: %w", err)
	}
	applyHasher(w, c, flags)
	return w, nil
}

func applyHasher(w *workload.Workload, c *cli.Context, flags *GlobalFlags) {
	if c.IsSet("hasher") {
		w.Table.Hasher = flags.Hasher
	}
	if c.IsSet("seed") {
		w.Table.Seed = flags.Seed
	}
}

// emptyWorkload describes an empty table using the global hasher settings.
func emptyWorkload(flags *GlobalFlags) *workload.Workload {
	return &workload.Workload{Table: workload.Table{
		Capacity: hashmap.DefaultCapacity,
		Hasher:   flags.Hasher,
		Seed:     flags.Seed,
	}}
}

// fileFlag is the --file flag shared by workload commands.
func fileFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Workload YAML file",
		Required: required,
	}
}

// noEnvFlag is the --no-env flag shared by workload commands.
func noEnvFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-env",
		Usage: "Ignore CHAINMAP_ environment overrides of workload values",
	}
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
