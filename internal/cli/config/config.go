package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/chainmap-go/internal/infra/confloader"
)

// Config is the CLI defaults file.
type Config struct {
	Output  string     `koanf:"output" yaml:"output"`
	Hasher  string     `koanf:"hasher" yaml:"hasher"`
	Seed    uint32     `koanf:"seed" yaml:"seed,omitempty"`
	Log     LogConfig  `koanf:"log" yaml:"log"`
	History HistConfig `koanf:"history" yaml:"history"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
	Values bool   `koanf:"values" yaml:"values,omitempty"`
}

// HistConfig configures the REPL history.
type HistConfig struct {
	File     string `koanf:"file" yaml:"file,omitempty"`
	Disabled bool   `koanf:"disabled" yaml:"disabled,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Output: "table",
		Hasher: "murmur3",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"output":     d.Output,
		"hasher":     d.Hasher,
		"log.level":  d.Log.Level,
		"log.format": d.Log.Format,
	}
}

// DefaultPath returns ~/.chainmap/config.yaml, or "" without a home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chainmap", "config.yaml")
}

// Load reads the defaults file at path, falling back to the built-in
// defaults when the file does not exist.
func Load(path string) (*Config, error) {
	opts := []confloader.Option{confloader.WithDefaults(defaultsMap())}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			opts = append(opts, confloader.WithFile(path))
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	var cfg Config
	if err := confloader.NewLoader(opts...).Load(&cfg); err != nil {
		return nil, fmt.Errorf("load cli config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode cli config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
