// Package command defines the chainmap CLI.
//
// It uses urfave/cli/v2. Global flags select the output format, logging
// and the hash function; their defaults come from the CLI config file
// (see package config).
//
//   - root.go: application, global flags, logger setup
//   - inspect.go: table statistics for a workload, optionally watched
//   - buckets.go: per-key bucket placement
//   - replay.go: step-by-step replay of a workload's ops
//   - repl.go: interactive shell
//   - version.go: build information
package command
