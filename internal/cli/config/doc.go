// Package config holds the chainmap CLI defaults file.
//
// The file lives at ~/.chainmap/config.yaml unless --config names another.
// Its values apply to global flags not given on the command line, and
// CHAINMAP_ environment variables override the file.
package config
