// Package repl provides an interactive shell over a Dictionary.
//
// Each input line is a command name followed by arguments separated by
// whitespace. For set and insert, everything after the key is the value.
// Type "help" in the shell for the command list.
package repl
