// Package output renders command results as a table, JSON or YAML.
//
// Table output is built by reflection: a slice of structs becomes one row
// per element, a single struct or a map becomes a two-column listing.
// Column names come from json tags. A field tagged `table:"-"` is left out
// of tables but still appears in JSON and YAML.
//
// YAML output follows the json tags too, so every format shows the same
// field names in the same order.
package output
