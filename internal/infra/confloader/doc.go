// Package confloader loads workload and tool configuration.
//
// Values are merged from several sources using koanf, later sources
// overriding earlier ones:
//
//  1. Defaults registered with WithDefaults
//  2. The YAML file given with WithFile
//  3. Environment variables carrying the loader's prefix
//
// Environment keys map onto nested keys by lower-casing and replacing
// underscores with dots: CHAINMAP_TABLE_CAPACITY sets table.capacity.
//
// A Watcher reports writes to a single file so callers can reload it.
package confloader
