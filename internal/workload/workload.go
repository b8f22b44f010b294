// Package workload describes a Dictionary dataset and replay script loaded
// from YAML.
package workload

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/yndnr/chainmap-go/internal/infra/confloader"
	"github.com/yndnr/chainmap-go/pkg/dictionary"
	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

// Hasher names.
const (
	HasherMurmur3 = "murmur3"
	HasherMapHash = "maphash"
)

// Op names.
const (
	OpInsert = "insert"
	OpSet    = "set"
	OpErase  = "erase"
	OpGet    = "get"
	OpUpdate = "update"
	OpClear  = "clear"
)

// ErrInvalidWorkload is returned by Validate.
var ErrInvalidWorkload = errors.New("invalid workload")

// Table configures the Dictionary a workload builds.
type Table struct {
	Capacity int    `koanf:"capacity" json:"capacity" yaml:"capacity"`
	Hasher   string `koanf:"hasher" json:"hasher" yaml:"hasher"`
	Seed     uint32 `koanf:"seed" json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Pair is one key/value entry.
type Pair struct {
	Key   string `koanf:"key" json:"key" yaml:"key"`
	Value string `koanf:"value" json:"value" yaml:"value"`
}

// Op is one replay step.
type Op struct {
	Op    string `koanf:"op" json:"op" yaml:"op"`
	Key   string `koanf:"key" json:"key,omitempty" yaml:"key,omitempty"`
	Value string `koanf:"value" json:"value,omitempty" yaml:"value,omitempty"`
	Pairs []Pair `koanf:"pairs" json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// Workload is the contents of a workload file.
type Workload struct {
	Name   string   `koanf:"name" json:"name,omitempty" yaml:"name,omitempty"`
	Table  Table    `koanf:"table" json:"table" yaml:"table"`
	Keys   []string `koanf:"keys" json:"keys,omitempty" yaml:"keys,omitempty"`
	Values []string `koanf:"values" json:"values,omitempty" yaml:"values,omitempty"`
	Pairs  []Pair   `koanf:"pairs" json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Ops    []Op     `koanf:"ops" json:"ops,omitempty" yaml:"ops,omitempty"`
}

// Defaults returns the values used for keys a workload file leaves out.
func Defaults() map[string]any {
	return map[string]any{
		"table.capacity": hashmap.DefaultCapacity,
		"table.hasher":   HasherMurmur3,
	}
}

// Source reads one workload file, again on every Load, so a watcher can
// pick up edits without building a new loader.
type Source struct {
	path   string
	loader *confloader.Loader
}

// NewSource returns a Source for path. Environment variables with the
// CHAINMAP_ prefix override file values.
func NewSource(path string, opts ...confloader.Option) *Source {
	return &Source{
		path: path,
		loader: confloader.NewLoader(append([]confloader.Option{
			confloader.WithFile(path),
			confloader.WithDefaults(Defaults()),
		}, opts...)...),
	}
}

// Path returns the workload file path.
func (s *Source) Path() string {
	return s.path
}

// Load reads and validates the file. Values read by earlier calls are
// discarded, so keys removed from the file fall back to their defaults.
func (s *Source) Load() (*Workload, error) {
	var w Workload
	if err := s.loader.Reload(&w); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Load reads a workload file once. See Source.Load.
func Load(path string, opts ...confloader.Option) (*Workload, error) {
	return NewSource(path, opts...).Load()
}

// Validate checks the table settings and every op.
func (w *Workload) Validate() error {
	if c := w.Table.Capacity; c < 0 || (c > 0 && bits.OnesCount(uint(c)) != 1) {
		return fmt.Errorf("%w: capacity %d is not a power of two", ErrInvalidWorkload, c)
	}
	if _, err := HasherOption(w.Table.Hasher, w.Table.Seed); err != nil {
		return err
	}
	if len(w.Keys) != len(w.Values) {
		return fmt.Errorf("%w: %d keys but %d values", ErrInvalidWorkload, len(w.Keys), len(w.Values))
	}
	for i, op := range w.Ops {
		switch strings.ToLower(op.Op) {
		case OpInsert, OpSet, OpErase, OpGet, OpClear:
		case OpUpdate:
			if len(op.Pairs) == 0 {
				return fmt.Errorf("%w: op %d: update needs pairs", ErrInvalidWorkload, i)
			}
		default:
			return fmt.Errorf("%w: op %d: unknown op %q", ErrInvalidWorkload, i, op.Op)
		}
	}
	return nil
}

// HasherOption maps a hasher name to a hashmap option. An empty name
// selects murmur3. The seed only applies to murmur3.
func HasherOption(name string, seed uint32) (hashmap.Option[string], error) {
	switch strings.ToLower(name) {
	case "", HasherMurmur3:
		return hashmap.WithHasher(hashmap.Murmur3WithSeed[string](seed)), nil
	case HasherMapHash:
		return hashmap.WithHasher(hashmap.MapHasher[string]()), nil
	default:
		return nil, fmt.Errorf("%w: unknown hasher %q", ErrInvalidWorkload, name)
	}
}

// Build creates a Dictionary from the table settings, the paired keys and
// values, and then the pairs. extra options are applied last.
func (w *Workload) Build(extra ...hashmap.Option[string]) (*dictionary.Dictionary, error) {
	hasher, err := HasherOption(w.Table.Hasher, w.Table.Seed)
	if err != nil {
		return nil, err
	}
	opts := []hashmap.Option[string]{hasher}
	if w.Table.Capacity > 0 {
		opts = append(opts, hashmap.WithCapacity[string](w.Table.Capacity))
	}
	opts = append(opts, extra...)

	d, err := dictionary.FromSlices(w.Keys, w.Values, opts...)
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	d.UpdatePairs(toPairs(w.Pairs)...)
	return d, nil
}

func toPairs(ps []Pair) []hashmap.Pair[string, string] {
	out := make([]hashmap.Pair[string, string], len(ps))
	for i, p := range ps {
		out[i] = hashmap.Pair[string, string]{Key: p.Key, Value: p.Value}
	}
	return out
}
