package hashmap

import "time"

// Option configures a Map at construction time.
type Option[K comparable] func(*options[K])

type options[K comparable] struct {
	capacity int
	hasher   Hasher[K]
	observer Observer
	absent   AbsentPolicy[K]
}

func buildOptions[K comparable](opts []Option[K]) options[K] {
	o := options[K]{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasher == nil {
		o.hasher = MapHasher[K]()
	}
	if o.absent == nil {
		o.absent = IgnoreAbsent[K]
	}
	return o
}

// WithCapacity sets the initial number of buckets.
// n must be a power of 2; any other value selects DefaultCapacity.
func WithCapacity[K comparable](n int) Option[K] {
	return func(o *options[K]) {
		if n <= 0 || n&(n-1) != 0 {
			n = DefaultCapacity
		}
		o.capacity = n
	}
}

// WithHasher sets the hash function used for bucket placement.
func WithHasher[K comparable](h Hasher[K]) Option[K] {
	return func(o *options[K]) {
		o.hasher = h
	}
}

// WithObserver registers an Observer notified after every rehash.
func WithObserver[K comparable](obs Observer) Option[K] {
	return func(o *options[K]) {
		o.observer = obs
	}
}

// WithAbsentPolicy sets the policy Remove applies to keys that are not stored.
func WithAbsentPolicy[K comparable](p AbsentPolicy[K]) Option[K] {
	return func(o *options[K]) {
		o.absent = p
	}
}

// AbsentPolicy decides what Remove reports for a key that is not stored.
// A nil return means the miss is not an error.
type AbsentPolicy[K comparable] func(key K) error

// IgnoreAbsent treats erasing a missing key as a plain miss.
func IgnoreAbsent[K comparable](K) error {
	return nil
}

// RejectAbsent reports ErrInvalidKey for a missing key.
func RejectAbsent[K comparable](key K) error {
	return ErrInvalidKey.WithDetails(keyDetails(key))
}

// RehashReason tells why a rehash happened.
type RehashReason string

const (
	ReasonGrow   RehashReason = "grow"
	ReasonShrink RehashReason = "shrink"
)

// RehashEvent describes one completed rehash.
type RehashEvent struct {
	From     int // capacity before
	To       int // capacity after
	Size     int // pairs moved
	Reason   RehashReason
	Duration time.Duration
}

// Observer receives rehash notifications. It runs synchronously inside the
// mutating call and must not modify the Map.
type Observer interface {
	OnRehash(e RehashEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e RehashEvent)

// OnRehash calls f(e).
func (f ObserverFunc) OnRehash(e RehashEvent) {
	f(e)
}

type multiObserver []Observer

func (m multiObserver) OnRehash(e RehashEvent) {
	for _, o := range m {
		o.OnRehash(e)
	}
}

// Observers combines several observers into one. Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}
