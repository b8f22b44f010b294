package workload

import (
	"context"
	"fmt"
	"strings"

	"github.com/yndnr/chainmap-go/internal/telemetry/logger"
	"github.com/yndnr/chainmap-go/pkg/dictionary"
)

// Step results.
const (
	ResultOK     = "ok"
	ResultNoop   = "noop"
	ResultFailed = "error"
)

// Step is the outcome of one op.
type Step struct {
	Index    int    `json:"index" yaml:"index"`
	Op       string `json:"op" yaml:"op"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
	Result   string `json:"result" yaml:"result"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Size     int    `json:"size" yaml:"size"`
	Capacity int    `json:"capacity" yaml:"capacity"`
	Rehashes uint64 `json:"rehashes" yaml:"rehashes"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Recorder receives one call per step.
type Recorder func(op, result string)

// Replayer applies ops to a Dictionary.
type Replayer struct {
	dict   *dictionary.Dictionary
	strict bool
	record Recorder
}

// ReplayOption configures a Replayer.
type ReplayOption func(*Replayer)

// WithStrict stops the replay at the first failed step.
func WithStrict(strict bool) ReplayOption {
	return func(r *Replayer) {
		r.strict = strict
	}
}

// WithRecorder sets a callback invoked after every step.
func WithRecorder(rec Recorder) ReplayOption {
	return func(r *Replayer) {
		r.record = rec
	}
}

// NewReplayer creates a Replayer for d.
func NewReplayer(d *dictionary.Dictionary, opts ...ReplayOption) *Replayer {
	r := &Replayer{dict: d}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Replay applies ops in order and returns one Step per applied op. In
// strict mode it stops at the first failure and returns its error.
// A cancelled ctx stops the replay before the next op.
func (r *Replayer) Replay(ctx context.Context, ops []Op) ([]Step, error) {
	log := logger.L(ctx)
	steps := make([]Step, 0, len(ops))

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return steps, err
		}

		before := r.dict.Stats().Rehashes
		step, err := r.apply(op)
		step.Index = i
		step.Size = r.dict.Size()
		step.Capacity = r.dict.Capacity()
		step.Rehashes = r.dict.Stats().Rehashes - before
		steps = append(steps, step)

		if r.record != nil {
			r.record(step.Op, step.Result)
		}

		if err != nil {
			log.Warn("replay step failed", "index", i, "op", step.Op, "key", step.Key, "error", err)
			if r.strict {
				return steps, fmt.Errorf("op %d (%s %s): %w", i, step.Op, step.Key, err)
			}
			continue
		}
		log.Debug("replay step", "index", i, "op", step.Op, "key", step.Key,
			"value", step.Value, "size", step.Size, "capacity", step.Capacity)
	}
	return steps, nil
}

func (r *Replayer) apply(op Op) (Step, error) {
	name := strings.ToLower(op.Op)
	step := Step{Op: name, Key: op.Key, Result: ResultOK}

	fail := func(err error) (Step, error) {
		step.Result = ResultFailed
		step.Error = err.Error()
		return step, err
	}

	switch name {
	case OpInsert:
		if !r.dict.Insert(op.Key, op.Value) {
			step.Result = ResultNoop
		}
	case OpSet:
		*r.dict.Index(op.Key) = op.Value
	case OpErase:
		if err := r.dict.Erase(op.Key); err != nil {
			return fail(err)
		}
	case OpGet:
		v, err := r.dict.At(op.Key)
		if err != nil {
			return fail(err)
		}
		step.Value = v
	case OpUpdate:
		r.dict.UpdatePairs(toPairs(op.Pairs)...)
	case OpClear:
		r.dict.Clear()
	default:
		return fail(fmt.Errorf("%w: unknown op %q", ErrInvalidWorkload, op.Op))
	}
	return step, nil
}
