package policy

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"errors"
	"fmt"
	"time"
)

// Policy picks one move for color c on board b. It returns false when c has no
// legal move, which callers treat as a skipped turn rather than an error.
// Implementations must not mutate b: candidates are evaluated on clones.
type Policy interface {
	Decide(b *game.Board, c game.Color) (game.Move, bool)
	Name() string
}

type Kind int

const (
	KindRandom Kind = iota
	KindAggressive
	KindDefensive
)

var ErrUnknownPolicy = errors.New("unknown policy")

var kindNames = map[Kind]string{
	KindRandom:     "random",
	KindAggressive: "aggressive",
	KindDefensive:  "defensive",
}

// Kinds lists every policy kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindRandom, KindAggressive, KindDefensive}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

type options struct {
	seed      uint64
	collector metrics.Collector
}

type Option func(o *options)

// WithSeed fixes the random source of the random policy.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithCollector reports candidates and evaluations of every decision to c.
func WithCollector(c metrics.Collector) Option {
	return func(o *options) {
		if c != nil {
			o.collector = c
		}
	}
}

func newOptions(opts []Option) options {
	o := options{ // Default values
		seed:      uint64(time.Now().UnixNano()),
		collector: metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns a fresh policy of the given kind. Policies hold no state shared
// with other instances, so each game should get its own.
func New(kind Kind, opts ...Option) (Policy, error) {
	switch kind {
	case KindRandom:
		return NewRandom(opts...), nil
	case KindAggressive:
		return NewAggressive(opts...), nil
	case KindDefensive:
		return NewDefensive(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, kind)
	}
}

// simulate applies m to a clone of b. Moves come from b.LegalMoves, so a failure is a bug.
func simulate(b *game.Board, m game.Move, c metrics.Collector) *game.Board {
	sim := b.Clone()
	if err := sim.Execute(m); err != nil {
		panic(fmt.Sprintf("legal move %v failed to execute: %v", m, err))
	}
	c.AddEvaluation()
	return sim
}
