package policy

import (
	"checkers/experiments/metrics"
	"checkers/game"

	"golang.org/x/exp/rand"
)

// Random draws uniformly from the legal moves. Its source is not safe for
// concurrent use: give each game its own instance.
type Random struct {
	rng       *rand.Rand
	collector metrics.Collector
}

func NewRandom(opts ...Option) *Random {
	o := newOptions(opts)
	return &Random{
		rng:       rand.New(rand.NewSource(o.seed)),
		collector: o.collector,
	}
}

func (r *Random) Name() string {
	return KindRandom.String()
}

func (r *Random) Decide(b *game.Board, c game.Color) (game.Move, bool) {
	moves := b.LegalMoves(c)
	r.collector.AddCandidates(len(moves))
	if len(moves) == 0 {
		return game.Move{}, false
	}
	return moves[r.rng.Intn(len(moves))], true
}
