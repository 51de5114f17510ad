package policy

import (
	"checkers/experiments/metrics"
	"checkers/game"
)

const (
	kingValue    = 3
	regularValue = 1
)

// Aggressive plays the most valuable capture, preferring advancing moves on ties.
type Aggressive struct {
	collector metrics.Collector
}

func NewAggressive(opts ...Option) *Aggressive {
	o := newOptions(opts)
	return &Aggressive{collector: o.collector}
}

func (a *Aggressive) Name() string {
	return KindAggressive.String()
}

func (a *Aggressive) Decide(b *game.Board, c game.Color) (game.Move, bool) {
	moves := b.LegalMoves(c)
	a.collector.AddCandidates(len(moves))
	if len(moves) == 0 {
		return game.Move{}, false
	}

	best := moves[0]
	bestValue := -1
	for _, m := range moves {
		value := CaptureValue(b, simulate(b, m, a.collector), c)
		switch {
		case value > bestValue:
			best, bestValue = m, value
		case value == bestValue && !best.Advances(c) && m.Advances(c):
			best = m
		}
	}
	return best, true
}

// CaptureValue is the opponent material removed between before and after:
// 3 for a king, 1 for a regular piece, 0 for a quiet move.
func CaptureValue(before, after *game.Board, c game.Color) int {
	return material(before, c.Opponent()) - material(after, c.Opponent())
}

func material(b *game.Board, c game.Color) int {
	total := 0
	for _, sq := range b.Pieces(c) {
		if sq.Piece.IsKing() {
			total += kingValue
		} else {
			total += regularValue
		}
	}
	return total
}
