package policy

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"math"
)

// Defensive minimizes the number of next-turn threats against its own pieces.
type Defensive struct {
	collector metrics.Collector
}

func NewDefensive(opts ...Option) *Defensive {
	o := newOptions(opts)
	return &Defensive{collector: o.collector}
}

func (d *Defensive) Name() string {
	return KindDefensive.String()
}

func (d *Defensive) Decide(b *game.Board, c game.Color) (game.Move, bool) {
	moves := b.LegalMoves(c)
	d.collector.AddCandidates(len(moves))
	if len(moves) == 0 {
		return game.Move{}, false
	}

	// Captures are mandatory, so when one exists this covers the whole legal set
	if m, ok := d.safest(b, c, moves, true); ok {
		return m, true
	}
	return d.safest(b, c, moves, false)
}

// safest returns the first move with the lowest resulting risk.
func (d *Defensive) safest(b *game.Board, c game.Color, moves []game.Move, capturesOnly bool) (game.Move, bool) {
	var best game.Move
	found := false
	minRisk := math.MaxInt
	for _, m := range moves {
		if capturesOnly && !m.Capture {
			continue
		}
		risk := Risk(simulate(b, m, d.collector), c)
		if risk < minRisk {
			best, minRisk, found = m, risk, true
		}
	}
	return best, found
}

// Risk sums, over every piece c owns, the opponent pieces that could jump it next turn:
// an opponent adjacent on a diagonal with the square beyond on the same diagonal empty.
func Risk(b *game.Board, c game.Color) int {
	risk := 0
	for _, sq := range b.Pieces(c) {
		risk += Threats(b, sq.Row, sq.Col, c)
	}
	return risk
}

// Threats counts the opponent pieces positioned to jump the c-owned piece on (row, col).
func Threats(b *game.Board, row, col int, c game.Color) int {
	threats := 0
	for _, d := range game.Diagonals() {
		oppRow, oppCol := row+d.Row, col+d.Col
		jumpRow, jumpCol := oppRow+d.Row, oppCol+d.Col
		if !game.InBounds(oppRow, oppCol) || !game.InBounds(jumpRow, jumpCol) {
			continue
		}
		opp, ok, _ := b.PieceAt(oppRow, oppCol)
		if !ok || opp.Color != c.Opponent() {
			continue
		}
		if _, occupied, _ := b.PieceAt(jumpRow, jumpCol); !occupied {
			threats++
		}
	}
	return threats
}
