package player

import (
	"checkers/game"
	"checkers/policy"
	"errors"
	"fmt"
)

var ErrInvalidColor = errors.New("invalid color")

// Player binds a color to a decision policy. It holds no board state.
type Player struct {
	color  game.Color
	policy policy.Policy
}

// New creates a new Player instance.
func New(c game.Color, p policy.Policy) (*Player, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColor, c)
	}
	if p == nil {
		return nil, errors.New("player needs a policy")
	}
	return &Player{color: c, policy: p}, nil
}

func (p *Player) Color() game.Color {
	return p.color
}

// Name is the name of the player's policy.
func (p *Player) Name() string {
	return p.policy.Name()
}

// DecideMove asks the policy for a move. False means no legal move exists.
func (p *Player) DecideMove(b *game.Board) (game.Move, bool) {
	return p.policy.Decide(b, p.color)
}

// LegalMoves lists the moves available to this player on b.
func (p *Player) LegalMoves(b *game.Board) []game.Move {
	return b.LegalMoves(p.color)
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s)", p.color, p.policy.Name())
}
