package player

import (
	"checkers/game"
	"checkers/policy"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedPolicy struct {
	move  game.Move
	calls []game.Color
}

func (f *fixedPolicy) Decide(b *game.Board, c game.Color) (game.Move, bool) {
	f.calls = append(f.calls, c)
	return f.move, true
}

func (f *fixedPolicy) Name() string {
	return "fixed"
}

func TestPlayer(t *testing.T) {
	t.Run("delegates to its policy with its color", func(t *testing.T) {
		fixed := &fixedPolicy{move: game.NewMove(5, 0, 4, 1)}
		p, err := New(game.White, fixed)
		require.NoError(t, err)

		m, ok := p.DecideMove(game.NewStandardBoard())
		require.True(t, ok)
		require.Equal(t, fixed.move, m, "Player should return the policy's move")
		require.Equal(t, []game.Color{game.White}, fixed.calls, "Policy should be asked for white")
		require.Equal(t, "white (fixed)", p.String())
	})

	t.Run("no move from an empty board", func(t *testing.T) {
		p, err := New(game.Black, policy.NewDefensive())
		require.NoError(t, err)
		_, ok := p.DecideMove(game.NewBoard())
		require.False(t, ok, "No pieces means no move")
		require.Empty(t, p.LegalMoves(game.NewBoard()))
	})

	t.Run("rejects invalid bindings", func(t *testing.T) {
		_, err := New(game.Color(5), policy.NewRandom())
		require.ErrorIs(t, err, ErrInvalidColor)
		_, err = New(game.Black, nil)
		require.Error(t, err, "A player needs a policy")
	})
}
