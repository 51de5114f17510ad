package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPieceGeometry(t *testing.T) {
	t.Run("regular pieces move toward the opponent", func(t *testing.T) {
		for _, d := range NewPiece(Black).Directions() {
			require.Equal(t, 1, d.Row, "Black moves toward row 7")
		}
		for _, d := range NewPiece(White).Directions() {
			require.Equal(t, -1, d.Row, "White moves toward row 0")
		}
		require.Len(t, NewPiece(Black).Directions(), 2, "Regular pieces have two diagonals")
	})

	t.Run("kings use all diagonals regardless of color", func(t *testing.T) {
		require.ElementsMatch(t, Diagonals(), NewKing(Black).Directions())
		require.ElementsMatch(t, Diagonals(), NewKing(White).Directions())
	})

	t.Run("promotion is one-directional", func(t *testing.T) {
		require.Equal(t, NewKing(White), NewPiece(White).Promote(), "Regular piece should become a king")
		require.Equal(t, NewKing(White), NewKing(White).Promote(), "Promoting a king is a no-op")
	})
}

func TestColor(t *testing.T) {
	require.Equal(t, White, Black.Opponent())
	require.Equal(t, Black, White.Opponent())
	require.Equal(t, 7, Black.PromotionRow(), "Black is crowned on white's back rank")
	require.Equal(t, 0, White.PromotionRow(), "White is crowned on black's back rank")

	c, err := ParseColor("white")
	require.NoError(t, err)
	require.Equal(t, White, c)
	_, err = ParseColor("red")
	require.Error(t, err, "Only two colors exist")
}

func TestMove(t *testing.T) {
	m := NewCapture(2, 3, 4, 5)
	row, col := m.Captured()
	require.Equal(t, 3, row, "Captured square is the midpoint")
	require.Equal(t, 4, col, "Captured square is the midpoint")
	require.True(t, m.Advances(Black), "Increasing rows advance black")
	require.False(t, m.Advances(White), "Increasing rows retreat white")
	require.Equal(t, "(2,3)x(4,5)", m.String())
	require.Equal(t, "(5,0)->(4,1)", NewMove(5, 0, 4, 1).String())

	require.Equal(t, NewMove(1, 2, 3, 4), Move{FromRow: 1, FromCol: 2, ToRow: 3, ToCol: 4}, "Moves compare by value")
	require.NotEqual(t, NewMove(1, 2, 3, 4), NewCapture(1, 2, 3, 4), "Capture flag is part of equality")
}
