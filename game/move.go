package game

import "fmt"

// Move is a single ply. Moves are comparable: two moves are equal iff all fields match.
type Move struct {
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
	Capture bool
}

func NewMove(fromRow, fromCol, toRow, toCol int) Move {
	return Move{FromRow: fromRow, FromCol: fromCol, ToRow: toRow, ToCol: toCol}
}

func NewCapture(fromRow, fromCol, toRow, toCol int) Move {
	return Move{FromRow: fromRow, FromCol: fromCol, ToRow: toRow, ToCol: toCol, Capture: true}
}

// Captured returns the square jumped over. Only jumps capture, so this is always the midpoint.
func (m Move) Captured() (row, col int) {
	return (m.FromRow + m.ToRow) / 2, (m.FromCol + m.ToCol) / 2
}

// Advances reports whether the move heads toward c's promotion row.
func (m Move) Advances(c Color) bool {
	if c == Black {
		return m.ToRow > m.FromRow
	}
	return m.ToRow < m.FromRow
}

func (m Move) String() string {
	sep := "->"
	if m.Capture {
		sep = "x"
	}
	return fmt.Sprintf("(%d,%d)%s(%d,%d)", m.FromRow, m.FromCol, sep, m.ToRow, m.ToCol)
}
