package game

import "fmt"

// Color identifies the side owning a piece.
type Color int

const (
	Black Color = iota // Starts on rows 0-2, moves toward row 7
	White              // Starts on rows 5-7, moves toward row 0
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// ParseColor accepts the names produced by Color.String.
func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "Black":
		return Black, nil
	case "white", "White":
		return White, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func (c Color) Valid() bool {
	return c == Black || c == White
}

func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// Forward is the row delta of a regular piece's step for this color.
func (c Color) Forward() int {
	if c == Black {
		return 1
	}
	return -1
}

// PromotionRow is the opponent's back rank, where this color's regular pieces are crowned.
func (c Color) PromotionRow() int {
	if c == Black {
		return Size - 1
	}
	return 0
}

// Rank distinguishes regular pieces from kings.
type Rank int

const (
	Regular Rank = iota
	King
)

func (r Rank) String() string {
	if r == King {
		return "king"
	}
	return "regular"
}

// Direction is a single diagonal step.
type Direction struct {
	Row, Col int
}

var (
	allDirections = []Direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

	// Regular pieces only move toward the opponent's back rank
	regularDirections = map[Color][]Direction{
		Black: {{1, -1}, {1, 1}},
		White: {{-1, -1}, {-1, 1}},
	}
)

// Diagonals returns all four diagonal directions.
func Diagonals() []Direction {
	return allDirections
}

// Piece is a value type: copying a Piece copies the piece.
type Piece struct {
	Color Color
	Rank  Rank
}

func NewPiece(c Color) Piece {
	return Piece{Color: c, Rank: Regular}
}

func NewKing(c Color) Piece {
	return Piece{Color: c, Rank: King}
}

func (p Piece) IsKing() bool {
	return p.Rank == King
}

// Directions returns the diagonals this piece may step or jump along.
func (p Piece) Directions() []Direction {
	if p.Rank == King {
		return allDirections
	}
	return regularDirections[p.Color]
}

// Promote crowns a regular piece. Kings are returned unchanged.
func (p Piece) Promote() Piece {
	return Piece{Color: p.Color, Rank: King}
}

// Symbol is the single-byte marker used in fingerprints and board dumps.
func (p Piece) Symbol() byte {
	switch {
	case p.Color == Black && p.Rank == King:
		return 'B'
	case p.Color == Black:
		return 'b'
	case p.Rank == King:
		return 'W'
	default:
		return 'w'
	}
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Rank.String()
}

// pieceFromSymbol is the inverse of Piece.Symbol.
func pieceFromSymbol(s byte) (Piece, bool) {
	switch s {
	case 'b':
		return NewPiece(Black), true
	case 'B':
		return NewKing(Black), true
	case 'w':
		return NewPiece(White), true
	case 'W':
		return NewKing(White), true
	}
	return Piece{}, false
}
