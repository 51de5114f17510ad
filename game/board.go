package game

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 8

// PiecesPerSide is the number of pieces each color starts with.
const PiecesPerSide = 12

// StateHash identifies a board position.
type StateHash uint64

const emptySymbol = '.'

type cell struct {
	piece    Piece
	occupied bool
}

// Square is an occupied cell.
type Square struct {
	Row, Col int
	Piece    Piece
}

// Board is the 8x8 grid. The zero value is an empty board.
// Pieces are stored by value so copying the grid copies every piece.
type Board struct {
	cells [Size][Size]cell
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns the opening layout: black on the dark squares of rows 0-2,
// white on the dark squares of rows 5-7.
func NewStandardBoard() *Board {
	b := NewBoard()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if (row+col)%2 != 1 {
				continue
			}
			switch {
			case row < 3:
				b.cells[row][col] = cell{piece: NewPiece(Black), occupied: true}
			case row >= Size-3:
				b.cells[row][col] = cell{piece: NewPiece(White), occupied: true}
			}
		}
	}
	return b
}

// FromFingerprint rebuilds a board from the encoding produced by Fingerprint.
func FromFingerprint(s string) (*Board, error) {
	if len(s) != Size*Size {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrBadLayout, Size*Size, len(s))
	}
	b := NewBoard()
	for i := 0; i < len(s); i++ {
		if s[i] == emptySymbol {
			continue
		}
		p, ok := pieceFromSymbol(s[i])
		if !ok {
			return nil, fmt.Errorf("%w: unknown symbol %q at cell %d", ErrBadLayout, s[i], i)
		}
		b.cells[i/Size][i%Size] = cell{piece: p, occupied: true}
	}
	return b, nil
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func checkBounds(row, col int) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	return nil
}

// PieceAt returns the occupant of (row, col), if any.
func (b *Board) PieceAt(row, col int) (Piece, bool, error) {
	if err := checkBounds(row, col); err != nil {
		return Piece{}, false, err
	}
	c := b.cells[row][col]
	return c.piece, c.occupied, nil
}

// Place puts p on (row, col), replacing any occupant.
func (b *Board) Place(row, col int, p Piece) error {
	if err := checkBounds(row, col); err != nil {
		return err
	}
	b.cells[row][col] = cell{piece: p, occupied: true}
	return nil
}

// Remove clears (row, col) and returns the previous occupant.
func (b *Board) Remove(row, col int) (Piece, bool, error) {
	if err := checkBounds(row, col); err != nil {
		return Piece{}, false, err
	}
	c := b.cells[row][col]
	b.cells[row][col] = cell{}
	return c.piece, c.occupied, nil
}

// at is the unchecked accessor for coordinates already known to be in bounds.
func (b *Board) at(row, col int) (Piece, bool) {
	c := b.cells[row][col]
	return c.piece, c.occupied
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// LegalMoves returns every legal move for c in row-major order of the moving piece.
// If any capture is available only captures are returned. The result is nil when c cannot move.
func (b *Board) LegalMoves(c Color) []Move {
	var steps, captures []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p, ok := b.at(row, col)
			if !ok || p.Color != c {
				continue
			}
			for _, m := range b.movesFrom(row, col, p) {
				if m.Capture {
					captures = append(captures, m)
				} else {
					steps = append(steps, m)
				}
			}
		}
	}
	if len(captures) > 0 {
		return captures
	}
	return steps
}

// MovesFrom returns the candidate moves of the piece on (row, col), without
// applying the forced-capture rule across the rest of its side.
func (b *Board) MovesFrom(row, col int) ([]Move, error) {
	p, ok, err := b.PieceAt(row, col)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return b.movesFrom(row, col, p), nil
}

func (b *Board) movesFrom(row, col int, p Piece) []Move {
	var moves []Move
	for _, d := range p.Directions() {
		if m, ok := b.step(row, col, d); ok {
			moves = append(moves, m)
		}
		if m, ok := b.jump(row, col, d, p.Color); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func (b *Board) step(row, col int, d Direction) (Move, bool) {
	toRow, toCol := row+d.Row, col+d.Col
	if !InBounds(toRow, toCol) {
		return Move{}, false
	}
	if _, occupied := b.at(toRow, toCol); occupied {
		return Move{}, false
	}
	return NewMove(row, col, toRow, toCol), true
}

func (b *Board) jump(row, col int, d Direction, mover Color) (Move, bool) {
	toRow, toCol := row+2*d.Row, col+2*d.Col
	if !InBounds(toRow, toCol) {
		return Move{}, false
	}
	if _, occupied := b.at(toRow, toCol); occupied {
		return Move{}, false
	}
	mid, occupied := b.at(row+d.Row, col+d.Col)
	if !occupied || mid.Color == mover {
		return Move{}, false
	}
	return NewCapture(row, col, toRow, toCol), true
}

// Execute applies m in place. Only bounds and the presence of a piece on the origin
// are checked: m must come from LegalMoves.
// A regular piece that lands on its promotion row is crowned.
func (b *Board) Execute(m Move) error {
	if err := checkBounds(m.FromRow, m.FromCol); err != nil {
		return err
	}
	if err := checkBounds(m.ToRow, m.ToCol); err != nil {
		return err
	}
	p, ok, _ := b.Remove(m.FromRow, m.FromCol)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", ErrEmptySquare, m.FromRow, m.FromCol)
	}
	if m.Capture {
		row, col := m.Captured()
		b.cells[row][col] = cell{}
	}
	b.cells[m.ToRow][m.ToCol] = cell{piece: p, occupied: true}

	landed, _ := b.at(m.ToRow, m.ToCol)
	if landed.Rank == Regular && m.ToRow == landed.Color.PromotionRow() {
		b.cells[m.ToRow][m.ToCol].piece = landed.Promote()
	}
	return nil
}

// Count returns the number of pieces c has on the board.
func (b *Board) Count(c Color) int {
	count := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p, ok := b.at(row, col); ok && p.Color == c {
				count++
			}
		}
	}
	return count
}

// Pieces lists c's pieces in row-major order.
func (b *Board) Pieces(c Color) []Square {
	var squares []Square
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p, ok := b.at(row, col); ok && p.Color == c {
				squares = append(squares, Square{Row: row, Col: col, Piece: p})
			}
		}
	}
	return squares
}

// Fingerprint encodes all 64 cells row by row, one symbol per cell.
func (b *Board) Fingerprint() string {
	var sb strings.Builder
	sb.Grow(Size * Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteByte(b.symbolAt(row, col))
		}
	}
	return sb.String()
}

// Hash returns the FNV-64a hash of the fingerprint.
func (b *Board) Hash() StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte(b.Fingerprint()))
	return StateHash(hasher.Sum64())
}

// Equal reports whether both boards hold the same pieces on the same squares.
func (b *Board) Equal(other *Board) bool {
	return b.cells == other.cells
}

func (b *Board) symbolAt(row, col int) byte {
	p, ok := b.at(row, col)
	if !ok {
		return emptySymbol
	}
	return p.Symbol()
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.symbolAt(row, col))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
