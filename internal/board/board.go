package board

import (
	"fmt"
	"strings"
)

// Board is a fixed-size square grid of cells, each holding a piece or nil.
// The size is set at construction and never changes.
type Board struct {
	size  int
	cells []*Piece
}

// NewBoard creates an empty size×size board.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrBoardSize, size, MinBoardSize, MaxBoardSize)
	}
	return &Board{size: size, cells: make([]*Piece, size*size)}, nil
}

// Size returns the number of rows (and columns).
func (b *Board) Size() int {
	return b.size
}

// InBounds returns true if sq lies on the board.
func (b *Board) InBounds(sq Square) bool {
	return sq.Row >= 0 && sq.Row < b.size && sq.Col >= 0 && sq.Col < b.size
}

// At returns the piece on sq, or nil if the square is empty or off-board.
func (b *Board) At(sq Square) *Piece {
	if !b.InBounds(sq) {
		return nil
	}
	return b.cells[sq.Row*b.size+sq.Col]
}

// IsEmpty returns true if sq is on the board and holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.InBounds(sq) && b.cells[sq.Row*b.size+sq.Col] == nil
}

// Set places p on sq (nil clears it).
func (b *Board) Set(sq Square, p *Piece) {
	b.cells[sq.Row*b.size+sq.Col] = p
}

// Put is a convenience for placing a fresh piece.
func (b *Board) Put(sq Square, pt PieceType, c Color) *Piece {
	p := NewPiece(pt, c)
	b.Set(sq, p)
	return p
}

// Clone returns a deep copy of the board; no piece is shared.
func (b *Board) Clone() *Board {
	nb := &Board{size: b.size, cells: make([]*Piece, len(b.cells))}
	for i, p := range b.cells {
		nb.cells[i] = p.Clone()
	}
	return nb
}

// Located pairs a piece with its square.
type Located struct {
	Square Square
	Piece  *Piece
}

// Find returns every piece matching pred in row-major order.
func (b *Board) Find(pred func(*Piece) bool) []Located {
	var out []Located
	for i, p := range b.cells {
		if p != nil && pred(p) {
			out = append(out, Located{Square{i / b.size, i % b.size}, p})
		}
	}
	return out
}

// Count returns the number of pieces of color c and type pt.
func (b *Board) Count(c Color, pt PieceType) int {
	n := 0
	for _, p := range b.cells {
		if p != nil && p.Color == c && p.Type() == pt {
			n++
		}
	}
	return n
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for row := 0; row < b.size; row++ {
		fmt.Fprintf(&sb, "%2d  ", b.size-row)
		for col := 0; col < b.size; col++ {
			p := b.At(Square{row, col})
			if p == nil {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n    ")
	for col := 0; col < b.size; col++ {
		sb.WriteByte(files[col])
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}
