// Package board implements the upgrade-chess data model, move generation
// and state transitions on a configurable N×N board.
package board

import (
	"fmt"
	"strconv"
)

// Board size limits. Files are lettered a..z, which caps the size at 26.
const (
	MinBoardSize     = 6
	MaxBoardSize     = 26
	DefaultBoardSize = 10
)

const files = "abcdefghijklmnopqrstuvwxyz"

// Square is a zero-based (row, column) board coordinate. Row 0 is
// Black's back rank, row N-1 is White's.
type Square struct {
	Row, Col int
}

// NoSquare is the sentinel for "no square".
var NoSquare = Square{-1, -1}

// Sq is shorthand for Square{row, col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Add returns the square offset by (dr, dc).
func (sq Square) Add(dr, dc int) Square {
	return Square{sq.Row + dr, sq.Col + dc}
}

// Algebraic returns the display name of the square on a board of the given
// size: file letter by column, rank number size-row (e.g. "d1").
func (sq Square) Algebraic(size int) string {
	if sq.Col < 0 || sq.Col >= len(files) || sq.Row < 0 || sq.Row >= size {
		return "-"
	}
	return fmt.Sprintf("%c%d", files[sq.Col], size-sq.Row)
}

// String returns the raw coordinates, used in logs and test failures.
func (sq Square) String() string {
	return fmt.Sprintf("(%d,%d)", sq.Row, sq.Col)
}

// ParseSquare parses algebraic notation (e.g., "e4") for a board of the
// given size.
func ParseSquare(s string, size int) (Square, error) {
	if len(s) < 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	col := int(s[0] - 'a')
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	row := size - rank
	if col < 0 || col >= size || row < 0 || row >= size {
		return NoSquare, fmt.Errorf("invalid square %q for %dx%d board", s, size, size)
	}

	return Square{row, col}, nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(s string, size int) Square {
	sq, err := ParseSquare(s, size)
	if err != nil {
		panic(err)
	}
	return sq
}

// Chebyshev returns the king-move distance between two squares.
func Chebyshev(a, b Square) int {
	return max(abs(a.Row-b.Row), abs(a.Col-b.Col))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
