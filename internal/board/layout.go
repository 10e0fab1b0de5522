package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLayout parses a FEN-like placement for a size×size board, followed
// by an optional side to move ("w" or "b", default White). Ranks are listed
// from row 0 down, separated by '/'; uppercase is White, lowercase Black,
// and digit runs (possibly multi-digit) are empty squares. All pieces get
// their base ability set.
//
//	ParseLayout(8, "3r4/8/8/8/8/8/8/3K4 b")
func ParseLayout(size int, layout string) (*State, error) {
	parts := strings.Fields(layout)
	if len(parts) == 0 || len(parts) > 2 {
		return nil, fmt.Errorf("%w: need placement and optional side, got %d fields", ErrInvalidLayout, len(parts))
	}

	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}

	if err := parsePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	s := NewState(b)
	if len(parts) == 2 {
		switch parts[1] {
		case "w":
			s.Turn = White
		case "b":
			s.Turn = Black
		default:
			return nil, fmt.Errorf("%w: side to move %q", ErrInvalidLayout, parts[1])
		}
	}
	return s, nil
}

// MustLayout is ParseLayout for literals known to be valid.
func MustLayout(size int, layout string) *State {
	s, err := ParseLayout(size, layout)
	if err != nil {
		panic(err)
	}
	return s
}

func parsePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != b.Size() {
		return fmt.Errorf("%w: expected %d ranks, got %d", ErrInvalidLayout, b.Size(), len(ranks))
	}

	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); {
			c := rank[i]
			if c >= '0' && c <= '9' {
				j := i
				for j < len(rank) && rank[j] >= '0' && rank[j] <= '9' {
					j++
				}
				n, _ := strconv.Atoi(rank[i:j])
				col += n
				i = j
				continue
			}

			pt := pieceTypeFromChar(c)
			if pt == NoPieceType {
				return fmt.Errorf("%w: bad piece %q in rank %d", ErrInvalidLayout, c, row)
			}
			if col >= b.Size() {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidLayout, row)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			b.Put(Sq(row, col), pt, color)
			col++
			i++
		}
		if col != b.Size() {
			return fmt.Errorf("%w: rank %d has %d squares, want %d", ErrInvalidLayout, row, col, b.Size())
		}
	}
	return nil
}

// Layout returns the placement and side to move in ParseLayout format.
// Ability sets are not represented.
func (s *State) Layout() string {
	var sb strings.Builder
	size := s.Size()
	for row := 0; row < size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < size; col++ {
			p := s.Board.At(Sq(row, col))
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	if s.Turn == Black {
		sb.WriteString(" b")
	} else {
		sb.WriteString(" w")
	}
	return sb.String()
}
