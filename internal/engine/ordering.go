package engine

import (
	"sort"

	"github.com/hailam/chess2/internal/board"
)

// victimValue is the material value of the piece on the destination, or -1
// for a move to an empty square.
func victimValue(s *board.State, m board.Move) float64 {
	if p := s.Board.At(m.To); p != nil {
		return p.Value()
	}
	return -1
}

// orderMoves sorts moves in place, most valuable victim first. The sort is
// stable so equal moves keep generation order.
func orderMoves(s *board.State, moves []board.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return victimValue(s, moves[i]) > victimValue(s, moves[j])
	})
}
