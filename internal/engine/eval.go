// Package engine implements the computer opponent: a static evaluator and
// a deadline-bounded alpha-beta search over the board package's moves.
package engine

import (
	"log"

	"github.com/hailam/chess2/internal/board"
)

// Evaluation weights
const (
	levelBonus     = 0.25 // per applied upgrade
	shieldBonus    = 0.5  // piece standing on the active shield
	mobilityWeight = 0.04 // per legal move of difference
)

// Evaluate returns the static score of s, positive when it favours us.
func Evaluate(s *board.State, us board.Color) float64 {
	score := material(s, us)
	if m, ok := mobility(s, us); ok {
		score += m
	}
	return score
}

// material sums piece values, levels and the shield bonus.
func material(s *board.State, us board.Color) float64 {
	var score float64
	for _, loc := range s.Board.Find(func(*board.Piece) bool { return true }) {
		v := loc.Piece.Value() + levelBonus*float64(loc.Piece.Level())
		if s.IsShielded(loc.Square) {
			v += shieldBonus
		}
		if loc.Piece.Color == us {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// mobility returns the weighted move-count difference. A failure while
// generating moves is reported as ok=false so the caller keeps the
// material subtotal.
func mobility(s *board.State, us board.Color) (m float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EVAL] mobility skipped: %v", r)
			m, ok = 0, false
		}
	}()

	ours := len(board.AllMoves(s, us))
	theirs := len(board.AllMoves(s, us.Other()))
	return mobilityWeight * float64(ours-theirs), true
}
