package engine

import (
	"math"
	"sync/atomic"

	"github.com/hailam/chess2/internal/board"
)

// Infinity bounds the alpha-beta window.
var Infinity = math.Inf(1)

// Searcher performs the alpha-beta search for one fixed colour.
type Searcher struct {
	tm       *TimeManager
	us       board.Color
	nodes    atomic.Uint64
	stopFlag atomic.Bool
}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{tm: NewTimeManager()}
}

// Stop signals the search to stop. The best move found so far is kept.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes.Store(0)
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes.Load()
}

// IsStopped returns true if the search has been stopped or ran out of time.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load() || s.tm.Expired()
}

// rootResult is the outcome of a root search.
type rootResult struct {
	move       board.Move
	score      float64
	searched   int
	candidates int
}

// searchRoot scores every move of the side to move in st with a full
// window and keeps the first strictly best one. Once the deadline passes,
// the remaining candidates are skipped.
func (s *Searcher) searchRoot(st *board.State, depth int) (rootResult, bool) {
	s.us = st.Turn
	moves := board.AllMoves(st, s.us)
	if len(moves) == 0 {
		return rootResult{move: board.NoMove}, false
	}
	orderMoves(st, moves)

	res := rootResult{move: moves[0], score: -Infinity, candidates: len(moves)}
	found := false
	for _, m := range moves {
		score := s.minimax(board.ApplyMove(st, m), depth-1, -Infinity, Infinity, false)
		res.searched++
		if !found || score > res.score {
			res.move, res.score = m, score
			found = true
		}
		if s.IsStopped() {
			break
		}
	}
	return res, true
}

// minimax returns the score of st for the searching colour. maximizing is
// true when the searching colour is to move. Depth zero, an expired
// deadline, a captured king and a side without moves all end the branch
// with the static evaluation.
func (s *Searcher) minimax(st *board.State, depth int, alpha, beta float64, maximizing bool) float64 {
	s.nodes.Add(1)

	if depth <= 0 || st.GameOver() || s.IsStopped() {
		return Evaluate(st, s.us)
	}

	color := s.us
	if !maximizing {
		color = s.us.Other()
	}
	moves := board.AllMoves(st, color)
	if len(moves) == 0 {
		return Evaluate(st, s.us)
	}
	orderMoves(st, moves)

	if maximizing {
		best := -Infinity
		for _, m := range moves {
			val := s.minimax(board.ApplyMove(st, m), depth-1, alpha, beta, false)
			best = max(best, val)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := Infinity
	for _, m := range moves {
		val := s.minimax(board.ApplyMove(st, m), depth-1, alpha, beta, true)
		best = min(best, val)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
