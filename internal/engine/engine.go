package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/hailam/chess2/internal/board"
)

// SearchInfo describes a finished search.
type SearchInfo struct {
	Depth      int
	Score      float64
	Nodes      uint64
	Time       time.Duration
	Move       board.Move
	Searched   int // root candidates scored before the deadline
	Candidates int // root candidates available
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Search depth in plies (minimum 1)
	MoveTime time.Duration // Time for this move (0 = no limit)
}

// Difficulty is the computer's playing strength, 1 (weakest) to 10.
type Difficulty int

const (
	MinDifficulty     Difficulty = 1
	MaxDifficulty     Difficulty = 10
	DefaultDifficulty Difficulty = 5
)

// Clamp returns d limited to MinDifficulty..MaxDifficulty.
func (d Difficulty) Clamp() Difficulty {
	return max(MinDifficulty, min(MaxDifficulty, d))
}

// depthTable maps difficulty to search depth.
var depthTable = [MaxDifficulty + 1]int{0, 1, 2, 2, 3, 3, 4, 4, 5, 5, 5}

// DepthFor returns the search depth for difficulty d.
func DepthFor(d Difficulty) int {
	return depthTable[d.Clamp()]
}

// LimitsFor returns the search limits for difficulty d.
func LimitsFor(d Difficulty) SearchLimits {
	return SearchLimits{Depth: DepthFor(d), MoveTime: TimeBudget(d)}
}

// Engine is the computer opponent.
type Engine struct {
	searcher *Searcher

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new engine.
func NewEngine() *Engine {
	return &Engine{searcher: NewSearcher()}
}

// ChooseMove picks a move for the side to move in s at difficulty d. It
// returns false if that side has no legal moves.
func (e *Engine) ChooseMove(s *board.State, d Difficulty) (board.Move, bool) {
	return e.SearchWithLimits(s, LimitsFor(d))
}

// SearchWithLimits picks a move for the side to move in s with specific
// search limits.
func (e *Engine) SearchWithLimits(s *board.State, limits SearchLimits) (board.Move, bool) {
	e.searcher.Reset()
	e.searcher.tm.Init(limits.MoveTime)

	depth := max(1, limits.Depth)
	res, ok := e.searcher.searchRoot(s, depth)
	if !ok {
		log.Printf("[AI] %s has no legal moves", s.Turn)
		return board.NoMove, false
	}

	info := SearchInfo{
		Depth:      depth,
		Score:      res.score,
		Nodes:      e.searcher.Nodes(),
		Time:       e.searcher.tm.Elapsed(),
		Move:       res.move,
		Searched:   res.searched,
		Candidates: res.candidates,
	}
	log.Printf("[AI] %s plays %s: depth=%d score=%s nodes=%d searched=%d/%d time=%v",
		s.Turn, res.move.Notation(s.Size()), info.Depth, ScoreToString(info.Score),
		info.Nodes, info.Searched, info.Candidates, info.Time.Round(time.Millisecond))

	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	return res.move, true
}

// Stop stops the current search. The search returns its best move so far.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// ScoreToString formats a score in pawns with an explicit sign.
func ScoreToString(score float64) string {
	return fmt.Sprintf("%+.2f", score)
}
