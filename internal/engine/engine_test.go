package engine

import (
	"testing"
	"time"

	"github.com/hailam/chess2/internal/board"
)

func TestDepthFor(t *testing.T) {
	want := map[Difficulty]int{1: 1, 2: 2, 3: 2, 4: 3, 5: 3, 6: 4, 7: 4, 8: 5, 9: 5, 10: 5, 0: 1, -3: 1, 42: 5}
	for d, depth := range want {
		if got := DepthFor(d); got != depth {
			t.Errorf("DepthFor(%d) = %d, want %d", d, got, depth)
		}
	}
}

func TestTimeBudget(t *testing.T) {
	tests := []struct {
		d    Difficulty
		want time.Duration
	}{
		{1, 420 * time.Millisecond},
		{5, 900 * time.Millisecond},
		{7, 1140 * time.Millisecond},
		{8, 1200 * time.Millisecond},
		{10, 1200 * time.Millisecond},
		{0, 420 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := TimeBudget(tt.d); got != tt.want {
			t.Errorf("TimeBudget(%d) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestSearchCapturesKing(t *testing.T) {
	s := board.MustLayout(8, "3k4/8/8/8/8/8/8/3K3r b")
	eng := NewEngine()

	move, ok := eng.SearchWithLimits(s, SearchLimits{Depth: 2})
	if !ok {
		t.Fatal("expected a move")
	}
	if got := move.Notation(8); got != "h1xd1" {
		t.Errorf("expected rook to take the king, got %s", got)
	}
}

func TestSearchTakesFreeRook(t *testing.T) {
	s := board.MustLayout(8, "k7/8/8/8/3r4/8/8/K2Q4 w")
	eng := NewEngine()

	move, ok := eng.SearchWithLimits(s, SearchLimits{Depth: 2})
	if !ok {
		t.Fatal("expected a move")
	}
	if move.From != board.MustSquare("d1", 8) || move.To != board.MustSquare("d4", 8) {
		t.Errorf("expected Qxd4, got %s", move.Notation(8))
	}
}

func TestSearchDeterministic(t *testing.T) {
	s, err := board.Initial(8)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine()
	limits := SearchLimits{Depth: 2, MoveTime: time.Hour}

	first, ok := eng.SearchWithLimits(s, limits)
	if !ok {
		t.Fatal("expected a move")
	}
	for i := 0; i < 3; i++ {
		m, _ := eng.SearchWithLimits(s, limits)
		if m != first {
			t.Fatalf("run %d chose %s, first run chose %s", i, m.Notation(8), first.Notation(8))
		}
	}
}

func TestSearchNoMoves(t *testing.T) {
	s := board.MustLayout(8, "8/8/8/8/8/8/8/K7 b")
	move, ok := NewEngine().ChooseMove(s, 5)
	if ok {
		t.Errorf("expected no move, got %s", move.Notation(8))
	}
	if !move.IsNone() {
		t.Error("expected NoMove")
	}
}

func TestSearchInfo(t *testing.T) {
	s, _ := board.Initial(8)
	eng := NewEngine()

	var info SearchInfo
	calls := 0
	eng.OnInfo = func(i SearchInfo) {
		info = i
		calls++
	}

	move, _ := eng.SearchWithLimits(s, SearchLimits{Depth: 1})
	if calls != 1 {
		t.Fatalf("OnInfo called %d times", calls)
	}
	if info.Depth != 1 || info.Candidates != 20 || info.Searched != 20 {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Move != move || info.Nodes == 0 {
		t.Errorf("info does not match result: %+v", info)
	}
}

func TestSearchRespectsDeadline(t *testing.T) {
	s, _ := board.Initial(10)
	eng := NewEngine()

	var info SearchInfo
	eng.OnInfo = func(i SearchInfo) { info = i }

	start := time.Now()
	_, ok := eng.SearchWithLimits(s, SearchLimits{Depth: 5, MoveTime: time.Nanosecond})
	if !ok {
		t.Fatal("expected best-so-far move")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("search ignored its deadline: %v", elapsed)
	}
	if info.Searched > info.Candidates || info.Searched == 0 {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestEvaluate(t *testing.T) {
	s, _ := board.Initial(10)
	if got := Evaluate(s, board.White); got != 0 {
		t.Errorf("initial position should be level, got %v", got)
	}

	s = board.MustLayout(8, "k7/8/8/8/8/8/8/KQ6 w")
	if got := material(s, board.White); got != 9 {
		t.Errorf("material = %v, want 9", got)
	}

	q := board.MustSquare("b1", 8)
	s.Board.At(q).Progress().Level = 2
	if got := material(s, board.White); got != 9.5 {
		t.Errorf("material with levels = %v, want 9.5", got)
	}

	s.Shield = &board.Shield{Square: q, Owner: board.White, ExpiresOn: board.White}
	if got := material(s, board.White); got != 10 {
		t.Errorf("material with shield = %v, want 10", got)
	}

	w, b := Evaluate(s, board.White), Evaluate(s, board.Black)
	if w != -b {
		t.Errorf("evaluation not antisymmetric: %v vs %v", w, b)
	}
	if w <= 10 {
		t.Errorf("queen side should also lead on mobility, got %v", w)
	}
}

func TestOrderMovesCapturesFirst(t *testing.T) {
	s := board.MustLayout(8, "8/8/1p1q4/8/2N5/8/8/8 w")
	moves := board.LegalMoves(s, board.MustSquare("c4", 8), nil)
	orderMoves(s, moves)

	if len(moves) != 8 {
		t.Fatalf("expected 8 knight moves, got %d", len(moves))
	}
	if got := moves[0].Notation(8); got != "c4xd6" {
		t.Errorf("expected queen capture first, got %s", got)
	}
	if got := moves[1].Notation(8); got != "c4xb6" {
		t.Errorf("expected pawn capture second, got %s", got)
	}
	for _, m := range moves[2:] {
		if m.Capture {
			t.Errorf("capture %s sorted after quiet moves", m.Notation(8))
		}
	}
}

func TestPickUpgrade(t *testing.T) {
	p := board.NewPiece(board.Pawn, board.White)
	if key, ok := PickUpgrade(p); !ok || key != board.UpgradePawnMimic {
		t.Errorf("pawn: got %s", key)
	}
	if err := board.ApplyUpgrade(p, board.UpgradePawnMimic); err != nil {
		t.Fatal(err)
	}
	if key, _ := PickUpgrade(p); key != board.UpgradePawnDiagonal {
		t.Errorf("pawn after mimic: got %s", key)
	}

	q := board.NewPiece(board.Queen, board.Black)
	if key, _ := PickUpgrade(q); key != board.UpgradeQueenKnight {
		t.Errorf("queen: got %s", key)
	}
	if err := board.ApplyUpgrade(q, board.UpgradeQueenKnight); err != nil {
		t.Fatal(err)
	}
	if key, _ := PickUpgrade(q); key != board.UpgradeQueenExtended {
		t.Errorf("queen with knight jump: got %s", key)
	}

	k := board.NewPiece(board.King, board.White)
	for _, key := range []board.UpgradeKey{board.UpgradeKingStep2, board.UpgradeKingKnight, board.UpgradeKingImmune} {
		if err := board.ApplyUpgrade(k, key); err != nil {
			t.Fatal(err)
		}
	}
	if key, ok := PickUpgrade(k); ok {
		t.Errorf("fully upgraded king offered %s", key)
	}
}
