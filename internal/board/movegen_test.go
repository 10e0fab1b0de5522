package board

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// destinations returns the sorted algebraic destinations of the piece on sq.
func destinations(s *State, sq string) []string {
	from := MustSquare(sq, s.Size())
	var out []string
	for _, m := range LegalMoves(s, from, nil) {
		out = append(out, m.To.Algebraic(s.Size()))
	}
	sort.Strings(out)
	return out
}

func hasDest(dests []string, sq string) bool {
	for _, d := range dests {
		if d == sq {
			return true
		}
	}
	return false
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// dragonDestinations asks dragontoothmg for the standard-chess destinations
// of the piece on from. Its squares run a1=0 .. h8=63.
func dragonDestinations(t *testing.T, fen string, from string) []string {
	t.Helper()
	b := dragontoothmg.ParseFen(fen)
	var out []string
	for _, m := range b.GenerateLegalMoves() {
		f, to := int(m.From()), int(m.To())
		if Sq(7-f/8, f%8).Algebraic(8) != from {
			continue
		}
		out = append(out, Sq(7-to/8, to%8).Algebraic(8))
	}
	sort.Strings(out)
	return out
}

func TestBasePiecesMatchStandardChess(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		fen    string
		from   string
	}{
		{"rook", "8/8/8/8/3R4/8/8/K6k w", "8/8/8/8/3R4/8/8/K6k w - - 0 1", "d4"},
		{"knight", "8/8/8/8/3N4/8/8/K6k w", "8/8/8/8/3N4/8/8/K6k w - - 0 1", "d4"},
		{"bishop", "8/8/8/8/3B4/8/8/K6k w", "8/8/8/8/3B4/8/8/K6k w - - 0 1", "d4"},
		{"queen", "8/8/8/8/3Q4/8/8/K6k w", "8/8/8/8/3Q4/8/8/K6k w - - 0 1", "d4"},
		{"king", "8/8/8/8/3K4/8/8/7k w", "8/8/8/8/3K4/8/8/7k w - - 0 1", "d4"},
		{"pawn start", "8/8/8/8/8/8/4P3/K6k w", "8/8/8/8/8/8/4P3/K6k w - - 0 1", "e2"},
		{"pawn captures", "8/8/8/8/8/3p1p2/4P3/K6k w", "8/8/8/8/8/3p1p2/4P3/K6k w - - 0 1", "e2"},
		{"rook blocked", "8/8/3p4/8/1P1R2p1/8/8/K6k w", "8/8/3p4/8/1P1R2p1/8/8/K6k w - - 0 1", "d4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustLayout(8, tt.layout)
			got := destinations(s, tt.from)
			want := dragonDestinations(t, tt.fen, tt.from)
			if !equalSets(got, want) {
				t.Errorf("destinations from %s:\n got  %v\n want %v", tt.from, got, want)
			}
		})
	}
}

func TestRookOnEmptyBoardHasFourFullRays(t *testing.T) {
	s := MustLayout(10, "10/10/10/10/4R5/10/10/10/10/10 w")
	got := destinations(s, "e6")
	if len(got) != 18 {
		t.Fatalf("expected 18 rook moves on 10x10, got %d: %v", len(got), got)
	}
	for _, sq := range []string{"e10", "e1", "a6", "j6"} {
		if !hasDest(got, sq) {
			t.Errorf("expected ray end %s in %v", sq, got)
		}
	}
}

func TestKnightFlexDestinations(t *testing.T) {
	expected := func(flex int) map[Square]bool {
		set := make(map[Square]bool)
		center := Sq(7, 7)
		for a := 0; a <= flex; a++ {
			l, s := 2+a, 1+(flex-a)
			for _, sign := range [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
				set[center.Add(sign[0]*l, sign[1]*s)] = true
				set[center.Add(sign[0]*s, sign[1]*l)] = true
			}
		}
		return set
	}

	counts := map[int]int{0: 8, 1: 12, 2: 16}

	for flex := 0; flex <= 2; flex++ {
		b, _ := NewBoard(15)
		p := b.Put(Sq(7, 7), Knight, White)
		p.Abilities.(*KnightAbilities).Flex = flex
		s := NewState(b)

		moves := LegalMoves(s, Sq(7, 7), nil)
		want := expected(flex)
		if len(moves) != len(want) || len(moves) != counts[flex] {
			t.Errorf("flex=%d: got %d moves, want %d", flex, len(moves), counts[flex])
		}
		for _, m := range moves {
			if !want[m.To] {
				t.Errorf("flex=%d: unexpected destination %v", flex, m.To)
			}
		}
	}
}

func TestKnightLegs(t *testing.T) {
	legs := KnightLegs(1)
	want := [][2]int{{2, 2}, {3, 1}, {1, 3}}
	if len(legs) != len(want) {
		t.Fatalf("KnightLegs(1) = %v", legs)
	}
	seen := map[[2]int]bool{}
	for _, l := range legs {
		seen[l] = true
	}
	for _, l := range want {
		if !seen[l] {
			t.Errorf("missing leg %v in %v", l, legs)
		}
	}
}

func TestKnightDiag22(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/3N4/8/8/8 w")
	s.Board.At(MustSquare("d4", 8)).Abilities.(*KnightAbilities).Diag22 = true
	got := destinations(s, "d4")
	if len(got) != 12 {
		t.Fatalf("expected 12 moves, got %v", got)
	}
	for _, sq := range []string{"b2", "b6", "f2", "f6"} {
		if !hasDest(got, sq) {
			t.Errorf("missing (2,2) jump to %s", sq)
		}
	}
}

func TestPawnMoves(t *testing.T) {
	t.Run("blocked forward stops the ray", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/4p3/8/4P3/8 w")
		s.Board.At(MustSquare("e2", 8)).Abilities.(*PawnAbilities).ForwardRange = 4
		got := destinations(s, "e2")
		if !equalSets(got, []string{"e3"}) {
			t.Errorf("got %v, want [e3]", got)
		}
	})

	t.Run("double step needs both squares empty", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/8/4n3/4P3/8 w")
		if got := destinations(s, "e2"); len(got) != 0 {
			t.Errorf("got %v, want none", got)
		}
		s = MustLayout(8, "8/8/8/8/4n3/8/4P3/8 w")
		if got := destinations(s, "e2"); !equalSets(got, []string{"e3"}) {
			t.Errorf("got %v, want [e3]", got)
		}
	})

	t.Run("no double step after moving", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/8/8/4P3/8 w")
		s.Board.At(MustSquare("e2", 8)).Moved = true
		if got := destinations(s, "e2"); !equalSets(got, []string{"e3"}) {
			t.Errorf("got %v, want [e3]", got)
		}
	})

	t.Run("extended range dedupes the double step", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/8/8/4P3/8 w")
		s.Board.At(MustSquare("e2", 8)).Abilities.(*PawnAbilities).ForwardRange = 3
		if got := destinations(s, "e2"); !equalSets(got, []string{"e3", "e4", "e5"}) {
			t.Errorf("got %v, want [e3 e4 e5]", got)
		}
	})

	t.Run("diagonal range captures only", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/1n6/8/8/4P3/8 w")
		s.Board.At(MustSquare("e2", 8)).Moved = true
		s.Board.At(MustSquare("e2", 8)).Abilities.(*PawnAbilities).DiagRange = 3
		got := destinations(s, "e2")
		if !equalSets(got, []string{"b5", "e3"}) {
			t.Errorf("got %v, want [b5 e3]", got)
		}
	})

	t.Run("reverse mirrors pushes and captures", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/4P3/3n4/8/8 w")
		p := s.Board.At(MustSquare("e4", 8))
		p.Moved = true
		p.Abilities.(*PawnAbilities).Reverse = true
		got := destinations(s, "e4")
		if !equalSets(got, []string{"d3", "e3", "e5"}) {
			t.Errorf("got %v, want [d3 e3 e5]", got)
		}
	})

	t.Run("side step never captures", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/3pP3/8/8/8 w")
		p := s.Board.At(MustSquare("e4", 8))
		p.Moved = true
		p.Abilities.(*PawnAbilities).SideStep = true
		got := destinations(s, "e4")
		if !equalSets(got, []string{"e5", "f4"}) {
			t.Errorf("got %v, want [e5 f4]", got)
		}
	})

	t.Run("black moves toward row N-1", func(t *testing.T) {
		s := MustLayout(8, "8/4p3/8/8/8/8/8/8 b")
		if got := destinations(s, "e7"); !equalSets(got, []string{"e5", "e6"}) {
			t.Errorf("got %v, want [e5 e6]", got)
		}
	})
}

func TestBishopUpgrades(t *testing.T) {
	t.Run("limited orthogonal range", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/3B4/8/8/8 w")
		s.Board.At(MustSquare("d4", 8)).Abilities.(*BishopAbilities).OrthoRange = 2
		got := destinations(s, "d4")
		for _, sq := range []string{"d5", "d6", "d3", "d2", "c4", "b4", "e4", "f4"} {
			if !hasDest(got, sq) {
				t.Errorf("missing %s", sq)
			}
		}
		for _, sq := range []string{"d7", "d1", "a4", "g4"} {
			if hasDest(got, sq) {
				t.Errorf("unexpected %s beyond range", sq)
			}
		}
	})

	t.Run("diagonal jump over any piece onto empty", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/4P3/3B4/2p5/1n6/8 w")
		s.Board.At(MustSquare("d4", 8)).Abilities.(*BishopAbilities).DiagJump = true
		got := destinations(s, "d4")
		if !hasDest(got, "f6") {
			t.Errorf("expected jump over own e5 to f6, got %v", got)
		}
		if hasDest(got, "b2") {
			t.Errorf("jump must not land on occupied b2, got %v", got)
		}
		if !hasDest(got, "c3") {
			t.Errorf("expected normal capture on c3, got %v", got)
		}
	})
}

func TestRookUpgrades(t *testing.T) {
	t.Run("charge stops at first occupant and never captures", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/3p4/8/8/3R4 w")
		r := s.Board.At(MustSquare("d1", 8))
		r.Abilities.(*RookAbilities).Charge = true
		moves := LegalMoves(s, MustSquare("d1", 8), nil)
		for _, m := range moves {
			if m.Tag == TagCharge && m.Capture {
				t.Errorf("charge produced capture %v", m)
			}
		}
		got := destinations(s, "d1")
		if !hasDest(got, "d4") || hasDest(got, "d5") {
			t.Errorf("got %v; want d4 capture via ray and nothing beyond", got)
		}
	})

	t.Run("black charge heads toward row N-1", func(t *testing.T) {
		s := MustLayout(8, "3r4/8/8/8/8/8/8/8 b")
		s.Board.At(MustSquare("d8", 8)).Abilities.(*RookAbilities).Charge = true
		moves := LegalMoves(s, MustSquare("d8", 8), nil)
		charges := 0
		for _, m := range moves {
			if m.To.Col == 3 && m.To.Row > 0 {
				charges++
			}
		}
		if charges != 7 {
			t.Errorf("expected full d-file, got %d", charges)
		}
	})

	t.Run("limited diagonal", func(t *testing.T) {
		s := MustLayout(8, "8/8/8/8/3R4/8/8/8 w")
		s.Board.At(MustSquare("d4", 8)).Abilities.(*RookAbilities).DiagRange = 1
		got := destinations(s, "d4")
		if len(got) != 18 {
			t.Errorf("expected 14 orthogonal + 4 diagonal, got %d: %v", len(got), got)
		}
	})
}

func TestQueenKnightChain(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/8/8/8/Q7 w")
	q := s.Board.At(MustSquare("a1", 8)).Abilities.(*QueenAbilities)
	q.KnightJump = true
	q.ChainLength = 2

	got := destinations(s, "a1")
	// b3 -> d4 (two hops) is reachable; c2 -> e3 as well.
	for _, sq := range []string{"d4", "e3", "c5", "a5", "e1"} {
		if !hasDest(got, sq) {
			t.Errorf("expected chain destination %s in %v", sq, got)
		}
	}

	// An occupied intermediate blocks chaining through it.
	s = MustLayout(8, "8/8/8/8/8/1p6/2p5/Q7 w")
	q = s.Board.At(MustSquare("a1", 8)).Abilities.(*QueenAbilities)
	q.KnightJump = true
	q.ChainLength = 2
	moves := LegalMoves(s, MustSquare("a1", 8), nil)
	for _, m := range moves {
		if m.Tag == TagChain {
			t.Errorf("chain through occupied squares produced %v", m.To.Algebraic(8))
		}
	}
	got = destinations(s, "a1")
	if !hasDest(got, "b3") || !hasDest(got, "c2") {
		t.Errorf("single jumps still capture: %v", got)
	}
}

func TestQueenKnightChainExactDepth(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/8/8/8/Q7 w")
	q := s.Board.At(MustSquare("a1", 8)).Abilities.(*QueenAbilities)
	q.KnightJump = true
	q.ChainLength = 3

	from := MustSquare("a1", 8)
	in := func(sq Square) bool { return s.Board.InBounds(sq) }
	want := map[string]bool{}

	// Rays along the a-file, the first rank and the long diagonal.
	for i := 1; i < 8; i++ {
		for _, sq := range []Square{from.Add(-i, 0), from.Add(0, i), from.Add(-i, i)} {
			want[sq.Algebraic(8)] = true
		}
	}

	hops := [][2]int{{2, 1}, {1, 2}, {-2, 1}, {-1, 2}, {2, -1}, {1, -2}, {-2, -1}, {-1, -2}}
	for _, h := range hops {
		if sq := from.Add(h[0], h[1]); in(sq) {
			want[sq.Algebraic(8)] = true
		}
	}

	// Every path of exactly three hops through empty squares.
	for _, h1 := range hops {
		a := from.Add(h1[0], h1[1])
		if !in(a) {
			continue
		}
		for _, h2 := range hops {
			b := a.Add(h2[0], h2[1])
			if !in(b) || b == from {
				continue
			}
			for _, h3 := range hops {
				if c := b.Add(h3[0], h3[1]); in(c) && c != from {
					want[c.Algebraic(8)] = true
				}
			}
		}
	}

	var wantList []string
	for sq := range want {
		wantList = append(wantList, sq)
	}
	got := destinations(s, "a1")
	if !equalSets(got, wantList) {
		t.Errorf("chain length 3:\n got  %v\n want %v", got, wantList)
	}

	// c5 is two hops away (b3, c5) and off every queen line.
	if hasDest(got, "c5") {
		t.Errorf("square reachable only at depth 2 was offered: %v", got)
	}
}

func TestQueenChainNeverLandsOnOwnPiece(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/3P4/8/8/Q7 w")
	q := s.Board.At(MustSquare("a1", 8)).Abilities.(*QueenAbilities)
	q.KnightJump = true
	q.ChainLength = 2
	if got := destinations(s, "a1"); hasDest(got, "d4") {
		t.Errorf("queen offered own-occupied d4: %v", got)
	}
}

func TestKingSteps(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/3K4/3P4/8/8 w")
	s.Board.At(MustSquare("d4", 8)).Abilities.(*KingAbilities).MaxStep = 2
	got := destinations(s, "d4")
	if hasDest(got, "d3") || hasDest(got, "d2") {
		t.Errorf("own pawn must stop the ray: %v", got)
	}
	if !hasDest(got, "d6") || !hasDest(got, "f6") || !hasDest(got, "b2") {
		t.Errorf("expected two-step moves: %v", got)
	}

	s.Board.At(MustSquare("d4", 8)).Abilities.(*KingAbilities).KnightJump = true
	if got := destinations(s, "d4"); !hasDest(got, "e6") || !hasDest(got, "b3") {
		t.Errorf("expected knight jumps: %v", got)
	}
}

func TestShieldBlocksCaptureUntilExpiry(t *testing.T) {
	// Black queen d8 takes d5 and is shielded through White's turn.
	s := MustLayout(8, "3q3k/8/8/R2P4/8/8/8/7K b")

	s = ApplyMove(s, Move{From: MustSquare("d8", 8), To: MustSquare("d5", 8)})
	if s.Shield == nil || s.Shield.Square != MustSquare("d5", 8) {
		t.Fatalf("expected shield on d5, got %+v", s.Shield)
	}
	if s.Turn != White {
		t.Fatalf("expected White to move")
	}

	if got := destinations(s, "a5"); hasDest(got, "d5") || !hasDest(got, "c5") {
		t.Errorf("shielded queen must not be capturable: %v", got)
	}

	s = ApplyMove(s, Move{From: MustSquare("h1", 8), To: MustSquare("g1", 8)})
	if s.Shield != nil {
		t.Fatalf("shield should expire when Black is to move, got %+v", s.Shield)
	}

	s = ApplyMove(s, Move{From: MustSquare("h8", 8), To: MustSquare("g8", 8)})
	if got := destinations(s, "a5"); !hasDest(got, "d5") {
		t.Errorf("queen should be capturable after expiry: %v", got)
	}
}

func TestShieldOnEmptySquareIsIgnored(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/8/8/8/R7 w")
	s.Shield = &Shield{Square: MustSquare("a5", 8), Owner: Black, ExpiresOn: Black}
	if got := destinations(s, "a1"); !hasDest(got, "a5") || !hasDest(got, "a8") {
		t.Errorf("empty shielded square should stay reachable: %v", got)
	}
}

func TestAdjacencyImmunity(t *testing.T) {
	s := MustLayout(8, "2rr4/8/8/8/8/8/2n5/3K4 b")
	s.Board.At(MustSquare("d1", 8)).Abilities.(*KingAbilities).AdjacencyImmunity = true

	d8 := destinations(s, "d8")
	for _, sq := range []string{"d2", "c1", "e1"} {
		if hasDest(d8, sq) {
			t.Errorf("d8 rook reached %s next to the immune king", sq)
		}
	}
	if !hasDest(d8, "d1") {
		t.Errorf("capturing the king must stay legal: %v", d8)
	}
	if !hasDest(d8, "e8") || !hasDest(d8, "d3") {
		t.Errorf("moves away from the circle must remain: %v", d8)
	}

	c8 := destinations(s, "c8")
	if hasDest(c8, "c2") {
		t.Errorf("c8 rook must not reach c2: %v", c8)
	}
	if !hasDest(c8, "c3") || !hasDest(c8, "a8") {
		t.Errorf("expected c3 and a8: %v", c8)
	}

	c2 := destinations(s, "c2")
	for _, sq := range []string{"a3", "b4", "d4", "e3"} {
		if !hasDest(c2, sq) {
			t.Errorf("adjacent knight must be able to move away to %s: %v", sq, c2)
		}
	}
}

func TestAdjacentPieceCannotStayInsideRoyalCircle(t *testing.T) {
	s := MustLayout(8, "7k/8/8/8/8/8/2r5/3K4 b")
	s.Board.At(MustSquare("d1", 8)).Abilities.(*KingAbilities).AdjacencyImmunity = true

	got := destinations(s, "c2")
	for _, sq := range []string{"c1", "d2", "e2"} {
		if hasDest(got, sq) {
			t.Errorf("c2 rook moved within the circle to %s: %v", sq, got)
		}
	}
	for _, sq := range []string{"b2", "a2", "f2", "c3", "c8"} {
		if !hasDest(got, sq) {
			t.Errorf("c2 rook must be able to leave the circle to %s: %v", sq, got)
		}
	}
}

func TestAdjacencyImmunityEndToEnd(t *testing.T) {
	s := MustLayout(8, "3r4/8/8/8/8/8/8/3K4 b")
	s.Board.At(MustSquare("d1", 8)).Abilities.(*KingAbilities).AdjacencyImmunity = true

	got := destinations(s, "d8")
	for _, sq := range []string{"d2", "c1", "e1"} {
		if hasDest(got, sq) {
			t.Errorf("unexpected %s in %v", sq, got)
		}
	}
	if !hasDest(got, "a8") {
		t.Errorf("expected d8-a8 in %v", got)
	}
	if !hasDest(got, "d1") {
		t.Errorf("expected capture on d1 in %v", got)
	}
}

func TestOwnPiecesBlockDestinations(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/3Q4/8/5N2/8 w")
	got := destinations(s, "d4")
	if hasDest(got, "f2") {
		t.Errorf("own knight square offered: %v", got)
	}
	if hasDest(got, "g1") {
		t.Errorf("ray must stop before own piece: %v", got)
	}
}

func TestLegalMovesIgnoresTurn(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/3n4/8/8/8 w")
	if got := destinations(s, "d4"); len(got) != 8 {
		t.Errorf("hover preview for the side not to move: %v", got)
	}
}

func TestAllMovesOrder(t *testing.T) {
	s, err := Initial(8)
	if err != nil {
		t.Fatal(err)
	}
	moves := AllMoves(s, White)
	if len(moves) != 20 {
		t.Fatalf("expected 20 opening moves on 8x8, got %d", len(moves))
	}
	for i := 1; i < len(moves); i++ {
		a, b := moves[i-1].From, moves[i].From
		if a.Row > b.Row || (a.Row == b.Row && a.Col > b.Col) {
			t.Fatalf("moves not in row-major source order at %d", i)
		}
	}
	if !HasMoves(s, Black) {
		t.Error("Black should have moves")
	}
}
