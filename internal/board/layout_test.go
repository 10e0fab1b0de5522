package board

import (
	"errors"
	"testing"
)

func TestInitialLayout(t *testing.T) {
	tests := []struct {
		size  int
		pawns int
		rooks []string
	}{
		{8, 8, []string{"a1", "h1"}},
		{10, 12, []string{"b1", "i1"}},
		{12, 14, []string{"c1", "j1"}},
		{6, 6, nil},
	}

	for _, tt := range tests {
		s, err := Initial(tt.size)
		if err != nil {
			t.Fatalf("size %d: %v", tt.size, err)
		}
		for _, c := range []Color{White, Black} {
			if n := s.Board.Count(c, Pawn); n != tt.pawns {
				t.Errorf("size %d %s: %d pawns, want %d", tt.size, c, n, tt.pawns)
			}
			if n := s.Board.Count(c, King); n != 1 {
				t.Errorf("size %d %s: %d kings", tt.size, c, n)
			}
		}
		for _, sq := range tt.rooks {
			p := s.Board.At(MustSquare(sq, tt.size))
			if p == nil || p.Type() != Rook || p.Color != White {
				t.Errorf("size %d: expected white rook on %s, got %v", tt.size, sq, p)
			}
		}
		if s.Turn != White || s.Winner != NoColor {
			t.Errorf("size %d: bad initial state", tt.size)
		}
	}
}

func TestInitialTenByTen(t *testing.T) {
	s, err := Initial(10)
	if err != nil {
		t.Fatal(err)
	}
	want := "prnbqkbnrp/pppppppppp/10/10/10/10/10/10/PPPPPPPPPP/PRNBQKBNRP w"
	if got := s.Layout(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestInitialRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, 5, 27} {
		if _, err := Initial(size); !errors.Is(err, ErrBoardSize) {
			t.Errorf("size %d: expected ErrBoardSize, got %v", size, err)
		}
	}
}

func TestParseLayoutRoundTrip(t *testing.T) {
	for _, layout := range []string{
		"3r4/8/8/8/8/8/8/3K4 b",
		"12/12/12/12/12/5Q6/12/12/12/12/12/k10K w",
		"r5/6/6/6/6/5K w",
	} {
		var size int
		for _, c := range layout {
			if c == '/' {
				size++
			}
		}
		size++
		s, err := ParseLayout(size, layout)
		if err != nil {
			t.Fatalf("%s: %v", layout, err)
		}
		if got := s.Layout(); got != layout {
			t.Errorf("round trip: got %s want %s", got, layout)
		}
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []string{
		"",
		"8/8/8 w",
		"8/8/8/8/8/8/8/9 w",
		"8/8/8/8/8/8/8/7x w",
		"8/8/8/8/8/8/8/8 x",
		"8/8/8/8/8/8/8/8 w extra",
	}
	for _, layout := range tests {
		if _, err := ParseLayout(8, layout); !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("%q: expected ErrInvalidLayout, got %v", layout, err)
		}
	}
}

func TestSquareAlgebraic(t *testing.T) {
	if got := Sq(9, 0).Algebraic(10); got != "a1" {
		t.Errorf("got %s", got)
	}
	if got := Sq(0, 9).Algebraic(10); got != "j10" {
		t.Errorf("got %s", got)
	}
	sq, err := ParseSquare("j10", 10)
	if err != nil || sq != Sq(0, 9) {
		t.Errorf("ParseSquare(j10) = %v, %v", sq, err)
	}
	if _, err := ParseSquare("k1", 10); err == nil {
		t.Error("expected error for off-board file")
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s, _ := Initial(8)
	sel := MustSquare("e2", 8)
	s.Selected = &sel
	s.Shield = &Shield{Square: sel, Owner: White, ExpiresOn: White}

	c := s.Clone()
	c.Selected.Row = 0
	c.Shield.Owner = Black
	c.Board.At(sel).Abilities.(*PawnAbilities).ForwardRange = 5

	if s.Selected.Row != sel.Row || s.Shield.Owner != White {
		t.Error("clone shares selection or shield")
	}
	if s.Board.At(sel).Abilities.(*PawnAbilities).ForwardRange != 1 {
		t.Error("clone shares ability sets")
	}
}
