package board

import (
	"errors"
	"testing"
)

func optionKeys(p *Piece) map[UpgradeKey]bool {
	keys := make(map[UpgradeKey]bool)
	for _, o := range UpgradeOptions(p) {
		keys[o.Key] = true
	}
	return keys
}

func TestUpgradeOptionsBaseSets(t *testing.T) {
	tests := []struct {
		pt   PieceType
		want []UpgradeKey
	}{
		{Pawn, []UpgradeKey{UpgradePawnForward, UpgradePawnDiagonal, UpgradePawnSideStep, UpgradePawnMimic}},
		{Knight, []UpgradeKey{UpgradeKnightDiag22, UpgradeKnightFlex}},
		{Bishop, []UpgradeKey{UpgradeBishopOrtho1, UpgradeBishopJump}},
		{Rook, []UpgradeKey{UpgradeRookDiag1, UpgradeRookCharge}},
		{Queen, []UpgradeKey{UpgradeQueenKnight}},
		{King, []UpgradeKey{UpgradeKingStep2, UpgradeKingKnight, UpgradeKingImmune}},
	}

	for _, tt := range tests {
		t.Run(tt.pt.String(), func(t *testing.T) {
			keys := optionKeys(NewPiece(tt.pt, White))
			if len(keys) != len(tt.want) {
				t.Errorf("got %v, want %v", keys, tt.want)
			}
			for _, k := range tt.want {
				if !keys[k] {
					t.Errorf("missing %s", k)
				}
			}
		})
	}
}

func TestUpgradeOptionsProgression(t *testing.T) {
	b := NewPiece(Bishop, White)
	for i := 0; i < MaxLimitedRange; i++ {
		keys := optionKeys(b)
		switch {
		case i == 0 && !keys[UpgradeBishopOrtho1]:
			t.Fatalf("step %d: expected B_ORTHO1", i)
		case i > 0 && !keys[UpgradeBishopOrthoPlus]:
			t.Fatalf("step %d: expected B_ORTHO_PLUS, got %v", i, keys)
		}
		key := UpgradeBishopOrthoPlus
		if i == 0 {
			key = UpgradeBishopOrtho1
		}
		if err := ApplyUpgrade(b, key); err != nil {
			t.Fatal(err)
		}
	}
	if got := b.Abilities.(*BishopAbilities).OrthoRange; got != MaxLimitedRange {
		t.Fatalf("expected range %d, got %d", MaxLimitedRange, got)
	}
	if keys := optionKeys(b); !keys[UpgradeBishopOrthoFull] || keys[UpgradeBishopOrthoPlus] {
		t.Errorf("capped range should offer only full: %v", keys)
	}
	if err := ApplyUpgrade(b, UpgradeBishopOrthoFull); err != nil {
		t.Fatal(err)
	}
	keys := optionKeys(b)
	if keys[UpgradeBishopOrthoFull] || keys[UpgradeBishopOrtho1] {
		t.Errorf("full range must not be offered again: %v", keys)
	}
	if b.Level() != MaxLimitedRange+1 {
		t.Errorf("expected level %d, got %d", MaxLimitedRange+1, b.Level())
	}
}

func TestQueenChainRequiresKnightJump(t *testing.T) {
	q := NewPiece(Queen, Black)
	if keys := optionKeys(q); keys[UpgradeQueenChain] || keys[UpgradeQueenExtended] {
		t.Fatalf("chain offered without knight jump: %v", keys)
	}
	if err := ApplyUpgrade(q, UpgradeQueenKnight); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < MaxKnightChain; i++ {
		if !optionKeys(q)[UpgradeQueenChain] {
			t.Fatalf("chain not offered at length %d", i)
		}
		if err := ApplyUpgrade(q, UpgradeQueenChain); err != nil {
			t.Fatal(err)
		}
	}
	if optionKeys(q)[UpgradeQueenChain] {
		t.Error("chain offered beyond cap")
	}
	if got := q.Abilities.(*QueenAbilities).ChainLength; got != MaxKnightChain {
		t.Errorf("chain length %d", got)
	}
}

func TestApplyUpgradeErrors(t *testing.T) {
	p := NewPiece(Knight, White)
	if err := ApplyUpgrade(p, "X_NOPE"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("expected ErrUnknownUpgrade, got %v", err)
	}
	if err := ApplyUpgrade(p, UpgradeRookCharge); !errors.Is(err, ErrUpgradeNotApplicable) {
		t.Errorf("expected ErrUpgradeNotApplicable, got %v", err)
	}
	if p.Level() != 0 {
		t.Errorf("failed upgrades must not raise level, got %d", p.Level())
	}
}

func TestSpendUpgrade(t *testing.T) {
	p := NewPiece(Knight, White)
	if err := SpendUpgrade(p, UpgradeKnightFlex); !errors.Is(err, ErrNoBankedPoints) {
		t.Fatalf("expected ErrNoBankedPoints, got %v", err)
	}

	p.Progress().Banked = 2
	if err := SpendUpgrade(p, UpgradeKnightFlex); err != nil {
		t.Fatal(err)
	}
	if p.Banked() != 1 || p.Level() != 1 {
		t.Errorf("banked=%d level=%d", p.Banked(), p.Level())
	}
	if err := SpendUpgrade(p, UpgradeQueenKnight); err == nil {
		t.Error("wrong-type upgrade accepted")
	}
	if p.Banked() != 1 {
		t.Error("failed spend consumed a point")
	}
}

func TestMimicUpgradeSurvivesTransformation(t *testing.T) {
	s := MustLayout(8, "8/8/8/8/3b4/4P3/8/8 w")
	if err := ApplyUpgrade(s.Board.At(MustSquare("e3", 8)), UpgradePawnMimic); err != nil {
		t.Fatal(err)
	}
	ns := ApplyMove(s, move(s, "e3", "d4"))
	p := ns.Board.At(MustSquare("d4", 8))
	if p.Type() != Bishop || p.Level() != 1 {
		t.Fatalf("expected level-1 bishop, got %s level %d", p.Type(), p.Level())
	}
	if keys := optionKeys(p); !keys[UpgradeBishopOrtho1] {
		t.Errorf("transformed piece should use bishop upgrades: %v", keys)
	}
}
