package board

import "fmt"

// UpgradeKey identifies a single ability upgrade.
type UpgradeKey string

const (
	UpgradePawnForward     UpgradeKey = "P_FWD"
	UpgradePawnDiagonal    UpgradeKey = "P_DIAG"
	UpgradePawnSideStep    UpgradeKey = "P_SIDE"
	UpgradePawnMimic       UpgradeKey = "P_MIMIC"
	UpgradeKnightDiag22    UpgradeKey = "N_22"
	UpgradeKnightFlex      UpgradeKey = "N_FLEX"
	UpgradeBishopOrtho1    UpgradeKey = "B_ORTHO1"
	UpgradeBishopOrthoPlus UpgradeKey = "B_ORTHO_PLUS"
	UpgradeBishopOrthoFull UpgradeKey = "B_ORTHO_FULL"
	UpgradeBishopJump      UpgradeKey = "B_JUMP"
	UpgradeRookDiag1       UpgradeKey = "R_DIAG1"
	UpgradeRookDiagPlus    UpgradeKey = "R_DIAG_PLUS"
	UpgradeRookDiagFull    UpgradeKey = "R_DIAG_FULL"
	UpgradeRookCharge      UpgradeKey = "R_CHARGE"
	UpgradeQueenKnight     UpgradeKey = "Q_KNIGHT"
	UpgradeQueenExtended   UpgradeKey = "Q_EXT"
	UpgradeQueenChain      UpgradeKey = "Q_CHAIN"
	UpgradeKingStep2       UpgradeKey = "K_STEP2"
	UpgradeKingKnight      UpgradeKey = "K_KNIGHT"
	UpgradeKingImmune      UpgradeKey = "K_IMMUNE"
)

// Upgrade caps.
const (
	MaxLimitedRange = 7
	MaxKnightChain  = 5
)

// UpgradeOption is an upgrade offered to the player.
type UpgradeOption struct {
	Key   UpgradeKey
	Title string
	Desc  string
}

// UpgradeOptions returns the upgrades currently available to p. Upgrades
// already unlocked or at their cap are not offered.
func UpgradeOptions(p *Piece) []UpgradeOption {
	var opts []UpgradeOption
	add := func(key UpgradeKey, title, desc string) {
		opts = append(opts, UpgradeOption{Key: key, Title: title, Desc: desc})
	}

	switch a := p.Abilities.(type) {
	case *PawnAbilities:
		add(UpgradePawnForward, fmt.Sprintf("Extend Forward to %d", a.ForwardRange+1),
			fmt.Sprintf("Increase non-capturing forward range to %d squares.", a.ForwardRange+1))
		add(UpgradePawnDiagonal, fmt.Sprintf("Extend Diagonal Capture to %d", a.DiagRange+1),
			fmt.Sprintf("Increase diagonal capture range to %d squares.", a.DiagRange+1))
		if !a.SideStep {
			add(UpgradePawnSideStep, "Side Step", "Move 1 square sideways (non-capturing).")
		}
		if !a.Mimic {
			add(UpgradePawnMimic, "Mimic Captured", "After future captures, transform into the captured piece and gain its abilities.")
		}

	case *KnightAbilities:
		if !a.Diag22 {
			add(UpgradeKnightDiag22, "Add (2,2) Jump", "Gain an extra diagonal leap of (2,2).")
		}
		add(UpgradeKnightFlex, "Knight Flex +1",
			fmt.Sprintf("Distribute %d extra steps across the two legs of the knight jump.", a.Flex+1))

	case *BishopAbilities:
		switch {
		case a.OrthoFull:
		case a.OrthoRange == 0:
			add(UpgradeBishopOrtho1, "+1 Orthogonal", "Move 1 square orthogonally.")
		case a.OrthoRange < MaxLimitedRange:
			add(UpgradeBishopOrthoPlus, "Extend Orthogonal +1",
				fmt.Sprintf("Increase limited orthogonal range to %d.", a.OrthoRange+1))
		default:
			add(UpgradeBishopOrthoFull, "Full Orthogonal", "Move any distance orthogonally.")
		}
		if !a.DiagJump {
			add(UpgradeBishopJump, "Diagonal Jump", "Jump over one adjacent piece diagonally (cannot capture).")
		}

	case *RookAbilities:
		switch {
		case a.DiagFull:
		case a.DiagRange == 0:
			add(UpgradeRookDiag1, "+1 Diagonal", "Move 1 square diagonally.")
		case a.DiagRange < MaxLimitedRange:
			add(UpgradeRookDiagPlus, "Extend Diagonal +1",
				fmt.Sprintf("Increase limited diagonal range to %d.", a.DiagRange+1))
		default:
			add(UpgradeRookDiagFull, "Full Diagonal", "Move any distance diagonally.")
		}
		if !a.Charge {
			add(UpgradeRookCharge, "Rook Charge", "Move up to 4 empty squares toward the enemy (cannot capture).")
		}

	case *QueenAbilities:
		if !a.KnightJump {
			add(UpgradeQueenKnight, "Add Knight Jump", "Gain standard knight jumps (2,1).")
		} else {
			if !a.ExtendedKnight {
				add(UpgradeQueenExtended, "Extend Knight Jump (3,2)", "Knight jump becomes (3,2).")
			}
			if a.ChainLength < MaxKnightChain {
				add(UpgradeQueenChain, "Increase Knight Chain",
					fmt.Sprintf("Chain up to %d knight jumps per move.", a.ChainLength+1))
			}
		}

	case *KingAbilities:
		if a.MaxStep < 2 {
			add(UpgradeKingStep2, "2-Step Movement", "Move up to 2 squares in any direction.")
		}
		if !a.KnightJump {
			add(UpgradeKingKnight, "Add Knight Jump", "Gain a knight-style (2,1) jump.")
		}
		if !a.AdjacencyImmunity {
			add(UpgradeKingImmune, "Royal Circle", "Opponents cannot move to squares adjacent to your King.")
		}
	}

	return opts
}

// ApplyUpgrade applies key to p in place and raises its level by one. The
// caller owns the banked-point bookkeeping (see SpendUpgrade).
func ApplyUpgrade(p *Piece, key UpgradeKey) error {
	if !upgradeFitsType(key, p.Type()) {
		if _, known := upgradeTypes[key]; !known {
			return fmt.Errorf("%w: %s", ErrUnknownUpgrade, key)
		}
		return fmt.Errorf("%w: %s on %s", ErrUpgradeNotApplicable, key, p.Type())
	}

	switch a := p.Abilities.(type) {
	case *PawnAbilities:
		switch key {
		case UpgradePawnForward:
			a.ForwardRange++
		case UpgradePawnDiagonal:
			a.DiagRange++
		case UpgradePawnSideStep:
			a.SideStep = true
		case UpgradePawnMimic:
			a.Mimic = true
		}
	case *KnightAbilities:
		switch key {
		case UpgradeKnightDiag22:
			a.Diag22 = true
		case UpgradeKnightFlex:
			a.Flex++
		}
	case *BishopAbilities:
		switch key {
		case UpgradeBishopOrtho1:
			a.OrthoRange = 1
		case UpgradeBishopOrthoPlus:
			a.OrthoRange = min(MaxLimitedRange, a.OrthoRange+1)
		case UpgradeBishopOrthoFull:
			a.OrthoFull = true
		case UpgradeBishopJump:
			a.DiagJump = true
		}
	case *RookAbilities:
		switch key {
		case UpgradeRookDiag1:
			a.DiagRange = 1
		case UpgradeRookDiagPlus:
			a.DiagRange = min(MaxLimitedRange, a.DiagRange+1)
		case UpgradeRookDiagFull:
			a.DiagFull = true
		case UpgradeRookCharge:
			a.Charge = true
		}
	case *QueenAbilities:
		switch key {
		case UpgradeQueenKnight:
			a.KnightJump = true
		case UpgradeQueenExtended:
			a.ExtendedKnight = true
		case UpgradeQueenChain:
			a.ChainLength = min(MaxKnightChain, a.ChainLength+1)
		}
	case *KingAbilities:
		switch key {
		case UpgradeKingStep2:
			a.MaxStep = 2
		case UpgradeKingKnight:
			a.KnightJump = true
		case UpgradeKingImmune:
			a.AdjacencyImmunity = true
		}
	}

	p.Progress().Level++
	return nil
}

// SpendUpgrade applies key and spends one banked point.
func SpendUpgrade(p *Piece, key UpgradeKey) error {
	if p.Banked() <= 0 {
		return ErrNoBankedPoints
	}
	if err := ApplyUpgrade(p, key); err != nil {
		return err
	}
	p.Progress().Banked--
	return nil
}

var upgradeTypes = map[UpgradeKey]PieceType{
	UpgradePawnForward:     Pawn,
	UpgradePawnDiagonal:    Pawn,
	UpgradePawnSideStep:    Pawn,
	UpgradePawnMimic:       Pawn,
	UpgradeKnightDiag22:    Knight,
	UpgradeKnightFlex:      Knight,
	UpgradeBishopOrtho1:    Bishop,
	UpgradeBishopOrthoPlus: Bishop,
	UpgradeBishopOrthoFull: Bishop,
	UpgradeBishopJump:      Bishop,
	UpgradeRookDiag1:       Rook,
	UpgradeRookDiagPlus:    Rook,
	UpgradeRookDiagFull:    Rook,
	UpgradeRookCharge:      Rook,
	UpgradeQueenKnight:     Queen,
	UpgradeQueenExtended:   Queen,
	UpgradeQueenChain:      Queen,
	UpgradeKingStep2:       King,
	UpgradeKingKnight:      King,
	UpgradeKingImmune:      King,
}

func upgradeFitsType(key UpgradeKey, pt PieceType) bool {
	t, ok := upgradeTypes[key]
	return ok && t == pt
}
