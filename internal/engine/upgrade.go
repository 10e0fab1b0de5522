package engine

import (
	"github.com/hailam/chess2/internal/board"
)

// upgradePriority lists the computer's preferred upgrades per piece type.
var upgradePriority = map[board.PieceType][]board.UpgradeKey{
	board.Pawn:   {board.UpgradePawnMimic, board.UpgradePawnDiagonal, board.UpgradePawnForward, board.UpgradePawnSideStep},
	board.Knight: {board.UpgradeKnightFlex, board.UpgradeKnightDiag22},
	board.Bishop: {board.UpgradeBishopOrtho1, board.UpgradeBishopOrthoPlus, board.UpgradeBishopOrthoFull, board.UpgradeBishopJump},
	board.Rook:   {board.UpgradeRookDiag1, board.UpgradeRookDiagPlus, board.UpgradeRookDiagFull, board.UpgradeRookCharge},
	board.Queen:  {board.UpgradeQueenExtended, board.UpgradeQueenKnight, board.UpgradeQueenChain},
	board.King:   {board.UpgradeKingStep2, board.UpgradeKingKnight, board.UpgradeKingImmune},
}

// PickUpgrade chooses the upgrade the computer spends a banked point on:
// the first offered key in the piece's priority list, else the first
// offered option. It returns false if nothing is offered.
func PickUpgrade(p *board.Piece) (board.UpgradeKey, bool) {
	opts := board.UpgradeOptions(p)
	if len(opts) == 0 {
		return "", false
	}

	offered := make(map[board.UpgradeKey]bool, len(opts))
	for _, o := range opts {
		offered[o.Key] = true
	}
	for _, key := range upgradePriority[p.Type()] {
		if offered[key] {
			return key, true
		}
	}
	return opts[0].Key, true
}
