package session

import "errors"

var (
	ErrGameOver          = errors.New("game is over")
	ErrAwaitingChoice    = errors.New("an upgrade or shield choice is pending")
	ErrNotYourTurn       = errors.New("piece does not belong to the side to move")
	ErrIllegalMove       = errors.New("illegal move")
	ErrNoPendingUpgrade  = errors.New("no upgrade pending")
	ErrUpgradeNotOffered = errors.New("upgrade not offered for this piece")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrStale             = errors.New("position changed since the search started")
)
