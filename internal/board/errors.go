package board

import "errors"

var (
	ErrBoardSize            = errors.New("unsupported board size")
	ErrInvalidLayout        = errors.New("invalid layout")
	ErrNoPendingShield      = errors.New("no shield selection pending")
	ErrInvalidShieldTarget  = errors.New("shield target must hold a friendly piece")
	ErrUnknownUpgrade       = errors.New("unknown upgrade")
	ErrUpgradeNotApplicable = errors.New("upgrade not available for this piece")
	ErrNoBankedPoints       = errors.New("no banked upgrade points")
)
