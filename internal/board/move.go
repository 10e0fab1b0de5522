package board

// MoveTag records which rule produced a move. It is informational only.
type MoveTag uint8

const (
	TagNone MoveTag = iota
	TagForward
	TagDouble
	TagDiagCapture
	TagReverseForward
	TagReverseDiagCapture
	TagSide
	TagJump
	TagCharge
	TagKnight
	TagChain
)

var tagNames = [...]string{"", "forward", "double", "diag-cap", "rev-forward", "rev-diag-cap", "side", "jump", "charge", "knight", "chain"}

// String returns the tag name ("" for untagged moves).
func (t MoveTag) String() string {
	if int(t) >= len(tagNames) {
		return "?"
	}
	return tagNames[t]
}

// Move is a generated destination for the piece on From.
type Move struct {
	From    Square
	To      Square
	Capture bool
	Tag     MoveTag
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// IsNone returns true for NoMove.
func (m Move) IsNone() bool {
	return m.From == NoSquare
}

// Notation returns "from-to" (or "fromxto" for captures) on a board of the
// given size, for logs and display.
func (m Move) Notation(size int) string {
	if m.IsNone() {
		return "----"
	}
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	return m.From.Algebraic(size) + sep + m.To.Algebraic(size)
}

// FindMove returns the move in list whose destination is to.
func FindMove(list []Move, to Square) (Move, bool) {
	for _, m := range list {
		if m.To == to {
			return m, true
		}
	}
	return NoMove, false
}
