package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Forward returns the row delta of a step toward the opponent's side.
// White starts on the last row and moves toward row 0.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the layout character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// pieceTypeFromChar is the inverse of Char, case-insensitive.
func pieceTypeFromChar(c byte) PieceType {
	switch c | 0x20 {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	default:
		return NoPieceType
	}
}

// Piece is a single piece on the board. Its type is carried by the
// concrete Abilities variant, so type and ability set always agree.
type Piece struct {
	Color     Color
	Moved     bool
	Abilities Abilities
}

// NewPiece creates an unmoved piece with the base ability set for pt.
func NewPiece(pt PieceType, c Color) *Piece {
	a := NewAbilities(pt)
	if a == nil {
		return nil
	}
	return &Piece{Color: c, Abilities: a}
}

// Type returns the PieceType of the piece.
func (p *Piece) Type() PieceType {
	if p == nil || p.Abilities == nil {
		return NoPieceType
	}
	return p.Abilities.Type()
}

// Progress returns the level and banked points shared by every variant.
func (p *Piece) Progress() *Progress {
	return p.Abilities.progress()
}

// Level returns the number of upgrades applied to the piece.
func (p *Piece) Level() int {
	return p.Progress().Level
}

// Banked returns the unspent upgrade points of the piece.
func (p *Piece) Banked() int {
	return p.Progress().Banked
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{Color: p.Color, Moved: p.Moved, Abilities: p.Abilities.Clone()}
}

// String returns the layout character for the piece.
// Uppercase for white, lowercase for black.
func (p *Piece) String() string {
	if p == nil {
		return " "
	}
	c := p.Type().Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// Name returns a display name such as "White Queen".
func (p *Piece) Name() string {
	return p.Color.String() + " " + p.Type().String()
}

// PieceValue is the fixed material table indexed by PieceType.
var PieceValue = [7]float64{1, 3, 3.25, 5, 9, 200, 0}

// Value returns the material value of the piece.
func (p *Piece) Value() float64 {
	return PieceValue[p.Type()]
}
