package board

import "fmt"

// Shield grants capture immunity to the occupant of Square until
// ExpiresOn is the side to move again.
type Shield struct {
	Square    Square
	Owner     Color
	ExpiresOn Color
}

// PendingShield marks a turn that cannot complete until Owner picks a
// friendly square to shield.
type PendingShield struct {
	Owner Color
}

// LastMove snapshots the previous move for animation and history display.
type LastMove struct {
	From     Square
	To       Square
	Captured *Piece // copy of the captured piece before it was overwritten
	Mover    *Piece // copy of the mover before the move was applied
	Move     Move
}

// State is a complete game state.
type State struct {
	Board *Board
	Turn  Color

	// Selection and its legal moves, owned by the interactive driver.
	Selected *Square
	Moves    []Move

	LastMove       *LastMove
	PendingUpgrade *Square
	Winner         Color
	PendingShield  *PendingShield
	Shield         *Shield
}

// NewState wraps a board in a fresh state with White to move.
func NewState(b *Board) *State {
	return &State{Board: b, Turn: White, Winner: NoColor}
}

// backRank is the centred piece order of both back ranks.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Initial builds the starting layout for a size×size board: a full pawn row
// in front of each back rank, the standard back rank centred on the board,
// and an extra pawn on every empty back-rank square next to a rook.
func Initial(size int) (*State, error) {
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}

	offset := (size - len(backRank)) / 2
	for col := 0; col < size; col++ {
		b.Put(Sq(1, col), Pawn, Black)
		b.Put(Sq(size-2, col), Pawn, White)
		if i := col - offset; i >= 0 && i < len(backRank) {
			b.Put(Sq(0, col), backRank[i], Black)
			b.Put(Sq(size-1, col), backRank[i], White)
		}
	}

	for _, row := range []int{0, size - 1} {
		color := Black
		if row == size-1 {
			color = White
		}
		for col := 0; col < size; col++ {
			p := b.At(Sq(row, col))
			if p == nil || p.Type() != Rook || p.Color != color {
				continue
			}
			for _, dc := range []int{-1, 1} {
				if sq := Sq(row, col+dc); b.IsEmpty(sq) {
					b.Put(sq, Pawn, color)
				}
			}
		}
	}

	return NewState(b), nil
}

// Size returns the board size.
func (s *State) Size() int {
	return s.Board.Size()
}

// Clone returns a deep copy of the state. No mutable substructure is
// shared with the receiver.
func (s *State) Clone() *State {
	ns := &State{
		Board:  s.Board.Clone(),
		Turn:   s.Turn,
		Winner: s.Winner,
	}
	if s.Selected != nil {
		sel := *s.Selected
		ns.Selected = &sel
	}
	if s.Moves != nil {
		ns.Moves = append([]Move(nil), s.Moves...)
	}
	if s.LastMove != nil {
		lm := *s.LastMove
		lm.Captured = s.LastMove.Captured.Clone()
		lm.Mover = s.LastMove.Mover.Clone()
		ns.LastMove = &lm
	}
	if s.PendingUpgrade != nil {
		pu := *s.PendingUpgrade
		ns.PendingUpgrade = &pu
	}
	if s.PendingShield != nil {
		ps := *s.PendingShield
		ns.PendingShield = &ps
	}
	if s.Shield != nil {
		sh := *s.Shield
		ns.Shield = &sh
	}
	return ns
}

// IsShielded returns true if sq currently holds the active shield.
func (s *State) IsShielded(sq Square) bool {
	return s.Shield != nil && s.Shield.Square == sq
}

// GameOver returns true once a king has been captured.
func (s *State) GameOver() bool {
	return s.Winner != NoColor
}

// String returns a visual representation of the state.
func (s *State) String() string {
	out := s.Board.String()
	out += fmt.Sprintf("Side to move: %s\n", s.Turn)
	if s.Shield != nil {
		out += fmt.Sprintf("Shield: %s (%s, expires when %s to move)\n",
			s.Shield.Square.Algebraic(s.Size()), s.Shield.Owner, s.Shield.ExpiresOn)
	}
	if s.Winner != NoColor {
		out += fmt.Sprintf("Winner: %s\n", s.Winner)
	}
	return out
}
