package board

// ApplyOptions selects the interactive variant of a move application.
type ApplyOptions struct {
	// PromptShield defers the King/Queen capture shield to the mover's
	// owner: PendingShield is set and the turn does not flip until
	// ResolveShield is called.
	PromptShield bool
	// PromptUpgrade records PendingUpgrade on the destination after a
	// capture that did not end the game.
	PromptUpgrade bool
}

// ApplyMove returns the state after m. The input state is never modified
// and shares no mutable structure with the result. A move whose source
// square is empty returns an unchanged copy.
func ApplyMove(s *State, m Move) *State {
	return Apply(s, m, ApplyOptions{})
}

// Apply is ApplyMove with interactive options.
func Apply(s *State, m Move, opts ApplyOptions) *State {
	ns := s.Clone()
	b := ns.Board

	p := b.At(m.From)
	if p == nil || !b.InBounds(m.To) {
		return ns
	}
	preType := p.Type()
	mover := p.Clone()

	captured := b.At(m.To)
	b.Set(m.To, p)
	b.Set(m.From, nil)
	p.Moved = true

	ns.LastMove = &LastMove{From: m.From, To: m.To, Captured: captured.Clone(), Mover: mover, Move: m}

	if pawn, ok := p.Abilities.(*PawnAbilities); ok {
		if m.To.Row == farRank(p.Color, b.Size()) || captured != nil {
			pawn.Reverse = true
		}
	}

	if captured != nil {
		p.Progress().Banked++

		if p.Progress().Mimic {
			p.mimic(captured)
		}

		if captured.Type() == King {
			ns.Winner = p.Color
		} else {
			if opts.PromptUpgrade {
				to := m.To
				ns.PendingUpgrade = &to
			}
			if preType == King || preType == Queen {
				if opts.PromptShield {
					ns.PendingShield = &PendingShield{Owner: p.Color}
				} else {
					ns.Shield = &Shield{Square: m.To, Owner: p.Color, ExpiresOn: p.Color}
				}
			}
		}
	}

	ns.Selected = nil
	ns.Moves = nil

	if ns.PendingShield == nil {
		ns.endTurn(p.Color)
	}
	return ns
}

// ResolveShield completes a turn left open by a King/Queen capture: the
// owner's piece on sq becomes shielded through the opponent's next turn.
func ResolveShield(s *State, sq Square) (*State, error) {
	if s.PendingShield == nil {
		return nil, ErrNoPendingShield
	}
	owner := s.PendingShield.Owner
	target := s.Board.At(sq)
	if target == nil || target.Color != owner {
		return nil, ErrInvalidShieldTarget
	}

	ns := s.Clone()
	ns.Shield = &Shield{Square: sq, Owner: owner, ExpiresOn: owner}
	ns.PendingShield = nil
	ns.Selected = nil
	ns.Moves = nil
	ns.endTurn(owner)
	return ns, nil
}

// endTurn hands the move to the opponent of mover and expires the shield
// once its owner is to move again.
func (s *State) endTurn(mover Color) {
	s.Turn = mover.Other()
	if s.Shield != nil && s.Shield.ExpiresOn == s.Turn {
		s.Shield = nil
	}
}

// farRank returns the opponent's back rank for color c.
func farRank(c Color, size int) int {
	if c == White {
		return 0
	}
	return size - 1
}
