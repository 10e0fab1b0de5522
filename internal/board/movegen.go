package board

var (
	orthogonals = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonals   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allEight    = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// generator accumulates candidate destinations for one piece.
type generator struct {
	s     *State
	b     *Board
	from  Square
	p     *Piece
	moves []Move
}

// LegalMoves returns the destinations of piece p standing on from. If p is
// nil the occupant of from is used. The result does not depend on whose
// turn it is, so it also serves hover previews.
func LegalMoves(s *State, from Square, p *Piece) []Move {
	if p == nil {
		p = s.Board.At(from)
	}
	if p == nil || p.Abilities == nil {
		return nil
	}

	g := &generator{s: s, b: s.Board, from: from, p: p}
	p.Abilities.generate(g)

	return filterAdjacencyImmunity(s, p, dedupe(g.moves))
}

// AllMoves returns every move of every piece of color c, scanning the board
// in row-major order.
func AllMoves(s *State, c Color) []Move {
	var moves []Move
	for _, loc := range s.Board.Find(func(p *Piece) bool { return p.Color == c }) {
		moves = append(moves, LegalMoves(s, loc.Square, loc.Piece)...)
	}
	return moves
}

// HasMoves returns true if color c has at least one move.
func HasMoves(s *State, c Color) bool {
	for _, loc := range s.Board.Find(func(p *Piece) bool { return p.Color == c }) {
		if len(LegalMoves(s, loc.Square, loc.Piece)) > 0 {
			return true
		}
	}
	return false
}

// add appends to as a destination unless it is off-board, holds a friendly
// piece, or holds an enemy under the active shield.
func (g *generator) add(to Square, tag MoveTag) {
	if !g.b.InBounds(to) {
		return
	}
	occ := g.b.At(to)
	if occ != nil && occ.Color == g.p.Color {
		return
	}
	if occ != nil && g.s.IsShielded(to) {
		return
	}
	g.moves = append(g.moves, Move{From: g.from, To: to, Capture: occ != nil, Tag: tag})
}

// ray walks from the piece in direction (dr, dc) for at most max squares,
// stopping at (and possibly capturing) the first occupant.
func (g *generator) ray(dr, dc, max int, tag MoveTag) {
	for i := 1; i <= max; i++ {
		sq := g.from.Add(dr*i, dc*i)
		if !g.b.InBounds(sq) {
			return
		}
		occ := g.b.At(sq)
		if occ == nil {
			g.add(sq, tag)
			continue
		}
		if occ.Color != g.p.Color {
			g.add(sq, tag)
		}
		return
	}
}

func (g *generator) rays(dirs [][2]int, max int) {
	for _, d := range dirs {
		g.ray(d[0], d[1], max, TagNone)
	}
}

// leaps adds the eight reflections of the (a, b) jump.
func (g *generator) leaps(a, b int, tag MoveTag) {
	for _, off := range reflections(a, b) {
		g.add(g.from.Add(off[0], off[1]), tag)
	}
}

func reflections(a, b int) [8][2]int {
	return [8][2]int{{a, b}, {a, -b}, {-a, b}, {-a, -b}, {b, a}, {b, -a}, {-b, a}, {-b, -a}}
}

func (a *PawnAbilities) generate(g *generator) {
	dir := g.p.Color.Forward()

	g.pawnPushes(dir, a.ForwardRange, TagForward)

	// First-move double step, independent of ForwardRange.
	if !g.p.Moved {
		one, two := g.from.Add(dir, 0), g.from.Add(2*dir, 0)
		if g.b.IsEmpty(one) && g.b.IsEmpty(two) {
			g.add(two, TagDouble)
		}
	}

	g.pawnCaptures(dir, a.DiagRange, TagDiagCapture)

	if a.Reverse {
		g.pawnPushes(-dir, a.ForwardRange, TagReverseForward)
		g.pawnCaptures(-dir, a.DiagRange, TagReverseDiagCapture)
	}

	if a.SideStep {
		for _, dc := range []int{-1, 1} {
			if sq := g.from.Add(0, dc); g.b.IsEmpty(sq) {
				g.add(sq, TagSide)
			}
		}
	}
}

func (g *generator) pawnPushes(dir, rng int, tag MoveTag) {
	for i := 1; i <= rng; i++ {
		sq := g.from.Add(dir*i, 0)
		if !g.b.IsEmpty(sq) {
			return
		}
		g.add(sq, tag)
	}
}

func (g *generator) pawnCaptures(dir, rng int, tag MoveTag) {
	for i := 1; i <= rng; i++ {
		for _, dc := range []int{-i, i} {
			sq := g.from.Add(dir*i, dc)
			if occ := g.b.At(sq); occ != nil && occ.Color != g.p.Color {
				g.add(sq, tag)
			}
		}
	}
}

// KnightLegs returns the distinct (long, short) leg pairs of a knight with
// the given flex: every split (2+a, 1+(flex-a)) for a in [0, flex], in both
// orders.
func KnightLegs(flex int) [][2]int {
	flex = max(0, flex)
	var legs [][2]int
	seen := make(map[[2]int]bool)
	for a := 0; a <= flex; a++ {
		long, short := 2+a, 1+(flex-a)
		for _, leg := range [][2]int{{long, short}, {short, long}} {
			if !seen[leg] {
				seen[leg] = true
				legs = append(legs, leg)
			}
		}
	}
	return legs
}

func (a *KnightAbilities) generate(g *generator) {
	for _, leg := range KnightLegs(a.Flex) {
		g.leaps(leg[0], leg[1], TagNone)
	}
	if a.Diag22 {
		for _, d := range diagonals {
			g.add(g.from.Add(2*d[0], 2*d[1]), TagNone)
		}
	}
}

func (a *BishopAbilities) generate(g *generator) {
	size := g.b.Size()
	g.rays(diagonals[:], size)

	if a.OrthoFull {
		g.rays(orthogonals[:], size)
	} else if a.OrthoRange > 0 {
		g.rays(orthogonals[:], a.OrthoRange)
	}

	if a.DiagJump {
		for _, d := range diagonals {
			over := g.from.Add(d[0], d[1])
			land := g.from.Add(2*d[0], 2*d[1])
			if g.b.InBounds(land) && g.b.At(over) != nil && g.b.IsEmpty(land) {
				g.add(land, TagJump)
			}
		}
	}
}

func (a *RookAbilities) generate(g *generator) {
	size := g.b.Size()
	g.rays(orthogonals[:], size)

	if a.DiagFull {
		g.rays(diagonals[:], size)
	} else if a.DiagRange > 0 {
		g.rays(diagonals[:], a.DiagRange)
	}

	if a.Charge {
		dir := g.p.Color.Forward()
		for i := 1; i <= 4; i++ {
			sq := g.from.Add(dir*i, 0)
			if !g.b.IsEmpty(sq) {
				break
			}
			g.add(sq, TagCharge)
		}
	}
}

// knightLeg returns the queen's knight leg.
func (a *QueenAbilities) knightLeg() (int, int) {
	if a.ExtendedKnight {
		return 3, 2
	}
	return 2, 1
}

func (a *QueenAbilities) generate(g *generator) {
	g.rays(allEight[:], g.b.Size())

	if !a.KnightJump {
		return
	}
	long, short := a.knightLeg()
	g.leaps(long, short, TagKnight)

	if a.ChainLength > 0 {
		g.knightChain(reflections(long, short), a.ChainLength)
	}
}

// knightChain offers every square reachable in exactly hops knight jumps
// whose intermediate landings are all empty. Only the last hop may capture.
func (g *generator) knightChain(offsets [8][2]int, hops int) {
	frontier := []Square{g.from}
	for depth := 1; depth < hops; depth++ {
		var next []Square
		seen := make(map[Square]bool)
		for _, sq := range frontier {
			for _, off := range offsets {
				n := sq.Add(off[0], off[1])
				if !seen[n] && g.b.IsEmpty(n) {
					seen[n] = true
					next = append(next, n)
				}
			}
		}
		frontier = next
	}

	for _, sq := range frontier {
		for _, off := range offsets {
			if n := sq.Add(off[0], off[1]); n != g.from {
				g.add(n, TagChain)
			}
		}
	}
}

func (a *KingAbilities) generate(g *generator) {
	steps := max(1, a.MaxStep)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			g.ray(dr, dc, steps, TagNone)
		}
	}
	if a.KnightJump {
		g.leaps(2, 1, TagKnight)
	}
}

// dedupe keeps the first move generated for each destination.
func dedupe(moves []Move) []Move {
	if len(moves) < 2 {
		return moves
	}
	seen := make(map[Square]bool, len(moves))
	out := moves[:0]
	for _, m := range moves {
		if seen[m.To] {
			continue
		}
		seen[m.To] = true
		out = append(out, m)
	}
	return out
}

// filterAdjacencyImmunity removes destinations adjacent to an opposing king
// with a royal circle. The king's own square stays capturable. A piece
// inside the circle may leave it but not step to another square of it.
func filterAdjacencyImmunity(s *State, p *Piece, moves []Move) []Move {
	opp := p.Color.Other()
	royals := s.Board.Find(func(k *Piece) bool { return k.Color == opp && k.adjacencyImmune() })
	if len(royals) == 0 {
		return moves
	}

	out := moves[:0]
	for _, m := range moves {
		if !blockedByRoyalCircle(royals, m.To) {
			out = append(out, m)
		}
	}
	return out
}

func blockedByRoyalCircle(royals []Located, to Square) bool {
	for _, r := range royals {
		if to == r.Square {
			continue
		}
		if Chebyshev(to, r.Square) == 1 {
			return true
		}
	}
	return false
}
