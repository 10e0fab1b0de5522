package board

// Progress is the upgrade bookkeeping shared by every ability variant.
// Mimic lives here rather than on the pawn variant because a piece that
// transformed through mimicry keeps mimicking whatever type it became.
type Progress struct {
	Level  int
	Banked int
	Mimic  bool
}

// Abilities is the per-type upgrade state of a piece. The set of
// implementations is closed: one variant per PieceType.
type Abilities interface {
	Type() PieceType
	Clone() Abilities
	progress() *Progress
	generate(g *generator)
}

// PawnAbilities holds pawn upgrades.
type PawnAbilities struct {
	Progress
	ForwardRange int  // non-capturing forward steps, >= 1
	DiagRange    int  // diagonal capture distance, >= 1
	SideStep     bool // one square left/right, non-capturing
	Reverse      bool // mirrored movement toward the own side
}

// KnightAbilities holds knight upgrades.
type KnightAbilities struct {
	Progress
	Flex   int  // extra steps distributed over the two legs of the (2,1) jump
	Diag22 bool // adds the four (2,2) jumps
}

// BishopAbilities holds bishop upgrades.
type BishopAbilities struct {
	Progress
	OrthoRange int
	OrthoFull  bool
	DiagJump   bool
}

// RookAbilities holds rook upgrades.
type RookAbilities struct {
	Progress
	DiagRange int
	DiagFull  bool
	Charge    bool
}

// QueenAbilities holds queen upgrades.
type QueenAbilities struct {
	Progress
	KnightJump        bool
	ExtendedKnight    bool // knight leg becomes (3,2)
	ChainLength       int  // knight hops per move, 0 disables chaining
	AdjacencyImmunity bool
}

// KingAbilities holds king upgrades.
type KingAbilities struct {
	Progress
	MaxStep           int
	KnightJump        bool
	AdjacencyImmunity bool
}

// NewAbilities returns the base ability set for a piece type.
func NewAbilities(pt PieceType) Abilities {
	switch pt {
	case Pawn:
		return &PawnAbilities{ForwardRange: 1, DiagRange: 1}
	case Knight:
		return &KnightAbilities{}
	case Bishop:
		return &BishopAbilities{}
	case Rook:
		return &RookAbilities{}
	case Queen:
		return &QueenAbilities{}
	case King:
		return &KingAbilities{MaxStep: 1}
	default:
		return nil
	}
}

func (a *PawnAbilities) Type() PieceType   { return Pawn }
func (a *KnightAbilities) Type() PieceType { return Knight }
func (a *BishopAbilities) Type() PieceType { return Bishop }
func (a *RookAbilities) Type() PieceType   { return Rook }
func (a *QueenAbilities) Type() PieceType  { return Queen }
func (a *KingAbilities) Type() PieceType   { return King }

func (a *PawnAbilities) Clone() Abilities   { c := *a; return &c }
func (a *KnightAbilities) Clone() Abilities { c := *a; return &c }
func (a *BishopAbilities) Clone() Abilities { c := *a; return &c }
func (a *RookAbilities) Clone() Abilities   { c := *a; return &c }
func (a *QueenAbilities) Clone() Abilities  { c := *a; return &c }
func (a *KingAbilities) Clone() Abilities   { c := *a; return &c }

func (a *PawnAbilities) progress() *Progress   { return &a.Progress }
func (a *KnightAbilities) progress() *Progress { return &a.Progress }
func (a *BishopAbilities) progress() *Progress { return &a.Progress }
func (a *RookAbilities) progress() *Progress   { return &a.Progress }
func (a *QueenAbilities) progress() *Progress  { return &a.Progress }
func (a *KingAbilities) progress() *Progress   { return &a.Progress }

// mimic replaces the ability set of p with a copy of captured's, keeping
// the level and banked points of p and forcing the mimic flag on.
func (p *Piece) mimic(captured *Piece) {
	prev := *p.Progress()
	next := captured.Abilities.Clone()
	np := next.progress()
	np.Level = prev.Level
	np.Banked = prev.Banked
	np.Mimic = true
	p.Abilities = next
}

// adjacencyImmune reports whether the piece projects a royal circle.
func (p *Piece) adjacencyImmune() bool {
	k, ok := p.Abilities.(*KingAbilities)
	return ok && k.AdjacencyImmunity
}
