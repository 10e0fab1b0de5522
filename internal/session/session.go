// Package session drives one game: it turns clicks into selections, moves
// and upgrade or shield choices, runs the computer's turns, and keeps the
// undo stack and the game log.
package session

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/chess2/internal/board"
	"github.com/hailam/chess2/internal/engine"
)

// Mode selects who plays each side.
type Mode int

const (
	HumanVsHuman Mode = iota
	HumanVsComputer
	ComputerVsComputer
)

func (m Mode) String() string {
	switch m {
	case HumanVsHuman:
		return "Local PvP"
	case HumanVsComputer:
		return "vs Computer"
	case ComputerVsComputer:
		return "Computer vs Computer"
	}
	return "Unknown"
}

// Config describes a game.
type Config struct {
	Size       int
	Mode       Mode
	Difficulty engine.Difficulty
	Computer   board.Color // side played by the computer in HumanVsComputer
}

// DefaultConfig returns a 10×10 game against the computer playing Black.
func DefaultConfig() Config {
	return Config{
		Size:       board.DefaultBoardSize,
		Mode:       HumanVsComputer,
		Difficulty: engine.DefaultDifficulty,
		Computer:   board.Black,
	}
}

// maxMessages bounds the in-memory game log.
const maxMessages = 500

// Message is one line of the game log.
type Message struct {
	Time time.Time
	Text string
}

func (m Message) String() string {
	return fmt.Sprintf("[%s] %s", m.Time.Format("15:04:05"), m.Text)
}

// Session is a single game in progress. It is not safe for concurrent
// use; only the function returned by Think may run on another goroutine.
type Session struct {
	ID string

	cfg     Config
	eng     *engine.Engine
	state   *board.State
	history []*board.State
	version uint64
	started time.Time

	messages []Message

	// OnMessage is called for every new log line.
	OnMessage func(Message)
}

// New starts a game. The engine is used for computer turns and may be nil
// for HumanVsHuman.
func New(cfg Config, eng *engine.Engine) (*Session, error) {
	if eng == nil {
		eng = engine.NewEngine()
	}
	s := &Session{ID: uuid.NewString(), eng: eng}
	if err := s.Restart(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart replaces the game with a fresh one using cfg.
func (s *Session) Restart(cfg Config) error {
	cfg.Difficulty = cfg.Difficulty.Clamp()
	if cfg.Computer != board.White {
		cfg.Computer = board.Black
	}

	st, err := board.Initial(cfg.Size)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}

	s.cfg = cfg
	s.state = st
	s.history = nil
	s.started = time.Now()
	s.version++

	log.Printf("[SESSION] %s: %dx%d, %s, difficulty %d", s.ID, cfg.Size, cfg.Size, cfg.Mode, cfg.Difficulty)
	if cfg.Mode == HumanVsComputer {
		s.logf("Mode: vs Computer (difficulty %d). White to move.", cfg.Difficulty)
	} else {
		s.logf("Mode: %s. White to move.", cfg.Mode)
	}
	return nil
}

// NewGame restarts with the current configuration.
func (s *Session) NewGame() {
	if err := s.Restart(s.cfg); err != nil {
		// The current size was already validated.
		log.Printf("[SESSION] restart failed: %v", err)
	}
}

// Config returns the game configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// SetDifficulty changes the computer's strength for the rest of the game.
func (s *Session) SetDifficulty(d engine.Difficulty) {
	d = d.Clamp()
	if d == s.cfg.Difficulty {
		return
	}
	s.cfg.Difficulty = d
	s.logf("Difficulty set to %d.", d)
}

// State returns the current state. Callers must not modify it.
func (s *Session) State() *board.State {
	return s.state
}

// Version changes whenever the position does.
func (s *Session) Version() uint64 {
	return s.version
}

// Started returns when the current game began.
func (s *Session) Started() time.Time {
	return s.started
}

// Winner returns the colour that captured a king, or NoColor.
func (s *Session) Winner() board.Color {
	return s.state.Winner
}

// Ply returns the number of moves on the undo stack.
func (s *Session) Ply() int {
	return len(s.history)
}

// IsComputer reports whether the computer plays c.
func (s *Session) IsComputer(c board.Color) bool {
	switch s.cfg.Mode {
	case ComputerVsComputer:
		return true
	case HumanVsComputer:
		return c == s.cfg.Computer
	}
	return false
}

// awaitingChoice is true while an upgrade or shield choice blocks play.
func (s *Session) awaitingChoice() bool {
	return s.state.PendingUpgrade != nil || s.state.PendingShield != nil
}

// IsComputerTurn returns true if the computer should move now.
func (s *Session) IsComputerTurn() bool {
	return !s.state.GameOver() && !s.awaitingChoice() && s.IsComputer(s.state.Turn)
}

// Preview returns the moves of the piece on sq regardless of whose turn
// it is, for hover highlighting.
func (s *Session) Preview(sq board.Square) []board.Move {
	if !s.state.Board.InBounds(sq) {
		return nil
	}
	return board.LegalMoves(s.state, sq, nil)
}

// Click handles a click on sq: it picks the pending shield target, selects
// a piece of the side to move, or plays the selected piece onto one of its
// listed destinations. Any other click clears the selection. It returns
// true if a move was played.
func (s *Session) Click(sq board.Square) bool {
	st := s.state
	if st.GameOver() || st.PendingUpgrade != nil || !st.Board.InBounds(sq) {
		return false
	}

	if st.PendingShield != nil {
		if s.IsComputer(st.PendingShield.Owner) {
			return false
		}
		if err := s.ChooseShield(sq); err != nil {
			log.Printf("[SESSION] shield on %s rejected: %v", sq.Algebraic(st.Size()), err)
		}
		return false
	}

	if s.IsComputer(st.Turn) {
		return false
	}

	if p := st.Board.At(sq); p != nil && p.Color == st.Turn {
		sel := sq
		st.Selected = &sel
		st.Moves = board.LegalMoves(st, sq, p)
		return false
	}

	if st.Selected != nil {
		m, ok := board.FindMove(st.Moves, sq)
		if !ok {
			st.Selected, st.Moves = nil, nil
			return false
		}
		if err := s.Play(m); err != nil {
			log.Printf("[MOVE] %s rejected: %v", m.Notation(st.Size()), err)
			return false
		}
		return true
	}
	return false
}

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() {
	s.state.Selected, s.state.Moves = nil, nil
}

// Play applies m for the side to move. Human captures leave the upgrade
// and shield choices pending; the computer decides both immediately.
func (s *Session) Play(m board.Move) error {
	prev := s.state
	if prev.GameOver() {
		return ErrGameOver
	}
	if s.awaitingChoice() {
		return ErrAwaitingChoice
	}
	p := prev.Board.At(m.From)
	if p == nil || p.Color != prev.Turn {
		return ErrNotYourTurn
	}
	legal, ok := board.FindMove(board.LegalMoves(prev, m.From, p), m.To)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.Notation(prev.Size()))
	}

	computer := s.IsComputer(p.Color)
	s.history = append(s.history, prev.Clone())
	next := board.Apply(prev, legal, board.ApplyOptions{PromptShield: !computer, PromptUpgrade: !computer})
	s.state = next
	s.version++

	log.Printf("[MOVE] %s %s", p.Name(), legal.Notation(prev.Size()))
	s.announce(prev, next, computer)

	if computer && next.LastMove.Captured != nil && !next.GameOver() {
		s.autoUpgrade(next.LastMove.To)
	}
	return nil
}

// announce logs the consequences of the move that turned prev into next.
func (s *Session) announce(prev, next *board.State, computer bool) {
	lm := next.LastMove
	size := next.Size()
	to := lm.To.Algebraic(size)
	mover := next.Board.At(lm.To)

	if lm.Captured != nil {
		s.logf("%s captured %s on %s (+1 Upgrade Point)", lm.Mover.Name(), lm.Captured.Name(), to)
		if next.GameOver() {
			s.logf("%s wins by capturing the King!", next.Winner)
			return
		}
		if mover.Type() != lm.Mover.Type() {
			s.logf("%s piece mimics %s and transforms!", mover.Color, mover.Type())
		}
	}

	switch {
	case next.PendingShield != nil:
		s.logf("%s may select a friendly piece to gain Royal Immunity for one enemy turn.", next.PendingShield.Owner)
	case computer && lm.Captured != nil && next.IsShielded(lm.To):
		s.logf("Computer shields %s on %s for one enemy turn.", mover.Type(), to)
	}

	if prev.Shield != nil && (next.Shield == nil || next.Shield.Owner != prev.Shield.Owner) {
		s.logf("Royal Immunity on %s has expired.", prev.Shield.Square.Algebraic(size))
	}
}

// autoUpgrade spends the computer's point on the piece at sq. With nothing
// on offer the point is spent without effect.
func (s *Session) autoUpgrade(sq board.Square) {
	p := s.state.Board.At(sq)
	if p == nil || p.Banked() <= 0 {
		return
	}
	key, ok := engine.PickUpgrade(p)
	if !ok {
		p.Progress().Banked--
		return
	}
	title := optionTitle(p, key)
	if err := board.SpendUpgrade(p, key); err != nil {
		log.Printf("[AI] upgrade %s failed: %v", key, err)
		return
	}
	s.logf("Computer upgraded %s: %s", p.Type(), title)
}

// UpgradeOptions returns the choices for the pending upgrade.
func (s *Session) UpgradeOptions() []board.UpgradeOption {
	if s.state.PendingUpgrade == nil {
		return nil
	}
	return board.UpgradeOptions(s.state.Board.At(*s.state.PendingUpgrade))
}

// UpgradeTarget returns the piece awaiting an upgrade choice, or nil.
func (s *Session) UpgradeTarget() *board.Piece {
	if s.state.PendingUpgrade == nil {
		return nil
	}
	return s.state.Board.At(*s.state.PendingUpgrade)
}

// OpenUpgrade lets the side to move spend a banked point on its piece on
// sq outside of a capture.
func (s *Session) OpenUpgrade(sq board.Square) error {
	st := s.state
	if st.GameOver() {
		return ErrGameOver
	}
	if s.awaitingChoice() {
		return ErrAwaitingChoice
	}
	p := st.Board.At(sq)
	if p == nil || p.Color != st.Turn || s.IsComputer(p.Color) {
		return ErrNotYourTurn
	}
	if p.Banked() <= 0 {
		return board.ErrNoBankedPoints
	}
	target := sq
	st.PendingUpgrade = &target
	st.Selected, st.Moves = nil, nil
	return nil
}

// ChooseUpgrade applies key to the piece awaiting an upgrade and spends
// one of its banked points.
func (s *Session) ChooseUpgrade(key board.UpgradeKey) error {
	if s.state.PendingUpgrade == nil {
		return ErrNoPendingUpgrade
	}
	ns := s.state.Clone()
	p := ns.Board.At(*ns.PendingUpgrade)
	title := optionTitle(p, key)
	if title == "" {
		return fmt.Errorf("%w: %s", ErrUpgradeNotOffered, key)
	}
	if err := board.SpendUpgrade(p, key); err != nil {
		return err
	}
	ns.PendingUpgrade = nil
	s.state = ns
	s.version++
	s.logf("%s upgraded: %s", p.Name(), title)
	return nil
}

// SkipUpgrade closes the pending upgrade and keeps the point banked.
func (s *Session) SkipUpgrade() {
	if s.state.PendingUpgrade == nil {
		return
	}
	p := s.state.Board.At(*s.state.PendingUpgrade)
	s.state.PendingUpgrade = nil
	s.version++
	s.logf("%s banks its point (%d banked).", p.Name(), p.Banked())
}

// ChooseShield resolves a pending shield onto the friendly piece on sq.
func (s *Session) ChooseShield(sq board.Square) error {
	prev := s.state
	next, err := board.ResolveShield(prev, sq)
	if err != nil {
		return err
	}
	s.state = next
	s.version++

	p := next.Board.At(sq)
	s.logf("%s shields %s on %s for one enemy turn.", p.Color, p.Type(), sq.Algebraic(next.Size()))
	if prev.Shield != nil && next.Shield.Owner != prev.Shield.Owner {
		s.logf("Royal Immunity on %s has expired.", prev.Shield.Square.Algebraic(next.Size()))
	}
	return nil
}

// Undo reverts the last move. Against the computer it keeps reverting
// until a human is to move.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		s.logf("Nothing to undo.")
		return ErrNothingToUndo
	}
	for {
		s.state = s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]
		if len(s.history) == 0 || !s.IsComputer(s.state.Turn) || s.cfg.Mode == ComputerVsComputer {
			break
		}
	}
	s.version++
	s.logf("Reverted one move.")
	return nil
}

// CanUndo returns true if there is a move to revert.
func (s *Session) CanUndo() bool {
	return len(s.history) > 0
}

// Think captures the position and difficulty for a computer search. The
// returned function may run on another goroutine; hand its move to
// PlayComputer together with the returned version.
func (s *Session) Think() (search func() (board.Move, bool), version uint64) {
	snapshot := s.state.Clone()
	d := s.cfg.Difficulty
	eng := s.eng
	return func() (board.Move, bool) {
		return eng.ChooseMove(snapshot, d)
	}, s.version
}

// PlayComputer plays a move found by Think, unless the position changed
// in the meantime.
func (s *Session) PlayComputer(m board.Move, version uint64) error {
	if version != s.version {
		return ErrStale
	}
	if !s.IsComputerTurn() {
		return ErrNotYourTurn
	}
	return s.Play(m)
}

// StopThinking aborts a running computer search.
func (s *Session) StopThinking() {
	s.eng.Stop()
}

// ComputerTurn searches and plays the computer's move synchronously. It
// returns false if it is not the computer's turn or no move exists.
func (s *Session) ComputerTurn() (board.Move, bool) {
	if !s.IsComputerTurn() {
		return board.NoMove, false
	}
	if !board.HasMoves(s.state, s.state.Turn) {
		s.logf("%s has no legal moves.", s.state.Turn)
		return board.NoMove, false
	}
	search, version := s.Think()
	m, ok := search()
	if !ok {
		return board.NoMove, false
	}
	if err := s.PlayComputer(m, version); err != nil {
		log.Printf("[AI] move %s rejected: %v", m.Notation(s.state.Size()), err)
		return board.NoMove, false
	}
	return m, true
}

// Messages returns the game log, oldest first.
func (s *Session) Messages() []Message {
	return s.messages
}

func (s *Session) logf(format string, args ...any) {
	msg := Message{Time: time.Now(), Text: fmt.Sprintf(format, args...)}
	s.messages = append(s.messages, msg)
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
	log.Printf("[GAME] %s", msg.Text)
	if s.OnMessage != nil {
		s.OnMessage(msg)
	}
}

// optionTitle returns the title of key if it is offered to p, else "".
func optionTitle(p *board.Piece, key board.UpgradeKey) string {
	for _, o := range board.UpgradeOptions(p) {
		if o.Key == key {
			return o.Title
		}
	}
	return ""
}
