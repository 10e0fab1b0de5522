package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chess2/internal/board"
	"github.com/hailam/chess2/internal/engine"
	"github.com/hailam/chess2/internal/session"
	"github.com/hailam/chess2/internal/storage"
)

// UI Constants, in logical pixels
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardArea    = 640
	PanelWidth   = ScreenWidth - BoardArea
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout() and used by every draw helper.
var UIScale float64 = 1.0

// computerMoveDelay keeps computer replies visible after the previous move.
const computerMoveDelay = 350 * time.Millisecond

// aiResult carries a finished search back to the game loop.
type aiResult struct {
	move    board.Move
	ok      bool
	version uint64
}

// Game implements ebiten.Game interface.
type Game struct {
	sess *session.Session
	eng  *engine.Engine

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	backdrop *Backdrop

	// Modals
	settingsModal *SettingsModal
	welcomeScreen *WelcomeScreen
	picker        *UpgradePicker

	hover board.Square

	// Computer player
	aiThinking  bool
	aiMove      chan aiResult
	aiStalled   uint64 // session version at which the computer had no move
	aiNotBefore time.Time

	// Per-game statistics
	recorded bool
	captures int
	upgrades int

	scale float64
}

// NewGame creates the game window state and starts a game from the saved
// preferences.
func NewGame() *Game {
	g := &Game{
		eng:    engine.NewEngine(),
		input:  NewInputHandler(),
		aiMove: make(chan aiResult, 1),
		hover:  board.NoSquare,
		scale:  1.0,
	}

	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}
	g.loadPreferences()

	g.renderer = NewRenderer(BoardArea, g.prefs.BoardSize)
	g.feedback = NewFeedbackManager()
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
	g.backdrop = NewBackdrop()

	g.settingsModal = NewSettingsModal()
	g.welcomeScreen = NewWelcomeScreen()
	g.picker = NewUpgradePicker()

	g.sess, err = session.New(g.configFromPrefs(), g.eng)
	if err != nil {
		log.Printf("Warning: %v; using defaults", err)
		g.prefs.BoardSize = storage.DefaultBoardSize
		g.renderer.SetSize(g.prefs.BoardSize)
		g.sess, _ = session.New(g.configFromPrefs(), g.eng)
	}

	g.panel = NewPanel(g)
	g.sess.OnMessage = g.panel.AppendLog
	g.panel.ResetLog(g.sess.Messages())
	g.applyOrientation()

	g.checkFirstLaunch()
	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}
}

// savePreferences copies the live configuration into the preferences and
// saves them.
func (g *Game) savePreferences() {
	cfg := g.sess.Config()
	g.prefs.BoardSize = cfg.Size
	g.prefs.GameMode = storage.GameMode(cfg.Mode)
	g.prefs.Difficulty = int(cfg.Difficulty)

	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// configFromPrefs builds a session configuration from the preferences.
func (g *Game) configFromPrefs() session.Config {
	cfg := session.Config{
		Size:       g.prefs.BoardSize,
		Mode:       session.Mode(g.prefs.GameMode),
		Difficulty: engine.Difficulty(g.prefs.Difficulty),
		Computer:   board.Black,
	}
	if g.prefs.PlayerColor == storage.ColorBlack {
		cfg.Computer = board.White
	}
	return cfg
}

// checkFirstLaunch shows the welcome screen on first launch.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}

	isFirst, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !isFirst {
		return
	}

	g.welcomeScreen.Show(func(name string, size int) {
		g.prefs.Username = name
		if err := g.storage.MarkFirstLaunchComplete(); err != nil {
			log.Printf("Warning: Failed to mark first launch complete: %v", err)
		}
		if size != g.sess.Config().Size {
			cfg := g.sess.Config()
			cfg.Size = size
			g.restart(cfg)
			return
		}
		g.savePreferences()
	})
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	switch {
	case g.welcomeScreen.IsVisible():
		g.welcomeScreen.Update(g.input)
	case g.settingsModal.IsVisible():
		g.settingsModal.Update(g.input)
	default:
		g.syncPicker()
		if g.picker.IsVisible() {
			g.picker.Update(g.input)
		} else if !g.handleKeys() && !g.panel.HandleInput(g.input) {
			g.handleBoardInput()
		}
	}

	g.checkAIMove()
	g.startAIThinking()
	g.updateCursor()
	return nil
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	var hovered bool
	switch {
	case g.welcomeScreen.IsVisible():
		hovered = g.welcomeScreen.AnyButtonHovered()
	case g.settingsModal.IsVisible():
		hovered = g.settingsModal.AnyButtonHovered()
	case g.picker.IsVisible():
		hovered = g.picker.AnyButtonHovered()
	default:
		hovered = g.panel.AnyButtonHovered()
	}

	if hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)

	st := g.sess.State()
	g.renderer.DrawBoard(screen)

	var hover []board.Move
	if g.prefs.ShowHover && st.Selected == nil && !st.GameOver() {
		hover = g.sess.Preview(g.hover)
	}
	g.renderer.DrawHighlights(screen, st, hover)
	g.renderer.DrawPieces(screen, st, g.feedback.Animations())
	g.feedback.Draw(screen, g.renderer)

	g.panel.Draw(screen)

	g.picker.Draw(screen, g.backdrop)
	g.settingsModal.Draw(screen, g.backdrop)
	g.welcomeScreen.Draw(screen, g.backdrop)
}

// Layout returns the game's screen dimensions.
// Uses device scale factor for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = max(1.0, ebiten.Monitor().DeviceScaleFactor())
	UIScale = g.scale
	return int(ScreenWidth * g.scale), int(ScreenHeight * g.scale)
}

// handleKeys processes keyboard shortcuts. Returns true if a key was handled.
func (g *Game) handleKeys() bool {
	switch {
	case IsKeyJustPressed(ebiten.KeyU):
		g.UndoAction()
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	case IsKeyJustPressed(ebiten.KeyEscape):
		g.sess.ClearSelection()
	default:
		return false
	}
	return true
}

// handleBoardInput tracks the hovered square and turns clicks into
// selections, moves and shield choices. A right click on a piece spends
// one of its banked points.
func (g *Game) handleBoardInput() {
	mx, my := g.input.MousePosition()
	sq := g.renderer.ScreenToSquare(mx, my)
	g.hover = sq

	st := g.sess.State()
	if sq == board.NoSquare || st.GameOver() {
		return
	}

	if g.input.IsRightJustPressed() {
		g.spendBanked(sq)
		return
	}
	if !g.input.IsLeftJustPressed() {
		return
	}

	if ps := st.PendingShield; ps != nil {
		if g.sess.IsComputer(ps.Owner) {
			return
		}
		if err := g.sess.ChooseShield(sq); err != nil {
			g.feedback.OnInvalidMove(sq, sq, "Pick one of your own pieces to shield")
			return
		}
		g.feedback.OnShield(sq)
		return
	}

	if g.sess.IsComputer(st.Turn) {
		return
	}

	from := st.Selected
	if g.sess.Click(sq) {
		g.afterMove()
		return
	}
	if from != nil && *from != sq && g.sess.State().Selected == nil {
		g.feedback.OnInvalidMove(*from, sq, "")
	}
}

// syncPicker opens the upgrade picker when the session waits for a
// human upgrade choice, and closes it when the choice went away.
func (g *Game) syncPicker() {
	target := g.sess.UpgradeTarget()
	if target == nil {
		g.picker.Hide()
		return
	}
	if g.picker.IsVisible() {
		return
	}
	g.picker.Show(target, g.sess.UpgradeOptions(), g.chooseUpgrade, g.sess.SkipUpgrade)
}

func (g *Game) chooseUpgrade(key board.UpgradeKey) {
	sq := *g.sess.State().PendingUpgrade
	if err := g.sess.ChooseUpgrade(key); err != nil {
		log.Printf("[GAME] upgrade %s failed: %v", key, err)
		g.feedback.Toast("Upgrade not available", ToastError)
		return
	}
	g.upgrades++
	g.feedback.OnUpgrade(sq)
}

// afterMove plays feedback for the move just made and handles the end of
// the game.
func (g *Game) afterMove() {
	st := g.sess.State()
	lm := st.LastMove
	if lm == nil {
		return
	}

	capture := lm.Captured != nil
	g.feedback.OnMoveMade(lm.To, capture)
	if capture && !g.sess.IsComputer(lm.Mover.Color) {
		g.captures++
	}
	if sh := st.Shield; sh != nil && sh.Square == lm.To && sh.Owner == lm.Mover.Color {
		g.feedback.OnShield(lm.To)
	}

	if st.GameOver() {
		g.feedback.OnWin(st.Winner)
		g.recordResult()
	}
	g.aiNotBefore = time.Now().Add(computerMoveDelay)
}

// recordResult stores the finished game in the statistics once.
func (g *Game) recordResult() {
	if g.recorded || g.storage == nil {
		return
	}
	g.recorded = true

	cfg := g.sess.Config()
	if cfg.Mode == session.ComputerVsComputer {
		return
	}
	result := storage.GameResult{
		Won:        cfg.Mode == session.HumanVsHuman || g.sess.Winner() != cfg.Computer,
		Mode:       storage.GameMode(cfg.Mode),
		Difficulty: int(cfg.Difficulty),
		BoardSize:  cfg.Size,
		Captures:   g.captures,
		Upgrades:   g.upgrades,
		Duration:   time.Since(g.sess.Started()),
	}
	if err := g.storage.RecordGame(result); err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
	}
}

// startAIThinking starts a computer search in a goroutine when it is the
// computer's turn.
func (g *Game) startAIThinking() {
	if g.aiThinking || g.welcomeScreen.IsVisible() || !g.sess.IsComputerTurn() {
		return
	}
	if g.sess.Version() == g.aiStalled || time.Now().Before(g.aiNotBefore) {
		return
	}

	search, version := g.sess.Think()
	g.aiThinking = true
	log.Printf("[AI] Starting search for %s (difficulty %d)", g.sess.State().Turn, g.sess.Config().Difficulty)

	go func() {
		m, ok := search()
		g.aiMove <- aiResult{move: m, ok: ok, version: version}
	}()
}

// checkAIMove applies a finished search unless the game moved on.
func (g *Game) checkAIMove() {
	if !g.aiThinking {
		return
	}

	select {
	case res := <-g.aiMove:
		g.aiThinking = false
		if !res.ok {
			if res.version == g.sess.Version() {
				g.aiStalled = res.version
				g.feedback.Toast(fmt.Sprintf("%s has no legal moves", g.sess.State().Turn), ToastWarning)
			}
			return
		}
		if err := g.sess.PlayComputer(res.move, res.version); err != nil {
			if !errors.Is(err, session.ErrStale) {
				log.Printf("[AI] Move %s rejected: %v", res.move.Notation(g.sess.State().Size()), err)
			}
			return
		}
		g.afterMove()
	default:
		// Still thinking
	}
}

// cancelAI aborts a running search. Its result arrives later and is
// discarded as stale.
func (g *Game) cancelAI() {
	if g.aiThinking {
		g.sess.StopThinking()
	}
}

// restart begins a new game with cfg.
func (g *Game) restart(cfg session.Config) {
	g.cancelAI()
	if err := g.sess.Restart(cfg); err != nil {
		log.Printf("Warning: Failed to start game: %v", err)
		g.feedback.Toast("Could not start that game", ToastError)
		return
	}
	g.renderer.SetSize(cfg.Size)
	g.resetGame()
	g.savePreferences()
}

// resetGame clears the per-game UI state.
func (g *Game) resetGame() {
	g.picker.Hide()
	g.feedback.Animations().Clear()
	g.recorded = false
	g.captures, g.upgrades = 0, 0
	g.aiStalled = 0
	g.aiNotBefore = time.Now().Add(computerMoveDelay)
	g.applyOrientation()
}

// applyOrientation puts the human side at the bottom against the computer.
func (g *Game) applyOrientation() {
	cfg := g.sess.Config()
	g.renderer.SetFlipped(cfg.Mode == session.HumanVsComputer && cfg.Computer == board.White)
}

// NewGameAction restarts with the current configuration.
func (g *Game) NewGameAction() {
	g.restart(g.sess.Config())
}

// UndoAction reverts the last move.
func (g *Game) UndoAction() {
	g.cancelAI()
	if err := g.sess.Undo(); err != nil {
		return
	}
	g.picker.Hide()
	g.aiStalled = 0
	g.aiNotBefore = time.Now().Add(computerMoveDelay)
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
}

// SetMode starts a new game in mode.
func (g *Game) SetMode(mode session.Mode) {
	cfg := g.sess.Config()
	if cfg.Mode == mode {
		return
	}
	cfg.Mode = mode
	g.restart(cfg)
}

// ChangeDifficulty moves the computer's difficulty by delta levels.
func (g *Game) ChangeDifficulty(delta int) {
	d := (g.sess.Config().Difficulty + engine.Difficulty(delta)).Clamp()
	if d == g.sess.Config().Difficulty {
		return
	}
	g.sess.SetDifficulty(d)
	g.savePreferences()
}

// ChangeBoardSize steps through the offered board sizes and starts a new
// game.
func (g *Game) ChangeBoardSize(delta int) {
	cfg := g.sess.Config()
	i, found := slices.BinarySearch(boardSizes, cfg.Size)
	if !found && delta > 0 {
		i--
	}
	i = max(0, min(len(boardSizes)-1, i+delta))
	if boardSizes[i] == cfg.Size || (delta > 0) != (boardSizes[i] > cfg.Size) {
		return
	}
	cfg.Size = boardSizes[i]
	g.restart(cfg)
}

// SpendBankedAction opens the upgrade picker for the selected piece.
func (g *Game) SpendBankedAction() {
	if sel := g.sess.State().Selected; sel != nil {
		g.spendBanked(*sel)
	}
}

func (g *Game) spendBanked(sq board.Square) {
	if g.sess.State().Board.At(sq) == nil {
		return
	}
	err := g.sess.OpenUpgrade(sq)
	switch {
	case err == nil:
	case errors.Is(err, board.ErrNoBankedPoints):
		g.feedback.Toast("No banked points on that piece", ToastInfo)
	case errors.Is(err, session.ErrNotYourTurn):
		g.feedback.Toast("Only the side to move can spend points", ToastInfo)
	default:
		log.Printf("[GAME] spend on %s: %v", sq.Algebraic(g.sess.State().Size()), err)
	}
}

// CanSpendBanked reports whether the selected piece has a point to spend.
func (g *Game) CanSpendBanked() bool {
	st := g.sess.State()
	if st.Selected == nil || st.GameOver() {
		return false
	}
	p := st.Board.At(*st.Selected)
	return p != nil && p.Banked() > 0 && !g.sess.IsComputer(p.Color)
}

// ShowSettings opens the settings modal.
func (g *Game) ShowSettings() {
	g.settingsModal.Show(g.prefs, g.applySettings)
}

// applySettings takes the edited preferences. A new board size or side
// starts a new game.
func (g *Game) applySettings(prefs *storage.UserPreferences) {
	sideChanged := prefs.PlayerColor != g.prefs.PlayerColor
	g.prefs = prefs
	g.feedback.Audio().SetEnabled(prefs.SoundEnabled)

	cfg := g.configFromPrefs()
	cfg.Mode = g.sess.Config().Mode
	if cfg.Size != g.sess.Config().Size || (sideChanged && cfg.Mode == session.HumanVsComputer) {
		g.restart(cfg)
		return
	}
	g.sess.SetDifficulty(cfg.Difficulty)
	g.savePreferences()
}

// Session returns the running game.
func (g *Game) Session() *session.Session {
	return g.sess
}

// Mode returns who plays each side.
func (g *Game) Mode() session.Mode {
	return g.sess.Config().Mode
}

// Difficulty returns the computer difficulty level.
func (g *Game) Difficulty() int {
	return int(g.sess.Config().Difficulty)
}

// Username returns the current username.
func (g *Game) Username() string {
	return g.prefs.Username
}

// IsAIThinking returns true if the computer is searching.
func (g *Game) IsAIThinking() bool {
	return g.aiThinking
}

// StatusText describes what the game is waiting for.
func (g *Game) StatusText() (string, color.RGBA) {
	st := g.sess.State()
	switch {
	case st.GameOver():
		return fmt.Sprintf("%s wins by capturing the King!", st.Winner), statusGameOver
	case st.PendingUpgrade != nil:
		return "Choose an upgrade or bank the point", accentColor
	case st.PendingShield != nil:
		return fmt.Sprintf("%s: pick a piece to shield", st.PendingShield.Owner), accentColor
	case g.aiThinking:
		return "Computer thinking...", statusThinking
	}
	return fmt.Sprintf("%s to move", st.Turn), textPrimary
}

// SelectionText describes the selected piece, or the hovered one.
func (g *Game) SelectionText() string {
	st := g.sess.State()
	sq := g.hover
	if st.Selected != nil {
		sq = *st.Selected
	}
	if !st.Board.InBounds(sq) {
		return ""
	}
	p := st.Board.At(sq)
	if p == nil {
		return ""
	}
	s := fmt.Sprintf("%s · Lv %d", p.Name(), p.Level())
	if b := p.Banked(); b > 0 {
		s += fmt.Sprintf(" · %d banked", b)
	}
	if st.IsShielded(sq) {
		s += " · shielded"
	}
	return s
}

// Close stops the computer and releases storage.
func (g *Game) Close() {
	g.cancelAI()
	if g.storage != nil {
		g.savePreferences()
		g.storage.Close()
	}
}
