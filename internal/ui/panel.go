package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/hailam/chess2/internal/session"
)

// Panel dimensions
const (
	PanelPadding  = 20
	ButtonHeight  = 40
	TabHeight     = 34
	StepperHeight = 30
	SectionLabelH = 20
	logRowHeight  = 18
	maxLogLines   = 1000
	statusHeight  = 84
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	tabActiveBg     = color.RGBA{76, 132, 96, 255}
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}
	tabHoverBg      = color.RGBA{65, 70, 78, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	logRowAlt       = color.RGBA{44, 48, 54, 255}
	statusThinking  = color.RGBA{100, 180, 255, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

var modeTabs = []struct {
	label string
	mode  session.Mode
}{
	{"Local PvP", session.HumanVsHuman},
	{"vs Computer", session.HumanVsComputer},
	{"CPU vs CPU", session.ComputerVsComputer},
}

// Panel is the side panel with controls, the game log and the status bar.
type Panel struct {
	game *Game

	newGameBtn  *Button
	undoBtn     *Button
	flipBtn     *Button
	settingsBtn *Button
	modeBtns    []*Button
	diffDown    *Button
	diffUp      *Button
	sizeDown    *Button
	sizeUp      *Button
	spendBtn    *Button

	// Wrapped game log
	lines      []string
	logY       int
	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.createButtons()
	return p
}

// createButtons lays out every control from top to bottom.
func (p *Panel) createButtons() {
	x := BoardArea + PanelPadding
	w := PanelWidth - PanelPadding*2
	y := PanelPadding

	p.newGameBtn = &Button{X: x, Y: y, W: w, H: ButtonHeight, Label: "New Game", OnClick: p.game.NewGameAction}
	y += ButtonHeight + 8

	third := (w - 16) / 3
	p.undoBtn = &Button{X: x, Y: y, W: third, H: TabHeight, Label: "Undo", OnClick: p.game.UndoAction}
	p.flipBtn = &Button{X: x + third + 8, Y: y, W: third, H: TabHeight, Label: "Flip", OnClick: p.game.FlipAction}
	p.settingsBtn = &Button{X: x + 2*(third+8), Y: y, W: third, H: TabHeight, Label: "Settings", OnClick: p.game.ShowSettings}
	y += TabHeight + 12 + SectionLabelH

	tabW := w / len(modeTabs)
	p.modeBtns = nil
	for i, t := range modeTabs {
		mode := t.mode
		p.modeBtns = append(p.modeBtns, &Button{
			X: x + i*tabW, Y: y, W: tabW, H: TabHeight, Label: t.label,
			OnClick: func() { p.game.SetMode(mode) },
		})
	}
	y += TabHeight + 12 + SectionLabelH

	p.diffDown = &Button{X: x, Y: y, W: StepperHeight, H: StepperHeight, Label: "−", OnClick: func() { p.game.ChangeDifficulty(-1) }}
	p.diffUp = &Button{X: x + w - StepperHeight, Y: y, W: StepperHeight, H: StepperHeight, Label: "+", OnClick: func() { p.game.ChangeDifficulty(1) }}
	y += StepperHeight + 12 + SectionLabelH

	p.sizeDown = &Button{X: x, Y: y, W: StepperHeight, H: StepperHeight, Label: "−", OnClick: func() { p.game.ChangeBoardSize(-1) }}
	p.sizeUp = &Button{X: x + w - StepperHeight, Y: y, W: StepperHeight, H: StepperHeight, Label: "+", OnClick: func() { p.game.ChangeBoardSize(1) }}
	y += StepperHeight + 12

	p.spendBtn = &Button{X: x, Y: y, W: w, H: StepperHeight, Label: "Spend Banked Point", OnClick: p.game.SpendBankedAction}
	y += StepperHeight + 12

	p.logY = y + SectionLabelH
}

func (p *Panel) buttons() []*Button {
	bs := []*Button{p.newGameBtn, p.undoBtn, p.flipBtn, p.settingsBtn, p.diffDown, p.diffUp, p.sizeDown, p.sizeUp, p.spendBtn}
	return append(bs, p.modeBtns...)
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	p.undoBtn.disabled = !p.game.Session().CanUndo()
	vsComputer := p.game.Mode() != session.HumanVsHuman
	p.diffDown.disabled = !vsComputer
	p.diffUp.disabled = !vsComputer
	p.spendBtn.disabled = !p.game.CanSpendBanked()

	mx, my := input.MousePosition()
	if w := input.Wheel(); w != 0 && mx >= BoardArea && my >= p.logY && my < ScreenHeight-statusHeight {
		p.scrollY = max(0, min(p.maxScrollY, p.scrollY-int(w*30)))
	}

	for _, b := range p.buttons() {
		if b.update(input) {
			return true
		}
	}
	return mx >= BoardArea && input.IsLeftJustPressed()
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, b := range p.buttons() {
		if b.hovered {
			return true
		}
	}
	return false
}

// ResetLog replaces the log with msgs.
func (p *Panel) ResetLog(msgs []session.Message) {
	p.lines = nil
	p.scrollY = 0
	for _, m := range msgs {
		p.AppendLog(m)
	}
}

// AppendLog adds a message and keeps the view pinned to the newest line
// unless the user scrolled up.
func (p *Panel) AppendLog(m session.Message) {
	pinned := p.scrollY >= p.maxScrollY
	w := float64(PanelWidth - PanelPadding*2 - 8)
	p.lines = append(p.lines, wrapText(m.Text, GetRegularFace(), w)...)
	if len(p.lines) > maxLogLines {
		p.lines = p.lines[len(p.lines)-maxLogLines:]
	}
	p.updateScrollBounds()
	if pinned {
		p.scrollY = p.maxScrollY
	}
}

func (p *Panel) updateScrollBounds() {
	visible := ScreenHeight - statusHeight - p.logY
	p.maxScrollY = max(0, len(p.lines)*logRowHeight-visible)
	p.scrollY = min(p.scrollY, p.maxScrollY)
}

// wrapText breaks s into lines no wider than width.
func wrapText(s string, face *text.GoTextFace, width float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if w, _ := MeasureText(candidate, face); w > width && line != "" {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	fillRect(screen, BoardArea, 0, PanelWidth, ScreenHeight, panelBg)

	drawPrimaryButton(screen, p.newGameBtn)
	drawSecondaryButton(screen, p.undoBtn)
	drawSecondaryButton(screen, p.flipBtn)
	drawSecondaryButton(screen, p.settingsBtn)

	x := BoardArea + PanelPadding
	drawSectionLabel(screen, "Game Mode", x, p.modeBtns[0].Y-SectionLabelH)
	for i, b := range p.modeBtns {
		drawTab(screen, b, modeTabs[i].mode == p.game.Mode())
	}

	drawSectionLabel(screen, "Computer Difficulty", x, p.diffDown.Y-SectionLabelH)
	diff := fmt.Sprintf("Level %d", p.game.Difficulty())
	if p.game.Mode() == session.HumanVsHuman {
		diff = "—"
	}
	p.drawStepper(screen, p.diffDown, p.diffUp, diff)

	n := p.game.Session().Config().Size
	drawSectionLabel(screen, "Board Size", x, p.sizeDown.Y-SectionLabelH)
	p.drawStepper(screen, p.sizeDown, p.sizeUp, fmt.Sprintf("%d × %d", n, n))

	drawSecondaryButton(screen, p.spendBtn)

	drawSectionLabel(screen, "Game Log", x, p.logY-SectionLabelH)
	p.drawLog(screen)
	p.drawStatusBar(screen)
}

func (p *Panel) drawStepper(screen *ebiten.Image, down, up *Button, value string) {
	drawSecondaryButton(screen, down)
	drawSecondaryButton(screen, up)
	cx := float64(down.X+up.X+up.W) / 2
	drawTextCentered(screen, value, GetRegularFace(), cx, float64(down.Y)+float64(down.H)/2, textPrimary)
}

func (p *Panel) drawLog(screen *ebiten.Image) {
	x := float64(BoardArea + PanelPadding)
	top := p.logY
	bottom := ScreenHeight - statusHeight - 8
	face := GetRegularFace()

	if len(p.lines) == 0 {
		drawText(screen, "No moves yet", face, x, float64(top+4), textMuted)
		return
	}

	first := p.scrollY / logRowHeight
	y := top - p.scrollY%logRowHeight
	for i := first; i < len(p.lines) && y+logRowHeight <= bottom; i++ {
		if y >= top {
			if i%2 == 1 {
				fillRect(screen, x-4, float64(y), PanelWidth-PanelPadding*2+8, logRowHeight, logRowAlt)
			}
			drawText(screen, p.lines[i], face, x, float64(y+1), textSecondary)
		}
		y += logRowHeight
	}

	if p.maxScrollY > 0 {
		visible := float64(bottom - top)
		content := float64(len(p.lines) * logRowHeight)
		barH := max(20, visible*visible/content)
		barY := float64(top) + float64(p.scrollY)/float64(p.maxScrollY)*(visible-barH)
		fillRect(screen, BoardArea+PanelWidth-8, barY, 4, barH, textMuted)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := float64(ScreenHeight - statusHeight + 6)
	x := float64(BoardArea + PanelPadding)
	w := float64(PanelWidth - PanelPadding*2)
	face := GetRegularFace()

	fillRect(screen, x, statusY-8, w, 1, dividerColor)

	drawText(screen, truncate(p.game.Username(), face, w/2), face, x, statusY, textPrimary)
	drawText(screen, p.game.Mode().String(), face, x+w/2, statusY, textSecondary)

	status, c := p.game.StatusText()
	drawText(screen, truncate(status, face, w), face, x, statusY+22, c)

	if info := p.game.SelectionText(); info != "" {
		drawText(screen, truncate(info, face, w), face, x, statusY+44, textMuted)
	}
}
