package ui

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Welcome screen dimensions
const (
	WelcomeWidth  = 400
	WelcomeHeight = 400
	WelcomePadX   = 32
	WelcomePadY   = 24
)

// WelcomeScreen is shown on first launch.
type WelcomeScreen struct {
	visible bool

	x, y int

	nameInput *TextInput
	sizeBtns  *ButtonGroup
	startBtn  *ModalButton

	onComplete func(name string, size int)
}

// NewWelcomeScreen creates a new welcome screen.
func NewWelcomeScreen() *WelcomeScreen {
	ws := &WelcomeScreen{
		x: (ScreenWidth - WelcomeWidth) / 2,
		y: (ScreenHeight - WelcomeHeight) / 2,
	}
	ws.createWidgets()
	return ws
}

// createWidgets initializes all welcome screen widgets.
func (ws *WelcomeScreen) createWidgets() {
	contentX := ws.x + WelcomePadX
	contentW := WelcomeWidth - WelcomePadX*2

	ws.nameInput = NewTextInput(contentX, ws.y+150, contentW, 40, "Enter your name", 20)

	sizes := make([]string, len(boardSizes))
	for i, n := range boardSizes {
		sizes[i] = fmt.Sprintf("%d×%d", n, n)
	}
	ws.sizeBtns = NewButtonGroup(contentX, ws.y+240, sizes, slices.Index(boardSizes, 10), contentW/len(sizes), 34)

	btnW, btnH := 160, 44
	ws.startBtn = NewModalButton(ws.x+(WelcomeWidth-btnW)/2, ws.y+WelcomeHeight-WelcomePadY-btnH,
		btnW, btnH, "Start Playing", true, ws.handleStart)
}

// Show displays the welcome screen.
func (ws *WelcomeScreen) Show(onComplete func(name string, size int)) {
	ws.visible = true
	ws.onComplete = onComplete
	ws.nameInput.Value = ""
}

// Hide closes the welcome screen.
func (ws *WelcomeScreen) Hide() {
	ws.visible = false
	ws.nameInput.SetFocused(false)
}

// IsVisible returns true if the screen is visible.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

func (ws *WelcomeScreen) handleStart() {
	name := ws.nameInput.Value
	if name == "" {
		name = "Player"
	}
	if ws.onComplete != nil {
		ws.onComplete(name, boardSizes[ws.sizeBtns.Selected])
	}
	ws.Hide()
}

// Update handles input for the welcome screen. It consumes all input
// while visible.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}

	if IsKeyJustPressed(ebiten.KeyEnter) && !ws.nameInput.IsFocused() {
		ws.handleStart()
		return true
	}

	ws.nameInput.Update(input)
	ws.sizeBtns.Update(input)
	ws.startBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if any button in the screen is hovered.
func (ws *WelcomeScreen) AnyButtonHovered() bool {
	if !ws.visible {
		return false
	}
	return ws.startBtn.IsHovered() || ws.sizeBtns.hovered >= 0
}

// Draw renders the welcome screen.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image, backdrop *Backdrop) {
	if !ws.visible {
		return
	}
	drawModalFrame(screen, backdrop, "Welcome", ws.x, ws.y, WelcomeWidth, WelcomeHeight)

	ws.drawChessIcon(screen)

	cx := float64(ws.x + WelcomeWidth/2)
	drawTextCentered(screen, "CHESS 2.0", GetFaceWithSize(24), cx, float64(ws.y+96), textPrimary)
	drawTextCentered(screen, "Capture to earn upgrades. Take the King to win.", GetRegularFace(), cx, float64(ws.y+122), textSecondary)

	contentX := ws.x + WelcomePadX
	drawSectionLabel(screen, "Your Name", contentX, ws.nameInput.Y-20)
	drawSectionLabel(screen, "Board Size", contentX, ws.sizeBtns.Y-20)

	ws.nameInput.Draw(screen)
	ws.sizeBtns.Draw(screen)
	ws.startBtn.Draw(screen)
}

// drawChessIcon draws a small crown under the header.
func (ws *WelcomeScreen) drawChessIcon(screen *ebiten.Image) {
	cx := float64(ws.x + WelcomeWidth/2)
	y := float64(ws.y + 52)

	fillCircle(screen, cx, y+8, 6, accentColor)
	fillRect(screen, cx-8, y+10, 16, 14, accentColor)
	fillRect(screen, cx-1, y-2, 3, 10, accentColor)
	fillRect(screen, cx-4, y+2, 9, 3, accentColor)
}
