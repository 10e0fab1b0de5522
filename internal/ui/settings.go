package ui

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chess2/internal/storage"
)

// Settings modal dimensions
const (
	SettingsWidth  = 380
	SettingsHeight = 500
	SettingsPadX   = 24
	SettingsPadY   = 20
)

// Modal colors
var (
	modalBg     = color.RGBA{38, 40, 45, 255}
	modalHeader = color.RGBA{48, 52, 58, 255}
	modalBorder = color.RGBA{58, 62, 68, 255}
)

// boardSizes are the sizes offered in the settings and the panel.
var boardSizes = []int{6, 8, 10, 12, 14, 16}

// SettingsModal is the settings configuration screen.
type SettingsModal struct {
	visible bool

	x, y int

	usernameInput  *TextInput
	difficultyBtns *ButtonGroup
	sizeBtns       *ButtonGroup
	colorRadio     *RadioGroup
	soundCheckbox  *Checkbox
	hoverCheckbox  *Checkbox
	saveBtn        *ModalButton
	cancelBtn      *ModalButton

	prefs  storage.UserPreferences
	onSave func(prefs *storage.UserPreferences)
}

// NewSettingsModal creates a new settings modal.
func NewSettingsModal() *SettingsModal {
	sm := &SettingsModal{
		x: (ScreenWidth - SettingsWidth) / 2,
		y: (ScreenHeight - SettingsHeight) / 2,
	}
	sm.createWidgets()
	return sm
}

// createWidgets initializes all settings widgets.
func (sm *SettingsModal) createWidgets() {
	contentX := sm.x + SettingsPadX
	contentW := SettingsWidth - SettingsPadX*2

	sm.usernameInput = NewTextInput(contentX, sm.y+70, contentW, 36, "Enter your name", 20)

	levels := make([]string, storage.MaxDifficulty)
	for i := range levels {
		levels[i] = fmt.Sprint(i + 1)
	}
	sm.difficultyBtns = NewButtonGroup(contentX, sm.y+142, levels, storage.DefaultDifficulty-1, contentW/len(levels), 30)

	sizes := make([]string, len(boardSizes))
	for i, n := range boardSizes {
		sizes[i] = fmt.Sprintf("%d×%d", n, n)
	}
	sm.sizeBtns = NewButtonGroup(contentX, sm.y+208, sizes, 2, contentW/len(sizes), 30)

	sm.colorRadio = NewRadioGroup(contentX, sm.y+272, []RadioOption{
		{Label: "Play White", Value: int(storage.ColorWhite)},
		{Label: "Play Black", Value: int(storage.ColorBlack)},
	}, 0)

	sm.soundCheckbox = NewCheckbox(contentX, sm.y+360, "Sound Effects", true)
	sm.hoverCheckbox = NewCheckbox(contentX, sm.y+390, "Preview moves on hover", true)

	btnW, btnH, btnSpacing := 100, 38, 12
	btnY := sm.y + SettingsHeight - SettingsPadY - btnH
	sm.cancelBtn = NewModalButton(sm.x+SettingsWidth-SettingsPadX-btnW*2-btnSpacing, btnY, btnW, btnH, "Cancel", false, sm.Hide)
	sm.saveBtn = NewModalButton(sm.x+SettingsWidth-SettingsPadX-btnW, btnY, btnW, btnH, "Save", true, sm.handleSave)
}

// Show displays the settings modal with the given preferences.
func (sm *SettingsModal) Show(prefs *storage.UserPreferences, onSave func(*storage.UserPreferences)) {
	sm.visible = true
	sm.prefs = *prefs
	sm.onSave = onSave

	sm.usernameInput.Value = prefs.Username
	sm.difficultyBtns.Selected = prefs.Difficulty - 1
	if i := slices.Index(boardSizes, prefs.BoardSize); i >= 0 {
		sm.sizeBtns.Selected = i
	}
	sm.colorRadio.Select(int(prefs.PlayerColor))
	sm.soundCheckbox.Checked = prefs.SoundEnabled
	sm.hoverCheckbox.Checked = prefs.ShowHover
}

// Hide closes the settings modal.
func (sm *SettingsModal) Hide() {
	sm.visible = false
	sm.usernameInput.SetFocused(false)
}

// IsVisible returns true if the modal is visible.
func (sm *SettingsModal) IsVisible() bool {
	return sm.visible
}

// handleSave hands the edited copy of the preferences to the caller.
func (sm *SettingsModal) handleSave() {
	prefs := sm.prefs
	prefs.Username = sm.usernameInput.Value
	if prefs.Username == "" {
		prefs.Username = "Player"
	}
	prefs.Difficulty = sm.difficultyBtns.Selected + 1
	prefs.BoardSize = boardSizes[sm.sizeBtns.Selected]
	prefs.PlayerColor = storage.PlayerColor(sm.colorRadio.Value())
	prefs.SoundEnabled = sm.soundCheckbox.Checked
	prefs.ShowHover = sm.hoverCheckbox.Checked

	if sm.onSave != nil {
		sm.onSave(&prefs)
	}
	sm.Hide()
}

// Update handles input for the settings modal. The modal consumes all
// input while visible.
func (sm *SettingsModal) Update(input *InputHandler) bool {
	if !sm.visible {
		return false
	}

	if IsKeyJustPressed(ebiten.KeyEscape) && !sm.usernameInput.IsFocused() {
		sm.Hide()
		return true
	}
	if IsKeyJustPressed(ebiten.KeyEnter) && !sm.usernameInput.IsFocused() {
		sm.handleSave()
		return true
	}

	sm.usernameInput.Update(input)
	sm.difficultyBtns.Update(input)
	sm.sizeBtns.Update(input)
	sm.colorRadio.Update(input)
	sm.soundCheckbox.Update(input)
	sm.hoverCheckbox.Update(input)
	if !sm.saveBtn.Update(input) {
		sm.cancelBtn.Update(input)
	}
	return true
}

// AnyButtonHovered returns true if any button in the modal is hovered.
func (sm *SettingsModal) AnyButtonHovered() bool {
	if !sm.visible {
		return false
	}
	return sm.saveBtn.IsHovered() || sm.cancelBtn.IsHovered() ||
		sm.difficultyBtns.hovered >= 0 || sm.sizeBtns.hovered >= 0 ||
		sm.colorRadio.hovered >= 0 || sm.soundCheckbox.hovered || sm.hoverCheckbox.hovered
}

// Draw renders the settings modal.
func (sm *SettingsModal) Draw(screen *ebiten.Image, backdrop *Backdrop) {
	if !sm.visible {
		return
	}
	drawModalFrame(screen, backdrop, "Settings", sm.x, sm.y, SettingsWidth, SettingsHeight)

	contentX := sm.x + SettingsPadX
	drawSectionLabel(screen, "Player Name", contentX, sm.y+52)
	drawSectionLabel(screen, "Computer Difficulty", contentX, sm.difficultyBtns.Y-20)
	drawSectionLabel(screen, "Board Size (starts a new game)", contentX, sm.sizeBtns.Y-20)
	drawSectionLabel(screen, "Your Side vs Computer", contentX, sm.colorRadio.Y-18)
	drawSectionLabel(screen, "Display & Audio", contentX, sm.soundCheckbox.Y-22)

	sm.usernameInput.Draw(screen)
	sm.difficultyBtns.Draw(screen)
	sm.sizeBtns.Draw(screen)
	sm.colorRadio.Draw(screen)
	sm.soundCheckbox.Draw(screen)
	sm.hoverCheckbox.Draw(screen)
	sm.saveBtn.Draw(screen)
	sm.cancelBtn.Draw(screen)
}

// drawModalFrame draws the backdrop, the dialog body and its titled header.
func drawModalFrame(screen *ebiten.Image, backdrop *Backdrop, title string, x, y, w, h int) {
	backdrop.Draw(screen, 0.45)

	fx, fy, fw, fh := float64(x), float64(y), float64(w), float64(h)
	fillRect(screen, fx, fy, fw, fh, modalBg)
	strokeRect(screen, fx, fy, fw, fh, 2, modalBorder)
	fillRect(screen, fx, fy, fw, 44, modalHeader)
	drawTextCentered(screen, title, GetBoldFace(), fx+fw/2, fy+22, textPrimary)
}
