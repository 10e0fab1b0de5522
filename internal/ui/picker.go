package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chess2/internal/board"
)

// Upgrade picker dimensions
const (
	PickerWidth = 420
	PickerPadX  = 20
	pickerRowH  = 54
	pickerTop   = 88
)

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// UpgradePicker lets the player spend a point on one of the offered
// upgrades, or bank it.
type UpgradePicker struct {
	visible bool

	x, y, h int

	title    string
	subtitle string
	options  []board.UpgradeOption
	rows     []*Button
	skipBtn  *ModalButton

	onChoose func(board.UpgradeKey)
	onSkip   func()
}

// NewUpgradePicker creates a hidden picker.
func NewUpgradePicker() *UpgradePicker {
	return &UpgradePicker{}
}

// Show opens the picker for p with the given options.
func (up *UpgradePicker) Show(p *board.Piece, options []board.UpgradeOption, onChoose func(board.UpgradeKey), onSkip func()) {
	up.visible = true
	up.options = options
	up.onChoose = onChoose
	up.onSkip = onSkip
	up.title = "Upgrade " + p.Name()
	up.subtitle = fmt.Sprintf("Level %d · %d point(s) banked", p.Level(), p.Banked())
	if len(options) == 0 {
		up.subtitle = "No upgrades left for this piece."
	}

	rows := max(len(options), 1)
	up.h = pickerTop + rows*pickerRowH + 78
	up.x = (BoardArea - PickerWidth) / 2
	up.y = (ScreenHeight - up.h) / 2

	up.rows = up.rows[:0]
	for i, o := range options {
		key := o.Key
		up.rows = append(up.rows, &Button{
			X: up.x + PickerPadX, Y: up.y + pickerTop + i*pickerRowH,
			W: PickerWidth - PickerPadX*2, H: pickerRowH - 6,
			Label:   o.Title,
			OnClick: func() { up.choose(key) },
		})
	}

	btnW, btnH := 140, 38
	up.skipBtn = NewModalButton(up.x+PickerWidth-PickerPadX-btnW, up.y+up.h-20-btnH, btnW, btnH, "Bank Point", false, up.skip)
}

// Hide closes the picker without choosing.
func (up *UpgradePicker) Hide() {
	up.visible = false
}

// IsVisible returns true if the picker is open.
func (up *UpgradePicker) IsVisible() bool {
	return up.visible
}

func (up *UpgradePicker) choose(key board.UpgradeKey) {
	up.visible = false
	if up.onChoose != nil {
		up.onChoose(key)
	}
}

func (up *UpgradePicker) skip() {
	up.visible = false
	if up.onSkip != nil {
		up.onSkip()
	}
}

// Update handles clicks and the 1-9 and Escape shortcuts. The picker
// consumes all input while visible.
func (up *UpgradePicker) Update(input *InputHandler) bool {
	if !up.visible {
		return false
	}

	for i := range min(len(up.options), len(digitKeys)) {
		if IsKeyJustPressed(digitKeys[i]) {
			up.choose(up.options[i].Key)
			return true
		}
	}
	if IsKeyJustPressed(ebiten.KeyEscape) {
		up.skip()
		return true
	}

	for _, row := range up.rows {
		if row.update(input) {
			return true
		}
	}
	up.skipBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if an option or the skip button is hovered.
func (up *UpgradePicker) AnyButtonHovered() bool {
	if !up.visible {
		return false
	}
	for _, row := range up.rows {
		if row.hovered {
			return true
		}
	}
	return up.skipBtn.IsHovered()
}

// Draw renders the picker.
func (up *UpgradePicker) Draw(screen *ebiten.Image, backdrop *Backdrop) {
	if !up.visible {
		return
	}
	drawModalFrame(screen, backdrop, up.title, up.x, up.y, PickerWidth, up.h)
	drawTextCentered(screen, up.subtitle, GetRegularFace(), float64(up.x+PickerWidth/2), float64(up.y+62), textSecondary)

	small := GetFaceWithSize(12)
	for i, row := range up.rows {
		x, y, w, h := float64(row.X), float64(row.Y), float64(row.W), float64(row.H)

		bg, border := buttonBg, buttonBorder
		if row.pressed {
			bg = buttonPressedBg
		} else if row.hovered {
			bg, border = buttonHoverBg, accentColor
		}
		fillRect(screen, x, y, w, h, bg)
		strokeRect(screen, x, y, w, h, 1, border)

		drawText(screen, fmt.Sprintf("%d", i+1), GetBoldFace(), x+12, y+h/2-9, accentColor)
		drawText(screen, row.Label, GetRegularFace(), x+36, y+7, textPrimary)
		drawText(screen, truncate(up.options[i].Desc, small, w-48), small, x+36, y+27, textSecondary)
	}

	up.skipBtn.Draw(screen)
}
