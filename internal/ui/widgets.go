package ui

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget colors (shared palette lives in panel.go)
var (
	widgetBg          = color.RGBA{48, 52, 58, 255}
	widgetBorder      = color.RGBA{68, 72, 78, 255}
	widgetFocusBorder = color.RGBA{76, 175, 120, 255}
	widgetHoverBg     = color.RGBA{65, 70, 78, 255}
	radioActive       = color.RGBA{76, 175, 120, 255}
	radioInactive     = color.RGBA{70, 75, 82, 255}
	inputTextColor    = color.RGBA{240, 240, 245, 255}
	inputPlaceholder  = color.RGBA{120, 125, 135, 255}
)

// Drawing helpers take logical coordinates and apply UIScale.

func sc(v float64) float32 {
	return float32(v * UIScale)
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst, sc(x), sc(y), sc(w), sc(h), c, false)
}

func strokeRect(dst *ebiten.Image, x, y, w, h, width float64, c color.Color) {
	vector.StrokeRect(dst, sc(x), sc(y), sc(w), sc(h), sc(width), c, false)
}

func fillCircle(dst *ebiten.Image, cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(dst, sc(cx), sc(cy), sc(r), c, true)
}

func strokeCircle(dst *ebiten.Image, cx, cy, r, width float64, c color.Color) {
	vector.StrokeCircle(dst, sc(cx), sc(cy), sc(r), sc(width), c, true)
}

func strokeLine(dst *ebiten.Image, x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(dst, sc(x0), sc(y0), sc(x1), sc(y1), sc(width), c, true)
}

// Button is a clickable panel element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
	disabled   bool
}

// update refreshes hover state and fires OnClick. It reports whether the
// button consumed a click.
func (b *Button) update(input *InputHandler) bool {
	b.hovered = !b.disabled && input.IsInBounds(b.X, b.Y, b.W, b.H)
	b.pressed = b.hovered && input.IsLeftPressed()
	if b.hovered && input.IsLeftJustPressed() && b.OnClick != nil {
		b.OnClick()
		return true
	}
	return false
}

// TextInput is an editable text field widget.
type TextInput struct {
	X, Y, W, H  int
	Value       string
	Placeholder string
	MaxLength   int
	focused     bool
	hovered     bool
	cursorBlink int
}

// NewTextInput creates a new text input widget.
func NewTextInput(x, y, w, h int, placeholder string, maxLen int) *TextInput {
	return &TextInput{
		X: x, Y: y, W: w, H: h,
		Placeholder: placeholder,
		MaxLength:   maxLen,
	}
}

// Update handles text input updates.
func (ti *TextInput) Update(input *InputHandler) bool {
	ti.hovered = input.IsInBounds(ti.X, ti.Y, ti.W, ti.H)

	if input.IsLeftJustPressed() {
		ti.focused = ti.hovered
	}
	if !ti.focused {
		return false
	}

	ti.cursorBlink = (ti.cursorBlink + 1) % 60

	for _, c := range ebiten.AppendInputChars(nil) {
		if ti.MaxLength == 0 || utf8.RuneCountInString(ti.Value) < ti.MaxLength {
			ti.Value += string(c)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(ti.Value) > 0 {
		_, size := utf8.DecodeLastRuneInString(ti.Value)
		ti.Value = ti.Value[:len(ti.Value)-size]
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		ti.focused = false
	}
	return true
}

// Draw renders the text input.
func (ti *TextInput) Draw(screen *ebiten.Image) {
	x, y, w, h := float64(ti.X), float64(ti.Y), float64(ti.W), float64(ti.H)

	bgColor := widgetBg
	if ti.hovered && !ti.focused {
		bgColor = color.RGBA{52, 56, 62, 255}
	}
	fillRect(screen, x, y, w, h, bgColor)

	borderColor := widgetBorder
	if ti.focused {
		borderColor = widgetFocusBorder
	} else if ti.hovered {
		borderColor = accentColor
	}
	strokeRect(screen, x, y, w, h, 2, borderColor)

	face := GetRegularFace()
	textX := x + 10
	s, c := ti.Value, color.Color(inputTextColor)
	if s == "" {
		s, c = ti.Placeholder, inputPlaceholder
	}
	_, th := MeasureText(s, face)
	drawText(screen, s, face, textX, y+h/2-th/2, c)

	if ti.focused && ti.cursorBlink < 30 {
		cw := 0.0
		if ti.Value != "" {
			cw, _ = MeasureText(ti.Value, face)
			cw += 2
		}
		fillRect(screen, textX+cw, y+8, 2, h-16, inputTextColor)
	}
}

// IsFocused returns true if the input is focused.
func (ti *TextInput) IsFocused() bool {
	return ti.focused
}

// SetFocused sets the focus state.
func (ti *TextInput) SetFocused(focused bool) {
	ti.focused = focused
}

// RadioOption represents a single radio button option.
type RadioOption struct {
	Label string
	Value int
}

// RadioGroup is a group of mutually exclusive radio buttons.
type RadioGroup struct {
	X, Y     int
	Options  []RadioOption
	Selected int
	ItemH    int
	hovered  int
}

// NewRadioGroup creates a new radio group.
func NewRadioGroup(x, y int, options []RadioOption, selected int) *RadioGroup {
	return &RadioGroup{
		X:        x,
		Y:        y,
		Options:  options,
		Selected: selected,
		ItemH:    28,
		hovered:  -1,
	}
}

// Value returns the value of the selected option.
func (rg *RadioGroup) Value() int {
	return rg.Options[rg.Selected].Value
}

// Select selects the option with the given value.
func (rg *RadioGroup) Select(value int) {
	for i, o := range rg.Options {
		if o.Value == value {
			rg.Selected = i
		}
	}
}

// Update handles radio group input.
func (rg *RadioGroup) Update(input *InputHandler) bool {
	rg.hovered = -1
	for i := range rg.Options {
		if input.IsInBounds(rg.X, rg.Y+i*rg.ItemH, 200, rg.ItemH) {
			rg.hovered = i
			if input.IsLeftJustPressed() {
				rg.Selected = i
				return true
			}
		}
	}
	return false
}

// Draw renders the radio group.
func (rg *RadioGroup) Draw(screen *ebiten.Image) {
	face := GetRegularFace()

	for i, opt := range rg.Options {
		itemY := float64(rg.Y + i*rg.ItemH)
		isSelected := i == rg.Selected
		isHovered := i == rg.hovered

		if isHovered && !isSelected {
			fillRect(screen, float64(rg.X-4), itemY, 200, float64(rg.ItemH), color.RGBA{55, 60, 68, 255})
		}

		cx, cy := float64(rg.X+10), itemY+float64(rg.ItemH)/2
		circleColor := radioInactive
		if isSelected {
			circleColor = radioActive
		} else if isHovered {
			circleColor = accentColor
		}
		fillCircle(screen, cx, cy, 8, circleColor)
		if isSelected {
			fillCircle(screen, cx, cy, 4, inputTextColor)
		}

		textColor := textSecondary
		if isSelected {
			textColor = textPrimary
		}
		_, h := MeasureText(opt.Label, face)
		drawText(screen, opt.Label, face, float64(rg.X+30), cy-h/2, textColor)
	}
}

// Checkbox is a toggleable checkbox widget.
type Checkbox struct {
	X, Y    int
	Label   string
	Checked bool
	hovered bool
}

// NewCheckbox creates a new checkbox.
func NewCheckbox(x, y int, label string, checked bool) *Checkbox {
	return &Checkbox{X: x, Y: y, Label: label, Checked: checked}
}

// Update handles checkbox input.
func (cb *Checkbox) Update(input *InputHandler) bool {
	cb.hovered = input.IsInBounds(cb.X, cb.Y, 200, 24)
	if input.IsLeftJustPressed() && cb.hovered {
		cb.Checked = !cb.Checked
		return true
	}
	return false
}

// Draw renders the checkbox.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	x, y := float64(cb.X), float64(cb.Y)

	bgColor := widgetBg
	if cb.hovered {
		bgColor = widgetHoverBg
	}
	fillRect(screen, x, y, 20, 20, bgColor)

	borderC := widgetBorder
	if cb.hovered || cb.Checked {
		borderC = accentColor
	}
	strokeRect(screen, x, y, 20, 20, 2, borderC)

	if cb.Checked {
		strokeLine(screen, x+4, y+10, x+8, y+14, 2, accentColor)
		strokeLine(screen, x+8, y+14, x+16, y+6, 2, accentColor)
	}

	face := GetRegularFace()
	textColor := textSecondary
	if cb.Checked {
		textColor = textPrimary
	}
	_, h := MeasureText(cb.Label, face)
	drawText(screen, cb.Label, face, x+30, y+10-h/2, textColor)
}

// ButtonGroup is a horizontal group of toggle buttons.
type ButtonGroup struct {
	X, Y     int
	Options  []string
	Selected int
	ButtonW  int
	ButtonH  int
	hovered  int
}

// NewButtonGroup creates a new button group.
func NewButtonGroup(x, y int, options []string, selected int, buttonW, buttonH int) *ButtonGroup {
	return &ButtonGroup{
		X:        x,
		Y:        y,
		Options:  options,
		Selected: selected,
		ButtonW:  buttonW,
		ButtonH:  buttonH,
		hovered:  -1,
	}
}

// Update handles button group input.
func (bg *ButtonGroup) Update(input *InputHandler) bool {
	bg.hovered = -1
	for i := range bg.Options {
		if input.IsInBounds(bg.X+i*bg.ButtonW, bg.Y, bg.ButtonW, bg.ButtonH) {
			bg.hovered = i
			if input.IsLeftJustPressed() {
				bg.Selected = i
				return true
			}
		}
	}
	return false
}

// Draw renders the button group.
func (bg *ButtonGroup) Draw(screen *ebiten.Image) {
	for i, label := range bg.Options {
		drawTab(screen, &Button{
			X: bg.X + i*bg.ButtonW, Y: bg.Y, W: bg.ButtonW, H: bg.ButtonH,
			Label: label, hovered: i == bg.hovered,
		}, i == bg.Selected)
	}
}

// ModalButton is a button for modal dialogs.
type ModalButton struct {
	Button
	Primary bool
}

// NewModalButton creates a new modal button.
func NewModalButton(x, y, w, h int, label string, primary bool, onClick func()) *ModalButton {
	return &ModalButton{
		Button:  Button{X: x, Y: y, W: w, H: h, Label: label, OnClick: onClick},
		Primary: primary,
	}
}

// IsHovered returns true if the button is hovered.
func (mb *ModalButton) IsHovered() bool {
	return mb.hovered
}

// Update handles modal button input.
func (mb *ModalButton) Update(input *InputHandler) bool {
	return mb.update(input)
}

// Draw renders the modal button.
func (mb *ModalButton) Draw(screen *ebiten.Image) {
	if mb.Primary {
		drawPrimaryButton(screen, &mb.Button)
	} else {
		drawSecondaryButton(screen, &mb.Button)
	}
}

func drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	x, y, w, h := float64(btn.X), float64(btn.Y), float64(btn.W), float64(btn.H)

	bgColor := accentColor
	borderC := accentPressed
	if btn.pressed {
		bgColor = accentPressed
	} else if btn.hovered {
		bgColor = accentHover
		borderC = color.RGBA{116, 215, 160, 255}
	}
	fillRect(screen, x, y, w, h, bgColor)
	strokeRect(screen, x, y, w, h, 1, borderC)
	drawTextCentered(screen, btn.Label, GetRegularFace(), x+w/2, y+h/2, textPrimary)
}

func drawSecondaryButton(screen *ebiten.Image, btn *Button) {
	x, y, w, h := float64(btn.X), float64(btn.Y), float64(btn.W), float64(btn.H)

	bgColor := buttonBg
	borderC := buttonBorder
	textC := textSecondary
	switch {
	case btn.disabled:
		textC = textMuted
	case btn.pressed:
		bgColor = buttonPressedBg
	case btn.hovered:
		bgColor = buttonHoverBg
		borderC = accentColor
		textC = textPrimary
	}
	fillRect(screen, x, y, w, h, bgColor)
	strokeRect(screen, x, y, w, h, 1, borderC)
	drawTextCentered(screen, btn.Label, GetRegularFace(), x+w/2, y+h/2, textC)
}

func drawTab(screen *ebiten.Image, btn *Button, active bool) {
	x, y, w, h := float64(btn.X), float64(btn.Y), float64(btn.W), float64(btn.H)

	bgColor := tabInactiveBg
	borderC := buttonBorder
	switch {
	case active:
		bgColor, borderC = tabActiveBg, tabActiveBg
	case btn.pressed:
		bgColor = buttonPressedBg
	case btn.hovered:
		bgColor, borderC = tabHoverBg, accentColor
	}
	fillRect(screen, x, y, w, h, bgColor)
	strokeRect(screen, x, y, w, h, 1, borderC)

	textColor := textSecondary
	if active {
		textColor = textPrimary
	}
	drawTextCentered(screen, btn.Label, GetRegularFace(), x+w/2, y+h/2, textColor)
}

// drawSectionLabel draws a muted section heading.
func drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	drawText(screen, label, GetRegularFace(), float64(x), float64(y), textMuted)
}
