package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chess2/internal/board"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast represents a notification message.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Draw renders all active toasts centred over the board.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	y := 50.0
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		alpha := 1.0
		const fadeTime = 0.2
		if elapsed < fadeTime {
			alpha = elapsed / fadeTime
		} else if elapsed > duration-fadeTime {
			alpha = (duration - elapsed) / fadeTime
		}
		alpha = max(0, min(1, alpha))

		var bgColor, textColor color.RGBA
		switch t.Type {
		case ToastWarning:
			bgColor = color.RGBA{180, 140, 20, uint8(220 * alpha)}
			textColor = color.RGBA{40, 30, 0, uint8(255 * alpha)}
		case ToastError:
			bgColor = color.RGBA{180, 50, 50, uint8(220 * alpha)}
			textColor = color.RGBA{255, 255, 255, uint8(255 * alpha)}
		case ToastSuccess:
			bgColor = color.RGBA{50, 150, 50, uint8(220 * alpha)}
			textColor = color.RGBA{255, 255, 255, uint8(255 * alpha)}
		default:
			bgColor = color.RGBA{50, 100, 150, uint8(220 * alpha)}
			textColor = color.RGBA{255, 255, 255, uint8(255 * alpha)}
		}

		w, h := MeasureText(t.Message, face)
		const padding = 12.0
		boxW, boxH := w+padding*2, h+padding*2
		x := BoardArea/2 - boxW/2

		fillRect(screen, x, y, boxW, boxH, bgColor)
		drawText(screen, t.Message, face, x+padding, y+padding, textColor)

		y += boxH + 8
	}
}

// ShakeAnimation represents a piece shake effect.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation represents a square flash effect.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager manages visual animations.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Clear drops every running animation.
func (am *AnimationManager) Clear() {
	am.shakes, am.flashes = nil, nil
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := time.Now()

	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// GetShakeOffset returns the current shake offset for a square.
func (am *AnimationManager) GetShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0, 0
		}
		// Damped sine
		amplitude := s.Intensity * math.Exp(-5*progress)
		return amplitude * math.Sin(40*progress), 0
	}
	return 0, 0
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, renderer *Renderer) {
	size := renderer.SquareSize()
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(c.A) * (1.0 - progress))
		x, y := renderer.SquareToScreen(f.Square)
		fillRect(screen, x, y, size, size, c)
	}
}

var (
	flashInvalid = color.RGBA{255, 80, 80, 150}
	flashCapture = color.RGBA{255, 150, 60, 140}
	flashUpgrade = color.RGBA{90, 220, 140, 150}
	flashShield  = color.RGBA{255, 210, 80, 150}
)

// FeedbackManager coordinates toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, renderer *Renderer) {
	fm.animations.DrawFlashes(screen, renderer)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Toast shows a message without sound.
func (fm *FeedbackManager) Toast(message string, t ToastType) {
	fm.toasts.Show(message, t, 2500*time.Millisecond)
}

// OnInvalidMove shakes the selected piece and flashes the rejected target.
func (fm *FeedbackManager) OnInvalidMove(from, to board.Square, message string) {
	if message != "" {
		fm.toasts.Show(message, ToastWarning, 2*time.Second)
	}
	fm.animations.StartShake(from)
	fm.animations.StartFlash(to, flashInvalid)
	fm.audio.Play(SoundInvalid)
}

// OnMoveMade plays the move or capture sound.
func (fm *FeedbackManager) OnMoveMade(to board.Square, capture bool) {
	if capture {
		fm.animations.StartFlash(to, flashCapture)
		fm.audio.Play(SoundCapture)
		return
	}
	fm.audio.Play(SoundMove)
}

// OnUpgrade celebrates an applied upgrade.
func (fm *FeedbackManager) OnUpgrade(sq board.Square) {
	fm.animations.StartFlash(sq, flashUpgrade)
	fm.audio.Play(SoundUpgrade)
}

// OnShield marks a newly shielded piece.
func (fm *FeedbackManager) OnShield(sq board.Square) {
	fm.animations.StartFlash(sq, flashShield)
	fm.audio.Play(SoundShield)
}

// OnWin announces the end of the game.
func (fm *FeedbackManager) OnWin(winner board.Color) {
	fm.toasts.Show(winner.String()+" wins by capturing the King!", ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}
