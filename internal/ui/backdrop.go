package ui

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Kage shader that blurs its source with a 7×7 box and darkens it.
var backdropShader = []byte(`
//kage:unit pixels

package main

var Dim float
var Spread float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
    var sum vec4
    for i := 0; i < 7; i++ {
        for j := 0; j < 7; j++ {
            offset := vec2(float(i-3), float(j-3)) * Spread
            sum += imageSrc0At(srcPos + offset)
        }
    }
    c := sum / 49.0
    return vec4(c.rgb*(1.0-Dim), c.a)
}
`)

var modalOverlay = color.RGBA{0, 0, 0, 180}

// Backdrop dims and blurs the frame behind a modal dialog.
type Backdrop struct {
	shader  *ebiten.Shader
	capture *ebiten.Image
}

// NewBackdrop compiles the blur shader. If compilation fails the backdrop
// falls back to a flat overlay.
func NewBackdrop() *Backdrop {
	shader, err := ebiten.NewShader(backdropShader)
	if err != nil {
		log.Printf("Warning: backdrop shader unavailable: %v", err)
		return &Backdrop{}
	}
	return &Backdrop{shader: shader}
}

// Draw replaces screen with a blurred copy of itself, darkened by dim
// (0 keeps the brightness, 1 is black).
func (b *Backdrop) Draw(screen *ebiten.Image, dim float64) {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if b == nil || b.shader == nil {
		fillRect(screen, 0, 0, float64(w)/UIScale, float64(h)/UIScale, modalOverlay)
		return
	}

	if b.capture == nil || b.capture.Bounds().Dx() != w || b.capture.Bounds().Dy() != h {
		b.capture = ebiten.NewImage(w, h)
	}
	b.capture.Clear()
	b.capture.DrawImage(screen, nil)

	op := &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{
			"Dim":    float32(dim),
			"Spread": float32(1.5 * UIScale),
		},
		Images: [4]*ebiten.Image{b.capture},
	}
	screen.DrawRectShader(w, h, b.shader, op)
}
