package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
	badgeFontSize   = 10.0
	coordFontSize   = 11.0
)

func init() {
	initFonts()
}

func initFonts() {
	var err error
	regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Failed to load regular font: %v", err)
		return
	}
	boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// Faces are sized in logical pixels; drawText scales them to the device.

// GetRegularFace returns the regular font face.
func GetRegularFace() *text.GoTextFace {
	return GetFaceWithSize(defaultFontSize)
}

// GetBoldFace returns the bold font face.
func GetBoldFace() *text.GoTextFace {
	if boldSource == nil {
		return GetFaceWithSize(titleFontSize)
	}
	return &text.GoTextFace{Source: boldSource, Size: titleFontSize}
}

// GetFaceWithSize returns a regular face with a custom size.
func GetFaceWithSize(size float64) *text.GoTextFace {
	if regularSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: regularSource, Size: size}
}

// MeasureText returns the logical width and height of s.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}

// drawText draws s with its top-left corner at logical (x, y).
func drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	if face == nil {
		return
	}
	scaled := &text.GoTextFace{Source: face.Source, Size: face.Size * UIScale}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*UIScale, y*UIScale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, scaled, op)
}

// drawTextCentered draws s centred on logical (cx, cy).
func drawTextCentered(dst *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, c color.Color) {
	w, h := MeasureText(s, face)
	drawText(dst, s, face, cx-w/2, cy-h/2, c)
}

// truncate shortens s with an ellipsis until it fits in width.
func truncate(s string, face *text.GoTextFace, width float64) string {
	if w, _ := MeasureText(s, face); w <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if w, _ := MeasureText(string(r)+"…", face); w <= width {
			return string(r) + "…"
		}
	}
	return ""
}
