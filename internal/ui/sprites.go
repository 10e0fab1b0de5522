// Package ui implements the desktop shell using Ebitengine.
package ui

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chess2/internal/board"
)

// spriteRenderSize is the edge of the rasterised sprites. They are scaled
// down to the square size when drawn.
const spriteRenderSize = 160

// Piece outlines on a 45×45 canvas.
var pieceShapes = map[board.PieceType]string{
	board.Pawn: `<circle cx="22.5" cy="13" r="5"/>
<path d="M22.5 18 C19.3 18 17.5 20.2 17.5 22.6 C17.5 24 18.1 25.2 19.1 26 C16.3 27.8 14.5 31 14.5 34.5 L30.5 34.5 C30.5 31 28.7 27.8 25.9 26 C26.9 25.2 27.5 24 27.5 22.6 C27.5 20.2 25.7 18 22.5 18 Z"/>`,
	board.Knight: `<path d="M14 34.5 C14 27.5 17.5 24 22 21 C19 21.5 16.5 22.5 14 20.5 C14 16 19 10 24.5 9 L25.5 5.5 L28 9.5 C32.5 11.5 35.5 17 35.5 24 L35.5 34.5 Z"/>
<circle cx="21" cy="14.5" r="1.2" fill="%[2]s" stroke="none"/>`,
	board.Bishop: `<circle cx="22.5" cy="9.5" r="2.5"/>
<path d="M22.5 12.5 C17.5 17 14.5 22.5 14.5 27.5 C14.5 30 15.5 32 16.5 33 L28.5 33 C29.5 32 30.5 30 30.5 27.5 C30.5 22.5 27.5 17 22.5 12.5 Z"/>
<path d="M20 22 L25 22 M22.5 19.5 L22.5 24.5" fill="none" stroke="%[2]s"/>`,
	board.Rook: `<path d="M12 33 L12 29 L33 29 L33 33 Z"/>
<path d="M14.5 29 L16 16 L29 16 L30.5 29 Z"/>
<path d="M12.5 16 L12.5 10 L16.5 10 L16.5 12.5 L20.5 12.5 L20.5 10 L24.5 10 L24.5 12.5 L28.5 12.5 L28.5 10 L32.5 10 L32.5 16 Z"/>`,
	board.Queen: `<path d="M11 34 L8.5 16 L15.5 25.5 L16 12 L22.5 23.5 L29 12 L29.5 25.5 L36.5 16 L34 34 Z"/>
<circle cx="8.5" cy="14.5" r="2"/><circle cx="16" cy="10.5" r="2"/>
<circle cx="29" cy="10.5" r="2"/><circle cx="36.5" cy="14.5" r="2"/>`,
	board.King: `<path d="M21 5 L24 5 L24 9 L27.5 9 L27.5 12 L24 12 L24 18 L21 18 L21 12 L17.5 12 L17.5 9 L21 9 Z"/>
<path d="M11.5 34 C10 26 14.5 19.5 22.5 18.5 C30.5 19.5 35 26 33.5 34 Z"/>
<path d="M15 28 L30 28" fill="none" stroke="%[2]s"/>`,
}

const pieceSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<g fill="%[1]s" stroke="%[2]s" stroke-width="1.5" stroke-linejoin="round" stroke-linecap="round">
%[3]s
<path d="M10 39.5 L10 36 L35 36 L35 39.5 Z"/>
</g></svg>`

var pieceColors = map[board.Color][2]string{
	board.White: {"#f8f8f2", "#1c1c1c"},
	board.Black: {"#2b2b30", "#e8e8e8"},
}

type spriteKey struct {
	pt board.PieceType
	c  board.Color
}

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces map[spriteKey]*ebiten.Image
}

// NewSpriteManager rasterises every piece sprite.
func NewSpriteManager() *SpriteManager {
	sm := &SpriteManager{pieces: make(map[spriteKey]*ebiten.Image)}
	sm.loadPieces()
	return sm
}

// pieceDocument returns the SVG source of a piece.
func pieceDocument(pt board.PieceType, c board.Color) string {
	cols := pieceColors[c]
	shape := pieceShapes[pt]
	if strings.Contains(shape, "%[2]s") {
		shape = fmt.Sprintf(shape, cols[0], cols[1])
	}
	return fmt.Sprintf(pieceSVG, cols[0], cols[1], shape)
}

// loadPieces renders all piece sprites with anti-aliasing.
func (sm *SpriteManager) loadPieces() {
	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			icon, err := oksvg.ReadIconStream(strings.NewReader(pieceDocument(pt, c)))
			if err != nil {
				log.Printf("Failed to parse %s %s sprite: %v", c, pt, err)
				continue
			}

			icon.SetTarget(0, 0, spriteRenderSize, spriteRenderSize)
			rgba := image.NewRGBA(image.Rect(0, 0, spriteRenderSize, spriteRenderSize))
			scanner := rasterx.NewScannerGV(spriteRenderSize, spriteRenderSize, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(spriteRenderSize, spriteRenderSize, scanner)
			icon.Draw(raster, 1.0)

			sm.pieces[spriteKey{pt, c}] = ebiten.NewImageFromImage(rgba)
		}
	}
}

// DrawPieceAt draws p with its top-left corner at logical (x, y), sized
// to a square of edge size.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p *board.Piece, x, y, size float64) {
	if p == nil {
		return
	}
	sprite := sm.pieces[spriteKey{p.Type(), p.Color}]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := size * UIScale / spriteRenderSize
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x*UIScale, y*UIScale)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
