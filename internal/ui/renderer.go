package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chess2/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	CaptureColor   color.RGBA
	HoverColor     color.RGBA
	LastMoveColor  color.RGBA
	ShieldColor    color.RGBA
	PromptColor    color.RGBA
	BadgeColor     color.RGBA
	BankedColor    color.RGBA
	Background     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255},
		DarkSquare:     color.RGBA{181, 136, 99, 255},
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		CaptureColor:   color.RGBA{200, 70, 60, 210},
		HoverColor:     color.RGBA{90, 120, 170, 120},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		ShieldColor:    color.RGBA{255, 200, 60, 230},
		PromptColor:    color.RGBA{100, 180, 255, 110},
		BadgeColor:     color.RGBA{76, 132, 96, 235},
		BankedColor:    color.RGBA{220, 160, 40, 235},
		Background:     color.RGBA{40, 44, 52, 255},
	}
}

// Renderer draws an N×N board into a square area of fixed pixel size.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
	area    float64 // board edge in logical pixels
	size    int     // squares per edge
	flipped bool
}

// NewRenderer creates a renderer for a size×size board.
func NewRenderer(area float64, size int) *Renderer {
	return &Renderer{
		sprites: NewSpriteManager(),
		theme:   DefaultTheme(),
		area:    area,
		size:    size,
	}
}

// SetSize changes the number of squares per edge.
func (r *Renderer) SetSize(size int) {
	r.size = size
}

// SetFlipped puts Black at the bottom when true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// SquareSize returns the edge of one square in logical pixels.
func (r *Renderer) SquareSize() float64 {
	return r.area / float64(r.size)
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// SquareToScreen returns the logical top-left corner of sq.
func (r *Renderer) SquareToScreen(sq board.Square) (float64, float64) {
	row, col := sq.Row, sq.Col
	if r.flipped {
		row, col = r.size-1-row, r.size-1-col
	}
	s := r.SquareSize()
	return float64(col) * s, float64(row) * s
}

// ScreenToSquare converts logical coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || y < 0 || float64(x) >= r.area || float64(y) >= r.area {
		return board.NoSquare
	}
	s := r.SquareSize()
	row, col := int(float64(y)/s), int(float64(x)/s)
	if row >= r.size || col >= r.size {
		return board.NoSquare
	}
	if r.flipped {
		row, col = r.size-1-row, r.size-1-col
	}
	return board.Sq(row, col)
}

// DrawBoard draws the squares and the file and rank labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	s := r.SquareSize()
	for row := 0; row < r.size; row++ {
		for col := 0; col < r.size; col++ {
			c := r.theme.LightSquare
			if (row+col)%2 == 1 {
				c = r.theme.DarkSquare
			}
			x, y := r.SquareToScreen(board.Sq(row, col))
			fillRect(screen, x, y, s, s, c)
		}
	}
	r.drawCoordinates(screen)
}

// drawCoordinates labels files along the bottom edge and ranks along the
// left edge, in the contrasting square color.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(coordFontSize)
	s := r.SquareSize()
	for i := 0; i < r.size; i++ {
		file := board.Sq(r.size-1, i)
		if r.flipped {
			file = board.Sq(0, i)
		}
		x, y := r.SquareToScreen(file)
		name := file.Algebraic(r.size)
		_, h := MeasureText(name[:1], face)
		drawText(screen, name[:1], face, x+s-10, y+s-h-2, r.labelColor(file))

		rank := board.Sq(i, 0)
		if r.flipped {
			rank = board.Sq(i, r.size-1)
		}
		x, y = r.SquareToScreen(rank)
		drawText(screen, rank.Algebraic(r.size)[1:], face, x+3, y+2, r.labelColor(rank))
	}
}

func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if (sq.Row+sq.Col)%2 == 1 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// DrawHighlights draws the last move, the selection and its destinations,
// the hover preview, and the shield markers of st.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, st *board.State, hover []board.Move) {
	if lm := st.LastMove; lm != nil {
		r.highlightSquare(screen, lm.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, lm.To, r.theme.LastMoveColor)
	}

	if st.PendingUpgrade != nil {
		r.highlightSquare(screen, *st.PendingUpgrade, r.theme.PromptColor)
	}

	if ps := st.PendingShield; ps != nil {
		for _, loc := range st.Board.Find(func(p *board.Piece) bool { return p.Color == ps.Owner }) {
			r.highlightSquare(screen, loc.Square, r.theme.PromptColor)
		}
	}

	if st.Selected != nil {
		r.highlightSquare(screen, *st.Selected, r.theme.SelectedSquare)
		for _, m := range st.Moves {
			r.drawMoveIndicator(screen, m, r.theme.LegalMoveColor)
		}
	} else {
		for _, m := range hover {
			r.drawMoveIndicator(screen, m, r.theme.HoverColor)
		}
	}
}

// highlightSquare draws a colored overlay on a square.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if sq == board.NoSquare {
		return
	}
	x, y := r.SquareToScreen(sq)
	s := r.SquareSize()
	fillRect(screen, x, y, s, s, c)
}

// drawMoveIndicator draws a dot on quiet destinations and a ring on
// captures.
func (r *Renderer) drawMoveIndicator(screen *ebiten.Image, m board.Move, c color.RGBA) {
	x, y := r.SquareToScreen(m.To)
	s := r.SquareSize()
	cx, cy := x+s/2, y+s/2
	if m.Capture {
		ring := c
		if c == r.theme.LegalMoveColor {
			ring = r.theme.CaptureColor
		}
		strokeCircle(screen, cx, cy, s*0.44, s*0.07, ring)
		return
	}
	fillCircle(screen, cx, cy, s*0.15, c)
}

// DrawPieces draws every piece with its level and banked-point badges and
// the shield ring.
func (r *Renderer) DrawPieces(screen *ebiten.Image, st *board.State, anims *AnimationManager) {
	s := r.SquareSize()
	n := st.Board.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			sq := board.Sq(row, col)
			p := st.Board.At(sq)
			if p == nil {
				continue
			}
			x, y := r.SquareToScreen(sq)
			if anims != nil {
				dx, dy := anims.GetShakeOffset(sq)
				x, y = x+dx, y+dy
			}

			if st.IsShielded(sq) {
				strokeCircle(screen, x+s/2, y+s/2, s*0.46, s*0.06, r.theme.ShieldColor)
			}
			r.sprites.DrawPieceAt(screen, p, x, y, s)
			r.drawBadges(screen, p, x, y, s)
		}
	}
}

// drawBadges marks the upgrade level in the bottom-right corner and the
// banked points in the top-right corner.
func (r *Renderer) drawBadges(screen *ebiten.Image, p *board.Piece, x, y, s float64) {
	if s < 28 {
		return
	}
	face := GetFaceWithSize(badgeFontSize)
	radius := s * 0.14
	if lvl := p.Level(); lvl > 0 {
		cx, cy := x+s-radius-1, y+s-radius-1
		fillCircle(screen, cx, cy, radius, r.theme.BadgeColor)
		drawTextCentered(screen, fmt.Sprint(lvl), face, cx, cy, textPrimary)
	}
	if banked := p.Banked(); banked > 0 {
		cx, cy := x+s-radius-1, y+radius+1
		fillCircle(screen, cx, cy, radius, r.theme.BankedColor)
		drawTextCentered(screen, fmt.Sprintf("+%d", banked), face, cx, cy, color.Black)
	}
}
