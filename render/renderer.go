// Package render draws a game into an ebiten window and samples the mouse
// for it.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/pixelblast/app"
	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/locale"
	"github.com/plus3/pixelblast/palette"
)

const (
	// ScreenWidth and ScreenHeight are the logical window size for the
	// default layout.
	ScreenWidth  = 378
	ScreenHeight = 600

	trayScale  = 0.6
	dragScale  = 0.9
	glyphWidth = 6
	lineHeight = 16
)

// Renderer draws the board, the tray, the dragged piece and the HUD.
type Renderer struct {
	strings *locale.Strings
}

func NewRenderer(strings *locale.Strings) *Renderer {
	return &Renderer{strings: strings}
}

// Draw renders the whole frame for g.
func (r *Renderer) Draw(screen *ebiten.Image, g *app.Game) {
	s := g.Session()
	layout := s.Layout()

	screen.Fill(background)
	r.drawBoard(screen, s.Board(), layout)
	r.drawPreview(screen, s, layout)
	r.drawClearing(screen, s, layout)
	r.drawTray(screen, s, layout)
	r.drawActive(screen, s, layout)
	r.drawHUD(screen, g)

	if s.Over() {
		r.drawGameOver(screen, layout)
	}
}

func (r *Renderer) drawBoard(screen *ebiten.Image, board *blast.Board, layout blast.Layout) {
	n := board.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			rect := layout.CellRect(x, y)
			fillRect(screen, rect, gridFill)
			strokeRect(screen, rect, gridLine)
			if cell := board.At(x, y); cell.Occupied {
				drawBlock(screen, inset(rect, 1), palette.At(int(cell.Color)))
			}
		}
	}
}

// drawPreview shades the cells the dragged piece would land on.
func (r *Renderer) drawPreview(screen *ebiten.Image, s *blast.Session, layout blast.Layout) {
	active, _ := s.Active()
	if active == nil {
		return
	}
	c := palette.Fade(palette.At(active.Color), 0.45)
	for _, p := range s.Preview() {
		fillRect(screen, inset(layout.CellRect(p.X, p.Y), 1), c)
	}
}

// drawClearing shrinks cleared blocks towards their centers as the fade runs
// out.
func (r *Renderer) drawClearing(screen *ebiten.Image, s *blast.Session, layout blast.Layout) {
	cells, f := s.Clearing()
	if f <= 0 {
		return
	}
	for _, c := range cells {
		rect := layout.CellRect(c.X, c.Y)
		drawBlock(screen, scale(rect, f), palette.Fade(palette.At(c.Color), f))
	}

	banner := r.strings.Sprintf(locale.WellDone)
	ebitenutil.DebugPrintAt(screen, banner, centered(banner, layout.Board.X+layout.Board.W/2), int(layout.Board.Y)-lineHeight-4)
}

func (r *Renderer) drawTray(screen *ebiten.Image, s *blast.Session, layout blast.Layout) {
	cw, ch := layout.CellSize()
	hovered := s.HoveredSlot()
	for i, p := range s.Candidates().Pieces() {
		slot := layout.SlotRect(i)
		if i == hovered && p != nil {
			fillRect(screen, slot, highlight)
		}
		if p == nil {
			continue
		}
		px, py := layout.SlotCenter(i)
		drawPiece(screen, p, px, py, cw*trayScale, ch*trayScale)
	}
}

// drawActive draws the dragged piece centered under the pointer.
func (r *Renderer) drawActive(screen *ebiten.Image, s *blast.Session, layout blast.Layout) {
	active, _ := s.Active()
	if active == nil {
		return
	}
	cw, ch := layout.CellSize()
	in := s.Input()
	drawPiece(screen, active, in.X, in.Y, cw*dragScale, ch*dragScale)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, g *app.Game) {
	x, y := 25, 10
	for _, line := range g.HUD(r.strings) {
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += lineHeight
	}
}

func (r *Renderer) drawGameOver(screen *ebiten.Image, layout blast.Layout) {
	fillRect(screen, layout.Board, overlayFill)

	cx := layout.Board.X + layout.Board.W/2
	cy := int(layout.Board.Y + layout.Board.H/2)
	title := r.strings.Sprintf(locale.GameOver)
	hint := r.strings.Sprintf(locale.RestartHint)
	ebitenutil.DebugPrintAt(screen, title, centered(title, cx), cy-lineHeight)
	ebitenutil.DebugPrintAt(screen, hint, centered(hint, cx), cy+4)
}

// drawPiece draws p centered on (px, py) with cells of size (cw, ch).
func drawPiece(screen *ebiten.Image, p *blast.Piece, px, py, cw, ch float64) {
	ox, oy := blast.PieceOrigin(p, px, py, cw, ch)
	c := palette.At(p.Color)
	for _, cell := range p.Cells {
		rect := blast.Rect{X: ox + float64(cell.X)*cw, Y: oy + float64(cell.Y)*ch, W: cw, H: ch}
		drawBlock(screen, inset(rect, 1), c)
	}
}

func drawBlock(screen *ebiten.Image, rect blast.Rect, c color.RGBA) {
	fillRect(screen, rect, c)
	strokeRect(screen, rect, palette.Fade(outline, float64(c.A)/255))
}

func fillRect(screen *ebiten.Image, r blast.Rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func strokeRect(screen *ebiten.Image, r blast.Rect, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, c, false)
}

// inset shrinks r by d on every side.
func inset(r blast.Rect, d float64) blast.Rect {
	return blast.Rect{X: r.X + d, Y: r.Y + d, W: max(0, r.W-2*d), H: max(0, r.H-2*d)}
}

// scale resizes r by k around its center.
func scale(r blast.Rect, k float64) blast.Rect {
	w, h := r.W*k, r.H*k
	return blast.Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// centered returns the x coordinate that centers s on cx in the debug font.
// TODO: move HUD text to text/v2 with a face that has Cyrillic glyphs; the
// debug font only covers ASCII, so the Russian strings show up in the
// terminal frontend only.
func centered(s string, cx float64) int {
	return int(cx) - len([]rune(s))*glyphWidth/2
}
