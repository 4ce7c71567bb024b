package blast

import "math"

// Rect is an axis-aligned rectangle in pointer space.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (px, py) lies inside r.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && py >= r.Y && px < r.X+r.W && py < r.Y+r.H
}

// Layout maps pointer coordinates to board cells and tray slots. Units are
// whatever the presentation uses: pixels for a window, character cells for a
// terminal.
type Layout struct {
	Board Rect
	// TrayGap is the vertical distance between the board and the tray.
	TrayGap float64
	// SlotW and SlotH size one tray slot. Zero means cell*N/CandidateSlots.
	SlotW, SlotH float64

	size int
}

// DefaultLayout returns a window layout for an n×n board: a 328×328 board
// with the tray 30 units below it.
func DefaultLayout(n int) Layout {
	return Layout{
		Board:   Rect{X: 25, Y: 75, W: 328, H: 328},
		TrayGap: 30,
	}.WithSize(n)
}

// WithSize returns a copy of l bound to an n×n board.
func (l Layout) WithSize(n int) Layout {
	if n <= 0 {
		n = DefaultBoardSize
	}
	l.size = n
	return l
}

// Size returns the board side length the layout is bound to.
func (l Layout) Size() int {
	if l.size <= 0 {
		return DefaultBoardSize
	}
	return l.size
}

// CellSize returns the size of one board cell.
func (l Layout) CellSize() (w, h float64) {
	n := float64(l.Size())
	return l.Board.W / n, l.Board.H / n
}

// CellAt returns the board cell under (px, py). The result may be off-board.
func (l Layout) CellAt(px, py float64) Point {
	n := float64(l.Size())
	return Point{
		X: int(math.Floor(n * (px - l.Board.X) / l.Board.W)),
		Y: int(math.Floor(n * (py - l.Board.Y) / l.Board.H)),
	}
}

// CellRect returns the rectangle covered by board cell (x, y).
func (l Layout) CellRect(x, y int) Rect {
	cw, ch := l.CellSize()
	return Rect{X: l.Board.X + float64(x)*cw, Y: l.Board.Y + float64(y)*ch, W: cw, H: ch}
}

// PieceOrigin returns the top-left corner of a piece drawn centered under
// the pointer at (px, py), with cells of size (cw, ch).
func PieceOrigin(p *Piece, px, py, cw, ch float64) (x, y float64) {
	return px - float64(p.Columns)*cw/2, py - float64(p.Rows)*ch/2
}

// DragTarget returns the board cell that block c of piece p covers when the
// piece is centered under (px, py).
func (l Layout) DragTarget(p *Piece, c Point, px, py float64) Point {
	cw, ch := l.CellSize()
	ox, oy := PieceOrigin(p, px, py, cw, ch)
	return l.CellAt(ox+float64(c.X)*cw+cw/2, oy+float64(c.Y)*ch+ch/2)
}

// PointerFor returns a pointer position that drops p with its top-left
// block offset at board cell (x, y).
func (l Layout) PointerFor(p *Piece, x, y int) (px, py float64) {
	cw, ch := l.CellSize()
	px = l.Board.X + float64(x)*cw + float64(p.Columns)*cw/2
	py = l.Board.Y + float64(y)*ch + float64(p.Rows)*ch/2
	return px, py
}

// SlotSize returns the size of one tray slot.
func (l Layout) SlotSize() (w, h float64) {
	if l.SlotW > 0 && l.SlotH > 0 {
		return l.SlotW, l.SlotH
	}
	cw, ch := l.CellSize()
	k := float64(l.Size()) / CandidateSlots
	return cw * k, ch * k
}

// Tray returns the rectangle holding all candidate slots.
func (l Layout) Tray() Rect {
	sw, sh := l.SlotSize()
	return Rect{X: l.Board.X, Y: l.Board.Y + l.Board.H + l.TrayGap, W: sw * CandidateSlots, H: sh}
}

// SlotRect returns the rectangle of tray slot i.
func (l Layout) SlotRect(i int) Rect {
	tray := l.Tray()
	sw, sh := l.SlotSize()
	return Rect{X: tray.X + float64(i)*sw, Y: tray.Y, W: sw, H: sh}
}

// SlotAt returns the tray slot under (px, py), or -1.
func (l Layout) SlotAt(px, py float64) int {
	tray := l.Tray()
	dx, dy := px-tray.X, py-tray.Y
	if dy < 0 || dy > tray.H || dx < 0 || dx > tray.W {
		return -1
	}
	sw, _ := l.SlotSize()
	i := int(dx / max(1, sw))
	if i < 0 || i >= CandidateSlots {
		return -1
	}
	return i
}

// SlotCenter returns the center of tray slot i.
func (l Layout) SlotCenter(i int) (px, py float64) {
	r := l.SlotRect(i)
	return r.X + r.W/2, r.Y + r.H/2
}
