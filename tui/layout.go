package tui

import "github.com/plus3/pixelblast/blast"

const (
	// cellColumns is the width of one board cell in terminal columns.
	cellColumns = 2
	boardLeft   = 2
	boardTop    = 4
	slotColumns = 10
	slotRows    = 5
)

// Layout returns the terminal layout for an n×n board: two columns per
// cell, with the tray one row below the board.
func Layout(n int) blast.Layout {
	return blast.Layout{
		Board:   blast.Rect{X: boardLeft, Y: boardTop, W: float64(cellColumns * n), H: float64(n)},
		TrayGap: 1,
		SlotW:   slotColumns,
		SlotH:   slotRows,
	}.WithSize(n)
}

// Size returns the terminal size needed for layout l.
func Size(l blast.Layout) (width, height int) {
	tray := l.Tray()
	width = int(max(l.Board.X+l.Board.W, tray.X+tray.W)) + boardLeft
	height = int(tray.Y+tray.H) + 2
	return width, height
}
