package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/pixelblast/blast"
)

// Mouse folds tcell mouse events into one blast.Input per tick. Handle and
// Sample must be called from the same goroutine.
type Mouse struct {
	x, y      float64
	down      bool
	pressed   bool
	released  bool
	secondary bool
}

// Handle records a mouse event. Positions are moved to the center of the
// character cell.
func (m *Mouse) Handle(ev *tcell.EventMouse) {
	x, y := ev.Position()
	m.x, m.y = float64(x)+0.5, float64(y)+0.5

	buttons := ev.Buttons()
	down := buttons&tcell.Button1 != 0
	if down && !m.down {
		m.pressed = true
	}
	if !down && m.down {
		m.released = true
	}
	m.down = down
	m.secondary = buttons&tcell.Button2 != 0
}

// Sample returns the input seen since the previous sample and clears the
// edges.
func (m *Mouse) Sample() blast.Input {
	in := blast.Input{
		X:               m.x,
		Y:               m.y,
		PrimaryDown:     m.down,
		PrimaryPressed:  m.pressed,
		PrimaryReleased: m.released,
		SecondaryDown:   m.secondary,
	}
	m.pressed, m.released = false, false
	return in
}
