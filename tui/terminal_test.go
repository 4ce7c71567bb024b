package tui_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/plus3/pixelblast/app"
	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/locale"
	"github.com/plus3/pixelblast/tui"
)

func newTerminal(t *testing.T) (*tui.Terminal, *app.Game, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	layout := tui.Layout(8)
	w, h := tui.Size(layout)
	screen.SetSize(w, h)

	mouse := &tui.Mouse{}
	game := app.New(app.Options{
		Session: blast.Config{
			Layout:  &layout,
			Policy:  blast.PolicyRandom,
			Catalog: blast.NewCatalog([]blast.CatalogEntry{{Mask: 0x01}}),
			Rand:    rand.New(rand.NewPCG(2, 3)),
		},
		Sampler: mouse,
	})
	return tui.New(screen, game, mouse, locale.New(language.English), nil), game, screen
}

func row(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestLayoutSize(t *testing.T) {
	l := tui.Layout(8)
	w, h := tui.Size(l)
	assert.Equal(t, 34, w)
	assert.Equal(t, 20, h)

	assert.Equal(t, blast.Point{X: 3, Y: 2}, l.CellAt(8.5, 6.5))
	assert.Equal(t, 0, l.SlotAt(7.5, 15.5))
	assert.Equal(t, 2, l.SlotAt(30.5, 15.5))
}

func TestMouseEdges(t *testing.T) {
	m := &tui.Mouse{}

	m.Handle(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone))
	in := m.Sample()
	assert.Equal(t, blast.Input{X: 3.5, Y: 4.5, PrimaryDown: true, PrimaryPressed: true}, in)

	m.Handle(tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone))
	assert.Equal(t, blast.Input{X: 5.5, Y: 4.5, PrimaryDown: true}, m.Sample())

	// A click between two samples still reports both edges.
	m.Handle(tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone))
	m.Handle(tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone))
	m.Handle(tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone))
	in = m.Sample()
	assert.True(t, in.PrimaryPressed)
	assert.True(t, in.PrimaryReleased)
	assert.False(t, in.PrimaryDown)

	m.Handle(tcell.NewEventMouse(5, 4, tcell.Button2, tcell.ModNone))
	assert.True(t, m.Sample().SecondaryDown)
}

func TestTerminalDragAndDraw(t *testing.T) {
	term, game, screen := newTerminal(t)

	game.Tick(1.0 / 60)
	term.Handle(tcell.NewEventMouse(7, 15, tcell.Button1, tcell.ModNone))
	game.Tick(1.0 / 60)
	active, slot := game.Session().Active()
	require.NotNil(t, active)
	assert.Equal(t, 0, slot)

	term.Handle(tcell.NewEventMouse(8, 6, tcell.Button1, tcell.ModNone))
	game.Tick(1.0 / 60)
	term.Handle(tcell.NewEventMouse(8, 6, tcell.ButtonNone, tcell.ModNone))
	game.Tick(1.0 / 60)

	require.True(t, game.Session().Board().Occupied(3, 2))

	term.Draw()
	assert.True(t, strings.HasPrefix(row(screen, 0), "  Score: 0   Best: 0"))
	assert.Equal(t, "· · · ██· · · · ", string([]rune(row(screen, 6))[2:2+16]))
}

func TestTerminalKeys(t *testing.T) {
	term, game, screen := newTerminal(t)

	for range 3 {
		game.Tick(1.0 / 60)
	}
	require.Equal(t, 1, game.Session().Round())

	assert.True(t, term.Handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Zero(t, game.Session().Round())

	assert.True(t, term.Handle(tcell.NewEventKey(tcell.KeyRune, 'o', tcell.ModNone)))
	assert.False(t, game.Online())

	assert.False(t, term.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, term.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))

	term.Draw()
	assert.Contains(t, row(screen, 2), "Offline")
}
