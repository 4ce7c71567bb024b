// Package tui plays the game in a terminal through tcell. The mouse drags
// pieces; q or Escape quits, r restarts and o toggles online mode.
package tui

import (
	"context"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/pixelblast/app"
	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/locale"
	"github.com/plus3/pixelblast/palette"
)

const eventBuffer = 100

var (
	styleText  = tcell.StyleDefault
	styleGrid  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHover = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Terminal draws a game on a tcell screen and feeds it mouse input.
type Terminal struct {
	screen  tcell.Screen
	game    *app.Game
	mouse   *Mouse
	strings *locale.Strings
	logger  *log.Logger
}

// New binds game to screen. mouse must be the game's sampler.
func New(screen tcell.Screen, game *app.Game, mouse *Mouse, strings *locale.Strings, logger *log.Logger) *Terminal {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Terminal{screen: screen, game: game, mouse: mouse, strings: strings, logger: logger}
}

// Run ticks the game at interval and redraws after every tick until ctx is
// cancelled or the player quits. The screen must already be initialized.
func (t *Terminal) Run(ctx context.Context, interval time.Duration) {
	t.screen.EnableMouse()
	defer t.screen.DisableMouse()

	events := make(chan tcell.Event, eventBuffer)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !t.Handle(ev) {
				return
			}
		case now := <-ticker.C:
			t.game.Tick(now.Sub(last).Seconds())
			last = now
			t.Draw()
		}
	}
}

// Handle applies one terminal event. It returns false when the player quits.
func (t *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		t.mouse.Handle(ev)
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == 'r':
			t.game.Restart()
		case ev.Rune() == 'o':
			t.game.SetOnline(!t.game.Online())
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Draw renders the current frame and shows it.
func (t *Terminal) Draw() {
	t.screen.Clear()

	s := t.game.Session()
	layout := s.Layout()

	for i, line := range t.game.HUD(t.strings) {
		t.text(boardLeft, i, line, styleText)
	}

	t.drawBoard(s, layout)
	t.drawClearing(s, layout)
	t.drawTray(s, layout)

	if active, _ := s.Active(); active != nil {
		in := s.Input()
		cw, ch := layout.CellSize()
		t.piece(active, in.X, in.Y, cw, ch, blockStyle(active.Color))
	}

	if s.Over() {
		y := int(layout.Board.Y + layout.Board.H/2)
		t.centered(layout, y-1, t.strings.Sprintf(locale.GameOver), styleAlert)
		t.centered(layout, y, t.strings.Sprintf(locale.RestartHint), styleText)
	}

	t.screen.Show()
}

func (t *Terminal) drawBoard(s *blast.Session, layout blast.Layout) {
	board := s.Board()
	preview := make(map[blast.Point]bool)
	for _, p := range s.Preview() {
		preview[p] = true
	}
	active, _ := s.Active()

	for y := 0; y < board.Size(); y++ {
		for x := 0; x < board.Size(); x++ {
			r := layout.CellRect(x, y)
			cx, cy := int(r.X), int(r.Y)
			switch cell := board.At(x, y); {
			case cell.Occupied:
				t.block(cx, cy, '█', blockStyle(int(cell.Color)))
			case preview[blast.Point{X: x, Y: y}]:
				t.block(cx, cy, '░', blockStyle(active.Color))
			default:
				t.screen.SetContent(cx, cy, '·', nil, styleGrid)
				t.screen.SetContent(cx+1, cy, ' ', nil, styleGrid)
			}
		}
	}
}

// drawClearing shows cleared cells fading out: solid, then shaded, then
// gone.
func (t *Terminal) drawClearing(s *blast.Session, layout blast.Layout) {
	cells, f := s.Clearing()
	if f <= 0 {
		return
	}
	glyph := '▒'
	if f < 0.5 {
		glyph = '░'
	}
	for _, c := range cells {
		r := layout.CellRect(c.X, c.Y)
		t.block(int(r.X), int(r.Y), glyph, blockStyle(c.Color))
	}
	t.centered(layout, int(layout.Board.Y)-1, t.strings.Sprintf(locale.WellDone), styleHover)
}

func (t *Terminal) drawTray(s *blast.Session, layout blast.Layout) {
	cw, ch := layout.CellSize()
	hovered := s.HoveredSlot()
	for i, p := range s.Candidates().Pieces() {
		if p == nil {
			continue
		}
		if i == hovered {
			r := layout.SlotRect(i)
			t.screen.SetContent(int(r.X), int(r.Y+r.H/2), '>', nil, styleHover)
		}
		px, py := layout.SlotCenter(i)
		t.piece(p, px, py, cw, ch, blockStyle(p.Color))
	}
}

func (t *Terminal) piece(p *blast.Piece, px, py, cw, ch float64, style tcell.Style) {
	ox, oy := blast.PieceOrigin(p, px, py, cw, ch)
	for _, c := range p.Cells {
		t.block(int(ox+float64(c.X)*cw), int(oy+float64(c.Y)*ch), '█', style)
	}
}

func (t *Terminal) block(x, y int, glyph rune, style tcell.Style) {
	for i := 0; i < cellColumns; i++ {
		t.screen.SetContent(x+i, y, glyph, nil, style)
	}
}

func (t *Terminal) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *Terminal) centered(layout blast.Layout, y int, s string, style tcell.Style) {
	x := int(layout.Board.X+layout.Board.W/2) - len([]rune(s))/2
	t.text(max(0, x), y, s, style)
}

func blockStyle(i int) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(palette.At(i)))
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
