package render

import (
	"context"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/pixelblast/app"
	"github.com/plus3/pixelblast/locale"
)

// Overlay is drawn on top of the game, e.g. the debug UI. BeginFrame and
// EndFrame bracket each Update.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Window implements ebiten.Game for one app.Game.
//
// Keys: R restarts, O toggles online mode, N starts typing a player name
// (Enter registers, Escape cancels), X forgets the account, Q or Escape
// quits.
type Window struct {
	ctx      context.Context
	game     *app.Game
	renderer *Renderer
	strings  *locale.Strings
	overlay  Overlay
	logger   *log.Logger

	// keysBlocked reports that another layer owns the keyboard.
	keysBlocked func() bool

	typing bool
	name   []rune
	notice string
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithOverlay draws o over the game.
func WithOverlay(o Overlay) WindowOption {
	return func(w *Window) { w.overlay = o }
}

// WithKeyboardBlocked skips the game's key bindings while blocked returns
// true, e.g. while a debug UI text field has focus.
func WithKeyboardBlocked(blocked func() bool) WindowOption {
	return func(w *Window) { w.keysBlocked = blocked }
}

// WithLogger sets the window logger.
func WithLogger(l *log.Logger) WindowOption {
	return func(w *Window) { w.logger = l }
}

// NewWindow binds game to a window drawn with strings.
func NewWindow(ctx context.Context, game *app.Game, strings *locale.Strings, opts ...WindowOption) *Window {
	w := &Window{
		ctx:      ctx,
		game:     game,
		renderer: NewRenderer(strings),
		strings:  strings,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}

	if w.overlay != nil {
		w.overlay.BeginFrame()
		defer w.overlay.EndFrame()
	}

	switch {
	case w.keyboardBlocked():
	case w.typing:
		w.updateName()
	case w.updateKeys():
		return ebiten.Termination
	}

	w.game.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

func (w *Window) keyboardBlocked() bool {
	return w.keysBlocked != nil && w.keysBlocked()
}

func (w *Window) updateKeys() (quit bool) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		w.game.Restart()
		w.notice = ""
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		w.game.SetOnline(!w.game.Online())
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		w.typing = true
		w.name = w.name[:0]
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		if err := w.game.ResetAccount(w.ctx); err != nil {
			w.logger.Printf("reset account: %v", err)
		}
		w.notice = ""
	}
	return false
}

func (w *Window) updateName() {
	w.name = ebiten.AppendInputChars(w.name)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		w.typing = false
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(w.name) > 0:
		w.name = w.name[:len(w.name)-1]
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		w.typing = false
		w.notice = w.game.Notice(w.game.Register(string(w.name)), w.strings)
	}
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.renderer.Draw(screen, w.game)

	y := ScreenHeight - 2*lineHeight
	switch {
	case w.typing:
		ebitenutil.DebugPrintAt(screen, "> "+string(w.name)+"_", 25, y)
	case w.notice != "":
		ebitenutil.DebugPrintAt(screen, w.notice, 25, y)
	default:
		if acc, ok := w.game.Account(); ok {
			ebitenutil.DebugPrintAt(screen, acc.Name, 25, y)
		}
	}

	if w.overlay != nil {
		w.overlay.Draw(screen)
	}
}

// Layout keeps the fixed logical size unless an overlay is attached, in which
// case the window is used 1:1 so the overlay has room.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.overlay != nil {
		w.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return ScreenWidth, ScreenHeight
}
