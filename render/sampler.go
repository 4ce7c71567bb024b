package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/pixelblast/blast"
)

// Sampler reads the mouse once per tick. It must be called from ebiten's
// Update.
type Sampler struct {
	// Blocked reports whether another layer, such as the debug UI, owns the
	// mouse. Blocked ticks only carry the cursor position.
	Blocked func() bool
}

func (s *Sampler) Sample() blast.Input {
	x, y := ebiten.CursorPosition()
	in := blast.Input{X: float64(x), Y: float64(y)}
	if s.Blocked != nil && s.Blocked() {
		return in
	}

	in.PrimaryDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.PrimaryPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.PrimaryReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	in.SecondaryDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	return in
}
