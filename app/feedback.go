package app

import (
	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/sound"
)

const (
	clickVolume  = 0.8
	effectVolume = 0.5
	hitVolume    = 0.3
)

// playFeedback maps session events to sound effects.
func (g *Game) playFeedback(e blast.Event) {
	switch e.(type) {
	case blast.PiecePicked:
		g.sound.Play(sound.BlockClick(g.rng.IntN(2)), clickVolume)
	case blast.PieceReturned:
		g.sound.Play(sound.BlockClick(2), clickVolume)
	case blast.PiecePlaced:
		g.sound.Play(sound.BlockPlace(g.rng.IntN(2)), effectVolume)
	case blast.LinesCleared:
		// The game over voice replaces the clear fanfare.
		if g.session.Over() {
			return
		}
		g.sound.Play(sound.BlockDestroy, effectVolume)
		g.sound.Play(sound.Voice(g.rng.IntN(3)), effectVolume)
	case blast.GameOver:
		g.sound.Play(sound.VoiceGameOver, effectVolume)
	}
}
