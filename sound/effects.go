package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Note is one tone of an effect. A zero frequency is a noise burst.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Effect is a registered sound: notes played one after another.
type Effect []Note

// Sound names used by the game.
const (
	BlockHits     = "block-hits"
	BlockDestroy  = "block-destroy"
	VoiceGameOver = "voice-gameover"
)

// BlockClick, BlockPlace and Voice return the numbered variants.
func BlockClick(i int) string { return variant("block-click", i) }
func BlockPlace(i int) string { return variant("block-place", i) }
func Voice(i int) string      { return variant("voice", i) }

func variant(prefix string, i int) string {
	return prefix + string(rune('0'+max(0, min(i, 9))))
}

// DefaultEffects returns synthesized stand-ins for every game sound.
func DefaultEffects() map[string]Effect {
	ms := time.Millisecond
	return map[string]Effect{
		BlockHits:     {{Freq: 220, Duration: 25 * ms}},
		BlockClick(0): {{Freq: 660, Duration: 30 * ms}},
		BlockClick(1): {{Freq: 740, Duration: 30 * ms}},
		BlockClick(2): {{Freq: 820, Duration: 30 * ms}},
		BlockPlace(0): {{Freq: 330, Duration: 45 * ms}, {Freq: 440, Duration: 45 * ms}},
		BlockPlace(1): {{Freq: 349, Duration: 45 * ms}, {Freq: 466, Duration: 45 * ms}},
		BlockPlace(2): {{Freq: 392, Duration: 45 * ms}, {Freq: 523, Duration: 45 * ms}},
		BlockDestroy:  {{Freq: 0, Duration: 180 * ms}},
		Voice(0):      {{Freq: 523, Duration: 80 * ms}, {Freq: 659, Duration: 80 * ms}, {Freq: 784, Duration: 120 * ms}},
		Voice(1):      {{Freq: 587, Duration: 80 * ms}, {Freq: 740, Duration: 80 * ms}, {Freq: 880, Duration: 120 * ms}},
		Voice(2):      {{Freq: 659, Duration: 80 * ms}, {Freq: 831, Duration: 80 * ms}, {Freq: 988, Duration: 140 * ms}},
		Voice(3):      {{Freq: 698, Duration: 80 * ms}, {Freq: 880, Duration: 80 * ms}, {Freq: 1047, Duration: 160 * ms}},
		VoiceGameOver: {{Freq: 392, Duration: 150 * ms}, {Freq: 330, Duration: 150 * ms}, {Freq: 262, Duration: 300 * ms}},
	}
}

// build renders an effect as a finite streamer at the given linear volume.
func build(e Effect, sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(e))
	for _, n := range e {
		var src beep.Streamer
		if n.Freq <= 0 {
			src = &noise{sr: sr}
		} else {
			tone, err := generators.SineTone(sr, n.Freq)
			if err != nil {
				return nil, err
			}
			src = tone
		}
		parts = append(parts, &fade{
			streamer: beep.Take(sr.N(n.Duration), src),
			total:    sr.N(n.Duration),
			release:  sr.N(min(n.Duration/3, 15*time.Millisecond)),
		})
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// newVolume maps a linear volume onto effects.Volume. Zero is silent since
// log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}

// fade ramps the tail of a streamer down to avoid clicks.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
	release  int
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if remaining := f.total - f.pos; f.release > 0 && remaining < f.release {
			g := float64(remaining) / float64(f.release)
			samples[i][0] *= g
			samples[i][1] *= g
		}
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// noise is a decaying crackle.
type noise struct {
	sr  beep.SampleRate
	pos int
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 12)
		v := env * (0.6*(rand.Float64()*2-1) + 0.4*math.Sin(2*math.Pi*90*t))
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }
