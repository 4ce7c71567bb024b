package sound_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/pixelblast/sound"
)

func drain(t *testing.T, name string, m *sound.Manager, volume float64) (samples int, peak float64) {
	t.Helper()
	s, ok := m.Streamer(name, volume)
	require.True(t, ok, name)

	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		samples += n
		if !ok || n == 0 {
			break
		}
		require.Less(t, samples, 44100*2, "%s never ends", name)
	}
	require.NoError(t, s.Err())
	return samples, peak
}

func TestDefaultEffectsRender(t *testing.T) {
	m := sound.NewManager(nil, nil)

	names := []string{sound.BlockHits, sound.BlockDestroy, sound.VoiceGameOver}
	for i := 0; i < 3; i++ {
		names = append(names, sound.BlockClick(i), sound.BlockPlace(i))
	}
	for i := 0; i < 4; i++ {
		names = append(names, sound.Voice(i))
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			assert.True(t, m.Has(name))
			samples, peak := drain(t, name, m, 1)
			assert.Positive(t, samples)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
}

func TestVolume(t *testing.T) {
	m := sound.NewManager(nil, nil)

	_, loud := drain(t, sound.BlockHits, m, 1)
	_, quiet := drain(t, sound.BlockHits, m, 0.25)
	_, silent := drain(t, sound.BlockHits, m, 0)

	assert.Less(t, quiet, loud)
	assert.Zero(t, silent)
}

func TestVariantNames(t *testing.T) {
	assert.Equal(t, "block-click1", sound.BlockClick(1))
	assert.Equal(t, "block-place0", sound.BlockPlace(0))
	assert.Equal(t, "voice3", sound.Voice(3))
}

func TestGracefulDegradation(t *testing.T) {
	m := sound.NewManager(map[string]sound.Effect{}, nil)

	// None of these touch the speaker before Initialize.
	assert.NotPanics(t, func() {
		m.Play(sound.BlockHits, 1)
		m.Play("unknown", 1)
		m.Cleanup()
	})

	_, ok := m.Streamer(sound.BlockHits, 1)
	assert.False(t, ok)
}
