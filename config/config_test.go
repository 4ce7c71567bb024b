package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.BoardSize)
	assert.Equal(t, blast.ModeHold, cfg.Mode())
	assert.Equal(t, blast.PolicySelective, cfg.Policy())
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "pixelblast.db", cfg.DataPath)
	assert.True(t, cfg.Sound)
	assert.InDelta(t, 0.5, cfg.Volume, 1e-9)
	assert.False(t, cfg.Online)
	assert.Equal(t, language.English, cfg.Tag())
	assert.Equal(t, time.Second/60, cfg.TickInterval())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"PIXELBLAST_BOARD_SIZE":      "10",
		"PIXELBLAST_INTERACTION":     "click",
		"PIXELBLAST_DEALING":         "random",
		"PIXELBLAST_SEED":            "1234",
		"PIXELBLAST_ONLINE":          "true",
		"PIXELBLAST_LEADERBOARD_URL": "https://example.com/pixelblast",
		"PIXELBLAST_REQUEST_TIMEOUT": "2s",
		"PIXELBLAST_LANG_TAG":        "ru",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.BoardSize)
	assert.Equal(t, blast.ModeClick, cfg.Mode())
	assert.Equal(t, blast.PolicyRandom, cfg.Policy())
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.True(t, cfg.Online)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, language.Russian, cfg.Tag())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"board too small", map[string]string{"PIXELBLAST_BOARD_SIZE": "3"}},
		{"board too large", map[string]string{"PIXELBLAST_BOARD_SIZE": "17"}},
		{"unknown interaction", map[string]string{"PIXELBLAST_INTERACTION": "drag"}},
		{"unknown dealing", map[string]string{"PIXELBLAST_DEALING": "fair"}},
		{"zero tick rate", map[string]string{"PIXELBLAST_TPS": "0"}},
		{"loud", map[string]string{"PIXELBLAST_VOLUME": "1.5"}},
		{"online without url", map[string]string{"PIXELBLAST_ONLINE": "true"}},
		{"relative url", map[string]string{"PIXELBLAST_LEADERBOARD_URL": "/stats"}},
		{"bad language", map[string]string{"PIXELBLAST_LANG_TAG": "not a tag"}},
		{"no timeout", map[string]string{"PIXELBLAST_REQUEST_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFrom(tt.vars)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	t.Run("parse error", func(t *testing.T) {
		_, err := config.LoadFrom(map[string]string{"PIXELBLAST_TPS": "fast"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
		assert.NotErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestLoadProcessEnvironment(t *testing.T) {
	t.Setenv("PIXELBLAST_BOARD_SIZE", "9")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.BoardSize)
}
