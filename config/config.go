// Package config loads runtime settings from PIXELBLAST_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/plus3/pixelblast/blast"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	MinBoardSize = 4
	MaxBoardSize = 16
)

// Config holds every setting of the game and its tools.
type Config struct {
	BoardSize   int    `env:"PIXELBLAST_BOARD_SIZE"  envDefault:"8"`
	Interaction string `env:"PIXELBLAST_INTERACTION" envDefault:"hold"`
	Dealing     string `env:"PIXELBLAST_DEALING"     envDefault:"selective"`
	TickRate    int    `env:"PIXELBLAST_TPS"         envDefault:"60"`
	// Seed fixes the random source. Zero seeds from the runtime.
	Seed     uint64 `env:"PIXELBLAST_SEED"`
	DataPath string `env:"PIXELBLAST_DATA_PATH" envDefault:"pixelblast.db"`

	Online         bool          `env:"PIXELBLAST_ONLINE"`
	LeaderboardURL string        `env:"PIXELBLAST_LEADERBOARD_URL"`
	RequestTimeout time.Duration `env:"PIXELBLAST_REQUEST_TIMEOUT" envDefault:"5s"`
	PlayerName     string        `env:"PIXELBLAST_PLAYER_NAME"`

	Sound    bool    `env:"PIXELBLAST_SOUND"    envDefault:"true"`
	Volume   float64 `env:"PIXELBLAST_VOLUME"   envDefault:"0.5"`
	Language string  `env:"PIXELBLAST_LANG_TAG" envDefault:"en"`
	DebugUI  bool    `env:"PIXELBLAST_DEBUG_UI"`

	OTLPEndpoint string `env:"PIXELBLAST_OTEL_ENDPOINT"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.BoardSize < MinBoardSize || c.BoardSize > MaxBoardSize {
		return fmt.Errorf("%w: board size %d outside [%d, %d]", ErrInvalidConfig, c.BoardSize, MinBoardSize, MaxBoardSize)
	}
	if _, err := c.parseMode(); err != nil {
		return err
	}
	if _, err := c.parsePolicy(); err != nil {
		return err
	}
	if c.TickRate < 1 || c.TickRate > 240 {
		return fmt.Errorf("%w: tick rate %d outside [1, 240]", ErrInvalidConfig, c.TickRate)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume %v outside [0, 1]", ErrInvalidConfig, c.Volume)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	}
	if c.LeaderboardURL != "" {
		u, err := url.Parse(c.LeaderboardURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: leaderboard url %q", ErrInvalidConfig, c.LeaderboardURL)
		}
	}
	if c.Online && c.LeaderboardURL == "" {
		return fmt.Errorf("%w: online mode needs PIXELBLAST_LEADERBOARD_URL", ErrInvalidConfig)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("%w: language %q: %v", ErrInvalidConfig, c.Language, err)
	}
	return nil
}

// Mode returns the interaction mode.
func (c Config) Mode() blast.Mode {
	m, _ := c.parseMode()
	return m
}

// Policy returns the dealing policy.
func (c Config) Policy() blast.Policy {
	p, _ := c.parsePolicy()
	return p
}

// TickInterval returns the duration of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(max(1, c.TickRate))
}

// Tag returns the UI language, falling back to English.
func (c Config) Tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}
	return tag
}

func (c Config) parseMode() (blast.Mode, error) {
	switch c.Interaction {
	case "hold", "":
		return blast.ModeHold, nil
	case "click":
		return blast.ModeClick, nil
	}
	return blast.ModeHold, fmt.Errorf("%w: interaction %q, want hold or click", ErrInvalidConfig, c.Interaction)
}

func (c Config) parsePolicy() (blast.Policy, error) {
	switch c.Dealing {
	case "selective", "":
		return blast.PolicySelective, nil
	case "random":
		return blast.PolicyRandom, nil
	}
	return blast.PolicySelective, fmt.Errorf("%w: dealing %q, want selective or random", ErrInvalidConfig, c.Dealing)
}
