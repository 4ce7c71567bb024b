package app

import (
	"context"

	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/leaderboard"
	"github.com/plus3/pixelblast/settings"
)

// Sampler reads the pointer once per tick.
type Sampler interface {
	Sample() blast.Input
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func() blast.Input

func (f SamplerFunc) Sample() blast.Input { return f() }

// Player plays named sound effects. *sound.Manager implements it.
type Player interface {
	Play(name string, volume float64)
}

// Store persists the account and offline best scores. *settings.Store
// implements it.
type Store interface {
	Load(ctx context.Context) (settings.Account, bool, error)
	Save(ctx context.Context, acc settings.Account) error
	Clear(ctx context.Context) error
	BestScore(ctx context.Context, boardSize int) (int, error)
	RecordScore(ctx context.Context, boardSize, score int) error
}

// Leaderboard issues requests without blocking and hands back results on
// Poll. *leaderboard.Async implements it.
type Leaderboard interface {
	NewClient(name string)
	UpdateStats(s leaderboard.Stats)
	ReadStats()
	Poll() []leaderboard.Result
	Close()
}
