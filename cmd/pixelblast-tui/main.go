// Command pixelblast-tui plays the game in a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/pixelblast/app"
	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/config"
	"github.com/plus3/pixelblast/leaderboard"
	"github.com/plus3/pixelblast/locale"
	"github.com/plus3/pixelblast/palette"
	"github.com/plus3/pixelblast/settings"
	"github.com/plus3/pixelblast/sound"
	"github.com/plus3/pixelblast/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The screen owns the terminal, so logs go to a file next to the data
	// store, or nowhere.
	var out io.Writer = io.Discard
	if f, err := os.OpenFile(cfg.DataPath+".log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		defer f.Close()
		out = f
	}
	logger := log.New(out, "pixelblast-tui: ", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	store, err := settings.Open(ctx, cfg.DataPath)
	if err != nil {
		return err
	}
	defer store.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	layout := tui.Layout(cfg.BoardSize)
	mouse := &tui.Mouse{}
	opts := app.Options{
		Session: blast.Config{
			Size:   cfg.BoardSize,
			Mode:   cfg.Mode(),
			Policy: cfg.Policy(),
			Colors: len(palette.Colors),
			Layout: &layout,
			Rand:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		},
		Sampler: mouse,
		Store:   store,
		Online:  cfg.Online,
		Logger:  logger,
	}

	if cfg.Sound {
		manager := sound.NewManager(nil, logger)
		if err := manager.Initialize(cfg.Volume); err != nil {
			logger.Printf("sound disabled: %v", err)
		}
		defer manager.Cleanup()
		opts.Sound = manager
	}

	if cfg.LeaderboardURL != "" {
		client := leaderboard.New(cfg.LeaderboardURL,
			leaderboard.WithTimeout(cfg.RequestTimeout),
			leaderboard.WithLogger(logger),
		)
		opts.Leaderboard = leaderboard.NewAsync(client, 8)
	}

	game := app.New(opts)
	if err := game.Load(ctx); err != nil {
		return err
	}

	strings := locale.New(cfg.Tag())
	if _, registered := game.Account(); !registered && cfg.PlayerName != "" && game.Online() {
		if err := game.Register(cfg.PlayerName); err != nil {
			logger.Print(game.Notice(err, strings))
		}
	}

	tui.New(screen, game, mouse, strings, logger).Run(ctx, cfg.TickInterval())
	return game.Close(context.Background())
}
