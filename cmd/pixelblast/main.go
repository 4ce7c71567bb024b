// Command pixelblast plays the game in a window.
package main

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/pixelblast/app"
	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/config"
	"github.com/plus3/pixelblast/debugui"
	debugui_ebiten "github.com/plus3/pixelblast/debugui/ebiten"
	"github.com/plus3/pixelblast/leaderboard"
	"github.com/plus3/pixelblast/locale"
	"github.com/plus3/pixelblast/palette"
	"github.com/plus3/pixelblast/render"
	"github.com/plus3/pixelblast/settings"
	"github.com/plus3/pixelblast/sound"
	"github.com/plus3/pixelblast/telemetry"
)

const (
	title        = "PixelBlast"
	debugWidth   = 1280
	debugHeight  = 820
	frameHistory = 200
	resultBuffer = 8
)

func main() {
	logger := log.New(os.Stderr, "pixelblast: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	shutdown, err := telemetry.Setup(ctx, "pixelblast", cfg.OTLPEndpoint)
	if err != nil {
		logger.Printf("telemetry disabled: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Printf("telemetry shutdown: %v", err)
		}
	}()

	store, err := settings.Open(ctx, cfg.DataPath)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := app.Options{
		Session: blast.Config{
			Size:   cfg.BoardSize,
			Mode:   cfg.Mode(),
			Policy: cfg.Policy(),
			Colors: len(palette.Colors),
			Rand:   seeded(cfg.Seed),
		},
		Store:  store,
		Online: cfg.Online,
		Logger: logger,
	}

	sampler := &render.Sampler{}
	opts.Sampler = sampler

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
		opts.Leaderboard = leaderboard.NewAsync(client, resultBuffer)
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

	var windowOpts []render.WindowOption
	windowOpts = append(windowOpts, render.WithLogger(logger))
	if cfg.DebugUI {
		backend := debugui_ebiten.New(title, debugWidth, debugHeight)
		system := debugui.NewSystem(
			debugui.NewPerformance(game.Scheduler(), frameHistory).Item(),
			debugui.NewSessionWindow(ctx, game).Item(),
		)
		game.Scheduler().Register(system)
		sampler.Blocked = system.CapturesMouse
		windowOpts = append(windowOpts,
			render.WithOverlay(backend),
			render.WithKeyboardBlocked(system.CapturesKeyboard),
		)
	} else {
		ebiten.SetWindowSize(render.ScreenWidth, render.ScreenHeight)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetTPS(cfg.TickRate)

	runErr := ebiten.RunGame(render.NewWindow(ctx, game, strings, windowOpts...))
	return errors.Join(runErr, game.Close(context.Background()))
}

// seeded returns a generator for seed, or a randomly seeded one for zero.
func seeded(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}
