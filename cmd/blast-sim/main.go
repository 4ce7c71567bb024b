// Command blast-sim plays autoplayed games through the real session and tick
// loop for a fixed duration and prints a report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/pixelblast/app"
	"github.com/plus3/pixelblast/autoplay"
	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/config"
	"github.com/plus3/pixelblast/palette"
)

// maxTicks ends a game that has not reached game over.
const maxTicks = 100_000

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	duration := flag.Duration("duration", 10*time.Second, "The total duration the simulation should run for.")
	games := flag.Int("games", 0, "Stop after this many games; 0 runs until the duration ends.")
	seed := flag.Uint64("seed", cfg.Seed, "Seed for dealing and tie breaks; 0 picks one.")
	size := flag.Int("size", cfg.BoardSize, "Board side length.")
	mode := flag.String("mode", cfg.Interaction, "Interaction mode: hold or click.")
	dealing := flag.String("dealing", cfg.Dealing, "Dealing policy: selective or random.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg.BoardSize, cfg.Interaction, cfg.Dealing = *size, *mode, *dealing
	if err := cfg.Validate(); err != nil {
		log.Fatalf("flags: %v", err)
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		BoardSize:      cfg.BoardSize,
		Mode:           cfg.Mode(),
		Dealing:        cfg.Policy(),
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s (seed %d)...\n", *duration, *seed)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	for i := uint64(0); ctx.Err() == nil && (*games == 0 || report.Games < *games); i++ {
		report.Add(play(ctx, cfg, *seed, i))
	}
	report.TotalTime = time.Since(start)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// play runs game number i to game over, the tick cap or the end of ctx.
func play(ctx context.Context, cfg config.Config, seed, i uint64) Game {
	var bot *autoplay.Bot
	game := app.New(app.Options{
		Session: blast.Config{
			Size:   cfg.BoardSize,
			Mode:   cfg.Mode(),
			Policy: cfg.Policy(),
			Colors: len(palette.Colors),
			Rand:   rand.New(rand.NewPCG(seed, i)),
		},
		Sampler: app.SamplerFunc(func() blast.Input { return bot.Sample() }),
		Rand:    rand.New(rand.NewPCG(seed, ^i)),
	})
	bot = autoplay.New(game.Session(), rand.New(rand.NewPCG(^seed, i)))

	var result Game
	last := time.Now()
	for !game.Session().Over() && game.Scheduler().Ticks() < maxTicks && ctx.Err() == nil {
		now := time.Now()
		game.Tick(now.Sub(last).Seconds())
		last = now
		result.TickTimes = append(result.TickTimes, time.Since(now))
	}

	s := game.Session()
	result.Score = s.Score()
	result.Rounds = s.Round()
	result.Ticks = game.Scheduler().Ticks()
	result.Finished = s.Over()
	result.Placements = bot.Stats().Drops
	result.Systems = game.Scheduler().Stats().Systems
	return result
}
