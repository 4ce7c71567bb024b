// Package app composes a session with its collaborators and drives it from
// the tick scheduler.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/leaderboard"
	"github.com/plus3/pixelblast/loop"
	"github.com/plus3/pixelblast/settings"
)

// MinNameLength is the shortest accepted player name, in runes.
const MinNameLength = 4

// BestScoreInterval is how often, in ticks, the best score is refreshed.
const BestScoreInterval = 30

var (
	ErrOffline      = errors.New("online mode is off")
	ErrNameTooShort = fmt.Errorf("name must have at least %d characters", MinNameLength)
	ErrRegistered   = errors.New("already registered")
)

// Options configures a Game. Only Session is required.
type Options struct {
	Session     blast.Config
	Sampler     Sampler
	Sound       Player
	Store       Store
	Leaderboard Leaderboard
	Online      bool
	Logger      *log.Logger
	// Rand picks sound variants.
	Rand *rand.Rand
}

// Game owns one session and everything that reacts to it.
type Game struct {
	session   *blast.Session
	scheduler *loop.Scheduler
	bus       *Bus

	sampler Sampler
	sound   Player
	store   Store
	board   Leaderboard
	logger  *log.Logger
	rng     *rand.Rand

	input blast.Input

	online     bool
	account    settings.Account
	registered bool
	pending    bool
	best       int

	standings []leaderboard.Stats
	rank      int
	status    leaderboard.Status
}

// New builds a game and registers its systems in tick order.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g := &Game{
		session:   blast.NewSession(opts.Session),
		scheduler: loop.NewScheduler(),
		bus:       &Bus{},
		sampler:   opts.Sampler,
		sound:     opts.Sound,
		store:     opts.Store,
		board:     opts.Leaderboard,
		logger:    logger,
		rng:       rng,
		online:    opts.Online && opts.Leaderboard != nil,
	}

	g.scheduler.Register(&InputSystem{game: g})
	g.scheduler.Register(&SessionSystem{game: g})
	g.scheduler.Register(&HoverSystem{game: g})
	g.scheduler.Register(&LeaderboardSystem{game: g})
	g.scheduler.Register(&BestScoreSystem{game: g, Every: BestScoreInterval})

	if g.sound != nil {
		g.bus.Subscribe(g.playFeedback)
	}
	g.bus.Subscribe(g.onEvent)
	return g
}

// Load restores the saved account and offline best score.
func (g *Game) Load(ctx context.Context) error {
	if g.store == nil {
		return nil
	}

	best, err := g.store.BestScore(ctx, g.session.Board().Size())
	if err != nil {
		return err
	}
	g.best = max(g.best, best)

	acc, ok, err := g.store.Load(ctx)
	if err != nil {
		return err
	}
	if ok {
		g.account = acc
		g.registered = true
		g.best = max(g.best, acc.BestScore)
		g.logger.Printf("loaded account %d (%s)", acc.ID, acc.Name)
		if g.online {
			g.board.ReadStats()
		}
	}
	return nil
}

// Close persists the best score and account and stops pending requests.
func (g *Game) Close(ctx context.Context) error {
	g.refreshBest()

	var errs []error
	if g.store != nil {
		if err := g.store.RecordScore(ctx, g.session.Board().Size(), g.best); err != nil {
			errs = append(errs, err)
		}
		if g.registered {
			if err := g.store.Save(ctx, g.account); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if g.board != nil {
		g.board.Close()
	}
	return errors.Join(errs...)
}

// Tick advances the game by one frame.
func (g *Game) Tick(dt float64) {
	g.scheduler.Once(dt)
}

// Restart starts a new match. The best score and account are kept.
func (g *Game) Restart() {
	g.refreshBest()
	g.session.Reset()
}

// SetOnline toggles leaderboard traffic. It stays off without a leaderboard.
func (g *Game) SetOnline(on bool) {
	on = on && g.board != nil
	if on && !g.online && g.registered {
		g.board.ReadStats()
	}
	g.online = on
}

// Register asks the leaderboard for a new player id. The result arrives on
// a later tick.
func (g *Game) Register(name string) error {
	if !g.online {
		return ErrOffline
	}
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinNameLength {
		return ErrNameTooShort
	}
	if g.registered || g.pending {
		return ErrRegistered
	}

	g.Restart()
	g.pending = true
	g.board.NewClient(name)
	return nil
}

// ResetAccount forgets the registered player.
func (g *Game) ResetAccount(ctx context.Context) error {
	g.account = settings.Account{}
	g.registered = false
	g.pending = false
	g.standings = nil
	g.rank = 0
	g.Restart()
	if g.store == nil {
		return nil
	}
	return g.store.Clear(ctx)
}

func (g *Game) refreshBest() {
	g.best = max(g.best, g.session.Score())
	if g.registered {
		g.account.BestScore = max(g.account.BestScore, g.best)
	}
}

// onEvent handles game over: keep the best score and publish it.
func (g *Game) onEvent(e blast.Event) {
	over, ok := e.(blast.GameOver)
	if !ok {
		return
	}
	g.refreshBest()
	g.logger.Printf("game over: score %d, best %d, round %d", over.FinalScore, g.best, g.session.Round())

	if g.store != nil {
		if err := g.store.RecordScore(context.Background(), g.session.Board().Size(), g.best); err != nil {
			g.logger.Printf("record score: %v", err)
		}
	}
	if g.online && g.registered {
		g.board.UpdateStats(leaderboard.Stats{ID: g.account.ID, Name: g.account.Name, MaxPoints: g.best})
		g.board.ReadStats()
	}
}

func (g *Game) handleResult(r leaderboard.Result) {
	g.status = r.Status
	if r.Err != nil {
		g.logger.Printf("leaderboard %v: %v", r.Status, r.Err)
	}

	switch r.Kind {
	case leaderboard.KindNewClient:
		g.pending = false
		if r.Status != leaderboard.StatusOK {
			return
		}
		g.account = settings.Account{ID: r.Stats.ID, Name: r.Stats.Name, BestScore: g.best}
		g.registered = true
		g.logger.Printf("registered as %d (%s)", r.Stats.ID, r.Stats.Name)
		if g.store != nil {
			if err := g.store.Save(context.Background(), g.account); err != nil {
				g.logger.Printf("save account: %v", err)
			}
		}
		if g.online {
			g.board.ReadStats()
		}
	case leaderboard.KindReadStats:
		if r.Status != leaderboard.StatusOK {
			return
		}
		g.standings = leaderboard.Sorted(r.List)
		if g.registered {
			g.rank = leaderboard.Rank(r.List, g.account.ID)
		}
	}
}

func (g *Game) Session() *blast.Session       { return g.session }
func (g *Game) Scheduler() *loop.Scheduler     { return g.scheduler }
func (g *Game) Bus() *Bus                      { return g.bus }
func (g *Game) Input() blast.Input             { return g.input }
func (g *Game) Online() bool                   { return g.online }
func (g *Game) Pending() bool                  { return g.pending }
func (g *Game) Status() leaderboard.Status     { return g.status }
func (g *Game) Standings() []leaderboard.Stats { return g.standings }

// Best returns the highest score seen, refreshed every BestScoreInterval
// ticks and at game over.
func (g *Game) Best() int { return g.best }

// Account returns the registered player, if any.
func (g *Game) Account() (settings.Account, bool) {
	return g.account, g.registered
}

// Rank returns the player's leaderboard position, or 0 when unknown.
func (g *Game) Rank() int { return g.rank }
