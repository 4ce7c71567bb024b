package app

import (
	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/loop"
	"github.com/plus3/pixelblast/sound"
)

// InputSystem samples the pointer for the tick.
type InputSystem struct {
	game *Game
}

func (s *InputSystem) Execute(*loop.Frame) {
	if s.game.sampler == nil {
		s.game.input = blast.Input{}
		return
	}
	s.game.input = s.game.sampler.Sample()
}

// SessionSystem advances the session and publishes its events once every
// system of the tick has run.
type SessionSystem struct {
	game *Game
}

func (s *SessionSystem) Execute(frame *loop.Frame) {
	for _, e := range s.game.session.Tick(s.game.input) {
		frame.Commands.Defer(func() {
			s.game.bus.Publish(e)
		})
	}
}

// HoverSystem plays a tick when the idle pointer moves onto an occupied
// cell other than the last one it touched.
type HoverSystem struct {
	game *Game
	last blast.Point
	seen bool
}

func (s *HoverSystem) Execute(frame *loop.Frame) {
	session := s.game.session
	if active, _ := session.Active(); active != nil || session.Over() {
		return
	}

	in := s.game.input
	cell := session.Layout().CellAt(in.X, in.Y)
	if !session.Board().Occupied(cell.X, cell.Y) || (s.seen && cell == s.last) {
		return
	}
	s.last, s.seen = cell, true

	if s.game.sound != nil {
		frame.Commands.Defer(func() {
			s.game.sound.Play(sound.BlockHits, hitVolume)
		})
	}
}

// LeaderboardSystem applies leaderboard results that arrived since the last
// tick.
type LeaderboardSystem struct {
	game *Game
}

func (s *LeaderboardSystem) Execute(*loop.Frame) {
	if s.game.board == nil {
		return
	}
	for _, r := range s.game.board.Poll() {
		s.game.handleResult(r)
	}
}

// BestScoreSystem folds the running score into the best score every Every
// ticks.
type BestScoreSystem struct {
	game  *Game
	Every int64
}

func (s *BestScoreSystem) Execute(frame *loop.Frame) {
	if s.Every > 0 && frame.Index%s.Every != 0 {
		return
	}
	s.game.refreshBest()
}
