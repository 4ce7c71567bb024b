// Package autoplay drives a session with synthesized pointer input. It is
// used by the simulation command and by tests that need whole games.
package autoplay

import (
	"math/rand/v2"

	"github.com/plus3/pixelblast/blast"
)

// Move is a planned placement: the piece in Slot dropped with its top-left
// block offset at board cell (X, Y).
type Move struct {
	Slot  int
	X, Y  int
	Score int
}

// clearWeight ranks any line clear above every compactness gain.
const clearWeight = 100

// Best returns the highest ranked placement over every candidate and every
// origin. Line clears rank first, then the number of block edges touching
// walls or occupied cells. Ties are broken with rng, or by scan order when
// rng is nil.
func Best(board *blast.Board, pieces []*blast.Piece, rng *rand.Rand) (Move, bool) {
	var (
		best  Move
		found bool
		ties  int
	)
	for slot, p := range pieces {
		if p.Empty() {
			continue
		}
		m, n, ok := bestFor(board, p, rng)
		if !ok {
			continue
		}
		m.Slot = slot
		switch {
		case !found || m.Score > best.Score:
			best, found, ties = m, true, n
		case m.Score == best.Score:
			ties += n
			if rng != nil && rng.IntN(ties) < n {
				best = m
			}
		}
	}
	return best, found
}

func bestFor(board *blast.Board, p *blast.Piece, rng *rand.Rand) (Move, int, bool) {
	var (
		best  Move
		found bool
		ties  int
	)
	n := board.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !board.Fits(p.Cells, x, y) {
				continue
			}
			score := rate(board, p, x, y)
			switch {
			case !found || score > best.Score:
				best, found, ties = Move{X: x, Y: y, Score: score}, true, 1
			case score == best.Score:
				ties++
				if rng != nil && rng.IntN(ties) == 0 {
					best = Move{X: x, Y: y, Score: score}
				}
			}
		}
	}
	return best, ties, found
}

func rate(board *blast.Board, p *blast.Piece, ox, oy int) int {
	cells := make([]blast.Point, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = blast.Point{X: ox + c.X, Y: oy + c.Y}
	}

	contact := 0
	for _, c := range cells {
		for _, d := range [...]blast.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			x, y := c.X+d.X, c.Y+d.Y
			if !board.In(x, y) || board.Occupied(x, y) {
				contact++
			}
		}
	}

	scratch := board.Clone()
	scratch.Place(cells, p.Color)
	delta, _ := scratch.ClearFullLines()
	return delta*clearWeight + contact
}

type step int

const (
	stepPick step = iota
	stepMove
	stepDrop
)

// Stats counts what a Bot has done.
type Stats struct {
	Picks  int
	Drops  int
	Replan int
}

// Bot plays a session by sampling pointer input for it. It implements the
// app Sampler interface and works in both interaction modes.
type Bot struct {
	session *blast.Session
	rng     *rand.Rand
	plan    Move
	step    step
	stats   Stats
}

// New returns a bot for session. rng breaks ties between equally ranked
// moves and may be nil.
func New(session *blast.Session, rng *rand.Rand) *Bot {
	return &Bot{session: session, rng: rng}
}

// Sample returns the input for the next tick.
func (b *Bot) Sample() blast.Input {
	s := b.session
	if s.Over() {
		b.step = stepPick
		return blast.Input{}
	}

	layout := s.Layout()
	piece, slot := s.Active()
	if piece == nil {
		m, ok := Best(s.Board(), s.Candidates().Pieces(), b.rng)
		if !ok {
			b.step = stepPick
			return blast.Input{}
		}
		b.plan = m
		b.step = stepMove
		b.stats.Picks++
		x, y := layout.SlotCenter(m.Slot)
		return blast.Input{X: x, Y: y, PrimaryDown: true, PrimaryPressed: s.Mode() == blast.ModeClick}
	}

	// A drop that did not land, or a piece picked by someone else, needs a
	// fresh target.
	if b.step == stepPick || b.plan.Slot != slot {
		m, _, ok := bestFor(s.Board(), piece, b.rng)
		if !ok {
			return blast.Input{SecondaryDown: true}
		}
		m.Slot = slot
		b.plan = m
		b.step = stepMove
		b.stats.Replan++
	}

	x, y := layout.PointerFor(piece, b.plan.X, b.plan.Y)
	switch b.step {
	case stepMove:
		b.step = stepDrop
		return blast.Input{X: x, Y: y, PrimaryDown: s.Mode() == blast.ModeHold}
	default:
		b.step = stepPick
		b.stats.Drops++
		if s.Mode() == blast.ModeClick {
			return blast.Input{X: x, Y: y, PrimaryDown: true, PrimaryPressed: true}
		}
		return blast.Input{X: x, Y: y, PrimaryReleased: true}
	}
}

// Stats returns the bot's counters.
func (b *Bot) Stats() Stats {
	return b.stats
}
