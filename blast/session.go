package blast

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"
)

//go:generate go tool stringer -type=Phase -trimprefix=Phase

// Phase is the state of the drag interaction.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCommitted
	PhaseGameOver
)

const (
	// ClearFadeStep is subtracted from the clear animation each tick.
	ClearFadeStep = 0.03
	// animationDivider advances the animation frame every n ticks.
	animationDivider = 5
)

// MaxColors is the number of distinct color ids a Cell can hold.
const MaxColors = 256

// Config configures a Session. Zero values select the defaults.
type Config struct {
	Size    int
	Mode    Mode
	Policy  Policy
	// Colors is clamped to [1, MaxColors].
	Colors  int
	Layout  *Layout
	Catalog *Catalog
	Rand    *rand.Rand
}

// Session is one match: the board, the candidate slots, the score and the
// drag state machine. It is not safe for concurrent use; Tick is expected to
// be called from a single loop.
type Session struct {
	board      *Board
	candidates *CandidateSet
	catalog    *Catalog
	layout     Layout
	rng        *rand.Rand
	mode       Mode
	policy     Policy

	phase  Phase
	score  int
	round  int
	frames int
	anim   int

	active   *Piece
	origin   int
	hovered  int
	targets  []Point
	complete bool
	seen     *intmap.Map[int, struct{}]

	input       Input
	primaryDown bool

	clearing []ClearedCell
	fade     float64
}

// NewSession creates a session ready for its first tick.
func NewSession(cfg Config) *Session {
	if cfg.Size <= 0 {
		cfg.Size = DefaultBoardSize
	}
	if cfg.Catalog == nil || cfg.Catalog.Len() == 0 {
		cfg.Catalog = DefaultCatalog()
	}
	cfg.Colors = max(1, min(cfg.Colors, MaxColors))
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	layout := DefaultLayout(cfg.Size)
	if cfg.Layout != nil {
		layout = cfg.Layout.WithSize(cfg.Size)
	}

	return &Session{
		board:      NewBoard(cfg.Size),
		candidates: NewCandidateSet(cfg.Catalog, cfg.Colors),
		catalog:    cfg.Catalog,
		layout:     layout,
		rng:        cfg.Rand,
		mode:       cfg.Mode,
		policy:     cfg.Policy,
		origin:     -1,
		hovered:    -1,
		seen:       intmap.New[int, struct{}](16),
	}
}

// Reset starts a new match on the same configuration.
func (s *Session) Reset() {
	s.board.Reset()
	s.candidates.Clear()
	s.phase = PhaseIdle
	s.score = 0
	s.round = 0
	s.frames = 0
	s.anim = 0
	s.active = nil
	s.origin = -1
	s.hovered = -1
	s.targets = s.targets[:0]
	s.complete = false
	s.primaryDown = false
	s.clearing = nil
	s.fade = 0
}

// Tick advances the session by one frame using the sampled input and
// returns the events produced during the frame.
func (s *Session) Tick(in Input) []Event {
	var events []Event

	pressed := in.PrimaryPressed || (in.PrimaryDown && !s.primaryDown)
	s.primaryDown = in.PrimaryDown
	s.input = in

	if s.phase == PhaseGameOver {
		s.advanceFrame()
		return nil
	}

	if s.active == nil && s.candidates.Empty() {
		s.round++
		s.candidates.Refill(s.policy, s.board, s.rng)
		events = append(events, RoundAdvanced{Round: s.round})

		if s.board.IsDeadlock(s.candidates.Pieces()) {
			s.phase = PhaseGameOver
			events = append(events, GameOver{FinalScore: s.score})
			s.advanceFrame()
			return events
		}
	}

	if s.fade == 0 {
		s.clearing = nil
	}

	if s.active != nil {
		events = s.drag(in, pressed, events)
	} else {
		s.hovered = s.layout.SlotAt(in.X, in.Y)
		if pressed && s.candidates.Slot(s.hovered) != nil {
			s.active = s.candidates.Take(s.hovered)
			s.origin = s.hovered
			s.phase = PhaseDragging
			s.mapTargets(in)
			events = append(events, PiecePicked{Slot: s.origin, Shape: s.active.Shape})
		}
	}

	s.advanceFrame()
	return events
}

func (s *Session) drag(in Input, pressed bool, events []Event) []Event {
	valid := s.mapTargets(in)

	if in.SecondaryDown || (s.mode == ModeHold && in.PrimaryReleased && valid == 0) {
		shape := s.active.Shape
		slot := s.origin
		s.candidates.Return(slot, s.active)
		s.dropActive()
		return append(events, PieceReturned{Slot: slot, Shape: shape})
	}

	commit := in.PrimaryReleased
	if s.mode == ModeClick {
		commit = pressed
	}
	if !s.complete || !commit {
		return events
	}
	return s.commit(events)
}

// mapTargets maps the active piece onto the board under the pointer. Mapping
// stops at the first block that is off the board, lands on an occupied cell
// or repeats a cell. It returns the number of blocks mapped.
func (s *Session) mapTargets(in Input) int {
	s.targets = s.targets[:0]
	s.complete = false
	if s.active == nil {
		return 0
	}

	s.seen.Clear()
	n := s.board.Size()
	for _, c := range s.active.Cells {
		t := s.layout.DragTarget(s.active, c, in.X, in.Y)
		if !s.board.In(t.X, t.Y) || s.board.Occupied(t.X, t.Y) {
			break
		}
		key := t.Y*n + t.X
		if _, dup := s.seen.Get(key); dup {
			break
		}
		s.seen.Put(key, struct{}{})
		s.targets = append(s.targets, t)
	}

	s.complete = len(s.targets) > 0 && len(s.targets) == len(s.active.Cells)
	return len(s.targets)
}

func (s *Session) commit(events []Event) []Event {
	s.phase = PhaseCommitted

	piece := s.active
	cells := make([]Point, len(s.targets))
	copy(cells, s.targets)

	s.board.Place(cells, piece.Color)
	events = append(events, PiecePlaced{Cells: cells, Color: piece.Color})

	delta, cleared := s.board.ClearFullLines()
	if len(cleared) > 0 {
		s.score += delta
		s.clearing = append(s.clearing, cleared...)
		s.fade = 1
		events = append(events, LinesCleared{Cells: cleared, ScoreDelta: delta})
	}

	s.dropActive()

	if s.board.IsDeadlock(s.candidates.Pieces()) {
		s.phase = PhaseGameOver
		events = append(events, GameOver{FinalScore: s.score})
	}
	return events
}

func (s *Session) dropActive() {
	s.active = nil
	s.origin = -1
	s.targets = s.targets[:0]
	s.complete = false
	if s.phase != PhaseGameOver {
		s.phase = PhaseIdle
	}
}

func (s *Session) advanceFrame() {
	s.frames++
	if s.frames%animationDivider == 0 {
		s.anim++
	}
	s.fade = max(0, min(1, s.fade-ClearFadeStep))
}

// SetLayout replaces the pointer mapping, e.g. after a window resize.
func (s *Session) SetLayout(l Layout) {
	s.layout = l.WithSize(s.board.Size())
}

// Layout returns the pointer mapping in use.
func (s *Session) Layout() Layout { return s.layout }

// Board returns the live board. Changes made through it are seen by the
// session on its next tick.
func (s *Session) Board() *Board { return s.board }

// Candidates returns the live candidate slots. Callers must not mutate them.
func (s *Session) Candidates() *CandidateSet { return s.candidates }

func (s *Session) Phase() Phase        { return s.phase }
func (s *Session) Mode() Mode          { return s.mode }
func (s *Session) Policy() Policy      { return s.policy }
func (s *Session) Score() int          { return s.score }
func (s *Session) Round() int          { return s.round }
func (s *Session) Frames() int         { return s.frames }
func (s *Session) AnimationFrame() int { return s.anim }
func (s *Session) Input() Input        { return s.input }
func (s *Session) Over() bool          { return s.phase == PhaseGameOver }

// Active returns the piece being dragged and the slot it came from, or nil
// and -1.
func (s *Session) Active() (*Piece, int) {
	return s.active, s.origin
}

// HoveredSlot returns the tray slot under the pointer while idle, or -1.
func (s *Session) HoveredSlot() int {
	if s.active != nil {
		return -1
	}
	return s.hovered
}

// Preview returns the cells the active piece would occupy if committed now,
// or nil when the current position is not a valid drop.
func (s *Session) Preview() []Point {
	if s.active == nil || !s.complete {
		return nil
	}
	out := make([]Point, len(s.targets))
	copy(out, s.targets)
	return out
}

// Clearing returns the cells of the running clear animation and its fade in
// [0, 1].
func (s *Session) Clearing() ([]ClearedCell, float64) {
	return s.clearing, s.fade
}
