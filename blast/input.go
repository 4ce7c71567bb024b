package blast

// Input is the pointer state sampled once at the start of a tick.
type Input struct {
	X, Y float64
	// PrimaryDown is the current state of the primary button.
	PrimaryDown bool
	// PrimaryPressed is set by samplers that saw a press since the last
	// tick, even if the button was released again before sampling.
	PrimaryPressed bool
	// PrimaryReleased is set when the primary button went up since the
	// last tick.
	PrimaryReleased bool
	// SecondaryDown cancels an active drag.
	SecondaryDown bool
}

//go:generate go tool stringer -type=Mode -trimprefix=Mode

// Mode selects how pointer buttons drive the drag state machine.
type Mode int

const (
	// ModeHold picks a piece up on press and commits it on release.
	ModeHold Mode = iota
	// ModeClick picks a piece up on one press and commits it on the next.
	// The secondary button cancels.
	ModeClick
)
