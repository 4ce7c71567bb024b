package loop

// System is one step of a tick. Systems run in registration order and may
// keep state between frames.
type System interface {
	Execute(frame *Frame)
}

// Frame is passed to every system during a single tick.
type Frame struct {
	DeltaTime float64
	// Index counts ticks from zero.
	Index    int64
	Commands *Commands
}
