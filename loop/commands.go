package loop

// Commands buffers work that must run after every system of a tick has
// executed, such as delivering events produced mid-tick.
type Commands struct {
	defers []func()
}

// Defer queues fn to run when the buffer is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued functions.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs queued functions in order and resets the buffer. Functions
// deferred while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
