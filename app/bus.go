package app

import "github.com/plus3/pixelblast/blast"

// Bus fans session events out to listeners in subscription order.
type Bus struct {
	listeners []func(blast.Event)
}

// Subscribe registers fn for every published event.
func (b *Bus) Subscribe(fn func(blast.Event)) {
	b.listeners = append(b.listeners, fn)
}

// Publish delivers e to every listener.
func (b *Bus) Publish(e blast.Event) {
	for _, fn := range b.listeners {
		fn(e)
	}
}
