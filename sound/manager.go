// Package sound plays the game's effects through beep.
package sound

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	// MaxVoices caps concurrently playing effects; extra requests are dropped.
	MaxVoices = 8
)

// Manager owns the speaker and a mixer of running effects. Every method is a
// no-op until Initialize succeeds, so a machine without audio plays silently.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	registry    map[string]Effect
	master      float64
	initialized bool
	logger      *log.Logger
}

// NewManager creates a manager for the given effects. A nil registry uses
// DefaultEffects.
func NewManager(registry map[string]Effect, logger *log.Logger) *Manager {
	if registry == nil {
		registry = DefaultEffects()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		mixer:    &beep.Mixer{},
		registry: registry,
		master:   1,
		logger:   logger,
	}
}

// Initialize opens the speaker with the given master volume in [0, 1].
func (m *Manager) Initialize(volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.master = max(0, min(volume, 1))
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Has reports whether name is registered.
func (m *Manager) Has(name string) bool {
	_, ok := m.registry[name]
	return ok
}

// Streamer renders a registered effect at volume times the master volume.
func (m *Manager) Streamer(name string, volume float64) (beep.Streamer, bool) {
	effect, ok := m.registry[name]
	if !ok {
		return nil, false
	}
	s, err := build(effect, sampleRate, volume*m.master)
	if err != nil {
		m.logger.Printf("sound %s: %v", name, err)
		return nil, false
	}
	return s, true
}

// Play starts a registered effect. Unknown names are ignored.
func (m *Manager) Play(name string, volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	s, ok := m.Streamer(name, volume)
	if !ok {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if m.mixer.Len() >= MaxVoices {
		return
	}
	m.mixer.Add(s)
}

// Cleanup stops all sounds.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	m.initialized = false
}
