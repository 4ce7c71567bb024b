package loop

import (
	"context"
	"reflect"
	"time"
)

// Stats provides statistics about scheduler execution.
type Stats struct {
	SystemCount     int
	Ticks           int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStats struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler executes systems in order, once per tick.
type Scheduler struct {
	systems  []System
	stats    []*systemStats
	commands Commands
	ticks    int64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register appends a system. Its statistics are reported under the name of
// its concrete type.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.stats = append(s.stats, &systemStats{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes all registered systems once with the given delta time, then
// flushes the commands they deferred.
func (s *Scheduler) Once(dt float64) {
	frame := &Frame{
		DeltaTime: dt,
		Index:     s.ticks,
		Commands:  &s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.stats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	s.commands.Flush()
	s.ticks++
}

// Run executes all systems at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() int64 {
	return s.ticks
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *Stats {
	out := &Stats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.stats)),
	}

	for i, internal := range s.stats {
		avg := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		out.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		out.TotalExecutions += internal.executionCount
	}

	return out
}
