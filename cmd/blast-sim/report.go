package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/pixelblast/blast"
	"github.com/plus3/pixelblast/loop"
)

// Game is the outcome of one simulated game.
type Game struct {
	Score      int
	Rounds     int
	Ticks      int64
	Placements int
	Finished   bool
	TickTimes  []time.Duration
	Systems    []loop.SystemStats
}

type Report struct {
	// Configuration
	Duration  time.Duration
	Seed      uint64
	BoardSize int
	Mode      blast.Mode
	Dealing   blast.Policy

	// Results
	Games          int
	Unfinished     int
	TotalTicks     int64
	TotalTime      time.Duration
	Scores         Stats[int]
	Rounds         Stats[int]
	Placements     Stats[int]
	TickTime       Stats[time.Duration]
	Systems        []loop.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarizes samples; Finalize fills Min, Max and Avg.
type Stats[T ~int | ~int64] struct {
	Min     T
	Max     T
	Avg     T
	Samples []T
}

func (s *Stats[T]) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total T
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / T(len(s.Samples))
}

// Add folds one game into the report.
func (r *Report) Add(g Game) {
	r.Games++
	if !g.Finished {
		r.Unfinished++
	}
	r.TotalTicks += g.Ticks
	r.Scores.Samples = append(r.Scores.Samples, g.Score)
	r.Rounds.Samples = append(r.Rounds.Samples, g.Rounds)
	r.Placements.Samples = append(r.Placements.Samples, g.Placements)
	r.TickTime.Samples = append(r.TickTime.Samples, g.TickTimes...)
	r.Systems = mergeSystems(r.Systems, g.Systems)
}

// Finalize computes the summaries.
func (r *Report) Finalize() {
	r.Scores.Finalize()
	r.Rounds.Finalize()
	r.Placements.Finalize()
	r.TickTime.Finalize()
}

// mergeSystems adds per-system stats from one game to the running totals.
// Systems are matched by name.
func mergeSystems(total, game []loop.SystemStats) []loop.SystemStats {
	for _, g := range game {
		i := slices.IndexFunc(total, func(s loop.SystemStats) bool { return s.Name == g.Name })
		if i < 0 {
			total = append(total, g)
			continue
		}
		t := &total[i]
		if t.ExecutionCount == 0 || (g.ExecutionCount > 0 && g.MinDuration < t.MinDuration) {
			t.MinDuration = g.MinDuration
		}
		t.MaxDuration = max(t.MaxDuration, g.MaxDuration)
		t.ExecutionCount += g.ExecutionCount
		t.TotalDuration += g.TotalDuration
		t.LastDuration = g.LastDuration
		if t.ExecutionCount > 0 {
			t.AvgDuration = t.TotalDuration / time.Duration(t.ExecutionCount)
		}
	}
	return total
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Block Puzzle Simulation Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Board:** {{.BoardSize}}x{{.BoardSize}}
- **Interaction:** {{.Mode}}
- **Dealing:** {{.Dealing}}

## Games
- **Games Played:** {{.Games}} ({{.Unfinished}} cut off)
- **Total Ticks:** {{.TotalTicks}}
- **Total Time:** {{.TotalTime}}
- **Score:** avg {{.Scores.Avg}}, min {{.Scores.Min}}, max {{.Scores.Max}}
- **Rounds:** avg {{.Rounds.Avg}}, min {{.Rounds.Min}}, max {{.Rounds.Max}}
- **Placements:** avg {{.Placements.Avg}}, min {{.Placements.Min}}, max {{.Placements.Max}}

## Performance Results
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	return tmpl.Execute(w, r)
}
