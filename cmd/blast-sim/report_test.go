package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/pixelblast/loop"
)

func TestStatsFinalize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var s Stats[int]
		s.Finalize()
		assert.Zero(t, s.Min)
		assert.Zero(t, s.Max)
		assert.Zero(t, s.Avg)
	})

	t.Run("samples", func(t *testing.T) {
		s := Stats[time.Duration]{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
		s.Finalize()
		assert.Equal(t, time.Millisecond, s.Min)
		assert.Equal(t, 3*time.Millisecond, s.Max)
		assert.Equal(t, 2*time.Millisecond, s.Avg)
	})
}

func TestReportAdd(t *testing.T) {
	r := &Report{}
	r.Add(Game{
		Score: 40, Rounds: 3, Ticks: 100, Placements: 9, Finished: true,
		TickTimes: []time.Duration{time.Millisecond},
		Systems: []loop.SystemStats{
			{Name: "InputSystem", ExecutionCount: 100, MinDuration: 2, MaxDuration: 8, TotalDuration: 400},
		},
	})
	r.Add(Game{
		Score: 20, Rounds: 1, Ticks: 50, Placements: 3,
		TickTimes: []time.Duration{3 * time.Millisecond},
		Systems: []loop.SystemStats{
			{Name: "InputSystem", ExecutionCount: 100, MinDuration: 1, MaxDuration: 4, TotalDuration: 200},
			{Name: "SessionSystem", ExecutionCount: 50, MinDuration: 5, MaxDuration: 5, TotalDuration: 250},
		},
	})
	r.Finalize()

	assert.Equal(t, 2, r.Games)
	assert.Equal(t, 1, r.Unfinished)
	assert.Equal(t, int64(150), r.TotalTicks)
	assert.Equal(t, 30, r.Scores.Avg)
	assert.Equal(t, 1, r.Rounds.Min)
	assert.Equal(t, 9, r.Placements.Max)
	assert.Equal(t, 2*time.Millisecond, r.TickTime.Avg)

	require.Len(t, r.Systems, 2)
	in := r.Systems[0]
	assert.Equal(t, "InputSystem", in.Name)
	assert.Equal(t, int64(200), in.ExecutionCount)
	assert.Equal(t, time.Duration(1), in.MinDuration)
	assert.Equal(t, time.Duration(8), in.MaxDuration)
	assert.Equal(t, time.Duration(3), in.AvgDuration)
	assert.Equal(t, "SessionSystem", r.Systems[1].Name)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{Duration: time.Second, Seed: 7, BoardSize: 8, GCPauseMetrics: true}
	r.Add(Game{Score: 12, Rounds: 2, Ticks: 10, Finished: true,
		Systems: []loop.SystemStats{{Name: "HoverSystem", ExecutionCount: 10}}})
	r.Finalize()
	r.MemStatsStart.NumGC = 2
	r.MemStatsEnd.NumGC = 5

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Seed:** 7")
	assert.Contains(t, out, "**Board:** 8x8")
	assert.Contains(t, out, "**Interaction:** Hold")
	assert.Contains(t, out, "**Dealing:** Selective")
	assert.Contains(t, out, "**Games Played:** 1 (0 cut off)")
	assert.Contains(t, out, "**Score:** avg 12, min 12, max 12")
	assert.Contains(t, out, "- HoverSystem: avg 0s, max 0s over 10 runs")
	assert.Contains(t, out, "**Num GC Cycles:** 3")
}
