package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"

	"github.com/plus3/pixelblast/loop"
)

// Columns of the system table, in display order.
const (
	ColumnName = iota
	ColumnAvg
	ColumnMin
	ColumnMax
	ColumnLast
)

// Performance shows tick timings and per-system durations.
type Performance struct {
	scheduler *loop.Scheduler
	frames    *History
	timer     *FrameTimer
	latency   map[string]*History
	history   int
}

// NewPerformance tracks scheduler with the given number of frames of history.
func NewPerformance(scheduler *loop.Scheduler, history int) *Performance {
	return &Performance{
		scheduler: scheduler,
		frames:    NewHistory(history),
		timer:     NewFrameTimer(),
		latency:   make(map[string]*History),
		history:   history,
	}
}

// Sample records the frame time and each system's last duration. Render
// calls it; it is exported for callers that draw the data elsewhere.
func (p *Performance) Sample() *loop.Stats {
	p.frames.Push(p.timer.DeltaTime() * 1000)

	stats := p.scheduler.Stats()
	for _, sys := range stats.Systems {
		h, ok := p.latency[sys.Name]
		if !ok {
			h = NewHistory(p.history)
			p.latency[sys.Name] = h
		}
		h.Push(millis(sys.LastDuration))
	}
	return stats
}

// Item returns the window as a debug UI item.
func (p *Performance) Item() Item {
	return Item{Render: p.Render}
}

func (p *Performance) Render() {
	stats := p.Sample()

	imgui.SetNextWindowPosV(imgui.NewVec2(400, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 420), imgui.CondOnce)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := p.frames.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))
	imgui.Text(fmt.Sprintf("System Count: %d", stats.SystemCount))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := p.frames.Ordered()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if imgui.BeginTabBar("PerformanceTabs") {
		if imgui.BeginTabItem("Systems") {
			p.renderTable(stats.Systems)
			imgui.EndTabItem()
		}
		if imgui.BeginTabItem("System Latency") {
			p.renderLatency()
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	imgui.End()
}

func (p *Performance) renderTable(systems []loop.SystemStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV("Systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Name")
	imgui.TableSetupColumn("Avg (ms)")
	imgui.TableSetupColumn("Min (ms)")
	imgui.TableSetupColumn("Max (ms)")
	imgui.TableSetupColumn("Last (ms)")
	imgui.TableHeadersRow()

	if specs := imgui.TableGetSortSpecs(); specs.SpecsCount() > 0 {
		spec := specs.Specs()
		SortSystems(systems, int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionDescending)
	}

	for _, sys := range systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		for _, d := range []time.Duration{sys.AvgDuration, sys.MinDuration, sys.MaxDuration, sys.LastDuration} {
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", millis(d)))
		}
	}
	imgui.EndTable()
}

func (p *Performance) renderLatency() {
	names := make([]string, 0, len(p.latency))
	var top float32 = 1
	for name, h := range p.latency {
		names = append(names, name)
		top = max(top, h.Max())
	}
	slices.Sort(names)

	if implot.BeginPlotV("System Latency", imgui.NewVec2(-1, -1), 0) {
		implot.SetupAxesV("Frame", "Time (ms)", 0, 0)
		implot.SetupAxisLimitsV(implot.AxisY1, 0, float64(top*1.1), implot.CondAlways)
		for _, name := range names {
			samples := p.latency[name].Ordered()
			implot.PlotLineFloatPtrInt(name, &samples[0], int32(len(samples)))
		}
		implot.EndPlot()
	}
}

// SortSystems orders systems by column, ascending unless descending is set.
// Equal rows keep their registration order.
func SortSystems(systems []loop.SystemStats, column int, descending bool) {
	slices.SortStableFunc(systems, func(a, b loop.SystemStats) int {
		var c int
		switch column {
		case ColumnName:
			c = cmp.Compare(a.Name, b.Name)
		case ColumnAvg:
			c = cmp.Compare(a.AvgDuration, b.AvgDuration)
		case ColumnMin:
			c = cmp.Compare(a.MinDuration, b.MinDuration)
		case ColumnMax:
			c = cmp.Compare(a.MaxDuration, b.MaxDuration)
		case ColumnLast:
			c = cmp.Compare(a.LastDuration, b.LastDuration)
		}
		if descending {
			return -c
		}
		return c
	})
}

func millis(d time.Duration) float32 {
	return float32(d.Microseconds()) / 1000
}

// FrameTimer measures wall time between calls.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

// DeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) DeltaTime() float32 {
	now := ft.now()
	delta := float32(now.Sub(ft.last).Seconds())
	ft.last = now
	return delta
}
