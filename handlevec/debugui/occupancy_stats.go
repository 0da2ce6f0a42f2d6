package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

const defaultGlyphsPerRow = 16

func NewOccupancyStats(title string, historyFrames int) *OccupancyStats {
	if historyFrames < 1 {
		historyFrames = 1
	}
	return &OccupancyStats{
		title:         title,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		fillHistory:   make([]float32, historyFrames),
		glyphsPerRow:  defaultGlyphsPerRow,
	}
}

// Record stores one frame sample. Render calls it; it is exported so the
// history can be fed while the window is hidden.
func (oc *OccupancyStats) Record(target Inspectable, deltaTime float32) {
	stats := target.Stats()
	var fill float32
	if stats.Cap > 0 {
		fill = float32(stats.Occupied) / float32(stats.Cap) * 100.0
	}
	oc.frameHistory[oc.frameIndex] = deltaTime * 1000.0
	oc.fillHistory[oc.frameIndex] = fill
	oc.frameIndex = (oc.frameIndex + 1) % oc.historyFrames
}

// AverageFrameTime returns the mean of the recorded frame times in milliseconds.
func (oc *OccupancyStats) AverageFrameTime() float32 {
	var avg float32
	for _, ft := range oc.frameHistory {
		avg += ft
	}
	return avg / float32(oc.historyFrames)
}

// Rows splits a DebugHandles dump into lines of glyphsPerRow slots.
func (oc *OccupancyStats) Rows(dump string) []string {
	const glyphWidth = 3
	width := oc.glyphsPerRow * glyphWidth
	var rows []string
	for len(dump) > width {
		rows = append(rows, dump[:width])
		dump = dump[width:]
	}
	if len(dump) > 0 {
		rows = append(rows, dump)
	}
	return rows
}

func (oc *OccupancyStats) Render(target Inspectable, deltaTime float32) {
	if !imgui.BeginV(oc.title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	oc.Record(target, deltaTime)
	stats := target.Stats()

	imgui.Text(fmt.Sprintf("Values: %d", stats.Len))
	imgui.Text(fmt.Sprintf("Slots: %d (free %d, depleted %d)", stats.Cap, stats.Free, stats.Depleted))

	avgFrameTime := oc.AverageFrameTime()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Occupancy (%)")
	imgui.PlotLinesFloatPtr("##occupancy", &oc.fillHistory[0], int32(len(oc.fillHistory)))
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &oc.frameHistory[0], int32(len(oc.frameHistory)))

	if imgui.TreeNodeStr("Slot Map") {
		for _, row := range oc.Rows(target.DebugHandles()) {
			imgui.Text(row)
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
