package debugui

import (
	"github.com/plus3/thh/handlevec"
)

// SlotViewer is a window listing every slot of a container.
type SlotViewer struct {
	title         string
	rows          []handlevec.SlotInfo
	sortColumn    int
	sortAscending bool
	hideEmpty     bool
	selected      int
}

// OccupancyStats is a window plotting how full a container is over time.
type OccupancyStats struct {
	title         string
	historyFrames int
	frameHistory  []float32
	fillHistory   []float32
	frameIndex    int
	glyphsPerRow  int
}
