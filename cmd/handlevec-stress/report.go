package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/thh/handlevec"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Elements int
	Seed     uint64
	GenLimit int32
	Verify   bool

	// Results
	TotalFrames   int64
	TotalTime     time.Duration
	FrameTime     Stats
	Ops           []OpStats
	Verifications int64
	Slots         handlevec.Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Stats keeps running timing figures so long runs don't retain every sample.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int64
	total time.Duration
}

func (s *Stats) Observe(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.total += d
	s.Count++
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.total / time.Duration(s.Count)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Handle Vector Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Target Elements:** {{.Elements}}
- **Seed:** {{.Seed}}
- **Generation Limit:** {{if .GenLimit}}{{.GenLimit}}{{else}}default{{end}}
- **Verification:** {{if .Verify}}on ({{.Verifications}} passes){{else}}off{{end}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Operations
| Op | Count | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Ops}}
| {{.Name}} | {{.Count}} | {{.Avg}} | {{.Min}} | {{.Max}} |
{{- end}}

## Final Slot Usage
- **Values:** {{.Slots.Len}}
- **Slots:** {{.Slots.Cap}} ({{.Slots.Free}} free, {{.Slots.Depleted}} depleted)
- **Occupancy:** {{pct .Slots.Occupied .Slots.Cap}}%

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
`

	fm := template.FuncMap{
		"pct": func(part, whole int) string {
			if whole == 0 {
				return "0.0"
			}
			return fmt.Sprintf("%.1f", float64(part)/float64(whole)*100)
		},
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
		return err
	}

	return tmpl.Execute(w, r)
}
