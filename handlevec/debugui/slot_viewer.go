package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/thh/handlevec"
)

const (
	columnIndex = iota
	columnGen
	columnLookup
	columnState
)

// NewSlotViewer creates a viewer window with the given title.
func NewSlotViewer(title string) *SlotViewer {
	return &SlotViewer{
		title:         title,
		sortColumn:    columnIndex,
		sortAscending: true,
		selected:      -1,
	}
}

// Selected returns the slot index picked by the user, or -1.
func (sv *SlotViewer) Selected() int {
	return sv.selected
}

// Render draws the window for target. It returns the slot index clicked this
// frame, or nil.
func (sv *SlotViewer) Render(target Inspectable) *int {
	if !imgui.BeginV(sv.title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	stats := target.Stats()
	imgui.Text(fmt.Sprintf("Len: %d  Cap: %d", stats.Len, stats.Cap))
	if stats.Cap > 0 {
		imgui.SameLine()
		fill := float32(stats.Occupied) / float32(stats.Cap) * 80.0
		drawList := imgui.WindowDrawList()
		pos := imgui.CursorScreenPos()
		color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
		drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+fill, pos.Y+10), color)
	}
	imgui.Checkbox("Hide empty slots", &sv.hideEmpty)

	sv.rebuild(target)

	var clicked *int
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SlotTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Generation")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("State")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortRows()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range sv.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d", row.Index)
			if imgui.SelectableBoolV(label, sv.selected == row.Index, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				index := row.Index
				clicked = &index
				sv.selected = index
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Gen))

			imgui.TableNextColumn()
			if row.Lookup >= 0 {
				imgui.Text(fmt.Sprintf("%d", row.Lookup))
			} else {
				imgui.Text("-")
			}

			imgui.TableNextColumn()
			imgui.Text(row.State.Glyph() + " " + row.State.String())
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (sv *SlotViewer) rebuild(target Inspectable) {
	sv.rows = sv.rows[:0]
	for info := range target.Slots() {
		if sv.hideEmpty && info.State == handlevec.SlotEmpty {
			continue
		}
		sv.rows = append(sv.rows, info)
	}
	sv.sortRows()
}

func (sv *SlotViewer) sortRows() {
	sort.SliceStable(sv.rows, func(i, j int) bool {
		a, b := sv.rows[i], sv.rows[j]
		if !sv.sortAscending {
			a, b = b, a
		}

		switch sv.sortColumn {
		case columnGen:
			return a.Gen < b.Gen
		case columnLookup:
			return a.Lookup < b.Lookup
		case columnState:
			return a.State < b.State
		default:
			return a.Index < b.Index
		}
	})
}
