// Package debugui provides Dear ImGui panels for inspecting handle vectors at runtime.
package debugui

import (
	"iter"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/thh/handlevec"
)

// Inspectable is implemented by every *handlevec.Vector, whatever its element and tag types.
type Inspectable interface {
	Stats() handlevec.Stats
	Slots() iter.Seq[handlevec.SlotInfo]
	DebugHandles() string
}

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Name   string
	Render func()
}

type overlayTag struct{}

// OverlayHandle identifies an item added to an Overlay
type OverlayHandle = handlevec.TypedHandle[overlayTag]

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay keeps the set of debug windows rendered each frame.
// Items are stored in a handle vector so callers can remove them later
// without tracking positions.
type Overlay struct {
	items      *handlevec.Vector[ImguiItem, overlayTag]
	pending    handlevec.Commands[ImguiItem, overlayTag]
	InputState ImguiInputState
}

// NewOverlay creates an empty overlay
func NewOverlay() *Overlay {
	return &Overlay{
		items: handlevec.NewTagged[ImguiItem, overlayTag](),
	}
}

// Add registers a render function and returns a handle that can be passed to Remove.
// It must not be called from inside a render function.
func (o *Overlay) Add(item ImguiItem) OverlayHandle {
	return o.items.Add(item)
}

// Remove unregisters an item. Safe to call from inside a render function;
// the removal then takes effect after the current frame.
func (o *Overlay) Remove(h OverlayHandle) {
	o.pending.Remove(h)
}

// Len returns the number of registered items
func (o *Overlay) Len() int {
	return o.items.Len()
}

// Render updates the input state and draws every registered item in name order.
// It must be called between the backend's BeginFrame and EndFrame.
func (o *Overlay) Render() {
	o.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	o.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	o.pending.Flush(o.items)
	o.items.SortStable(func(a, b ImguiItem) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	for item := range o.items.Values() {
		item.Render()
	}
	o.pending.Flush(o.items)
}
