package handlevec

import (
	"iter"
	"strings"
)

// SlotState describes what a slot is currently used for.
type SlotState uint8

const (
	SlotEmpty SlotState = iota
	SlotOccupied
	SlotDepleted
)

// Glyph returns the three character marker used by DebugHandles.
func (s SlotState) Glyph() string {
	switch s {
	case SlotOccupied:
		return "[o]"
	case SlotDepleted:
		return "[!]"
	default:
		return "[x]"
	}
}

func (s SlotState) String() string {
	switch s {
	case SlotOccupied:
		return "occupied"
	case SlotDepleted:
		return "depleted"
	default:
		return "empty"
	}
}

// SlotInfo is a snapshot of a single slot
type SlotInfo struct {
	Index  int
	Gen    int32
	Lookup int32 // packed position, -1 when no value is stored
	State  SlotState
}

// Stats summarises how the slots of a container are used.
type Stats struct {
	Len      int
	Cap      int
	Occupied int
	Free     int
	Depleted int
}

// slotState reports a slot at the generation limit as depleted even while its
// last value is still stored; it will not be issued again once released.
func (v *Vector[T, Tag]) slotState(s *slot) SlotState {
	switch {
	case s.gen >= v.genLimit:
		return SlotDepleted
	case s.occupied():
		return SlotOccupied
	default:
		return SlotEmpty
	}
}

// Slots returns an iterator over a snapshot of every slot in index order.
func (v *Vector[T, Tag]) Slots() iter.Seq[SlotInfo] {
	return func(yield func(SlotInfo) bool) {
		for i := range v.slots {
			s := &v.slots[i]
			info := SlotInfo{
				Index:  i,
				Gen:    s.gen,
				Lookup: s.lookup,
				State:  v.slotState(s),
			}
			if !yield(info) {
				return
			}
		}
	}
}

// Stats counts slots by use. Occupied counts every slot holding a value,
// including one at the generation limit; Depleted counts retired slots only.
func (v *Vector[T, Tag]) Stats() Stats {
	stats := Stats{
		Len: len(v.elements),
		Cap: len(v.slots),
	}
	for i := range v.slots {
		s := &v.slots[i]
		switch {
		case s.occupied():
			stats.Occupied++
		case s.gen >= v.genLimit:
			stats.Depleted++
		default:
			stats.Free++
		}
	}
	return stats
}

// DebugHandles renders every slot as [o] (occupied), [x] (empty) or [!]
// (generation limit reached, whether or not the slot still holds a value),
// left to right in slot order.
func (v *Vector[T, Tag]) DebugHandles() string {
	var sb strings.Builder
	sb.Grow(len(v.slots) * 3)
	for info := range v.Slots() {
		sb.WriteString(info.State.Glyph())
	}
	return sb.String()
}
