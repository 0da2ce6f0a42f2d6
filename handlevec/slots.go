package handlevec

import "math"

const emptyLookup int32 = -1

// slot maps a handle index onto a position in the dense store.
// Free slots are chained through next; the last free slot always points at
// len(slots), the slot that the next growth will create.
type slot struct {
	gen    int32
	lookup int32
	next   int32
}

func (s *slot) occupied() bool {
	return s.lookup != emptyLookup
}

// growIfNeeded makes sure there is a slot for every element the dense store can
// hold without reallocating, plus one for every retired slot.
func (v *Vector[T, Tag]) growIfNeeded() {
	want := cap(v.elements) + int(v.depleted)
	have := len(v.slots)
	if have >= want {
		return
	}
	if want > math.MaxInt32 {
		panic("handlevec: slot count exceeds handle index range")
	}

	v.slots = append(v.slots, make([]slot, want-have)...)
	for i := have; i < want; i++ {
		v.slots[i] = slot{lookup: emptyLookup, next: int32(i + 1)}
	}
}

// allocate pops the free list head and issues its next generation.
func (v *Vector[T, Tag]) allocate() (int32, int32) {
	index := v.next
	if int(index) >= len(v.slots) {
		panic("handlevec: free list exhausted after growth")
	}

	s := &v.slots[index]
	v.next = s.next
	s.next = emptyLookup
	s.gen++
	return index, s.gen
}

// release returns a slot to the free list, or retires it for good once its
// generation can no longer be incremented.
func (v *Vector[T, Tag]) release(index int32) {
	s := &v.slots[index]
	s.lookup = emptyLookup

	if s.gen >= v.genLimit {
		s.next = emptyLookup
		v.depleted++
		return
	}

	s.next = v.next
	v.next = index
}

// relinkSlots rebuilds the free list in index order, skipping retired slots.
func (v *Vector[T, Tag]) relinkSlots() {
	next := int32(len(v.slots))
	v.depleted = 0
	for i := len(v.slots) - 1; i >= 0; i-- {
		s := &v.slots[i]
		s.lookup = emptyLookup
		if s.gen >= v.genLimit {
			s.next = emptyLookup
			v.depleted++
			continue
		}
		s.next = next
		next = int32(i)
	}
	v.next = next
}

// valid reports whether h names an occupied slot of the same generation.
func (v *Vector[T, Tag]) valid(h TypedHandle[Tag]) bool {
	if h.Index < 0 || int(h.Index) >= len(v.slots) {
		return false
	}
	s := &v.slots[h.Index]
	return s.gen == h.Gen && s.occupied()
}
