// Package handlevec provides a generational handle vector (slot map).
//
// A Vector keeps its values tightly packed in a single slice and hands out
// TypedHandle values that keep referring to the same logical value while the
// packed slice is reordered by removals, sorts and partitions. Each handle
// carries the generation of the slot it was issued from, so a handle kept
// after its value was removed is detected as stale even when the slot has been
// reused since.
//
// A Vector is not safe for concurrent use.
package handlevec

import (
	"fmt"
	"math"
)

// Vector stores values of type T and issues handles tagged with Tag.
// Vectors with different tags produce handle types that cannot be mixed up.
type Vector[T any, Tag any] struct {
	// elements is the packed store; owners[i] is the slot that maps to elements[i]
	elements []T
	owners   []int32
	slots    []slot

	next     int32 // head of the free list
	depleted int32 // retired slots
	genLimit int32

	borrows int
}

// New creates an empty Vector that uses DefaultTag handles.
func New[T any](opts ...Option) *Vector[T, DefaultTag] {
	return NewTagged[T, DefaultTag](opts...)
}

// NewTagged creates an empty Vector whose handles are of type TypedHandle[Tag].
func NewTagged[T any, Tag any](opts ...Option) *Vector[T, Tag] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &Vector[T, Tag]{genLimit: cfg.genLimit}
	if cfg.capacity > 0 {
		v.Reserve(cfg.capacity)
	}
	return v
}

// Add stores value and returns a handle to it.
func (v *Vector[T, Tag]) Add(value T) TypedHandle[Tag] {
	v.mustNotBeBorrowed("Add")

	position := len(v.elements)
	if position >= math.MaxInt32 {
		panic("handlevec: element count exceeds handle index range")
	}

	v.elements = append(v.elements, value)
	v.owners = append(v.owners, emptyLookup)

	// the append may have grown the backing array; make slots for the new room
	v.growIfNeeded()

	index, gen := v.allocate()
	v.slots[index].lookup = int32(position)
	v.owners[position] = index

	return TypedHandle[Tag]{Index: index, Gen: gen}
}

// Emplace stores the zero value, lets init fill it in place and returns its handle.
func (v *Vector[T, Tag]) Emplace(init func(*T)) TypedHandle[Tag] {
	var zero T
	h := v.Add(zero)
	if init != nil {
		v.Call(h, init)
	}
	return h
}

// Remove deletes the value referenced by h. The last value in packed order is
// moved into the vacated position, so removal does not preserve order.
// Returns false if h is stale or does not belong to this container.
func (v *Vector[T, Tag]) Remove(h TypedHandle[Tag]) bool {
	v.mustNotBeBorrowed("Remove")
	v.checkParallel()

	if !v.valid(h) {
		return false
	}

	position := v.slots[h.Index].lookup
	last := int32(len(v.elements) - 1)

	// whoever owns the last element will now find it at position
	v.slots[v.owners[last]].lookup = position
	v.elements[position], v.elements[last] = v.elements[last], v.elements[position]
	v.owners[position], v.owners[last] = v.owners[last], v.owners[position]

	var zero T
	v.elements[last] = zero
	v.elements = v.elements[:last]
	v.owners = v.owners[:last]

	v.release(h.Index)
	return true
}

// Has reports whether h still references a value in this container.
func (v *Vector[T, Tag]) Has(h TypedHandle[Tag]) bool {
	return v.valid(h)
}

// Get returns a copy of the value referenced by h.
func (v *Vector[T, Tag]) Get(h TypedHandle[Tag]) (T, bool) {
	if !v.valid(h) {
		var zero T
		return zero, false
	}
	return v.elements[v.slots[h.Index].lookup], true
}

// Set overwrites the value referenced by h. Returns false if h is stale.
func (v *Vector[T, Tag]) Set(h TypedHandle[Tag], value T) bool {
	if !v.valid(h) {
		return false
	}
	v.elements[v.slots[h.Index].lookup] = value
	return true
}

// Call invokes fn with a pointer to the value referenced by h.
// The pointer must not be retained after fn returns; the container panics if it
// is mutated while fn runs. Returns false, without calling fn, if h is stale.
func (v *Vector[T, Tag]) Call(h TypedHandle[Tag], fn func(*T)) bool {
	ptr := v.resolve(h)
	if ptr == nil {
		return false
	}

	v.borrow(func() { fn(ptr) })
	return true
}

// CallReturn invokes fn with a pointer to the value referenced by h and returns
// its result. The boolean is false, and fn is not called, if h is stale.
func CallReturn[T, Tag, R any](v *Vector[T, Tag], h TypedHandle[Tag], fn func(*T) R) (R, bool) {
	var result R
	ok := v.Call(h, func(value *T) {
		result = fn(value)
	})
	return result, ok
}

func (v *Vector[T, Tag]) resolve(h TypedHandle[Tag]) *T {
	if !v.valid(h) {
		return nil
	}
	return &v.elements[v.slots[h.Index].lookup]
}

// Len returns the number of stored values.
func (v *Vector[T, Tag]) Len() int {
	v.checkParallel()
	return len(v.elements)
}

// Cap returns the number of slots, including slots reserved for values not yet added.
func (v *Vector[T, Tag]) Cap() int {
	return len(v.slots)
}

// Empty reports whether the container holds no values
func (v *Vector[T, Tag]) Empty() bool {
	return len(v.elements) == 0
}

// Reserve grows the container so that n values fit without reallocating.
// n must be positive.
func (v *Vector[T, Tag]) Reserve(n int) {
	if n <= 0 {
		panic("handlevec: Reserve requires a positive capacity")
	}
	if n > math.MaxInt32 {
		panic("handlevec: Reserve exceeds handle index range")
	}
	v.mustNotBeBorrowed("Reserve")

	if cap(v.elements) < n {
		elements := make([]T, len(v.elements), n)
		copy(elements, v.elements)
		v.elements = elements
	}
	if cap(v.owners) < n {
		owners := make([]int32, len(v.owners), n)
		copy(owners, v.owners)
		v.owners = owners
	}

	v.growIfNeeded()
}

// Clear removes every value. Capacity is kept and slot generations are left
// untouched, so every handle issued before Clear stays invalid for good.
func (v *Vector[T, Tag]) Clear() {
	v.mustNotBeBorrowed("Clear")

	clear(v.elements)
	v.elements = v.elements[:0]
	v.owners = v.owners[:0]
	v.relinkSlots()
}

// HandleFromIndex returns the handle of the value at packed position i,
// or the null handle if i is out of range.
func (v *Vector[T, Tag]) HandleFromIndex(i int) TypedHandle[Tag] {
	if i < 0 || i >= len(v.owners) {
		return Null[Tag]()
	}
	index := v.owners[i]
	return TypedHandle[Tag]{Index: index, Gen: v.slots[index].gen}
}

// IndexFromHandle returns the packed position of the value referenced by h.
func (v *Vector[T, Tag]) IndexFromHandle(h TypedHandle[Tag]) (int, bool) {
	if !v.valid(h) {
		return 0, false
	}
	return int(v.slots[h.Index].lookup), true
}

// At returns a copy of the value at packed position i.
func (v *Vector[T, Tag]) At(i int) T {
	if i < 0 || i >= len(v.elements) {
		panic(fmt.Sprintf("handlevec: position %d out of range [0, %d)", i, len(v.elements)))
	}
	return v.elements[i]
}

func (v *Vector[T, Tag]) String() string {
	return fmt.Sprintf("handlevec[%d/%d]", len(v.elements), len(v.slots))
}

func (v *Vector[T, Tag]) mustNotBeBorrowed(op string) {
	if v.borrows > 0 {
		panic("handlevec: " + op + " called while a value is borrowed")
	}
}

func (v *Vector[T, Tag]) unborrow() {
	v.borrows--
}

// borrow runs fn with the container borrowed, so callbacks cannot mutate it.
func (v *Vector[T, Tag]) borrow(fn func()) {
	v.borrows++
	defer v.unborrow()
	fn()
}

func (v *Vector[T, Tag]) checkParallel() {
	if len(v.elements) != len(v.owners) {
		panic("handlevec: element and owner slices out of sync")
	}
}
