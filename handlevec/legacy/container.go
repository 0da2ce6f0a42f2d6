// Package legacy holds the first version of the handle container.
//
// It shares the packed storage and free-list design of handlevec.Vector but
// predates generation exhaustion handling, sorting and the borrow guard: a
// slot whose generation wraps around is simply reused. It is kept so the two
// designs can be benchmarked side by side.
package legacy

import "strings"

// Handle references a value stored in a Container.
type Handle struct {
	Index int32
	Gen   int32
}

type slot struct {
	handle Handle
	lookup int32
	next   int32
}

// Container stores values of type T in a packed slice.
type Container[T any] struct {
	elements   []T
	elementIds []int32
	slots      []slot
	next       int32
}

// New creates an empty container
func New[T any]() *Container[T] {
	return &Container[T]{}
}

func (c *Container[T]) growSlots() {
	have := len(c.slots)
	want := cap(c.elements)
	if have >= want {
		return
	}

	c.slots = append(c.slots, make([]slot, want-have)...)
	for i := have; i < want; i++ {
		c.slots[i] = slot{
			handle: Handle{Index: int32(i)},
			lookup: -1,
			next:   int32(i + 1),
		}
	}
}

// Add stores value and returns a handle to it.
func (c *Container[T]) Add(value T) Handle {
	position := int32(len(c.elements))
	c.elements = append(c.elements, value)
	c.elementIds = append(c.elementIds, 0)
	c.growSlots()

	s := &c.slots[c.next]
	s.handle.Gen++
	s.lookup = position
	c.elementIds[position] = s.handle.Index
	c.next = s.next

	return s.handle
}

// Has reports whether h still references a value.
func (c *Container[T]) Has(h Handle) bool {
	if h.Index < 0 || int(h.Index) >= len(c.slots) {
		return false
	}
	s := &c.slots[h.Index]
	return s.handle.Gen == h.Gen && s.lookup != -1
}

// Remove deletes the value referenced by h, moving the last value into its place.
func (c *Container[T]) Remove(h Handle) bool {
	if !c.Has(h) {
		return false
	}

	last := int32(len(c.elements) - 1)
	position := c.slots[h.Index].lookup

	c.slots[c.elementIds[last]].lookup = position
	c.elements[position], c.elements[last] = c.elements[last], c.elements[position]
	c.elementIds[position], c.elementIds[last] = c.elementIds[last], c.elementIds[position]

	s := &c.slots[h.Index]
	s.lookup = -1
	s.next = c.next
	c.next = h.Index

	var zero T
	c.elements[last] = zero
	c.elements = c.elements[:last]
	c.elementIds = c.elementIds[:last]
	return true
}

// Call invokes fn with a pointer to the value referenced by h, if any.
func (c *Container[T]) Call(h Handle, fn func(*T)) {
	if !c.Has(h) {
		return
	}
	fn(&c.elements[c.slots[h.Index].lookup])
}

// Enumerate invokes fn for every value in packed order.
func (c *Container[T]) Enumerate(fn func(*T)) {
	for i := range c.elements {
		fn(&c.elements[i])
	}
}

// Len returns the number of stored values
func (c *Container[T]) Len() int {
	return len(c.elements)
}

// Cap returns the number of slots
func (c *Container[T]) Cap() int {
	return len(c.slots)
}

// Reserve grows storage so n values fit without reallocating.
func (c *Container[T]) Reserve(n int) {
	if cap(c.elements) < n {
		elements := make([]T, len(c.elements), n)
		copy(elements, c.elements)
		c.elements = elements

		ids := make([]int32, len(c.elementIds), n)
		copy(ids, c.elementIds)
		c.elementIds = ids
	}
	c.growSlots()
}

// Clear removes every value, keeping capacity and slot generations.
func (c *Container[T]) Clear() {
	clear(c.elements)
	c.elements = c.elements[:0]
	c.elementIds = c.elementIds[:0]
	for i := range c.slots {
		c.slots[i].lookup = -1
		c.slots[i].next = int32(i + 1)
	}
	c.next = 0
}

// DebugHandles renders each slot as [o] (occupied) or [x] (empty).
func (c *Container[T]) DebugHandles() string {
	var sb strings.Builder
	for i := range c.slots {
		if c.slots[i].lookup == -1 {
			sb.WriteString("[x]")
		} else {
			sb.WriteString("[o]")
		}
	}
	return sb.String()
}
