package handlevec

// Commands buffers mutations requested while a Vector is borrowed (inside a
// range over All, or inside Call) so they can be applied once the borrow ends.
type Commands[T, Tag any] struct {
	adds    []T
	removes []TypedHandle[Tag]
	defers  []func()
}

// Add queues a value to be added.
func (c *Commands[T, Tag]) Add(value T) {
	c.adds = append(c.adds, value)
}

// Remove queues a handle to be removed.
func (c *Commands[T, Tag]) Remove(h TypedHandle[Tag]) {
	c.removes = append(c.removes, h)
}

// Defer queues a function to run after the adds and removes.
func (c *Commands[T, Tag]) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations
func (c *Commands[T, Tag]) Len() int {
	return len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies removes, then adds, then deferred functions to v, and resets
// the buffer. It returns the handles issued for the queued adds, in the order
// they were queued. Stale or repeated removes are ignored.
func (c *Commands[T, Tag]) Flush(v *Vector[T, Tag]) []TypedHandle[Tag] {
	for _, h := range c.removes {
		v.Remove(h)
	}

	var added []TypedHandle[Tag]
	if len(c.adds) > 0 {
		added = make([]TypedHandle[Tag], 0, len(c.adds))
		for _, value := range c.adds {
			added = append(added, v.Add(value))
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.adds)
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	return added
}
