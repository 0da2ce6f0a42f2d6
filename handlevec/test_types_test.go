package handlevec_test

import "github.com/plus3/thh/handlevec"

// Common test value types
type Position struct {
	X, Y float32
}

type Particle struct {
	Position
	Life   int
	Active bool
}

type Counter struct {
	Value int
}

func (c *Counter) PreIncrement() int {
	c.Value++
	return c.Value
}

// Tags used to keep handles of different containers apart
type widthTag struct{}
type heightTag struct{}

func addInts(v *handlevec.Vector[int, handlevec.DefaultTag], values ...int) []handlevec.Handle {
	handles := make([]handlevec.Handle, 0, len(values))
	for _, value := range values {
		handles = append(handles, v.Add(value))
	}
	return handles
}

func packedValues[T, Tag any](v *handlevec.Vector[T, Tag]) []T {
	values := make([]T, 0, v.Len())
	for value := range v.Values() {
		values = append(values, *value)
	}
	return values
}
