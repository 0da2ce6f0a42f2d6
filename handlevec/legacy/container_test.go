package legacy_test

import (
	"testing"

	"github.com/plus3/thh/handlevec/legacy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemove(t *testing.T) {
	c := legacy.New[int]()
	h1 := c.Add(1)
	h2 := c.Add(2)
	h3 := c.Add(3)

	assert.Equal(t, int32(0), h1.Index)
	assert.Equal(t, int32(1), h2.Index)
	assert.Equal(t, int32(2), h3.Index)
	assert.Equal(t, 3, c.Len())

	require.True(t, c.Remove(h1))
	assert.False(t, c.Has(h1))
	assert.False(t, c.Remove(h1))
	assert.True(t, c.Has(h3))
	assert.Equal(t, 2, c.Len())
}

func TestHandleReusedAfterRemoval(t *testing.T) {
	c := legacy.New[int]()
	first := c.Add(1)
	c.Remove(first)
	next := c.Add(2)

	assert.Equal(t, first.Index, next.Index)
	assert.Equal(t, first.Gen+1, next.Gen)
}

func TestCallAndEnumerate(t *testing.T) {
	c := legacy.New[int]()
	handles := make([]legacy.Handle, 5)
	for i := range handles {
		handles[i] = c.Add(0)
	}

	i := 0
	c.Enumerate(func(v *int) {
		*v = i
		i++
	})

	c.Remove(handles[0])
	for idx, h := range handles[1:] {
		var got int
		c.Call(h, func(v *int) { got = *v })
		assert.Equal(t, idx+1, got)
	}

	called := false
	c.Call(handles[0], func(*int) { called = true })
	assert.False(t, called)
}

func TestDebugHandles(t *testing.T) {
	c := legacy.New[float32]()
	c.Reserve(5)
	handles := make([]legacy.Handle, 5)
	for i := range handles {
		handles[i] = c.Add(float32(i))
	}

	c.Remove(handles[2])
	c.Remove(handles[0])
	assert.Equal(t, "[x][o][x][o][o]", c.DebugHandles())
}

func TestClear(t *testing.T) {
	c := legacy.New[int]()
	c.Reserve(10)
	handles := make([]legacy.Handle, 10)
	for i := range handles {
		handles[i] = c.Add(i)
	}

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 10, c.Cap())
	for _, h := range handles {
		assert.False(t, c.Has(h))
	}

	next := c.Add(1)
	assert.Equal(t, int32(0), next.Index)
	assert.Equal(t, int32(2), next.Gen)
}
