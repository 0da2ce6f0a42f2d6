package handlevec_test

import (
	"testing"

	"github.com/plus3/thh/handlevec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRetiredWhenGenerationLimitReached(t *testing.T) {
	v := handlevec.New[int](handlevec.WithCapacity(1), handlevec.WithGenerationLimit(2))

	first := v.Add(1)
	require.True(t, v.Remove(first))

	second := v.Add(2)
	assert.Equal(t, first.Index, second.Index)
	assert.Equal(t, int32(2), second.Gen)
	assert.Equal(t, "[!]", v.DebugHandles())
	assert.Equal(t, 1, v.Stats().Occupied)
	assert.Equal(t, 0, v.Stats().Depleted)

	require.True(t, v.Remove(second))
	assert.Equal(t, "[!]", v.DebugHandles())

	// the retired slot is never reissued; a fresh one takes its place
	third := v.Add(3)
	assert.Equal(t, int32(1), third.Index)
	assert.Equal(t, int32(1), third.Gen)
	assert.Equal(t, "[!][o]", v.DebugHandles())

	assert.False(t, v.Has(first))
	assert.False(t, v.Has(second))
	assert.True(t, v.Has(third))

	stats := v.Stats()
	assert.Equal(t, 1, stats.Depleted)
	assert.Equal(t, 1, stats.Occupied)
	assert.Equal(t, 0, stats.Free)
}

func TestGenerationLimitOfOne(t *testing.T) {
	v := handlevec.New[int](handlevec.WithGenerationLimit(1))

	var previous []handlevec.Handle
	for i := 0; i < 20; i++ {
		h := v.Add(i)
		require.Equal(t, int32(1), h.Gen)
		for _, old := range previous {
			require.NotEqual(t, old.Index, h.Index)
		}
		require.True(t, v.Remove(h))
		previous = append(previous, h)
	}

	stats := v.Stats()
	assert.Equal(t, 20, stats.Depleted)
	assert.Equal(t, 0, v.Len())
	assert.GreaterOrEqual(t, v.Cap(), 20)
}

func TestClearKeepsRetiredSlots(t *testing.T) {
	v := handlevec.New[int](handlevec.WithCapacity(3), handlevec.WithGenerationLimit(1))

	a := v.Add(1)
	v.Add(2)
	v.Add(3)
	v.Remove(a)
	assert.Equal(t, "[!][!][!]", v.DebugHandles())
	assert.Equal(t, 2, v.Stats().Occupied)
	assert.Equal(t, 1, v.Stats().Depleted)

	// slots 1 and 2 reached the limit while occupied, so Clear retires them too
	v.Clear()
	assert.Equal(t, "[!][!][!]", v.DebugHandles())
	assert.Equal(t, 3, v.Stats().Depleted)

	h := v.Add(4)
	assert.Equal(t, int32(3), h.Index)
	assert.Equal(t, "[!][!][!][!][x][x]", v.DebugHandles())
}

func TestDebugHandlesMarksOccupiedSlotAtLimit(t *testing.T) {
	v := handlevec.New[int](handlevec.WithGenerationLimit(1), handlevec.WithCapacity(2))

	h := v.Add(1)
	require.Equal(t, int32(1), h.Gen)
	assert.Equal(t, "[!][x]", v.DebugHandles())
	assert.True(t, v.Has(h))

	var states []handlevec.SlotState
	for info := range v.Slots() {
		states = append(states, info.State)
	}
	assert.Equal(t, []handlevec.SlotState{handlevec.SlotDepleted, handlevec.SlotEmpty}, states)

	stats := v.Stats()
	assert.Equal(t, 1, stats.Occupied)
	assert.Equal(t, 0, stats.Depleted)
	assert.Equal(t, 1, stats.Free)

	require.True(t, v.Remove(h))
	assert.Equal(t, "[!][x]", v.DebugHandles())
	assert.Equal(t, 1, v.Stats().Depleted)
}

func TestClearRelinksFromSlotZero(t *testing.T) {
	v := handlevec.New[int](handlevec.WithCapacity(4), handlevec.WithGenerationLimit(3))

	handles := addInts(v, 1, 2, 3, 4)
	v.Remove(handles[3])
	v.Remove(handles[1])
	v.Clear()

	for i := 0; i < 4; i++ {
		h := v.Add(i)
		assert.Equal(t, int32(i), h.Index)
		assert.Equal(t, int32(2), h.Gen)
	}
}

func TestInvalidGenerationLimitPanics(t *testing.T) {
	assert.Panics(t, func() { handlevec.WithGenerationLimit(0) })
	assert.Panics(t, func() { handlevec.WithGenerationLimit(-4) })
}
