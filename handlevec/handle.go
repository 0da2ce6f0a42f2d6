package handlevec

import (
	"cmp"
	"fmt"
)

// DefaultTag is the tag used by containers created with New.
type DefaultTag struct{}

// TypedHandle is a weak reference to a value stored in a Vector with the same Tag.
// Index names the slot, Gen the generation the slot had when the handle was issued.
// Handles are plain values: copy and compare them freely, but never edit the fields.
type TypedHandle[Tag any] struct {
	Index int32
	Gen   int32
}

// Handle is the handle type of containers using DefaultTag
type Handle = TypedHandle[DefaultTag]

// Null returns the handle that never resolves in any container.
func Null[Tag any]() TypedHandle[Tag] {
	return TypedHandle[Tag]{Index: -1}
}

// IsNull reports whether h is the null handle
func (h TypedHandle[Tag]) IsNull() bool {
	return h.Index < 0
}

// Compare orders handles by index, then by generation.
func (h TypedHandle[Tag]) Compare(other TypedHandle[Tag]) int {
	if c := cmp.Compare(h.Index, other.Index); c != 0 {
		return c
	}
	return cmp.Compare(h.Gen, other.Gen)
}

// Less reports whether h sorts before other
func (h TypedHandle[Tag]) Less(other TypedHandle[Tag]) bool {
	return h.Compare(other) < 0
}

// Key packs the handle into a single integer: index in the upper 32 bits,
// generation in the lower 32 bits.
func (h TypedHandle[Tag]) Key() uint64 {
	return uint64(uint32(h.Index))<<32 | uint64(uint32(h.Gen))
}

// HandleFromKey unpacks a value produced by TypedHandle.Key
func HandleFromKey[Tag any](key uint64) TypedHandle[Tag] {
	return TypedHandle[Tag]{
		Index: int32(uint32(key >> 32)),
		Gen:   int32(uint32(key & 0xFFFFFFFF)),
	}
}

func (h TypedHandle[Tag]) String() string {
	if h.IsNull() {
		return "Handle(null)"
	}
	return fmt.Sprintf("Handle(%d:%d)", h.Index, h.Gen)
}
