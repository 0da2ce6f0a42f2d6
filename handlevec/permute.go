package handlevec

import (
	"fmt"
	"slices"
)

// Sort orders all values by cmp. Handles keep referring to the same values.
func (v *Vector[T, Tag]) Sort(cmp func(a, b T) int) {
	v.SortRange(0, len(v.elements), cmp)
}

// SortStable is like Sort but keeps equal values in their current relative order.
func (v *Vector[T, Tag]) SortStable(cmp func(a, b T) int) {
	v.sortRange(0, len(v.elements), cmp, true)
}

// SortRange orders the values at packed positions [begin, end) by cmp.
// end is clamped to Len().
func (v *Vector[T, Tag]) SortRange(begin, end int, cmp func(a, b T) int) {
	v.sortRange(begin, end, cmp, false)
}

func (v *Vector[T, Tag]) sortRange(begin, end int, cmp func(a, b T) int, stable bool) {
	v.mustNotBeBorrowed("Sort")
	if begin < 0 || begin > len(v.elements) || end < begin {
		panic(fmt.Sprintf("handlevec: invalid sort range [%d, %d) for length %d", begin, end, len(v.elements)))
	}
	end = min(end, len(v.elements))
	if end-begin < 2 {
		return
	}

	indices := v.identity(begin, end)
	byValue := func(a, b int32) int {
		return cmp(v.elements[a], v.elements[b])
	}
	v.borrow(func() {
		if stable {
			slices.SortStableFunc(indices, byValue)
		} else {
			slices.SortFunc(indices, byValue)
		}
	})

	v.applyPermutation(begin, indices)
	v.fixup(begin, end)
}

// Partition reorders the values so that every value satisfying pred comes
// before every value that does not, and returns the position of the first
// value of the second group. Relative order within a group is not kept.
func (v *Vector[T, Tag]) Partition(pred func(T) bool) int {
	v.mustNotBeBorrowed("Partition")

	n := len(v.elements)
	indices := v.identity(0, n)

	first := 0
	v.borrow(func() {
		for first < n && pred(v.elements[indices[first]]) {
			first++
		}
		for i := first + 1; i < n; i++ {
			if pred(v.elements[indices[i]]) {
				indices[first], indices[i] = indices[i], indices[first]
				first++
			}
		}
	})

	v.applyPermutation(0, indices)
	v.fixup(0, n)
	return first
}

// identity returns the packed positions begin..end-1 in order.
func (v *Vector[T, Tag]) identity(begin, end int) []int32 {
	indices := make([]int32, end-begin)
	for i := range indices {
		indices[i] = int32(begin + i)
	}
	return indices
}

// applyPermutation moves elements[indices[k]] to elements[begin+k] (and the
// matching owners along with them) by walking each cycle of the permutation
// once. indices is consumed.
func (v *Vector[T, Tag]) applyPermutation(begin int, indices []int32) {
	elements := v.elements[begin : begin+len(indices)]
	owners := v.owners[begin : begin+len(indices)]
	offset := int32(begin)

	for i := range indices {
		current := int32(i)
		for int32(i) != indices[current]-offset {
			next := indices[current] - offset
			elements[current], elements[next] = elements[next], elements[current]
			owners[current], owners[next] = owners[next], owners[current]
			indices[current] = current + offset
			current = next
		}
		indices[current] = current + offset
	}
}

// fixup points every slot owning a position in [begin, end) back at that position.
func (v *Vector[T, Tag]) fixup(begin, end int) {
	for i := begin; i < end; i++ {
		v.slots[v.owners[i]].lookup = int32(i)
	}
}
