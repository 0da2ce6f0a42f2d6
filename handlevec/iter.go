package handlevec

import "iter"

// All returns an iterator over handles and values in current packed order.
// The container is borrowed for the duration of the loop: the yielded pointers
// are only valid inside the loop body, and mutating the container from the
// body panics. Use Commands to queue mutations instead.
func (v *Vector[T, Tag]) All() iter.Seq2[TypedHandle[Tag], *T] {
	return func(yield func(TypedHandle[Tag], *T) bool) {
		v.borrows++
		defer v.unborrow()

		for i := range v.elements {
			index := v.owners[i]
			h := TypedHandle[Tag]{Index: index, Gen: v.slots[index].gen}
			if !yield(h, &v.elements[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the stored values in packed order.
// The same borrowing rules as All apply.
func (v *Vector[T, Tag]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		v.borrows++
		defer v.unborrow()

		for i := range v.elements {
			if !yield(&v.elements[i]) {
				return
			}
		}
	}
}

// Backward is like All but walks the packed order from the end.
func (v *Vector[T, Tag]) Backward() iter.Seq2[TypedHandle[Tag], *T] {
	return func(yield func(TypedHandle[Tag], *T) bool) {
		v.borrows++
		defer v.unborrow()

		for i := len(v.elements) - 1; i >= 0; i-- {
			index := v.owners[i]
			h := TypedHandle[Tag]{Index: index, Gen: v.slots[index].gen}
			if !yield(h, &v.elements[i]) {
				return
			}
		}
	}
}
