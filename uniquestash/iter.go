package uniquestash

import (
	"iter"
	"slices"
)

// All yields every tag and value in slot order. The table must not be modified while the
// loop runs.
func (s *UniqueStash[V]) All() iter.Seq2[Tag, V] {
	return func(yield func(Tag, V) bool) {
		for pos := range s.data {
			if entry := &s.data[pos]; entry.full {
				if !yield(Tag{index: pos, version: entry.version}, entry.value) {
					return
				}
			}
		}
	}
}

// AllPtr yields every tag with a pointer to its value, in slot order.
func (s *UniqueStash[V]) AllPtr() iter.Seq2[Tag, *V] {
	return func(yield func(Tag, *V) bool) {
		for pos := range s.data {
			if entry := &s.data[pos]; entry.full {
				if !yield(Tag{index: pos, version: entry.version}, &entry.value) {
					return
				}
			}
		}
	}
}

// Backward yields every tag and value in reverse slot order.
func (s *UniqueStash[V]) Backward() iter.Seq2[Tag, V] {
	return func(yield func(Tag, V) bool) {
		for pos := len(s.data) - 1; pos >= 0; pos-- {
			if entry := &s.data[pos]; entry.full {
				if !yield(Tag{index: pos, version: entry.version}, entry.value) {
					return
				}
			}
		}
	}
}

// Tags yields every live tag in slot order.
func (s *UniqueStash[V]) Tags() iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		for tag := range s.All() {
			if !yield(tag) {
				return
			}
		}
	}
}

// Values yields every value in slot order.
func (s *UniqueStash[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range s.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// ValuesPtr yields a pointer to every value in slot order.
func (s *UniqueStash[V]) ValuesPtr() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for _, value := range s.AllPtr() {
			if !yield(value) {
				return
			}
		}
	}
}

// Drain takes every value out of the table and returns a sequence over what was taken.
// Generations advance as they do for Clear, so the drained tags are stale once Drain
// returns.
func (s *UniqueStash[V]) Drain() iter.Seq2[Tag, V] {
	detached := &UniqueStash[V]{data: slices.Clone(s.data), size: s.size}

	s.Clear()

	return detached.All()
}

// DrainValues is Drain without the tags.
func (s *UniqueStash[V]) DrainValues() iter.Seq[V] {
	detached := &UniqueStash[V]{data: slices.Clone(s.data), size: s.size}

	s.Clear()

	return detached.Values()
}

// Iterator is a cursor over the entries of a UniqueStash that can be advanced from both
// ends.
type Iterator[V any] struct {
	data      []slot[V]
	front     int
	back      int
	remaining int
}

// Iter returns a cursor over the table. The table must not be modified while the cursor
// is in use.
func (s *UniqueStash[V]) Iter() *Iterator[V] {
	return &Iterator[V]{
		data:      s.data,
		back:      len(s.data),
		remaining: s.size,
	}
}

// Next returns the next entry from the front, or false once the cursor is exhausted.
func (it *Iterator[V]) Next() (Tag, V, bool) {
	for it.front < it.back {
		pos := it.front
		it.front++

		if entry := &it.data[pos]; entry.full {
			it.remaining--

			return Tag{index: pos, version: entry.version}, entry.value, true
		}
	}

	var value V

	return Tag{}, value, false
}

// NextBack returns the next entry from the back, or false once the cursor is exhausted.
func (it *Iterator[V]) NextBack() (Tag, V, bool) {
	for it.back > it.front {
		it.back--
		pos := it.back

		if entry := &it.data[pos]; entry.full {
			it.remaining--

			return Tag{index: pos, version: entry.version}, entry.value, true
		}
	}

	var value V

	return Tag{}, value, false
}

// Len returns the exact number of entries the cursor has yet to return.
func (it *Iterator[V]) Len() int {
	return it.remaining
}
