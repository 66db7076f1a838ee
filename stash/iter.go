package stash

import "iter"

// All yields every key and value in slot order. The table must not be modified while
// the loop runs.
func (s *Stash[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for pos := range s.data {
			if slot := &s.data[pos]; slot.full {
				if !yield(K(pos), slot.value) {
					return
				}
			}
		}
	}
}

// AllPtr yields every key with a pointer to its value, in slot order.
func (s *Stash[K, V]) AllPtr() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for pos := range s.data {
			if slot := &s.data[pos]; slot.full {
				if !yield(K(pos), &slot.value) {
					return
				}
			}
		}
	}
}

// Backward yields every key and value in reverse slot order.
func (s *Stash[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for pos := len(s.data) - 1; pos >= 0; pos-- {
			if slot := &s.data[pos]; slot.full {
				if !yield(K(pos), slot.value) {
					return
				}
			}
		}
	}
}

// Keys yields every key in use, in slot order.
func (s *Stash[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range s.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Values yields every value in slot order.
func (s *Stash[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range s.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// ValuesPtr yields a pointer to every value in slot order.
func (s *Stash[K, V]) ValuesPtr() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for _, value := range s.AllPtr() {
			if !yield(value) {
				return
			}
		}
	}
}

// Drain detaches the contents of the table, resets it to the state of a new table and
// returns a sequence over the detached entries. The reset happens when Drain is called,
// not when the sequence is consumed.
func (s *Stash[K, V]) Drain() iter.Seq2[K, V] {
	detached := &Stash[K, V]{data: s.data, size: s.size}

	s.data = nil
	s.size = 0
	s.nextFree = 0
	s.metrics.observeReset(0, 0)

	return detached.All()
}

// DrainValues is Drain without the keys.
func (s *Stash[K, V]) DrainValues() iter.Seq[V] {
	detached := &Stash[K, V]{data: s.data, size: s.size}

	s.data = nil
	s.size = 0
	s.nextFree = 0
	s.metrics.observeReset(0, 0)

	return detached.Values()
}

// Iterator is a cursor over the entries of a Stash that can be advanced from both ends.
type Iterator[K Index, V any] struct {
	data      []entry[V]
	front     int
	back      int
	remaining int
}

// Iter returns a cursor over the table. The table must not be modified while the cursor
// is in use.
func (s *Stash[K, V]) Iter() *Iterator[K, V] {
	return &Iterator[K, V]{
		data:      s.data,
		back:      len(s.data),
		remaining: s.size,
	}
}

// Next returns the next entry from the front, or false once the cursor is exhausted.
func (it *Iterator[K, V]) Next() (K, V, bool) {
	for it.front < it.back {
		pos := it.front
		it.front++

		if slot := &it.data[pos]; slot.full {
			it.remaining--

			return K(pos), slot.value, true
		}
	}

	var (
		key   K
		value V
	)

	return key, value, false
}

// NextBack returns the next entry from the back, or false once the cursor is exhausted.
func (it *Iterator[K, V]) NextBack() (K, V, bool) {
	for it.back > it.front {
		it.back--
		pos := it.back

		if slot := &it.data[pos]; slot.full {
			it.remaining--

			return K(pos), slot.value, true
		}
	}

	var (
		key   K
		value V
	)

	return key, value, false
}

// Len returns the exact number of entries the cursor has yet to return.
func (it *Iterator[K, V]) Len() int {
	return it.remaining
}
