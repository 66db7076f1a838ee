package stash

// FreeList returns the free slots in the order Put will reuse them.
func (s *Stash[K, V]) FreeList() []int {
	var free []int

	for pos := s.nextFree; pos != len(s.data); pos = s.data[pos].next {
		if s.data[pos].full || len(free) >= len(s.data) {
			panic("stash: corrupt free list")
		}

		free = append(free, pos)
	}

	return free
}

// Slots returns the number of allocated slots, live or free.
func (s *Stash[K, V]) Slots() int {
	return len(s.data)
}
