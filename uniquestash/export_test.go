package uniquestash

// FreeList returns the free slots in the order Put will reuse them.
func (s *UniqueStash[V]) FreeList() []int {
	var free []int

	for pos := s.nextFree; pos != len(s.data); pos = s.data[pos].next {
		if pos == retiredSlot || s.data[pos].full || len(free) >= len(s.data) {
			panic("uniquestash: corrupt free list")
		}

		free = append(free, pos)
	}

	return free
}

// Retired returns the number of retired slots.
func (s *UniqueStash[V]) Retired() int {
	return s.retired
}

// NewTag builds a tag from its parts.
func NewTag(index int, version uint64) Tag {
	return Tag{index: index, version: version}
}

var ErrMissingVersion = errMissingVersion
