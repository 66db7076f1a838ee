package stash

// entry is one slot. A full entry holds a value. An empty entry holds the position of the
// next free slot, with len(data) terminating the list.
type entry[V any] struct {
	value V
	next  int
	full  bool
}

func occupied[V any](value V) entry[V] {
	return entry[V]{value: value, full: true}
}

func vacant[V any](next int) entry[V] {
	return entry[V]{next: next}
}
