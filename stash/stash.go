package stash

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/amp-labs/amp-stash/assert"
)

// Stash stores values under keys it picks itself. Keys of taken values are reused.
// The zero value is an empty table ready to use.
type Stash[K Index, V any] struct {
	data     []entry[V]
	size     int
	nextFree int
	metrics  *tableMetrics
}

// New creates an empty table keyed by int.
func New[V any](opts ...Option) *Stash[int, V] {
	return NewIndexed[int, V](opts...)
}

// NewIndexed creates an empty table keyed by K. Putting a value whose slot position does
// not fit K panics with errors.ErrIndexOverflow.
func NewIndexed[K Index, V any](opts ...Option) *Stash[K, V] {
	o := buildOptions(opts)

	s := &Stash[K, V]{
		metrics: newTableMetrics(o.name),
	}

	if o.capacity > 0 {
		s.data = make([]entry[V], 0, o.capacity)
	}

	s.metrics.observeReset(0, 0)

	return s
}

// Put inserts a value and returns its key.
func (s *Stash[K, V]) Put(value V) K {
	pos := s.nextFree
	key := toKey[K](pos)

	if pos == len(s.data) {
		s.data = append(s.data, occupied(value))
		s.nextFree = pos + 1
	} else {
		slot := &s.data[pos]
		assert.False(slot.full, "stash: free list points at occupied slot %d", pos)

		s.nextFree = slot.next
		*slot = occupied(value)
	}

	s.size++
	s.metrics.observePut(s.size, len(s.data))

	return key
}

// NextIndex returns the key the next Put will return.
func (s *Stash[K, V]) NextIndex() K {
	return toKey[K](s.nextFree)
}

// PutAll inserts every value and returns their keys in the same order.
func (s *Stash[K, V]) PutAll(values ...V) []K {
	s.Reserve(len(values))

	keys := make([]K, len(values))
	for i, value := range values {
		keys[i] = s.Put(value)
	}

	return keys
}

// Extend inserts every value produced by seq and returns their keys in order.
func (s *Stash[K, V]) Extend(seq iter.Seq[V]) []K {
	var keys []K

	for value := range seq {
		keys = append(keys, s.Put(value))
	}

	return keys
}

func (s *Stash[K, V]) position(key K) (int, bool) {
	pos := int(key)
	if key < 0 || pos < 0 || pos >= len(s.data) || !s.data[pos].full {
		return 0, false
	}

	return pos, true
}

// Get returns the value stored under key. It returns false if the key is out of range
// or its value was taken.
func (s *Stash[K, V]) Get(key K) (V, bool) {
	pos, ok := s.position(key)
	if !ok {
		s.metrics.observeMiss()

		var zero V

		return zero, false
	}

	return s.data[pos].value, true
}

// GetPtr returns a pointer to the value stored under key, or nil. The pointer is valid
// until the next call that may grow the table.
func (s *Stash[K, V]) GetPtr(key K) *V {
	pos, ok := s.position(key)
	if !ok {
		s.metrics.observeMiss()

		return nil
	}

	return &s.data[pos].value
}

// MustGet returns the value stored under key and panics if there is none.
func (s *Stash[K, V]) MustGet(key K) V {
	pos, ok := s.position(key)
	if !ok {
		panic(fmt.Sprintf("stash: index out of bounds: %v", key))
	}

	return s.data[pos].value
}

// Contains reports whether key currently holds a value.
func (s *Stash[K, V]) Contains(key K) bool {
	_, ok := s.position(key)

	return ok
}

// Take removes the value stored under key and returns it. The key may be reissued by a
// later Put. Invalid keys leave the table untouched.
func (s *Stash[K, V]) Take(key K) (V, bool) {
	pos, ok := s.position(key)
	if !ok {
		s.metrics.observeMiss()

		var zero V

		return zero, false
	}

	return s.release(pos), true
}

// GetUnchecked is Get without the validity checks. The key must hold a value.
func (s *Stash[K, V]) GetUnchecked(key K) V {
	slot := &s.data[int(key)]
	assert.True(slot.full, "stash: unchecked get of free slot %d", int(key))

	return slot.value
}

// GetPtrUnchecked is GetPtr without the validity checks. The key must hold a value.
func (s *Stash[K, V]) GetPtrUnchecked(key K) *V {
	slot := &s.data[int(key)]
	assert.True(slot.full, "stash: unchecked get of free slot %d", int(key))

	return &slot.value
}

// TakeUnchecked is Take without the validity checks. The key must hold a value, otherwise
// the free list is corrupted when assertions are disabled.
func (s *Stash[K, V]) TakeUnchecked(key K) V {
	pos := int(key)
	assert.True(s.data[pos].full, "stash: unchecked take of free slot %d", pos)

	return s.release(pos)
}

func (s *Stash[K, V]) release(pos int) V {
	slot := &s.data[pos]
	value := slot.value

	*slot = vacant[V](s.nextFree)
	s.nextFree = pos
	s.size--
	s.metrics.observeTake(s.size)

	return value
}

// Clear removes every value. Puts that follow return the same keys as on a new table.
// Capacity is kept.
func (s *Stash[K, V]) Clear() {
	clear(s.data)

	s.data = s.data[:0]
	s.size = 0
	s.nextFree = 0
	s.metrics.observeReset(0, 0)
}

// Len returns the number of values in the table.
func (s *Stash[K, V]) Len() int {
	return s.size
}

// IsEmpty reports whether the table holds no values.
func (s *Stash[K, V]) IsEmpty() bool {
	return s.size == 0
}

// Cap returns the number of slots the table can hold without reallocating.
func (s *Stash[K, V]) Cap() int {
	return cap(s.data)
}

// Reserve makes room for at least additional more puts without reallocating. Free slots
// count toward the room. It may reserve more than requested.
func (s *Stash[K, V]) Reserve(additional int) {
	if additional < 0 {
		panic("stash: negative reserve")
	}

	free := len(s.data) - s.size
	if free < additional {
		s.data = slices.Grow(s.data, additional-free)
	}
}

// ReserveExact is Reserve without over-allocation.
func (s *Stash[K, V]) ReserveExact(additional int) {
	if additional < 0 {
		panic("stash: negative reserve")
	}

	need := additional - (len(s.data) - s.size)
	if need <= 0 || cap(s.data)-len(s.data) >= need {
		return
	}

	data := make([]entry[V], len(s.data), len(s.data)+need)
	copy(data, s.data)
	s.data = data
}

// Clone returns a copy that continues to issue the same keys as s. Values are copied
// shallowly. The copy is not instrumented.
func (s *Stash[K, V]) Clone() *Stash[K, V] {
	return &Stash[K, V]{
		data:     slices.Clone(s.data),
		size:     s.size,
		nextFree: s.nextFree,
	}
}

// String renders the table as stash{key: value, ...} in slot order.
func (s *Stash[K, V]) String() string {
	var sb strings.Builder

	sb.WriteString("stash{")

	first := true

	for key, value := range s.All() {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&sb, "%v: %v", key, value)
	}

	sb.WriteString("}")

	return sb.String()
}
