package uniquestash

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/amp-labs/amp-stash/assert"
	"github.com/amp-labs/amp-stash/logger"
)

// slot holds a value or a free-list link, plus the generation stamped on it. A free slot
// with next == retiredSlot is no longer linked into the free list.
type slot[V any] struct {
	value   V
	next    int
	version uint64
	full    bool
}

const retiredSlot = -1

// UniqueStash stores values under tags it issues itself. A tag is never issued twice.
// The zero value is an empty table ready to use.
type UniqueStash[V any] struct {
	data     []slot[V]
	size     int
	retired  int
	nextFree int
	metrics  *tableMetrics
	logger   *slog.Logger
}

// New creates an empty table.
func New[V any](opts ...Option) *UniqueStash[V] {
	o := buildOptions(opts)

	s := &UniqueStash[V]{
		metrics: newTableMetrics(o.name),
		logger:  o.logger,
	}

	if o.capacity > 0 {
		s.data = make([]slot[V], 0, o.capacity)
	}

	s.metrics.observeReset(0, 0, 0)

	return s
}

func (s *UniqueStash[V]) log() *slog.Logger {
	if s.logger == nil {
		return logger.Get()
	}

	return s.logger
}

// Put inserts a value and returns its tag.
func (s *UniqueStash[V]) Put(value V) Tag {
	pos := s.nextFree

	var version uint64

	if pos == len(s.data) {
		s.data = append(s.data, slot[V]{value: value, full: true})
		s.nextFree = pos + 1
	} else {
		entry := &s.data[pos]
		assert.False(entry.full, "uniquestash: free list points at occupied slot %d", pos)

		s.nextFree = entry.next
		entry.value = value
		entry.next = 0
		entry.full = true
		version = entry.version
	}

	s.size++
	s.metrics.observePut(s.size, len(s.data))

	return Tag{index: pos, version: version}
}

// PutAll inserts every value and returns their tags in the same order.
func (s *UniqueStash[V]) PutAll(values ...V) []Tag {
	s.Reserve(len(values))

	tags := make([]Tag, len(values))
	for i, value := range values {
		tags[i] = s.Put(value)
	}

	return tags
}

// Extend inserts every value produced by seq and returns their tags in order.
func (s *UniqueStash[V]) Extend(seq iter.Seq[V]) []Tag {
	var tags []Tag

	for value := range seq {
		tags = append(tags, s.Put(value))
	}

	return tags
}

func (s *UniqueStash[V]) position(tag Tag) (int, bool) {
	pos := tag.index
	if pos < 0 || pos >= len(s.data) {
		return 0, false
	}

	entry := &s.data[pos]
	if !entry.full || entry.version != tag.version {
		return 0, false
	}

	return pos, true
}

// Get returns the value stored under tag. It returns false for unknown and stale tags.
func (s *UniqueStash[V]) Get(tag Tag) (V, bool) {
	pos, ok := s.position(tag)
	if !ok {
		s.metrics.observeStale()

		var zero V

		return zero, false
	}

	return s.data[pos].value, true
}

// GetPtr returns a pointer to the value stored under tag, or nil. The pointer is valid
// until the next call that may grow the table.
func (s *UniqueStash[V]) GetPtr(tag Tag) *V {
	pos, ok := s.position(tag)
	if !ok {
		s.metrics.observeStale()

		return nil
	}

	return &s.data[pos].value
}

// MustGet returns the value stored under tag and panics if there is none.
func (s *UniqueStash[V]) MustGet(tag Tag) V {
	pos, ok := s.position(tag)
	if !ok {
		panic(fmt.Sprintf("uniquestash: index out of bounds: %v", tag))
	}

	return s.data[pos].value
}

// Contains reports whether tag refers to a value still in the table.
func (s *UniqueStash[V]) Contains(tag Tag) bool {
	_, ok := s.position(tag)

	return ok
}

// Take removes the value stored under tag and returns it. Every tag issued for the slot so
// far becomes stale. Unknown and stale tags leave the table untouched.
func (s *UniqueStash[V]) Take(tag Tag) (V, bool) {
	pos, ok := s.position(tag)
	if !ok {
		s.metrics.observeStale()

		var zero V

		return zero, false
	}

	return s.release(pos), true
}

func (s *UniqueStash[V]) release(pos int) V {
	entry := &s.data[pos]
	value := entry.value

	var zero V

	entry.value = zero
	entry.full = false
	s.size--

	if entry.version == math.MaxUint64 {
		entry.next = retiredSlot
		s.retired++

		s.log().Warn("retiring slot with exhausted generation",
			"slot", pos, "retired", s.retired)
	} else {
		entry.version++
		entry.next = s.nextFree
		s.nextFree = pos
	}

	s.metrics.observeTake(s.size, s.retired)

	return value
}

// Clear takes every value. Generations advance as they do for Take, so tags issued before
// Clear never match tags issued after it.
func (s *UniqueStash[V]) Clear() {
	for pos := range s.data {
		if s.data[pos].full {
			s.release(pos)
		}
	}
}

// Len returns the number of values in the table.
func (s *UniqueStash[V]) Len() int {
	return s.size
}

// IsEmpty reports whether the table holds no values.
func (s *UniqueStash[V]) IsEmpty() bool {
	return s.size == 0
}

// Cap returns the number of slots the table can hold without reallocating.
func (s *UniqueStash[V]) Cap() int {
	return cap(s.data)
}

// Reserve makes room for at least additional more puts without reallocating. Free slots
// count toward the room, retired slots do not.
func (s *UniqueStash[V]) Reserve(additional int) {
	if additional < 0 {
		panic("uniquestash: negative reserve")
	}

	free := len(s.data) - s.size - s.retired
	if free < additional {
		s.data = slices.Grow(s.data, additional-free)
	}
}

// ReserveExact is Reserve without over-allocation.
func (s *UniqueStash[V]) ReserveExact(additional int) {
	if additional < 0 {
		panic("uniquestash: negative reserve")
	}

	need := additional - (len(s.data) - s.size - s.retired)
	if need <= 0 || cap(s.data)-len(s.data) >= need {
		return
	}

	data := make([]slot[V], len(s.data), len(s.data)+need)
	copy(data, s.data)
	s.data = data
}

// Clone returns a copy that continues to issue the same tags as s. Values are copied
// shallowly. The copy shares the logger but is not instrumented.
func (s *UniqueStash[V]) Clone() *UniqueStash[V] {
	return &UniqueStash[V]{
		data:     slices.Clone(s.data),
		size:     s.size,
		retired:  s.retired,
		nextFree: s.nextFree,
		logger:   s.logger,
	}
}

// String renders the table as uniquestash{index/version: value, ...} in slot order.
func (s *UniqueStash[V]) String() string {
	var sb strings.Builder

	sb.WriteString("uniquestash{")

	first := true

	for tag, value := range s.All() {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&sb, "%v: %v", tag, value)
	}

	sb.WriteString("}")

	return sb.String()
}
