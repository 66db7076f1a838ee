package uniquestash

import (
	"iter"
	"sync"
)

// ThreadSafe wraps a UniqueStash with a sync.RWMutex. Writers hold the lock exclusively,
// readers share it. Values are modified in place through Update so that pointers never
// escape the lock.
type ThreadSafe[V any] struct {
	mutex    sync.RWMutex
	internal *UniqueStash[V]
}

// NewThreadSafe wraps s. The caller must not use s directly afterwards. A nil s is replaced
// by an empty table.
func NewThreadSafe[V any](s *UniqueStash[V]) *ThreadSafe[V] {
	if s == nil {
		s = &UniqueStash[V]{}
	}

	return &ThreadSafe[V]{internal: s}
}

// Put inserts a value under the write lock and returns its tag.
func (t *ThreadSafe[V]) Put(value V) Tag {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.Put(value)
}

// PutAll inserts every value under a single write lock.
func (t *ThreadSafe[V]) PutAll(values ...V) []Tag {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.PutAll(values...)
}

// Take removes and returns the value stored under tag.
func (t *ThreadSafe[V]) Take(tag Tag) (V, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.Take(tag)
}

// Update calls f with a pointer to the value stored under tag while holding the write
// lock. It returns false, without calling f, for unknown and stale tags.
func (t *ThreadSafe[V]) Update(tag Tag, f func(value *V)) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	ptr := t.internal.GetPtr(tag)
	if ptr == nil {
		return false
	}

	f(ptr)

	return true
}

// Clear takes every value.
func (t *ThreadSafe[V]) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.internal.Clear()
}

// Reserve makes room for at least additional more puts.
func (t *ThreadSafe[V]) Reserve(additional int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.internal.Reserve(additional)
}

// Get returns the value stored under tag under the read lock.
func (t *ThreadSafe[V]) Get(tag Tag) (V, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Get(tag)
}

// Contains reports whether tag refers to a value still in the table.
func (t *ThreadSafe[V]) Contains(tag Tag) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Contains(tag)
}

// Len returns the number of values in the table.
func (t *ThreadSafe[V]) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Len()
}

// IsEmpty reports whether the table holds no values.
func (t *ThreadSafe[V]) IsEmpty() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.IsEmpty()
}

// Snapshot returns a copy of the table taken under the read lock.
func (t *ThreadSafe[V]) Snapshot() *UniqueStash[V] {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Clone()
}

// All yields the entries of a snapshot taken when All is called.
func (t *ThreadSafe[V]) All() iter.Seq2[Tag, V] {
	return t.Snapshot().All()
}

// Values yields the values of a snapshot taken when Values is called.
func (t *ThreadSafe[V]) Values() iter.Seq[V] {
	return t.Snapshot().Values()
}

// String renders the table under the read lock.
func (t *ThreadSafe[V]) String() string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.String()
}

// MarshalJSON encodes the table under the read lock.
func (t *ThreadSafe[V]) MarshalJSON() ([]byte, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.MarshalJSON()
}
