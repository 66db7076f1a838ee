package stash

import (
	"iter"
	"sync"
)

// ThreadSafe wraps a Stash with a sync.RWMutex. Writers (Put, Take, Clear, Reserve, Update)
// hold the lock exclusively, readers share it. Pointers into the table never escape the
// lock, so there is no GetPtr or AllPtr: use Update to modify a value in place.
//
// Example usage:
//
//	sessions := stash.NewThreadSafe(stash.New[*Session]())
//	id := sessions.Put(session) // safe from any goroutine
type ThreadSafe[K Index, V any] struct {
	mutex    sync.RWMutex
	internal *Stash[K, V]
}

// NewThreadSafe wraps s. The caller must not use s directly afterwards. A nil s is replaced
// by an empty table.
func NewThreadSafe[K Index, V any](s *Stash[K, V]) *ThreadSafe[K, V] {
	if s == nil {
		s = &Stash[K, V]{}
	}

	return &ThreadSafe[K, V]{internal: s}
}

// Put inserts a value under the write lock and returns its key.
func (t *ThreadSafe[K, V]) Put(value V) K {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.Put(value)
}

// PutAll inserts every value under a single write lock.
func (t *ThreadSafe[K, V]) PutAll(values ...V) []K {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.PutAll(values...)
}

// Take removes and returns the value stored under key.
func (t *ThreadSafe[K, V]) Take(key K) (V, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.Take(key)
}

// Update calls f with a pointer to the value stored under key while holding the write
// lock. It returns false, without calling f, if the key holds no value.
func (t *ThreadSafe[K, V]) Update(key K, f func(value *V)) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	ptr := t.internal.GetPtr(key)
	if ptr == nil {
		return false
	}

	f(ptr)

	return true
}

// Clear removes every value.
func (t *ThreadSafe[K, V]) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.internal.Clear()
}

// Reserve makes room for at least additional more puts.
func (t *ThreadSafe[K, V]) Reserve(additional int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.internal.Reserve(additional)
}

// Get returns the value stored under key under the read lock.
func (t *ThreadSafe[K, V]) Get(key K) (V, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Get(key)
}

// Contains reports whether key currently holds a value.
func (t *ThreadSafe[K, V]) Contains(key K) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Contains(key)
}

// Len returns the number of values in the table.
func (t *ThreadSafe[K, V]) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Len()
}

// IsEmpty reports whether the table holds no values.
func (t *ThreadSafe[K, V]) IsEmpty() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.IsEmpty()
}

// Cap returns the slot capacity of the table.
func (t *ThreadSafe[K, V]) Cap() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Cap()
}

// Snapshot returns a copy of the table taken under the read lock. The copy issues the
// same keys the wrapped table would.
func (t *ThreadSafe[K, V]) Snapshot() *Stash[K, V] {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Clone()
}

// All yields the entries of a snapshot taken when All is called. The lock is not held
// while the loop runs.
func (t *ThreadSafe[K, V]) All() iter.Seq2[K, V] {
	return t.Snapshot().All()
}

// Values yields the values of a snapshot taken when Values is called.
func (t *ThreadSafe[K, V]) Values() iter.Seq[V] {
	return t.Snapshot().Values()
}

// String renders the table under the read lock.
func (t *ThreadSafe[K, V]) String() string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.String()
}

// MarshalJSON encodes the table under the read lock.
func (t *ThreadSafe[K, V]) MarshalJSON() ([]byte, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.MarshalJSON()
}
