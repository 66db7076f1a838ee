package main

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/amp-labs/amp-stash/hashing"
)

var (
	errInvalidFlag  = errors.New("invalid flag")
	errUnsupported  = errors.New("workload not supported by table")
	errInconsistent = errors.New("table returned an unexpected result")
)

// target is the part of a table the workloads exercise. stash.Stash, uniquestash.UniqueStash,
// their thread-safe wrappers and mapTable all satisfy it.
type target[K any] interface {
	Put(value int) K
	Take(key K) (int, bool)
	Get(key K) (int, bool)
	All() iter.Seq2[K, int]
}

type uncheckedTarget[K any] interface {
	TakeUnchecked(key K) int
}

// mapTable is the baseline: a Go map keyed by a counter.
type mapTable struct {
	mutex  *sync.RWMutex
	values map[int]int
	next   int
}

func newMapTable(shared bool) *mapTable {
	table := &mapTable{values: make(map[int]int)}
	if shared {
		table.mutex = &sync.RWMutex{}
	}

	return table
}

func (m *mapTable) lock() func() {
	if m.mutex == nil {
		return func() {}
	}

	m.mutex.Lock()

	return m.mutex.Unlock
}

func (m *mapTable) rlock() func() {
	if m.mutex == nil {
		return func() {}
	}

	m.mutex.RLock()

	return m.mutex.RUnlock
}

func (m *mapTable) Put(value int) int {
	defer m.lock()()

	key := m.next
	m.next++
	m.values[key] = value

	return key
}

func (m *mapTable) Take(key int) (int, bool) {
	defer m.lock()()

	value, ok := m.values[key]
	if ok {
		delete(m.values, key)
	}

	return value, ok
}

func (m *mapTable) Get(key int) (int, bool) {
	defer m.rlock()()

	value, ok := m.values[key]

	return value, ok
}

func (m *mapTable) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		defer m.rlock()()

		for key, value := range m.values {
			if !yield(key, value) {
				return
			}
		}
	}
}

// runWorkload runs one worker's share of a workload and returns the number of operations.
func runWorkload[K any](workload string, table target[K], iterations, size int) (int64, error) {
	switch workload {
	case "put_and_take":
		prefill(table, size)

		for i := range iterations {
			key := table.Put(i)
			if _, ok := table.Take(key); !ok {
				return 0, fmt.Errorf("%w: take of fresh key %v failed", errInconsistent, key)
			}
		}

		return 2 * int64(iterations), nil

	case "put_and_take_unchecked":
		unchecked, ok := table.(uncheckedTarget[K])
		if !ok {
			return 0, errUnsupported
		}

		prefill(table, size)

		for i := range iterations {
			unchecked.TakeUnchecked(table.Put(i))
		}

		return 2 * int64(iterations), nil

	case "get":
		keys := prefill(table, size)

		for range iterations {
			for _, key := range keys {
				if _, ok := table.Get(key); !ok {
					return 0, fmt.Errorf("%w: get of live key %v failed", errInconsistent, key)
				}
			}
		}

		return int64(iterations) * int64(len(keys)), nil

	case "iter":
		prefill(table, size)

		return iterate(table, iterations), nil

	case "iter_sparse":
		keys := prefill(table, size)

		for i, key := range keys {
			if i%10 != 0 {
				table.Take(key)
			}
		}

		return iterate(table, iterations), nil

	default:
		return 0, fmt.Errorf("%w: unknown workload %q", errInvalidFlag, workload)
	}
}

func prefill[K any](table target[K], size int) []K {
	keys := make([]K, size)
	for i := range keys {
		keys[i] = table.Put(i)
	}

	return keys
}

func iterate[K any](table target[K], iterations int) int64 {
	var visited int64

	for range iterations {
		for range table.All() {
			visited++
		}
	}

	return visited
}

// issueKeys replays a fixed script against a fresh table and returns every key the table
// handed out, in order: size puts, a take of every other key, then size more puts.
func issueKeys[K any](table target[K], size int) []K {
	keys := prefill(table, size)

	for i := 0; i < len(keys); i += 2 {
		table.Take(keys[i])
	}

	return append(keys, prefill(table, size)...)
}

// fingerprint hashes the keys issueKeys collects. Tables that allocate and reuse keys the
// same way have the same fingerprint.
func fingerprint[K any](
	table target[K], size int, hashFunc hashing.HashFunc, hashable func(K) hashing.Hashable,
) (string, error) {
	keys := issueKeys(table, size)
	sequence := make(hashing.Sequence[hashing.Hashable], len(keys))

	for i, key := range keys {
		sequence[i] = hashable(key)
	}

	return hashFunc(sequence)
}
