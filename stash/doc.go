// Package stash provides Stash, an amortized O(1) table that stores values under keys it
// chooses itself and reuses the keys of removed values.
//
// Use it when the caller does not care what the keys are but wants constant time
// insertion, removal and lookup: file descriptor tables, session tables, poller
// context tables.
//
// # Guarantees
//
//  1. Key assignment is deterministic and never depends on the stored values. Two tables
//     updated in tandem hand out the same keys, which makes primary/secondary replication
//     straightforward.
//  2. Keys are always smaller than the largest number of values the table has held at any
//     single point in time. A table that never holds more than n values only issues keys
//     below n, so a narrow key type (see NewIndexed) is safe when n is bounded.
//  3. Apart from the above, nothing is promised about which key is assigned next or about
//     iteration order beyond "slot order".
//
// A key is only meaningful while its value is in the table. Once taken, the same key may
// be handed to an unrelated value. Use package uniquestash when stale keys must never
// alias a newer entry.
//
// # Basic Usage
//
//	fds := stash.New[*os.File]()
//	fd := fds.Put(file)
//
//	if f, ok := fds.Get(fd); ok {
//		_ = f.Sync()
//	}
//
//	f, _ := fds.Take(fd) // fd may now be reissued
//
// # Thread Safety
//
// A Stash is not safe for concurrent use. Reads (Get, iteration) may run in parallel
// with each other but not with writes. NewThreadSafe wraps a table with a sync.RWMutex
// when the caller cannot enforce that itself.
package stash
