package stash

import (
	"fmt"

	"github.com/amp-labs/amp-stash/errors"
)

// Index is the set of key types a Stash can issue. Every integer type qualifies, including
// named types such as `type FD uint16`.
type Index interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// fits reports whether slot position pos is representable as a K.
func fits[K Index](pos int) bool {
	key := K(pos)

	return key >= 0 && int(key) == pos
}

// toKey converts a slot position into a key, panicking with ErrIndexOverflow when the
// key type is too narrow.
func toKey[K Index](pos int) K {
	if !fits[K](pos) {
		var key K

		panic(fmt.Errorf("%w: slot %d does not fit %T", errors.ErrIndexOverflow, pos, key))
	}

	return K(pos)
}
