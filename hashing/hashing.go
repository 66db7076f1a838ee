// Package hashing defines how values (tags in particular) feed themselves into a hash,
// and the hash functions that turn them into string digests.
package hashing

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"

	"github.com/OneOfOne/xxhash"
	"github.com/zeebo/xxh3"
)

// ErrUnknownHashFunc is returned by ByName for names it does not know.
var ErrUnknownHashFunc = errors.New("unknown hash function")

// HashFunc is a function that takes a Hashable object
// and returns a string representation of its hashing.
// As an example, the Sha256 function is a HashFunc.
// This lets us talk about hashing functions in a generic way.
type HashFunc func(hashable Hashable) (string, error)

// Hashable is an interface that allows an object to update
// a hash.Hash with its contents. This is useful for hashing
// objects so that they can be easily compared.
type Hashable interface {
	UpdateHash(h hash.Hash) error
}

// Sha256 returns the SHA256 hashing of the given Hashable
// as a hex-encoded string. If the Hashable fails to
// update the hashing, an error is returned.
func Sha256(hashable Hashable) (string, error) {
	h := sha256.New()

	if err := hashable.UpdateHash(h); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Xxh3 returns the 64-bit XXH3 digest of the given Hashable as 16 hex digits.
// It is much cheaper than Sha256 and is the usual choice for in-memory lookups.
func Xxh3(hashable Hashable) (string, error) {
	h := xxh3.New()

	if err := hashable.UpdateHash(h); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Xxhash64 returns the 64-bit XXH64 digest of the given Hashable as 16 hex digits.
func Xxhash64(hashable Hashable) (string, error) {
	h := xxhash.New64()

	if err := hashable.UpdateHash(h); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Names lists the hash functions ByName knows, in sorted order.
var Names = []string{"sha256", "xxh3", "xxhash64"} //nolint:gochecknoglobals

// ByName returns the HashFunc called name, one of Names.
func ByName(name string) (HashFunc, error) {
	switch name {
	case "sha256":
		return Sha256, nil
	case "xxh3":
		return Xxh3, nil
	case "xxhash64":
		return Xxhash64, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashFunc, name)
	}
}

// Sequence is a Hashable made of other Hashables, written into the hash in order.
// Two sequences hash alike only if their elements do, position by position.
type Sequence[T Hashable] []T

func (s Sequence[T]) UpdateHash(h hash.Hash) error {
	for _, item := range s {
		if err := item.UpdateHash(h); err != nil {
			return err
		}
	}

	return nil
}

// Uint64 writes itself into a hash as 8 big-endian bytes.
type Uint64 uint64

func (u Uint64) UpdateHash(h hash.Hash) error {
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(u))

	_, err := h.Write(buf[:])

	return err
}
