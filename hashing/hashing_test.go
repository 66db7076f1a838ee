package hashing

import (
	"errors"
	"fmt"
	"hash"
	"testing"

	"github.com/OneOfOne/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

var errWrite = errors.New("write failed")

type HashableString string

func (s HashableString) String() string {
	return string(s)
}

func (s HashableString) UpdateHash(h hash.Hash) error {
	_, err := h.Write([]byte(s))

	return err
}

func (s HashableString) Equals(other HashableString) bool {
	return s == other
}

type failingHashable struct{}

func (failingHashable) UpdateHash(hash.Hash) error {
	return errWrite
}

func TestSha256(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    Hashable
		expected string
	}{
		{
			name:     "empty string",
			input:    HashableString(""),
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "simple string",
			input:    HashableString("hello"),
			expected: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := Sha256(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestXxh3(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "hello", "3/17"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			t.Parallel()

			result, err := Xxh3(HashableString(input))
			require.NoError(t, err)
			assert.Len(t, result, 16)
			assert.Equal(t, fmt.Sprintf("%016x", xxh3.HashString(input)), result)
		})
	}
}

func TestXxhash64(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "hello", "3/17"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			t.Parallel()

			result, err := Xxhash64(HashableString(input))
			require.NoError(t, err)
			assert.Len(t, result, 16)
			assert.Equal(t, fmt.Sprintf("%016x", xxhash.Checksum64([]byte(input))), result)
		})
	}
}

func TestHashFuncsDistinguishInputs(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]HashFunc{"sha256": Sha256, "xxh3": Xxh3, "xxhash64": Xxhash64} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a, err := fn(HashableString("1/0"))
			require.NoError(t, err)

			b, err := fn(HashableString("1/1"))
			require.NoError(t, err)

			again, err := fn(HashableString("1/0"))
			require.NoError(t, err)

			assert.NotEqual(t, a, b)
			assert.Equal(t, a, again)
		})
	}
}

func TestHashFuncsPropagateErrors(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]HashFunc{"sha256": Sha256, "xxh3": Xxh3, "xxhash64": Xxhash64} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result, err := fn(failingHashable{})
			require.ErrorIs(t, err, errWrite)
			assert.Empty(t, result)
		})
	}
}

func TestHashableString(t *testing.T) {
	t.Parallel()

	s := HashableString("abc")
	assert.Equal(t, "abc", s.String())
	assert.True(t, s.Equals("abc"))
	assert.False(t, s.Equals("abd"))
}

func TestByName(t *testing.T) {
	t.Parallel()

	for _, name := range Names {
		fn, err := ByName(name)
		require.NoError(t, err, name)

		digest, err := fn(HashableString("abc"))
		require.NoError(t, err)
		assert.NotEmpty(t, digest)
	}

	sha, err := ByName("sha256")
	require.NoError(t, err)

	digest, err := sha(HashableString("hello"))
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)

	_, err = ByName("md5")
	require.ErrorIs(t, err, ErrUnknownHashFunc)
}

func TestSequence(t *testing.T) {
	t.Parallel()

	joined, err := Sha256(HashableString("abc"))
	require.NoError(t, err)

	split, err := Sha256(Sequence[HashableString]{"a", "bc"})
	require.NoError(t, err)
	assert.Equal(t, joined, split)

	empty, err := Xxh3(Sequence[Hashable]{})
	require.NoError(t, err)

	nothing, err := Xxh3(HashableString(""))
	require.NoError(t, err)
	assert.Equal(t, nothing, empty)

	_, err = Xxh3(Sequence[Hashable]{HashableString("a"), failingHashable{}})
	require.ErrorIs(t, err, errWrite)
}

func TestUint64(t *testing.T) {
	t.Parallel()

	digest, err := Xxhash64(Uint64(0x0102030405060708))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Checksum64([]byte{1, 2, 3, 4, 5, 6, 7, 8})), digest)

	ordered, err := Xxh3(Sequence[Uint64]{1, 2})
	require.NoError(t, err)

	swapped, err := Xxh3(Sequence[Uint64]{2, 1})
	require.NoError(t, err)
	assert.NotEqual(t, ordered, swapped)
}
