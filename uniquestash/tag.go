package uniquestash

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"github.com/amp-labs/amp-stash/errors"
)

// Tag identifies one value put into a UniqueStash. It is comparable and can be used as a
// map key.
type Tag struct {
	index   int
	version uint64
}

// Index returns the slot the tagged value was stored in.
func (t Tag) Index() int {
	return t.index
}

// Version returns the generation of the slot when the value was stored.
func (t Tag) Version() uint64 {
	return t.version
}

// Compare orders tags by index, then by version.
func (t Tag) Compare(other Tag) int {
	return cmp.Or(cmp.Compare(t.index, other.index), cmp.Compare(t.version, other.version))
}

// Equals reports whether two tags are the same.
func (t Tag) Equals(other Tag) bool {
	return t == other
}

// UpdateHash writes the tag into h as two big-endian 64-bit integers.
func (t Tag) UpdateHash(h hash.Hash) error {
	var buf [16]byte

	binary.BigEndian.PutUint64(buf[:8], uint64(t.index)) //nolint:gosec
	binary.BigEndian.PutUint64(buf[8:], t.version)

	_, err := h.Write(buf[:])

	return err
}

// String returns the canonical text form of the tag, "<index>/<version>".
func (t Tag) String() string {
	return strconv.Itoa(t.index) + "/" + strconv.FormatUint(t.version, 10)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// ParseTag parses the text form produced by Tag.String. Only the canonical form is
// accepted: decimal digits, no sign, no leading zeros, no whitespace.
func ParseTag(text string) (Tag, error) {
	first, second, ok := strings.Cut(text, "/")
	if !ok || strings.Contains(second, "/") {
		return Tag{}, fmt.Errorf("%w: %q is not of the form index/version", errors.ErrTagParse, text)
	}

	if !canonical(first) || !canonical(second) {
		return Tag{}, fmt.Errorf("%w: %q is not canonical", errors.ErrTagParse, text)
	}

	index, err := strconv.ParseUint(first, 10, strconv.IntSize-1)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: index: %w", errors.ErrTagParse, err)
	}

	version, err := strconv.ParseUint(second, 10, 64)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: version: %w", errors.ErrTagParse, err)
	}

	return Tag{index: int(index), version: version}, nil
}

// canonical reports whether s is a run of decimal digits without a redundant leading zero.
func canonical(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
