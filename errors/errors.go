// Package errors holds the sentinel errors shared by the stash packages, plus a small
// accumulator for collecting errors from several independent operations.
package errors

import "errors"

var (
	// ErrIndexOverflow means a slot position does not fit the key type chosen for a table.
	// Tables panic with an error wrapping it, before any state is modified.
	ErrIndexOverflow = errors.New("slot index overflows key type")

	// ErrTagParse is wrapped by every error returned when parsing a malformed tag.
	ErrTagParse = errors.New("failed to parse tag")

	// ErrInvalidSnapshot is wrapped by every error returned when decoding a malformed
	// table snapshot.
	ErrInvalidSnapshot = errors.New("invalid stash snapshot")
)

// Collection is a thread-unsafe utility for accumulating multiple errors.
// It provides methods to add errors, check for errors, and retrieve them as a single combined error.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are automatically ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear removes all errors from the collection, resetting it to an empty state.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only one,
// or a joined error (using errors.Join) if there are multiple errors.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
