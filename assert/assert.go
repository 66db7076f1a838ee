// Package assert provides invariant assertions for the stash packages.
//
// Assertions panic when violated. Building with -tags assertions_disabled compiles them
// out, which turns the unchecked table accessors into genuinely unchecked code paths.
package assert

// Enabled reports whether assertions are compiled in.
func Enabled() bool {
	return enabled
}
