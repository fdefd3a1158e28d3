package composer

import "errors"

// Sentinel errors for the distinct composition failure kinds. Callers match
// them with errors.Is; the wrapped message carries the document and role
// context needed to pinpoint the offending entity.
var (
	// ErrMissingBase reports a document with no base content reference.
	// Composition cannot proceed without its dependency root.
	ErrMissingBase = errors.New("missing base reference")

	// ErrDuplicateRole reports the same hardware role requested more than
	// once in a single pass. Duplicates are rejected, never deduplicated.
	ErrDuplicateRole = errors.New("duplicate hardware role")

	// ErrFragmentUnavailable reports a referenced role with no loaded
	// fragment definition. A partially composed robot description is unsafe
	// to use, so this aborts the pass instead of degrading to base-only.
	ErrFragmentUnavailable = errors.New("fragment unavailable")
)
