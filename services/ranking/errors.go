package ranking

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable signals that the ranking backend could not be reached.
var ErrStoreUnavailable = errors.New("ranking store unavailable")

// SerializationError signals that a snapshot could not be converted to its
// canonical string form. Nothing is written to the ranking structure.
type SerializationError struct {
	Err error
}

func (e SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize popularity snapshot: %v", e.Err)
}

func (e SerializationError) Unwrap() error { return e.Err }

// DeserializationError signals that a stored ranking entry could not be
// decoded back into a snapshot. The whole read fails rather than dropping
// the entry.
type DeserializationError struct {
	Member string
	Err    error
}

func (e DeserializationError) Error() string {
	return fmt.Sprintf("failed to deserialize ranking entry %q: %v", e.Member, e.Err)
}

func (e DeserializationError) Unwrap() error { return e.Err }
