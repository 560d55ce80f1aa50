package pipeline

import (
	"errors"
	"fmt"
)

// ErrInterrupted means the run was cancelled before results could be
// applied; the document was left in its original state and nothing was
// persisted.
var ErrInterrupted = errors.New("processing interrupted")

// UnitError scopes a backend failure to a single unit. It never escapes
// the unit: the applier keeps the original text and the run continues.
type UnitError struct {
	Index int
	Cause error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %d: %v", e.Index, e.Cause)
}

func (e *UnitError) Unwrap() error {
	return e.Cause
}
