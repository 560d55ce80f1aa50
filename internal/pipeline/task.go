package pipeline

import (
	"github.com/nerdneilsfield/go-doc-humanizer/internal/document"
)

// UnitTask is one scheduled unit of work: the paragraph's position, its
// source text, and the formatting snapshot to reapply on success. Created
// during extraction, consumed by exactly one worker.
type UnitTask struct {
	Index    int
	Text     string
	Snapshot *document.Snapshot
}

// UnitOutcome is the recorded result of processing one unit. Exactly one
// outcome exists per submitted task, success or not.
type UnitOutcome struct {
	Index     int
	Rewritten string
	Err       error
}

// Success reports whether the unit was rewritten.
func (o UnitOutcome) Success() bool {
	return o.Err == nil
}
