package pipeline

import (
	"sort"

	"github.com/nerdneilsfield/go-doc-humanizer/internal/document"
	"go.uber.org/zap"
)

// ApplyStats reports how the outcome set landed on the document.
type ApplyStats struct {
	Submitted int
	Applied   int
}

// applyOutcomes mutates the paragraphs in ascending original index order,
// regardless of the order outcomes were produced in. Successful units get
// their rewritten text plus restored formatting; failed units keep their
// original text and formatting untouched. Units that were never submitted
// have no outcome and are not visited at all.
func applyOutcomes(paras []*document.Paragraph, tasks []UnitTask, outcomes map[int]UnitOutcome, logger *zap.Logger) ApplyStats {
	ordered := make([]UnitTask, len(tasks))
	copy(ordered, tasks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	stats := ApplyStats{Submitted: len(ordered)}

	for _, task := range ordered {
		outcome, ok := outcomes[task.Index]
		if !ok {
			// Scheduler guarantees one outcome per task; a hole here
			// means the run was cut short, keep the original.
			logger.Warn("no outcome recorded for unit, keeping original",
				zap.Int("index", task.Index))
			continue
		}

		if !outcome.Success() {
			logger.Warn("keeping original text for unit",
				zap.Int("index", task.Index),
				zap.Error(outcome.Err))
			continue
		}

		para := paras[task.Index]
		if task.Snapshot != nil {
			task.Snapshot.Apply(para, outcome.Rewritten)
		} else {
			document.ReplaceParagraphText(para, outcome.Rewritten)
		}
		stats.Applied++
	}

	return stats
}
