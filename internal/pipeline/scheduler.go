package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/nerdneilsfield/go-doc-humanizer/pkg/providers"
	"go.uber.org/zap"
)

// ProgressFunc observes unit completions and phase transitions. It must
// not influence pipeline behavior; implementations are expected to be
// safe for use from the scheduler's collection loop.
type ProgressFunc func(completed, total int, message string)

// Scheduler executes a batch of unit tasks across a bounded pool of
// workers, each invoking the shared rewriter. Workers complete in
// arbitrary order; the scheduler only guarantees one outcome per task.
type Scheduler struct {
	rewriter providers.Rewriter
	workers  int
	logger   *zap.Logger
	progress ProgressFunc
}

// NewScheduler creates a scheduler with the given pool size. A size of 1
// gives sequential processing with identical outcomes.
func NewScheduler(rewriter providers.Rewriter, workers int, logger *zap.Logger, progress ProgressFunc) *Scheduler {
	if workers <= 0 {
		workers = 4
	}
	return &Scheduler{
		rewriter: rewriter,
		workers:  workers,
		logger:   logger,
		progress: progress,
	}
}

// Run processes all tasks and returns the complete outcome map, one entry
// per submitted index. There is no early exit: a failing unit is recorded
// and the rest of the batch keeps going. Cancelling the context abandons
// queued tasks, which are recorded as failed with the context error.
func (s *Scheduler) Run(ctx context.Context, tasks []UnitTask) map[int]UnitOutcome {
	outcomes := make(map[int]UnitOutcome, len(tasks))
	if len(tasks) == 0 {
		return outcomes
	}

	taskChan := make(chan UnitTask, len(tasks))
	resultChan := make(chan UnitOutcome, len(tasks))

	for _, task := range tasks {
		taskChan <- task
	}
	close(taskChan)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for task := range taskChan {
				if err := ctx.Err(); err != nil {
					resultChan <- UnitOutcome{Index: task.Index, Err: err}
					continue
				}
				s.logger.Debug("worker picked up unit",
					zap.Int("workerID", workerID),
					zap.Int("index", task.Index))
				resultChan <- s.execute(ctx, task)
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	completed := 0
	total := len(tasks)
	for outcome := range resultChan {
		outcomes[outcome.Index] = outcome
		completed++

		if outcome.Success() {
			s.logger.Debug("unit rewritten",
				zap.Int("index", outcome.Index),
				zap.Int("completed", completed),
				zap.Int("total", total))
			s.report(completed, total, fmt.Sprintf("rewrote unit %d", outcome.Index))
		} else {
			s.logger.Warn("unit rewrite failed",
				zap.Int("index", outcome.Index),
				zap.Int("completed", completed),
				zap.Int("total", total),
				zap.Error(outcome.Err))
			s.report(completed, total, fmt.Sprintf("unit %d failed", outcome.Index))
		}
	}

	return outcomes
}

// execute runs one task in isolation. A panic or error from the rewriter
// affects only this task's outcome.
func (s *Scheduler) execute(ctx context.Context, task UnitTask) (outcome UnitOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = UnitOutcome{
				Index: task.Index,
				Err:   &UnitError{Index: task.Index, Cause: fmt.Errorf("panic during rewrite: %v", r)},
			}
		}
	}()

	rewritten, err := s.rewriter.Rewrite(ctx, task.Text)
	if err != nil {
		return UnitOutcome{Index: task.Index, Err: &UnitError{Index: task.Index, Cause: err}}
	}
	return UnitOutcome{Index: task.Index, Rewritten: rewritten}
}

func (s *Scheduler) report(completed, total int, message string) {
	if s.progress != nil {
		s.progress(completed, total, message)
	}
}
