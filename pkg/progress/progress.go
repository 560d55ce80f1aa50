// Package progress provides the thread-safe progress sink the pipeline
// reports into. The sink is purely observational: it renders state, it
// never influences scheduling or application.
package progress

import (
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// Func observes unit completions and phase transitions.
type Func func(completed, total int, message string)

// Nop discards all progress updates.
func Nop(completed, total int, message string) {}

// Console renders a terminal progress bar. Safe for concurrent updates;
// all state behind one mutex.
type Console struct {
	mu      sync.Mutex
	writer  progress.Writer
	tracker *progress.Tracker
	total   int64
	stopped bool
}

// NewConsole creates a console progress renderer and starts its render
// loop.
func NewConsole() *Console {
	pw := progress.NewWriter()
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Options.PercentFormat = "%4.1f%%"
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Percentage = true
	pw.Style().Visibility.Value = true
	pw.SetUpdateFrequency(250 * time.Millisecond)
	pw.SetTrackerLength(40)
	pw.SetMessageLength(28)
	pw.SetAutoStop(false)

	go pw.Render()

	return &Console{writer: pw}
}

// Update implements Func. A change in total starts a fresh bar, which
// keeps batch runs readable: one bar per document.
func (c *Console) Update(completed, total int, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracker == nil || c.total != int64(total) || c.tracker.IsDone() {
		c.tracker = &progress.Tracker{
			Message: message,
			Total:   int64(total),
			Units:   progress.UnitsDefault,
		}
		c.total = int64(total)
		c.writer.AppendTracker(c.tracker)
	}

	if message != "" {
		c.tracker.UpdateMessage(message)
	}
	c.tracker.SetValue(int64(completed))
	if completed >= total && total > 0 {
		c.tracker.MarkAsDone()
	}
}

// Stop ends rendering. Pending output gets a moment to flush. Safe to
// call more than once; only the first call stops the writer.
func (c *Console) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	if c.tracker != nil && !c.tracker.IsDone() {
		c.tracker.MarkAsDone()
	}
	c.writer.Stop()
	time.Sleep(300 * time.Millisecond)
}
