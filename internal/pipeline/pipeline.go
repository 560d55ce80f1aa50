package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nerdneilsfield/go-doc-humanizer/internal/document"
	"github.com/nerdneilsfield/go-doc-humanizer/internal/score"
	"github.com/nerdneilsfield/go-doc-humanizer/pkg/providers"
	"go.uber.org/zap"
)

// Options configures a pipeline.
type Options struct {
	// Workers bounds the concurrent rewrites; 1 forces sequential mode.
	Workers int

	// PreserveFormatting captures and reapplies paragraph formatting.
	// When off, rewritten text replaces the paragraph wholesale.
	PreserveFormatting bool
}

// Pipeline drives one document through extraction, scheduling, result
// application and persistence. A pipeline is reusable across documents;
// each Run owns its document exclusively.
type Pipeline struct {
	rewriter providers.Rewriter
	opts     Options
	logger   *zap.Logger
	progress ProgressFunc
}

// Result summarizes one document run.
type Result struct {
	RunID     string
	Input     string
	Output    string
	Submitted int
	Applied   int
	Cells     int
	CellsDone int
	// ChangeRatio is the mean rewrite distance across applied units,
	// 0 when nothing was applied. Display only.
	ChangeRatio float64
	Duration    time.Duration
}

// New creates a pipeline around the given rewriter.
func New(rewriter providers.Rewriter, opts Options, logger *zap.Logger, progress ProgressFunc) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Pipeline{
		rewriter: rewriter,
		opts:     opts,
		logger:   logger,
		progress: progress,
	}
}

// DeriveOutputPath returns the default output location for an input
// document: the same directory, with an _edited suffix before the
// extension.
func DeriveOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+"_edited"+ext)
}

// Run processes a single document. The returned error is fatal for this
// document only: ErrInterrupted when the context was cancelled before
// results could be applied, document.ErrNotFound / ErrInvalidFormat from
// loading, or an I/O error from persisting. Per-unit failures never
// surface here; they degrade the unit to its original text.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	start := time.Now()
	if outputPath == "" {
		outputPath = DeriveOutputPath(inputPath)
	}

	result := &Result{
		RunID:  uuid.NewString(),
		Input:  inputPath,
		Output: outputPath,
	}
	log := p.logger.With(zap.String("runID", result.RunID), zap.String("input", inputPath))

	// Loaded
	doc, err := document.Open(inputPath, log)
	if err != nil {
		return nil, err
	}

	// UnitsExtracted
	paras := doc.BodyParagraphs()
	tasks := p.extractTasks(paras)
	result.Submitted = len(tasks)
	log.Info("units extracted",
		zap.Int("paragraphs", len(paras)),
		zap.Int("submitted", len(tasks)),
		zap.Int("workers", p.opts.Workers))
	p.report(0, len(tasks), "processing units")

	// Scheduled
	scheduler := NewScheduler(p.rewriter, p.opts.Workers, log, p.progress)
	outcomes := scheduler.Run(ctx, tasks)

	if err := ctx.Err(); err != nil {
		log.Warn("run interrupted before applying results")
		return nil, fmt.Errorf("%w: %v", ErrInterrupted, err)
	}

	// Applied
	stats := applyOutcomes(paras, tasks, outcomes, log)
	result.Applied = stats.Applied
	result.ChangeRatio = meanChangeRatio(tasks, outcomes)
	p.report(stats.Applied, stats.Submitted, "applied results")

	// Table cells run as a separate sequential pass; volume is small and
	// a failure on one cell is contained to that cell.
	if err := p.processCells(ctx, doc, result, log); err != nil {
		return nil, err
	}

	// Persisted
	if err := document.Save(doc, outputPath); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	log.Info("document processed",
		zap.String("output", outputPath),
		zap.Int("applied", result.Applied),
		zap.Int("submitted", result.Submitted),
		zap.Float64("changeRatio", result.ChangeRatio),
		zap.Duration("duration", result.Duration))
	p.report(result.Applied, result.Submitted, "saved "+filepath.Base(outputPath))

	return result, nil
}

// RunBatch processes documents one after another. A failure in one
// document is logged and the batch continues; only an interrupt stops
// the whole batch. Returns the results of the documents that finished.
func (p *Pipeline) RunBatch(ctx context.Context, inputs []string) ([]*Result, error) {
	var results []*Result
	for i, input := range inputs {
		p.logger.Info("processing file",
			zap.Int("current", i+1),
			zap.Int("total", len(inputs)),
			zap.String("input", input))

		result, err := p.Run(ctx, input, "")
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				return results, err
			}
			p.logger.Error("failed to process document",
				zap.String("input", input),
				zap.Error(err))
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// extractTasks builds unit tasks from the non-blank paragraphs, keeping
// original indices for reassembly. Blank paragraphs are never submitted.
func (p *Pipeline) extractTasks(paras []*document.Paragraph) []UnitTask {
	var tasks []UnitTask
	for i, para := range paras {
		if document.IsBlank(para) {
			continue
		}
		task := UnitTask{Index: i, Text: document.ParagraphText(para)}
		if p.opts.PreserveFormatting {
			task.Snapshot = document.Capture(para)
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// processCells rewrites table-cell paragraphs sequentially. Formatting
// snapshots are not taken here; cell text is replaced in place and a
// failed cell keeps its original text.
func (p *Pipeline) processCells(ctx context.Context, doc *document.File, result *Result, log *zap.Logger) error {
	cells := doc.CellParagraphs()
	for i, para := range cells {
		if document.IsBlank(para) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrInterrupted, err)
		}

		result.Cells++
		text := document.ParagraphText(para)
		rewritten, err := p.rewriter.Rewrite(ctx, text)
		if err != nil {
			log.Warn("keeping original text for table cell",
				zap.Int("cell", i),
				zap.Error(err))
			continue
		}
		document.ReplaceParagraphText(para, rewritten)
		result.CellsDone++
	}
	return nil
}

// meanChangeRatio averages the rewrite distance over successful units.
func meanChangeRatio(tasks []UnitTask, outcomes map[int]UnitOutcome) float64 {
	var sum float64
	var n int
	for _, task := range tasks {
		outcome, ok := outcomes[task.Index]
		if !ok || !outcome.Success() {
			continue
		}
		sum += score.ChangeRatio(task.Text, outcome.Rewritten)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (p *Pipeline) report(completed, total int, message string) {
	if p.progress != nil {
		p.progress(completed, total, message)
	}
}
