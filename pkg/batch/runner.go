package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unitedstates/uscode/pkg/model"
	"github.com/unitedstates/uscode/pkg/scheme"
	"github.com/unitedstates/uscode/pkg/tree"
)

// Runner builds section trees on a worker pool.
type Runner struct {
	cfg  Config
	log  *slog.Logger
	opts []tree.BuilderOption
}

// NewRunner creates a runner. opts are passed to every tree builder.
func NewRunner(cfg Config, log *slog.Logger, opts ...tree.BuilderOption) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{cfg: cfg, log: log, opts: opts}
}

// Run builds every section and returns the tally. Cancelling ctx stops
// dispatch; sections not yet started are reported as skipped.
func (r *Runner) Run(ctx context.Context, sections []*model.Section) *Report {
	report := &Report{
		RunID:          uuid.New().String(),
		StartedAt:      time.Now(),
		TotalAttempted: len(sections),
		Entries:        make([]Entry, len(sections)),
	}
	for i := range report.Entries {
		report.Entries[i] = Entry{Index: i, Status: StatusSkipped}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := r.log.With("run_id", report.RunID)
	log.Info("batch started", "sections", len(sections), "workers", r.cfg.Workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range r.cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				entry := r.build(i, sections[i], log)
				report.Entries[i] = entry
				if entry.Status == StatusFailed && r.cfg.FailFast {
					cancel()
				}
			}
		}()
	}

dispatch:
	for i := range sections {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i := range report.Entries {
		entry := &report.Entries[i]
		switch entry.Status {
		case StatusBuilt:
			report.Succeeded++
			report.TotalNodes += entry.Nodes
		case StatusSkipped:
			entry.Section, _ = sections[i].Number()
			report.Skipped++
		case StatusFailed:
			report.Failed++
		}
	}
	report.Duration = time.Since(report.StartedAt)

	log.Info("batch finished",
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration", report.Duration)
	return report
}

func (r *Runner) build(i int, section *model.Section, log *slog.Logger) Entry {
	entry := Entry{Index: i}

	number, err := section.Number()
	if err != nil {
		return failed(entry, err, log)
	}
	entry.Section = number

	items, err := section.Items()
	if err != nil {
		return failed(entry, err, log)
	}
	builder := tree.NewBuilder(items, append([]tree.BuilderOption{tree.WithLogger(log)}, r.opts...)...)
	t, err := builder.Build()
	if err != nil {
		return failed(entry, fmt.Errorf("section %s: %w", number, err), log)
	}

	fingerprint, err := t.Fingerprint()
	if err != nil {
		return failed(entry, err, log)
	}

	entry.Status = StatusBuilt
	entry.Nodes = t.Len() - 1
	entry.Fingerprint = fingerprint
	entry.Unresolved = builder.PendingFootnotes()
	if len(entry.Unresolved) > 0 {
		log.Warn("unresolved footnotes", "section", number, "footnotes", entry.Unresolved)
	}
	return entry
}

func failed(entry Entry, err error, log *slog.Logger) Entry {
	entry.Status = StatusFailed
	entry.Category = Categorize(err)
	entry.Error = err.Error()
	log.Warn("section failed", "index", entry.Index, "section", entry.Section, "category", entry.Category, "error", err)
	return entry
}

// Categorize names the failure class of a build error.
func Categorize(err error) string {
	switch {
	case errors.Is(err, scheme.ErrUnrecognizedToken), errors.Is(err, scheme.ErrUnrecognizedScheme):
		return CategoryClassification
	case errors.Is(err, tree.ErrPlacement):
		return CategoryPlacement
	case errors.Is(err, model.ErrFormat):
		return CategoryFormat
	default:
		return CategoryOther
	}
}
