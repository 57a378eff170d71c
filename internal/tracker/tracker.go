// Package tracker owns the requirement and delivery snapshots and produces
// progress rows from them. Each snapshot is an immutable map swapped behind
// an atomic pointer: rebuilds replace it wholesale on success and leave the
// previous one in place on failure, so readers never see a half-built map.
package tracker

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/djglass/ed-colony-construction-tracker/internal/commodity"
	"github.com/djglass/ed-colony-construction-tracker/internal/journal"
	"github.com/djglass/ed-colony-construction-tracker/internal/ocr"
	"github.com/djglass/ed-colony-construction-tracker/internal/progress"
	"github.com/djglass/ed-colony-construction-tracker/internal/requirements"
)

// Tracker reconciles the two input pipelines: screenshot requirements and
// journal deliveries. The pipelines are independent and may rebuild
// concurrently; reconciliation only ever reads completed snapshots.
type Tracker struct {
	recognizer ocr.Recognizer
	parser     requirements.Parser
	scanner    *journal.Scanner
	log        *zap.Logger

	requirements atomic.Pointer[map[commodity.Name]int]
	deliveries   atomic.Pointer[map[commodity.Name]int]
}

// New builds a tracker with empty snapshots.
func New(rec ocr.Recognizer, scanner *journal.Scanner, log *zap.Logger) *Tracker {
	t := &Tracker{
		recognizer: rec,
		parser:     requirements.NewParser(),
		scanner:    scanner,
		log:        log,
	}
	empty := map[commodity.Name]int{}
	t.requirements.Store(&empty)
	t.deliveries.Store(&empty)
	return t
}

// LoadScreenshots OCRs the images and replaces the requirement map. Per-image
// recognition failures come back as warnings and never abort the load; the
// map is rebuilt from whatever lines were recognized.
func (t *Tracker) LoadScreenshots(ctx context.Context, paths []string) []ocr.Warning {
	log := t.log.With(zap.String("scan_id", uuid.NewString()))

	lines, warnings := ocr.ExtractLines(ctx, t.recognizer, paths)
	for _, w := range warnings {
		log.Warn("screenshot recognition failed",
			zap.String("path", w.Path), zap.Error(w.Err))
	}

	req := t.parser.Parse(lines)
	t.requirements.Store(&req)
	log.Info("requirements rebuilt",
		zap.Int("images", len(paths)),
		zap.Int("lines", len(lines)),
		zap.Int("commodities", len(req)))
	return warnings
}

// ScanJournal rebuilds the delivery map from the journal directory. On error
// the previous snapshot is retained.
func (t *Tracker) ScanJournal(ctx context.Context) error {
	log := t.log.With(zap.String("scan_id", uuid.NewString()))

	deliveries, err := t.scanner.Scan(ctx)
	if err != nil {
		log.Error("journal scan failed, keeping previous deliveries", zap.Error(err))
		return err
	}
	t.deliveries.Store(&deliveries)
	log.Info("deliveries rebuilt", zap.Int("commodities", len(deliveries)))
	return nil
}

// Refresh rebuilds both maps concurrently and waits for both to finish before
// returning, so a following Rows call sees a consistent pair.
func (t *Tracker) Refresh(ctx context.Context, imagePaths []string) ([]ocr.Warning, error) {
	var warnings []ocr.Warning
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		warnings = t.LoadScreenshots(ctx, imagePaths)
		return nil
	})
	g.Go(func() error {
		return t.ScanJournal(ctx)
	})
	return warnings, g.Wait()
}

// Rows reconciles the current snapshots under the given filter.
func (t *Tracker) Rows(filter progress.Filter) []progress.Row {
	return progress.Reconcile(*t.requirements.Load(), *t.deliveries.Load(), filter)
}

// RequirementCount reports how many commodities the current project needs.
func (t *Tracker) RequirementCount() int {
	return len(*t.requirements.Load())
}
