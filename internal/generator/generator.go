package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/doctags/doctags-mcp/internal/config"
	"github.com/doctags/doctags-mcp/internal/discovery"
	"github.com/doctags/doctags-mcp/internal/extractor"
	"github.com/doctags/doctags-mcp/internal/index"
	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/internal/storage"
	"github.com/doctags/doctags-mcp/pkg/types"
)

// ErrGenerationInProgress is returned when a Generate call overlaps an
// already-running one on the same Generator.
var ErrGenerationInProgress = errors.New("tag generation already in progress")

// Generator coordinates the pipeline: discover -> extract -> merge -> write
type Generator struct {
	cfg       *config.Config
	extractor *extractor.Extractor
	writer    *index.Writer
	catalog   storage.Catalog // may be nil; catalog updates are best-effort
	notifier  notify.Notifier

	lock RunLock
}

// Options contains per-run configuration for the generator
type Options struct {
	// IncludeIndexTag forces the self-referential help-tags entry into
	// every generated index. The primary root self-registers regardless.
	IncludeIndexTag bool

	// Workers caps concurrent file extraction (default: config value,
	// then runtime.NumCPU()).
	Workers int
}

// Statistics contains statistics about one generation run
type Statistics struct {
	RootsProcessed   int
	FilesScanned     int
	FilesFailed      int
	TagsExtracted    int
	IndexesWritten   int
	IndexesSkipped   int
	DuplicateTargets int // targets whose write was suppressed by duplicates
	Duration         time.Duration
	Errors           []string
}

// New creates a Generator. catalog may be nil to disable the tag catalog.
func New(cfg *config.Config, catalog storage.Catalog, notifier notify.Notifier) *Generator {
	return &Generator{
		cfg:       cfg,
		extractor: extractor.New(notifier),
		writer:    index.NewWriter(notifier),
		catalog:   catalog,
		notifier:  notifier,
	}
}

// Generate builds the tag indexes for root, or for every registered root
// when root is the ALL sentinel. It blocks until the whole tree of
// per-root and per-language pipelines has completed.
//
// Failures are contained: an unreadable file degrades to a diagnostic
// plus zero tags, a duplicate-laden target skips its own write, and an
// unwritable target is recorded in Statistics.Errors. None of them stop
// sibling targets. The returned error covers run-level conditions only
// (unresolvable root, overlapping run, cancellation).
func (g *Generator) Generate(ctx context.Context, root string, opts *Options) (*Statistics, error) {
	if opts == nil {
		opts = &Options{}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = g.cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if !g.lock.TryAcquire() {
		return nil, ErrGenerationInProgress
	}
	defer g.lock.Release()

	roots, err := g.resolveRoots(root)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	run := &run{
		gen:             g,
		includeIndexTag: opts.IncludeIndexTag,
		semaphore:       make(chan struct{}, workers),
		stats:           &Statistics{},
	}

	eg, gctx := errgroup.WithContext(ctx)
	for _, r := range roots {
		eg.Go(func() error {
			return run.generateRoot(gctx, r)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	run.stats.RootsProcessed = len(roots)
	run.stats.FilesScanned = int(run.scanned.Load())
	run.stats.FilesFailed = int(run.failed.Load())
	run.stats.TagsExtracted = int(run.extracted.Load())
	run.stats.Duration = time.Since(startTime)
	return run.stats, nil
}

// resolveRoots expands the ALL sentinel to the registered roots
func (g *Generator) resolveRoots(root string) ([]string, error) {
	if root != types.AllRoots {
		return []string{root}, nil
	}
	if len(g.cfg.Roots) == 0 {
		return nil, errors.New("no documentation roots registered")
	}
	return g.cfg.Roots, nil
}

// run carries the shared state of one Generate invocation
type run struct {
	gen             *Generator
	includeIndexTag bool
	semaphore       chan struct{}

	scanned   atomic.Int32
	failed    atomic.Int32
	extracted atomic.Int32

	mu    sync.Mutex // protects stats
	stats *Statistics
}

// generateRoot drives the primary and per-language pipelines of one root.
// The pipelines are independent and run concurrently.
func (r *run) generateRoot(ctx context.Context, root string) error {
	set, err := discovery.Discover(root)
	if err != nil {
		r.gen.notifier.Notify(fmt.Sprintf("Skipping %s: %v", root, err), notify.SeverityError)
		r.recordError(err.Error())
		return nil
	}

	// The primary root always self-registers its own tag file.
	includeIndexTag := r.includeIndexTag || root == r.gen.cfg.PrimaryRoot

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return r.generateTarget(gctx, root, "", set.Primary, includeIndexTag)
	})
	for _, lang := range set.Languages() {
		files := set.Translated[lang]
		eg.Go(func() error {
			return r.generateTarget(gctx, root, lang, files, includeIndexTag)
		})
	}
	return eg.Wait()
}

// generateTarget extracts one file group concurrently, joins the results,
// and writes a single index file. lang is empty for the primary target.
func (r *run) generateTarget(ctx context.Context, root, lang string, files []string, includeIndexTag bool) error {
	if len(files) == 0 {
		// No input, no index file. Deliberately not even an empty one.
		return nil
	}

	lists := make([][]types.Tag, len(files))
	eg, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		eg.Go(func() error {
			select {
			case r.semaphore <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-r.semaphore }()

			tags, err := r.gen.extractor.ExtractFile(file)
			r.scanned.Add(1)
			if err != nil {
				// Already notified; the file contributes zero tags.
				r.failed.Add(1)
				return nil
			}
			r.extracted.Add(int32(len(tags)))
			lists[i] = tags
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	merged, hasDuplicates := index.Build(lists, includeIndexTag, r.gen.notifier)

	outPath := filepath.Join(root, types.IndexFileName)
	if lang != "" {
		outPath = filepath.Join(root, types.IndexFileName+"-"+lang)
	}

	written, err := r.gen.writer.Write(merged, hasDuplicates, outPath)
	r.mu.Lock()
	switch {
	case err != nil:
		r.stats.Errors = append(r.stats.Errors, err.Error())
	case written:
		r.stats.IndexesWritten++
	default:
		r.stats.IndexesSkipped++
	}
	if hasDuplicates {
		r.stats.DuplicateTargets++
	}
	r.mu.Unlock()

	if err != nil {
		// Fatal for this target only; siblings keep going.
		r.gen.notifier.Notify(err.Error(), notify.SeverityError)
		return nil
	}

	if written && r.gen.catalog != nil {
		if cerr := r.gen.catalog.ReplaceTags(ctx, root, lang, merged); cerr != nil {
			r.gen.notifier.Notify(fmt.Sprintf("Tag catalog update failed for %s: %v", outPath, cerr), notify.SeverityWarn)
		}
	}
	return nil
}

func (r *run) recordError(msg string) {
	r.mu.Lock()
	r.stats.Errors = append(r.stats.Errors, msg)
	r.mu.Unlock()
}
