package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"arcade-catalog/core/identity"
	"arcade-catalog/core/logger"
	"arcade-catalog/core/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job is one release waiting to be processed.
type Job struct {
	Release model.Release
	// Source names where the descriptors come from (file path or object key).
	Source string
	// Fingerprint changes whenever the source content may have changed. Empty disables caching.
	Fingerprint string
}

// Loader materialises a job's descriptors.
type Loader interface {
	Load(ctx context.Context, job Job) ([]model.GameDescriptor, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, job Job) ([]model.GameDescriptor, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, job Job) ([]model.GameDescriptor, error) {
	return f(ctx, job)
}

// Batch is a processed release as kept by a BatchCache.
type Batch struct {
	Snapshot Snapshot      `json:"snapshot"`
	Report   ReleaseReport `json:"report"`
}

// BatchCache stores processed releases by fingerprint so unchanged sources are not rebuilt.
type BatchCache interface {
	Get(fingerprint string) (*Batch, bool, error)
	Put(fingerprint string, batch *Batch) error
}

// Option configures a Builder.
type Option func(*Builder)

// WithCache makes the builder consult and fill cache.
func WithCache(cache BatchCache) Option {
	return func(b *Builder) { b.cache = cache }
}

// Builder processes releases concurrently and folds them into one dataset.
type Builder struct {
	cfg      Config
	loader   Loader
	log      *zap.Logger
	cache    BatchCache
	watchdog *Watchdog
}

// NewBuilder creates a builder.
func NewBuilder(cfg Config, loader Loader, log *zap.Logger, opts ...Option) *Builder {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	b := &Builder{
		cfg:      cfg,
		loader:   loader,
		log:      log,
		watchdog: NewWatchdog(cfg.MemoryWarnPercent, log),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type result struct {
	job     Job
	dataset *Dataset
	report  ReleaseReport
	err     error
	// fatal marks err as aborting the whole build.
	fatal bool
}

// Build processes every job and returns the merged dataset. A release that fails to load is
// skipped and reported. A hash collision, or ctx being cancelled, aborts the build.
func (b *Builder) Build(ctx context.Context, jobs []Job) (*Dataset, *Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	master := NewDataset()
	report := &Report{}
	jobs, report.Skipped = b.dedupe(jobs)
	results := make(chan result)

	// Single writer: only this goroutine touches master and report
	folded := make(chan error, 1)
	go func() {
		folded <- b.fold(master, report, results, cancel)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := b.process(gctx, job)
			select {
			case results <- res:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	werr := g.Wait()
	close(results)

	if err := <-folded; err != nil {
		return nil, report, err
	}
	if werr != nil {
		return nil, report, werr
	}
	if err := ctx.Err(); err != nil {
		return nil, report, err
	}

	report.sort()
	report.Totals = master.Counts()
	return master, report, nil
}

// dedupe keys the jobs and keeps the lowest sequence of every product version. The others are
// returned as skipped releases.
func (b *Builder) dedupe(jobs []Job) ([]Job, []SkippedRelease) {
	jobs = slices.Clone(jobs)
	winner := make(map[model.ContentHash]int, len(jobs))
	for i := range jobs {
		rel := &jobs[i].Release
		if rel.Key == "" {
			rel.Key = identity.ReleaseKey(rel.Product, rel.Version)
		}
		if w, ok := winner[rel.Key]; !ok || rel.Seq < jobs[w].Release.Seq {
			winner[rel.Key] = i
		}
	}

	kept := make([]Job, 0, len(winner))
	var skipped []SkippedRelease
	for i, job := range jobs {
		w := winner[job.Release.Key]
		if i == w {
			kept = append(kept, job)
			continue
		}
		err := fmt.Errorf("%w: %s already read from %s", ErrDuplicateRelease, job.Release.Name(), jobs[w].Source)
		logger.WithRelease(b.log, job.Release).Warn("Skipping release", zap.String("source", job.Source), zap.Error(err))
		skipped = append(skipped, SkippedRelease{Release: job.Release, Source: job.Source, Error: err.Error()})
	}
	return kept, skipped
}

// fold merges results into master until results is closed. After a fatal error it keeps
// draining so workers never block.
func (b *Builder) fold(master *Dataset, report *Report, results <-chan result, cancel context.CancelFunc) error {
	var fatal error
	for res := range results {
		if fatal != nil {
			continue
		}
		log := logger.WithRelease(b.log, res.job.Release)

		if res.fatal {
			fatal = fmt.Errorf("process %s: %w", res.job.Release.Name(), res.err)
			log.Error("Release processing failed", zap.Error(res.err))
			cancel()
			continue
		}
		if res.err != nil {
			log.Warn("Skipping release", zap.String("source", res.job.Source), zap.Error(res.err))
			report.Skipped = append(report.Skipped, SkippedRelease{
				Release: res.job.Release,
				Source:  res.job.Source,
				Error:   res.err.Error(),
			})
			continue
		}

		if err := master.Merge(res.dataset); err != nil {
			fatal = fmt.Errorf("merge %s: %w", res.job.Release.Name(), err)
			log.Error("Merge failed", zap.Error(err))
			cancel()
			continue
		}
		counts := res.dataset.Counts()
		res.dataset.Reset()
		report.Releases = append(report.Releases, res.report)

		log.Info("Release folded",
			zap.Int("games", res.report.Games),
			zap.Int("indexed", res.report.Indexed),
			zap.Int("links", counts.Links),
			zap.Int("unresolved", len(res.report.Unresolved)),
			zap.Bool("cached", res.report.Cached),
		)
		b.watchdog.Check(res.job.Release.Name())
	}
	return fatal
}

// process loads and indexes one release. It touches no shared state.
func (b *Builder) process(ctx context.Context, job Job) result {
	log := logger.WithRelease(b.log, job.Release)
	res := result{job: job}

	if b.cache != nil && job.Fingerprint != "" {
		batch, ok, err := b.cache.Get(job.Fingerprint)
		if err != nil {
			log.Warn("Cache lookup failed", zap.Error(err))
		} else if ok {
			res.dataset = RestoreDataset(batch.Snapshot)
			res.dataset.rebase(job.Release.Seq)
			res.report = batch.Report
			res.report.Release = job.Release
			res.report.Cached = true
			return res
		}
	}

	games, err := b.loader.Load(ctx, job)
	if err != nil {
		res.err = err
		return res
	}

	ds, rep, err := ProcessRelease(model.ReleaseInput{Release: job.Release, Games: games})
	if err != nil {
		res.err = err
		res.fatal = errors.Is(err, ErrHashCollision)
		return res
	}
	if rep.LineageError != "" {
		log.Warn("Reference resolution skipped", zap.String("reason", rep.LineageError))
	}
	for _, w := range rep.Warnings {
		log.Debug("Lineage warning", zap.String("warning", w.String()))
	}

	if b.cache != nil && job.Fingerprint != "" {
		if err := b.cache.Put(job.Fingerprint, &Batch{Snapshot: ds.Snapshot(), Report: rep}); err != nil {
			log.Warn("Cache store failed", zap.Error(err))
		}
	}

	res.dataset = ds
	res.report = rep
	return res
}
