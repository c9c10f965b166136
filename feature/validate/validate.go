package validate

import (
	"context"
	"fmt"

	"arcade-catalog/core/catalog"
	"arcade-catalog/core/lineage"
	"arcade-catalog/core/logger"
	"arcade-catalog/core/model"
	"arcade-catalog/feature/descriptor"
	"arcade-catalog/feature/source"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of validating one release descriptor.
type Result struct {
	Release model.Release
	Source  string
	Root    string
	Games   int

	ParentsOnly        int
	ChildrenAndParents int
	ChildrenOnly       int
	NoRelationships    int

	// ForwardReferences counts references to a parent that appears later in the document.
	ForwardReferences int

	Warnings []lineage.Warning
	Missing  []model.UnresolvedReference
	// Err is a load, parse or root error, or a reference cycle.
	Err error
}

// OK reports whether the release has no error, warning or missing parent.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Warnings) == 0 && len(r.Missing) == 0
}

// Run validates every job with up to workers concurrent parses. Results follow job order.
// Per-release problems are reported in the results; only cancellation fails the run.
func Run(ctx context.Context, src source.Source, jobs []catalog.Job, workers int, log *zap.Logger) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = check(gctx, src, job)
			l := logger.WithRelease(log, job.Release)
			if results[i].Err != nil {
				l.Warn("Release invalid", zap.Error(results[i].Err))
			} else {
				l.Debug("Release validated",
					zap.Int("games", results[i].Games),
					zap.Int("warnings", len(results[i].Warnings)),
					zap.Int("missing", len(results[i].Missing)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func check(ctx context.Context, src source.Source, job catalog.Job) Result {
	res := Result{Release: job.Release, Source: job.Source}

	rc, err := src.Open(ctx, job.Source)
	if err != nil {
		res.Err = err
		return res
	}
	defer rc.Close()

	stream, err := descriptor.Open(job.Source, rc)
	if err != nil {
		res.Err = err
		return res
	}
	defer stream.Close()

	var games []model.GameDescriptor
	res.Root, err = descriptor.Walk(stream, func(g model.GameDescriptor) error {
		games = append(games, g)
		return nil
	})
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", job.Source, err)
		return res
	}
	res.Games = len(games)
	res.ForwardReferences = forwardReferences(games)

	ord, err := lineage.Sort(games)
	res.ParentsOnly = ord.ParentsOnly
	res.ChildrenAndParents = ord.ChildrenAndParents
	res.ChildrenOnly = ord.ChildrenOnly
	res.NoRelationships = ord.NoRelationships
	res.Warnings = ord.Warnings
	res.Err = err

	for _, ref := range lineage.Missing(games) {
		ref.Release = job.Release.Name()
		res.Missing = append(res.Missing, ref)
	}
	return res
}

func forwardReferences(games []model.GameDescriptor) int {
	pos := make(map[string]int, len(games))
	for i, g := range games {
		if _, ok := pos[g.Name]; !ok {
			pos[g.Name] = i
		}
	}
	n := 0
	for i, g := range games {
		for _, p := range g.ParentNames() {
			if pi, ok := pos[p]; ok && pi > i {
				n++
			}
		}
	}
	return n
}
