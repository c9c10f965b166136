package source

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"arcade-catalog/core/catalog"
	"arcade-catalog/core/model"
	"arcade-catalog/feature/descriptor"

	"go.uber.org/zap"
)

// Descriptor is one release descriptor file found by a Source.
type Descriptor struct {
	// Location is the file path or object key.
	Location    string
	Product     string
	Version     string
	Size        int64
	Fingerprint string
}

// Source lists and opens descriptor files.
type Source interface {
	List(ctx context.Context) ([]Descriptor, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// named builds a Descriptor from a location, or reports why the name is not a release.
func named(location string, size int64, fingerprint string) (Descriptor, error) {
	product, version, err := descriptor.ParseReleaseName(location)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Location:    location,
		Product:     product,
		Version:     version,
		Size:        size,
		Fingerprint: fingerprint,
	}, nil
}

// Jobs orders descriptors by product and version, keeps the [start, end) window and assigns
// release sequences. Sequences are positions in the full ordering, so a window always yields
// the same sequences. An end of zero or beyond the list means "to the end".
func Jobs(descs []Descriptor, start, end int) []catalog.Job {
	sorted := slices.Clone(descs)
	slices.SortStableFunc(sorted, func(a, b Descriptor) int {
		return cmp.Or(
			cmp.Compare(a.Product, b.Product),
			descriptor.CompareVersions(a.Version, b.Version),
		)
	})

	if end <= 0 || end > len(sorted) {
		end = len(sorted)
	}
	start = max(start, 0)

	var jobs []catalog.Job
	for seq := start; seq < end; seq++ {
		d := sorted[seq]
		jobs = append(jobs, catalog.Job{
			Release:     model.Release{Product: d.Product, Version: d.Version, Seq: seq},
			Source:      d.Location,
			Fingerprint: d.Fingerprint,
		})
	}
	return jobs
}

// Loader returns a catalog loader reading jobs from src.
func Loader(src Source, log *zap.Logger) catalog.Loader {
	return catalog.LoaderFunc(func(ctx context.Context, job catalog.Job) ([]model.GameDescriptor, error) {
		rc, err := src.Open(ctx, job.Source)
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		stream, err := descriptor.Open(job.Source, rc)
		if err != nil {
			return nil, err
		}
		defer stream.Close()

		games, err := descriptor.Parse(stream)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", job.Source, err)
		}
		log.Debug("Descriptor parsed", zap.String("source", job.Source), zap.Int("games", len(games)))
		return games, nil
	})
}
