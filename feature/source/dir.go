package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"arcade-catalog/feature/descriptor"

	"go.uber.org/zap"
)

// Dir reads descriptor files from a local directory (not recursive).
type Dir struct {
	root string
	log  *zap.Logger
}

// NewDir creates a directory source.
func NewDir(root string, log *zap.Logger) *Dir {
	return &Dir{root: root, log: log}
}

// List returns the release descriptors in the directory. Files that are not descriptors are
// ignored; descriptors with unparsable names are logged and ignored.
func (d *Dir) List(ctx context.Context) ([]Descriptor, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.root, err)
	}

	var descs []Descriptor
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !descriptor.IsDescriptor(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", e.Name(), err)
		}
		fingerprint := e.Name() + "|" + strconv.FormatInt(info.Size(), 10) + "|" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
		desc, err := named(filepath.Join(d.root, e.Name()), info.Size(), fingerprint)
		if err != nil {
			d.log.Warn("Ignoring descriptor", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// Open opens a descriptor file.
func (d *Dir) Open(_ context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", location, err)
	}
	return f, nil
}
