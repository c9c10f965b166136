package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"arcade-catalog/core/model"
	"arcade-catalog/core/storage"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LockFile is created in the output directory while an export runs.
const LockFile = ".export.lock"

var (
	// ErrOutputLocked is returned when another export holds the output directory.
	ErrOutputLocked = errors.New("output directory is locked by another export")
	// ErrNoStorage is returned when an upload is requested without a storage client.
	ErrNoStorage = errors.New("upload requested without a storage client")
)

// Result lists what an export produced.
type Result struct {
	Files   []string
	Objects []string
	Stored  bool
}

// Exporter writes renumbered tables to the configured targets.
type Exporter struct {
	cfg    Config
	db     *gorm.DB
	client storage.Client
	bucket string
	region string
	log    *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithDatabase stores the tables in db when the config enables it.
func WithDatabase(db *gorm.DB) Option {
	return func(e *Exporter) { e.db = db }
}

// WithStorage uploads produced files to bucket when the config enables it.
func WithStorage(client storage.Client, bucket, region string) Option {
	return func(e *Exporter) {
		e.client = client
		e.bucket = bucket
		e.region = region
	}
}

// New creates an Exporter.
func New(cfg Config, log *zap.Logger, opts ...Option) *Exporter {
	e := &Exporter{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run exports tables while holding the output directory lock. The manifest is always written;
// its Rows are filled from tables.
func (e *Exporter) Run(ctx context.Context, tables *model.Tables, manifest Manifest) (*Result, error) {
	if e.cfg.Upload && e.client == nil {
		return nil, ErrNoStorage
	}

	lock, err := lockDir(e.cfg.Dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			e.log.Warn("Failed to release export lock", zap.Error(err))
		}
	}()

	res := &Result{}
	if e.cfg.Database && e.db != nil {
		if err := Store(ctx, e.db, tables, e.cfg.BatchSize); err != nil {
			return nil, err
		}
		res.Stored = true
		e.log.Info("Tables stored", zap.Int("games", len(tables.Games)))
	}

	manifest.Rows = RowCounts(tables)
	file, err := WriteManifest(e.cfg.Dir, manifest)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, file)

	if e.cfg.CSV {
		files, err := WriteCSV(e.cfg.Dir, tables)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, files...)
		e.log.Info("CSV written", zap.String("dir", e.cfg.Dir), zap.Int("files", len(files)))
	}

	if e.cfg.Upload {
		if err := storage.EnsureBucket(ctx, e.client, e.bucket, e.region); err != nil {
			return nil, err
		}
		prefix := path.Join(e.cfg.UploadPrefix, manifest.RunID)
		objects, err := Upload(ctx, e.client, e.bucket, prefix, res.Files, e.log)
		if err != nil {
			return nil, err
		}
		res.Objects = objects
		e.log.Info("Export uploaded", zap.String("bucket", e.bucket), zap.String("prefix", prefix), zap.Int("objects", len(objects)))
	}
	return res, nil
}

func lockDir(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	lock := flock.New(filepath.Join(dir, LockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrOutputLocked
	}
	return lock, nil
}
