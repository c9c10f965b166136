package cmd

import (
	"arcade-catalog/core/config"
	"arcade-catalog/core/storage"
	"arcade-catalog/core/utils"
	"arcade-catalog/feature/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sourceFlags are shared by build and validate.
type sourceFlags struct {
	dir          string
	bucketPrefix string
	start        int
	end          int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.dir, "source-dir", "", "Read descriptor files from this local directory")
	flags.StringVar(&f.bucketPrefix, "bucket-prefix", "", "Read descriptor files below this bucket prefix")
	flags.IntVar(&f.start, "start", -1, "Index of the first release to process, in version order")
	flags.IntVar(&f.end, "end", -1, "Index after the last release to process (0 means all)")
}

// apply overrides the source configuration with the flags that were set.
func (f *sourceFlags) apply(cfg *source.Config) {
	if f.bucketPrefix != "" {
		// An explicit prefix selects the bucket unless a directory flag is given too
		cfg.Dir = ""
		cfg.BucketPrefix = f.bucketPrefix
	}
	cfg.Dir = utils.FirstNonEmpty(f.dir, cfg.Dir)
	if f.start >= 0 {
		cfg.Start = f.start
	}
	if f.end >= 0 {
		cfg.End = f.end
	}
}

// lazyStorage creates the storage client on first use.
type lazyStorage struct {
	cfg    *config.Config
	client storage.Client
}

func (l *lazyStorage) get() (storage.Client, error) {
	if l.client != nil {
		return l.client, nil
	}
	client, err := storage.NewClient(l.cfg.Storage)
	if err != nil {
		return nil, err
	}
	l.client = client
	return client, nil
}

// openSource returns the configured descriptor source.
func openSource(cfg *config.Config, store *lazyStorage, logg *zap.Logger) (source.Source, error) {
	if cfg.Source.Dir != "" {
		logg.Info("Reading descriptors from directory", zap.String("dir", cfg.Source.Dir))
		return source.NewDir(cfg.Source.Dir, logg), nil
	}
	client, err := store.get()
	if err != nil {
		return nil, err
	}
	logg.Info("Reading descriptors from bucket",
		zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Source.BucketPrefix))
	return source.NewBucket(client, cfg.Storage.Bucket, cfg.Source.BucketPrefix, logg), nil
}
