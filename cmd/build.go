package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arcade-catalog/core/catalog"
	"arcade-catalog/core/config"
	"arcade-catalog/core/database"
	"arcade-catalog/core/logger"
	"arcade-catalog/core/model"
	"arcade-catalog/core/reconcile"
	"arcade-catalog/feature/export"
	"arcade-catalog/feature/ledger"
	"arcade-catalog/feature/report"
	"arcade-catalog/feature/source"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	buildSource  sourceFlags
	buildOut     string
	buildCSV     bool
	buildUpload  bool
	buildNoDB    bool
	buildWorkers int
	buildLedger  string
	buildMaxRows int
	buildDiff    bool
)

// buildCmd builds the catalog from every descriptor file and exports it.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the catalog from release descriptor files",
	Long: `Parses every release descriptor (local directory or storage bucket), merges the releases
into one content-addressed catalog, renumbers it into relational tables and exports them.

Examples:
  # Build from a local directory into the configured database
  build --source-dir ./dats

  # Build releases 10 to 19 only, write CSV files and upload them
  build --source-dir ./dats --start 10 --end 20 --csv --upload

  # Reuse unchanged releases from a previous run
  build --ledger .ledger`,
	RunE: runBuild,
}

func init() {
	buildSource.register(buildCmd)
	flags := buildCmd.Flags()
	flags.StringVar(&buildOut, "out", "", "Output directory for the manifest and CSV files")
	flags.BoolVar(&buildCSV, "csv", false, "Write one CSV file per table")
	flags.BoolVar(&buildUpload, "upload", false, "Upload the produced files to the storage bucket")
	flags.BoolVar(&buildNoDB, "no-db", false, "Do not store the tables in the database")
	flags.IntVar(&buildWorkers, "workers", 0, "Number of releases processed concurrently")
	flags.StringVar(&buildLedger, "ledger", "", "Ledger directory for incremental builds")
	flags.IntVar(&buildMaxRows, "max-rows", 50, "Maximum rows printed per findings table (0 prints all)")
	flags.BoolVar(&buildDiff, "diff", false, "Compare the built games with the stored catalog before replacing it")

	RootCmd.AddCommand(buildCmd)
}

// applyBuildFlags overrides the configuration with the flags that were set.
func applyBuildFlags(cfg *config.Config) {
	buildSource.apply(&cfg.Source)
	if buildOut != "" {
		cfg.Export.Dir = buildOut
	}
	if buildCSV {
		cfg.Export.CSV = true
	}
	if buildUpload {
		cfg.Export.Upload = true
	}
	if buildNoDB {
		cfg.Export.Database = false
	}
	if buildWorkers > 0 {
		cfg.Build.Workers = buildWorkers
	}
	if buildLedger != "" {
		cfg.Ledger.Path = buildLedger
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	startTime := time.Now()

	cfg, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()
	applyBuildFlags(cfg)

	runID := uuid.NewString()
	logg = logger.WithRun(logg, runID)

	store := &lazyStorage{cfg: cfg}
	src, err := openSource(cfg, store, logg)
	if err != nil {
		return err
	}
	descs, err := src.List(ctx)
	if err != nil {
		return err
	}
	jobs := source.Jobs(descs, cfg.Source.Start, cfg.Source.End)
	if len(jobs) == 0 {
		return errors.New("no release descriptors to build")
	}
	logg.Info("Build started", zap.Int("releases", len(jobs)), zap.Int("found", len(descs)), zap.Int("workers", cfg.Build.Workers))

	var opts []catalog.Option
	if cfg.Ledger.Enabled() {
		l, err := ledger.Open(cfg.Ledger, logg)
		if err != nil {
			return err
		}
		defer l.Close()
		opts = append(opts, catalog.WithCache(l))
		defer pruneLedger(l, descs, logg)
	}

	builder := catalog.NewBuilder(cfg.Build, source.Loader(src, logg), logg, opts...)
	master, rep, err := builder.Build(ctx, jobs)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	tables, err := catalog.Renumber(master)
	if err != nil {
		return fmt.Errorf("renumber failed: %w", err)
	}

	var db *gorm.DB
	if cfg.Export.Database || buildDiff {
		if db, err = database.Connect(cfg.Database); err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	out := cmd.OutOrStdout()
	if buildDiff {
		results, err := reconcile.DiffGames(ctx, db, tables)
		if err != nil {
			return err
		}
		summary := reconcile.Summarize(results)
		logg.Info("Catalog diff",
			zap.Int("added", summary.Added),
			zap.Int("removed", summary.Removed),
			zap.Int("changed", summary.Changed))
		if err := report.WriteDiff(out, summary, reconcile.Differences(results), report.Options{MaxRows: buildMaxRows}); err != nil {
			return err
		}
	}

	res, err := exportTables(ctx, cfg, db, store, tables, manifestFor(runID, rep), logg)
	if err != nil {
		return err
	}

	if err := report.WriteBuild(out, rep, report.Options{MaxRows: buildMaxRows}); err != nil {
		return err
	}

	logg.Info("Build completed",
		zap.Int("releases", len(rep.Releases)),
		zap.Int("skipped", len(rep.Skipped)),
		zap.Int("games", rep.Totals.Games),
		zap.Int("files", len(res.Files)),
		zap.Bool("stored", res.Stored),
		zap.Duration("execution_time", time.Since(startTime)),
	)
	if len(rep.Skipped) > 0 {
		logg.Warn("Some releases were skipped", zap.Int("skipped", len(rep.Skipped)))
	}
	return nil
}

func manifestFor(runID string, rep *catalog.Report) export.Manifest {
	m := export.Manifest{
		RunID:     runID,
		CreatedAt: time.Now().UTC(),
		Totals:    rep.Totals,
	}
	for _, r := range rep.Releases {
		m.Releases = append(m.Releases, r.Release.Name())
	}
	for _, s := range rep.Skipped {
		m.Skipped = append(m.Skipped, s.Release.Name())
	}
	return m
}

func exportTables(ctx context.Context, cfg *config.Config, db *gorm.DB, store *lazyStorage, tables *model.Tables, m export.Manifest, logg *zap.Logger) (*export.Result, error) {
	var opts []export.Option
	if db != nil {
		opts = append(opts, export.WithDatabase(db))
	}
	if cfg.Export.Upload {
		client, err := store.get()
		if err != nil {
			return nil, err
		}
		opts = append(opts, export.WithStorage(client, cfg.Storage.Bucket, cfg.Storage.Region))
	}

	res, err := export.New(cfg.Export, logg, opts...).Run(ctx, tables, m)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}
	return res, nil
}

// pruneLedger drops batches of descriptor files that no longer exist.
func pruneLedger(l *ledger.Ledger, descs []source.Descriptor, logg *zap.Logger) {
	keep := make(map[string]struct{}, len(descs))
	for _, d := range descs {
		keep[d.Fingerprint] = struct{}{}
	}
	if _, err := l.Prune(keep); err != nil {
		logg.Warn("Failed to prune ledger", zap.Error(err))
	}
}
