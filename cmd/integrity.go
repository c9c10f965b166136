package cmd

import (
	"errors"
	"fmt"
	"path"

	"arcade-catalog/core/database"
	"arcade-catalog/feature/integrity"
	"arcade-catalog/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag bool
	runFlag string
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on an exported catalog",
	Long:  `Checks the catalog tables in the configured database (schema and orphaned records).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := databaseService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := runOrphanCheck(cmd, svc, logg); err != nil {
			return err
		}
		return runSchemaCheck(cmd, svc, logg)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the catalog tables against the row models",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := databaseService()
		if err != nil {
			return err
		}
		defer logg.Sync()
		return runSchemaCheck(cmd, svc, logg)
	},
}

// orphansCmd represents the integrity orphans command
var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Count records no game or link references",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := databaseService()
		if err != nil {
			return err
		}
		defer logg.Sync()
		return runOrphanCheck(cmd, svc, logg)
	},
}

// layoutCmd represents the integrity layout command
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Check and fix the bucket prefixes used for descriptors and exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, cfgPrefixes, err := storageService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		missing, err := svc.CheckLayout(cmd.Context(), cfgPrefixes)
		if err != nil {
			return fmt.Errorf("layout check failed: %w", err)
		}
		if len(missing) == 0 {
			logg.Info("Layout is intact.")
			return nil
		}
		logg.Warn("Missing prefixes detected", zap.Strings("missing", missing))
		if !fixFlag {
			logg.Info("Run with --fix to create missing prefixes.")
			return nil
		}
		if err := svc.FixLayout(cmd.Context(), missing); err != nil {
			return fmt.Errorf("failed to fix layout: %w", err)
		}
		logg.Info("Layout fixed successfully.")
		return nil
	},
}

// uploadCmd represents the integrity upload command
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Verify the files of an uploaded export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runFlag == "" {
			return errors.New("--run is required")
		}
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := (&lazyStorage{cfg: cfg}).get()
		if err != nil {
			return err
		}
		svc := integrity.NewService(nil, client, cfg.Storage.Bucket, logg)
		prefix := path.Join(cfg.Export.UploadPrefix, runFlag)
		missing, err := svc.CheckUpload(cmd.Context(), prefix)
		if err != nil {
			return fmt.Errorf("upload check failed: %w", err)
		}
		if len(missing) > 0 {
			logg.Warn("Uploaded export is incomplete", zap.String("prefix", prefix), zap.Strings("missing", missing))
			return fmt.Errorf("%d files missing below %s", len(missing), prefix)
		}
		logg.Info("Uploaded export is complete.", zap.String("prefix", prefix))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, orphansCmd, layoutCmd, uploadCmd)

	layoutCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing prefixes")
	uploadCmd.Flags().StringVar(&runFlag, "run", "", "Run id of the export to verify")
}

func databaseService() (*integrity.Service, *zap.Logger, error) {
	cfg, logg, err := setup()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection required: %w", err)
	}
	return integrity.NewService(db, nil, "", logg), logg, nil
}

func storageService() (*integrity.Service, *zap.Logger, []string, error) {
	cfg, logg, err := setup()
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := (&lazyStorage{cfg: cfg}).get()
	if err != nil {
		return nil, nil, nil, err
	}
	prefixes := []string{cfg.Source.BucketPrefix, cfg.Export.UploadPrefix}
	return integrity.NewService(nil, client, cfg.Storage.Bucket, logg), logg, prefixes, nil
}

func runSchemaCheck(cmd *cobra.Command, svc *integrity.Service, logg *zap.Logger) error {
	logg.Info("Checking catalog schema...")
	rep, err := svc.CheckSchema()
	if err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}
	if err := report.WriteSchema(cmd.OutOrStdout(), rep); err != nil {
		return err
	}
	if !rep.Matched {
		return errors.New("catalog schema does not match the row models")
	}
	logg.Info("Catalog schema matches the row models.")
	return nil
}

func runOrphanCheck(cmd *cobra.Command, svc *integrity.Service, logg *zap.Logger) error {
	logg.Info("Checking for orphaned records...")
	rep, err := svc.CheckOrphans()
	if err != nil {
		return fmt.Errorf("orphan check failed: %w", err)
	}
	if err := report.WriteOrphans(cmd.OutOrStdout(), rep); err != nil {
		return err
	}
	if !rep.Clean {
		logg.Warn("Orphaned records found")
	}
	return nil
}
