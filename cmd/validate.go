package cmd

import (
	"errors"
	"fmt"

	"arcade-catalog/feature/report"
	"arcade-catalog/feature/source"
	"arcade-catalog/feature/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	validateSource  sourceFlags
	validateStrict  bool
	validateMaxRows int
)

// validateCmd checks descriptor files without building.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate release descriptor files without building",
	Long: `Parses every release descriptor, checks its root element and reference graph, and reports
reference cycles, ordering and depth warnings and parents missing from the release.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()
		validateSource.apply(&cfg.Source)

		src, err := openSource(cfg, &lazyStorage{cfg: cfg}, logg)
		if err != nil {
			return err
		}
		descs, err := src.List(cmd.Context())
		if err != nil {
			return err
		}
		jobs := source.Jobs(descs, cfg.Source.Start, cfg.Source.End)
		if len(jobs) == 0 {
			return errors.New("no release descriptors to validate")
		}

		results, err := validate.Run(cmd.Context(), src, jobs, cfg.Build.Workers, logg)
		if err != nil {
			return err
		}
		if err := report.WriteValidation(cmd.OutOrStdout(), results, report.Options{MaxRows: validateMaxRows}); err != nil {
			return err
		}

		invalid, findings := 0, 0
		for _, r := range results {
			if r.Err != nil {
				invalid++
			}
			if !r.OK() {
				findings++
			}
		}
		logg.Info("Validation completed",
			zap.Int("releases", len(results)),
			zap.Int("invalid", invalid),
			zap.Int("with_findings", findings))

		if invalid > 0 {
			return fmt.Errorf("%d of %d releases are invalid", invalid, len(results))
		}
		if validateStrict && findings > 0 {
			return fmt.Errorf("%d of %d releases have findings", findings, len(results))
		}
		return nil
	},
}

func init() {
	validateSource.register(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail on warnings and missing parents too")
	validateCmd.Flags().IntVar(&validateMaxRows, "max-rows", 50, "Maximum rows printed in the findings table (0 prints all)")

	RootCmd.AddCommand(validateCmd)
}
