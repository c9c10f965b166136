// Package config provides configuration management for the catalog builder.
//
// It utilizes Viper for loading configuration from environment variables and an optional .env
// file. Defaults come from `default` struct tags on every section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Log: Logging level and format
//   - Database: sqlite or MySQL target of the export
//   - Storage: S3/MinIO credentials and bucket settings
//   - Source: descriptor directory or bucket prefix, job window
//   - Build: worker count and memory warning threshold
//   - Ledger: incremental build cache location
//   - Export: output directory, CSV and upload switches
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Build.Workers)
package config
