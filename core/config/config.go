package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"arcade-catalog/core/catalog"
	"arcade-catalog/core/database"
	"arcade-catalog/core/logger"
	"arcade-catalog/core/storage"
	"arcade-catalog/feature/export"
	"arcade-catalog/feature/ledger"
	"arcade-catalog/feature/source"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the catalog database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Source holds where descriptor files are read from.
	Source source.Config `mapstructure:"source"`
	// Build holds the catalog build settings.
	Build catalog.Config `mapstructure:"build"`
	// Ledger holds the incremental build cache settings.
	Ledger ledger.Config `mapstructure:"ledger"`
	// Export holds where and how the built tables are written.
	Export export.Config `mapstructure:"export"`
}

// LoadConfig loads configuration from an optional config.yaml, the .env file and environment
// variables, in increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if .env doesn't exist (e.g. CI runners)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	configFile := filepath.Join(path, "config.yaml")
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
		}
	}

	// Map environment variables to nested keys (e.g. BUILD_WORKERS -> build.workers)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
