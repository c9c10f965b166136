package catalog

// Config holds configuration for the catalog build.
type Config struct {
	// Workers is the number of releases processed concurrently.
	Workers int `mapstructure:"workers" default:"4"`
	// MemoryWarnPercent is the system memory usage above which the build logs a warning.
	// Zero disables the check.
	MemoryWarnPercent float64 `mapstructure:"memory_warn_percent" default:"85"`
}
