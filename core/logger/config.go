package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the log encoding (json, console). Empty picks console on a terminal and json otherwise.
	Format string `mapstructure:"format" default:""`
}
