package ledger

// Config holds the incremental build cache settings.
type Config struct {
	// Path is the ledger directory. Empty disables the ledger.
	Path string `mapstructure:"path" default:""`
	// InMemory keeps the ledger in memory only.
	InMemory bool `mapstructure:"in_memory" default:"false"`
}

// Enabled reports whether a ledger should be opened.
func (c Config) Enabled() bool {
	return c.Path != "" || c.InMemory
}
