package export

// Config holds where and how the built tables are written.
type Config struct {
	// Dir receives the manifest and flat files.
	Dir string `mapstructure:"dir" default:"out"`
	// CSV writes one <table>.csv per table.
	CSV bool `mapstructure:"csv" default:"false"`
	// Database stores the tables through the configured database connection.
	Database bool `mapstructure:"database" default:"true"`
	// BatchSize is the number of rows per INSERT.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// Upload copies the produced files to the storage bucket.
	Upload bool `mapstructure:"upload" default:"false"`
	// UploadPrefix is the object prefix; each run is written below <prefix><run id>/.
	UploadPrefix string `mapstructure:"upload_prefix" default:"catalogs/"`
}
