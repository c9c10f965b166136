package source

// Config holds where descriptor files are read from.
type Config struct {
	// Dir is a local directory of descriptor files. It takes precedence over BucketPrefix.
	Dir string `mapstructure:"dir" default:""`
	// BucketPrefix lists descriptor files under this prefix of the storage bucket.
	BucketPrefix string `mapstructure:"bucket_prefix" default:"dats/"`
	// Start is the index of the first release to build, in version order.
	Start int `mapstructure:"start" default:"0"`
	// End is the index after the last release to build. Zero means all.
	End int `mapstructure:"end" default:"0"`
}
