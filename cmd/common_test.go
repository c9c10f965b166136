package cmd

import (
	"testing"

	"arcade-catalog/core/catalog"
	"arcade-catalog/core/model"
	"arcade-catalog/feature/source"

	"github.com/stretchr/testify/assert"
)

func TestSourceFlags_Apply(t *testing.T) {
	tests := []struct {
		name  string
		flags sourceFlags
		cfg   source.Config
		want  source.Config
	}{
		{
			name:  "unset flags keep config",
			flags: sourceFlags{start: -1, end: -1},
			cfg:   source.Config{Dir: "dats", BucketPrefix: "dats/", Start: 2, End: 5},
			want:  source.Config{Dir: "dats", BucketPrefix: "dats/", Start: 2, End: 5},
		},
		{
			name:  "directory flag",
			flags: sourceFlags{dir: "./local", start: 0, end: 10},
			cfg:   source.Config{BucketPrefix: "dats/", Start: 2},
			want:  source.Config{Dir: "./local", BucketPrefix: "dats/", Start: 0, End: 10},
		},
		{
			name:  "bucket prefix flag overrides configured directory",
			flags: sourceFlags{bucketPrefix: "mame/", start: -1, end: -1},
			cfg:   source.Config{Dir: "dats", BucketPrefix: "dats/"},
			want:  source.Config{BucketPrefix: "mame/"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			tt.flags.apply(&cfg)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestManifestFor(t *testing.T) {
	rep := &catalog.Report{
		Releases: []catalog.ReleaseReport{{Release: model.Release{Product: "MAME", Version: "0.100"}}},
		Skipped:  []catalog.SkippedRelease{{Release: model.Release{Product: "MAME", Version: "0.101"}}},
		Totals:   catalog.Counts{Games: 3},
	}

	m := manifestFor("run-1", rep)
	assert.Equal(t, "run-1", m.RunID)
	assert.Equal(t, []string{"MAME 0.100"}, m.Releases)
	assert.Equal(t, []string{"MAME 0.101"}, m.Skipped)
	assert.Equal(t, 3, m.Totals.Games)
	assert.False(t, m.CreatedAt.IsZero())
}
