package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"arcade-catalog/core/model"

	"github.com/shirou/gopsutil/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCache struct {
	mu      sync.Mutex
	batches map[string]*Batch
}

func newMemoryCache() *memoryCache {
	return &memoryCache{batches: make(map[string]*Batch)}
}

func (c *memoryCache) Get(fingerprint string) (*Batch, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.batches[fingerprint]
	return b, ok, nil
}

func (c *memoryCache) Put(fingerprint string, batch *Batch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches[fingerprint] = batch
	return nil
}

func jobsFor(versions ...string) []Job {
	jobs := make([]Job, 0, len(versions))
	for i, v := range versions {
		jobs = append(jobs, Job{
			Release:     model.Release{Product: "MAME", Version: v, Seq: i},
			Source:      "MAME " + v + ".xml",
			Fingerprint: "fp-" + v,
		})
	}
	return jobs
}

func fooLoader(calls *atomic.Int32) Loader {
	return LoaderFunc(func(ctx context.Context, job Job) ([]model.GameDescriptor, error) {
		calls.Add(1)
		games := []model.GameDescriptor{fooGame("Foo " + job.Release.Version)}
		games = append(games, model.GameDescriptor{
			Name: "only-" + job.Release.Version,
			Roms: []model.RomSpec{rom(job.Release.Version+".bin", 1, "aa")},
		})
		return games, nil
	})
}

func TestBuilder_Build(t *testing.T) {
	var calls atomic.Int32
	b := NewBuilder(Config{Workers: 3}, fooLoader(&calls), zap.NewNop())

	master, report, err := b.Build(context.Background(), jobsFor("0.100", "0.101", "0.102", "0.103"))
	require.NoError(t, err)

	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, 5, master.Counts().Games)
	assert.Equal(t, 8, master.Counts().Links)
	assert.Equal(t, master.Counts(), report.Totals)
	require.Len(t, report.Releases, 4)
	for i, r := range report.Releases {
		assert.Equal(t, i, r.Release.Seq)
		assert.NotEmpty(t, r.Release.Key)
	}
}

func TestBuilder_DeterministicAcrossWorkers(t *testing.T) {
	build := func(workers int) *model.Tables {
		var calls atomic.Int32
		b := NewBuilder(Config{Workers: workers}, fooLoader(&calls), zap.NewNop())
		master, _, err := b.Build(context.Background(), jobsFor("0.100", "0.101", "0.102", "0.103", "0.104"))
		require.NoError(t, err)
		tables, err := Renumber(master)
		require.NoError(t, err)
		return tables
	}

	assert.Equal(t, build(1), build(4))
}

func TestBuilder_SkipsFailedRelease(t *testing.T) {
	var calls atomic.Int32
	inner := fooLoader(&calls)
	loader := LoaderFunc(func(ctx context.Context, job Job) ([]model.GameDescriptor, error) {
		if job.Release.Version == "0.101" {
			return nil, errors.New("unexpected EOF")
		}
		return inner.Load(ctx, job)
	})
	b := NewBuilder(Config{Workers: 2}, loader, zap.NewNop())

	master, report, err := b.Build(context.Background(), jobsFor("0.100", "0.101", "0.102"))
	require.NoError(t, err)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "0.101", report.Skipped[0].Release.Version)
	assert.Contains(t, report.Skipped[0].Error, "unexpected EOF")
	assert.Len(t, report.Releases, 2)
	assert.Equal(t, 2, master.Counts().Releases)
}

func TestBuilder_Cache(t *testing.T) {
	cache := newMemoryCache()
	var calls atomic.Int32

	first := NewBuilder(Config{Workers: 2}, fooLoader(&calls), zap.NewNop(), WithCache(cache))
	want, _, err := first.Build(context.Background(), jobsFor("0.100", "0.101"))
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())

	second := NewBuilder(Config{Workers: 2}, fooLoader(&calls), zap.NewNop(), WithCache(cache))
	got, report, err := second.Build(context.Background(), jobsFor("0.100", "0.101"))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, want.Snapshot(), got.Snapshot())
	for _, r := range report.Releases {
		assert.True(t, r.Cached)
	}
}

func TestBuilder_CacheRebasesSequence(t *testing.T) {
	cache := newMemoryCache()
	var calls atomic.Int32

	b := NewBuilder(Config{Workers: 1}, fooLoader(&calls), zap.NewNop(), WithCache(cache))
	_, _, err := b.Build(context.Background(), jobsFor("0.101"))
	require.NoError(t, err)

	// An older release appears and shifts the cached one to seq 1.
	master, _, err := b.Build(context.Background(), jobsFor("0.100", "0.101"))
	require.NoError(t, err)

	games := master.Games()
	require.NotEmpty(t, games)
	assert.Equal(t, "Foo 0.100", games[0].Description)
}

func TestBuilder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	b := NewBuilder(Config{Workers: 2}, fooLoader(&calls), zap.NewNop())
	_, _, err := b.Build(ctx, jobsFor("0.100", "0.101"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestWatchdog(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		used      float64
		err       error
		want      bool
	}{
		{name: "below threshold", threshold: 90, used: 50, want: false},
		{name: "above threshold", threshold: 90, used: 95, want: true},
		{name: "disabled", threshold: 0, used: 99, want: false},
		{name: "unavailable", threshold: 90, err: fmt.Errorf("no /proc"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWatchdog(tt.threshold, zap.NewNop())
			w.virtual = func() (*mem.VirtualMemoryStat, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &mem.VirtualMemoryStat{UsedPercent: tt.used, Used: 1 << 30, Total: 2 << 30}, nil
			}
			assert.Equal(t, tt.want, w.Check("MAME 0.100"))
		})
	}
}

func TestBuilder_DuplicateRelease(t *testing.T) {
	var calls atomic.Int32
	jobs := jobsFor("0.100", "0.101")
	dup := jobs[0]
	dup.Source = "MAME 0.100.dat"
	dup.Release.Seq = 2
	jobs = append([]Job{dup}, jobs...)

	b := NewBuilder(Config{Workers: 2}, fooLoader(&calls), zap.NewNop())
	master, report, err := b.Build(context.Background(), jobs)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "MAME 0.100.dat", report.Skipped[0].Source)
	assert.Contains(t, report.Skipped[0].Error, ErrDuplicateRelease.Error())
	assert.Equal(t, 2, master.Counts().Releases)
	assert.Empty(t, jobs[0].Release.Key, "input jobs must not be modified")
}
