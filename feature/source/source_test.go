package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arcade-catalog/core/catalog"
	"arcade-catalog/core/storage/mocks"

	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const descriptorXML = `<mame><machine name="foo"><rom name="foo.bin" size="100" crc="aaaa1111"/></machine></mame>`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestJobs(t *testing.T) {
	descs := []Descriptor{
		{Location: "c", Product: "MAME", Version: "0.263"},
		{Location: "a", Product: "MAME", Version: "0.34b1"},
		{Location: "b", Product: "MAME", Version: "0.34"},
		{Location: "d", Product: "FBNeo", Version: "1.0"},
	}

	jobs := Jobs(descs, 0, 0)
	require.Len(t, jobs, 4)
	var got []string
	for i, j := range jobs {
		got = append(got, j.Source)
		assert.Equal(t, i, j.Release.Seq)
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, got)
	assert.Equal(t, "c", descs[0].Location, "input must not be reordered")
}

func TestJobs_Window(t *testing.T) {
	descs := []Descriptor{
		{Location: "a", Product: "MAME", Version: "0.1"},
		{Location: "b", Product: "MAME", Version: "0.2"},
		{Location: "c", Product: "MAME", Version: "0.3"},
	}

	jobs := Jobs(descs, 1, 2)
	require.Len(t, jobs, 1)
	assert.Equal(t, "b", jobs[0].Source)
	assert.Equal(t, 1, jobs[0].Release.Seq)

	assert.Len(t, Jobs(descs, 2, 99), 1)
	assert.Empty(t, Jobs(descs, 3, 0))
}

func TestDir_List(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "MAME 0.100.xml", descriptorXML)
	writeFile(t, dir, "MAME 0.101.dat.zst", "")
	writeFile(t, dir, "README.md", "notes")
	writeFile(t, dir, "broken.xml", descriptorXML)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "MAME 0.102.xml"), 0o755))

	descs, err := NewDir(dir, zap.NewNop()).List(context.Background())
	require.NoError(t, err)
	require.Len(t, descs, 2)

	assert.Equal(t, "MAME", descs[0].Product)
	assert.Equal(t, "0.100", descs[0].Version)
	assert.Equal(t, int64(len(descriptorXML)), descs[0].Size)
	assert.True(t, strings.HasPrefix(descs[0].Fingerprint, "MAME 0.100.xml|"))
	assert.Equal(t, "0.101", descs[1].Version)
}

func TestDir_ListMissing(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "nope"), zap.NewNop()).List(context.Background())
	assert.Error(t, err)
}

func TestLoader_Dir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "MAME 0.100.xml", descriptorXML)

	f, err := os.Create(filepath.Join(dir, "MAME 0.101.xml.zst"))
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(descriptorXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	src := NewDir(dir, zap.NewNop())
	descs, err := src.List(context.Background())
	require.NoError(t, err)

	b := catalog.NewBuilder(catalog.Config{Workers: 2}, Loader(src, zap.NewNop()), zap.NewNop())
	master, report, err := b.Build(context.Background(), Jobs(descs, 0, 0))
	require.NoError(t, err)

	assert.Empty(t, report.Skipped)
	assert.Equal(t, 1, master.Counts().Games)
	assert.Equal(t, 2, master.Counts().Links)
}

func TestLoader_SkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "MAME 0.100.xml", descriptorXML)
	writeFile(t, dir, "MAME 0.101.xml", `<softwarelist name="x"/>`)

	src := NewDir(dir, zap.NewNop())
	descs, err := src.List(context.Background())
	require.NoError(t, err)

	b := catalog.NewBuilder(catalog.Config{Workers: 1}, Loader(src, zap.NewNop()), zap.NewNop())
	_, report, err := b.Build(context.Background(), Jobs(descs, 0, 0))
	require.NoError(t, err)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "0.101", report.Skipped[0].Release.Version)
	assert.Contains(t, report.Skipped[0].Error, "unsupported descriptor root")
}

func TestBucket(t *testing.T) {
	ctx := context.Background()
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "dats/MAME 0.100.xml", Size: 10, ETag: "e1"}
	ch <- minio.ObjectInfo{Key: "dats/notes.txt"}
	ch <- minio.ObjectInfo{Key: "dats/MAME 0.101.xml.bz2", Size: 20, ETag: "e2"}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", ctx, "arcade", minio.ListObjectsOptions{Prefix: "dats/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))
	client.On("GetObject", ctx, "arcade", "dats/MAME 0.100.xml", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(descriptorXML)), nil)

	src := NewBucket(client, "arcade", "dats/", zap.NewNop())
	descs, err := src.List(ctx)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, "dats/MAME 0.100.xml|e1", descs[0].Fingerprint)
	assert.Equal(t, int64(20), descs[1].Size)

	games, err := Loader(src, zap.NewNop()).Load(ctx, catalog.Job{Source: "dats/MAME 0.100.xml"})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "foo", games[0].Name)
	client.AssertExpectations(t)
}

func TestLoader_DuplicateReleaseSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "MAME 0.100.dat", `<mame><machine name="foo"><rom name="foo.bin" size="100" crc="aaaa1111"/><driver status="good"/></machine></mame>`)
	writeFile(t, dir, "MAME 0.100.xml", `<mame><machine name="foo"><rom name="foo.bin" size="100" crc="aaaa1111"/><driver status="imperfect"/></machine></mame>`)

	src := NewDir(dir, zap.NewNop())
	descs, err := src.List(context.Background())
	require.NoError(t, err)
	jobs := Jobs(descs, 0, 0)
	require.Len(t, jobs, 2)

	b := catalog.NewBuilder(catalog.Config{Workers: 2}, Loader(src, zap.NewNop()), zap.NewNop())
	master, report, err := b.Build(context.Background(), jobs)
	require.NoError(t, err)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, jobs[1].Source, report.Skipped[0].Source)
	assert.Contains(t, report.Skipped[0].Error, catalog.ErrDuplicateRelease.Error())
	require.Len(t, report.Releases, 1)
	assert.Equal(t, jobs[0].Release.Seq, report.Releases[0].Release.Seq)

	counts := master.Counts()
	assert.Equal(t, 1, counts.Releases)
	assert.Equal(t, 1, counts.Links)
	assert.Equal(t, 1, counts.Drivers)
}
