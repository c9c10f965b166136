package descriptor

import (
	"compress/bzip2"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression extensions understood by Open.
const (
	ExtBzip2 = ".bz2"
	ExtXZ    = ".xz"
	ExtZstd  = ".zst"
)

// Open wraps r with the decompressor matching name's extension. Uncompressed files are passed
// through. The returned reader must be closed; closing it does not close r.
func Open(name string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ExtBzip2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case ExtXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open xz stream %s: %w", name, err)
		}
		return io.NopCloser(xr), nil
	case ExtZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream %s: %w", name, err)
		}
		return zr.IOReadCloser(), nil
	default:
		return io.NopCloser(r), nil
	}
}
