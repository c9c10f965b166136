package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"arcade-catalog/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Upload copies files to bucket below prefix and returns the object names.
func Upload(ctx context.Context, client storage.Client, bucket, prefix string, files []string, log *zap.Logger) ([]string, error) {
	objects := make([]string, 0, len(files))
	for _, file := range files {
		name := path.Join(prefix, filepath.Base(file))
		if err := putFile(ctx, client, bucket, name, file); err != nil {
			return objects, err
		}
		log.Debug("Uploaded", zap.String("object", name))
		objects = append(objects, name)
	}
	return objects, nil
}

func putFile(ctx context.Context, client storage.Client, bucket, name, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", file, err)
	}
	_, err = client.PutObject(ctx, bucket, name, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(file),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

func contentType(file string) string {
	switch filepath.Ext(file) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
