package source

import (
	"context"
	"fmt"
	"io"

	"arcade-catalog/core/storage"
	"arcade-catalog/feature/descriptor"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Bucket reads descriptor files from object storage.
type Bucket struct {
	client storage.Client
	bucket string
	prefix string
	log    *zap.Logger
}

// NewBucket creates a bucket source listing objects under prefix.
func NewBucket(client storage.Client, bucket, prefix string, log *zap.Logger) *Bucket {
	return &Bucket{client: client, bucket: bucket, prefix: prefix, log: log}
}

// List returns the release descriptors under the prefix. The fingerprint is key and ETag.
func (b *Bucket) List(ctx context.Context) ([]Descriptor, error) {
	objects, err := storage.ListAll(ctx, b.client, b.bucket, b.prefix)
	if err != nil {
		return nil, err
	}

	var descs []Descriptor
	for _, obj := range objects {
		if !descriptor.IsDescriptor(obj.Key) {
			continue
		}
		desc, err := named(obj.Key, obj.Size, obj.Key+"|"+obj.ETag)
		if err != nil {
			b.log.Warn("Ignoring descriptor", zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// Open streams a descriptor object.
func (b *Bucket) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, location, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", location, err)
	}
	return obj, nil
}
