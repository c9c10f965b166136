// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that descriptor files can be read from, and built catalogs
// uploaded to, AWS S3 or self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier to mock
// storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket before uploads.
//   - PutObject: uploads exported files.
//   - GetObject: streams a descriptor file.
//   - ListObjects: lists descriptor files; ListAll drains a recursive listing.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	objects, err := storage.ListAll(ctx, client, cfg.Storage.Bucket, "dats/")
package storage
