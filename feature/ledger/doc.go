// Package ledger persists processed release batches so unchanged descriptor files are not
// parsed and indexed again on the next build.
//
// Batches are JSON encoded and stored in Badger under their source fingerprint. Source
// fingerprints change whenever the file may have changed (size and mtime for local files,
// ETag for objects), so a stale batch is never returned for new content.
package ledger
