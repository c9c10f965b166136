// Package catalog accumulates per-release record batches into one deduplicated dataset and
// turns it into integer keyed tables.
//
// # Pipeline
//
// ProcessRelease turns one release's descriptors into a release-local Dataset: games are
// ordered parent first, hashed, resolved against a release-scoped name index and stored with
// their roms, disks, drivers, features and release link. Nothing in that step is shared, so
// releases can be processed concurrently.
//
// Builder runs ProcessRelease on a bounded worker pool and folds every result into a master
// Dataset from a single goroutine. A release that fails to load is skipped and reported; a
// hash collision aborts the build.
//
// Renumber runs once, after all folding, and assigns dense sequential ids.
//
// # Merge order
//
// Every entry remembers the sequence of the release that produced it (its origin) and its
// position inside that release (its ordinal). When two releases produce the same key, the entry
// from the earlier release is kept. This makes Merge idempotent and commutative, and Renumber
// assigns ids in (origin, ordinal) order, so output does not depend on worker scheduling.
package catalog
