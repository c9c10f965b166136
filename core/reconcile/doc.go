// Package reconcile compares a freshly built catalog with the catalog already stored in the
// database before it is replaced.
//
// The engine builds the union of keys from both sides, flags on which side each entity is
// present and asks an Adapter for field mismatches when it is present on both. Keys are
// content hashes, so an entity keeps its key across builds even though its row id changes.
//
// # Usage Example
//
//	results, err := reconcile.DiffGames(ctx, db, tables)
//	summary := reconcile.Summarize(results)
//	changed := reconcile.Differences(results)
package reconcile
