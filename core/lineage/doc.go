// Package lineage orders and resolves clone_of / rom_of references within one release.
//
// Sort partitions a release's games by reachability so that every referenced parent is emitted
// before the games that reference it. Resolve then walks that ordering with a NameIndex built
// incrementally, turning parent names into identity hashes in a single pass.
//
// Data defects (a parent emitted after its child, chains deeper than three nodes, a clone_of
// parent that is itself a clone, duplicated names) are returned as Warnings and never stop
// processing. A cycle is reported as ErrCycle together with a best-effort ordering.
package lineage
