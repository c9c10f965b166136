// Package integrity provides post-build health checks for an exported catalog.
//
// # Checks Provided
//
//   - Schema: Validates that the catalog tables in the connected database match the row models (columns, types).
//   - Orphans: Counts games, roms, drivers, features and disks that no join row references.
//   - Layout: Checks that the descriptor and export prefixes exist in the storage bucket (supports fixing).
//   - Upload: Verifies that an uploaded export carries its manifest and, when CSV was uploaded, every table file.
package integrity
