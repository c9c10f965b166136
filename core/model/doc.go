// Package model defines the data shapes shared by the catalog engine and its collaborators.
//
// There are three families of types:
//
//   - Descriptor types (GameDescriptor, RomSpec, DiskSpec, DriverSpec, FeatureSpec) are what the
//     upstream parser hands over for one release. They are plain values with no identity.
//   - Record types (Game, Rom, Disk, Driver, Feature, Link, Release) are the content-addressed
//     entities held by the catalog. Every cross reference between them is a hash.
//   - Row types (GameRow, RomRow, ... GameEmulatorFeatureRow) are the flat, integer keyed tables
//     produced by the final renumbering pass. They carry GORM tags and are what the export
//     feature persists.
//
// # Hashes
//
// Hash is a hex encoded SHA-256 digest used for game and rom identities. ContentHash is a hex
// encoded MD5 digest used as a dedup key for attribute records (drivers, features, disks, links).
// The empty string means "unset" for both.
package model
