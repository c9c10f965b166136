// Package identity computes the content-derived keys of the catalog.
//
// Games and roms are keyed by SHA-256 identity hashes built from canonical signatures. A
// signature renders every asset as "name/size/crc" (roms) or "name/hash" (disks), sorts the
// rendered strings and joins them with ",", so the result does not depend on input order.
//
// Auxiliary records (drivers, features, disks, release links) are keyed by an MD5 content hash
// over their field values ordered by field name. Two records with identical values anywhere in
// history collapse to the same key.
//
// Every function in this package is pure and total over well-formed input.
package identity
