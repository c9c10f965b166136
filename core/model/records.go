package model

import (
	"maps"
	"slices"
)

// Hash is a hex encoded SHA-256 identity digest.
type Hash string

// ContentHash is a hex encoded MD5 digest over an attribute record's values.
type ContentHash string

// Reference attributes.
const (
	AttrCloneOf = "clone_of"
	AttrRomOf   = "rom_of"
)

// Reasons attached to unresolved references.
const (
	// ReasonMissing means the target name does not exist in the release.
	ReasonMissing = "missing"
	// ReasonLineageSkipped means the release's lineage could not be ordered and resolution was skipped.
	ReasonLineageSkipped = "lineage_skipped"
)

// Release identifies one versioned descriptor source (one emulator version).
type Release struct {
	// Key is the content hash of Product and Version.
	Key     ContentHash `json:"key"`
	Product string      `json:"product"`
	Version string      `json:"version"`
	// Seq is the release's position in version order. Lower sequences win merge clashes.
	Seq int `json:"seq"`
}

// Name returns the release's display name, e.g. "MAME 0.263".
func (r Release) Name() string {
	return r.Product + " " + r.Version
}

// SameIdentity reports whether two releases describe the same product version.
func (r Release) SameIdentity(o Release) bool {
	return r.Product == o.Product && r.Version == o.Version
}

// Game is a content-addressed game identity.
type Game struct {
	Hash Hash   `json:"hash"`
	Name string `json:"name"`
	// Signature is the canonical rom and disk signature the hash was computed from.
	Signature    string `json:"signature"`
	Description  string `json:"description"`
	Year         string `json:"year"`
	Manufacturer string `json:"manufacturer"`
	IsBIOS       bool   `json:"is_bios"`
	IsDevice     bool   `json:"is_device"`
	Runnable     bool   `json:"runnable"`
	IsMechanical bool   `json:"is_mechanical"`

	Roms  []Hash        `json:"roms"`
	Disks []ContentHash `json:"disks"`

	// CloneOf and RomOf hold resolved parent identities. Empty means unset.
	CloneOf Hash `json:"clone_of,omitempty"`
	RomOf   Hash `json:"rom_of,omitempty"`
}

// SameIdentity reports whether two games hash from the same name and content.
func (g Game) SameIdentity(o Game) bool {
	return g.Name == o.Name && g.Signature == o.Signature
}

// Rom is a content-addressed rom.
type Rom struct {
	Hash Hash   `json:"hash"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	CRC  string `json:"crc"`
	SHA1 string `json:"sha1,omitempty"`
}

// SameIdentity reports whether two roms share name, size and crc.
func (r Rom) SameIdentity(o Rom) bool {
	return r.Name == o.Name && r.Size == o.Size && r.CRC == o.CRC
}

// Disk is a content-addressed disk record.
type Disk struct {
	Hash ContentHash `json:"hash"`
	Name string      `json:"name"`
	MD5  string      `json:"md5"`
	SHA1 string      `json:"sha1"`
}

// SameIdentity reports whether two disks carry identical fields.
func (d Disk) SameIdentity(o Disk) bool {
	return d.Name == o.Name && d.MD5 == o.MD5 && d.SHA1 == o.SHA1
}

// Driver is a deduplicated driver quality record.
type Driver struct {
	Hash ContentHash `json:"hash"`
	DriverSpec
}

// SameIdentity reports whether two drivers carry identical attributes.
func (d Driver) SameIdentity(o Driver) bool {
	return maps.Equal(d.Attributes(), o.Attributes())
}

// Feature is a deduplicated feature quality record.
type Feature struct {
	Hash ContentHash `json:"hash"`
	FeatureSpec
}

// SameIdentity reports whether two features carry identical attributes.
func (f Feature) SameIdentity(o Feature) bool {
	return maps.Equal(f.Attributes(), o.Attributes())
}

// Link is one release's view of a game: its driver, features and disks in that release.
// At most one link exists per (game, release) pair.
type Link struct {
	Hash     ContentHash   `json:"hash"`
	Game     Hash          `json:"game"`
	Release  ContentHash   `json:"release"`
	Driver   ContentHash   `json:"driver,omitempty"`
	Features []ContentHash `json:"features"`
	Disks    []ContentHash `json:"disks"`
}

// SameIdentity reports whether two links join the same game and release.
func (l Link) SameIdentity(o Link) bool {
	return l.Game == o.Game && l.Release == o.Release
}

// GameRom joins a game identity to one of its roms.
type GameRom struct {
	Hash ContentHash `json:"hash"`
	Game Hash        `json:"game"`
	Rom  Hash        `json:"rom"`
}

// SameIdentity reports whether two joins connect the same pair.
func (j GameRom) SameIdentity(o GameRom) bool {
	return j.Game == o.Game && j.Rom == o.Rom
}

// UnresolvedReference records a clone_of or rom_of target that could not be resolved.
type UnresolvedReference struct {
	Release   string `json:"release"`
	Game      string `json:"game"`
	Attribute string `json:"attribute"`
	Target    string `json:"target"`
	Reason    string `json:"reason"`
}

// appendUnique appends v unless it is already present.
func appendUnique[T comparable](s []T, v T) []T {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}

// AddFeature attaches a feature hash to the link once.
func (l *Link) AddFeature(h ContentHash) {
	l.Features = appendUnique(l.Features, h)
}

// AddDisk attaches a disk hash to the link once.
func (l *Link) AddDisk(h ContentHash) {
	l.Disks = appendUnique(l.Disks, h)
}
