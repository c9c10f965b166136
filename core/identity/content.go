package identity

import (
	"crypto/md5"
	"encoding/hex"
	"maps"
	"slices"

	"arcade-catalog/core/model"
)

// unitSeparator terminates every value so that shifting characters between adjacent fields
// changes the hash.
const unitSeparator = 0x1f

// ContentHash hashes a record's values ordered by field name.
func ContentHash(fields map[string]string) model.ContentHash {
	h := md5.New()
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		h.Write([]byte(fields[k]))
		h.Write([]byte{unitSeparator})
	}
	return model.ContentHash(hex.EncodeToString(h.Sum(nil)))
}

// DriverHash is the dedup key of a driver record.
func DriverHash(d model.DriverSpec) model.ContentHash {
	return ContentHash(d.Attributes())
}

// FeatureHash is the dedup key of a feature record.
func FeatureHash(f model.FeatureSpec) model.ContentHash {
	return ContentHash(f.Attributes())
}

// DiskHash is the dedup key of a disk record.
func DiskHash(d model.DiskSpec) model.ContentHash {
	return ContentHash(map[string]string{
		"name": d.Name,
		"md5":  d.MD5,
		"sha1": d.SHA1,
	})
}

// ReleaseKey is the key of a release, unique per product and version.
func ReleaseKey(product, version string) model.ContentHash {
	return ContentHash(map[string]string{
		"name":    product,
		"version": version,
	})
}

// LinkHash is the key of a game's link to a release.
func LinkHash(game model.Hash, release model.ContentHash) model.ContentHash {
	return ContentHash(map[string]string{
		"game":    string(game),
		"release": string(release),
	})
}

// GameRomHash is the key of a game to rom join.
func GameRomHash(game, rom model.Hash) model.ContentHash {
	return ContentHash(map[string]string{
		"game": string(game),
		"rom":  string(rom),
	})
}
