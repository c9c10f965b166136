package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"

	"arcade-catalog/core/model"
)

// Disk hash types.
const (
	HashSHA1 = "sha1"
	HashMD5  = "md5"
)

// RomSignature returns the canonical, order-independent signature of a rom set.
func RomSignature(roms []model.RomSpec) string {
	parts := make([]string, 0, len(roms))
	for _, r := range roms {
		parts = append(parts, renderRom(r))
	}
	return joinSorted(parts)
}

// DiskHashType picks the hash convention of a disk set: sha1 when any disk carries one,
// md5 otherwise. An empty set yields "".
func DiskHashType(disks []model.DiskSpec) string {
	if len(disks) == 0 {
		return ""
	}
	for _, d := range disks {
		if d.SHA1 != "" {
			return HashSHA1
		}
	}
	return HashMD5
}

// DiskSignature returns the canonical signature of a disk set under the given hash type.
// A disk lacking that hash renders as "name/" and only matches another undumped disk.
func DiskSignature(disks []model.DiskSpec, hashType string) string {
	parts := make([]string, 0, len(disks))
	for _, d := range disks {
		var h string
		switch hashType {
		case HashSHA1:
			h = d.SHA1
		case HashMD5:
			h = d.MD5
		}
		parts = append(parts, d.Name+"/"+h)
	}
	return joinSorted(parts)
}

// Signature combines the rom and disk signatures of a game. The "+" marker is always present
// so that a disk-less game never collides with a disk-bearing one.
func Signature(roms []model.RomSpec, disks []model.DiskSpec) string {
	return RomSignature(roms) + "+" + DiskSignature(disks, DiskHashType(disks))
}

// GameHash derives the identity hash of a game from its name and combined signature. The name
// is terminated by a unit separator so that characters cannot shift into the signature.
func GameHash(name, signature string) model.Hash {
	return sha(name + string(rune(unitSeparator)) + signature)
}

// RomHash derives the identity hash of a single rom from name, size and crc.
func RomHash(r model.RomSpec) model.Hash {
	return sha(renderRom(r))
}

func renderRom(r model.RomSpec) string {
	return r.Name + "/" + strconv.FormatInt(r.Size, 10) + "/" + r.CRC
}

func joinSorted(parts []string) string {
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

func sha(s string) model.Hash {
	sum := sha256.Sum256([]byte(s))
	return model.Hash(hex.EncodeToString(sum[:]))
}
