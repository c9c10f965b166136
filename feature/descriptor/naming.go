package descriptor

import (
	"cmp"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"unicode"
)

// ErrReleaseName is returned for file names that do not follow "<product> <version>.<ext>".
var ErrReleaseName = errors.New("invalid release file name")

var (
	descriptorExts  = []string{".xml", ".dat"}
	compressionExts = []string{ExtBzip2, ExtXZ, ExtZstd}
)

// stripCompression removes one compression extension, if present.
func stripCompression(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range compressionExts {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// IsDescriptor reports whether name looks like a descriptor file, compressed or not.
func IsDescriptor(name string) bool {
	lower := strings.ToLower(stripCompression(path.Base(name)))
	for _, ext := range descriptorExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ParseReleaseName extracts product and version from a descriptor file name. The version is the
// last whitespace separated word; everything before it is the product.
func ParseReleaseName(name string) (product, version string, err error) {
	base := stripCompression(path.Base(name))
	if !IsDescriptor(base) {
		return "", "", fmt.Errorf("%w: %q has no descriptor extension", ErrReleaseName, name)
	}
	base = base[:len(base)-len(path.Ext(base))]

	fields := strings.Fields(base)
	if len(fields) < 2 {
		return "", "", fmt.Errorf("%w: %q", ErrReleaseName, name)
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1], nil
}

type segment struct {
	num   int
	alpha string
	isNum bool
}

// segments splits one dotted component into numeric and alphabetic runs.
func segments(s string) []segment {
	var out []segment
	for len(s) > 0 {
		isNum := unicode.IsDigit(rune(s[0]))
		i := 1
		for i < len(s) && unicode.IsDigit(rune(s[i])) == isNum {
			i++
		}
		if isNum {
			n, _ := strconv.Atoi(s[:i])
			out = append(out, segment{num: n, isNum: true})
		} else {
			out = append(out, segment{alpha: s[:i]})
		}
		s = s[i:]
	}
	return out
}

// CompareVersions orders two version strings. Dotted components compare numerically, a
// trailing alphabetic suffix marks a pre-release (0.37b5 < 0.37), and a missing component
// sorts first (0.37 < 0.37.1). The result is -1, 0 or +1.
func CompareVersions(a, b string) int {
	ac, bc := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < max(len(ac), len(bc)); i++ {
		if i >= len(ac) {
			return -1
		}
		if i >= len(bc) {
			return 1
		}
		if c := compareComponent(segments(ac[i]), segments(bc[i])); c != 0 {
			return c
		}
	}
	return 0
}

func compareComponent(a, b []segment) int {
	for i := 0; i < max(len(a), len(b)); i++ {
		switch {
		case i >= len(a):
			// b continues; an alphabetic continuation is a pre-release of a
			if !b[i].isNum {
				return 1
			}
			return -1
		case i >= len(b):
			if !a[i].isNum {
				return -1
			}
			return 1
		}
		x, y := a[i], b[i]
		if x.isNum != y.isNum {
			if x.isNum {
				return 1
			}
			return -1
		}
		if c := cmp.Or(cmp.Compare(x.num, y.num), cmp.Compare(x.alpha, y.alpha)); c != 0 {
			return c
		}
	}
	return 0
}
