package domain

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// tagPattern matches release tag names: an optional "v" and three numeric components.
var tagPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)

// Tag is a release tag whose name follows the major.minor.patch scheme.
// Name is the ref used for log queries; the numeric triple is only used for ordering.
type Tag struct {
	*semver.Version
	Name string
}

// ParseTag parses a tag name. It reports false for names outside the release pattern.
func ParseTag(name string) (Tag, bool) {
	name = strings.TrimSpace(name)
	m := tagPattern.FindStringSubmatch(name)
	if m == nil {
		return Tag{}, false
	}
	var parts [3]uint64
	for i := range parts {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			// out of range
			return Tag{}, false
		}
		parts[i] = n
	}
	return Tag{
		Version: semver.New(parts[0], parts[1], parts[2], "", ""),
		Name:    name,
	}, true
}

// Compare orders tags by major, then minor, then patch. The name is not compared.
func (t Tag) Compare(other Tag) int {
	if c := cmp.Compare(t.Major(), other.Major()); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Minor(), other.Minor()); c != 0 {
		return c
	}
	return cmp.Compare(t.Patch(), other.Patch())
}

// String returns the display name.
func (t Tag) String() string {
	return t.Name
}

// SortTags sorts tags ascending. Tags with equal triples keep their input order.
func SortTags(tags []Tag) {
	slices.SortStableFunc(tags, func(a, b Tag) int {
		return a.Compare(b)
	})
}
