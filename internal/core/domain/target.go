package domain

import (
	"crypto/md5" //nolint:gosec // md5 names cache directories, it is not used for security
	"encoding/hex"
	"slices"
	"strings"
)

// DefaultTargetQueries is the browser list used when a project declares no default targets.
var DefaultTargetQueries = []string{
	"ie 11",
	"last 1 Chrome versions",
	"last 1 Firefox versions",
	"last 1 Safari versions",
}

// Target describes a target environment set.
// A target is either a list of browser queries or a file whose raw content identifies it.
// File targets may also carry the browser list parsed from the file, which is used for metadata.
type Target struct {
	Browsers []string
	Path     string
	Content  []byte
}

// NewListTarget creates a target from a list of browser queries.
func NewListTarget(browsers ...string) Target {
	return Target{Browsers: browsers}
}

// IsZero reports whether the target is absent.
func (t Target) IsZero() bool {
	return len(t.Browsers) == 0 && !t.IsFile()
}

// IsFile reports whether the target is identified by file content.
func (t Target) IsFile() bool {
	return t.Path != "" || t.Content != nil
}

// String returns a short human readable description of the target.
func (t Target) String() string {
	switch {
	case t.Path != "":
		return t.Path
	case len(t.Browsers) > 0:
		return strings.Join(t.Browsers, ", ")
	default:
		return "default"
	}
}

// DeriveKey returns the cache key for a target.
//
// A list target is sorted, uppercased and joined with commas before hashing,
// so permutations of the same list share a key. A file target hashes its raw
// content. The zero target yields an empty key.
func DeriveKey(t Target) string {
	switch {
	case t.IsFile():
		sum := md5.Sum(t.Content) //nolint:gosec // see import
		return hex.EncodeToString(sum[:])
	case len(t.Browsers) > 0:
		normalized := slices.Clone(t.Browsers)
		slices.Sort(normalized)
		for i, b := range normalized {
			normalized[i] = strings.ToUpper(b)
		}
		sum := md5.Sum([]byte(strings.Join(normalized, ","))) //nolint:gosec // see import
		return hex.EncodeToString(sum[:])
	default:
		return ""
	}
}
