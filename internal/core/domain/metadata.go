package domain

import (
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// Metadata describes the target an artifact was built for.
// It is stored as JSON in the artifact's .metadata file.
type Metadata struct {
	Key          string            `json:"key"`
	Source       string            `json:"source,omitempty"`
	Browsers     []string          `json:"browsers"`
	Environments map[string]string `json:"environments"`
	Unresolved   []string          `json:"unresolved,omitempty"`
}

var browserAliases = map[string]string{
	"chrome":   "chrome",
	"and_chr":  "chrome",
	"edge":     "edge",
	"firefox":  "firefox",
	"ff":       "firefox",
	"and_ff":   "firefox",
	"safari":   "safari",
	"ios":      "ios",
	"ios_saf":  "ios",
	"ie":       "ie",
	"explorer": "ie",
	"opera":    "opera",
	"samsung":  "samsung",
	"android":  "android",
	"node":     "node",
}

// NewMetadata builds the metadata record for a target.
// Queries naming a browser and a minimum version are resolved into Environments,
// keeping the lowest version per browser. Anything else is kept in Unresolved.
func NewMetadata(t Target) Metadata {
	md := Metadata{
		Key:          DeriveKey(t),
		Browsers:     slices.Clone(t.Browsers),
		Environments: make(map[string]string),
	}
	if t.Path != "" {
		md.Source = t.Path
	}
	if md.Browsers == nil {
		md.Browsers = []string{}
	}

	for _, q := range t.Browsers {
		name, version, ok := ParseBrowserQuery(q)
		if !ok {
			md.Unresolved = append(md.Unresolved, q)
			continue
		}
		if cur, seen := md.Environments[name]; !seen || compareVersions(version, cur) < 0 {
			md.Environments[name] = version
		}
	}
	return md
}

// ParseBrowserQuery resolves queries such as "chrome 90", "Firefox >= 88" or
// "ios_saf 12.2" into a normalized browser name and minimum version.
func ParseBrowserQuery(query string) (name, version string, ok bool) {
	fields := strings.Fields(strings.ToLower(query))
	switch len(fields) {
	case 2:
		name, version = fields[0], strings.TrimPrefix(fields[1], ">=")
	case 3:
		if fields[1] != ">=" {
			return "", "", false
		}
		name, version = fields[0], fields[2]
	default:
		return "", "", false
	}

	canonical, known := browserAliases[name]
	if !known || !isVersion(version) {
		return "", "", false
	}
	return canonical, version, true
}

// browserVersion maps a browser version such as "90" or "12.2" onto its
// semver form so that shorthand versions compare numerically.
func browserVersion(s string) string {
	return "v" + s
}

func isVersion(s string) bool {
	return s != "" && semver.IsValid(browserVersion(s))
}

func compareVersions(a, b string) int {
	return semver.Compare(browserVersion(a), browserVersion(b))
}
