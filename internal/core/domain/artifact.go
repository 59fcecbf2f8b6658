package domain

import (
	"crypto/md5" //nolint:gosec // keys are content fingerprints, not secrets
	"encoding/hex"
	"path/filepath"
	"strings"
)

// CacheRoot returns the directory under which a unit's artifacts are stored.
// An absolute override wins; anything else falls back to <unitRoot>/pre-built.
func CacheRoot(override, unitRoot string) string {
	if override != "" && filepath.IsAbs(override) {
		return filepath.Clean(override)
	}
	return filepath.Join(unitRoot, PrebuiltDirName)
}

// ArtifactPath returns the artifact directory for a target key and unit version.
func ArtifactPath(cacheRoot, key, version string) string {
	return filepath.Join(cacheRoot, key+"-"+version)
}

// ArtifactLockPath returns the lock file guarding an artifact directory.
func ArtifactLockPath(artifact string) string {
	return filepath.Clean(artifact) + LockSuffix
}

// GroupPath returns the location of a single output group inside an artifact.
func GroupPath(artifact, group string) string {
	return filepath.Join(artifact, group)
}

// MetadataPath returns the location of the metadata record inside an artifact.
func MetadataPath(artifact string) string {
	return filepath.Join(artifact, MetadataFileName)
}

// ParseArtifactName splits an artifact directory name into its target key and
// unit version. Lock files and names without a key report false.
func ParseArtifactName(name string) (key, version string, ok bool) {
	if strings.HasSuffix(name, LockSuffix) {
		return "", "", false
	}
	key, version, found := strings.Cut(name, "-")
	if !found || key == "" {
		return "", "", false
	}
	return key, version, true
}

// IsTargetKey reports whether s has the shape of a key returned by DeriveKey.
func IsTargetKey(s string) bool {
	if len(s) != hex.EncodedLen(md5.Size) {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
