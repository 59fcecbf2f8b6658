package domain

import "path/filepath"

const (
	// PrebuiltDirName is the name of the per-unit cache root.
	PrebuiltDirName = "pre-built"

	// MetadataFileName is the name of the metadata record stored in each artifact.
	MetadataFileName = ".metadata"

	// LockSuffix is appended to an artifact path to form its lock file.
	LockSuffix = ".lock"

	// WorkFileName is the name of the workspace configuration file.
	WorkFileName = "prebuild.work.yaml"

	// UnitFileName is the name of the unit configuration file.
	UnitFileName = "prebuild.yaml"

	// PackageFileName is the name of the package manifest used as a fallback for name and version.
	PackageFileName = "package.json"

	// InternalDirName is the name of the internal workspace directory.
	InternalDirName = ".prebuild"

	// StoreDirName is the name of the build record store directory.
	StoreDirName = "store"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultTargetsDir returns the targets directory used when none is configured.
func DefaultTargetsDir() string {
	return filepath.Join("config", "prebuild")
}

// DefaultStorePath returns the default path for the build record store.
// It joins .prebuild and store.
func DefaultStorePath() string {
	return filepath.Join(InternalDirName, StoreDirName)
}
