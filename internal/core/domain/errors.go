package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when neither a workfile nor a unit file can be found.
	ErrConfigNotFound = zerr.New("could not find prebuild.work.yaml or prebuild.yaml")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingUnitName is returned when a unit declares no name and has no package.json to fall back on.
	ErrMissingUnitName = zerr.New("missing unit name")

	// ErrInvalidUnitName is returned when a unit name is not a valid package name.
	ErrInvalidUnitName = zerr.New("invalid unit name")

	// ErrDuplicateUnit is returned when two units in a workspace share a name.
	ErrDuplicateUnit = zerr.New("duplicate unit name")

	// ErrUnitNotFound is returned when a unit selected by name is not registered.
	ErrUnitNotFound = zerr.New("unit not found")

	// ErrUnitEnumerationFailed is returned when the unit registry cannot be built.
	ErrUnitEnumerationFailed = zerr.New("failed to enumerate units")

	// ErrTargetsReadFailed is returned when the prebuild targets directory cannot be read.
	ErrTargetsReadFailed = zerr.New("failed to read prebuild targets")

	// ErrTargetParseFailed is returned when a target file does not contain a browser list.
	ErrTargetParseFailed = zerr.New("failed to parse target file")

	// ErrNoGroupsConfigured is returned when no output groups can be derived for a unit.
	ErrNoGroupsConfigured = zerr.New(
		"no output groups to prebuild: pass --groups or declare 'prebuild' in prebuild.yaml",
	)

	// ErrGroupNotDeclared is returned when a unit does not declare the requested output group.
	ErrGroupNotDeclared = zerr.New("output group not declared by unit")

	// ErrGroupEmpty is returned when a looked up output group produces nothing.
	ErrGroupEmpty = zerr.New("output group produces no output")

	// ErrGroupProductionFailed is returned when an output group cannot be produced.
	ErrGroupProductionFailed = zerr.New("failed to produce output group")

	// ErrEngineFailed is returned when the build engine fails to materialize a composite.
	ErrEngineFailed = zerr.New("build engine failed")

	// ErrEngineCommandFailed is returned when the configured engine command exits unsuccessfully.
	ErrEngineCommandFailed = zerr.New("build command failed")

	// ErrArtifactCopyFailed is returned when a materialized build cannot be copied into the cache.
	ErrArtifactCopyFailed = zerr.New("failed to copy build output into cache")

	// ErrMetadataWriteFailed is returned when the artifact metadata record cannot be written.
	ErrMetadataWriteFailed = zerr.New("failed to write artifact metadata")

	// ErrInvalidationFailed is returned when a stored artifact cannot be removed.
	ErrInvalidationFailed = zerr.New("failed to remove prebuilt artifact")

	// ErrArtifactLocked is returned when another build holds the artifact lock.
	ErrArtifactLocked = zerr.New("prebuilt artifact is locked by another build")

	// ErrHashFailed is returned when an artifact digest cannot be computed.
	ErrHashFailed = zerr.New("failed to compute artifact digest")

	// ErrStoreReadFailed is returned when reading from the build record store fails.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to decode build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to encode build record")

	// ErrStoreCreateFailed is returned when the store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrInvalidLogFormat is returned when an unknown log format is requested.
	ErrInvalidLogFormat = zerr.New("invalid log format")

	// ErrPrebuildFailed is returned when at least one unit or target failed to prebuild.
	ErrPrebuildFailed = zerr.New("prebuild failed")

	// ErrClearFailed is returned when at least one cache root could not be cleared.
	ErrClearFailed = zerr.New("clear failed")
)
