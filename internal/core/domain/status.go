package domain

// ArtifactState classifies a cached artifact against its build record.
type ArtifactState string

const (
	// ArtifactMissing means neither an artifact nor a record exists.
	ArtifactMissing ArtifactState = "missing"
	// ArtifactPresent means the artifact exists and matches its record, or was not verified.
	ArtifactPresent ArtifactState = "present"
	// ArtifactUnrecorded means the artifact exists but no build record was found.
	ArtifactUnrecorded ArtifactState = "unrecorded"
	// ArtifactModified means the artifact content no longer matches its recorded digest.
	ArtifactModified ArtifactState = "modified"
	// ArtifactStale means a record exists but the artifact was removed.
	ArtifactStale ArtifactState = "stale"
)

// ArtifactStatus describes one (unit, target) artifact.
type ArtifactStatus struct {
	Unit      string
	Version   string
	Target    string
	TargetKey string
	Path      string
	State     ArtifactState
	Record    *BuildRecord
}
