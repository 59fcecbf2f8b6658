package domain

import "time"

// BuildRecord is stored once per artifact after a successful prebuild.
type BuildRecord struct {
	Unit         string    `json:"unit"`
	Version      string    `json:"version"`
	TargetKey    string    `json:"targetKey"`
	Target       string    `json:"target,omitempty"`
	ArtifactPath string    `json:"artifactPath"`
	Groups       []string  `json:"groups"`
	Digest       string    `json:"digest"`
	RunID        string    `json:"runId"`
	BuiltAt      time.Time `json:"builtAt"`
}
