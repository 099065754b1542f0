package domain

import "time"

// DependencyKind classifies a dependency an operation reported to its host.
type DependencyKind string

const (
	// DependencyInput is a caller-supplied file the operation read.
	DependencyInput DependencyKind = "input"
	// DependencyOutput is a file the operation wrote into the output tree.
	DependencyOutput DependencyKind = "output"
	// DependencyExecution is a file outside the build tree, typically in the local repository.
	DependencyExecution DependencyKind = "execution"
)

// RecordedDependency is a path and the content it had when the operation ran.
type RecordedDependency struct {
	Kind       DependencyKind    `json:"kind"`
	Path       string            `json:"path"`
	Descriptor ContentDescriptor `json:"descriptor"`
}

// RecordedArtifact is the persisted outcome of one materialized artifact.
type RecordedArtifact struct {
	Coordinates string `json:"coordinates"`
	Path        string `json:"path,omitzero"`
	LocalPath   string `json:"local_path,omitzero"`
	Error       string `json:"error,omitzero"`
}

// BuildRecord is what an operation reported to the host during its last execution.
type BuildRecord struct {
	Key           string               `json:"key"`
	Operation     string               `json:"operation,omitzero"`
	Dependencies  []RecordedDependency `json:"dependencies,omitzero"`
	Artifacts     []RecordedArtifact   `json:"artifacts,omitzero"`
	Warnings      []string             `json:"warnings,omitzero"`
	RebuildAlways bool                 `json:"rebuild_always,omitzero"`
	Timestamp     time.Time            `json:"timestamp,omitzero"`
}

// Paths returns the recorded dependency paths.
func (r *BuildRecord) Paths() []string {
	out := make([]string, 0, len(r.Dependencies))
	for _, d := range r.Dependencies {
		out = append(out, d.Path)
	}
	return out
}
