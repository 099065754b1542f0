package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// DeploySpecifier selects the classifier and extension of one deployed file.
type DeploySpecifier struct {
	Classifier string
	Extension  string
}

// ParseDeploySpecifier parses "[classifier:]extension". An empty extension means "jar".
func ParseDeploySpecifier(s string) (DeploySpecifier, error) {
	if strings.Count(s, ":") > 1 || strings.ContainsAny(s, " \t") {
		return DeploySpecifier{}, zerr.With(zerr.Wrap(ErrInvalidDeploySpecifier, "parse deploy specifier"), "input", s)
	}
	classifier, ext, found := strings.Cut(s, ":")
	if !found {
		classifier, ext = "", s
	}
	if ext == "" {
		ext = DefaultExtension
	}
	return DeploySpecifier{Classifier: classifier, Extension: ext}, nil
}

// Apply returns bare coordinates completed with the specifier.
func (s DeploySpecifier) Apply(c ArtifactCoordinates) ArtifactCoordinates {
	return c.WithClassifier(s.Classifier).WithExtension(s.Extension)
}

func (s DeploySpecifier) String() string {
	if s.Classifier == "" {
		return s.Extension
	}
	return s.Classifier + ":" + s.Extension
}

// PublishArtifact is a file to be installed or deployed under full coordinates.
type PublishArtifact struct {
	Coordinates ArtifactCoordinates
	File        string
}

// InstallRequest installs a single file into the local repository.
type InstallRequest struct {
	coordinates ArtifactCoordinates
	specifier   DeploySpecifier
	file        string
}

// NewInstallRequest validates that coordinates are bare before any I/O happens.
func NewInstallRequest(coordinates ArtifactCoordinates, specifier DeploySpecifier, file string) (InstallRequest, error) {
	if err := requireBare(coordinates); err != nil {
		return InstallRequest{}, err
	}
	if specifier.Extension == "" {
		specifier.Extension = DefaultExtension
	}
	return InstallRequest{coordinates: coordinates, specifier: specifier, file: file}, nil
}

// Coordinates returns the bare coordinates.
func (r InstallRequest) Coordinates() ArtifactCoordinates { return r.coordinates }

// File returns the source file.
func (r InstallRequest) File() string { return r.file }

// Artifact returns the artifact to install.
func (r InstallRequest) Artifact() PublishArtifact {
	return PublishArtifact{Coordinates: r.specifier.Apply(r.coordinates), File: r.file}
}

// DeployRequest deploys several files of one coordinate family.
type DeployRequest struct {
	coordinates ArtifactCoordinates
	files       map[DeploySpecifier]string
}

// NewDeployRequest validates that coordinates are bare before any I/O happens.
func NewDeployRequest(coordinates ArtifactCoordinates, files map[DeploySpecifier]string) (DeployRequest, error) {
	if err := requireBare(coordinates); err != nil {
		return DeployRequest{}, err
	}
	cp := make(map[DeploySpecifier]string, len(files))
	for spec, file := range files {
		if spec.Extension == "" {
			spec.Extension = DefaultExtension
		}
		cp[spec] = file
	}
	return DeployRequest{coordinates: coordinates, files: cp}, nil
}

// Coordinates returns the bare coordinates.
func (r DeployRequest) Coordinates() ArtifactCoordinates { return r.coordinates }

// Artifacts returns the artifacts to deploy ordered by specifier.
func (r DeployRequest) Artifacts() []PublishArtifact {
	specs := make([]DeploySpecifier, 0, len(r.files))
	for s := range r.files {
		specs = append(specs, s)
	}
	slices.SortFunc(specs, func(a, b DeploySpecifier) int {
		return strings.Compare(a.String(), b.String())
	})
	out := make([]PublishArtifact, 0, len(specs))
	for _, s := range specs {
		out = append(out, PublishArtifact{Coordinates: s.Apply(r.coordinates), File: r.files[s]})
	}
	return out
}

func requireBare(c ArtifactCoordinates) error {
	if c.IsZero() {
		return zerr.Wrap(ErrInvalidCoordinates, "missing coordinates")
	}
	if !c.IsBare() {
		return zerr.With(zerr.Wrap(ErrCoordinatesNotBare, "validate coordinates"), "coordinates", c.String())
	}
	return nil
}
