package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultExtension is the extension assumed when coordinates omit one.
const DefaultExtension = "jar"

// PomExtension is the extension of project model files.
const PomExtension = "pom"

var coordinatesPattern = regexp.MustCompile(`^([^: ]+):([^: ]+)(?::([^: ]+)(?::([^: ]+))?)?:([^: ]+)$`)

// ArtifactCoordinates identifies a single artifact file in a Maven repository.
// The zero value is not valid; use NewArtifactCoordinates or ParseArtifactCoordinates.
// Values are comparable and can be used as map keys. An empty classifier or
// extension means the component is absent.
type ArtifactCoordinates struct {
	groupID    string
	artifactID string
	classifier string
	extension  string
	version    string
}

// NewArtifactCoordinates creates coordinates from their components.
// Group, artifact and version are mandatory.
func NewArtifactCoordinates(groupID, artifactID, classifier, extension, version string) (ArtifactCoordinates, error) {
	required := [...]struct{ field, value string }{
		{"groupId", groupID},
		{"artifactId", artifactID},
		{"version", version},
	}
	for _, r := range required {
		if r.value == "" {
			return ArtifactCoordinates{}, zerr.With(zerr.Wrap(ErrInvalidCoordinates, "missing "+r.field), "field", r.field)
		}
	}
	return ArtifactCoordinates{
		groupID:    groupID,
		artifactID: artifactID,
		classifier: classifier,
		extension:  extension,
		version:    version,
	}, nil
}

// MustArtifactCoordinates is like NewArtifactCoordinates but panics on invalid input.
func MustArtifactCoordinates(groupID, artifactID, classifier, extension, version string) ArtifactCoordinates {
	c, err := NewArtifactCoordinates(groupID, artifactID, classifier, extension, version)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseArtifactCoordinates parses "group:artifact[:extension[:classifier]]:version".
// A missing extension defaults to "jar".
func ParseArtifactCoordinates(s string) (ArtifactCoordinates, error) {
	m := coordinatesPattern.FindStringSubmatch(s)
	if m == nil {
		return ArtifactCoordinates{}, zerr.With(zerr.Wrap(ErrInvalidCoordinates, "parse coordinates"), "input", s)
	}
	ext := m[3]
	if ext == "" {
		ext = DefaultExtension
	}
	return NewArtifactCoordinates(m[1], m[2], m[4], ext, m[5])
}

// ParseBareCoordinates parses "group:artifact:version" without classifier or extension.
func ParseBareCoordinates(s string) (ArtifactCoordinates, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return ArtifactCoordinates{}, zerr.With(zerr.Wrap(ErrCoordinatesNotBare, "parse coordinates"), "input", s)
	}
	for _, p := range parts {
		if strings.ContainsAny(p, " \t") {
			return ArtifactCoordinates{}, zerr.With(zerr.Wrap(ErrInvalidCoordinates, "parse coordinates"), "input", s)
		}
	}
	return NewArtifactCoordinates(parts[0], parts[1], "", "", parts[2])
}

// GroupID returns the group identifier.
func (c ArtifactCoordinates) GroupID() string { return c.groupID }

// ArtifactID returns the artifact identifier.
func (c ArtifactCoordinates) ArtifactID() string { return c.artifactID }

// Classifier returns the classifier, or "" when absent.
func (c ArtifactCoordinates) Classifier() string { return c.classifier }

// Extension returns the extension, or "" when absent.
func (c ArtifactCoordinates) Extension() string { return c.extension }

// Version returns the version.
func (c ArtifactCoordinates) Version() string { return c.version }

// IsZero reports whether c is the zero value.
func (c ArtifactCoordinates) IsZero() bool { return c == ArtifactCoordinates{} }

// IsBare reports whether c carries neither classifier nor extension.
func (c ArtifactCoordinates) IsBare() bool { return c.classifier == "" && c.extension == "" }

// IsSnapshot reports whether the version denotes a snapshot.
func (c ArtifactCoordinates) IsSnapshot() bool { return IsSnapshotVersion(c.version) }

// WithExtension returns a copy of c with the given extension.
func (c ArtifactCoordinates) WithExtension(ext string) ArtifactCoordinates {
	c.extension = ext
	return c
}

// WithClassifier returns a copy of c with the given classifier.
func (c ArtifactCoordinates) WithClassifier(classifier string) ArtifactCoordinates {
	c.classifier = classifier
	return c
}

// WithVersion returns a copy of c with the given version.
func (c ArtifactCoordinates) WithVersion(version string) ArtifactCoordinates {
	c.version = version
	return c
}

// ProjectCoordinates returns the coordinates of the project model describing c.
func (c ArtifactCoordinates) ProjectCoordinates() ArtifactCoordinates {
	c.classifier = ""
	c.extension = PomExtension
	return c
}

// FileName returns "artifact-version[-classifier].extension".
func (c ArtifactCoordinates) FileName() string {
	var b strings.Builder
	b.WriteString(c.artifactID)
	b.WriteByte('-')
	b.WriteString(c.version)
	if c.classifier != "" {
		b.WriteByte('-')
		b.WriteString(c.classifier)
	}
	b.WriteByte('.')
	if c.extension == "" {
		b.WriteString(DefaultExtension)
	} else {
		b.WriteString(c.extension)
	}
	return b.String()
}

// String returns "group:artifact[:extension[:classifier]]:version".
// When only a classifier is present the extension slot is filled with "jar"
// so the result stays parseable.
func (c ArtifactCoordinates) String() string {
	var b strings.Builder
	b.WriteString(c.groupID)
	b.WriteByte(':')
	b.WriteString(c.artifactID)
	if c.extension != "" || c.classifier != "" {
		b.WriteByte(':')
		if c.extension == "" {
			b.WriteString(DefaultExtension)
		} else {
			b.WriteString(c.extension)
		}
		if c.classifier != "" {
			b.WriteByte(':')
			b.WriteString(c.classifier)
		}
	}
	b.WriteByte(':')
	b.WriteString(c.version)
	return b.String()
}

// IsSnapshotVersion reports whether version is a snapshot version.
func IsSnapshotVersion(version string) bool {
	return strings.HasSuffix(version, "-SNAPSHOT") || version == "SNAPSHOT"
}
