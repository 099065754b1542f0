package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestParseArtifactCoordinates(t *testing.T) {
	tests := []struct {
		input      string
		group      string
		artifact   string
		extension  string
		classifier string
		version    string
	}{
		{"g:a:1.0", "g", "a", "jar", "", "1.0"},
		{"g:a:pom:1.0", "g", "a", "pom", "", "1.0"},
		{"org.example:lib:jar:sources:2.3.1", "org.example", "lib", "jar", "sources", "2.3.1"},
		{"g.h:a-b:war:1.0-SNAPSHOT", "g.h", "a-b", "war", "", "1.0-SNAPSHOT"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := domain.ParseArtifactCoordinates(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.group, c.GroupID())
			assert.Equal(t, tt.artifact, c.ArtifactID())
			assert.Equal(t, tt.extension, c.Extension())
			assert.Equal(t, tt.classifier, c.Classifier())
			assert.Equal(t, tt.version, c.Version())
		})
	}
}

func TestParseArtifactCoordinates_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"g",
		"g:a",
		"g::1.0",
		"g:a:jar:src:x:1.0",
		"g :a:1.0",
		":a:1.0",
		"g:a:1.0:",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseArtifactCoordinates(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
			assert.ErrorIs(t, err, domain.ErrFormat)
		})
	}
}

func TestParseArtifactCoordinates_ErrorMetadata(t *testing.T) {
	_, err := domain.ParseArtifactCoordinates("not-coordinates")
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "not-coordinates", zErr.Metadata()["input"])
}

func TestArtifactCoordinates_RoundTrip(t *testing.T) {
	coords := []domain.ArtifactCoordinates{
		domain.MustArtifactCoordinates("g", "a", "", "jar", "1"),
		domain.MustArtifactCoordinates("g", "a", "tests", "jar", "1"),
		domain.MustArtifactCoordinates("org.x", "y", "", "pom", "2.0-SNAPSHOT"),
		domain.MustArtifactCoordinates("org.x", "y", "natives-linux", "so", "3"),
	}

	for _, c := range coords {
		t.Run(c.String(), func(t *testing.T) {
			parsed, err := domain.ParseArtifactCoordinates(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		})
	}
}

func TestArtifactCoordinates_String(t *testing.T) {
	assert.Equal(t, "g:a:1", domain.MustArtifactCoordinates("g", "a", "", "", "1").String())
	assert.Equal(t, "g:a:war:1", domain.MustArtifactCoordinates("g", "a", "", "war", "1").String())
	assert.Equal(t, "g:a:jar:sources:1", domain.MustArtifactCoordinates("g", "a", "sources", "", "1").String())
}

func TestNewArtifactCoordinates_MissingFields(t *testing.T) {
	tests := []struct {
		name                string
		group, artifact, ve string
	}{
		{"no group", "", "a", "1"},
		{"no artifact", "g", "", "1"},
		{"no version", "g", "a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewArtifactCoordinates(tt.group, tt.artifact, "", "", tt.ve)
			assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
		})
	}
}

func TestArtifactCoordinates_MapKey(t *testing.T) {
	a := domain.MustArtifactCoordinates("g", "a", "", "jar", "1")
	b, err := domain.ParseArtifactCoordinates("g:a:1")
	require.NoError(t, err)

	m := map[domain.ArtifactCoordinates]int{a: 1}
	assert.Equal(t, 1, m[b])
	assert.NotEqual(t, a, a.WithClassifier("sources"))
}

func TestParseBareCoordinates(t *testing.T) {
	c, err := domain.ParseBareCoordinates("g:a:1.0")
	require.NoError(t, err)
	assert.True(t, c.IsBare())
	assert.Equal(t, "g:a:1.0", c.String())

	_, err = domain.ParseBareCoordinates("g:a:jar:1.0")
	assert.ErrorIs(t, err, domain.ErrCoordinatesNotBare)

	_, err = domain.ParseBareCoordinates("g::1.0")
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestArtifactCoordinates_FileName(t *testing.T) {
	assert.Equal(t, "a-1.jar", domain.MustArtifactCoordinates("g", "a", "", "", "1").FileName())
	assert.Equal(t, "a-1-sources.jar", domain.MustArtifactCoordinates("g", "a", "sources", "jar", "1").FileName())
	assert.Equal(t, "a-1.pom", domain.MustArtifactCoordinates("g", "a", "sources", "jar", "1").ProjectCoordinates().FileName())
}

func TestExtensionForPackaging(t *testing.T) {
	assert.Equal(t, "jar", domain.ExtensionForPackaging(""))
	assert.Equal(t, "jar", domain.ExtensionForPackaging("bundle"))
	assert.Equal(t, "jar", domain.ExtensionForPackaging("maven-plugin"))
	assert.Equal(t, "war", domain.ExtensionForPackaging("war"))
	assert.Equal(t, "pom", domain.ExtensionForPackaging("pom"))
}
