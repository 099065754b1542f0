package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/m2/internal/core/domain"
)

func TestParseDeploySpecifier(t *testing.T) {
	tests := []struct {
		input string
		want  domain.DeploySpecifier
	}{
		{"", domain.DeploySpecifier{Extension: "jar"}},
		{"pom", domain.DeploySpecifier{Extension: "pom"}},
		{"sources:jar", domain.DeploySpecifier{Classifier: "sources", Extension: "jar"}},
		{"javadoc:", domain.DeploySpecifier{Classifier: "javadoc", Extension: "jar"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseDeploySpecifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseDeploySpecifier("a:b:c")
	assert.ErrorIs(t, err, domain.ErrInvalidDeploySpecifier)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestNewDeployRequest_RejectsNonBare(t *testing.T) {
	files := map[domain.DeploySpecifier]string{{Extension: "jar"}: "/a.jar"}

	_, err := domain.NewDeployRequest(domain.MustArtifactCoordinates("g", "a", "", "jar", "1"), files)
	assert.ErrorIs(t, err, domain.ErrCoordinatesNotBare)

	_, err = domain.NewDeployRequest(domain.MustArtifactCoordinates("g", "a", "sources", "", "1"), files)
	assert.ErrorIs(t, err, domain.ErrFormat)

	_, err = domain.NewInstallRequest(domain.MustArtifactCoordinates("g", "a", "", "pom", "1"), domain.DeploySpecifier{}, "/a")
	assert.ErrorIs(t, err, domain.ErrCoordinatesNotBare)
}

func TestDeployRequest_Artifacts(t *testing.T) {
	bare := domain.MustArtifactCoordinates("g", "a", "", "", "1")
	req, err := domain.NewDeployRequest(bare, map[domain.DeploySpecifier]string{
		{Extension: "pom"}:                        "/a.pom",
		{Extension: "jar"}:                        "/a.jar",
		{Classifier: "sources", Extension: "jar"}: "/a-sources.jar",
	})
	require.NoError(t, err)

	arts := req.Artifacts()
	require.Len(t, arts, 3)
	assert.Equal(t, "g:a:jar:1", arts[0].Coordinates.String())
	assert.Equal(t, "/a.jar", arts[0].File)
	assert.Equal(t, "g:a:pom:1", arts[1].Coordinates.String())
	assert.Equal(t, "g:a:jar:sources:1", arts[2].Coordinates.String())
}

func TestInstallRequest_Artifact(t *testing.T) {
	bare := domain.MustArtifactCoordinates("g", "a", "", "", "1")
	req, err := domain.NewInstallRequest(bare, domain.DeploySpecifier{}, "/a.jar")
	require.NoError(t, err)

	art := req.Artifact()
	assert.Equal(t, "g:a:jar:1", art.Coordinates.String())
	assert.Equal(t, "/a.jar", art.File)
}
