package maven_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/m2/internal/adapters/maven"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
)

func TestArtifactPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layout domain.RepositoryLayout
		coords domain.ArtifactCoordinates
		want   string
	}{
		{
			name:   "default jar",
			layout: domain.LayoutDefault,
			coords: domain.MustArtifactCoordinates("org.apache.commons", "commons-lang3", "", "jar", "3.14.0"),
			want:   "org/apache/commons/commons-lang3/3.14.0/commons-lang3-3.14.0.jar",
		},
		{
			name:   "default classifier",
			layout: domain.LayoutDefault,
			coords: domain.MustArtifactCoordinates("junit", "junit", "sources", "jar", "4.13.2"),
			want:   "junit/junit/4.13.2/junit-4.13.2-sources.jar",
		},
		{
			name:   "unspecified is default",
			layout: domain.LayoutUnspecified,
			coords: domain.MustArtifactCoordinates("a.b", "c", "", "pom", "1"),
			want:   "a/b/c/1/c-1.pom",
		},
		{
			name:   "legacy",
			layout: domain.LayoutLegacy,
			coords: domain.MustArtifactCoordinates("org.example", "lib", "", "jar", "1.0"),
			want:   "org.example/jars/lib-1.0.jar",
		},
		{
			name:   "legacy without extension",
			layout: domain.LayoutLegacy,
			coords: domain.MustArtifactCoordinates("org.example", "lib", "tests", "", "1.0"),
			want:   "org.example/jars/lib-1.0-tests.jar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, maven.ArtifactPath(tt.layout, tt.coords))
		})
	}
}

func TestMetadataPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "org/example/lib/maven-metadata.xml", maven.MetadataPath(domain.LayoutDefault, "org.example", "lib"))
	assert.Equal(t, "org.example/poms/maven-metadata.xml", maven.MetadataPath(domain.LayoutLegacy, "org.example", "lib"))
}

func TestLocalRepository(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	lrm := maven.NewLocalRepository(base)
	c := domain.MustArtifactCoordinates("org.example", "lib", "", "jar", "1.0")
	repo := ports.RemoteRepository{ID: "central"}

	local := filepath.Join(base, "org", "example", "lib", "1.0", "lib-1.0.jar")
	assert.Equal(t, base, lrm.BaseDir())
	assert.Equal(t, local, lrm.PathForLocalArtifact(c))
	assert.Equal(t, local+".central.part", lrm.PathForRemoteArtifact(c, repo))
	assert.Equal(t, filepath.Join(base, "org", "example", "lib", "maven-metadata-central.xml"),
		lrm.PathForMetadata("org.example", "lib", repo))
}
