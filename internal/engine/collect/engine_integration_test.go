package collect_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/m2/internal/adapters/content"
	"go.trai.ch/m2/internal/adapters/lock"
	"go.trai.ch/m2/internal/adapters/maven"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/core/ports/mocks"
	"go.trai.ch/m2/internal/engine/collect"
	"go.trai.ch/m2/internal/engine/session"
	"go.uber.org/mock/gomock"
)

func writeRepoFile(t *testing.T, root, rel, data string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
}

func project(g, a, v, body string) string {
	return `<project><modelVersion>4.0.0</modelVersion><groupId>` + g + `</groupId><artifactId>` + a +
		`</artifactId><version>` + v + `</version>` + body + `</project>`
}

func TestEngine_FileRepository(t *testing.T) {
	t.Parallel()

	remote := t.TempDir()
	writeRepoFile(t, remote, "org/example/parent/1.0/parent-1.0.pom", project("org.example", "parent", "1.0",
		`<packaging>pom</packaging><properties><util.version>2.1</util.version></properties>`+
			`<developers><developer><id>someone</id></developer></developers>`))
	writeRepoFile(t, remote, "org/example/plugin/1.0/plugin-1.0.pom", project("org.example", "plugin", "1.0",
		`<parent><groupId>org.example</groupId><artifactId>parent</artifactId><version>1.0</version></parent>`+
			`<packaging>bundle</packaging>`+
			`<dependencies><dependency><groupId>org.example</groupId><artifactId>util</artifactId>`+
			`<version>${util.version}</version><scope>runtime</scope></dependency></dependencies>`))
	writeRepoFile(t, remote, "org/example/util/2.1/util-2.1.pom", project("org.example", "util", "2.1", ""))

	local := t.TempDir()
	cfg := domain.NewOperationConfigurationBuilder().
		LocalRepository(local).
		Repositories(domain.RepositoryConfiguration{ID: "fs", URL: "file://" + filepath.ToSlash(remote)}).
		Build()

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	engine := collect.New(session.NewFactory(maven.New(), content.NewDescriptors(), nil, logger), lock.New())

	plugin, err := domain.NewArtifactCoordinates("org.example", "plugin", "", "", "1.0")
	require.NoError(t, err)

	got, err := engine.ResolveCoordinates(context.Background(), cfg, []domain.DependencyRequest{{Coordinates: plugin}})
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedDependencyArtifact{
		{Coordinates: plugin.WithExtension("jar"), Scope: domain.ScopeCompile},
		{Coordinates: domain.MustArtifactCoordinates("org.example", "util", "", "jar", "2.1"), Scope: domain.ScopeRuntime},
	}, got.Artifacts())
	assert.FileExists(t, filepath.Join(local, domain.LockFileName))

	app := project("org.example", "app", "1.0",
		`<parent><groupId>org.example</groupId><artifactId>parent</artifactId><version>1.0</version></parent>`+
			`<licenses><license><name>unparsed ${missing}</name></license></licenses>`+
			`<dependencies><dependency><groupId>org.example</groupId><artifactId>util</artifactId>`+
			`<version>${util.version}</version><scope>test</scope></dependency></dependencies>`)

	fromPOM, err := engine.ResolvePOM(context.Background(), cfg, ports.ModelSource{Location: "pom.xml", Content: []byte(app)})
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedDependencyArtifact{
		{Coordinates: domain.MustArtifactCoordinates("org.example", "util", "", "jar", "2.1"), Scope: domain.ScopeTest},
	}, fromPOM.Artifacts())
}
