package collect_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/core/ports/mocks"
	"go.trai.ch/m2/internal/engine/collect"
	"go.trai.ch/m2/internal/engine/session"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type harness struct {
	engine   *collect.Engine
	resolver *mocks.MockResolver
	locker   *mocks.MockRepositoryLocker
	local    string
	cfg      *domain.OperationConfiguration
}

func newHarness(t *testing.T) harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	resolver := mocks.NewMockResolver(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	descriptors := mocks.NewMockContentDescriptors(ctrl)
	descriptors.EXPECT().Invalidate(gomock.Any()).AnyTimes()

	local := t.TempDir()
	resolver.EXPECT().NewLocalRepositoryManager(local).Return(mocks.NewMockLocalRepositoryManager(ctrl)).AnyTimes()

	locker := mocks.NewMockRepositoryLocker(ctrl)
	return harness{
		engine:   collect.New(session.NewFactory(resolver, descriptors, nil, logger), locker),
		resolver: resolver,
		locker:   locker,
		local:    local,
		cfg:      domain.NewOperationConfigurationBuilder().LocalRepository(local).Repositories().Build(),
	}
}

func (h harness) expectLock() {
	h.locker.EXPECT().WithLock(gomock.Any(), h.local, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, op func(context.Context) error) error {
			return op(ctx)
		})
}

func coords(t *testing.T, s string) domain.ArtifactCoordinates {
	t.Helper()
	c, err := domain.ParseArtifactCoordinates(s)
	require.NoError(t, err)
	return c
}

func node(c domain.ArtifactCoordinates, scope string, children ...*ports.DependencyNode) *ports.DependencyNode {
	return &ports.DependencyNode{Dependency: &ports.Dependency{Artifact: c, Scope: scope}, Children: children}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	a := coords(t, "org.example:a:1.0")
	b := coords(t, "org.example:b:1.0")
	c := coords(t, "org.example:c:1.0")
	d := coords(t, "org.example:d:1.0")

	shared := node(d, "")
	root := &ports.DependencyNode{Children: []*ports.DependencyNode{
		node(a, domain.ScopeCompile, node(c, domain.ScopeRuntime), shared),
		node(b, domain.ScopeTest, node(c, domain.ScopeTest), shared),
	}}

	got := collect.Flatten(root)
	assert.Equal(t, []domain.ResolvedDependencyArtifact{
		{Coordinates: a, Scope: domain.ScopeCompile},
		{Coordinates: c, Scope: domain.ScopeRuntime},
		{Coordinates: d, Scope: domain.ScopeCompile},
		{Coordinates: b, Scope: domain.ScopeTest},
	}, got.Artifacts())
}

func TestFlatten_Nil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, collect.Flatten(nil).Len())
	assert.Equal(t, 0, collect.Flatten(&ports.DependencyNode{}).Len())
}

func TestResolveCoordinates_InfersExtension(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.expectLock()

	bundle, err := domain.NewArtifactCoordinates("org.example", "bundle", "", "", "1.0")
	require.NoError(t, err)
	war := coords(t, "org.example:webapp:war:2.0")
	transitive := coords(t, "org.example:util:1.0")

	pomFile := filepath.Join(h.local, "bundle-1.0.pom")
	require.NoError(t, os.WriteFile(pomFile, []byte("<project/>"), 0o600))

	exclusion, err := domain.ParseExclusion("org.unwanted")
	require.NoError(t, err)
	optional := true

	h.resolver.EXPECT().ResolveArtifacts(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *ports.Session, reqs []ports.ArtifactRequest) ([]ports.ArtifactResult, error) {
			require.True(t, s.ReadOnly())
			require.Len(t, reqs, 1)
			assert.Equal(t, "org.example:bundle:pom:1.0", reqs[0].Artifact.String())
			return []ports.ArtifactResult{{Request: reqs[0], File: pomFile}}, nil
		})
	h.resolver.EXPECT().BuildModel(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ports.Session, req ports.ModelBuildingRequest) (*domain.ProjectModel, error) {
			assert.Equal(t, pomFile, req.Source.Location)
			assert.Equal(t, "<project/>", string(req.Source.Content))
			assert.NotNil(t, req.Resolver)
			assert.NotNil(t, req.Validator)
			return &domain.ProjectModel{GroupID: "org.example", ArtifactID: "bundle", Version: "1.0", Packaging: "bundle"}, nil
		})
	h.resolver.EXPECT().CollectDependencies(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ports.Session, req ports.CollectRequest) (*ports.DependencyNode, error) {
			assert.Nil(t, req.Root)
			assert.Empty(t, req.Repositories)
			require.Len(t, req.Dependencies, 2)

			first := req.Dependencies[0]
			assert.Equal(t, "org.example:bundle:jar:1.0", first.Artifact.String())
			assert.Equal(t, domain.ScopeCompile, first.Scope)
			assert.True(t, first.Optional)
			assert.Equal(t, []domain.ExclusionOption{{GroupID: "org.unwanted", ArtifactID: "*", Classifier: "*", Extension: "*"}}, first.Exclusions)

			second := req.Dependencies[1]
			assert.Equal(t, war, second.Artifact)
			assert.Equal(t, domain.ScopeProvided, second.Scope)
			assert.False(t, second.Optional)

			return &ports.DependencyNode{Children: []*ports.DependencyNode{
				node(first.Artifact, first.Scope, node(transitive, domain.ScopeCompile)),
				node(war, domain.ScopeProvided),
			}}, nil
		})

	got, err := h.engine.ResolveCoordinates(context.Background(), h.cfg, []domain.DependencyRequest{
		{Coordinates: bundle, Option: domain.DependencyOption{Optional: &optional, Exclusions: []domain.ExclusionOption{exclusion}}},
		{Coordinates: war, Option: domain.DependencyOption{Scope: domain.ScopeProvided}},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedDependencyArtifact{
		{Coordinates: bundle.WithExtension("jar"), Scope: domain.ScopeCompile},
		{Coordinates: transitive, Scope: domain.ScopeCompile},
		{Coordinates: war, Scope: domain.ScopeProvided},
	}, got.Artifacts())
}

func TestResolveCoordinates_InferenceFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.expectLock()

	missing, err := domain.NewArtifactCoordinates("org.example", "missing", "", "", "1.0")
	require.NoError(t, err)

	h.resolver.EXPECT().ResolveArtifacts(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ports.Session, reqs []ports.ArtifactRequest) ([]ports.ArtifactResult, error) {
			return []ports.ArtifactResult{{Request: reqs[0], Errors: []error{domain.ErrArtifactNotFound}}}, nil
		})

	_, err = h.engine.ResolveCoordinates(context.Background(), h.cfg, []domain.DependencyRequest{{Coordinates: missing}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResolution)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestResolveCoordinates_Empty(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	got, err := h.engine.ResolveCoordinates(context.Background(), h.cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestResolveCoordinates_Duplicates(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.expectLock()

	jar := coords(t, "org.example:lib:1.0")
	h.resolver.EXPECT().CollectDependencies(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ports.Session, req ports.CollectRequest) (*ports.DependencyNode, error) {
			require.Len(t, req.Dependencies, 1)
			assert.Equal(t, domain.ScopeRuntime, req.Dependencies[0].Scope)
			return &ports.DependencyNode{Children: []*ports.DependencyNode{node(jar, domain.ScopeRuntime)}}, nil
		})

	got, err := h.engine.ResolveCoordinates(context.Background(), h.cfg, []domain.DependencyRequest{
		{Coordinates: jar},
		{Coordinates: jar, Option: domain.DependencyOption{Scope: domain.ScopeRuntime}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestResolveCoordinates_LockFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.locker.EXPECT().WithLock(gomock.Any(), h.local, gomock.Any()).Return(zerr.Wrap(domain.ErrLockAcquisition, "acquire lock"))

	_, err := h.engine.ResolveCoordinates(context.Background(), h.cfg, []domain.DependencyRequest{
		{Coordinates: coords(t, "org.example:lib:1.0")},
	})
	require.ErrorIs(t, err, domain.ErrLockAcquisition)
}

func TestResolveCoordinates_ConfigurationError(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	cfg := domain.NewOperationConfigurationBuilder().LocalRepository("relative").Build()

	_, err := h.engine.ResolveCoordinates(context.Background(), cfg, []domain.DependencyRequest{
		{Coordinates: coords(t, "org.example:lib:1.0")},
	})
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestResolvePOM(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.expectLock()

	src := ports.ModelSource{Location: "/project/pom.xml", Content: []byte("<project/>")}
	h.resolver.EXPECT().BuildModel(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ports.Session, req ports.ModelBuildingRequest) (*domain.ProjectModel, error) {
			assert.Equal(t, src, req.Source)
			return &domain.ProjectModel{
				GroupID: "org.example", ArtifactID: "app", Version: "1.0",
				Dependencies: []domain.ModelDependency{
					{GroupID: "org.example", ArtifactID: "api", Version: "1.0"},
					{GroupID: "org.example", ArtifactID: "api", Version: "1.0", Type: "test-jar", Scope: "test", Optional: "TRUE"},
					{
						GroupID: "org.example", ArtifactID: "impl", Version: "2.0", Scope: "runtime", Optional: "yes",
						Exclusions: []domain.ModelExclusion{{GroupID: "commons-logging", ArtifactID: "commons-logging"}},
					},
				},
			}, nil
		})
	h.resolver.EXPECT().CollectDependencies(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ports.Session, req ports.CollectRequest) (*ports.DependencyNode, error) {
			require.Len(t, req.Dependencies, 3)
			assert.Equal(t, "org.example:api:jar:1.0", req.Dependencies[0].Artifact.String())
			assert.Equal(t, domain.ScopeCompile, req.Dependencies[0].Scope)

			assert.Equal(t, "org.example:api:jar:tests:1.0", req.Dependencies[1].Artifact.String())
			assert.Equal(t, domain.ScopeTest, req.Dependencies[1].Scope)
			assert.True(t, req.Dependencies[1].Optional)

			assert.False(t, req.Dependencies[2].Optional)
			assert.Equal(t, []domain.ExclusionOption{{GroupID: "commons-logging", ArtifactID: "commons-logging", Classifier: "*", Extension: "*"}},
				req.Dependencies[2].Exclusions)

			root := &ports.DependencyNode{}
			for _, d := range req.Dependencies {
				root.Children = append(root.Children, node(d.Artifact, d.Scope))
			}
			return root, nil
		})

	got, err := h.engine.ResolvePOM(context.Background(), h.cfg, src)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
	assert.Equal(t, 1, got.Scopes().Get(domain.ScopeTest).Len())
	assert.Equal(t, 2, got.Scopes().Get(domain.ScopeExecution).Len())
}

func TestResolvePOM_ModelFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.expectLock()

	h.resolver.EXPECT().BuildModel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, zerr.Wrap(domain.ErrModelBuilding, "parse pom.xml"))

	_, err := h.engine.ResolvePOM(context.Background(), h.cfg, ports.ModelSource{Location: "pom.xml"})
	require.ErrorIs(t, err, domain.ErrModelBuilding)
}

func TestDependencyValidator(t *testing.T) {
	t.Parallel()

	v := collect.DependencyValidator{}
	m := &domain.ProjectModel{
		GroupID: "org.example", ArtifactID: "app", Version: "1.0",
		Dependencies: []domain.ModelDependency{{GroupID: "org.example", ArtifactID: "lib", Version: "1.0"}},
		Developers:   []domain.ModelContributor{{ID: "dev"}},
		Licenses:     []domain.ModelLicense{{Name: "Apache-2.0"}},
		Profiles:     []domain.ModelProfile{{ID: "release"}},
		Build:        &domain.ModelBuild{Plugins: []domain.ModelPlugin{{ArtifactID: "maven-compiler-plugin"}}},
		Repositories: []domain.ModelRepository{{ID: "snapshots", URL: "https://example.com"}},
	}

	require.NoError(t, v.ValidateRaw(m))
	assert.Nil(t, m.Developers)
	assert.Nil(t, m.Licenses)
	assert.Nil(t, m.Profiles)
	assert.Nil(t, m.Build)
	assert.Nil(t, m.Repositories)
	assert.Len(t, m.Dependencies, 1)

	m.Reporting = &domain.ModelBuild{}
	require.NoError(t, v.ValidateEffective(m))
	assert.Nil(t, m.Reporting)

	m.Dependencies = append(m.Dependencies, domain.ModelDependency{GroupID: "org.example", ArtifactID: "unversioned"})
	require.ErrorIs(t, v.ValidateEffective(m), domain.ErrModelValidation)

	require.ErrorIs(t, v.ValidateRaw(&domain.ProjectModel{}), domain.ErrModelValidation)
}

func TestDependencyValidator_ReportsFieldsInOrder(t *testing.T) {
	t.Parallel()

	v := collect.DependencyValidator{}
	for range 20 {
		err := v.ValidateEffective(&domain.ProjectModel{})
		require.ErrorIs(t, err, domain.ErrModelValidation)
		assert.Contains(t, err.Error(), "missing groupId")

		err = v.ValidateEffective(&domain.ProjectModel{GroupID: "org.example"})
		assert.Contains(t, err.Error(), "missing artifactId")
	}
}
