package publish_test

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
	"go.trai.ch/m2/internal/engine/publish"
	"go.trai.ch/m2/internal/engine/session"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type harness struct {
	publisher   *publish.Publisher
	resolver    *mocks.MockResolver
	locker      *mocks.MockRepositoryLocker
	descriptors *mocks.MockContentDescriptors
	lrm         *mocks.MockLocalRepositoryManager
	recorder    *mocks.MockDependencyRecorder
	files       *mocks.MockFileMirror
	out         *mocks.MockOutputTree
	local       string
	cfg         *domain.OperationConfiguration
}

func newHarness(t *testing.T) harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := harness{
		resolver:    mocks.NewMockResolver(ctrl),
		locker:      mocks.NewMockRepositoryLocker(ctrl),
		descriptors: mocks.NewMockContentDescriptors(ctrl),
		lrm:         mocks.NewMockLocalRepositoryManager(ctrl),
		recorder:    mocks.NewMockDependencyRecorder(ctrl),
		files:       mocks.NewMockFileMirror(ctrl),
		out:         mocks.NewMockOutputTree(ctrl),
		local:       t.TempDir(),
	}
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	h.cfg = domain.NewOperationConfigurationBuilder().
		LocalRepository(h.local).
		Repositories(domain.RepositoryConfiguration{ID: "fs", URL: "file:///srv/repo"}).
		Build()
	h.publisher = publish.New(session.NewFactory(h.resolver, h.descriptors, nil, logger), h.locker, h.descriptors)
	return h
}

func (h harness) expectLock(path any) {
	h.locker.EXPECT().WithLock(gomock.Any(), path, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, op func(context.Context) error) error {
			return op(ctx)
		})
}

var app = domain.MustArtifactCoordinates("org.example", "app", "", "", "1.0")

func installRequest(t *testing.T, spec string) domain.InstallRequest {
	t.Helper()
	s, err := domain.ParseDeploySpecifier(spec)
	require.NoError(t, err)
	req, err := domain.NewInstallRequest(app, s, "lib/app.jar")
	require.NoError(t, err)
	return req
}

func TestInstall(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sources := domain.MustArtifactCoordinates("org.example", "app", "sources", "jar", "1.0")
	installed := filepath.Join(h.local, "org/example/app/1.0/app-1.0-sources.jar")
	desc := domain.ContentDescriptor{Exists: true, Size: 3, Hash: 7}

	h.files.EXPECT().Mirror(gomock.Any(), "lib/app.jar", h.recorder).Return("/work/lib/app.jar", nil)
	h.resolver.EXPECT().NewLocalRepositoryManager(h.local).Return(h.lrm)
	h.expectLock(h.local)
	h.resolver.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *ports.Session, req ports.InstallRequest) error {
			assert.True(t, s.ReadOnly())
			assert.Equal(t, []domain.PublishArtifact{{Coordinates: sources, File: "/work/lib/app.jar"}}, req.Artifacts)
			return nil
		})
	h.lrm.EXPECT().PathForLocalArtifact(sources).Return(installed)
	h.descriptors.EXPECT().Descriptor(installed).Return(desc, nil)
	h.recorder.EXPECT().ReportExecution(installed, desc)

	outcome, err := h.publisher.Install(context.Background(), h.cfg, installRequest(t, "sources:jar"), h.files, h.recorder)
	require.NoError(t, err)
	assert.Equal(t, sources, outcome.Coordinates)
	assert.Equal(t, installed, outcome.Path)
	assert.Equal(t, desc, outcome.Descriptor)
}

func TestInstall_MissingSource(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.files.EXPECT().Mirror(gomock.Any(), "lib/app.jar", h.recorder).
		Return("", zerr.Wrap(domain.ErrNotFound, "source missing"))

	_, err := h.publisher.Install(context.Background(), h.cfg, installRequest(t, ""), h.files, h.recorder)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInstall_Failure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.files.EXPECT().Mirror(gomock.Any(), gomock.Any(), gomock.Any()).Return("/work/lib/app.jar", nil)
	h.resolver.EXPECT().NewLocalRepositoryManager(h.local).Return(h.lrm)
	h.expectLock(h.local)
	h.resolver.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any()).Return(zerr.Wrap(domain.ErrInstallFailed, "install"))

	_, err := h.publisher.Install(context.Background(), h.cfg, installRequest(t, ""), h.files, h.recorder)
	require.ErrorIs(t, err, domain.ErrInstallFailed)
}

func TestInstall_LockFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.files.EXPECT().Mirror(gomock.Any(), gomock.Any(), gomock.Any()).Return("/work/lib/app.jar", nil)
	h.resolver.EXPECT().NewLocalRepositoryManager(h.local).Return(h.lrm)
	h.locker.EXPECT().WithLock(gomock.Any(), h.local, gomock.Any()).Return(zerr.Wrap(domain.ErrLockAcquisition, "acquire lock"))

	_, err := h.publisher.Install(context.Background(), h.cfg, installRequest(t, ""), h.files, h.recorder)
	require.ErrorIs(t, err, domain.ErrLockAcquisition)
}

func deployRequest(t *testing.T) domain.DeployRequest {
	t.Helper()
	req, err := domain.NewDeployRequest(app, map[domain.DeploySpecifier]string{
		{Extension: "jar"}:                        "app.jar",
		{Extension: "pom"}:                        "pom.xml",
		{Classifier: "sources", Extension: "jar"}: "app-sources.jar",
	})
	require.NoError(t, err)
	return req
}

func TestDeploy(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	buildDir := t.TempDir()
	cfg := domain.NewOperationConfigurationBuilder().
		LocalRepository(h.local).
		Authenticate("releases", domain.AccountAuthentication{Username: "deployer", Password: "secret"}).
		Build()
	target := domain.RepositoryConfiguration{ID: "releases", URL: "https://repo.example.com/releases"}

	h.recorder.EXPECT().RebuildAlways()
	h.files.EXPECT().Mirror(gomock.Any(), gomock.Any(), h.recorder).
		DoAndReturn(func(_ context.Context, path string, _ ports.DependencyRecorder) (string, error) {
			return "/work/" + path, nil
		}).Times(3)
	h.out.EXPECT().Root().Return(buildDir)

	var staging string
	h.resolver.EXPECT().NewLocalRepositoryManager(gomock.Any()).
		DoAndReturn(func(dir string) ports.LocalRepositoryManager {
			staging = dir
			return h.lrm
		})
	h.locker.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, path string, op func(context.Context) error) error {
			assert.Equal(t, staging, path)
			assert.DirExists(t, path)
			return op(ctx)
		})
	h.resolver.EXPECT().Deploy(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *ports.Session, req ports.DeployRequest) error {
			assert.True(t, s.ReadOnly())
			assert.Equal(t, "releases", req.Repository.ID)
			require.NotNil(t, req.Repository.Credentials)
			assert.Equal(t, "deployer", req.Repository.Credentials.Username)
			require.Len(t, req.Artifacts, 3)
			assert.Equal(t, "/work/app.jar", req.Artifacts[0].File)
			assert.Equal(t, "/work/pom.xml", req.Artifacts[1].File)
			assert.Equal(t, "/work/app-sources.jar", req.Artifacts[2].File)
			assert.Equal(t, "org.example:app:jar:sources:1.0", req.Artifacts[2].Coordinates.String())
			return nil
		})

	require.NoError(t, h.publisher.Deploy(context.Background(), cfg, target, deployRequest(t), h.files, h.out, h.recorder))

	assert.Equal(t, domain.DefaultStagingPath(buildDir), filepath.Dir(staging))
	assert.NoDirExists(t, staging)
}

func TestDeploy_Failure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	buildDir := t.TempDir()
	target := domain.RepositoryConfiguration{ID: "releases", URL: "https://repo.example.com/releases"}

	h.recorder.EXPECT().RebuildAlways()
	h.files.EXPECT().Mirror(gomock.Any(), gomock.Any(), gomock.Any()).Return("/work/file", nil).Times(3)
	h.out.EXPECT().Root().Return(buildDir)
	h.resolver.EXPECT().NewLocalRepositoryManager(gomock.Any()).Return(h.lrm)
	h.expectLock(gomock.Any())
	h.resolver.EXPECT().Deploy(gomock.Any(), gomock.Any(), gomock.Any()).Return(zerr.Wrap(domain.ErrDeployFailed, "deploy"))

	err := h.publisher.Deploy(context.Background(), h.cfg, target, deployRequest(t), h.files, h.out, h.recorder)
	require.ErrorIs(t, err, domain.ErrDeployFailed)

	entries, err := os.ReadDir(domain.DefaultStagingPath(buildDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeploy_MissingSource(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	target := domain.RepositoryConfiguration{ID: "releases", URL: "https://repo.example.com/releases"}

	h.recorder.EXPECT().RebuildAlways()
	h.files.EXPECT().Mirror(gomock.Any(), "app.jar", gomock.Any()).Return("", zerr.Wrap(domain.ErrNotFound, "source missing"))

	err := h.publisher.Deploy(context.Background(), h.cfg, target, deployRequest(t), h.files, h.out, h.recorder)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeploy_InvalidTarget(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	target := domain.RepositoryConfiguration{ID: "releases", URL: "https://repo.example.com/releases", Layout: "flat"}

	h.recorder.EXPECT().RebuildAlways()

	err := h.publisher.Deploy(context.Background(), h.cfg, target, deployRequest(t), h.files, h.out, h.recorder)
	require.ErrorIs(t, err, domain.ErrInvalidLayout)
}
