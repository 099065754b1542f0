package maven_test

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/m2/internal/adapters/maven"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
)

func sourceFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func readMetadata(t *testing.T, path string) maven.Metadata {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m maven.Metadata
	require.NoError(t, xml.Unmarshal(data, &m))
	return m
}

func publishArtifacts(t *testing.T, gav string, files map[domain.DeploySpecifier]string) []domain.PublishArtifact {
	t.Helper()
	bare, err := domain.ParseBareCoordinates(gav)
	require.NoError(t, err)
	req, err := domain.NewDeployRequest(bare, files)
	require.NoError(t, err)
	return req.Artifacts()
}

func TestInstall(t *testing.T) {
	t.Parallel()

	ts := newTestSession(t, domain.ChecksumWarn)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := maven.New(maven.WithClock(func() time.Time { return clock }))

	v1 := publishArtifacts(t, "org.example:app:1.0", map[domain.DeploySpecifier]string{
		{Extension: "jar"}: sourceFile(t, "app.jar", "jar-1"),
		{Extension: "pom"}: sourceFile(t, "pom.xml", "pom-1"),
	})
	require.NoError(t, r.Install(context.Background(), ts.session, ports.InstallRequest{Artifacts: v1}))

	jar := filepath.Join(ts.local, "org", "example", "app", "1.0", "app-1.0.jar")
	data, err := os.ReadFile(jar)
	require.NoError(t, err)
	assert.Equal(t, "jar-1", string(data))
	assert.FileExists(t, filepath.Join(ts.local, "org", "example", "app", "1.0", "app-1.0.pom"))
	assert.Equal(t, 2, ts.listener.count(ports.EventArtifactInstalled))
	assert.Equal(t, 3, ts.listener.count(ports.EventFileTouched))

	v2 := publishArtifacts(t, "org.example:app:2.0-SNAPSHOT", map[domain.DeploySpecifier]string{
		{Extension: "jar"}: sourceFile(t, "app.jar", "jar-2"),
	})
	require.NoError(t, r.Install(context.Background(), ts.session, ports.InstallRequest{Artifacts: v2}))

	m := readMetadata(t, filepath.Join(ts.local, "org", "example", "app", "maven-metadata-local.xml"))
	assert.Equal(t, "org.example", m.GroupID)
	assert.Equal(t, []string{"1.0", "2.0-SNAPSHOT"}, m.Versioning.Versions)
	assert.Equal(t, "2.0-SNAPSHOT", m.Versioning.Latest)
	assert.Equal(t, "1.0", m.Versioning.Release)
	assert.Equal(t, "20240301120000", m.Versioning.LastUpdated)
}

func TestInstall_SameFileIsNoop(t *testing.T) {
	t.Parallel()

	ts := newTestSession(t, domain.ChecksumWarn)
	c := domain.MustArtifactCoordinates("org.example", "app", "", "jar", "1.0")
	dst := ts.session.LocalRepositoryManager().PathForLocalArtifact(c)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o750))
	require.NoError(t, os.WriteFile(dst, []byte("in place"), 0o600))

	err := maven.New().Install(context.Background(), ts.session, ports.InstallRequest{
		Artifacts: []domain.PublishArtifact{{Coordinates: c, File: dst}},
	})
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "in place", string(data))
}

func TestInstall_MissingFile(t *testing.T) {
	t.Parallel()

	ts := newTestSession(t, domain.ChecksumWarn)
	c := domain.MustArtifactCoordinates("org.example", "app", "", "jar", "1.0")

	err := maven.New().Install(context.Background(), ts.session, ports.InstallRequest{
		Artifacts: []domain.PublishArtifact{{Coordinates: c, File: filepath.Join(t.TempDir(), "absent.jar")}},
	})
	assert.ErrorIs(t, err, domain.ErrInstallFailed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, ts.listener.count(ports.EventArtifactInstalled))
}

func TestDeploy_File(t *testing.T) {
	t.Parallel()

	remote := newFakeRepo(t)
	remote.put("org/example/app/maven-metadata.xml", `<metadata><groupId>org.example</groupId><artifactId>app</artifactId>
<versioning><versions><version>0.9</version></versions></versioning></metadata>`)
	ts := newTestSession(t, domain.ChecksumWarn)

	artifacts := publishArtifacts(t, "org.example:app:1.0", map[domain.DeploySpecifier]string{
		{Extension: "jar"}:                        sourceFile(t, "app.jar", "jar"),
		{Classifier: "sources", Extension: "jar"}: sourceFile(t, "src.jar", "src"),
	})
	err := maven.New().Deploy(context.Background(), ts.session, ports.DeployRequest{
		Artifacts:  artifacts,
		Repository: remote.remote("releases"),
	})
	require.NoError(t, err)

	for _, rel := range []string{
		"org/example/app/1.0/app-1.0.jar",
		"org/example/app/1.0/app-1.0.jar.sha1",
		"org/example/app/1.0/app-1.0.jar.md5",
		"org/example/app/1.0/app-1.0-sources.jar",
		"org/example/app/maven-metadata.xml.sha1",
	} {
		assert.FileExists(t, remote.path(rel))
	}
	sha, err := os.ReadFile(remote.path("org/example/app/1.0/app-1.0.jar.sha1"))
	require.NoError(t, err)
	assert.Equal(t, "f92e777f4341930bad9b2422283c4680d00dbc06", string(sha))

	m := readMetadata(t, remote.path("org/example/app/maven-metadata.xml"))
	assert.Equal(t, []string{"0.9", "1.0"}, m.Versioning.Versions)
	assert.Equal(t, "1.0", m.Versioning.Release)
	assert.FileExists(t, ts.session.LocalRepositoryManager().PathForMetadata("org.example", "app", remote.remote("releases")))

	assert.Equal(t, 2, ts.listener.count(ports.EventArtifactDeployed))
	assert.Equal(t, 1, ts.listener.count(ports.EventMetadataDeployed))
}

func TestDeploy_HTTP(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		puts = map[string]string{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if user, _, ok := req.BasicAuth(); !ok || user != "deployer" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch req.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			body, _ := io.ReadAll(req.Body)
			mu.Lock()
			puts[req.URL.Path] = string(body)
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)

	remote := ports.RemoteRepository{
		ID:          "http",
		URL:         srv.URL + "/repo",
		Layout:      domain.LayoutDefault,
		Credentials: &ports.Credentials{Username: "deployer", Password: "secret"},
	}
	ts := newTestSession(t, domain.ChecksumWarn)
	artifacts := publishArtifacts(t, "org.example:app:1.0", map[domain.DeploySpecifier]string{
		{Extension: "jar"}: sourceFile(t, "app.jar", "jar"),
	})

	r := maven.New(maven.WithHTTPClient(srv.Client()), maven.WithRetry(1, time.Millisecond))
	require.NoError(t, r.Deploy(context.Background(), ts.session, ports.DeployRequest{Artifacts: artifacts, Repository: remote}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "jar", puts["/repo/org/example/app/1.0/app-1.0.jar"])
	assert.Contains(t, puts, "/repo/org/example/app/1.0/app-1.0.jar.sha1")
	assert.Contains(t, puts, "/repo/org/example/app/1.0/app-1.0.jar.md5")
	assert.Contains(t, puts["/repo/org/example/app/maven-metadata.xml"], "<version>1.0</version>")
	assert.Contains(t, puts, "/repo/org/example/app/maven-metadata.xml.sha1")
}

func TestDeploy_Errors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	jar := sourceFile(t, "app.jar", "jar")
	c := domain.MustArtifactCoordinates("org.example", "app", "", "jar", "1.0")

	tests := []struct {
		name string
		repo ports.RemoteRepository
		file string
		want error
	}{
		{
			name: "rejected upload",
			repo: ports.RemoteRepository{ID: "http", URL: srv.URL, Layout: domain.LayoutDefault},
			file: jar,
			want: domain.ErrTransfer,
		},
		{
			name: "missing file",
			repo: newFakeRepo(t).remote("file"),
			file: filepath.Join(t.TempDir(), "absent.jar"),
			want: os.ErrNotExist,
		},
		{
			name: "unsupported scheme",
			repo: ports.RemoteRepository{ID: "scp", URL: "scp://host/repo"},
			file: jar,
			want: domain.ErrUnsupportedTransport,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestSession(t, domain.ChecksumWarn)
			r := maven.New(maven.WithHTTPClient(srv.Client()), maven.WithRetry(1, time.Millisecond))
			err := r.Deploy(context.Background(), ts.session, ports.DeployRequest{
				Artifacts:  []domain.PublishArtifact{{Coordinates: c, File: tt.file}},
				Repository: tt.repo,
			})
			assert.ErrorIs(t, err, domain.ErrDeployFailed)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, ts.listener.count(ports.EventArtifactDeployed))
		})
	}
}
