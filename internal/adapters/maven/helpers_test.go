package maven_test

import (
	"context"
	"crypto/sha1" //nolint:gosec // repository checksum format
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/m2/internal/adapters/maven"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// fakeRepo is a Maven repository on disk, reachable through a file:// URL.
type fakeRepo struct {
	t    *testing.T
	root string
}

func newFakeRepo(t *testing.T) *fakeRepo {
	t.Helper()
	return &fakeRepo{t: t, root: t.TempDir()}
}

func (f *fakeRepo) put(rel, content string) {
	f.t.Helper()
	p := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(f.t, os.WriteFile(p, []byte(content), 0o600))
}

func (f *fakeRepo) putWithSHA1(rel, content string) {
	f.t.Helper()
	f.put(rel, content)
	sum := sha1.Sum([]byte(content)) //nolint:gosec // repository checksum format
	f.put(rel+".sha1", hex.EncodeToString(sum[:])+"  "+rel)
}

func (f *fakeRepo) artifact(coords, content string) domain.ArtifactCoordinates {
	f.t.Helper()
	c, err := domain.ParseArtifactCoordinates(coords)
	require.NoError(f.t, err)
	f.putWithSHA1(maven.ArtifactPath(domain.LayoutDefault, c), content)
	return c
}

// pom writes a descriptor for g:a:v; body is inserted after the coordinates.
func (f *fakeRepo) pom(gav, body string) {
	f.t.Helper()
	parts := strings.Split(gav, ":")
	require.Len(f.t, parts, 3)
	c := domain.MustArtifactCoordinates(parts[0], parts[1], "", domain.PomExtension, parts[2])
	f.putWithSHA1(maven.ArtifactPath(domain.LayoutDefault, c), pomXML(parts[0], parts[1], parts[2], body))
}

func pomXML(g, a, v, body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>` + g + `</groupId>
  <artifactId>` + a + `</artifactId>
  <version>` + v + `</version>
  ` + body + `
</project>`
}

func dependencyXML(g, a, v string, extra ...string) string {
	return "<dependency><groupId>" + g + "</groupId><artifactId>" + a + "</artifactId><version>" + v + "</version>" +
		strings.Join(extra, "") + "</dependency>"
}

func (f *fakeRepo) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fakeRepo) remote(id string) ports.RemoteRepository {
	policy := ports.RepositoryPolicy{Enabled: true, UpdatePolicy: domain.UpdateDaily, ChecksumPolicy: domain.ChecksumWarn}
	return ports.RemoteRepository{
		ID:        id,
		URL:       "file://" + filepath.ToSlash(f.root),
		Layout:    domain.LayoutDefault,
		Releases:  policy,
		Snapshots: policy,
	}
}

type recordingListener struct {
	mu     sync.Mutex
	events []ports.RepositoryEvent
}

func (l *recordingListener) OnEvent(_ context.Context, e ports.RepositoryEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *recordingListener) types() []ports.RepositoryEventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ports.RepositoryEventType, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Type)
	}
	return out
}

func (l *recordingListener) count(t ports.RepositoryEventType) int {
	n := 0
	for _, et := range l.types() {
		if et == t {
			n++
		}
	}
	return n
}

// policyChecksums applies one checksum policy to every repository.
type policyChecksums struct{ policy domain.ChecksumPolicy }

func (p policyChecksums) ChecksumHandler(ports.RemoteRepository, bool) ports.ChecksumHandler {
	return p
}

func (p policyChecksums) Verify() bool { return p.policy != domain.ChecksumIgnore }

func (p policyChecksums) OnFailure(_ context.Context, repo ports.RemoteRepository, _ domain.ArtifactCoordinates, cause error) error {
	if p.policy == domain.ChecksumFail {
		return zerr.With(zerr.Wrap(domain.ErrChecksum, cause.Error()), "repository", repo.ID)
	}
	return nil
}

type testSession struct {
	session  *ports.Session
	listener *recordingListener
	local    string
}

func newTestSession(t *testing.T, policy domain.ChecksumPolicy) testSession {
	t.Helper()
	local := t.TempDir()
	s := ports.NewSession(maven.NewLocalRepository(local))
	l := &recordingListener{}
	require.NoError(t, s.SetListener(l))
	require.NoError(t, s.SetChecksumPolicyProvider(policyChecksums{policy: policy}))
	require.NoError(t, s.SetIgnoreArtifactDescriptorRepositories(true))
	s.SetReadOnly()
	return testSession{session: s, listener: l, local: local}
}
