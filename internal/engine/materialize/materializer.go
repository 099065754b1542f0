// Package materialize fetches batches of artifacts into the local repository and,
// for downloads, into the build output tree.
//
// A batch never fails as a whole because one artifact could not be resolved. Every
// coordinate gets its own deferred result; failures only surface when that result is
// read, and once as a warning on the dependency recorder. Resolved files are reported
// as execution dependencies. For failed artifacts the paths they would have occupied
// are reported too, so that a later change to any of them makes the operation stale.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/engine/session"
	"go.trai.ch/zerr"
)

// Materializer resolves batches of artifacts under the lock of the local repository.
type Materializer struct {
	sessions    *session.Factory
	locker      ports.RepositoryLocker
	descriptors ports.ContentDescriptors
}

// New creates a Materializer.
func New(sessions *session.Factory, locker ports.RepositoryLocker, descriptors ports.ContentDescriptors) *Materializer {
	return &Materializer{sessions: sessions, locker: locker, descriptors: descriptors}
}

// Localize resolves the artifacts and returns their paths in the local repository.
//
// The returned paths point into the shared local repository, which other operations may
// modify at any time. Consumers that only track paths without content must not rely on them.
func (m *Materializer) Localize(ctx context.Context, cfg *domain.OperationConfiguration, coords []domain.ArtifactCoordinates, rec ports.DependencyRecorder) (*domain.ArtifactResults, error) {
	return m.materialize(ctx, cfg, coords, rec, nil)
}

// Download resolves the artifacts and copies each resolved file into out, below a
// directory named after the local repository it came from.
func (m *Materializer) Download(
	ctx context.Context,
	cfg *domain.OperationConfiguration,
	coords []domain.ArtifactCoordinates,
	rec ports.DependencyRecorder,
	out ports.OutputTree,
) (*domain.ArtifactResults, error) {
	return m.materialize(ctx, cfg, coords, rec, out)
}

// entry is the state of one coordinate after the resolver batch.
type entry struct {
	outcome domain.ArtifactOutcome
	err     error
}

func (m *Materializer) materialize(
	ctx context.Context,
	cfg *domain.OperationConfiguration,
	coords []domain.ArtifactCoordinates,
	rec ports.DependencyRecorder,
	out ports.OutputTree,
) (*domain.ArtifactResults, error) {
	coords = domain.UniqueCoordinates(coords)
	if len(coords) == 0 {
		return nil, zerr.Wrap(domain.ErrNoCoordinates, "materialize artifacts")
	}

	results := domain.NewArtifactResults()
	entries, local, err := m.resolve(ctx, cfg, coords, rec)
	if err != nil {
		// Nothing was recorded the host could check, so the outcome must not be reused.
		rec.RebuildAlways()
		rec.Warn(err)
		for _, c := range coords {
			results.Put(domain.FailedArtifact(c, err))
		}
		return results, nil
	}

	var repoName string
	if out != nil {
		id, err := m.locker.Identity(local)
		if err != nil {
			return nil, err
		}
		repoName = RepositoryName(id)
	}

	var failures []error
	for i, c := range coords {
		e := entries[i]
		if e.err == nil && out != nil {
			e.outcome.Path, e.err = out.Publish(ctx, OutputPath(repoName, c), e.outcome.LocalPath, rec)
		}
		if e.err != nil {
			failures = append(failures, e.err)
			results.Put(domain.FailedArtifact(c, e.err))
			continue
		}
		results.Put(domain.SucceededArtifact(e.outcome))
	}
	if len(failures) > 0 {
		rec.Warn(errors.Join(failures...))
	}
	return results, nil
}

// resolve runs the batch under the repository lock and computes descriptors while the
// lock is still held.
func (m *Materializer) resolve(
	ctx context.Context,
	cfg *domain.OperationConfiguration,
	coords []domain.ArtifactCoordinates,
	rec ports.DependencyRecorder,
) ([]entry, string, error) {
	res, err := m.sessions.Open(cfg)
	if err != nil {
		return nil, "", err
	}

	reqs := make([]ports.ArtifactRequest, 0, len(coords))
	for _, c := range coords {
		reqs = append(reqs, ports.ArtifactRequest{Artifact: c, Repositories: res.Repositories})
	}

	entries := make([]entry, len(coords))
	err = m.locker.WithLock(ctx, res.LocalRepository, func(ctx context.Context) error {
		batch, err := m.sessions.Resolver().ResolveArtifacts(ctx, res.Session, reqs)
		if err != nil {
			return err
		}
		if len(batch) != len(reqs) {
			return zerr.With(zerr.Wrap(domain.ErrResolution, "resolver returned an incomplete batch"), "artifacts", len(reqs))
		}
		for i, r := range batch {
			entries[i] = m.entry(coords[i], r, res, rec)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return entries, res.LocalRepository, nil
}

func (m *Materializer) entry(c domain.ArtifactCoordinates, r ports.ArtifactResult, res *session.Resolution, rec ports.DependencyRecorder) entry {
	if !r.Resolved() {
		m.reportCandidates(c, res, rec)
		return entry{err: r.Err()}
	}

	d, err := m.descriptors.Descriptor(r.File)
	if err != nil {
		m.reportCandidates(c, res, rec)
		return entry{err: zerr.With(domain.Fail(domain.ErrDescriptorFailed, err), "path", r.File)}
	}
	rec.ReportExecution(r.File, d)
	return entry{outcome: domain.ArtifactOutcome{Coordinates: c, Path: r.File, LocalPath: r.File, Descriptor: d}}
}

// reportCandidates reports the local path of c and its staging path for every remote
// repository, whatever their current state.
func (m *Materializer) reportCandidates(c domain.ArtifactCoordinates, res *session.Resolution, rec ports.DependencyRecorder) {
	lrm := res.Session.LocalRepositoryManager()
	paths := []string{lrm.PathForLocalArtifact(c)}
	for _, repo := range res.Repositories {
		paths = append(paths, lrm.PathForRemoteArtifact(c, repo))
	}
	for _, p := range paths {
		d, err := m.descriptors.Descriptor(p)
		if err != nil {
			d = domain.MissingContent
		}
		rec.ReportExecution(p, d)
	}
}

// RepositoryName names the output directory of a local repository by its lock identity.
func RepositoryName(identity string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(identity))
}

// OutputPath returns the slash-separated output path of c below its repository directory.
func OutputPath(repoName string, c domain.ArtifactCoordinates) string {
	return path.Join(repoName, strings.ReplaceAll(c.GroupID(), ".", "/"), c.ArtifactID(), c.Version(), c.FileName())
}
