package maven

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ResolveArtifacts fetches a batch of artifacts into the session's local repository.
// Requests run in parallel; concurrent requests for the same local file share one transfer.
func (r *Resolver) ResolveArtifacts(ctx context.Context, s *ports.Session, reqs []ports.ArtifactRequest) ([]ports.ArtifactResult, error) {
	if err := requireLocal(s); err != nil {
		return nil, err
	}

	results := make([]ports.ArtifactResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = r.resolve(gctx, s, req)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.With(domain.Fail(domain.ErrResolution, err), "artifacts", len(reqs))
	}
	return results, nil
}

func requireLocal(s *ports.Session) error {
	if s == nil || s.LocalRepositoryManager() == nil {
		return zerr.Wrap(domain.ErrConfiguration, "resolver session has no local repository")
	}
	return nil
}

func (r *Resolver) resolve(ctx context.Context, s *ports.Session, req ports.ArtifactRequest) ports.ArtifactResult {
	local := s.LocalRepositoryManager().PathForLocalArtifact(req.Artifact)
	v, _, _ := r.flight.Do(local, func() (any, error) {
		return r.fetch(ctx, s, req, local), nil
	})
	res := v.(ports.ArtifactResult) //nolint:forcetypeassert // fetch always returns an ArtifactResult
	res.Request = req
	return res
}

func (r *Resolver) fetch(ctx context.Context, s *ports.Session, req ports.ArtifactRequest, local string) ports.ArtifactResult {
	c := req.Artifact
	if r.upToDate(local, c, req.Repositories) {
		s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactResolved, Artifact: c, File: local})
		return ports.ArtifactResult{File: local}
	}

	var errs []error
	for _, repo := range req.Repositories {
		if !repo.Policy(c.IsSnapshot()).Enabled {
			continue
		}
		err := r.download(ctx, s, repo, c, local)
		if err == nil {
			return ports.ArtifactResult{File: local, Repository: repo.ID}
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}

	// A stale snapshot is still better than nothing when no remote could refresh it.
	if isFile(local) {
		s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactResolved, Artifact: c, File: local})
		return ports.ArtifactResult{File: local}
	}
	if len(errs) == 0 {
		errs = append(errs, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "no enabled repository"), "artifact", c.String()))
	}
	return ports.ArtifactResult{Errors: errs}
}

// upToDate reports whether the local file can be used without contacting a remote.
// Releases never change; snapshots are refreshed per the shortest update interval of
// the enabled repositories.
func (r *Resolver) upToDate(local string, c domain.ArtifactCoordinates, repos []ports.RemoteRepository) bool {
	info, err := os.Stat(local)
	if err != nil || info.IsDir() {
		return false
	}
	if !c.IsSnapshot() {
		return true
	}

	window, found := time.Duration(-1), false
	for _, repo := range repos {
		pol := repo.Snapshots
		if !pol.Enabled {
			continue
		}
		d, err := domain.ParseUpdatePolicy(pol.UpdatePolicy)
		if err != nil {
			continue
		}
		if !found || (d >= 0 && (window < 0 || d < window)) {
			window = d
		}
		found = true
	}
	if !found || window < 0 {
		return true
	}
	if window == 0 {
		return false
	}
	return r.now().Sub(info.ModTime()) < window
}

func (r *Resolver) download(ctx context.Context, s *ports.Session, repo ports.RemoteRepository, c domain.ArtifactCoordinates, local string) error {
	part := s.LocalRepositoryManager().PathForRemoteArtifact(c, repo)
	s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactDownloading, Artifact: c, Repository: repo.ID, File: part})

	err := r.transfer(ctx, s, repo, c, part, local)
	s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactDownloaded, Artifact: c, Repository: repo.ID, File: local, Err: err})
	if err != nil {
		return zerr.With(err, "repository", repo.ID)
	}
	return nil
}

func (r *Resolver) transfer(ctx context.Context, s *ports.Session, repo ports.RemoteRepository, c domain.ArtifactCoordinates, part, local string) error {
	t, err := newTransport(repo, r.transport)
	if err != nil {
		return err
	}
	rel := ArtifactPath(repo.Layout, c)

	if err := os.MkdirAll(filepath.Dir(part), domain.DirPerm); err != nil {
		return zerr.With(domain.Fail(domain.ErrTransfer, err), "path", part)
	}
	defer func() { _ = os.Remove(part) }()

	body, err := t.Get(ctx, rel)
	if err != nil {
		return err
	}
	err = writeStaged(part, body)
	_ = body.Close()
	if err != nil {
		return zerr.With(domain.Fail(domain.ErrTransfer, err), "path", part)
	}

	if h := s.ChecksumHandler(repo, c.IsSnapshot()); h != nil && h.Verify() {
		if cerr := verifyChecksum(ctx, t, rel, part); cerr != nil {
			s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventChecksumFailed, Artifact: c, Repository: repo.ID, File: part, Err: cerr})
			if ferr := h.OnFailure(ctx, repo, c, cerr); ferr != nil {
				return ferr
			}
		}
	}

	if err := os.Rename(part, local); err != nil {
		return zerr.With(domain.Fail(domain.ErrTransfer, err), "path", local)
	}
	s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventFileTouched, Artifact: c, Repository: repo.ID, File: local})
	return nil
}

func writeStaged(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm) //nolint:gosec // staging path in the local repository
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
