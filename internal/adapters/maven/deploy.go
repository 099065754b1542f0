package maven

import (
	"bytes"
	"context"
	"os"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// Deploy uploads the artifacts with sha1 and md5 checksums to req.Repository and merges
// their versions into the remote group/artifact metadata. The merged metadata is staged in
// the session's local repository before upload.
func (r *Resolver) Deploy(ctx context.Context, s *ports.Session, req ports.DeployRequest) error {
	if err := requireLocal(s); err != nil {
		return err
	}
	repo := req.Repository
	t, err := newTransport(repo, r.transport)
	if err != nil {
		return zerr.With(domain.Fail(domain.ErrDeployFailed, err), "repository", repo.ID)
	}

	for _, a := range req.Artifacts {
		content, err := os.ReadFile(a.File)
		if err != nil {
			return deployError(repo, a.Coordinates.String(), err)
		}
		if err := putWithChecksums(ctx, t, ArtifactPath(repo.Layout, a.Coordinates), content); err != nil {
			return deployError(repo, a.Coordinates.String(), err)
		}
		s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactDeployed, Artifact: a.Coordinates, Repository: repo.ID, File: a.File})
	}

	for _, ga := range groupArtifacts(req.Artifacts) {
		if err := r.deployMetadata(ctx, s, t, repo, ga); err != nil {
			return deployError(repo, ga.groupID+":"+ga.artifactID, err)
		}
	}
	return nil
}

func deployError(repo ports.RemoteRepository, artifact string, err error) error {
	return zerr.With(zerr.With(domain.Fail(domain.ErrDeployFailed, err), "repository", repo.ID), "artifact", artifact)
}

func (r *Resolver) deployMetadata(ctx context.Context, s *ports.Session, t transport, repo ports.RemoteRepository, ga groupArtifact) error {
	m, _, err := fetchMetadata(ctx, t, repo, ga.groupID, ga.artifactID)
	if err != nil {
		return err
	}
	if m == nil {
		m = &Metadata{GroupID: ga.groupID, ArtifactID: ga.artifactID}
	}
	for _, v := range ga.versions {
		m.AddVersion(v, r.now())
	}
	data, err := m.Encode()
	if err != nil {
		return err
	}

	staged := s.LocalRepositoryManager().PathForMetadata(ga.groupID, ga.artifactID, repo)
	if err := writeFileAtomic(staged, bytes.NewReader(data)); err != nil {
		return err
	}
	s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventFileTouched, Repository: repo.ID, File: staged})

	if err := putWithChecksums(ctx, t, MetadataPath(repo.Layout, ga.groupID, ga.artifactID), data); err != nil {
		return err
	}
	s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventMetadataDeployed, Repository: repo.ID, File: staged})
	return nil
}
