// Package publish installs artifacts into the local repository and deploys them to
// remote repositories. Both operations are all or nothing.
package publish

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/engine/session"
	"go.trai.ch/zerr"
)

// Publisher installs and deploys artifacts.
type Publisher struct {
	sessions    *session.Factory
	locker      ports.RepositoryLocker
	descriptors ports.ContentDescriptors
}

// New creates a Publisher.
func New(sessions *session.Factory, locker ports.RepositoryLocker, descriptors ports.ContentDescriptors) *Publisher {
	return &Publisher{sessions: sessions, locker: locker, descriptors: descriptors}
}

// Install copies the file of req into the local repository of cfg and reports the
// installed file as an execution dependency. Remote repositories of cfg are ignored.
func (p *Publisher) Install(
	ctx context.Context,
	cfg *domain.OperationConfiguration,
	req domain.InstallRequest,
	files ports.FileMirror,
	rec ports.DependencyRecorder,
) (domain.ArtifactOutcome, error) {
	src, err := files.Mirror(ctx, req.File(), rec)
	if err != nil {
		return domain.ArtifactOutcome{}, err
	}
	artifact := req.Artifact()
	artifact.File = src

	if cfg == nil {
		cfg = domain.NewOperationConfigurationBuilder().Build()
	}
	res, err := p.sessions.Open(cfg.WithoutRepositories())
	if err != nil {
		return domain.ArtifactOutcome{}, err
	}

	var outcome domain.ArtifactOutcome
	err = p.locker.WithLock(ctx, res.LocalRepository, func(ctx context.Context) error {
		if err := p.sessions.Resolver().Install(ctx, res.Session, ports.InstallRequest{Artifacts: []domain.PublishArtifact{artifact}}); err != nil {
			return err
		}
		installed := res.Session.LocalRepositoryManager().PathForLocalArtifact(artifact.Coordinates)
		d, err := p.descriptors.Descriptor(installed)
		if err != nil {
			return zerr.With(domain.Fail(domain.ErrDescriptorFailed, err), "path", installed)
		}
		rec.ReportExecution(installed, d)
		outcome = domain.ArtifactOutcome{Coordinates: artifact.Coordinates, Path: installed, LocalPath: installed, Descriptor: d}
		return nil
	})
	if err != nil {
		return domain.ArtifactOutcome{}, err
	}
	return outcome, nil
}

// Deploy uploads every file of req to target in one request. The upload is staged
// through a local repository created below the staging directory of out and removed
// afterwards. The operation is always marked for rebuild.
func (p *Publisher) Deploy(
	ctx context.Context,
	cfg *domain.OperationConfiguration,
	target domain.RepositoryConfiguration,
	req domain.DeployRequest,
	files ports.FileMirror,
	out ports.OutputTree,
	rec ports.DependencyRecorder,
) error {
	rec.RebuildAlways()

	repo, err := session.RemoteRepository(cfg, target)
	if err != nil {
		return zerr.With(err, "repository", target.ID)
	}

	artifacts := req.Artifacts()
	for i, a := range artifacts {
		src, err := files.Mirror(ctx, a.File, rec)
		if err != nil {
			return zerr.With(err, "artifact", a.Coordinates.String())
		}
		artifacts[i].File = src
	}

	staging := filepath.Join(domain.DefaultStagingPath(out.Root()), uuid.NewString())
	if err := os.MkdirAll(staging, domain.DirPerm); err != nil {
		return zerr.With(domain.Fail(domain.ErrLockAcquisition, err), "path", staging)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	s, err := p.sessions.NewSession(staging)
	if err != nil {
		return err
	}
	return p.locker.WithLock(ctx, staging, func(ctx context.Context) error {
		return p.sessions.Resolver().Deploy(ctx, s, ports.DeployRequest{Artifacts: artifacts, Repository: repo})
	})
}
