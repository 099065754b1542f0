package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
)

type transferKey struct {
	artifact   domain.ArtifactCoordinates
	repository string
}

// listener forwards repository events to the logger, the transfer reporter and the
// content descriptor cache.
type listener struct {
	logger      ports.Logger
	reporter    ports.TransferReporter
	descriptors ports.ContentDescriptors

	mu        sync.Mutex
	transfers map[transferKey]ports.Transfer
}

func newListener(logger ports.Logger, reporter ports.TransferReporter, descriptors ports.ContentDescriptors) *listener {
	return &listener{
		logger:      logger,
		reporter:    reporter,
		descriptors: descriptors,
		transfers:   make(map[transferKey]ports.Transfer),
	}
}

func (l *listener) OnEvent(ctx context.Context, e ports.RepositoryEvent) {
	if e.File != "" && l.descriptors != nil {
		l.descriptors.Invalidate(e.File)
	}

	switch e.Type {
	case ports.EventArtifactDownloading:
		l.logger.Info(fmt.Sprintf("Downloading %s from %s", e.Artifact, e.Repository))
		l.start(ctx, e)
	case ports.EventArtifactDownloaded:
		l.finish(e)
		switch {
		case e.Err == nil:
			l.logger.Info(fmt.Sprintf("Downloaded %s from %s", e.Artifact, e.Repository))
		case !errors.Is(e.Err, domain.ErrArtifactNotFound):
			l.logger.Warn(fmt.Sprintf("Failed to download %s from %s: %v", e.Artifact, e.Repository, e.Err))
		}
	case ports.EventArtifactResolved:
		if l.reporter != nil {
			l.reporter.Start(ctx, e.Artifact.String()).Cached()
		}
	case ports.EventArtifactInstalled:
		l.logger.Info(fmt.Sprintf("Installed %s", e.Artifact))
	case ports.EventArtifactDeployed:
		l.logger.Info(fmt.Sprintf("Deployed %s to %s", e.Artifact, e.Repository))
	}
}

func (l *listener) start(ctx context.Context, e ports.RepositoryEvent) {
	if l.reporter == nil {
		return
	}
	t := l.reporter.Start(ctx, e.Artifact.String()+" ("+e.Repository+")")

	l.mu.Lock()
	defer l.mu.Unlock()
	l.transfers[transferKey{artifact: e.Artifact, repository: e.Repository}] = t
}

func (l *listener) finish(e ports.RepositoryEvent) {
	key := transferKey{artifact: e.Artifact, repository: e.Repository}

	l.mu.Lock()
	t, ok := l.transfers[key]
	delete(l.transfers, key)
	l.mu.Unlock()

	if ok {
		t.Done(e.Err)
	}
}
