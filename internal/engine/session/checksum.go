package session

import (
	"context"
	"fmt"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// checksumPolicies selects the handler from the repository policy of the artifact kind.
type checksumPolicies struct {
	logger ports.Logger
}

func (p checksumPolicies) ChecksumHandler(repo ports.RemoteRepository, snapshot bool) ports.ChecksumHandler {
	return checksumHandler{policy: repo.Policy(snapshot).ChecksumPolicy, logger: p.logger}
}

type checksumHandler struct {
	policy domain.ChecksumPolicy
	logger ports.Logger
}

func (h checksumHandler) Verify() bool {
	return h.policy != domain.ChecksumIgnore
}

func (h checksumHandler) OnFailure(_ context.Context, repo ports.RemoteRepository, artifact domain.ArtifactCoordinates, cause error) error {
	switch h.policy {
	case domain.ChecksumIgnore:
		return nil
	case domain.ChecksumFail:
		err := zerr.With(domain.Fail(domain.ErrChecksum, cause), "repository", repo.ID)
		return zerr.With(err, "artifact", artifact.String())
	default:
		h.logger.Warn(fmt.Sprintf("Checksum verification of %s from %s failed: %v", artifact, repo.ID, cause))
		return nil
	}
}
