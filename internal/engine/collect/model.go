package collect

import (
	"context"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// modelResolver fetches parent and imported models through the operation's session.
type modelResolver struct {
	resolver ports.Resolver
	session  *ports.Session
	repos    []ports.RemoteRepository
}

func (m *modelResolver) ResolveModel(ctx context.Context, groupID, artifactID, version string) (ports.ModelSource, error) {
	pom, err := domain.NewArtifactCoordinates(groupID, artifactID, "", domain.PomExtension, version)
	if err != nil {
		return ports.ModelSource{}, err
	}
	return fetchModel(ctx, m.resolver, m.session, m.repos, pom)
}

// dependencyValidator keeps only what dependency resolution reads. Everything else is
// dropped before and after validation so unrelated sections can neither fail nor slow
// down model building.
type dependencyValidator struct{}

func (dependencyValidator) ValidateRaw(m *domain.ProjectModel) error {
	m.StripNonDependencySections()
	if m.ArtifactID == "" {
		return zerr.With(zerr.Wrap(domain.ErrModelValidation, "missing artifactId"), "field", "artifactId")
	}
	return nil
}

func (dependencyValidator) ValidateEffective(m *domain.ProjectModel) error {
	m.StripNonDependencySections()
	defer m.StripNonDependencySections()

	required := [...]struct{ field, value string }{
		{"groupId", m.GroupID},
		{"artifactId", m.ArtifactID},
		{"version", m.Version},
	}
	for _, r := range required {
		if r.value == "" {
			return zerr.With(zerr.Wrap(domain.ErrModelValidation, "missing "+r.field), "field", r.field)
		}
	}
	for _, d := range m.Dependencies {
		if d.GroupID == "" || d.ArtifactID == "" || d.Version == "" {
			return zerr.With(zerr.Wrap(domain.ErrModelValidation, "incomplete dependency"), "dependency", d.ManagementKey())
		}
	}
	return nil
}
