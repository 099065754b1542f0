// Package collect resolves the transitive dependencies of explicit coordinates or of a
// project model into a flat, scope-tagged artifact list.
package collect

import (
	"context"
	"os"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/engine/session"
	"go.trai.ch/zerr"
)

// Engine collects dependency graphs under the lock of the local repository.
type Engine struct {
	sessions *session.Factory
	locker   ports.RepositoryLocker
}

// New creates an Engine.
func New(sessions *session.Factory, locker ports.RepositoryLocker) *Engine {
	return &Engine{sessions: sessions, locker: locker}
}

// ResolveCoordinates collects the dependencies of the requested coordinates.
//
// Coordinates without an extension take the extension of their project's packaging,
// which requires the project model to be fetched before the graph is collected.
// Requests for the same coordinates are merged, the last option wins.
func (e *Engine) ResolveCoordinates(ctx context.Context, cfg *domain.OperationConfiguration, reqs []domain.DependencyRequest) (*domain.ResolvedDependencies, error) {
	reqs = domain.DedupeDependencyRequests(reqs)
	if len(reqs) == 0 {
		return domain.NewResolvedDependencies(), nil
	}

	res, err := e.sessions.Open(cfg)
	if err != nil {
		return nil, err
	}

	var root *ports.DependencyNode
	err = e.locker.WithLock(ctx, res.LocalRepository, func(ctx context.Context) error {
		deps := make([]ports.Dependency, 0, len(reqs))
		for _, req := range reqs {
			coords := req.Coordinates
			if coords.Extension() == "" {
				ext, err := e.inferExtension(ctx, res, coords)
				if err != nil {
					return err
				}
				coords = coords.WithExtension(ext)
			}
			deps = append(deps, dependency(coords, req.Option.EffectiveScope(), req.Option.IsOptional(), req.Option.Exclusions))
		}

		var err error
		root, err = e.sessions.Resolver().CollectDependencies(ctx, res.Session, ports.CollectRequest{
			Dependencies: deps,
			Repositories: res.Repositories,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return Flatten(root), nil
}

// ResolvePOM collects the dependencies declared by the project model in src.
// Parents and imported dependency management are fetched through the configured
// repositories only.
func (e *Engine) ResolvePOM(ctx context.Context, cfg *domain.OperationConfiguration, src ports.ModelSource) (*domain.ResolvedDependencies, error) {
	res, err := e.sessions.Open(cfg)
	if err != nil {
		return nil, err
	}

	var root *ports.DependencyNode
	err = e.locker.WithLock(ctx, res.LocalRepository, func(ctx context.Context) error {
		model, err := e.buildModel(ctx, res, src)
		if err != nil {
			return zerr.With(err, "pom", src.Location)
		}

		deps := make([]ports.Dependency, 0, len(model.Dependencies))
		for _, md := range model.Dependencies {
			coords, err := md.Coordinates()
			if err != nil {
				return zerr.With(zerr.With(err, "pom", src.Location), "dependency", md.ManagementKey())
			}
			deps = append(deps, dependency(coords, md.EffectiveScope(), md.IsOptional(), md.ExclusionOptions()))
		}

		root, err = e.sessions.Resolver().CollectDependencies(ctx, res.Session, ports.CollectRequest{
			Dependencies: deps,
			Repositories: res.Repositories,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return Flatten(root), nil
}

func (e *Engine) buildModel(ctx context.Context, res *session.Resolution, src ports.ModelSource) (*domain.ProjectModel, error) {
	return e.sessions.Resolver().BuildModel(ctx, res.Session, ports.ModelBuildingRequest{
		Source:    src,
		Resolver:  &modelResolver{resolver: e.sessions.Resolver(), session: res.Session, repos: res.Repositories},
		Validator: dependencyValidator{},
	})
}

// inferExtension reads the packaging of the project c belongs to.
func (e *Engine) inferExtension(ctx context.Context, res *session.Resolution, c domain.ArtifactCoordinates) (string, error) {
	pom := c.ProjectCoordinates()
	src, err := fetchModel(ctx, e.sessions.Resolver(), res.Session, res.Repositories, pom)
	if err != nil {
		return "", err
	}
	model, err := e.buildModel(ctx, res, src)
	if err != nil {
		return "", zerr.With(err, "artifact", pom.String())
	}
	return domain.ExtensionForPackaging(model.EffectivePackaging()), nil
}

func dependency(c domain.ArtifactCoordinates, scope string, optional bool, exclusions []domain.ExclusionOption) ports.Dependency {
	patterns := make([]domain.ExclusionOption, 0, len(exclusions))
	for _, ex := range exclusions {
		patterns = append(patterns, ex.Pattern())
	}
	return ports.Dependency{Artifact: c, Scope: scope, Optional: optional, Exclusions: patterns}
}

func fetchModel(ctx context.Context, resolver ports.Resolver, s *ports.Session, repos []ports.RemoteRepository, pom domain.ArtifactCoordinates) (ports.ModelSource, error) {
	results, err := resolver.ResolveArtifacts(ctx, s, []ports.ArtifactRequest{{Artifact: pom, Repositories: repos}})
	if err != nil {
		return ports.ModelSource{}, err
	}
	if len(results) != 1 {
		return ports.ModelSource{}, zerr.With(zerr.Wrap(domain.ErrResolution, "unexpected number of results"), "artifact", pom.String())
	}
	if !results[0].Resolved() {
		return ports.ModelSource{}, results[0].Err()
	}
	content, err := os.ReadFile(results[0].File)
	if err != nil {
		return ports.ModelSource{}, zerr.With(domain.Fail(domain.ErrResolution, err), "artifact", pom.String())
	}
	return ports.ModelSource{Location: results[0].File, Content: content}, nil
}
