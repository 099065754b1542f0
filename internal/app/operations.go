package app

import (
	"context"

	"go.trai.ch/m2/internal/adapters/host"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	opResolve  = "resolve"
	opDownload = "download"
	opLocalize = "localize"
	opInstall  = "install"
	opDeploy   = "deploy"
	opServe    = "serve"
)

// ResolveOptions select what to resolve. Exactly one of Requests and POM is set.
type ResolveOptions struct {
	Requests []domain.DependencyRequest
	POM      string
}

// Resolve collects the transitive dependencies of coordinates or of a POM file.
func (a *App) Resolve(ctx context.Context, opts Options, ro ResolveOptions) (_ *domain.ResolvedDependencies, err error) {
	ctx, end := a.span(ctx, opResolve, ports.WithAttribute("requests", len(ro.Requests)))
	defer end(&err)

	if ro.POM != "" && len(ro.Requests) > 0 {
		return nil, zerr.Wrap(domain.ErrConfiguration, "resolve accepts either a POM or coordinates, not both")
	}
	h, err := a.open(opts)
	if err != nil {
		return nil, err
	}

	if ro.POM == "" {
		return a.collector.ResolveCoordinates(ctx, h.cfg, ro.Requests)
	}
	content, err := h.files.Read(ctx, ro.POM, nil)
	if err != nil {
		return nil, err
	}
	return a.collector.ResolvePOM(ctx, h.cfg, ports.ModelSource{Location: h.files.Resolve(ro.POM), Content: content})
}

// Download materializes artifacts and publishes them into the build output tree.
func (a *App) Download(ctx context.Context, opts Options, coords []domain.ArtifactCoordinates) (*domain.ArtifactResults, error) {
	results, _, err := a.materialize(ctx, opts, opDownload, coords)
	return results, err
}

// Localize materializes artifacts in the local repository only.
func (a *App) Localize(ctx context.Context, opts Options, coords []domain.ArtifactCoordinates) (*domain.ArtifactResults, error) {
	results, _, err := a.materialize(ctx, opts, opLocalize, coords)
	return results, err
}

func (a *App) materialize(
	ctx context.Context,
	opts Options,
	op string,
	coords []domain.ArtifactCoordinates,
) (_ *domain.ArtifactResults, _ *domain.BuildRecord, err error) {
	ctx, end := a.span(ctx, op, ports.WithAttribute("artifacts", len(coords)))
	defer end(&err)

	h, err := a.open(opts)
	if err != nil {
		return nil, nil, err
	}
	coords = domain.UniqueCoordinates(coords)
	key := operationKey(op, h.cfg, coordinateStrings(coords)...)

	if record := a.upToDate(h.files.Root(), key, opts.Force); record != nil {
		if results, ok := a.restoreResults(record, coords); ok {
			a.info("%s is up to date", op)
			return results, record, nil
		}
	}

	rec := host.NewRecorder(a.logger)
	var results *domain.ArtifactResults
	if op == opDownload {
		results, err = a.materializer.Download(ctx, h.cfg, coords, rec, h.files)
	} else {
		results, err = a.materializer.Localize(ctx, h.cfg, coords, rec)
	}
	if err != nil {
		return nil, nil, err
	}

	record := rec.Record(key, op, a.now())
	record.Artifacts = recordArtifacts(results)
	if ctx.Err() == nil {
		a.save(h.files.Root(), record)
	}
	return results, &record, nil
}

// Install copies a file into the local repository.
func (a *App) Install(ctx context.Context, opts Options, req domain.InstallRequest) (_ domain.ArtifactOutcome, err error) {
	ctx, end := a.span(ctx, opInstall, ports.WithAttribute("coordinates", req.Artifact().Coordinates.String()))
	defer end(&err)

	h, err := a.open(opts)
	if err != nil {
		return domain.ArtifactOutcome{}, err
	}
	artifact := req.Artifact()
	key := operationKey(opInstall, h.cfg.WithoutRepositories(), artifact.Coordinates.String(), h.files.Resolve(req.File()))

	if record := a.upToDate(h.files.Root(), key, opts.Force); record != nil {
		if results, ok := a.restoreResults(record, []domain.ArtifactCoordinates{artifact.Coordinates}); ok {
			if r, found := results.Get(artifact.Coordinates); found {
				if outcome, err := r.Get(); err == nil {
					a.info("%s is up to date", opInstall)
					return outcome, nil
				}
			}
		}
	}

	rec := host.NewRecorder(a.logger)
	outcome, err := a.publisher.Install(ctx, h.cfg, req, h.files, rec)
	if err != nil {
		return domain.ArtifactOutcome{}, err
	}

	record := rec.Record(key, opInstall, a.now())
	record.Artifacts = []domain.RecordedArtifact{{
		Coordinates: outcome.Coordinates.String(),
		Path:        outcome.Path,
		LocalPath:   outcome.LocalPath,
	}}
	a.save(h.files.Root(), record)
	return outcome, nil
}

// Deploy uploads files to the configured repository with the given id. It always runs.
func (a *App) Deploy(ctx context.Context, opts Options, repositoryID string, req domain.DeployRequest) (err error) {
	ctx, end := a.span(ctx, opDeploy,
		ports.WithAttribute("coordinates", req.Coordinates().String()),
		ports.WithAttribute("repository", repositoryID),
	)
	defer end(&err)

	h, err := a.open(opts)
	if err != nil {
		return err
	}
	target, err := h.cfg.Repository(repositoryID)
	if err != nil {
		return err
	}
	return a.publisher.Deploy(ctx, h.cfg, target, req, h.files, h.files, host.NewRecorder(a.logger))
}
