package app

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/zerr"
)

// operationKey identifies an operation invocation in the build record store.
func operationKey(op string, cfg *domain.OperationConfiguration, args ...string) string {
	h := xxhash.New()
	for _, arg := range args {
		_, _ = h.WriteString(arg)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%s:%016x", op, cfg.Key(), h.Sum64())
}

func coordinateStrings(coords []domain.ArtifactCoordinates) []string {
	out := make([]string, 0, len(coords))
	for _, c := range coords {
		out = append(out, c.String())
	}
	return out
}

// upToDate returns the stored record of key when every dependency it lists still has
// the recorded content. It returns nil when the operation has to run.
func (a *App) upToDate(root, key string, force bool) *domain.BuildRecord {
	if force {
		return nil
	}
	record, err := a.store.Get(root, key)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn(fmt.Sprintf("ignoring build record: %v", err))
		}
		return nil
	}
	if record == nil || record.RebuildAlways {
		return nil
	}
	for _, dep := range record.Dependencies {
		d, err := a.descriptors.Descriptor(dep.Path)
		if err != nil || !d.Equal(dep.Descriptor) {
			return nil
		}
	}
	return record
}

// restoreResults rebuilds the results of a previous execution for coords. Stored
// warnings are reported again since the failures they describe are still current.
func (a *App) restoreResults(record *domain.BuildRecord, coords []domain.ArtifactCoordinates) (*domain.ArtifactResults, bool) {
	stored := make(map[string]domain.RecordedArtifact, len(record.Artifacts))
	for _, ra := range record.Artifacts {
		stored[ra.Coordinates] = ra
	}

	results := domain.NewArtifactResults()
	for _, c := range coords {
		ra, ok := stored[c.String()]
		if !ok {
			return nil, false
		}
		if ra.Error != "" {
			results.Put(domain.FailedArtifact(c, zerr.With(zerr.Wrap(domain.ErrResolution, ra.Error), "artifact", c.String())))
			continue
		}
		d, err := a.descriptors.Descriptor(ra.LocalPath)
		if err != nil {
			return nil, false
		}
		results.Put(domain.SucceededArtifact(domain.ArtifactOutcome{
			Coordinates: c,
			Path:        ra.Path,
			LocalPath:   ra.LocalPath,
			Descriptor:  d,
		}))
	}

	if a.logger != nil {
		for _, w := range record.Warnings {
			a.logger.Warn(w)
		}
	}
	return results, true
}

func recordArtifacts(results *domain.ArtifactResults) []domain.RecordedArtifact {
	out := make([]domain.RecordedArtifact, 0, results.Len())
	for c, r := range results.All() {
		outcome, err := r.Get()
		if err != nil {
			out = append(out, domain.RecordedArtifact{Coordinates: c.String(), Error: err.Error()})
			continue
		}
		out = append(out, domain.RecordedArtifact{
			Coordinates: c.String(),
			Path:        outcome.Path,
			LocalPath:   outcome.LocalPath,
		})
	}
	return out
}

// save stores record. Store failures are logged and otherwise ignored.
func (a *App) save(root string, record domain.BuildRecord) {
	if err := a.store.Put(root, record); err != nil && a.logger != nil {
		a.logger.Warn(fmt.Sprintf("failed to store build record: %v", err))
	}
}
