package app

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/zerr"
)

// Watch runs a download (or a localize when localize is set) and runs it again whenever
// a file the previous execution depended on changes. onResult receives the results of
// every execution. Watch returns when ctx is done.
func (a *App) Watch(
	ctx context.Context,
	opts Options,
	localize bool,
	coords []domain.ArtifactCoordinates,
	onResult func(*domain.ArtifactResults),
) error {
	if a.changes == nil {
		return zerr.Wrap(domain.ErrConfiguration, "watch mode is not available")
	}
	op := opDownload
	if localize {
		op = opLocalize
	}

	results, record, err := a.materialize(ctx, opts, op, coords)
	if err != nil {
		return err
	}
	onResult(results)

	tracked := &trackedPaths{}
	tracked.set(record)
	trigger := make(chan struct{}, 1)
	a.changes.Subscribe(func(paths []string) {
		if tracked.matches(paths) {
			select {
			case trigger <- struct{}{}:
			default:
			}
		}
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.changes.Run(ctx, watchRoots(record)...) }()
	a.info("watching %d files for changes", tracked.len())

	opts.Force = false
	for {
		select {
		case <-ctx.Done():
			cancel()
			return <-done
		case err := <-done:
			return err
		case <-trigger:
			results, record, err := a.materialize(ctx, opts, op, coords)
			if err != nil {
				if a.logger != nil {
					a.logger.Error(err)
				}
				continue
			}
			tracked.set(record)
			onResult(results)
		}
	}
}

// trackedPaths is the dependency set of the latest execution.
type trackedPaths struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func (t *trackedPaths) set(record *domain.BuildRecord) {
	paths := make(map[string]struct{}, len(record.Dependencies))
	for _, p := range record.Paths() {
		paths[filepath.Clean(p)] = struct{}{}
	}
	t.mu.Lock()
	t.paths = paths
	t.mu.Unlock()
}

func (t *trackedPaths) matches(changed []string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range changed {
		if _, ok := t.paths[filepath.Clean(p)]; ok {
			return true
		}
	}
	return false
}

func (t *trackedPaths) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.paths)
}

// watchRoots returns the existing directories holding the dependencies of record.
// Dependencies whose directory does not exist yet are not watched.
func watchRoots(record *domain.BuildRecord) []string {
	seen := make(map[string]struct{})
	for _, p := range record.Paths() {
		dir := filepath.Dir(p)
		if _, ok := seen[dir]; ok {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			seen[dir] = struct{}{}
		}
	}
	roots := make([]string, 0, len(seen))
	for dir := range seen {
		roots = append(roots, dir)
	}
	slices.Sort(roots)
	return roots
}
