// Package content computes content descriptors for files the host does not track itself.
package content

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unique"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentDescriptors = (*Descriptors)(nil)

type entry struct {
	size    int64
	modTime time.Time
	hash    uint64
}

// Descriptors implements ports.ContentDescriptors.
//
// Hashes are cached per path, but every access stats the file again: the local repository is
// shared with other tools, so a cached hash is only reused while size and modification time
// are unchanged.
type Descriptors struct {
	mu      sync.RWMutex
	entries map[unique.Handle[string]]entry
}

// NewDescriptors creates an empty descriptor cache.
func NewDescriptors() *Descriptors {
	return &Descriptors{entries: make(map[unique.Handle[string]]entry)}
}

// Descriptor returns the descriptor of the file at path. Absent files yield domain.MissingContent.
func (d *Descriptors) Descriptor(path string) (domain.ContentDescriptor, error) {
	key := unique.Make(filepath.Clean(path))

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			d.drop(key)
			return domain.MissingContent, nil
		}
		return domain.ContentDescriptor{}, describeError(path, err)
	}
	if info.IsDir() {
		return domain.ContentDescriptor{Exists: true, ModTime: info.ModTime()}, nil
	}

	d.mu.RLock()
	cached, ok := d.entries[key]
	d.mu.RUnlock()
	if ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.descriptor(), nil
	}

	hash, err := hashFile(path)
	if err != nil {
		return domain.ContentDescriptor{}, describeError(path, err)
	}

	e := entry{size: info.Size(), modTime: info.ModTime(), hash: hash}
	d.mu.Lock()
	d.entries[key] = e
	d.mu.Unlock()

	return e.descriptor(), nil
}

// Invalidate forgets the cached hashes of paths.
func (d *Descriptors) Invalidate(paths ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range paths {
		delete(d.entries, unique.Make(filepath.Clean(p)))
	}
}

// Len returns the number of cached hashes.
func (d *Descriptors) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

func (d *Descriptors) drop(key unique.Handle[string]) {
	d.mu.Lock()
	delete(d.entries, key)
	d.mu.Unlock()
}

func (e entry) descriptor() domain.ContentDescriptor {
	return domain.ContentDescriptor{Exists: true, Size: e.size, ModTime: e.modTime, Hash: e.hash}
}

func hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}

func describeError(path string, cause error) error {
	return zerr.With(domain.Fail(domain.ErrDescriptorFailed, cause), "path", path)
}
