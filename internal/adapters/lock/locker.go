// Package lock serializes access to local repositories within and across processes.
package lock

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unique"

	"github.com/gofrs/flock"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultRetryDelay is how often a contended file lock is polled.
const DefaultRetryDelay = 50 * time.Millisecond

var _ ports.RepositoryLocker = (*Locker)(nil)

// Locker implements ports.RepositoryLocker.
//
// Each repository directory has one in-process monitor. The monitor is taken before the
// advisory file lock so that goroutines of the same process never contend on the file lock,
// whose per-descriptor semantics differ between platforms.
//
// WithLock is not reentrant: calling it again for the same repository from inside op deadlocks.
type Locker struct {
	mu         sync.Mutex
	monitors   map[unique.Handle[string]]chan struct{}
	retryDelay time.Duration
}

// New creates a Locker.
func New() *Locker {
	return &Locker{
		monitors:   make(map[unique.Handle[string]]chan struct{}),
		retryDelay: DefaultRetryDelay,
	}
}

// Identity returns the lock identity of a repository path: the cleaned absolute path, lower-cased.
func Identity(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", lockError(path, err)
	}
	return strings.ToLower(filepath.Clean(abs)), nil
}

// Identity implements ports.RepositoryLocker.
func (l *Locker) Identity(path string) (string, error) {
	return Identity(path)
}

// WithLock runs op while holding the lock of the repository at path.
// The lock file is created inside path; path itself must exist.
func (l *Locker) WithLock(ctx context.Context, path string, op func(context.Context) error) error {
	id, err := Identity(path)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return lockError(path, err)
	}
	monitor := l.monitor(unique.Make(id))
	select {
	case monitor <- struct{}{}:
	case <-ctx.Done():
		return lockError(path, ctx.Err())
	}
	defer func() { <-monitor }()

	fl := flock.New(filepath.Join(filepath.Clean(path), domain.LockFileName), flock.SetPermissions(domain.FilePerm))
	defer func() { _ = fl.Close() }()

	locked, err := fl.TryLockContext(ctx, l.retryDelay)
	if err != nil {
		return lockError(path, err)
	}
	if !locked {
		return lockError(path, ctx.Err())
	}
	defer func() { _ = fl.Unlock() }()

	return op(ctx)
}

func (l *Locker) monitor(id unique.Handle[string]) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.monitors[id]
	if !ok {
		m = make(chan struct{}, 1)
		l.monitors[id] = m
	}
	return m
}

func lockError(path string, cause error) error {
	if cause == nil {
		return zerr.With(zerr.Wrap(domain.ErrLockAcquisition, "lock not acquired"), "path", path)
	}
	return zerr.With(domain.Fail(domain.ErrLockAcquisition, cause), "path", path)
}
