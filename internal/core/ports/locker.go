package ports

import "context"

// RepositoryLocker serializes access to a local repository across goroutines and processes.
//
//go:generate mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type RepositoryLocker interface {
	// WithLock runs op while holding the lock of the local repository at path.
	// Calls must not be nested for the same repository.
	WithLock(ctx context.Context, path string, op func(context.Context) error) error
	// Identity returns the lock identity of the local repository at path. Paths naming
	// the same directory have the same identity.
	Identity(path string) (string, error)
}
