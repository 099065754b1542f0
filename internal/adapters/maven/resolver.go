// Package maven implements ports.Resolver against Maven 2 repositories.
//
// It covers the subset of the Maven repository system the engines need: artifact
// transfer over http(s) and file URLs with checksum verification, project model building
// with parent inheritance, interpolation and imported BOMs, nearest-wins dependency
// collection, installation and deployment with metadata maintenance.
package maven

import (
	"net/http"
	"time"

	"go.trai.ch/m2/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultConcurrency bounds parallel transfers of one batch.
	DefaultConcurrency = 8
	// DefaultAttempts is how often a failing transfer is tried.
	DefaultAttempts = 3
	// DefaultRetryDelay is the initial backoff between attempts.
	DefaultRetryDelay = 500 * time.Millisecond
	// DefaultHTTPTimeout bounds a single HTTP request.
	DefaultHTTPTimeout = 2 * time.Minute
)

var _ ports.Resolver = (*Resolver)(nil)

// Resolver implements ports.Resolver.
type Resolver struct {
	transport   transportConfig
	concurrency int
	now         func() time.Time
	flight      singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the client used for http(s) repositories.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.transport.client = c }
}

// WithRetry sets the number of attempts per transfer and the initial backoff.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(r *Resolver) {
		r.transport.attempts = attempts
		r.transport.delay = delay
	}
}

// WithConcurrency bounds the parallel transfers of one batch.
func WithConcurrency(n int) Option {
	return func(r *Resolver) { r.concurrency = max(n, 1) }
}

// WithClock replaces the time source used for update policies and metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		transport: transportConfig{
			client:   &http.Client{Timeout: DefaultHTTPTimeout},
			attempts: DefaultAttempts,
			delay:    DefaultRetryDelay,
		},
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewLocalRepositoryManager returns a manager for the local repository at baseDir.
func (r *Resolver) NewLocalRepositoryManager(baseDir string) ports.LocalRepositoryManager {
	return NewLocalRepository(baseDir)
}
