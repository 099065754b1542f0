package content

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.trai.ch/m2/internal/core/ports"
)

// DefaultDebounceWindow is the time window used to coalesce file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// Invalidator feeds file system changes into a descriptor cache.
type Invalidator struct {
	watcher     ports.Watcher
	descriptors ports.ContentDescriptors
	window      time.Duration

	mu          sync.Mutex
	subscribers []func(paths []string)
}

// NewInvalidator connects watcher to descriptors.
func NewInvalidator(watcher ports.Watcher, descriptors ports.ContentDescriptors, window time.Duration) *Invalidator {
	return &Invalidator{watcher: watcher, descriptors: descriptors, window: window}
}

// Subscribe registers fn to be called with every batch of changed paths, after invalidation.
func (i *Invalidator) Subscribe(fn func(paths []string)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.subscribers = append(i.subscribers, fn)
}

// Run watches roots until ctx is done or the watcher stops.
func (i *Invalidator) Run(ctx context.Context, roots ...string) error {
	if len(roots) == 0 {
		<-ctx.Done()
		return i.watcher.Stop()
	}
	for _, root := range roots {
		if err := i.watcher.Start(ctx, root); err != nil {
			return err
		}
	}

	debouncer := NewDebouncer(i.window, i.dispatch)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for event := range i.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	select {
	case <-ctx.Done():
	case <-stopped:
	}
	err := i.watcher.Stop()
	<-stopped
	debouncer.Flush()
	return err
}

func (i *Invalidator) dispatch(paths []string) {
	i.descriptors.Invalidate(paths...)

	i.mu.Lock()
	subs := slices.Clone(i.subscribers)
	i.mu.Unlock()
	for _, fn := range subs {
		fn(paths)
	}
}
