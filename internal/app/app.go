// Package app implements the application layer for m2.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.trai.ch/m2/internal/adapters/host"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/engine/collect"
	"go.trai.ch/m2/internal/engine/materialize"
	"go.trai.ch/m2/internal/engine/publish"
	"go.trai.ch/m2/internal/engine/session"
	"go.trai.ch/zerr"
)

// ChangeNotifier reports batches of changed files below watched directories.
type ChangeNotifier interface {
	// Subscribe registers fn to receive every batch of changed paths.
	Subscribe(fn func(paths []string))
	// Run watches roots until ctx is done.
	Run(ctx context.Context, roots ...string) error
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	sessions     *session.Factory
	collector    *collect.Engine
	materializer *materialize.Materializer
	publisher    *publish.Publisher
	descriptors  ports.ContentDescriptors
	store        ports.BuildRecordStore
	locker       ports.RepositoryLocker
	tracer       ports.Tracer
	logger       ports.Logger
	changes      ChangeNotifier
	now          func() time.Time
}

// Services groups the engines an App drives.
type Services struct {
	Sessions     *session.Factory
	Collector    *collect.Engine
	Materializer *materialize.Materializer
	Publisher    *publish.Publisher
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	services Services,
	descriptors ports.ContentDescriptors,
	store ports.BuildRecordStore,
	locker ports.RepositoryLocker,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		sessions:     services.Sessions,
		collector:    services.Collector,
		materializer: services.Materializer,
		publisher:    services.Publisher,
		descriptors:  descriptors,
		store:        store,
		locker:       locker,
		tracer:       tracer,
		logger:       log,
		now:          time.Now,
	}
}

// WithChangeNotifier enables watch mode.
func (a *App) WithChangeNotifier(n ChangeNotifier) *App {
	a.changes = n
	return a
}

// WithClock replaces the clock used to timestamp build records.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Options are the host settings shared by all operations.
type Options struct {
	// WorkDir resolves relative input paths. Defaults to the process working directory.
	WorkDir string
	// BuildDir holds build records and outputs. Relative paths are taken from WorkDir.
	BuildDir string
	// ConfigPath names the configuration file. When empty, WorkDir and its parents are searched.
	ConfigPath string
	// Force ignores stored build records.
	Force bool
}

// hostContext is the per-invocation view of the build host.
type hostContext struct {
	files *host.Files
	cfg   *domain.OperationConfiguration
}

func (a *App) open(opts Options) (*hostContext, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		workDir = wd
	}
	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = domain.DefaultBuildDir
	}

	files, err := host.NewFiles(workDir, buildDir, a.descriptors)
	if err != nil {
		return nil, err
	}

	path := files.Resolve(".")
	if opts.ConfigPath != "" {
		path = files.Resolve(opts.ConfigPath)
	}
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return &hostContext{files: files, cfg: cfg}, nil
}

func (a *App) span(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, func(*error)) {
	ctx, span := a.tracer.Start(ctx, name, opts...)
	return ctx, func(errp *error) {
		if *errp != nil {
			span.RecordError(*errp)
		}
		span.End()
	}
}

func (a *App) info(format string, args ...any) {
	if a.logger != nil {
		a.logger.Info(fmt.Sprintf(format, args...))
	}
}
