package ports

import (
	"context"

	"go.trai.ch/m2/internal/core/domain"
)

//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks

// DependencyRecorder collects what an operation reports to its build host.
// Implementations must be safe for concurrent use.
type DependencyRecorder interface {
	// ReportInput records a caller-supplied file the operation read.
	ReportInput(path string, d domain.ContentDescriptor)
	// ReportOutput records a file the operation produced in the output tree.
	ReportOutput(path string, d domain.ContentDescriptor)
	// ReportExecution records a file outside the build tree the result depends on.
	ReportExecution(path string, d domain.ContentDescriptor)
	// RebuildAlways marks the operation as never up to date.
	RebuildAlways()
	// Warn surfaces an ignorable problem.
	Warn(err error)
}

// FileMirror gives operations local access to caller-named files.
type FileMirror interface {
	// Mirror makes the file at path available locally, reports it as an input and
	// returns the local path. A missing file fails with domain.ErrNotFound.
	Mirror(ctx context.Context, path string, rec DependencyRecorder) (string, error)
	// Read returns the content of the file at path and reports it as an input.
	Read(ctx context.Context, path string, rec DependencyRecorder) ([]byte, error)
}

// OutputTree is the build output directory managed by the host.
type OutputTree interface {
	// Root returns the absolute build directory.
	Root() string
	// Publish places src at rel below the download tree, replacing a differing file,
	// reports it as an output and returns the output path.
	Publish(ctx context.Context, rel, src string, rec DependencyRecorder) (string, error)
}
