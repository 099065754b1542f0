// Package host records what operations report to their build host and gives them
// access to caller-named files and the build output tree.
package host

import (
	"slices"
	"sync"
	"time"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
)

var _ ports.DependencyRecorder = (*Recorder)(nil)

type dependencyKey struct {
	kind domain.DependencyKind
	path string
}

// Recorder implements ports.DependencyRecorder.
// A path reported twice under the same kind keeps the latest descriptor.
type Recorder struct {
	logger ports.Logger

	mu       sync.Mutex
	order    []dependencyKey
	deps     map[dependencyKey]domain.ContentDescriptor
	warnings []error
	rebuild  bool
}

// NewRecorder creates an empty Recorder. Warnings are also logged when logger is non-nil.
func NewRecorder(logger ports.Logger) *Recorder {
	return &Recorder{logger: logger, deps: make(map[dependencyKey]domain.ContentDescriptor)}
}

// ReportInput records a caller-supplied file.
func (r *Recorder) ReportInput(path string, d domain.ContentDescriptor) {
	r.report(domain.DependencyInput, path, d)
}

// ReportOutput records a file in the output tree.
func (r *Recorder) ReportOutput(path string, d domain.ContentDescriptor) {
	r.report(domain.DependencyOutput, path, d)
}

// ReportExecution records a file outside the build tree.
func (r *Recorder) ReportExecution(path string, d domain.ContentDescriptor) {
	r.report(domain.DependencyExecution, path, d)
}

func (r *Recorder) report(kind domain.DependencyKind, path string, d domain.ContentDescriptor) {
	key := dependencyKey{kind: kind, path: path}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deps[key]; !ok {
		r.order = append(r.order, key)
	}
	r.deps[key] = d
}

// RebuildAlways marks the operation as never up to date.
func (r *Recorder) RebuildAlways() {
	r.mu.Lock()
	r.rebuild = true
	r.mu.Unlock()
}

// Warn records err and logs it.
func (r *Recorder) Warn(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	r.warnings = append(r.warnings, err)
	r.mu.Unlock()
	if r.logger != nil {
		r.logger.Warn(err.Error())
	}
}

// Warnings returns the recorded warnings in report order.
func (r *Recorder) Warnings() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.warnings)
}

// Dependencies returns the reported dependencies in first-report order.
func (r *Recorder) Dependencies() []domain.RecordedDependency {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.RecordedDependency, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, domain.RecordedDependency{Kind: k.kind, Path: k.path, Descriptor: r.deps[k]})
	}
	return out
}

// Record snapshots everything reported so far into a build record.
func (r *Recorder) Record(key, operation string, now time.Time) domain.BuildRecord {
	deps := r.Dependencies()

	r.mu.Lock()
	defer r.mu.Unlock()
	warnings := make([]string, 0, len(r.warnings))
	for _, w := range r.warnings {
		warnings = append(warnings, w.Error())
	}
	return domain.BuildRecord{
		Key:           key,
		Operation:     operation,
		Dependencies:  deps,
		Warnings:      warnings,
		RebuildAlways: r.rebuild,
		Timestamp:     now,
	}
}
