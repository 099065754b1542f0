// Package progrock reports repository transfers as progrock vertices.
package progrock

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/m2/internal/core/ports"
)

var _ ports.TransferReporter = (*Reporter)(nil)

// Reporter implements ports.TransferReporter on a progrock recorder.
type Reporter struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a Reporter recording to an in-memory tape.
func New() *Reporter {
	return NewReporter(progrock.NewTape())
}

// NewReporter creates a Reporter with the given writer.
func NewReporter(w progrock.Writer) *Reporter {
	return &Reporter{w: w, rec: progrock.NewRecorder(w)}
}

// Start records a vertex for the transfer. Each call gets its own vertex even
// when names repeat.
func (r *Reporter) Start(_ context.Context, name string) ports.Transfer {
	d := digest.FromString(name + "#" + strconv.FormatUint(r.seq.Add(1), 10))
	return &transfer{vertex: r.rec.Vertex(d, name)}
}

// Close flushes and closes the recording.
func (r *Reporter) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

type transfer struct {
	vertex *progrock.VertexRecorder
	done   atomic.Bool
}

func (t *transfer) Done(err error) {
	if t.done.CompareAndSwap(false, true) {
		t.vertex.Done(err)
	}
}

func (t *transfer) Cached() {
	if t.done.CompareAndSwap(false, true) {
		t.vertex.Cached()
		t.vertex.Done(nil)
	}
}
