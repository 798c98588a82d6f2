package telemetry

import (
	"context"

	"go.trai.ch/shift/internal/core/ports"
)

// Noop is a ports.Telemetry that records nothing.
type Noop struct{}

// NewNoop creates a new Noop telemetry.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns ctx unchanged and a vertex that ignores every call.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (n *Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Complete(error) {}

func (noopVertex) Cached() {}
