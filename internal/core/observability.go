package core

import (
	"context"
	"time"
)

// Operation names reported to metrics recorders and tracers.
const (
	OpLoad         = "load"
	OpReadSections = "read_sections"
	OpBuildTable   = "build_table"
	OpResolveAll   = "resolve_all"
	OpEmit         = "emit"
)

// MetricsRecorder observes the outcome and latency of loader operations.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around loader operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is ended exactly once with the operation's error, if any.
type TraceSpan interface {
	End(err error)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}
