package core

import (
	"time"

	"github.com/google/uuid"

	"prototypecore/pkg/prototype"
)

// Clock supplies timestamps for load reports.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock. A nil ClockFunc returns the current
// UTC time.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	if f == nil {
		return time.Now().UTC()
	}
	return f()
}

// Option configures a Loader.
type Option func(*loaderOptions)

type loaderOptions struct {
	logger   Logger
	metrics  MetricsRecorder
	tracer   Tracer
	clock    Clock
	reporter prototype.Reporter
	newID    func() string
}

func defaultLoaderOptions() loaderOptions {
	return loaderOptions{
		logger:   noopLogger{},
		metrics:  noopMetricsRecorder{},
		tracer:   noopTracer{},
		clock:    ClockFunc(nil),
		reporter: prototype.ReporterFunc(func(prototype.Issue) {}),
		newID:    func() string { return uuid.NewString() },
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(logger Logger) Option {
	return func(o *loaderOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRecorder sets the metrics recorder.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(o *loaderOptions) {
		if rec != nil {
			o.metrics = rec
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer Tracer) Option {
	return func(o *loaderOptions) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithClock sets the clock used for report timestamps.
func WithClock(clock Clock) Option {
	return func(o *loaderOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithReporter forwards every issue raised during a load to reporter, in
// addition to collecting it in the LoadReport.
func WithReporter(reporter prototype.Reporter) Option {
	return func(o *loaderOptions) {
		if reporter != nil {
			o.reporter = reporter
		}
	}
}

// WithIDGenerator overrides the load ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *loaderOptions) {
		if fn != nil {
			o.newID = fn
		}
	}
}
