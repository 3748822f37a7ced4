// Package core runs prototype loads: it reads definition sections from a
// source, resolves inheritance and writes the merged prototypes to a sink,
// with logging, metrics and tracing around each phase.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prototypecore/internal/source"
	"prototypecore/pkg/prototype"
)

// ErrSourceUnavailable matches every *SourceUnavailableError via errors.Is.
var ErrSourceUnavailable = errors.New("prototype source unavailable")

// SourceUnavailableError reports that definition sections could not be read.
// Nothing is resolved or emitted when a load fails this way.
type SourceUnavailableError struct {
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSourceUnavailable, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSourceUnavailable.
func (e *SourceUnavailableError) Is(target error) bool { return target == ErrSourceUnavailable }

// SectionSource yields the ordered definition sections of one load.
type SectionSource interface {
	ReadSections(ctx context.Context) ([]prototype.Section, error)
}

// SectionSourceFunc adapts a function to SectionSource.
type SectionSourceFunc func(ctx context.Context) ([]prototype.Section, error)

// ReadSections calls f.
func (f SectionSourceFunc) ReadSections(ctx context.Context) ([]prototype.Section, error) {
	return f(ctx)
}

// LoadReport summarizes one load.
type LoadReport struct {
	LoadID     string
	Entities   int
	Components int
	Issues     []prototype.Issue
	Started    time.Time
	Finished   time.Time
}

// Count returns the number of issues of kind.
func (r LoadReport) Count(kind prototype.IssueKind) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

// Loader runs loads with a fixed set of options. It is safe for concurrent
// use when its logger, recorders and reporter are.
type Loader struct {
	opts loaderOptions
}

// NewLoader constructs a Loader.
func NewLoader(opts ...Option) *Loader {
	o := defaultLoaderOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Loader{opts: o}
}

type loadIDKey struct{}

// ContextWithLoadID returns ctx carrying id.
func ContextWithLoadID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, loadIDKey{}, id)
}

// LoadIDFromContext returns the load ID carried by ctx, if any.
func LoadIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(loadIDKey{}).(string)
	return id
}

// Load reads every section from src, builds the prototype table, resolves
// all entities in ascending name order and emits their components to sink.
// Unknown parents and duplicate names are collected in the report and do not
// fail the load.
func (l *Loader) Load(ctx context.Context, src SectionSource, sink prototype.Sink) (LoadReport, error) {
	report := LoadReport{LoadID: l.opts.newID(), Started: l.opts.clock.Now()}
	ctx = ContextWithLoadID(ctx, report.LoadID)
	err := l.observe(ctx, OpLoad, func(ctx context.Context) error {
		return l.load(ctx, &report, src, sink)
	})
	report.Finished = l.opts.clock.Now()
	if err != nil {
		l.opts.logger.Error("prototype load failed", "load_id", report.LoadID, "entities", report.Entities, "error", err.Error())
		return report, err
	}
	l.opts.logger.Info("prototype load complete",
		"load_id", report.LoadID,
		"entities", report.Entities,
		"components", report.Components,
		"issues", len(report.Issues),
	)
	return report, nil
}

func (l *Loader) load(ctx context.Context, report *LoadReport, src SectionSource, sink prototype.Sink) error {
	if sink == nil {
		return errors.New("load prototypes: nil sink")
	}
	reporter := prototype.ReporterFunc(func(issue prototype.Issue) {
		report.Issues = append(report.Issues, issue)
		l.opts.logger.Warn("prototype issue", "load_id", report.LoadID, "kind", string(issue.Kind), "entity", issue.Entity, "detail", issue.Detail)
		l.opts.reporter.ReportIssue(issue)
	})

	var sections []prototype.Section
	err := l.observe(ctx, OpReadSections, func(ctx context.Context) error {
		if src == nil {
			return &SourceUnavailableError{Err: errors.New("no source configured")}
		}
		got, err := src.ReadSections(ctx)
		if err != nil {
			return &SourceUnavailableError{Err: err}
		}
		sections = got
		return nil
	})
	if err != nil {
		return err
	}

	var table *prototype.Table
	_ = l.observe(ctx, OpBuildTable, func(context.Context) error {
		table = prototype.BuildTable(sections, reporter)
		return nil
	})

	var resolved []prototype.Resolved
	_ = l.observe(ctx, OpResolveAll, func(context.Context) error {
		resolved = prototype.ResolveAll(table, reporter)
		return nil
	})

	return l.observe(ctx, OpEmit, func(ctx context.Context) error {
		for _, r := range resolved {
			if err := ctx.Err(); err != nil {
				return err
			}
			l.opts.logger.Debug("loading prototype", "load_id", report.LoadID, "entity", r.Name, "components", r.Components.Len())
			if err := prototype.Emit(ctx, sink, r.Name, r.Components); err != nil {
				return err
			}
			report.Entities++
			report.Components += r.Components.Len()
		}
		return nil
	})
}

func (l *Loader) observe(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := l.opts.tracer.Start(ctx, op)
	start := time.Now()
	err := fn(ctx)
	span.End(err)
	l.opts.metrics.Observe(ctx, op, err == nil, time.Since(start))
	return err
}

// LoadFile loads the definition document at path into sink in one call.
func LoadFile(ctx context.Context, path string, sink prototype.Sink, opts ...Option) (LoadReport, error) {
	return NewLoader(opts...).Load(ctx, source.File{Path: path}, sink)
}
