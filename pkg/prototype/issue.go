package prototype

import "fmt"

// IssueKind classifies a non-fatal condition found while loading prototypes.
type IssueKind string

const (
	// IssueUnknownParent marks a parent reference that names no record in the table.
	IssueUnknownParent IssueKind = "unknown_parent"
	// IssueDuplicateName marks a section that replaced an earlier record of the same name.
	IssueDuplicateName IssueKind = "duplicate_name"
)

// Issue describes a non-fatal condition. Entity names the prototype being
// built or resolved; Detail carries the offending reference or header.
type Issue struct {
	Kind   IssueKind
	Entity string
	Detail string
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueUnknownParent:
		return fmt.Sprintf("%s: parent %q of %q does not exist", i.Kind, i.Detail, i.Entity)
	case IssueDuplicateName:
		return fmt.Sprintf("%s: %q redefined by section %q", i.Kind, i.Entity, i.Detail)
	default:
		return fmt.Sprintf("%s: %s %s", i.Kind, i.Entity, i.Detail)
	}
}

// Reporter receives non-fatal issues. Callers decide whether to log, collect,
// or escalate them.
type Reporter interface {
	ReportIssue(Issue)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Issue)

// ReportIssue calls f(issue).
func (f ReporterFunc) ReportIssue(issue Issue) { f(issue) }

// IssueLog is a Reporter that retains every issue in arrival order.
type IssueLog struct {
	issues []Issue
}

// ReportIssue appends issue to the log.
func (l *IssueLog) ReportIssue(issue Issue) {
	l.issues = append(l.issues, issue)
}

// Issues returns a copy of the recorded issues.
func (l *IssueLog) Issues() []Issue {
	out := make([]Issue, len(l.issues))
	copy(out, l.issues)
	return out
}

// Count returns the number of recorded issues of the given kind.
func (l *IssueLog) Count(kind IssueKind) int {
	n := 0
	for _, issue := range l.issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

type discardReporter struct{}

func (discardReporter) ReportIssue(Issue) {}

func reporterOrDiscard(r Reporter) Reporter {
	if r == nil {
		return discardReporter{}
	}
	return r
}
