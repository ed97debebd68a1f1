package dataplist

import (
	"context"

	"github.com/gitpan/Data-Plist/pkg/trace"
)

// Diagnostic describes one recoverable defect encountered while collapsing,
// resolving, or reifying a document.
type Diagnostic struct {
	Op    string
	Path  string
	Class string
	Err   error
}

// DiagnosticLogger records diagnostics.
type DiagnosticLogger interface {
	LogDiagnostic(Diagnostic)
}

// DiagnosticLoggerFunc adapts a function to DiagnosticLogger.
type DiagnosticLoggerFunc func(Diagnostic)

// LogDiagnostic implements DiagnosticLogger.
func (f DiagnosticLoggerFunc) LogDiagnostic(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

type noopDiagnosticLogger struct{}

func (noopDiagnosticLogger) LogDiagnostic(Diagnostic) {}

// diagnosticSink fans diagnostics to the configured logger and, when trace
// hooks are attached, mirrors each one as a trace event. It also counts
// diagnostics so operations can report totals.
type diagnosticSink struct {
	next  DiagnosticLogger
	hooks trace.Hooks
	seen  int
}

func (s *diagnosticSink) LogDiagnostic(d Diagnostic) {
	s.seen++
	s.next.LogDiagnostic(d)
	if s.hooks.Enabled() {
		_ = s.hooks.Notify(context.Background(), trace.Event{
			Verb:  d.Op,
			Path:  d.Path,
			Class: d.Class,
			Err:   d.Err,
		})
	}
}
