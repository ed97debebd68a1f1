package dataplist

import (
	"context"
	"time"

	"github.com/gitpan/Data-Plist/pkg/trace"
)

// Option configures a Document.
type Option func(*documentConfig)

type documentConfig struct {
	registry *Registry
	logger   DiagnosticLogger
	maxDepth int
	hooks    trace.Hooks
}

func applyOptions(opts []Option) documentConfig {
	cfg := documentConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithRegistry configures the class registry consulted during
// reconstruction. The registry is cloned to preserve immutability.
func WithRegistry(registry *Registry) Option {
	return func(cfg *documentConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

// WithDiagnosticLogger attaches a diagnostic logger to the document.
func WithDiagnosticLogger(logger DiagnosticLogger) Option {
	return func(cfg *documentConfig) {
		if logger == nil {
			cfg.logger = noopDiagnosticLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithMaxDepth overrides the reference-resolution depth budget. Values below
// one are ignored.
func WithMaxDepth(depth int) Option {
	return func(cfg *documentConfig) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithTraceHooks attaches trace hooks to the document. Hooks are cloned and
// nil entries dropped to preserve immutability.
func WithTraceHooks(hooks trace.Hooks) Option {
	normalized := cloneTraceHooks(hooks)
	return func(cfg *documentConfig) {
		cfg.hooks = normalized
	}
}

func cloneTraceHooks(hooks trace.Hooks) trace.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]trace.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return trace.Hooks(normalized)
}

// Document wraps one deserialized property list and answers questions about
// it. All operations read the wrapped tree without mutating it.
type Document struct {
	raw Value
	cfg documentConfig
}

// New constructs a Document around raw.
func New(raw Value, opts ...Option) *Document {
	return &Document{
		raw: raw,
		cfg: applyOptions(opts),
	}
}

// RawData returns the wrapped tagged tree untouched.
func (d *Document) RawData() Value {
	return d.raw
}

// IsArchive reports whether the wrapped tree satisfies the keyed-archive
// signature.
func (d *Document) IsArchive() bool {
	return IsArchive(d.raw)
}

// Data returns the tree with tags stripped: natives, nil for "$null",
// absolute times for dates. Works on any document, archive or not.
func (d *Document) Data() any {
	sink := d.sink()
	c := collapser{log: sink}
	return c.collapse(d.raw, "$")
}

// Object reconstructs the archived object graph: references are resolved,
// tags stripped, and typed instances rebuilt through the configured registry.
// Returns ErrNotArchive when the document is not a keyed archive.
func (d *Document) Object() (any, error) {
	if !d.IsArchive() {
		return nil, ErrNotArchive
	}
	sink := d.sink()
	start := time.Now()
	resolved, err := d.resolveRootWith(sink)
	if err != nil {
		d.emit(trace.Event{Verb: "reconstruct", Err: err})
		return nil, err
	}
	collapsed := collapser{log: sink}.collapse(resolved, "$")
	rf := reifier{registry: d.cfg.registry, log: sink}
	object := rf.reify(collapsed, "$")
	d.emit(trace.Event{
		Verb: "reconstruct",
		Metadata: map[string]any{
			"diagnostics": sink.seen,
			"duration_ms": time.Since(start).Milliseconds(),
		},
	})
	return object, nil
}

// resolvedRoot resolves the archive's root reference against its object
// table using the document's own configuration. Callers must have checked
// IsArchive.
func (d *Document) resolvedRoot() (Value, error) {
	return d.resolveRootWith(d.sink())
}

func (d *Document) resolveRootWith(log DiagnosticLogger) (Value, error) {
	table, root := archiveParts(d.raw)
	res := resolver{table: table, log: log, maxDepth: d.depthBudget()}
	return res.resolve(root, "$", 0)
}

func (d *Document) depthBudget() int {
	if d.cfg.maxDepth > 0 {
		return d.cfg.maxDepth
	}
	return DefaultMaxDepth
}

func (d *Document) diagnosticLogger() DiagnosticLogger {
	if d.cfg.logger != nil {
		return d.cfg.logger
	}
	return noopDiagnosticLogger{}
}

func (d *Document) sink() *diagnosticSink {
	return &diagnosticSink{next: d.diagnosticLogger(), hooks: d.cfg.hooks}
}

func (d *Document) emit(event trace.Event) {
	if !d.cfg.hooks.Enabled() {
		return
	}
	_ = d.cfg.hooks.Notify(context.Background(), event)
}
