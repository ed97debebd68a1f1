// Package query evaluates expressions against collapsed property list data.
// Three engines are available: expr-lang (default), CEL, and JavaScript
// behind the js_eval build tag.
package query

import "time"

// Context carries inputs needed when evaluating an expression. Snapshot is
// the collapsed data under query; when it is a mapping its entries are bound
// as top-level variables, and the whole snapshot is always bound as "data".
type Context struct {
	Snapshot any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx Context) withDefaultNow() Context {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx Context) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx Context) withDefaultMaps() Context {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

// Evaluator executes expressions against a context.
type Evaluator interface {
	Evaluate(ctx Context, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx Context) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures an evaluation.
type Option func(*queryConfig)

type queryConfig struct {
	evaluator    Evaluator
	programCache ProgramCache
	functions    *FunctionRegistry
	logger       Logger
}

func applyOptions(opts []Option) queryConfig {
	cfg := queryConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEvaluator configures the engine used for evaluation.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *queryConfig) {
		cfg.evaluator = e
	}
}

func (cfg *queryConfig) queryLogger() Logger {
	if cfg.logger != nil {
		return cfg.logger
	}
	return noopLogger{}
}
