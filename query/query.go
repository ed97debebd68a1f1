package query

import (
	"errors"
	"fmt"
	"time"

	dataplist "github.com/gitpan/Data-Plist"
)

var ErrNoEvaluator = errors.New("query: evaluator not configured")

// Evaluate executes expr against ctx using the configured engine, falling
// back to the expr-lang engine when none is configured.
func Evaluate(ctx Context, expr string, opts ...Option) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	cfg := applyOptions(opts)
	evaluator, err := cfg.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	engine := engineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, evalErr)
	cfg.queryLogger().LogEvaluation(LogEvent{
		Engine:   engine,
		Expr:     expr,
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

// Document evaluates expr against the document's collapsed data.
func Document(doc *dataplist.Document, expr string, opts ...Option) (any, error) {
	var snapshot any
	if doc != nil {
		snapshot = doc.Data()
	}
	return Evaluate(Context{Snapshot: snapshot}, expr, opts...)
}

func (cfg *queryConfig) resolveEvaluator() (Evaluator, error) {
	if cfg.evaluator != nil {
		return cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
	}
	if cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	cfg.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

func engineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*query.exprEvaluator":
		return "expr"
	case "*query.celEvaluator":
		return "cel"
	case "*query.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
