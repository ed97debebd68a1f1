package query

// ProgramCache stores compiled expression programs keyed by expression
// strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache for the evaluation.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *queryConfig) {
		cfg.programCache = cache
	}
}
