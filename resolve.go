package dataplist

import (
	"fmt"
	"strconv"
)

// DefaultMaxDepth bounds reference resolution when no explicit budget is
// configured. Reference cycles surface as ErrDepthExceeded once the budget
// runs out.
const DefaultMaxDepth = 512

// resolver substitutes object-table references with copies of their target
// subtrees. Every container it returns is freshly allocated, so a subtree
// referenced twice materializes twice and the input tree is never touched.
type resolver struct {
	table    []Value
	log      DiagnosticLogger
	maxDepth int
}

func (r *resolver) resolve(v Value, path string, depth int) (Value, error) {
	if depth > r.maxDepth {
		return Value{}, fmt.Errorf("dataplist: resolve %s: %w", path, ErrDepthExceeded)
	}
	switch v.kind {
	case KindUID:
		if v.target != nil {
			return r.resolve(*v.target, path, depth+1)
		}
		if v.ref >= uint64(len(r.table)) {
			r.log.LogDiagnostic(Diagnostic{
				Op:   "resolve",
				Path: path,
				Err:  fmt.Errorf("%w: index %d, table holds %d", ErrDanglingReference, v.ref, len(r.table)),
			})
			return v, nil
		}
		return r.resolve(r.table[v.ref], path, depth+1)
	case KindArray:
		out := make([]Value, len(v.arr))
		for i, elem := range v.arr {
			resolved, err := r.resolve(elem, childPath(path, strconv.Itoa(i)), depth+1)
			if err != nil {
				return Value{}, err
			}
			out[i] = resolved
		}
		return Value{kind: KindArray, arr: out}, nil
	case KindDict:
		out := make(map[string]Value, len(v.dict))
		for key, elem := range v.dict {
			resolved, err := r.resolve(elem, childPath(path, key), depth+1)
			if err != nil {
				return Value{}, err
			}
			out[key] = resolved
		}
		return Value{kind: KindDict, dict: out}, nil
	case KindData:
		if v.doc == nil {
			return v, nil
		}
		if !v.doc.IsArchive() {
			r.log.LogDiagnostic(Diagnostic{
				Op:   "resolve",
				Path: path,
				Err:  fmt.Errorf("%w; nested document kept as data", ErrNotArchive),
			})
			return v, nil
		}
		inner, err := v.doc.resolvedRoot()
		if err != nil {
			return Value{}, fmt.Errorf("dataplist: resolve %s: nested archive: %w", path, err)
		}
		return inner, nil
	default:
		return v, nil
	}
}
