package dataplist

import (
	"fmt"
	"strconv"
)

// reifier rebuilds typed instances from collapsed archive data. It walks the
// tree post-order so an instance's fields are fully reconstructed before its
// replacement hook runs. Every failure is a per-node diagnostic; the node is
// left as the untyped mapping and the walk continues.
type reifier struct {
	registry *Registry
	log      DiagnosticLogger
}

func (rf *reifier) reify(v any, path string) any {
	switch node := v.(type) {
	case map[string]any:
		class, tagged := node[classKey]
		out := make(map[string]any, len(node))
		for key, child := range node {
			if key == classKey {
				continue
			}
			out[key] = rf.reify(child, childPath(path, key))
		}
		if !tagged {
			return out
		}
		return rf.instantiate(class, out, path)
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = rf.reify(child, childPath(path, strconv.Itoa(i)))
		}
		return out
	default:
		return v
	}
}

func (rf *reifier) instantiate(class any, fields map[string]any, path string) any {
	name, ok := classNameOf(class)
	if !ok {
		rf.log.LogDiagnostic(Diagnostic{Op: "reify", Path: path, Err: ErrMalformedClass})
		return fields
	}
	factory, ok := rf.registry.Lookup(name)
	if !ok {
		rf.log.LogDiagnostic(Diagnostic{
			Op:    "reify",
			Path:  path,
			Class: name,
			Err:   fmt.Errorf("%w: %q", ErrUnknownClass, name),
		})
		return fields
	}
	instance := factory()
	obj, ok := instance.(ArchivedObject)
	if !ok || instance == nil {
		rf.log.LogDiagnostic(Diagnostic{
			Op:    "reify",
			Path:  path,
			Class: name,
			Err:   fmt.Errorf("%w: %q produced %T", ErrNotArchivedObject, name, instance),
		})
		return fields
	}
	replaced, err := obj.ReplaceArchived(fields)
	if err != nil {
		rf.log.LogDiagnostic(Diagnostic{
			Op:    "reify",
			Path:  path,
			Class: name,
			Err:   fmt.Errorf("dataplist: replace %q: %w", name, err),
		})
		return fields
	}
	return replaced
}

// classNameOf extracts the class name from a resolved class record, which
// collapses to a mapping carrying a $classname string.
func classNameOf(class any) (string, bool) {
	record, ok := class.(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := record[classNameKey].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
