package dataplist

import (
	"strconv"
	"time"
)

// EpochOffset is the number of seconds between the Unix epoch and the
// 2001-01-01 reference epoch used by serialized dates.
const EpochOffset = 978307200

// Placeholder is substituted for nodes that carry no recognizable tag.
const Placeholder = "???"

// AbsoluteTime converts seconds relative to the reference epoch into an
// absolute UTC time.
func AbsoluteTime(seconds float64) time.Time {
	return time.Unix(EpochOffset, 0).UTC().Add(time.Duration(seconds * float64(time.Second)))
}

// Collapse strips tags from a value tree, returning natives: []any for
// arrays, map[string]any for dictionaries, and scalars otherwise. The "$null"
// sentinel string becomes nil, dates become absolute times, and data nodes
// yield their byte buffer or nested *Document. Malformed nodes become
// Placeholder.
func Collapse(v Value) any {
	c := collapser{log: noopDiagnosticLogger{}}
	return c.collapse(v, "$")
}

type collapser struct {
	log DiagnosticLogger
}

func (c collapser) collapse(v Value, path string) any {
	switch v.kind {
	case KindArray:
		out := make([]any, len(v.arr))
		for i, elem := range v.arr {
			out[i] = c.collapse(elem, childPath(path, strconv.Itoa(i)))
		}
		return out
	case KindDict:
		out := make(map[string]any, len(v.dict))
		for key, elem := range v.dict {
			out[key] = c.collapse(elem, childPath(path, key))
		}
		return out
	case KindString:
		if v.str == nullString {
			return nil
		}
		return v.str
	case KindInteger:
		return v.num
	case KindReal:
		return v.real
	case KindDate:
		return AbsoluteTime(v.real)
	case KindData:
		if v.doc != nil {
			return v.doc
		}
		return v.bytes
	case KindUID:
		if v.target != nil {
			return c.collapse(*v.target, path)
		}
		// An unresolved reference has no subtree to strip; its index is
		// the only payload it carries.
		return v.ref
	case KindBool:
		return v.flag
	default:
		c.log.LogDiagnostic(Diagnostic{Op: "collapse", Path: path, Err: ErrMalformedNode})
		return Placeholder
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
