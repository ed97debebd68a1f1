package foundation

import (
	dataplist "github.com/gitpan/Data-Plist"
	"github.com/gitpan/Data-Plist/internal/hydrate"
)

// Typed returns a factory that reconstructs instances of class into *T. The
// reified field mapping is decoded through JSON struct tags, so T's fields
// name the archived keys they bind, including dotted Foundation keys:
//
//	type Bookmark struct {
//	    Title string `json:"title"`
//	    Body  string `json:"NS.string"`
//	}
//
// Optional post hooks run against the decoded struct and can reject it.
func Typed[T any](class string, post ...func(*T) error) dataplist.Factory {
	return func() any {
		return &typedObject[T]{class: class, post: post}
	}
}

// RegisterTyped registers a Typed factory for class on r.
func RegisterTyped[T any](r *dataplist.Registry, class string, post ...func(*T) error) error {
	return r.Register(class, Typed[T](class, post...))
}

type typedObject[T any] struct {
	class string
	post  []func(*T) error
}

func (t *typedObject[T]) ReplaceArchived(fields map[string]any) (any, error) {
	opts := make([]hydrate.DecoderOption[T], 0, len(t.post))
	for _, hook := range t.post {
		hook := hook
		opts = append(opts, hydrate.WithPostHook[T](func(_ hydrate.Context, out *T) error {
			return hook(out)
		}))
	}
	decoded, err := hydrate.NewDecoder(opts...).Decode(hydrate.Context{Class: t.class}, fields)
	if err != nil {
		return nil, err
	}
	return &decoded, nil
}
