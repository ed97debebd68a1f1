package foundation

import (
	dataplist "github.com/gitpan/Data-Plist"
)

// Object is the generic archived instance: the reified field mapping plus
// the class identity that produced it. It stands in for any class without a
// more specific rendition.
type Object struct {
	Class  string
	Fields map[string]any
}

var _ dataplist.ArchivedObject = (*Object)(nil)

// ReplaceArchived adopts the field mapping and keeps the wrapper as the
// reconstructed value.
func (o *Object) ReplaceArchived(fields map[string]any) (any, error) {
	o.Fields = fields
	return o, nil
}

// Get returns the named field.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o.Fields[key]
	return value, ok
}
