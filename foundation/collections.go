package foundation

import (
	"fmt"

	dataplist "github.com/gitpan/Data-Plist"
)

// NSArray unboxes an archived array into its element slice.
type NSArray struct{}

// NSMutableArray behaves identically to NSArray once reconstructed.
type NSMutableArray = NSArray

var _ dataplist.ArchivedObject = NSArray{}

// ReplaceArchived returns the NS.objects elements as a fresh slice.
func (NSArray) ReplaceArchived(fields map[string]any) (any, error) {
	objects, ok := fields[objectsField].([]any)
	if !ok {
		return nil, fmt.Errorf("foundation: NSArray missing %s", objectsField)
	}
	return append([]any(nil), objects...), nil
}

// NSSet unboxes an archived set into its element slice. Element order is
// whatever the archive recorded.
type NSSet struct{}

// NSMutableSet behaves identically to NSSet once reconstructed.
type NSMutableSet = NSSet

var _ dataplist.ArchivedObject = NSSet{}

// ReplaceArchived returns the NS.objects elements as a fresh slice.
func (NSSet) ReplaceArchived(fields map[string]any) (any, error) {
	objects, ok := fields[objectsField].([]any)
	if !ok {
		return nil, fmt.Errorf("foundation: NSSet missing %s", objectsField)
	}
	return append([]any(nil), objects...), nil
}

// NSDictionary zips archived NS.keys and NS.objects into a native map.
// Non-string keys are stringified.
type NSDictionary struct{}

// NSMutableDictionary behaves identically to NSDictionary once
// reconstructed.
type NSMutableDictionary = NSDictionary

var _ dataplist.ArchivedObject = NSDictionary{}

// ReplaceArchived pairs keys with objects positionally.
func (NSDictionary) ReplaceArchived(fields map[string]any) (any, error) {
	keys, ok := fields[keysField].([]any)
	if !ok {
		return nil, fmt.Errorf("foundation: NSDictionary missing %s", keysField)
	}
	objects, ok := fields[objectsField].([]any)
	if !ok {
		return nil, fmt.Errorf("foundation: NSDictionary missing %s", objectsField)
	}
	if len(keys) != len(objects) {
		return nil, fmt.Errorf("foundation: NSDictionary has %d keys but %d objects", len(keys), len(objects))
	}
	out := make(map[string]any, len(keys))
	for i, key := range keys {
		name, ok := key.(string)
		if !ok {
			name = fmt.Sprint(key)
		}
		out[name] = objects[i]
	}
	return out, nil
}
