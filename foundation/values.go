package foundation

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	dataplist "github.com/gitpan/Data-Plist"
)

// NSData unboxes an archived data payload. The payload is raw bytes, or the
// already-reconstructed value of an embedded document.
type NSData struct{}

// NSMutableData behaves identically to NSData once reconstructed.
type NSMutableData = NSData

var _ dataplist.ArchivedObject = NSData{}

// ReplaceArchived returns the NS.data payload unchanged.
func (NSData) ReplaceArchived(fields map[string]any) (any, error) {
	payload, ok := fields[dataField]
	if !ok {
		return nil, fmt.Errorf("foundation: NSData missing %s", dataField)
	}
	return payload, nil
}

// NSDate rebuilds an archived date into an absolute UTC time.
type NSDate struct{}

var _ dataplist.ArchivedObject = NSDate{}

// ReplaceArchived converts NS.time, stored relative to the 2001-01-01
// reference epoch, into a time.Time.
func (NSDate) ReplaceArchived(fields map[string]any) (any, error) {
	seconds, ok := floatField(fields, timeField)
	if !ok {
		return nil, fmt.Errorf("foundation: NSDate missing %s", timeField)
	}
	return dataplist.AbsoluteTime(seconds), nil
}

// NSString unboxes an archived string.
type NSString struct{}

// NSMutableString behaves identically to NSString once reconstructed.
type NSMutableString = NSString

var _ dataplist.ArchivedObject = NSString{}

// ReplaceArchived returns the NS.string payload.
func (NSString) ReplaceArchived(fields map[string]any) (any, error) {
	value, ok := fields[stringField].(string)
	if !ok {
		return nil, fmt.Errorf("foundation: NSString missing %s", stringField)
	}
	return value, nil
}

// NSURL rebuilds an archived URL into its absolute string form.
type NSURL struct{}

var _ dataplist.ArchivedObject = NSURL{}

// ReplaceArchived joins NS.base and NS.relative. NS.base is usually absent
// or nil, in which case NS.relative stands alone.
func (NSURL) ReplaceArchived(fields map[string]any) (any, error) {
	relative, ok := fields[relativeField].(string)
	if !ok {
		return nil, fmt.Errorf("foundation: NSURL missing %s", relativeField)
	}
	parsed, err := url.Parse(relative)
	if err != nil {
		return nil, fmt.Errorf("foundation: NSURL parse %q: %w", relative, err)
	}
	base, ok := fields[baseField].(string)
	if !ok || base == "" {
		return parsed.String(), nil
	}
	parsedBase, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("foundation: NSURL parse base %q: %w", base, err)
	}
	return parsedBase.ResolveReference(parsed).String(), nil
}

// NSUUID rebuilds an archived UUID from its sixteen raw bytes.
type NSUUID struct{}

var _ dataplist.ArchivedObject = NSUUID{}

// ReplaceArchived converts NS.uuidbytes into a uuid.UUID.
func (NSUUID) ReplaceArchived(fields map[string]any) (any, error) {
	raw, ok := fields[uuidBytesField].([]byte)
	if !ok {
		return nil, fmt.Errorf("foundation: NSUUID missing %s", uuidBytesField)
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("foundation: NSUUID bytes: %w", err)
	}
	return id, nil
}

// Dates can be archived as reals or, for whole seconds, integers.
func floatField(fields map[string]any, key string) (float64, bool) {
	switch value := fields[key].(type) {
	case float64:
		return value, true
	case int64:
		return float64(value), true
	case uint64:
		return float64(value), true
	default:
		return 0, false
	}
}
