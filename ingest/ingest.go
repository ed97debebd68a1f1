// Package ingest turns serialized property lists into documents. Byte-level
// parsing is delegated to howett.net/plist; this package maps its decoded
// values onto the tagged tree, recognizing embedded property lists inside
// data payloads along the way.
package ingest

import (
	"bytes"
	"fmt"
	"io"
	"time"

	plist "howett.net/plist"

	dataplist "github.com/gitpan/Data-Plist"
)

// FromBytes decodes raw XML or binary plist bytes into a Document. The
// supplied options configure the returned document and every nested document
// discovered inside data payloads.
func FromBytes(raw []byte, opts ...dataplist.Option) (*dataplist.Document, error) {
	var decoded any
	if _, err := plist.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("ingest: decode plist: %w", err)
	}
	return dataplist.New(tag(decoded, opts), opts...), nil
}

// FromReader reads all of r and decodes it as FromBytes does.
func FromReader(r io.Reader, opts ...dataplist.Option) (*dataplist.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: read plist: %w", err)
	}
	return FromBytes(raw, opts...)
}

// tag maps one decoded value onto the tagged tree. Values the decoder can
// emit but the tree cannot carry become invalid nodes, which downstream
// collapse reports and replaces with the malformed placeholder.
func tag(decoded any, opts []dataplist.Option) dataplist.Value {
	switch value := decoded.(type) {
	case map[string]any:
		entries := make(map[string]dataplist.Value, len(value))
		for key, child := range value {
			entries[key] = tag(child, opts)
		}
		return dataplist.Dict(entries)
	case []any:
		elems := make([]dataplist.Value, len(value))
		for i, child := range value {
			elems[i] = tag(child, opts)
		}
		return dataplist.Array(elems...)
	case string:
		return dataplist.String(value)
	case bool:
		return dataplist.Bool(value)
	case int:
		return dataplist.Integer(int64(value))
	case int8:
		return dataplist.Integer(int64(value))
	case int16:
		return dataplist.Integer(int64(value))
	case int32:
		return dataplist.Integer(int64(value))
	case int64:
		return dataplist.Integer(value)
	case uint:
		return dataplist.Integer(int64(value))
	case uint8:
		return dataplist.Integer(int64(value))
	case uint16:
		return dataplist.Integer(int64(value))
	case uint32:
		return dataplist.Integer(int64(value))
	case uint64:
		return dataplist.Integer(int64(value))
	case float32:
		return dataplist.Real(float64(value))
	case float64:
		return dataplist.Real(value)
	case time.Time:
		seconds := value.Sub(time.Unix(dataplist.EpochOffset, 0)).Seconds()
		return dataplist.Date(seconds)
	case plist.UID:
		return dataplist.UID(uint64(value))
	case []byte:
		return tagData(value, opts)
	default:
		return dataplist.Value{}
	}
}

// tagData keeps data payloads as bytes unless they hold a decodable property
// list, in which case the nested document is carried in place.
func tagData(raw []byte, opts []dataplist.Option) dataplist.Value {
	if !looksLikeDocument(raw) {
		return dataplist.Data(raw)
	}
	nested, err := FromBytes(raw, opts...)
	if err != nil {
		return dataplist.Data(raw)
	}
	return dataplist.NestedData(nested)
}

func looksLikeDocument(raw []byte) bool {
	if bytes.HasPrefix(raw, []byte("bplist0")) {
		return true
	}
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<plist"))
}
