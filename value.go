package dataplist

import (
	"bytes"
	"time"
)

// Kind identifies the tag carried by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindArray
	KindDict
	KindString
	KindInteger
	KindReal
	KindDate
	KindData
	KindUID
	KindBool
)

// String returns the tag name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindDate:
		return "date"
	case KindData:
		return "data"
	case KindUID:
		return "UID"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is one node of a deserialized property list: a tag plus the payload
// that tag admits. The zero Value is invalid and collapses to the malformed
// placeholder. Payloads are only reachable through the typed accessors, so a
// tag can never be paired with a payload of the wrong shape.
type Value struct {
	kind   Kind
	arr    []Value
	dict   map[string]Value
	str    string
	num    int64
	real   float64
	bytes  []byte
	doc    *Document
	ref    uint64
	target *Value
	flag   bool
}

// Array builds an array node from elems in order.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Dict builds a dictionary node. The map is used as-is; callers hand over
// ownership.
func Dict(entries map[string]Value) Value {
	if entries == nil {
		entries = map[string]Value{}
	}
	return Value{kind: KindDict, dict: entries}
}

// String builds a string node.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Integer builds an integer node.
func Integer(n int64) Value {
	return Value{kind: KindInteger, num: n}
}

// Real builds a floating point node.
func Real(f float64) Value {
	return Value{kind: KindReal, real: f}
}

// Date builds a date node from seconds relative to the 2001-01-01 reference
// epoch.
func Date(seconds float64) Value {
	return Value{kind: KindDate, real: seconds}
}

// Data builds a data node holding an opaque byte buffer.
func Data(raw []byte) Value {
	return Value{kind: KindData, bytes: raw}
}

// NestedData builds a data node whose payload is itself a deserialized
// document, as produced when an embedded property list has already been
// recognized and decoded.
func NestedData(doc *Document) Value {
	return Value{kind: KindData, doc: doc}
}

// UID builds an unresolved object-table reference.
func UID(index uint64) Value {
	return Value{kind: KindUID, ref: index}
}

// ResolvedUID builds a reference whose target subtree has already been
// substituted in place.
func ResolvedUID(target Value) Value {
	return Value{kind: KindUID, target: &target}
}

// Bool builds a boolean node.
func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Kind returns the node's tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether the node carries a known tag.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// AsArray returns the element slice of an array node. The slice is shared
// with the node and should be treated as read-only.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsDict returns the entry map of a dictionary node. The map is shared with
// the node and should be treated as read-only.
func (v Value) AsDict() (map[string]Value, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	return v.dict, true
}

// AsString returns the payload of a string node, sentinel strings included.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsInteger returns the payload of an integer node.
func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.num, true
}

// AsReal returns the payload of a real node.
func (v Value) AsReal() (float64, bool) {
	if v.kind != KindReal {
		return 0, false
	}
	return v.real, true
}

// AsDate returns the absolute UTC time of a date node.
func (v Value) AsDate() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return AbsoluteTime(v.real), true
}

// AsData returns the byte buffer of a data node. ok is false when the node
// holds a nested document instead of raw bytes.
func (v Value) AsData() ([]byte, bool) {
	if v.kind != KindData || v.doc != nil {
		return nil, false
	}
	return v.bytes, true
}

// AsDocument returns the nested document of a data node, when present.
func (v Value) AsDocument() (*Document, bool) {
	if v.kind != KindData || v.doc == nil {
		return nil, false
	}
	return v.doc, true
}

// AsUID returns the object-table index of an unresolved reference.
func (v Value) AsUID() (uint64, bool) {
	if v.kind != KindUID || v.target != nil {
		return 0, false
	}
	return v.ref, true
}

// AsResolved returns the substituted subtree of a resolved reference.
func (v Value) AsResolved() (Value, bool) {
	if v.kind != KindUID || v.target == nil {
		return Value{}, false
	}
	return *v.target, true
}

// AsBool returns the payload of a boolean node.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.flag, true
}

// Equal reports deep structural equality. Two nodes are equal when their
// tags match and their payloads match recursively; container identity is
// ignored.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.dict) != len(other.dict) {
			return false
		}
		for key, elem := range v.dict {
			peer, ok := other.dict[key]
			if !ok || !elem.Equal(peer) {
				return false
			}
		}
		return true
	case KindString:
		return v.str == other.str
	case KindInteger:
		return v.num == other.num
	case KindReal, KindDate:
		return v.real == other.real
	case KindData:
		if (v.doc == nil) != (other.doc == nil) {
			return false
		}
		if v.doc != nil {
			return v.doc.raw.Equal(other.doc.raw)
		}
		return bytes.Equal(v.bytes, other.bytes)
	case KindUID:
		if (v.target == nil) != (other.target == nil) {
			return false
		}
		if v.target != nil {
			return v.target.Equal(*other.target)
		}
		return v.ref == other.ref
	case KindBool:
		return v.flag == other.flag
	default:
		return true
	}
}
