package foundation_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	dataplist "github.com/gitpan/Data-Plist"
	"github.com/gitpan/Data-Plist/foundation"
)

func archiveEnvelope(root dataplist.Value, objects ...dataplist.Value) dataplist.Value {
	return dataplist.Dict(map[string]dataplist.Value{
		"$archiver": dataplist.String(dataplist.ArchiverName),
		"$version":  dataplist.Integer(dataplist.ArchiveVersion),
		"$objects":  dataplist.Array(objects...),
		"$top":      dataplist.Dict(map[string]dataplist.Value{"root": root}),
	})
}

func classRecord(name string) dataplist.Value {
	return dataplist.Dict(map[string]dataplist.Value{
		"$classname": dataplist.String(name),
		"$classes":   dataplist.Array(dataplist.String(name), dataplist.String("NSObject")),
	})
}

type capturedDiagnostics struct {
	entries []dataplist.Diagnostic
}

func (c *capturedDiagnostics) LogDiagnostic(d dataplist.Diagnostic) {
	c.entries = append(c.entries, d)
}

func TestDefaultRegistryCoversBuiltins(t *testing.T) {
	registry := foundation.DefaultRegistry()

	want := []string{
		"NSArray", "NSData", "NSDate", "NSDictionary", "NSMutableArray",
		"NSMutableData", "NSMutableDictionary", "NSMutableSet",
		"NSMutableString", "NSObject", "NSSet", "NSString", "NSURL", "NSUUID",
	}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNSArrayUnboxesElements(t *testing.T) {
	elements := []any{"keyed", "archive"}
	got, err := foundation.NSArray{}.ReplaceArchived(map[string]any{
		"NS.objects": elements,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, ok := got.([]any)
	if !ok || !reflect.DeepEqual(out, elements) {
		t.Fatalf("expected element slice, got %#v", got)
	}

	out[0] = "changed"
	if elements[0] != "keyed" {
		t.Fatalf("expected a fresh slice, input mutated: %v", elements)
	}

	if _, err := (foundation.NSArray{}).ReplaceArchived(map[string]any{}); err == nil {
		t.Fatalf("expected error for missing NS.objects")
	}
}

func TestNSSetUnboxesElements(t *testing.T) {
	got, err := foundation.NSSet{}.ReplaceArchived(map[string]any{
		"NS.objects": []any{int64(1), int64(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []any{int64(1), int64(2)}) {
		t.Fatalf("expected element slice, got %#v", got)
	}
}

func TestNSDictionaryZipsKeysAndObjects(t *testing.T) {
	got, err := foundation.NSDictionary{}.ReplaceArchived(map[string]any{
		"NS.keys":    []any{"name", int64(7)},
		"NS.objects": []any{"plist", true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"name": "plist", "7": true}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}

	_, err = foundation.NSDictionary{}.ReplaceArchived(map[string]any{
		"NS.keys":    []any{"lonely"},
		"NS.objects": []any{},
	})
	if err == nil || !strings.Contains(err.Error(), "1 keys but 0 objects") {
		t.Fatalf("expected length mismatch error, got %v", err)
	}
}

func TestNSDateConvertsReferenceSeconds(t *testing.T) {
	got, err := foundation.NSDate{}.ReplaceArchived(map[string]any{
		"NS.time": float64(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.(time.Time).Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got, err = foundation.NSDate{}.ReplaceArchived(map[string]any{
		"NS.time": int64(86400),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.(time.Time).Equal(want.Add(24 * time.Hour)) {
		t.Fatalf("expected whole-second time accepted, got %v", got)
	}

	if _, err := (foundation.NSDate{}).ReplaceArchived(map[string]any{"NS.time": "soon"}); err == nil {
		t.Fatalf("expected error for non-numeric NS.time")
	}
}

func TestNSStringAndDataUnbox(t *testing.T) {
	got, err := foundation.NSString{}.ReplaceArchived(map[string]any{"NS.string": "hello"})
	if err != nil || got != "hello" {
		t.Fatalf("expected string payload, got %v (%v)", got, err)
	}

	payload := []byte{0x01, 0x02}
	got, err = foundation.NSData{}.ReplaceArchived(map[string]any{"NS.data": payload})
	if err != nil || !reflect.DeepEqual(got, payload) {
		t.Fatalf("expected data payload, got %v (%v)", got, err)
	}

	embedded := map[string]any{"inner": "document"}
	got, err = foundation.NSData{}.ReplaceArchived(map[string]any{"NS.data": embedded})
	if err != nil || !reflect.DeepEqual(got, embedded) {
		t.Fatalf("expected embedded payload passthrough, got %v (%v)", got, err)
	}
}

func TestNSURLResolvesAgainstBase(t *testing.T) {
	got, err := foundation.NSURL{}.ReplaceArchived(map[string]any{
		"NS.relative": "https://example.com/a?b=1",
	})
	if err != nil || got != "https://example.com/a?b=1" {
		t.Fatalf("expected absolute URL, got %v (%v)", got, err)
	}

	got, err = foundation.NSURL{}.ReplaceArchived(map[string]any{
		"NS.relative": "docs/index.html",
		"NS.base":     "https://example.com/root/",
	})
	if err != nil || got != "https://example.com/root/docs/index.html" {
		t.Fatalf("expected base-resolved URL, got %v (%v)", got, err)
	}

	if _, err := (foundation.NSURL{}).ReplaceArchived(map[string]any{"NS.relative": "://bad"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNSUUIDRebuildsFromBytes(t *testing.T) {
	want := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	got, err := foundation.NSUUID{}.ReplaceArchived(map[string]any{
		"NS.uuidbytes": want[:],
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := (foundation.NSUUID{}).ReplaceArchived(map[string]any{"NS.uuidbytes": []byte{1, 2, 3}}); err == nil {
		t.Fatalf("expected error for short byte payload")
	}
}

func TestObjectWrapperKeepsFields(t *testing.T) {
	obj := &foundation.Object{Class: "Custom"}
	got, err := obj.ReplaceArchived(map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != obj {
		t.Fatalf("expected the wrapper itself back, got %T", got)
	}
	if value, ok := obj.Get("k"); !ok || value != "v" {
		t.Fatalf("expected field lookup, got %v (%v)", value, ok)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Fatalf("expected missing field to report false")
	}
	var nilObj *foundation.Object
	if _, ok := nilObj.Get("k"); ok {
		t.Fatalf("expected nil wrapper to report false")
	}
}

func TestDocumentReconstructsFoundationGraph(t *testing.T) {
	envelope := archiveEnvelope(dataplist.UID(0),
		dataplist.Dict(map[string]dataplist.Value{
			"$class":     dataplist.UID(1),
			"NS.keys":    dataplist.Array(dataplist.UID(2), dataplist.UID(3), dataplist.UID(4)),
			"NS.objects": dataplist.Array(dataplist.UID(5), dataplist.UID(6), dataplist.UID(8)),
		}),
		classRecord("NSDictionary"),
		dataplist.String("name"),
		dataplist.String("created"),
		dataplist.String("tags"),
		dataplist.String("plist"),
		dataplist.Dict(map[string]dataplist.Value{
			"$class":  dataplist.UID(7),
			"NS.time": dataplist.Real(0),
		}),
		classRecord("NSDate"),
		dataplist.Dict(map[string]dataplist.Value{
			"$class":     dataplist.UID(9),
			"NS.objects": dataplist.Array(dataplist.UID(10), dataplist.UID(11)),
		}),
		classRecord("NSArray"),
		dataplist.String("keyed"),
		dataplist.String("archive"),
	)

	doc := dataplist.New(envelope, dataplist.WithRegistry(foundation.DefaultRegistry()))
	got, err := doc.Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"name":    "plist",
		"created": time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		"tags":    []any{"keyed", "archive"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestGenericFactoryWrapsUnknownClasses(t *testing.T) {
	registry := foundation.DefaultRegistry()
	if err := registry.Register("BookmarkList", foundation.GenericFactory("BookmarkList")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	envelope := archiveEnvelope(dataplist.UID(0),
		dataplist.Dict(map[string]dataplist.Value{
			"$class": dataplist.UID(1),
			"count":  dataplist.Integer(2),
		}),
		classRecord("BookmarkList"),
	)

	got, err := dataplist.New(envelope, dataplist.WithRegistry(registry)).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := got.(*foundation.Object)
	if !ok {
		t.Fatalf("expected generic wrapper, got %T", got)
	}
	if obj.Class != "BookmarkList" {
		t.Fatalf("expected class identity, got %q", obj.Class)
	}
	if count, ok := obj.Get("count"); !ok || count != int64(2) {
		t.Fatalf("expected count field, got %v (%v)", count, ok)
	}
}

func TestFoundationFailuresFallBackUntyped(t *testing.T) {
	capture := &capturedDiagnostics{}
	envelope := archiveEnvelope(dataplist.UID(0),
		dataplist.Dict(map[string]dataplist.Value{
			"$class": dataplist.UID(1),
		}),
		classRecord("NSArray"),
	)

	doc := dataplist.New(envelope,
		dataplist.WithRegistry(foundation.DefaultRegistry()),
		dataplist.WithDiagnosticLogger(capture),
	)
	got, err := doc.Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{}) {
		t.Fatalf("expected empty untyped mapping, got %#v", got)
	}
	if len(capture.entries) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(capture.entries))
	}
	entry := capture.entries[0]
	if entry.Class != "NSArray" || !strings.Contains(entry.Err.Error(), "NS.objects") {
		t.Fatalf("unexpected diagnostic: %+v", entry)
	}
	if errors.Is(entry.Err, dataplist.ErrUnknownClass) {
		t.Fatalf("expected a replacement failure, not an unknown class: %v", entry.Err)
	}
}
