package dataplist

import (
	"errors"
	"reflect"
	"testing"
)

type widget struct {
	Name string
	Size int64
}

func (w *widget) ReplaceArchived(fields map[string]any) (any, error) {
	w.Name, _ = fields["name"].(string)
	w.Size, _ = fields["size"].(int64)
	return w, nil
}

type box struct {
	Items []any
}

func (b *box) ReplaceArchived(fields map[string]any) (any, error) {
	b.Items, _ = fields["items"].([]any)
	return b, nil
}

type failingObject struct{}

func (failingObject) ReplaceArchived(map[string]any) (any, error) {
	return nil, errors.New("boom")
}

func classRecord(name string) Value {
	return Dict(map[string]Value{
		classNameKey: String(name),
		"$classes":   Array(String(name), String("NSObject")),
	})
}

func widgetArchive() Value {
	return archiveValue(UID(0),
		Dict(map[string]Value{
			classKey: UID(1),
			"name":   UID(2),
			"size":   Integer(42),
		}),
		classRecord("Widget"),
		String("sprocket"),
	)
}

func TestObjectReifiesRegisteredClass(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("Widget", func() any { return &widget{} }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := New(widgetArchive(), WithRegistry(registry)).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, ok := got.(*widget)
	if !ok {
		t.Fatalf("expected *widget, got %T", got)
	}
	if w.Name != "sprocket" || w.Size != 42 {
		t.Fatalf("unexpected widget contents: %+v", w)
	}
}

func TestObjectKeepsUnregisteredClassUntyped(t *testing.T) {
	capture := &captureDiagnostics{}

	got, err := New(widgetArchive(), WithDiagnosticLogger(capture)).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"name": "sprocket",
		"size": int64(42),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected untyped mapping without the class key, got %#v", got)
	}

	if len(capture.entries) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(capture.entries))
	}
	entry := capture.entries[0]
	if !errors.Is(entry.Err, ErrUnknownClass) {
		t.Fatalf("expected ErrUnknownClass, got %v", entry.Err)
	}
	if entry.Class != "Widget" {
		t.Fatalf("expected diagnostic to carry the class name, got %q", entry.Class)
	}
	if entry.Op != "reify" {
		t.Fatalf("expected reify diagnostic, got %q", entry.Op)
	}
}

func TestObjectReifiesNestedInstances(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("Widget", func() any { return &widget{} }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.Register("Box", func() any { return &box{} }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	envelope := archiveValue(UID(0),
		Dict(map[string]Value{
			classKey: UID(1),
			"items":  Array(UID(2)),
		}),
		classRecord("Box"),
		Dict(map[string]Value{
			classKey: UID(3),
			"name":   UID(4),
			"size":   Integer(7),
		}),
		classRecord("Widget"),
		String("cog"),
	)

	got, err := New(envelope, WithRegistry(registry)).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := got.(*box)
	if !ok {
		t.Fatalf("expected *box, got %T", got)
	}
	if len(b.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(b.Items))
	}
	w, ok := b.Items[0].(*widget)
	if !ok {
		t.Fatalf("expected inner instance to be reified before the outer hook, got %T", b.Items[0])
	}
	if w.Name != "cog" || w.Size != 7 {
		t.Fatalf("unexpected widget contents: %+v", w)
	}
}

func TestObjectReportsMalformedClassReference(t *testing.T) {
	capture := &captureDiagnostics{}
	envelope := archiveValue(UID(0),
		Dict(map[string]Value{
			classKey: UID(1),
			"name":   String("stray"),
		}),
		String("not a class record"),
	)

	got, err := New(envelope, WithDiagnosticLogger(capture)).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"name": "stray"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected fields without the class key, got %#v", got)
	}
	if len(capture.entries) != 1 || !errors.Is(capture.entries[0].Err, ErrMalformedClass) {
		t.Fatalf("expected ErrMalformedClass diagnostic, got %v", capture.entries)
	}
}

func TestObjectReportsNonConformantFactories(t *testing.T) {
	cases := []struct {
		name    string
		factory Factory
	}{
		{"plain value", func() any { return 42 }},
		{"nil result", func() any { return nil }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			registry := NewRegistry()
			if err := registry.Register("Widget", tc.factory); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			capture := &captureDiagnostics{}

			got, err := New(widgetArchive(), WithRegistry(registry), WithDiagnosticLogger(capture)).Object()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := got.(map[string]any); !ok {
				t.Fatalf("expected untyped mapping, got %T", got)
			}
			if len(capture.entries) != 1 || !errors.Is(capture.entries[0].Err, ErrNotArchivedObject) {
				t.Fatalf("expected ErrNotArchivedObject diagnostic, got %v", capture.entries)
			}
		})
	}
}

func TestObjectKeepsFieldsWhenReplacementFails(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("Widget", func() any { return failingObject{} }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	capture := &captureDiagnostics{}

	got, err := New(widgetArchive(), WithRegistry(registry), WithDiagnosticLogger(capture)).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"name": "sprocket",
		"size": int64(42),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected untyped mapping, got %#v", got)
	}
	if len(capture.entries) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(capture.entries))
	}
	if capture.entries[0].Class != "Widget" {
		t.Fatalf("expected class in diagnostic, got %q", capture.entries[0].Class)
	}
}

func TestObjectWithoutClassStaysPlain(t *testing.T) {
	envelope := archiveValue(UID(0),
		Dict(map[string]Value{"plain": Integer(1)}),
	)

	got, err := New(envelope).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"plain": int64(1)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected plain mapping, got %#v", got)
	}
}
