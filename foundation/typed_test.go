package foundation_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	dataplist "github.com/gitpan/Data-Plist"
	"github.com/gitpan/Data-Plist/foundation"
)

type bookmark struct {
	Title  string `json:"title"`
	Visits int    `json:"visits"`
	Pinned bool   `json:"pinned"`
}

type note struct {
	Body string `json:"NS.string"`
}

func bookmarkArchive() dataplist.Value {
	return archiveEnvelope(dataplist.UID(0),
		dataplist.Dict(map[string]dataplist.Value{
			"$class": dataplist.UID(1),
			"title":  dataplist.UID(2),
			"visits": dataplist.Integer(3),
			"pinned": dataplist.Bool(true),
		}),
		classRecord("Bookmark"),
		dataplist.String("Release notes"),
	)
}

func TestTypedDecodesArchivedFields(t *testing.T) {
	registry := dataplist.NewRegistry()
	if err := foundation.RegisterTyped[bookmark](registry, "Bookmark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := dataplist.New(bookmarkArchive(), dataplist.WithRegistry(registry)).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := got.(*bookmark)
	if !ok {
		t.Fatalf("expected *bookmark, got %T", got)
	}
	want := bookmark{Title: "Release notes", Visits: 3, Pinned: true}
	if *b != want {
		t.Fatalf("expected %+v, got %+v", want, *b)
	}
}

func TestTypedRunsPostHooks(t *testing.T) {
	registry := dataplist.NewRegistry()
	err := foundation.RegisterTyped(registry, "Bookmark", func(b *bookmark) error {
		b.Title = strings.ToUpper(b.Title)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := dataplist.New(bookmarkArchive(), dataplist.WithRegistry(registry)).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b := got.(*bookmark); b.Title != "RELEASE NOTES" {
		t.Fatalf("expected post hook to run, got %+v", b)
	}
}

func TestTypedPostHookFailureFallsBackUntyped(t *testing.T) {
	registry := dataplist.NewRegistry()
	err := foundation.RegisterTyped(registry, "Bookmark", func(b *bookmark) error {
		return errors.New("rejected")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	capture := &capturedDiagnostics{}

	got, err := dataplist.New(bookmarkArchive(),
		dataplist.WithRegistry(registry),
		dataplist.WithDiagnosticLogger(capture),
	).Object()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected untyped fallback, got %T", got)
	}
	if fields["title"] != "Release notes" {
		t.Fatalf("expected archived fields retained, got %#v", fields)
	}
	if len(capture.entries) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(capture.entries))
	}
	entry := capture.entries[0]
	if entry.Class != "Bookmark" || !strings.Contains(entry.Err.Error(), "rejected") {
		t.Fatalf("unexpected diagnostic: %+v", entry)
	}
}

func TestTypedBindsDottedFoundationKeys(t *testing.T) {
	factory := foundation.Typed[note]("NSNote")
	obj, ok := factory().(dataplist.ArchivedObject)
	if !ok {
		t.Fatalf("expected factory to produce an archived object")
	}

	got, err := obj.ReplaceArchived(map[string]any{"NS.string": "remember this"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := got.(*note)
	if !ok || n.Body != "remember this" {
		t.Fatalf("expected dotted key binding, got %#v", got)
	}
}

func TestTypedIgnoresUnknownArchivedFields(t *testing.T) {
	factory := foundation.Typed[bookmark]("Bookmark")
	obj := factory().(dataplist.ArchivedObject)

	got, err := obj.ReplaceArchived(map[string]any{
		"title":  "kept",
		"legacy": "dropped",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &bookmark{Title: "kept"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected unknown fields ignored, got %#v", got)
	}
}
