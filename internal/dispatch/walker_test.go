package dispatch

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

func leaf(w *Walker, name string, seen *[]string) Handler {
	return func(attrs []xmlevent.Attr) error {
		v, _ := xmlevent.Lookup(attrs, "name")
		*seen = append(*seen, name+":"+v)
		return w.Walk(name, nil)
	}
}

func TestWalkDispatchesInOrder(t *testing.T) {
	src := xmlevent.NewReplay(
		xmlevent.Start("layer", "name", "a"), xmlevent.End("layer"),
		xmlevent.Text("\n  "),
		xmlevent.Start("objectgroup", "name", "b"), xmlevent.End("objectgroup"),
		xmlevent.Start("layer", "name", "c"), xmlevent.End("layer"),
		xmlevent.End("map"),
	)
	w := NewWalker(src, nil)
	var seen []string
	err := w.Walk("map", Handlers{
		"layer":       leaf(w, "layer", &seen),
		"objectgroup": leaf(w, "objectgroup", &seen),
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	want := "layer:a,objectgroup:b,layer:c"
	if got := strings.Join(seen, ","); got != want {
		t.Fatalf("dispatch order = %s, want %s", got, want)
	}
	if src.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", src.Remaining())
	}
}

func TestWalkSkipsUnknownSubtree(t *testing.T) {
	src := xmlevent.NewReplay(
		xmlevent.Start("layer", "name", "a"), xmlevent.End("layer"),
		xmlevent.Start("foo"),
		xmlevent.Start("layer", "name", "hidden"), xmlevent.Text("x"),
		xmlevent.Start("foo"), xmlevent.End("foo"),
		xmlevent.End("layer"),
		xmlevent.End("foo"),
		xmlevent.Start("layer", "name", "b"), xmlevent.End("layer"),
		xmlevent.End("map"),
		xmlevent.Start("after"),
	)
	w := NewWalker(src, nil)
	var seen []string
	if err := w.Walk("map", Handlers{"layer": leaf(w, "layer", &seen)}); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got := strings.Join(seen, ","); got != "layer:a,layer:b" {
		t.Fatalf("dispatch = %s, want layer:a,layer:b", got)
	}
	if src.Remaining() != 1 {
		t.Fatalf("Walk consumed past its end tag: Remaining() = %d", src.Remaining())
	}
}

func TestWalkLogsSkippedElements(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src := xmlevent.NewReplay(xmlevent.Start("foo"), xmlevent.End("foo"), xmlevent.End("map"))
	if err := NewWalker(src, zap.New(core)).Walk("map", nil); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	entries := logs.FilterMessage("skipping unknown element").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["element"]; got != "foo" {
		t.Fatalf("logged element = %v, want foo", got)
	}
}

func TestWalkEndDocument(t *testing.T) {
	src := xmlevent.NewReplay(xmlevent.Start("layer"), xmlevent.End("layer"))
	w := NewWalker(src, nil)
	err := w.Walk("map", Handlers{"layer": func([]xmlevent.Attr) error { return w.Walk("layer", nil) }})
	if !tmxerrors.IsKind(err, tmxerrors.PrematureEnd) {
		t.Fatalf("error = %v, want premature end", err)
	}
	if !strings.Contains(err.Error(), "map") {
		t.Fatalf("error = %q, want it to name map", err.Error())
	}
}

func TestWalkMismatchedEnd(t *testing.T) {
	src := xmlevent.NewReplay(xmlevent.End("layer"))
	err := NewWalker(src, nil).Walk("map", nil)
	if !tmxerrors.IsKind(err, tmxerrors.PrematureEnd) {
		t.Fatalf("error = %v, want premature end", err)
	}
}

func TestWalkEndDocumentInsideSkip(t *testing.T) {
	src := xmlevent.NewReplay(xmlevent.Start("foo"), xmlevent.Start("bar"))
	err := NewWalker(src, nil).Walk("map", nil)
	if !tmxerrors.IsKind(err, tmxerrors.PrematureEnd) {
		t.Fatalf("error = %v, want premature end", err)
	}
}

func TestWalkPropagatesDecodingError(t *testing.T) {
	boom := errors.New("boom")
	src := xmlevent.NewReplay(xmlevent.Start("layer")).FailWith(boom)
	w := NewWalker(src, nil)
	err := w.Walk("map", Handlers{"layer": func([]xmlevent.Attr) error { return w.Walk("layer", nil) }})
	if !tmxerrors.IsKind(err, tmxerrors.XMLDecoding) {
		t.Fatalf("error = %v, want xml decoding", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("errors.Is(boom) = false for %v", err)
	}
}

func TestWalkHandlerErrorStops(t *testing.T) {
	boom := errors.New("boom")
	src := xmlevent.NewReplay(xmlevent.Start("layer"), xmlevent.End("layer"), xmlevent.End("map"))
	err := NewWalker(src, nil).Walk("map", Handlers{"layer": func([]xmlevent.Attr) error { return boom }})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if src.Remaining() != 2 {
		t.Fatalf("Remaining() = %d, want 2", src.Remaining())
	}
}

func TestWalkText(t *testing.T) {
	src := xmlevent.NewReplay(
		xmlevent.Text("Hello "),
		xmlevent.Start("b"), xmlevent.Text("ignored"), xmlevent.End("b"),
		xmlevent.Text("world"),
		xmlevent.End("text"),
	)
	got, err := NewWalker(src, nil).WalkText("text", nil)
	if err != nil {
		t.Fatalf("WalkText() error = %v", err)
	}
	if got != "Hello world" {
		t.Fatalf("WalkText() = %q, want %q", got, "Hello world")
	}
}

func TestWalkTextEmpty(t *testing.T) {
	got, err := NewWalker(xmlevent.NewReplay(xmlevent.End("text")), nil).WalkText("text", nil)
	if err != nil || got != "" {
		t.Fatalf("WalkText() = %q, %v, want empty", got, err)
	}
}

func TestFind(t *testing.T) {
	src := xmlevent.NewReplay(
		xmlevent.Text("prolog"),
		xmlevent.Start("other"), xmlevent.End("other"),
		xmlevent.Start("map", "version", "1.10"),
	)
	attrs, err := NewWalker(src, nil).Find("map")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if v, _ := xmlevent.Lookup(attrs, "version"); v != "1.10" {
		t.Fatalf("version = %q, want 1.10", v)
	}
}

func TestFindEndDocument(t *testing.T) {
	src := xmlevent.NewReplay(xmlevent.Start("tileset"), xmlevent.End("tileset"))
	_, err := NewWalker(src, nil).Find("map")
	if !tmxerrors.IsKind(err, tmxerrors.PrematureEnd) {
		t.Fatalf("error = %v, want premature end", err)
	}
}
