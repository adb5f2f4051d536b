package render

import (
	"errors"
	"strings"
	"testing"
)

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(Context) (string, error) { return r.name, nil }

func TestRegistry_RegisterAndList(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(namedRenderer{name: "html5"})
	reg.MustRegister(namedRenderer{name: "docbook"})

	if err := reg.Register(namedRenderer{name: "html5"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(namedRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if !reg.Has("docbook") || reg.Has("missing") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	names := reg.List()
	if len(names) != 2 || names[0] != "docbook" || names[1] != "html5" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestRegistry_GetIsCaseInsensitive(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(namedRenderer{name: "HTML5"})

	backend, err := reg.Get(" html5 ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if backend.Name() != "HTML5" {
		t.Fatalf("unexpected backend %q", backend.Name())
	}

	_, err = reg.Get("docbook")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
	if !strings.Contains(err.Error(), "html5") {
		t.Fatalf("error should list registered names: %v", err)
	}
}
