package template

import "testing"

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	c.MustRegister("Pongo2", namedEngine("pongo2"))
	c.MustRegister("expr", namedEngine("expr"))

	if err := c.Register("pongo2", namedEngine("dup")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := c.Register(" ", namedEngine("x")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := c.Register("nil", nil); err == nil {
		t.Fatalf("expected nil engine error")
	}
	engine, err := c.Get(" PONGO2 ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := engineName(t, engine); got != "pongo2" {
		t.Fatalf("unexpected engine %q", got)
	}
	if !c.Has("expr") || c.Has("static") {
		t.Fatalf("unexpected Has results")
	}
	if names := c.List(); len(names) != 2 || names[0] != "expr" || names[1] != "pongo2" {
		t.Fatalf("unexpected names %v", names)
	}
}
