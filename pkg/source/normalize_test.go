package source_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/source"
)

func constant(out string) render.RenderFunc {
	return func(render.Context) (string, error) { return out, nil }
}

func outputs(t *testing.T, sources []source.Source, typ node.Type) []string {
	t.Helper()

	var got []string
	for _, src := range sources {
		fn, ok := src.Lookup(typ)
		if !ok {
			got = append(got, "-")
			continue
		}
		out, err := fn(render.Context{})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		got = append(got, out)
	}
	return got
}

func TestNormalizeTemplates_Shapes(t *testing.T) {
	plain := func(render.Context) (string, error) { return "plain", nil }

	cases := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "nil", value: nil, want: nil},
		{name: "mapping", value: source.Mapping{node.TypeImage: constant("m")}, want: []string{"m"}},
		{name: "string keys", value: map[string]render.RenderFunc{"image": constant("s")}, want: []string{"s"}},
		{name: "plain funcs", value: map[string]func(render.Context) (string, error){"image": plain}, want: []string{"plain"}},
		{
			name: "sequence with empty mapping",
			value: []source.Mapping{
				{node.TypeImage: constant("t1")},
				{},
				{node.TypeImage: constant("t3")},
			},
			want: []string{"t1", "-", "t3"},
		},
		{
			name: "string-keyed sequence",
			value: []map[string]render.RenderFunc{
				{"image": constant("a")},
				{"image": constant("b")},
			},
			want: []string{"a", "b"},
		},
		{
			name: "mixed",
			value: []any{
				source.Mapping{node.TypeImage: constant("x")},
				map[string]render.RenderFunc{"image": constant("y")},
				[]source.Source{source.Named("named", source.Mapping{node.TypeImage: constant("z")})},
			},
			want: []string{"x", "y", "z"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sources, err := source.NormalizeTemplates(tc.value)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if diff := cmp.Diff(tc.want, outputs(t, sources, node.TypeImage)); diff != "" {
				t.Fatalf("outputs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeTemplates_Errors(t *testing.T) {
	cases := []struct {
		name  string
		value any
	}{
		{name: "unknown type", value: map[string]render.RenderFunc{"bogus": constant("x")}},
		{name: "nil func", value: map[string]render.RenderFunc{"image": nil}},
		{name: "nil source", value: []source.Source{nil}},
		{name: "nil item", value: []any{source.Mapping{}, nil}},
		{name: "unsupported", value: 42},
		{name: "unsupported item", value: []any{"paragraph"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := source.NormalizeTemplates(tc.value)
			if !render.IsConfigurationError(err) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestNamed(t *testing.T) {
	src := source.Named("inline", source.Mapping{node.TypeParagraph: constant("p")})
	if src.Name() != "inline" {
		t.Fatalf("name: got %s", src.Name())
	}
	if _, ok := src.Lookup(node.TypeParagraph); !ok {
		t.Fatalf("expected lookup through named wrapper")
	}
}

func TestMapping_Name(t *testing.T) {
	m := source.Mapping{node.TypeParagraph: constant("p"), node.TypeImage: nil}
	if got := m.Name(); got != "templates(2)" {
		t.Fatalf("name: got %s", got)
	}
	if diff := cmp.Diff([]node.Type{node.TypeParagraph}, m.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if _, ok := m.Lookup(node.TypeImage); ok {
		t.Fatalf("nil function should not resolve")
	}
}
