package exprengine

import (
	"errors"
	"testing"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

func compile(t *testing.T, body string) render.RenderFunc {
	t.Helper()
	fn, err := New().Compile(template.Source{Name: "paragraph.expr", Path: "paragraph.expr", NodeType: node.TypeParagraph, Body: []byte(body)})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return fn
}

func converter(t *testing.T, fns ...render.RenderFunc) *render.Converter {
	t.Helper()
	var candidates render.Candidates
	for _, fn := range fns {
		candidates = append(candidates, render.Candidate{Source: "expr", Render: fn})
	}
	conv, err := render.NewConverter(render.Table{node.TypeParagraph: candidates}, render.DefaultFunc(func(ctx render.Context) (string, error) {
		return "<p>" + ctx.Node().Text() + "</p>", nil
	}))
	if err != nil {
		t.Fatalf("converter: %v", err)
	}
	return conv
}

func TestEngine_ConditionalDelegation(t *testing.T) {
	fn := compile(t, `has_role("Role1") ? "ROLE1 REMOVED" : "<div>" + next() + "</div>"`)
	conv := converter(t, fn)

	out, err := conv.Render(&node.Element{NodeType: node.TypeParagraph, NodeRoles: []string{"Role1"}, Body: "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "ROLE1 REMOVED" {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = conv.Render(&node.Element{NodeType: node.TypeParagraph, Body: "y"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<div><p>y</p></div>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_NodeFields(t *testing.T) {
	fn := compile(t, `node.title + "|" + attr("lang") + "|" + node.type`)
	conv := converter(t, fn)

	out, err := conv.Render(&node.Element{
		NodeType:  node.TypeParagraph,
		NodeTitle: "Intro",
		Attrs:     map[string]string{"lang": "en"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Intro|en|paragraph" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_NonStringResult(t *testing.T) {
	conv := converter(t, compile(t, `1 + 2`))
	if _, err := conv.Render(&node.Element{NodeType: node.TypeParagraph}); err == nil {
		t.Fatalf("expected error for non-string result")
	}
}

func TestEngine_NextErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	conv := converter(t, func(render.Context) (string, error) { return "", boom }, compile(t, `next()`))
	if _, err := conv.Render(&node.Element{NodeType: node.TypeParagraph}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestEngine_CompileErrors(t *testing.T) {
	for _, body := range []string{"", "   ", `next(`} {
		if _, err := New().Compile(template.Source{Name: "x.expr", Path: "x.expr", Body: []byte(body)}); err == nil {
			t.Fatalf("expected compile error for %q", body)
		}
	}
}
