package html5_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/renderers/html5"
	"github.com/goliatone/go-doctemplate/pkg/testsupport"
)

func newConverter(t *testing.T, table render.Table, options ...html5.Option) *render.Converter {
	t.Helper()

	renderer, err := html5.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	conv, err := render.NewConverter(table, renderer)
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	return conv
}

func renderNode(t *testing.T, conv *render.Converter, n node.Node) string {
	t.Helper()

	out, err := conv.Render(n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func imageDocument() (*node.Element, *node.Element) {
	img := node.NewElement(node.TypeImage)
	img.NodeTarget = "source.png"
	img.Attrs = map[string]string{"alt": "Alt Text Here"}

	doc := node.NewElement(node.TypeDocument)
	doc.Attrs = map[string]string{"imagesdir": "https://image.dir"}
	doc.Append(img)
	return doc, img
}

func TestRenderer_Image(t *testing.T) {
	conv := newConverter(t, nil)
	_, img := imageDocument()

	got := renderNode(t, conv, img)
	want := `<div class="imageblock"><div class="content"><img src="https://image.dir/source.png" alt="Alt Text Here"></div></div>`
	if got != want {
		t.Fatalf("image markup mismatch:\nwant %s\ngot  %s", want, got)
	}
}

func TestRenderer_ImageAltFromTarget(t *testing.T) {
	conv := newConverter(t, nil)
	img := node.NewElement(node.TypeImage)
	img.NodeTarget = "images/sunset_over-sea.jpg"

	got := renderNode(t, conv, img)
	if !strings.Contains(got, `alt="sunset over sea"`) {
		t.Fatalf("expected alt derived from target, got %s", got)
	}
}

func TestRenderer_DocumentRendersChildren(t *testing.T) {
	conv := newConverter(t, nil)
	doc, _ := imageDocument()
	doc.NodeTitle = "Guide"
	para := node.NewElement(node.TypeParagraph)
	para.Body = "Fish & chips"
	doc.Append(para)

	got := renderNode(t, conv, doc)
	for _, fragment := range []string{
		`<h1>Guide</h1>`,
		`<div id="content">`,
		`<img src="https://image.dir/source.png" alt="Alt Text Here">`,
		`<div class="paragraph">`,
		`<p>Fish &amp; chips</p>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("missing %q in:\n%s", fragment, got)
		}
	}
	if strings.Index(got, "imageblock") > strings.Index(got, "paragraph") {
		t.Fatalf("children rendered out of order:\n%s", got)
	}
}

func TestRenderer_Blocks(t *testing.T) {
	cases := []struct {
		name  string
		build func() *node.Element
		want  []string
	}{
		{
			name: "section",
			build: func() *node.Element {
				sec := node.NewElement(node.TypeSection)
				sec.NodeID = "_intro"
				sec.NodeTitle = "Intro"
				sec.Attrs = map[string]string{"level": "2"}
				return sec
			},
			want: []string{`<div class="sect2">`, `<h3 id="_intro">Intro</h3>`},
		},
		{
			name: "listing with language",
			build: func() *node.Element {
				listing := node.NewElement(node.TypeListing)
				listing.Body = "x < y"
				listing.Attrs = map[string]string{"language": "go"}
				return listing
			},
			want: []string{`<code class="language-go" data-lang="go">x &lt; y</code>`},
		},
		{
			name: "admonition",
			build: func() *node.Element {
				adm := node.NewElement(node.TypeAdmonition)
				adm.Body = "Careful"
				adm.Attrs = map[string]string{"name": "WARNING"}
				return adm
			},
			want: []string{`class="admonitionblock warning"`, `<div class="title">Warning</div>`, "Careful"},
		},
		{
			name: "list with roles",
			build: func() *node.Element {
				list := node.NewElement(node.TypeUList)
				list.NodeRoles = []string{"checklist"}
				item := node.NewElement(node.TypeListItem)
				item.Body = "one"
				return list.Append(item)
			},
			want: []string{`<div class="ulist checklist">`, "<li>\n<p>one</p>"},
		},
		{
			name: "anchor",
			build: func() *node.Element {
				anchor := node.NewElement(node.TypeInlineAnchor)
				anchor.NodeTarget = "http://asciidoctor.org"
				anchor.Body = "asciidoctor"
				return anchor
			},
			want: []string{`<a href="http://asciidoctor.org">asciidoctor</a>`},
		},
		{
			name: "quoted",
			build: func() *node.Element {
				quoted := node.NewElement(node.TypeInlineQuoted)
				quoted.Body = "bold"
				quoted.Attrs = map[string]string{"type": "strong"}
				return quoted
			},
			want: []string{`<strong>bold</strong>`},
		},
		{
			name:  "thematic break",
			build: func() *node.Element { return node.NewElement(node.TypeThematicBreak) },
			want:  []string{`<hr>`},
		},
	}

	conv := newConverter(t, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := renderNode(t, conv, tc.build())
			for _, fragment := range tc.want {
				if !strings.Contains(got, fragment) {
					t.Fatalf("missing %q in:\n%s", fragment, got)
				}
			}
		})
	}
}

func TestRenderer_ChildrenUseChain(t *testing.T) {
	table := render.Table{
		node.TypeParagraph: {{Source: "inline", Render: func(ctx render.Context) (string, error) {
			return "<para>" + ctx.Node().Text() + "</para>", nil
		}}},
	}
	conv := newConverter(t, table)

	doc := node.NewElement(node.TypeDocument)
	para := node.NewElement(node.TypeParagraph)
	para.Body = "hello"
	doc.Append(para)

	got := renderNode(t, conv, doc)
	if !strings.Contains(got, "<para>hello</para>") {
		t.Fatalf("expected custom paragraph inside default document, got:\n%s", got)
	}
}

func TestRenderer_UnknownTypeRendersChildren(t *testing.T) {
	bundle := fstest.MapFS{
		"paragraph.tpl": {Data: []byte(`<p>{{ node.text }}</p>`)},
	}
	conv := newConverter(t, nil, html5.WithTemplatesFS(bundle))

	sidebar := node.NewElement(node.TypeSidebar)
	para := node.NewElement(node.TypeParagraph)
	para.Body = "inside"
	sidebar.Append(para)

	if got := renderNode(t, conv, sidebar); got != "<p>inside</p>" {
		t.Fatalf("want children only, got %q", got)
	}
}

func TestRenderer_BundleCoversEveryType(t *testing.T) {
	renderer, err := html5.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if diff := cmp.Diff(node.Types(), renderer.Types()); diff != "" {
		t.Fatalf("bundle types mismatch (-want +got):\n%s", diff)
	}
	if renderer.Name() != html5.Name {
		t.Fatalf("name: got %s", renderer.Name())
	}
}

func TestRenderer_ImageGolden(t *testing.T) {
	conv := newConverter(t, nil)
	_, img := imageDocument()
	got := renderNode(t, conv, img)

	const golden = "testdata/image.golden.html"
	if testsupport.WriteMaybeGolden(t, golden, []byte(got+"\n")) {
		return
	}
	want := strings.TrimSpace(testsupport.MustReadGoldenString(t, golden))
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("image golden mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_TemplatesDir(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{
		"paragraph.tpl": `<p class="disk">{{ node.text }}</p>`,
	})
	conv := newConverter(t, nil, html5.WithTemplatesDir(dir))

	para := &node.Element{NodeType: node.TypeParagraph, Body: "from disk"}
	if got := renderNode(t, conv, para); got != `<p class="disk">from disk</p>` {
		t.Fatalf("unexpected paragraph markup %q", got)
	}

	// Types missing from the directory render their children only.
	img := node.NewElement(node.TypeImage)
	if got := renderNode(t, conv, img); got != "" {
		t.Fatalf("image should have no markup with this bundle, got %q", got)
	}
}

type recordingTemplates struct {
	names []string
}

func (r *recordingTemplates) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	view := data.(map[string]any)
	return "[" + name + ":" + view["content"].(string) + "]", nil
}

func (r *recordingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func TestRenderer_CustomTemplateRenderer(t *testing.T) {
	rec := &recordingTemplates{}
	conv := newConverter(t, nil,
		html5.WithTemplatesFS(fstest.MapFS{"paragraph.tpl": {Data: []byte("unused")}}),
		html5.WithTemplateRenderer(rec),
	)

	root := node.NewElement(node.TypeOpen).Append(&node.Element{NodeType: node.TypeParagraph, Body: "x"})
	got := renderNode(t, conv, root)

	if got != "[paragraph.tpl:]" {
		t.Fatalf("unexpected output %q", got)
	}
	if diff := cmp.Diff([]string{"paragraph.tpl"}, rec.names); diff != "" {
		t.Fatalf("rendered templates mismatch (-want +got):\n%s", diff)
	}
}
