package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-doctemplate/pkg/testsupport"
)

const docPath = "testdata/doc.yaml"

func execute(t *testing.T, choose chooser, args ...string) (string, error) {
	t.Helper()

	if choose == nil {
		choose = func(string, []string) (string, error) {
			t.Fatalf("unexpected prompt")
			return "", nil
		}
	}
	root := newRootCmd(choose)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func paragraphTemplates(t *testing.T) string {
	t.Helper()
	return testsupport.WriteTemplates(t, map[string]string{
		"paragraph.tpl": `<p class="custom">{{ node.text }}</p>`,
	})
}

func TestRenderUsesTemplateDir(t *testing.T) {
	dir := paragraphTemplates(t)

	out, err := execute(t, nil, "render", docPath, "-t", dir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<p class="custom">Just some plain text.</p>`) {
		t.Fatalf("custom paragraph template not applied:\n%s", out)
	}
	if !strings.Contains(out, `<img src="https://image.dir/source.png" alt="Alt Text Here">`) {
		t.Fatalf("default image markup missing:\n%s", out)
	}
}

func TestRenderWritesOutputFile(t *testing.T) {
	dir := paragraphTemplates(t)
	target := filepath.Join(t.TempDir(), "out.html")

	out, err := execute(t, nil, "render", docPath, "-t", dir, "-o", target)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `<p class="custom">A second paragraph.</p>`) {
		t.Fatalf("unexpected output file:\n%s", data)
	}
}

func TestRenderRejectsBadFlags(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "missing document", args: []string{"render", "testdata/missing.yaml"}},
		{name: "unknown order", args: []string{"render", docPath, "--order", "sideways"}},
		{name: "unknown log level", args: []string{"render", docPath, "--log-level", "loud"}},
		{name: "missing config", args: []string{"render", docPath, "-c", "testdata/missing.yaml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := execute(t, nil, tc.args...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestExplainListsChainInRunOrder(t *testing.T) {
	base := paragraphTemplates(t)
	override := testsupport.WriteTemplates(t, map[string]string{
		"paragraph.html": `<p>fixed</p>`,
	})

	out, err := execute(t, nil, "explain", "paragraph", "image", "-t", base, "-t", override)
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	want := "paragraph: " + override + " -> " + base + " -> html5 (default)\n" +
		"image: html5 (default)\n"
	if out != want {
		t.Fatalf("explain output mismatch\nwant: %q\ngot:  %q", want, out)
	}
}

func TestExplainDocumentTypes(t *testing.T) {
	dir := paragraphTemplates(t)

	out, err := execute(t, nil, "explain", "--document", docPath, "-t", dir)
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	for _, line := range []string{"document: html5 (default)", "paragraph: " + dir + " -> html5 (default)", "image: html5 (default)"} {
		if !strings.Contains(out, line) {
			t.Fatalf("missing %q in:\n%s", line, out)
		}
	}
}

func TestExplainRejectsUnknownType(t *testing.T) {
	if _, err := execute(t, nil, "explain", "banner"); err == nil {
		t.Fatalf("expected error for unknown node type")
	}
}

func TestEnginesListsCatalogAndBindings(t *testing.T) {
	out, err := execute(t, nil, "engines")
	if err != nil {
		t.Fatalf("engines: %v", err)
	}
	for _, want := range []string{"pongo2", "expr", "static", "*.tpl", "*.expr", "*.html"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "*.tpl") > strings.Index(out, "*.html") {
		t.Fatalf("bindings not listed in resolution order:\n%s", out)
	}
}

func TestPreviewPromptsForType(t *testing.T) {
	dir := paragraphTemplates(t)

	var offered []string
	choose := func(message string, options []string) (string, error) {
		offered = options
		return "paragraph", nil
	}

	out, err := execute(t, choose, "preview", docPath, "-t", dir)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if strings.Join(offered, ",") != "document,paragraph,image" {
		t.Fatalf("unexpected options: %v", offered)
	}
	if !strings.Contains(out, "--- paragraph intro\n<p class=\"custom\">Just some plain text.</p>") {
		t.Fatalf("first paragraph missing:\n%s", out)
	}
	if !strings.Contains(out, "--- paragraph #2\n<p class=\"custom\">A second paragraph.</p>") {
		t.Fatalf("second paragraph missing:\n%s", out)
	}
}

func TestPreviewTypeFlagSkipsPrompt(t *testing.T) {
	out, err := execute(t, nil, "preview", docPath, "--type", "image")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, `alt="Alt Text Here"`) {
		t.Fatalf("image not rendered:\n%s", out)
	}
}

func TestPreviewAbort(t *testing.T) {
	choose := func(string, []string) (string, error) {
		return "", errAborted
	}
	_, err := execute(t, choose, "preview", docPath)
	if !errors.Is(err, errAborted) {
		t.Fatalf("expected errAborted, got %v", err)
	}
}

func TestPreviewMissingType(t *testing.T) {
	if _, err := execute(t, nil, "preview", docPath, "--type", "sidebar"); err == nil {
		t.Fatalf("expected error when the document has no sidebar nodes")
	}
}

func TestPreviewChildrenOnly(t *testing.T) {
	dir := paragraphTemplates(t)

	out, err := execute(t, nil, "preview", docPath, "--type", "document", "--children", "-t", dir)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, `<p class="custom">Just some plain text.</p>`) {
		t.Fatalf("children not rendered:\n%s", out)
	}
	if strings.Contains(out, `id="content"`) {
		t.Fatalf("document wrapper should be omitted:\n%s", out)
	}
}
