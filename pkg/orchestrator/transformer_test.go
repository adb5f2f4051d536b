package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/orchestrator"
)

func TestOrchestrator_AppliesTransformer(t *testing.T) {
	transformCalled := false
	transformer := orchestrator.TransformerFunc(func(ctx context.Context, doc *node.Element) error {
		transformCalled = true
		doc.Attrs = map[string]string{"imagesdir": "https://patched.example"}
		return nil
	})

	out := convert(t, "attributes.yaml", orchestrator.WithTransformer(transformer))
	if !transformCalled {
		t.Fatalf("expected transformer to be invoked")
	}
	assertContains(t, out, `src="https://patched.example/source.png"`)
}

func TestPresetTransformerFromFS(t *testing.T) {
	transformer, err := orchestrator.NewPresetTransformerFromFS(os.DirFS("testdata"), "preset.yaml")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	img := node.NewElement(node.TypeImage)
	img.NodeTarget = "a.png"
	para := node.NewElement(node.TypeParagraph)
	para.NodeID = "intro"
	doc := node.NewElement(node.TypeDocument).Append(img, para)

	if err := transformer.Transform(context.Background(), doc); err != nil {
		t.Fatalf("transform: %v", err)
	}

	if got := img.ImageURI(img.Target()); got != "https://cdn.example.com/a.png" {
		t.Fatalf("image uri: got %s", got)
	}
	if diff := cmp.Diff([]string{"responsive"}, img.Roles()); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}
	if para.Title() != "Introduction" {
		t.Fatalf("title: got %q", para.Title())
	}

	// Applying twice does not duplicate roles.
	if err := transformer.Transform(context.Background(), doc); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if len(img.Roles()) != 1 {
		t.Fatalf("roles duplicated: %v", img.Roles())
	}
}

func TestNewPresetTransformer_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{name: "empty", data: " ", want: "document is empty"},
		{name: "unknown type", data: `{"types": {"bogus": {}}}`, want: `unknown node type "bogus"`},
		{name: "invalid", data: "types: [", want: "parse document"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orchestrator.NewPresetTransformer([]byte(tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestOrchestrator_TransformerErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	orch := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(
		func(context.Context, *node.Element) error { return boom },
	)))

	_, err := orch.Convert(context.Background(), orchestrator.Request{Path: docPath("plain.yaml")})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transformer error, got %v", err)
	}
}
