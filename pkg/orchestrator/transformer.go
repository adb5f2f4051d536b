package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-doctemplate/pkg/node"
)

// Transformer mutates a document tree before it is converted. Implementations
// can inject attributes, add roles or rewrite titles.
type Transformer interface {
	Transform(ctx context.Context, doc *node.Element) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *node.Element) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *node.Element) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// PresetTransformer applies declarative patches loaded from a JSON or YAML
// document. Document attributes land on the root; type patches apply to every
// node of that type; id patches to the node with that id:
//
//	{
//	  "attributes": {"imagesdir": "https://cdn.example.com/img"},
//	  "types": {"image": {"roles": ["responsive"]}},
//	  "ids": {"_intro": {"title": "Introduction"}}
//	}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Attributes map[string]string       `json:"attributes" yaml:"attributes"`
	Types      map[string]elementPatch `json:"types" yaml:"types"`
	IDs        map[string]elementPatch `json:"ids" yaml:"ids"`
}

type elementPatch struct {
	Title      string            `json:"title" yaml:"title"`
	Roles      []string          `json:"roles" yaml:"roles"`
	Attributes map[string]string `json:"attributes" yaml:"attributes"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
// Unknown node types are rejected.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		document = presetDocument{}
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", err)
		}
	}
	for key := range document.Types {
		if _, ok := node.ParseType(key); !ok {
			return nil, fmt.Errorf("preset transformer: unknown node type %q", key)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied document.
func (t *PresetTransformer) Transform(ctx context.Context, doc *node.Element) error {
	if doc == nil {
		return errors.New("preset transformer: document is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc.Attrs = mergeStringMap(doc.Attrs, t.document.Attributes)
	return t.walk(ctx, doc)
}

func (t *PresetTransformer) walk(ctx context.Context, el *node.Element) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for key, patch := range t.document.Types {
		if typ, _ := node.ParseType(key); typ == el.NodeType {
			applyPatch(el, patch)
		}
	}
	if el.NodeID != "" {
		if patch, ok := t.document.IDs[el.NodeID]; ok {
			applyPatch(el, patch)
		}
	}
	for _, child := range el.Children() {
		childEl, ok := child.(*node.Element)
		if !ok {
			continue
		}
		if err := t.walk(ctx, childEl); err != nil {
			return err
		}
	}
	return nil
}

func applyPatch(el *node.Element, patch elementPatch) {
	if patch.Title != "" {
		el.NodeTitle = patch.Title
	}
	for _, role := range patch.Roles {
		role = strings.TrimSpace(role)
		if role != "" && !slices.Contains(el.NodeRoles, role) {
			el.NodeRoles = append(el.NodeRoles, role)
		}
	}
	el.Attrs = mergeStringMap(el.Attrs, patch.Attributes)
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
