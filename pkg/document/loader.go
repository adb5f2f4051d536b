package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
)

type elementFile struct {
	Type       string            `json:"type" yaml:"type"`
	ID         string            `json:"id" yaml:"id"`
	Title      string            `json:"title" yaml:"title"`
	Roles      []string          `json:"roles" yaml:"roles"`
	Attributes map[string]string `json:"attributes" yaml:"attributes"`
	Target     string            `json:"target" yaml:"target"`
	Text       string            `json:"text" yaml:"text"`
	Children   []elementFile     `json:"children" yaml:"children"`
}

// Load reads a JSON or YAML document from disk.
func Load(path string) (*node.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a JSON or YAML document from fsys.
func LoadFS(fsys fs.FS, path string) (*node.Element, error) {
	if fsys == nil {
		return nil, errors.New("document: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data (JSON first, then YAML) into an element tree. source is
// only used in error messages. A root without a type is a document.
func Parse(data []byte, source string) (*node.Element, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("document: file %s is empty", source)
	}

	var raw elementFile
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = elementFile{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("document: parse %s: invalid JSON or YAML", source)
		}
	}
	if strings.TrimSpace(raw.Type) == "" {
		raw.Type = string(node.TypeDocument)
	}
	return build(raw, source, "root")
}

func build(raw elementFile, source, where string) (*node.Element, error) {
	typ, ok := node.ParseType(raw.Type)
	if !ok {
		return nil, fmt.Errorf("document: %s: %s: unknown node type %q", source, where, raw.Type)
	}

	el := node.NewElement(typ)
	el.NodeID = strings.TrimSpace(raw.ID)
	el.NodeTitle = raw.Title
	el.NodeTarget = strings.TrimSpace(raw.Target)
	el.Body = raw.Text
	for _, role := range raw.Roles {
		if role = strings.TrimSpace(role); role != "" {
			el.NodeRoles = append(el.NodeRoles, role)
		}
	}
	if len(raw.Attributes) > 0 {
		el.Attrs = make(map[string]string, len(raw.Attributes))
		for key, value := range raw.Attributes {
			el.Attrs[strings.TrimSpace(key)] = value
		}
	}

	for idx, child := range raw.Children {
		built, err := build(child, source, fmt.Sprintf("%s.children[%d]", where, idx))
		if err != nil {
			return nil, err
		}
		el.Append(built)
	}
	return el, nil
}

// Convert renders root through conv.
func Convert(root node.Node, conv *render.Converter) (string, error) {
	if conv == nil {
		return "", errors.New("document: converter is nil")
	}
	if root == nil {
		return "", render.ErrNilNode
	}
	return conv.Render(root)
}

// Walk visits n and its descendants depth-first, parents before children.
func Walk(n node.Node, visit func(node.Node)) {
	if n == nil || visit == nil {
		return
	}
	visit(n)
	for _, child := range n.Children() {
		Walk(child, visit)
	}
}

// TypesIn lists the distinct node types present under root, in first-seen
// order.
func TypesIn(root node.Node) []node.Type {
	seen := map[node.Type]bool{}
	var out []node.Type
	Walk(root, func(n node.Node) {
		if !seen[n.Type()] {
			seen[n.Type()] = true
			out = append(out, n.Type())
		}
	})
	return out
}
