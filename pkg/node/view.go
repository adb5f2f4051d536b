package node

// View flattens n into the map exposed to template engines. Keys are stable:
// type, id, title, roles, attributes, target, text, image_uri.
func View(n Node) map[string]any {
	if n == nil {
		return map[string]any{}
	}
	roles := n.Roles()
	if roles == nil {
		roles = []string{}
	}
	return map[string]any{
		"type":       string(n.Type()),
		"id":         n.ID(),
		"title":      n.Title(),
		"roles":      roles,
		"attributes": n.Attributes(),
		"target":     n.Target(),
		"text":       n.Text(),
		"image_uri":  n.ImageURI(n.Target()),
	}
}
