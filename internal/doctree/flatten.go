// Package doctree flattens the documentation/architecture node tree into
// the row list the sidebar cursor navigates.
package doctree

import (
	"codemanager-ui/internal/model"
)

// NodePath returns the effective path of a node under parent. The
// documentation tree carries server-assigned paths; the hierarchy tree
// sends only {type, name, children}, so missing paths are synthesized by
// joining ancestor names.
func NodePath(parent string, node model.DocNode) string {
	if node.Path != "" {
		return node.Path
	}
	if parent == "" {
		return node.Name
	}
	return parent + "/" + node.Name
}

// Flatten converts a node tree into a flat row list, descending only into
// directories whose effective path is in expanded.
func Flatten(root model.DocNode, expanded map[string]bool) []model.TreeItem {
	var items []model.TreeItem
	appendNode(&items, root, "", 0, expanded)
	return items
}

func appendNode(items *[]model.TreeItem, node model.DocNode, parent string, depth int, expanded map[string]bool) {
	path := NodePath(parent, node)
	isDir := node.Type == model.NodeDirectory

	*items = append(*items, model.TreeItem{
		Name:     node.Name,
		Path:     path,
		Type:     node.Type,
		Depth:    depth,
		Expanded: isDir && expanded[path],
	})

	if !isDir || !expanded[path] {
		return
	}
	for _, child := range node.Children {
		appendNode(items, child, path, depth+1, expanded)
	}
}
