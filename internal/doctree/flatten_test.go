package doctree

import (
	"testing"

	"codemanager-ui/internal/model"
)

func testTree() model.DocNode {
	return model.DocNode{
		Name: "repo", Type: model.NodeDirectory, Path: "repo",
		Children: []model.DocNode{
			{
				Name: "docs", Type: model.NodeDirectory, Path: "repo/docs",
				Children: []model.DocNode{
					{Name: "intro.md", Type: model.NodeFile, Path: "repo/docs/intro.md"},
					{Name: "api.md", Type: model.NodeFile, Path: "repo/docs/api.md"},
				},
			},
			{Name: "README.md", Type: model.NodeFile, Path: "repo/README.md"},
		},
	}
}

// pathlessTree mirrors the hierarchy wire shape: nodes carry no paths.
func pathlessTree() model.DocNode {
	return model.DocNode{
		Name: "repo", Type: model.NodeDirectory,
		Children: []model.DocNode{
			{
				Name: "pkg", Type: model.NodeDirectory,
				Children: []model.DocNode{
					{Name: "a.py", Type: model.NodeFile},
				},
			},
			{
				Name: "cmd", Type: model.NodeDirectory,
				Children: []model.DocNode{
					{Name: "b.py", Type: model.NodeFile},
				},
			},
		},
	}
}

func TestFlatten_Collapsed(t *testing.T) {
	items := Flatten(testTree(), map[string]bool{})

	if len(items) != 1 {
		t.Fatalf("len = %d, want 1 (collapsed root)", len(items))
	}
	if items[0].Name != "repo" || items[0].Expanded {
		t.Errorf("root = %+v", items[0])
	}
}

func TestFlatten_ExpandedRoot(t *testing.T) {
	items := Flatten(testTree(), map[string]bool{"repo": true})

	want := []string{"repo", "docs", "README.md"}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, name)
		}
	}
	if items[1].Depth != 1 {
		t.Errorf("docs depth = %d, want 1", items[1].Depth)
	}
}

func TestFlatten_NestedExpansion(t *testing.T) {
	items := Flatten(testTree(), map[string]bool{"repo": true, "repo/docs": true})

	want := []string{"repo", "docs", "intro.md", "api.md", "README.md"}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, name)
		}
	}
	if items[2].Depth != 2 {
		t.Errorf("intro.md depth = %d, want 2", items[2].Depth)
	}
	if items[2].Type != model.NodeFile {
		t.Errorf("intro.md type = %q", items[2].Type)
	}
}

func TestFlatten_ChildOfCollapsedDirHidden(t *testing.T) {
	// docs expanded but root collapsed: nothing below root shows.
	items := Flatten(testTree(), map[string]bool{"repo/docs": true})

	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
}

func TestFlatten_SynthesizesMissingPaths(t *testing.T) {
	items := Flatten(pathlessTree(), map[string]bool{"repo": true, "repo/pkg": true})

	want := []struct {
		name string
		path string
	}{
		{"repo", "repo"},
		{"pkg", "repo/pkg"},
		{"a.py", "repo/pkg/a.py"},
		{"cmd", "repo/cmd"},
	}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].Name != w.name || items[i].Path != w.path {
			t.Errorf("items[%d] = %q@%q, want %q@%q", i, items[i].Name, items[i].Path, w.name, w.path)
		}
	}
}

func TestFlatten_PathlessDirectoriesToggleIndependently(t *testing.T) {
	// Expanding one path-less directory must not expand its siblings.
	items := Flatten(pathlessTree(), map[string]bool{"repo": true, "repo/pkg": true})

	for _, item := range items {
		if item.Name == "cmd" && item.Expanded {
			t.Error("cmd should stay collapsed when only pkg is expanded")
		}
		if item.Name == "b.py" {
			t.Error("children of a collapsed directory should be hidden")
		}
	}
}

func TestNodePath(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		node   model.DocNode
		want   string
	}{
		{"server path wins", "x", model.DocNode{Name: "a", Path: "repo/a"}, "repo/a"},
		{"root without path", "", model.DocNode{Name: "repo"}, "repo"},
		{"child without path", "repo/pkg", model.DocNode{Name: "a.py"}, "repo/pkg/a.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodePath(tt.parent, tt.node); got != tt.want {
				t.Errorf("NodePath(%q, %+v) = %q, want %q", tt.parent, tt.node, got, tt.want)
			}
		})
	}
}
