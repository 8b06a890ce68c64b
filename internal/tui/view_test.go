package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"codemanager-ui/internal/api"
	"codemanager-ui/internal/model"
)

func TestView_AnalyzeShowsFormAndHelp(t *testing.T) {
	m := newTestModel(t, &api.Fake{})
	out := m.View()

	for _, want := range []string{"Analyze a repository", "Repository URL", "Branch", "Private repository"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_LockedChatShowsHint(t *testing.T) {
	m := newTestModel(t, &api.Fake{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = next.(Model)

	out := m.View()
	if !strings.Contains(out, "Analyze a repository first") {
		t.Error("locked chat should explain how to unlock")
	}
}

func TestView_UnlockedChatShowsGreeting(t *testing.T) {
	m := newTestModel(t, &api.Fake{})
	next, _ := m.Update(analysisDoneMsg{})
	m = next.(Model)

	out := m.View()
	if !strings.Contains(out, "Hello! I've analyzed your repository.") {
		t.Error("chat should show the greeting after unlock")
	}
}

func TestView_PollingShowsProgress(t *testing.T) {
	fake := &api.Fake{SubmitJobID: "j1"}
	m := newTestModel(t, fake)
	m.analyze = submitAndAccept(t, validForm(fake), "j1")
	m.analyze.width = 100

	out := m.View()
	if !strings.Contains(out, "Job is pending.") {
		t.Error("polling view should show the progress message")
	}
}

func TestView_ErrorBannerAndRetryHint(t *testing.T) {
	m := newTestModel(t, &api.Fake{})
	m.analyze.errMsg = "bad repo"
	m.analyze.hasSubmission = true

	out := m.View()
	if !strings.Contains(out, "Error: bad repo") {
		t.Error("error banner missing")
	}
	if !strings.Contains(out, "ctrl+r: retry") {
		t.Error("retry hint missing")
	}
}

func TestView_DocsRendersTree(t *testing.T) {
	fake := &api.Fake{Tree: docsFixture()}
	m := newTestModel(t, fake)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF3})
	m = next.(Model)
	next, _ = m.Update(run(t, cmd))
	m = next.(Model)

	out := m.View()
	for _, want := range []string{"docs", "guide", "intro.md"} {
		if !strings.Contains(out, want) {
			t.Errorf("docs view missing %q", want)
		}
	}
}

func TestView_TreeItemMarkers(t *testing.T) {
	dir := model.TreeItem{Name: "pkg", Type: model.NodeDirectory}
	if got := renderTreeItem(dir, false, 40); !strings.Contains(got, "▸") {
		t.Errorf("collapsed dir = %q, want ▸ marker", got)
	}
	dir.Expanded = true
	if got := renderTreeItem(dir, false, 40); !strings.Contains(got, "▾") {
		t.Errorf("expanded dir = %q, want ▾ marker", got)
	}
	file := model.TreeItem{Name: "a.md", Type: model.NodeFile}
	if got := renderTreeItem(file, true, 40); !strings.Contains(got, "> ") {
		t.Errorf("selected file = %q, want cursor prefix", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		maxWidth int
		want     string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-rather-long-name", 10, "a-rather-…"},
		{"abc", 3, "abc"},
		// Double-width characters count two cells each.
		{"日本語のドキュメント", 8, "日本語…"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.maxWidth)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxWidth, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.maxWidth)
		}
	}
}
