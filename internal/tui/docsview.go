package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"codemanager-ui/internal/api"
	"codemanager-ui/internal/doctree"
	"codemanager-ui/internal/model"
)

// docsTab selects which backend the browser is showing.
type docsTab int

const (
	tabDocumentation docsTab = iota
	tabArchitecture
	docsTabCount
)

func (t docsTab) label() string {
	if t == tabArchitecture {
		return "Architecture"
	}
	return "Documentation"
}

// treeLoadedMsg delivers a fetched tree for one tab.
type treeLoadedMsg struct {
	tab  docsTab
	root model.DocNode
	err  error
}

// contentLoadedMsg delivers fetched file content, tagged with the request
// that produced it so stale results for superseded selections are dropped.
type contentLoadedMsg struct {
	req  model.ContentRequest
	text string
	err  error
}

// tabState is the per-tab tree plus its transient selection state.
type tabState struct {
	root     model.DocNode
	loaded   bool
	loading  bool
	loadErr  string
	expanded map[string]bool
	items    []model.TreeItem
	cursor   int
}

// docsModel is the two-tab documentation/architecture browser.
type docsModel struct {
	svc api.Service

	active docsTab
	tabs   [docsTabCount]tabState

	current        model.ContentRequest
	hasSelection   bool
	contentLoading bool
	contentErr     string
	viewport       viewport.Model
	vpReady        bool

	spinner      spinner.Model
	sidebarWidth int
	width        int
	height       int
}

func newDocsModel(svc api.Service, sidebarWidth int) docsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := docsModel{svc: svc, spinner: sp, sidebarWidth: sidebarWidth}
	for i := range m.tabs {
		m.tabs[i].expanded = make(map[string]bool)
	}
	return m
}

// enter is called when the docs view becomes active. The tree for the
// active tab is fetched once; failures are not retried.
func (m docsModel) enter() (docsModel, tea.Cmd) {
	t := &m.tabs[m.active]
	if t.loaded || t.loading || t.loadErr != "" {
		return m, nil
	}
	t.loading = true
	return m, tea.Batch(loadTreeCmd(m.svc, m.active), m.spinner.Tick)
}

func (m docsModel) update(msg tea.Msg) (docsModel, tea.Cmd) {
	switch msg := msg.(type) {

	case treeLoadedMsg:
		t := &m.tabs[msg.tab]
		t.loading = false
		if msg.err != nil {
			t.loadErr = msg.err.Error()
			return m, nil
		}
		t.root = msg.root
		t.loaded = true
		t.expanded[doctree.NodePath("", msg.root)] = true
		t.items = doctree.Flatten(t.root, t.expanded)
		t.cursor = 0
		return m, nil

	case contentLoadedMsg:
		// A result for anything but the current selection is stale.
		if !m.hasSelection || msg.req != m.current {
			return m, nil
		}
		m.contentLoading = false
		if msg.err != nil {
			m.contentErr = msg.err.Error()
			m.setContent("")
			return m, nil
		}
		m.contentErr = ""
		return m.renderContent(msg.text), nil

	case spinner.TickMsg:
		if !m.contentLoading && !m.tabs[m.active].loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m docsModel) updateKey(msg tea.KeyMsg) (docsModel, tea.Cmd) {
	t := &m.tabs[m.active]

	switch msg.String() {

	case "tab":
		m.active = (m.active + 1) % docsTabCount
		m.hasSelection = false
		m.contentLoading = false
		m.contentErr = ""
		m.setContent("")
		return m.enter()

	case "up", "k":
		t.cursor = PrevRow(t.cursor)
		return m, nil

	case "down", "j":
		t.cursor = NextRow(t.items, t.cursor)
		return m, nil

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		if m.vpReady {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case "enter", " ":
		if t.cursor >= len(t.items) {
			return m, nil
		}
		return m.selectItem(t.items[t.cursor])
	}

	return m, nil
}

// selectItem toggles directories and fetches content for files.
func (m docsModel) selectItem(item model.TreeItem) (docsModel, tea.Cmd) {
	t := &m.tabs[m.active]

	if item.Type == model.NodeDirectory {
		t.expanded[item.Path] = !t.expanded[item.Path]
		t.items = doctree.Flatten(t.root, t.expanded)
		if t.cursor >= len(t.items) {
			t.cursor = len(t.items) - 1
		}
		return m, nil
	}

	req := model.ContentRequest{Kind: model.ContentMarkdown, Path: item.Path}
	if m.active == tabArchitecture {
		// The graph service resolves diagrams by the file's repo-relative
		// path; the filename travels along but is not what it keys on.
		req = model.ContentRequest{
			Kind:     model.ContentDiagram,
			Path:     item.Path,
			Filename: item.Name,
		}
	}

	// No caching: re-selecting a file always re-fetches.
	m.current = req
	m.hasSelection = true
	m.contentLoading = true
	m.contentErr = ""
	m.setContent("")
	return m, tea.Batch(fetchContentCmd(m.svc, req), m.spinner.Tick)
}

// renderContent fills the viewport, rendering Markdown through glamour
// and leaving diagram descriptions as raw text.
func (m docsModel) renderContent(text string) docsModel {
	if m.current.Kind == model.ContentMarkdown {
		if rendered, err := renderMarkdown(text, m.contentWidth()); err == nil {
			m.setContent(rendered)
			return m
		}
	}
	m.setContent(text)
	return m
}

func (m *docsModel) setContent(text string) {
	if !m.vpReady {
		m.viewport = viewport.New(m.contentWidth(), m.contentHeight())
		m.vpReady = true
	}
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

func (m *docsModel) setSize(width, height int) {
	m.width = width
	m.height = height
	if m.vpReady {
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = m.contentHeight()
	}
}

// contentWidth is the panel width left of the sidebar and borders.
func (m docsModel) contentWidth() int {
	w := m.width - m.sidebarWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m docsModel) contentHeight() int {
	h := m.height - 6 // nav bar, tab bar, help line, margins
	if h < 5 {
		h = 5
	}
	return h
}

func renderMarkdown(text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}

func loadTreeCmd(svc api.Service, tab docsTab) tea.Cmd {
	return func() tea.Msg {
		var root model.DocNode
		var err error
		if tab == tabArchitecture {
			root, err = svc.Hierarchy(context.Background())
		} else {
			root, err = svc.DocTree(context.Background())
		}
		if err != nil {
			return treeLoadedMsg{tab: tab, err: err}
		}
		return treeLoadedMsg{tab: tab, root: root}
	}
}

func fetchContentCmd(svc api.Service, req model.ContentRequest) tea.Cmd {
	return func() tea.Msg {
		var text string
		var err error
		switch req.Kind {
		case model.ContentDiagram:
			text, err = svc.Mermaid(context.Background(), req.Path, req.Filename)
		default:
			text, err = svc.DocFile(context.Background(), req.Path)
		}
		if err != nil {
			return contentLoadedMsg{req: req, err: err}
		}
		return contentLoadedMsg{req: req, text: text}
	}
}
