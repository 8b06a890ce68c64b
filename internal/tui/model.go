package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"codemanager-ui/internal/api"
	"codemanager-ui/internal/chat"
	"codemanager-ui/internal/model"
)

// view identifies the active top-level view.
type view int

const (
	viewAnalyze view = iota
	viewChat
	viewDocs
	viewCount
)

func (v view) label() string {
	switch v {
	case viewChat:
		return "Chat"
	case viewDocs:
		return "Docs"
	default:
		return "Analyze"
	}
}

// Model is the root BubbleTea model: a nav bar over three views.
type Model struct {
	cfg model.Config
	svc api.Service

	active       view
	analyze      analyzeModel
	chatView     chatModel
	docs         docsModel
	chatUnlocked bool

	width    int
	height   int
	quitting bool
}

// NewModel wires the three views to the shared backend client.
func NewModel(cfg model.Config, svc api.Service, session *chat.Session) Model {
	return Model{
		cfg:      cfg,
		svc:      svc,
		analyze:  newAnalyzeModel(svc, cfg.DefaultToken),
		chatView: newChatModel(svc, session),
		docs:     newDocsModel(svc, cfg.SidebarWidth),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.analyze.width = msg.Width
		m.chatView.width = msg.Width
		m.chatView.height = msg.Height
		m.docs.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.analyze = m.analyze.cancel()
			return m, tea.Quit
		case "f1":
			return m.switchTo(viewAnalyze)
		case "f2":
			return m.switchTo(viewChat)
		case "f3":
			return m.switchTo(viewDocs)
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			for v := viewAnalyze; v < viewCount; v++ {
				if zone.Get(navZoneID(v)).InBounds(msg) {
					return m.switchTo(v)
				}
			}
		}

	case analysisDoneMsg:
		// Exactly one per job: unlock the assistant and hand off.
		m.chatUnlocked = true
		return m.switchTo(viewChat)

	// Analysis messages are routed to the analyze model even while
	// another view is active, so a background job keeps making progress.
	case submitResultMsg, pollTickMsg, pollResultMsg:
		var cmd tea.Cmd
		m.analyze, cmd = m.analyze.update(msg)
		return m, cmd

	case chatReplyMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.update(msg)
		return m, cmd

	case treeLoadedMsg, contentLoadedMsg:
		var cmd tea.Cmd
		m.docs, cmd = m.docs.update(msg)
		return m, cmd
	}

	return m.updateActive(msg)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case viewAnalyze:
		m.analyze, cmd = m.analyze.update(msg)
	case viewChat:
		if m.chatUnlocked {
			m.chatView, cmd = m.chatView.update(msg)
		}
	case viewDocs:
		m.docs, cmd = m.docs.update(msg)
	}
	return m, cmd
}

func (m Model) switchTo(v view) (tea.Model, tea.Cmd) {
	m.active = v
	if v == viewDocs {
		var cmd tea.Cmd
		m.docs, cmd = m.docs.enter()
		return m, cmd
	}
	return m, nil
}

func navZoneID(v view) string {
	return fmt.Sprintf("nav-%d", v)
}
