package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"codemanager-ui/internal/api"
	"codemanager-ui/internal/chat"
	"codemanager-ui/internal/model"
)

// chatReplyMsg delivers the assistant's reply, or the failure that stands
// in for it.
type chatReplyMsg struct {
	reply string
	err   error
}

// chatModel binds the chat session to the input line and the transcript.
type chatModel struct {
	svc     api.Service
	session *chat.Session

	input           textinput.Model
	confirmingClear bool
	scrollOff       int

	spinner spinner.Model
	width   int
	height  int
}

func newChatModel(svc api.Service, session *chat.Session) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about the repository..."
	ti.CharLimit = 2000
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return chatModel{
		svc:     svc,
		session: session,
		input:   ti,
		spinner: sp,
	}
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	// Replies and spinner frames are applied even while the clear
	// confirmation is open; the prompt only captures key input. A reply
	// that arrived during confirmation must still close its user turn.
	switch msg := msg.(type) {

	case chatReplyMsg:
		if !m.session.Sending() {
			return m, nil
		}
		if msg.err != nil {
			m.session.Fail()
		} else {
			m.session.Complete(msg.reply)
		}
		m.scrollOff = 0
		return m, nil

	case spinner.TickMsg:
		if !m.session.Sending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.confirmingClear {
		return m.updateConfirmClear(msg)
	}

	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {

		case "enter":
			prior, ok := m.session.Begin(m.input.Value())
			if !ok {
				return m, nil
			}
			text := m.input.Value()
			m.input.SetValue("")
			m.scrollOff = 0
			return m, tea.Batch(sendChatCmd(m.svc, text, prior), m.spinner.Tick)

		case "ctrl+l":
			m.confirmingClear = true
			return m, nil

		case "pgup":
			m.scrollOff++
			return m, nil

		case "pgdown":
			if m.scrollOff > 0 {
				m.scrollOff--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateConfirmClear handles the destructive-action confirmation before
// the history reset.
func (m chatModel) updateConfirmClear(msg tea.Msg) (chatModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "y":
			m.session.Clear()
			m.confirmingClear = false
			m.scrollOff = 0
		case "esc", "n":
			m.confirmingClear = false
		}
	}
	return m, nil
}

func sendChatCmd(svc api.Service, text string, prior []model.ChatMessage) tea.Cmd {
	return func() tea.Msg {
		reply, err := svc.Chat(context.Background(), text, prior)
		if err != nil {
			return chatReplyMsg{err: err}
		}
		return chatReplyMsg{reply: reply}
	}
}
