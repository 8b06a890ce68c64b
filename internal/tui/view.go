package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"codemanager-ui/internal/model"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderNavBar())
	b.WriteString("\n")

	switch m.active {
	case viewAnalyze:
		b.WriteString(m.renderAnalyze())
	case viewChat:
		b.WriteString(m.renderChat())
	case viewDocs:
		b.WriteString(m.renderDocs())
	}

	return zone.Scan(b.String())
}

// === Nav bar ===

func (m Model) renderNavBar() string {
	var rendered []string
	for v := viewAnalyze; v < viewCount; v++ {
		label := v.label()
		style := inactiveTabStyle
		switch {
		case v == m.active:
			style = activeTabStyle
		case v == viewChat && !m.chatUnlocked:
			style = lockedTabStyle
			label += " 🔒"
		}
		rendered = append(rendered, zone.Mark(navZoneID(v), style.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// === Analyze view ===

func (m Model) renderAnalyze() string {
	a := m.analyze
	var b strings.Builder

	b.WriteString(titleStyle.Render("Analyze a repository"))
	b.WriteString("\n")

	b.WriteString(renderField("Repository URL", a.urlInput.View(), a.focus == fieldRepoURL))
	b.WriteString(renderField("Branch", a.branchInput.View(), a.focus == fieldBranch))
	b.WriteString(renderToggle("Private repository", a.isPrivate, a.focus == fieldPrivate))
	if a.isPrivate {
		b.WriteString(renderField("Access token", a.tokenInput.View(), a.focus == fieldToken))
	}
	b.WriteString("\n")
	b.WriteString(renderSubmitButton(a))
	b.WriteString("\n")

	switch a.phase {
	case phaseSubmitting:
		b.WriteString(progressStyle.Render(a.spinner.View() + " Submitting..."))
		b.WriteString("\n")
	case phasePolling:
		b.WriteString(progressStyle.Render(fmt.Sprintf("%s %s", a.spinner.View(), a.progress)))
		b.WriteString("\n")
	case phaseComplete:
		b.WriteString(successStyle.Render("✓ " + a.progress))
		b.WriteString("\n")
	}

	if a.errMsg != "" {
		b.WriteString(errorBannerStyle.Render("Error: " + a.errMsg))
		b.WriteString("\n")
		if a.hasSubmission {
			b.WriteString(helpStyle.Render("ctrl+r: retry"))
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render("tab: next field  enter: submit  esc: cancel  f1/f2/f3: views  ctrl+c: quit"))
	return b.String()
}

func renderField(label, input string, focused bool) string {
	style := fieldStyle
	if focused {
		style = fieldFocusedStyle
	}
	return labelStyle.Render(label) + "\n" + style.Render(input) + "\n"
}

func renderToggle(label string, on, focused bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	style := fieldStyle
	if focused {
		style = fieldFocusedStyle
	}
	return labelStyle.Render(label) + "\n" + style.Render(box) + "\n"
}

func renderSubmitButton(a analyzeModel) string {
	label := "[ Analyze ]"
	switch {
	case a.busy():
		return lockedTabStyle.Render(label + " (job in progress)")
	case !a.formValid():
		return lockedTabStyle.Render(label + " (enter a valid GitHub URL and branch)")
	case a.focus == fieldSubmit:
		return fieldFocusedStyle.Render("> " + label)
	default:
		return fieldStyle.Render("  " + label)
	}
}

// === Chat view ===

func (m Model) renderChat() string {
	if !m.chatUnlocked {
		return titleStyle.Render("Chat") + "\n" +
			labelStyle.Render("Analyze a repository first to unlock the assistant.")
	}

	c := m.chatView
	var b strings.Builder

	b.WriteString(titleStyle.Render("Chat"))
	b.WriteString("\n")

	b.WriteString(m.renderTranscript())
	b.WriteString("\n")

	if c.confirmingClear {
		b.WriteString(confirmStyle.Render("Clear the whole conversation? enter/y: yes  esc/n: no"))
		b.WriteString("\n")
		return b.String()
	}

	if c.session.Sending() {
		b.WriteString(progressStyle.Render(c.spinner.View() + " Thinking..."))
		b.WriteString("\n")
	}

	b.WriteString(fieldStyle.Render(c.input.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: send  ctrl+l: clear history  pgup/pgdn: scroll"))
	return b.String()
}

// renderTranscript shows the newest messages that fit, offset by the
// scroll position.
func (m Model) renderTranscript() string {
	c := m.chatView
	messages := c.session.Messages()

	visible := m.height - 10
	if visible < 3 {
		visible = 3
	}

	var lines []string
	for _, msg := range messages {
		lines = append(lines, renderMessage(msg, m.width)...)
	}

	end := len(lines) - c.scrollOff*visible
	if end > len(lines) {
		end = len(lines)
	}
	start := end - visible
	if start < 0 {
		start = 0
		end = min(visible, len(lines))
	}

	return strings.Join(lines[start:end], "\n")
}

func renderMessage(msg model.ChatMessage, width int) []string {
	prefix := "Assistant: "
	style := assistantMsgStyle
	if msg.IsUser {
		prefix = "You: "
		style = userMsgStyle
	}

	wrapWidth := width - 4
	if wrapWidth < 20 {
		wrapWidth = 60
	}

	wrapped := lipgloss.NewStyle().Width(wrapWidth).Render(prefix + msg.Text)
	var out []string
	for _, line := range strings.Split(wrapped, "\n") {
		out = append(out, "  "+style.Render(line))
	}
	return out
}

// === Docs view ===

func (m Model) renderDocs() string {
	d := m.docs
	t := d.tabs[d.active]
	var b strings.Builder

	var tabs []string
	for tab := docsTab(0); tab < docsTabCount; tab++ {
		if tab == d.active {
			tabs = append(tabs, activeTabStyle.Render(tab.label()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tab.label()))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	sidebar := m.renderTreePanel(t, d)
	content := m.renderContentPanel(d)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("tab: switch tab  j/k: move  enter: open  pgup/pgdn: scroll  f1/f2/f3: views"))
	return b.String()
}

func (m Model) renderTreePanel(t tabState, d docsModel) string {
	width := m.cfg.SidebarWidth

	var b strings.Builder
	switch {
	case t.loading:
		b.WriteString(d.spinner.View() + " Loading tree...")
	case t.loadErr != "":
		b.WriteString(errorBannerStyle.Render("Error: " + t.loadErr))
	case !t.loaded:
		b.WriteString(labelStyle.Render("No tree loaded."))
	default:
		for i, item := range t.items {
			b.WriteString(renderTreeItem(item, i == t.cursor, width))
			b.WriteString("\n")
		}
	}

	return panelBorderStyle.Width(width).Render(b.String())
}

func renderTreeItem(item model.TreeItem, selected bool, width int) string {
	indent := strings.Repeat("  ", item.Depth)

	marker := "  "
	if item.Type == model.NodeDirectory {
		marker = "▸ "
		if item.Expanded {
			marker = "▾ "
		}
	}

	label := indent + marker + item.Name
	maxLen := width - 2
	if maxLen > 0 && lipgloss.Width(label) > maxLen {
		label = truncate(label, maxLen)
	}

	switch {
	case selected:
		return treeSelectedStyle.Render("> " + label)
	case item.Type == model.NodeDirectory:
		return treeDirStyle.Render("  " + label)
	default:
		return treeFileStyle.Render("  " + label)
	}
}

func (m Model) renderContentPanel(d docsModel) string {
	var body string
	switch {
	case d.contentLoading:
		body = d.spinner.View() + " Loading..."
	case d.contentErr != "":
		body = errorBannerStyle.Render("Error: " + d.contentErr)
	case !d.hasSelection:
		body = labelStyle.Render("Select a file to view its content.")
	case d.vpReady:
		body = d.viewport.View()
	}
	return panelBorderStyle.Width(d.contentWidth()).Render(body)
}

// truncate cuts s to maxWidth display cells, ellipsized. Cutting by
// display width keeps double-width names inside the sidebar.
func truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "…")
}
