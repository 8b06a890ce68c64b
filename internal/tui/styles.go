package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorFg     = lipgloss.Color("#cdd6f4")
	colorFgDim  = lipgloss.Color("#6c7086")
	colorAccent = lipgloss.Color("#89b4fa")
	colorGreen  = lipgloss.Color("#a6e3a1")
	colorRed    = lipgloss.Color("#f38ba8")
	colorYellow = lipgloss.Color("#f9e2af")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg).
			PaddingLeft(1).
			PaddingBottom(1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorFgDim).
				Padding(0, 2)

	lockedTabStyle = lipgloss.NewStyle().
			Foreground(colorFgDim).
			Faint(true).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorFgDim).
			PaddingLeft(2)

	fieldFocusedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true).
				PaddingLeft(1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			PaddingLeft(1)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				PaddingLeft(2).
				PaddingTop(1)

	progressStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			PaddingLeft(2).
			PaddingTop(1)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			PaddingLeft(2).
			PaddingTop(1)

	userMsgStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(colorFg)

	treeDirStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	treeFileStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	treeSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorFgDim).
				Padding(0, 1)

	confirmStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true).
			PaddingLeft(2).
			PaddingTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorFgDim).
			PaddingLeft(1).
			PaddingTop(1)
)
