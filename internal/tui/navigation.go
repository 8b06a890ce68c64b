package tui

import (
	"codemanager-ui/internal/model"
)

// NextRow returns the row index after current, or current at the end.
// Every tree row responds to selection, so movement is a bounds check.
func NextRow(items []model.TreeItem, current int) int {
	if current+1 < len(items) {
		return current + 1
	}
	return current
}

// PrevRow returns the row index before current, or current at the start.
func PrevRow(current int) int {
	if current > 0 {
		return current - 1
	}
	return current
}
