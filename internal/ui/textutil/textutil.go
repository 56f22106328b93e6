// Package textutil fits plain and styled text into terminal cells.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the number of columns s occupies. ANSI styling is ignored.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Truncate shortens plain text s to at most w columns, ending in Ellipsis
// when anything was cut.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, Ellipsis)
}

// Fit truncates or right-pads plain text s to exactly w columns.
func Fit(s string, w int) string {
	s = Truncate(s, w)
	return runewidth.FillRight(s, w)
}

// Center pads plain text s on both sides to w columns.
func Center(s string, w int) string {
	s = Truncate(s, w)
	gap := w - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// Clip keeps at most h lines of block, each cut to w columns. Styled lines
// are cut with lipgloss so escape sequences stay balanced.
func Clip(block string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	lines := strings.Split(block, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	cut := lipgloss.NewStyle().MaxWidth(w)
	for i, l := range lines {
		if lipgloss.Width(l) > w {
			lines[i] = cut.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
