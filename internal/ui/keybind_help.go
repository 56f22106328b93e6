package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp renders the transient bar shown while a leader sequence
// is pending, listing the keys that can follow it in mode.
func RenderKeybindHelp(h *KeyHandler, mode AppMode, theme Theme, width int) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	seq := h.Sequence()
	hints := h.Registry.LeaderHints(seq, mode)
	if len(hints) == 0 {
		return ""
	}

	bindings := make([]key.Binding, 0, len(hints)+1)
	for _, hint := range hints {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(hint.Key),
			key.WithHelp(hint.Key, hint.Desc),
		))
	}
	bindings = append(bindings, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))

	hm := help.New()
	hm.Styles.ShortKey = theme.HelpKey
	hm.Styles.ShortDesc = theme.Muted
	hm.Styles.ShortSeparator = theme.Muted
	if width > 4 {
		hm.Width = width - 4
	}

	content := theme.Muted.Render(seq) + " " + hm.ShortHelpView(bindings)
	box := theme.HelpBox
	if width > 2 {
		box = box.MaxWidth(width)
	}
	return box.Render(content)
}

// statusHints is the always-visible footer for mode.
func statusHints(mode AppMode) []key.Binding {
	b := func(k, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
	}
	switch mode {
	case ModeEmpty:
		return []key.Binding{b("SPC a", "add panel"), b("q", "quit")}
	case ModeMaximized:
		return []key.Binding{b("SPC m", "restore"), b("i", "insert"), b("SPC", "commands"), b("q", "quit")}
	default:
		return []key.Binding{
			b("tab", "focus"), b("H/L", "resize"), b("[/]", "move"),
			b("i", "insert"), b("SPC", "commands"), b("q", "quit"),
		}
	}
}

func renderStatus(mode AppMode, theme Theme, width int) string {
	hm := help.New()
	hm.Styles.ShortKey = theme.HelpKey
	hm.Styles.ShortDesc = theme.Muted
	hm.Styles.ShortSeparator = theme.Muted
	hm.Width = width
	return lipgloss.NewStyle().MaxWidth(width).Render(hm.ShortHelpView(statusHints(mode)))
}
