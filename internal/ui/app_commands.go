package ui

import tea "github.com/charmbracelet/bubbletea"

// send returns a command that emits msg.
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// defaultQuickAdd lists the kinds offered on the welcome card.
var defaultQuickAdd = []string{"web", "photo", "ai", "game"}

// NewDefaultKeybindRegistry binds the dashboard's keys. kinds with a Key are
// bound under "SPC a".
func NewDefaultKeybindRegistry(kinds []PanelKind) *KeybindRegistry {
	reg := NewKeybindRegistry()
	withPanels := []AppMode{ModeGroup, ModeMaximized}
	groupOnly := []AppMode{ModeGroup}

	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")

	reg.BindWithDescForMode("tab", send(FocusMsg{Delta: 1}), "Next panel", groupOnly)
	reg.BindWithDescForMode("shift+tab", send(FocusMsg{Delta: -1}), "Previous panel", groupOnly)
	reg.BindWithDescForMode("H", send(NudgeMsg{Cells: -2}), "Shrink panel", groupOnly)
	reg.BindWithDescForMode("L", send(NudgeMsg{Cells: 2}), "Grow panel", groupOnly)
	reg.BindWithDescForMode("[", send(ShiftPanelMsg{Delta: -1}), "Move panel back", groupOnly)
	reg.BindWithDescForMode("]", send(ShiftPanelMsg{Delta: 1}), "Move panel forward", groupOnly)
	reg.BindWithDescForMode("i", send(InsertMsg{}), "Insert", withPanels)

	reg.Group("SPC a", "Add panel")
	for _, k := range kinds {
		if k.Key == "" {
			continue
		}
		reg.BindWithDesc("SPC a "+k.Key, send(AddPanelMsg{Kind: k.Name}), k.Title)
	}
	reg.BindWithDescForMode("SPC x", send(RemovePanelMsg{}), "Remove panel", withPanels)
	reg.BindWithDescForMode("SPC X", send(RemoveLastPanelMsg{}), "Remove last panel", withPanels)
	reg.BindWithDescForMode("SPC m", send(ToggleMaximizeMsg{}), "Maximize", withPanels)
	reg.BindWithDescForMode("SPC o", send(ToggleAxisMsg{}), "Flip axis", groupOnly)
	reg.BindWithDescForMode("SPC =", send(EqualizeMsg{}), "Equalize", groupOnly)

	reg.Group("SPC v", "View mode")
	reg.BindWithDesc("SPC v d", send(SetViewModeMsg{Mode: ViewDesktop}), "Desktop")
	reg.BindWithDesc("SPC v t", send(SetViewModeMsg{Mode: ViewTablet}), "Tablet")
	reg.BindWithDesc("SPC v m", send(SetViewModeMsg{Mode: ViewMobile}), "Mobile")
	reg.BindWithDesc("SPC t", send(ToggleThemeMsg{}), "Theme")
	return reg
}
