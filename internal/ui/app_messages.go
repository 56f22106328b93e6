package ui

// AddPanelMsg adds a panel of Kind at the tail of the group (SPC a <key>).
type AddPanelMsg struct {
	Kind string
}

// RemovePanelMsg removes a panel (SPC x, or the close button). Empty ID
// means the focused panel.
type RemovePanelMsg struct {
	ID string
}

// RemoveLastPanelMsg removes the panel at the tail of the group (SPC X).
type RemoveLastPanelMsg struct{}

// ToggleMaximizeMsg maximizes a panel, or restores the group if it already
// is (SPC m, or the maximize button). Empty ID means the focused panel.
type ToggleMaximizeMsg struct {
	ID string
}

// ToggleAxisMsg flips the group between horizontal and vertical (SPC o).
type ToggleAxisMsg struct{}

// EqualizeMsg resets every panel to the default weight (SPC =).
type EqualizeMsg struct{}

// SetViewModeMsg caps the body width (SPC v d|t|m).
type SetViewModeMsg struct {
	Mode ViewMode
}

// ToggleThemeMsg switches between the dark and light theme (SPC t).
type ToggleThemeMsg struct{}

// FocusMsg moves keyboard focus (tab / shift+tab).
type FocusMsg struct {
	Delta int // +1 next, -1 previous
}

// NudgeMsg resizes the focused panel by Cells along the axis (H / L).
// Positive grows the focused panel.
type NudgeMsg struct {
	Cells int
}

// ShiftPanelMsg moves the focused panel one slot ([ / ]).
type ShiftPanelMsg struct {
	Delta int
}

// InsertMsg hands keyboard input to the focused panel's content (i).
type InsertMsg struct{}
