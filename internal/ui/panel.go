package ui

import tea "github.com/charmbracelet/bubbletea"

// Panel hosts a View in one slot of the panel group. Its place and size are
// owned by the layout engine; Panel only carries what the slot displays.
type Panel struct {
	ID    string
	Kind  string
	Title string
	View  View
}

// PanelKind describes a kind of content that can be added to the dashboard.
type PanelKind struct {
	Name  string // persisted kind, e.g. "notes"
	Title string // default panel title
	Key   string // key after "SPC a" that adds it; empty = not bound
}

// ContentFactory builds the View for a new panel of kind.
type ContentFactory func(kind string) View

// Sizer is implemented by views that want to know their content area.
type Sizer interface {
	SetSize(width, height int)
}

// Focuser is implemented by views that take keyboard input in insert mode.
type Focuser interface {
	Focus() tea.Cmd
	Blur()
}
