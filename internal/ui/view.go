package ui

import tea "github.com/charmbracelet/bubbletea"

// View is what a content provider mounts into a panel slot. It follows
// Bubble Tea's Init/Update/View shape; the layout engine never looks inside.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// StaticView renders fixed text. It stands in for content that has not
// been mounted yet.
type StaticView struct {
	Text string
}

var _ View = StaticView{}

// Init implements View.
func (v StaticView) Init() tea.Cmd { return nil }

// Update implements View.
func (v StaticView) Update(tea.Msg) (View, tea.Cmd) { return v, nil }

// View implements View.
func (v StaticView) View() string { return v.Text }
