package content

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"paneldeck/internal/ui"
)

// NotesView is a free-form text area. It takes keys only in insert mode.
type NotesView struct {
	area textarea.Model
}

var (
	_ ui.View    = (*NotesView)(nil)
	_ ui.Focuser = (*NotesView)(nil)
	_ ui.Sizer   = (*NotesView)(nil)
)

// NewNotesView creates an empty notes view.
func NewNotesView() *NotesView {
	ta := textarea.New()
	ta.Placeholder = "Press i to write…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Blur()
	return &NotesView{area: ta}
}

// Init implements ui.View.
func (n *NotesView) Init() tea.Cmd { return nil }

// Update implements ui.View. Keys are ignored unless the area is focused.
func (n *NotesView) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && !n.area.Focused() {
		return n, nil
	}
	var cmd tea.Cmd
	n.area, cmd = n.area.Update(msg)
	return n, cmd
}

// View implements ui.View.
func (n *NotesView) View() string { return n.area.View() }

// Focus implements ui.Focuser.
func (n *NotesView) Focus() tea.Cmd { return n.area.Focus() }

// Blur implements ui.Focuser.
func (n *NotesView) Blur() { n.area.Blur() }

// SetSize implements ui.Sizer.
func (n *NotesView) SetSize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	n.area.SetWidth(w)
	n.area.SetHeight(h)
}

// Value returns the text written so far.
func (n *NotesView) Value() string { return n.area.Value() }
