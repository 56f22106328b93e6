package content

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"paneldeck/internal/ui"
)

var (
	placeholderTitle = lipgloss.NewStyle().Bold(true)
	placeholderMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PlaceholderView stands in for content kinds that only render a summary
// in the terminal.
type PlaceholderView struct {
	Kind  Kind
	width int
}

var _ ui.View = (*PlaceholderView)(nil)

// Init implements ui.View.
func (p *PlaceholderView) Init() tea.Cmd { return nil }

// Update implements ui.View.
func (p *PlaceholderView) Update(tea.Msg) (ui.View, tea.Cmd) { return p, nil }

// SetSize implements ui.Sizer.
func (p *PlaceholderView) SetSize(w, _ int) { p.width = w }

// View implements ui.View.
func (p *PlaceholderView) View() string {
	info, ok := lookup(p.Kind)
	if !ok {
		return placeholderMuted.Render("Unknown panel type")
	}
	body := placeholderTitle.Render(info.title)
	if info.blurb != "" {
		blurb := placeholderMuted
		if p.width > 0 {
			blurb = blurb.Width(p.width)
		}
		body += "\n" + blurb.Render(info.blurb)
	}
	return body
}
