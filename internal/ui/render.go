package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"paneldeck/internal/layout"
	"paneldeck/internal/ui/textutil"
)

const (
	gripGlyph     = "⠿"
	closeGlyph    = "×"
	maximizeGlyph = "□"
	restoreGlyph  = "▣"
)

// frameParts is one rendered frame split into its rows of chrome.
type frameParts struct {
	header string
	footer string
	body   Rect
}

// frame computes the header, the footer and the rectangle left for the body.
// Rendering and hit-testing both go through it so they agree on positions.
func (a *AppModel) frame() frameParts {
	var f frameParts
	if a.width <= 0 || a.height <= 0 {
		return f
	}
	f.header = a.renderHeader()
	f.footer = RenderKeybindHelp(a.KeyHandler, a.Mode(), a.Theme, a.width)
	if f.footer == "" {
		f.footer = renderStatus(a.Mode(), a.Theme, a.width)
	}
	top := lipgloss.Height(f.header)
	h := a.height - top - lipgloss.Height(f.footer)
	if h < 0 {
		h = 0
	}
	w := a.width
	if max := a.ViewMode.MaxWidth(); max > 0 && max < w {
		w = max
	}
	f.body = Rect{X: (a.width - w) / 2, Y: top, W: w, H: h}
	return f
}

// geometry lays out the committed order inside body. Hit-testing always
// uses it, even while a reorder preview is drawn.
func (a *AppModel) geometry(body Rect) geometry {
	snap := a.Group.Snapshot()
	ids := snap.IDs()
	if a.Maximized != "" {
		ids = []string{a.Maximized}
	}
	return computeGeometry(snap.Axis, body, ids, weightsFor(snap, ids))
}

// sameMembers reports whether a and b hold the same ids. A preview taken
// before a panel was added or removed no longer matches the group.
func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(b))
	for _, id := range b {
		seen[id] = true
	}
	for _, id := range a {
		if !seen[id] {
			return false
		}
	}
	return true
}

func weightsFor(snap layout.Snapshot, ids []string) []float64 {
	byID := make(map[string]float64, len(snap.Panels))
	for _, p := range snap.Panels {
		byID[p.ID] = p.Weight
	}
	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return out
}

func (a *AppModel) render() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	f := a.frame()

	var body string
	switch a.Mode() {
	case ModeEmpty:
		body = a.renderWelcome(f.body)
	default:
		body = a.renderBody(f.body)
	}

	var b strings.Builder
	b.WriteString(f.header)
	b.WriteByte('\n')
	if f.body.H > 0 {
		pad := strings.Repeat(" ", f.body.X)
		for i, line := range strings.Split(body, "\n") {
			if i >= f.body.H {
				break
			}
			b.WriteString(pad)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteString(f.footer)
	return b.String()
}

func (a *AppModel) renderHeader() string {
	parts := []string{a.Theme.Header.Render("paneldeck")}
	parts = append(parts, fmt.Sprintf("%d panels", a.Group.Len()))
	parts = append(parts, a.Group.Axis().String(), string(a.ViewMode))
	if before, after, ok := a.Resizer.Active(); ok {
		parts = append(parts, a.Theme.HelpKey.Render("resizing "+a.titleOf(before)+" | "+a.titleOf(after)))
	}
	if id := a.Reorder.Dragged(); id != "" {
		parts = append(parts, a.Theme.HelpKey.Render("moving "+a.titleOf(id)))
	}
	if a.Inserting {
		parts = append(parts, a.Theme.HelpKey.Render("-- INSERT --"))
	}
	line := strings.Join(parts, a.Theme.Muted.Render(" · "))
	return lipgloss.NewStyle().MaxWidth(a.width).Render(line)
}

func (a *AppModel) titleOf(id string) string {
	if p := a.Panels[id]; p != nil {
		return p.Title
	}
	return id
}

// renderBody draws the panels and dividers. During a reorder drag the
// pending preview order is drawn, sized by each panel's own weight.
func (a *AppModel) renderBody(body Rect) string {
	snap := a.Group.Snapshot()
	ids := snap.IDs()
	if a.Maximized != "" {
		ids = []string{a.Maximized}
	} else if pending, ok := a.Reorder.Pending(); ok && sameMembers(pending, ids) {
		ids = pending
	}
	g := computeGeometry(snap.Axis, body, ids, weightsFor(snap, ids))
	if len(g.Slots) == 0 {
		return ""
	}

	activeBefore, activeAfter, resizing := a.Resizer.Active()
	var pieces []string
	for i, s := range g.Slots {
		pieces = append(pieces, a.renderPanel(s))
		if i < len(g.Dividers) {
			d := g.Dividers[i]
			active := resizing && d.Before == activeBefore && d.After == activeAfter
			pieces = append(pieces, a.renderDivider(snap.Axis, d, active))
		}
	}
	if snap.Axis == layout.Vertical {
		return lipgloss.JoinVertical(lipgloss.Left, pieces...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pieces...)
}

func (a *AppModel) renderDivider(axis layout.Axis, d divider, active bool) string {
	style := a.Theme.Divider
	glyphV, glyphH := "│", "─"
	if active {
		style = a.Theme.DividerActive
		glyphV, glyphH = "┃", "━"
	}
	if axis == layout.Vertical {
		return style.Render(strings.Repeat(glyphH, d.Rect.W))
	}
	return style.Render(strings.TrimSuffix(strings.Repeat(glyphV+"\n", d.Rect.H), "\n"))
}

func (a *AppModel) renderPanel(s slot) string {
	p := a.Panels[s.ID]
	innerW, innerH := s.Frame.W-2, s.Frame.H-2
	if innerW < 1 || innerH < 1 {
		return lipgloss.NewStyle().Width(s.Frame.W).Height(s.Frame.H).Render("")
	}

	style := a.Theme.Frame
	titleStyle := a.Theme.Title
	switch {
	case s.ID == a.Reorder.Dragged():
		style = a.Theme.FrameDragged
	case a.isDropTarget(s.ID):
		style = a.Theme.FrameTarget
	case s.ID == a.Focus.Current:
		style = a.Theme.FrameFocused
	}
	if s.ID == a.Focus.Current {
		titleStyle = a.Theme.TitleFocused
	}

	title := s.ID
	var content string
	if p != nil {
		title = p.Title
		if p.View != nil {
			if sz, ok := p.View.(Sizer); ok {
				sz.SetSize(innerW, innerH-1)
			}
			content = textutil.Clip(p.View.View(), innerW, innerH-1)
		}
	}

	lines := []string{a.renderTitleRow(s.ID, title, titleStyle, innerW)}
	if content != "" && innerH > 1 {
		lines = append(lines, content)
	}
	return style.
		Width(innerW).
		Height(innerH).
		MaxHeight(s.Frame.H).
		Render(strings.Join(lines, "\n"))
}

// renderTitleRow draws the grip, the title and, when there is room, the
// maximize and close buttons at the right edge (see buttonAt).
func (a *AppModel) renderTitleRow(id, title string, style lipgloss.Style, w int) string {
	if w < 8 {
		return style.Render(textutil.Fit(title, w))
	}
	max := maximizeGlyph
	if a.Maximized == id {
		max = restoreGlyph
	}
	left := a.Theme.Grip.Render(gripGlyph) + " " + style.Render(textutil.Fit(title, w-6))
	return left + " " + a.Theme.Muted.Render(max) + " " + a.Theme.Muted.Render(closeGlyph)
}

func (a *AppModel) isDropTarget(id string) bool {
	pending, ok := a.Reorder.Pending()
	if !ok {
		return false
	}
	dragged := a.Reorder.Dragged()
	order := a.Group.Order()
	to := indexOf(pending, dragged)
	return to >= 0 && to < len(order) && order[to] == id
}

func (a *AppModel) renderWelcome(body Rect) string {
	var b strings.Builder
	b.WriteString(a.Theme.Header.Render("Welcome to paneldeck"))
	b.WriteString("\n\n")
	b.WriteString(a.Theme.Normal.Render("Your dashboard is empty. Add a panel to begin."))
	b.WriteString("\n\n")
	for _, name := range defaultQuickAdd {
		k, ok := a.kinds[name]
		if !ok || k.Key == "" {
			continue
		}
		b.WriteString(a.Theme.HelpKey.Render("SPC a " + k.Key))
		b.WriteString("  ")
		b.WriteString(a.Theme.Normal.Render(k.Title))
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(a.Theme.Muted.Render("Press SPC a to see every panel kind."))
	card := a.Theme.Welcome.Render(b.String())
	return lipgloss.Place(body.W, body.H, lipgloss.Center, lipgloss.Center, card)
}
