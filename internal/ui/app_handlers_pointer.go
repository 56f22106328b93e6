package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"paneldeck/internal/layout"
)

// titleButton is a clickable glyph in a panel's title row.
type titleButton int

const (
	buttonNone titleButton = iota
	buttonMaximize
	buttonClose
)

// handleMouse routes pointer input. While a gesture holds the pointer every
// motion and release goes to that gesture, wherever the pointer is.
func (a *AppModel) handleMouse(msg tea.MouseMsg) {
	if kind, held := a.capture.Held(); held {
		a.routeCaptured(kind, msg)
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if a.Mode() == ModeEmpty {
		return
	}
	g := a.geometry(a.frame().body)

	if a.Mode() == ModeGroup {
		if d, ok := g.dividerAt(msg.X, msg.Y); ok {
			a.beginResize(g, d, msg)
			return
		}
	}
	if s, ok := g.titleAt(msg.X, msg.Y); ok {
		switch buttonAt(s, msg.X, msg.Y) {
		case buttonClose:
			a.removePanel(s.ID)
			return
		case buttonMaximize:
			a.toggleMaximize(s.ID)
			return
		}
		a.Focus.SetFocus(s.ID)
		if a.Mode() == ModeGroup && a.Group.Len() > 1 {
			a.Reorder.BeginReorder(s.ID)
		}
		return
	}
	if s, ok := g.slotAt(msg.X, msg.Y); ok {
		a.Focus.SetFocus(s.ID)
	}
}

func (a *AppModel) routeCaptured(kind layout.SessionKind, msg tea.MouseMsg) {
	switch kind {
	case layout.SessionResize:
		switch msg.Action {
		case tea.MouseActionMotion:
			pos := axisCoord(a.Group.Axis(), msg.X, msg.Y)
			if delta := pos - a.lastPointer; delta != 0 {
				a.Resizer.Move(float64(delta))
				a.lastPointer = pos
			}
		case tea.MouseActionRelease:
			a.Resizer.End()
		}
	case layout.SessionReorder:
		switch msg.Action {
		case tea.MouseActionMotion:
			g := a.geometry(a.frame().body)
			if s, ok := g.slotAt(msg.X, msg.Y); ok {
				a.Reorder.OnHoverTarget(s.ID)
			}
		case tea.MouseActionRelease:
			if err := a.Reorder.Commit(); err != nil {
				a.logger.Warn("reorder rejected", "err", err)
			}
		}
	}
}

func (a *AppModel) beginResize(g geometry, d divider, msg tea.MouseMsg) {
	if a.trackExtent {
		a.Resizer.SetSensitivity(pairExtentIn(g, d.Before, d.After))
	}
	if a.Resizer.Begin(d.Before, d.After) {
		a.lastPointer = axisCoord(g.Axis, msg.X, msg.Y)
	}
}

// pairExtent is the on-screen size of two panels along the axis, in cells.
func (a *AppModel) pairExtent(before, after string) float64 {
	return pairExtentIn(a.geometry(a.frame().body), before, after)
}

func pairExtentIn(g geometry, before, after string) float64 {
	total := 0
	for _, id := range []string{before, after} {
		if s, ok := g.slot(id); ok {
			if g.Axis == layout.Vertical {
				total += s.Frame.H
			} else {
				total += s.Frame.W
			}
		}
	}
	if total < 1 {
		return layout.DefaultSensitivity
	}
	return float64(total)
}

func axisCoord(axis layout.Axis, x, y int) int {
	if axis == layout.Vertical {
		return y
	}
	return x
}

// buttonAt returns the title button under (x, y). The layout matches
// renderTitleRow: close in the last inner column, maximize two to its left.
func buttonAt(s slot, x, y int) titleButton {
	innerW := s.Frame.W - 2
	if innerW < 8 || y != s.Frame.Y+1 {
		return buttonNone
	}
	switch x {
	case s.Frame.X + s.Frame.W - 2:
		return buttonClose
	case s.Frame.X + s.Frame.W - 4:
		return buttonMaximize
	}
	return buttonNone
}
