package ui

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	tea "github.com/charmbracelet/bubbletea"

	"paneldeck/internal/layout"
	"paneldeck/internal/store"
)

// Options configures NewAppModel.
type Options struct {
	Axis        layout.Axis
	Floor       float64
	Sensitivity float64 // 0 = match the pair's on-screen extent at each grab
	Kinds       []PanelKind
	NewContent  ContentFactory
	NewID       func() string
	Store       *store.Store // nil = nothing persisted
	Observer    layout.SessionObserver
	Logger      *log.Logger
	Light       bool
}

// AppModel is the root model: a panel group plus the controllers and
// content that hang off it.
type AppModel struct {
	Group      *layout.Group
	Resizer    *layout.Resizer
	Reorder    *layout.Reorder
	Panels     map[string]*Panel
	Focus      FocusManager
	KeyHandler *KeyHandler
	Gateway    *store.Gateway
	Theme      Theme
	ViewMode   ViewMode
	Maximized  string // id of the maximized panel, "" for none
	Inserting  bool   // keys go to the focused panel's content

	kinds       map[string]PanelKind
	newContent  ContentFactory
	newID       func() string
	trackExtent bool
	capture     *pointerCapture
	lastPointer int // pointer coordinate along the axis during a resize
	width       int
	height      int
	logger      *log.Logger
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel builds the dashboard and restores persisted panels from
// opts.Store. Restored panels start at the default weight.
func NewAppModel(opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	a := &AppModel{
		Group:       layout.NewGroup(opts.Axis, layout.WithFloor(opts.Floor)),
		Panels:      make(map[string]*Panel),
		Theme:       NewTheme(!opts.Light),
		ViewMode:    ViewDesktop,
		kinds:       make(map[string]PanelKind, len(opts.Kinds)),
		newContent:  opts.NewContent,
		newID:       opts.NewID,
		trackExtent: opts.Sensitivity <= 0,
		capture:     &pointerCapture{},
		logger:      logger,
	}
	for _, k := range opts.Kinds {
		a.kinds[k.Name] = k
	}
	if a.newContent == nil {
		a.newContent = func(kind string) View { return StaticView{Text: a.kindTitle(kind)} }
	}
	if a.newID == nil {
		n := 0
		a.newID = func() string {
			n++
			return "panel-" + strconv.Itoa(n)
		}
	}

	resizerOpts := []layout.ResizerOption{
		layout.WithCapture(a.capture.forKind(layout.SessionResize)),
		layout.WithResizeObserver(opts.Observer),
	}
	if opts.Sensitivity > 0 {
		resizerOpts = append(resizerOpts, layout.WithSensitivity(opts.Sensitivity))
	}
	a.Resizer = layout.NewResizer(a.Group, resizerOpts...)
	a.Reorder = layout.NewReorder(a.Group,
		layout.WithReorderCapture(a.capture.forKind(layout.SessionReorder)),
		layout.WithReorderObserver(opts.Observer),
	)
	a.KeyHandler = NewKeyHandler(NewDefaultKeybindRegistry(opts.Kinds))

	if opts.Store != nil {
		st := opts.Store.Load()
		a.ViewMode = ParseViewMode(st.ViewMode)
		for _, d := range st.Panels {
			title := d.Title
			if title == "" {
				title = a.kindTitle(d.Kind)
			}
			a.Panels[d.ID] = &Panel{ID: d.ID, Kind: d.Kind, Title: title, View: a.newContent(d.Kind)}
		}
		store.Restore(a.Group, st.Panels)
		a.Gateway = store.NewGateway(opts.Store, a.Group, a.describe, logger)
		a.Gateway.RestoreViewMode(st.ViewMode)
		logger.Debug("restored panels", "count", len(st.Panels), "path", opts.Store.Path())
	}

	a.Focus.Sync(a.Group.Order())
	a.Group.Subscribe(a.onGroupChange)
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Mode derives the presentation mode from the current state.
func (a *AppModel) Mode() AppMode {
	switch {
	case a.Group.Len() == 0:
		return ModeEmpty
	case a.Maximized != "":
		return ModeMaximized
	default:
		return ModeGroup
	}
}

// Close tears down open gestures and stops persisting.
func (a *AppModel) Close() {
	a.Resizer.Close()
	a.Reorder.Close()
	if a.Gateway != nil {
		a.Gateway.Close()
	}
	for _, p := range a.Panels {
		closeView(p.View, a.logger)
	}
}

// closeView releases content that holds resources, such as a shell.
func closeView(v View, logger *log.Logger) {
	c, ok := v.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logger.Debug("close panel content", "err", err)
	}
}

func (a *AppModel) describe(id string) (kind, title string) {
	if p, ok := a.Panels[id]; ok {
		return p.Kind, p.Title
	}
	return "", ""
}

func (a *AppModel) kindTitle(kind string) string {
	if k, ok := a.kinds[kind]; ok && k.Title != "" {
		return k.Title
	}
	return "New Panel"
}

func (a *AppModel) onGroupChange(c layout.Change) {
	switch c.Kind {
	case layout.ChangeMembership, layout.ChangeOrder:
		a.Focus.Sync(a.Group.Order())
		if a.Maximized != "" && !a.Group.Has(a.Maximized) {
			a.Maximized = ""
		}
	}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range a.Group.Order() {
		if p := a.Panels[id]; p != nil && p.View != nil {
			cmds = append(cmds, p.View.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, nil
	case tea.BlurMsg:
		// Losing the terminal is losing pointer capture.
		a.cancelGestures()
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case AddPanelMsg:
		return a, a.addPanel(msg.Kind)
	case RemovePanelMsg:
		id := msg.ID
		if id == "" {
			id = a.Focus.Current
		}
		a.removePanel(id)
		return a, nil
	case RemoveLastPanelMsg:
		if order := a.Group.Order(); len(order) > 0 {
			a.removePanel(order[len(order)-1])
		}
		return a, nil
	case ToggleMaximizeMsg:
		a.toggleMaximize(msg.ID)
		return a, nil
	case ToggleAxisMsg:
		a.cancelGestures()
		if a.Group.Axis() == layout.Horizontal {
			a.Group.SetAxis(layout.Vertical)
		} else {
			a.Group.SetAxis(layout.Horizontal)
		}
		return a, nil
	case EqualizeMsg:
		a.cancelGestures()
		a.Group.Reset()
		return a, nil
	case SetViewModeMsg:
		a.ViewMode = msg.Mode
		if a.Gateway != nil {
			a.Gateway.SetViewMode(string(msg.Mode))
		}
		return a, nil
	case ToggleThemeMsg:
		a.Theme = NewTheme(!a.Theme.Dark)
		return a, nil
	case FocusMsg:
		if msg.Delta < 0 {
			a.Focus.Prev()
		} else {
			a.Focus.Next()
		}
		return a, nil
	case NudgeMsg:
		a.nudge(msg.Cells)
		return a, nil
	case ShiftPanelMsg:
		a.shiftFocused(msg.Delta)
		return a, nil
	case InsertMsg:
		return a, a.enterInsert()
	}

	return a, a.broadcast(msg)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.render()
}

// broadcast forwards msg to every panel's content.
func (a *AppModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range a.Group.Order() {
		p := a.Panels[id]
		if p == nil || p.View == nil {
			continue
		}
		v, cmd := p.View.Update(msg)
		p.View = v
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *AppModel) addPanel(kind string) tea.Cmd {
	id := a.newID()
	for a.Group.Has(id) {
		id = a.newID()
	}
	p := &Panel{ID: id, Kind: kind, Title: a.kindTitle(kind), View: a.newContent(kind)}
	a.Panels[id] = p
	a.Group.Register(id)
	a.Focus.SetFocus(id)
	a.logger.Info("panel added", "id", id, "kind", kind)
	return p.View.Init()
}

func (a *AppModel) removePanel(id string) {
	if id == "" || !a.Group.Has(id) {
		a.logger.Debug("remove ignored", "id", id)
		return
	}
	if p := a.Panels[id]; p != nil {
		if f, ok := p.View.(Focuser); ok && a.Inserting && a.Focus.Current == id {
			f.Blur()
			a.Inserting = false
		}
	}
	a.Group.Unregister(id)
	if p := a.Panels[id]; p != nil {
		closeView(p.View, a.logger)
	}
	delete(a.Panels, id)
	a.logger.Info("panel removed", "id", id)
}

func (a *AppModel) toggleMaximize(id string) {
	if id == "" {
		id = a.Focus.Current
	}
	if a.Maximized != "" && (id == a.Maximized || id == "") {
		a.Maximized = ""
		return
	}
	if !a.Group.Has(id) {
		return
	}
	a.cancelGestures()
	a.Maximized = id
	a.Focus.SetFocus(id)
}

func (a *AppModel) cancelGestures() {
	a.Resizer.Cancel()
	a.Reorder.Cancel()
}

// nudge resizes the focused panel through a one-shot resize session so the
// keyboard path obeys the same conservation and floor rules as a drag.
func (a *AppModel) nudge(cells int) {
	id := a.Focus.Current
	if id == "" || cells == 0 {
		return
	}
	before, after := id, ""
	delta := float64(cells)
	if _, next := a.Group.Neighbors(id); next != "" {
		after = next
	} else if prev, _ := a.Group.Neighbors(id); prev != "" {
		before, after = prev, id
		delta = -delta
	} else {
		return
	}
	if a.trackExtent {
		a.Resizer.SetSensitivity(a.pairExtent(before, after))
	}
	if !a.Resizer.Begin(before, after) {
		return
	}
	a.Resizer.Move(delta)
	a.Resizer.End()
}

// shiftFocused moves the focused panel one slot through the reorder
// controller.
func (a *AppModel) shiftFocused(delta int) {
	id := a.Focus.Current
	order := a.Group.Order()
	i := indexOf(order, id)
	j := i + delta
	if i < 0 || j < 0 || j >= len(order) {
		return
	}
	if !a.Reorder.BeginReorder(id) {
		return
	}
	a.Reorder.OnHoverTarget(order[j])
	if err := a.Reorder.Commit(); err != nil {
		a.logger.Warn("reorder rejected", "id", id, "err", err)
	}
}

func (a *AppModel) enterInsert() tea.Cmd {
	p := a.Panels[a.Focus.Current]
	if p == nil {
		return nil
	}
	f, ok := p.View.(Focuser)
	if !ok {
		return nil
	}
	a.Inserting = true
	return f.Focus()
}

func (a *AppModel) leaveInsert() {
	if p := a.Panels[a.Focus.Current]; p != nil {
		if f, ok := p.View.(Focuser); ok {
			f.Blur()
		}
	}
	a.Inserting = false
}

func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := msg.String()
	if s == "ctrl+c" {
		return tea.Quit
	}

	if a.Inserting {
		if s == "esc" {
			a.leaveInsert()
			return nil
		}
		p := a.Panels[a.Focus.Current]
		if p == nil {
			a.Inserting = false
			return nil
		}
		v, cmd := p.View.Update(msg)
		p.View = v
		return cmd
	}

	if s == "esc" && a.gestureActive() {
		a.cancelGestures()
		return nil
	}

	if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode()); consumed {
		return cmd
	}
	return nil
}

func (a *AppModel) gestureActive() bool {
	return a.Resizer.State() == layout.Active || a.Reorder.State() == layout.Active
}

func indexOf(ids []string, id string) int {
	for i, o := range ids {
		if o == id {
			return i
		}
	}
	return -1
}
