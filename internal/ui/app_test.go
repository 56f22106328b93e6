package ui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"paneldeck/internal/layout"
	"paneldeck/internal/logging"
	"paneldeck/internal/store"
)

var testKinds = []PanelKind{
	{Name: "notes", Title: "Notes", Key: "n"},
	{Name: "web", Title: "Web View", Key: "w"},
	{Name: "game", Title: "Game", Key: "g"},
}

// fakeView records what the app hands to panel content.
type fakeView struct {
	text    string
	keys    []string
	focused bool
	w, h    int
}

func (v *fakeView) Init() tea.Cmd { return nil }
func (v *fakeView) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		v.keys = append(v.keys, k.String())
	}
	return v, nil
}
func (v *fakeView) View() string { return v.text }
func (v *fakeView) Focus() tea.Cmd { v.focused = true; return nil }
func (v *fakeView) Blur() { v.focused = false }
func (v *fakeView) SetSize(w, h int) { v.w, v.h = w, h }

func newTestApp(t *testing.T, opts Options) (*AppModel, *appModelAdapter, map[string]*fakeView) {
	t.Helper()
	views := make(map[string]*fakeView)
	if opts.Kinds == nil {
		opts.Kinds = testKinds
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	opts.NewContent = func(kind string) View {
		v := &fakeView{text: kind + " content"}
		views[kind] = v
		return v
	}
	a := NewAppModel(opts)
	m := a.AsTeaModel().(*appModelAdapter)
	m.Update(tea.WindowSizeMsg{Width: 81, Height: 24})
	t.Cleanup(a.Close)
	return a, m, views
}

// update delivers msg and then every message its commands produce.
func update(m *appModelAdapter, msg tea.Msg) {
	_, cmd := m.Update(msg)
	run(m, cmd)
}

func run(m *appModelAdapter, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			run(m, c)
		}
	default:
		update(m, msg)
	}
}

func typeKeys(m *appModelAdapter, keys ...string) {
	for _, k := range keys {
		update(m, keyMsg(k))
	}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func addPanels(m *appModelAdapter, kinds ...string) {
	for _, k := range kinds {
		update(m, AddPanelMsg{Kind: k})
	}
}

func currentGeometry(a *AppModel) geometry {
	return a.geometry(a.frame().body)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestApp_StartsEmpty(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	if a.Mode() != ModeEmpty {
		t.Fatalf("expected empty mode, got %v", a.Mode())
	}
	out := m.View()
	if !strings.Contains(out, "Welcome") {
		t.Errorf("expected welcome card, got:\n%s", out)
	}
}

func TestApp_AddAndRemoveWithKeys(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})

	typeKeys(m, " ", "a", "n")
	typeKeys(m, " ", "a", "w")
	if got := a.Group.Order(); len(got) != 2 {
		t.Fatalf("expected 2 panels, got %v", got)
	}
	second := a.Group.Order()[1]
	if a.Focus.Current != second {
		t.Errorf("expected focus on the new panel, got %q", a.Focus.Current)
	}
	if a.Panels[second].Title != "Web View" {
		t.Errorf("expected default kind title, got %q", a.Panels[second].Title)
	}

	typeKeys(m, " ", "x")
	if a.Group.Len() != 1 || a.Group.Has(second) {
		t.Errorf("expected focused panel removed, order %v", a.Group.Order())
	}
	if _, ok := a.Panels[second]; ok {
		t.Error("removed panel should be forgotten")
	}

	typeKeys(m, " ", "X")
	if a.Mode() != ModeEmpty {
		t.Errorf("expected empty after removing the last panel")
	}
}

func TestApp_DividerDrag(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	ids := a.Group.Order()

	g := currentGeometry(a)
	d := g.Dividers[0]
	x, y := d.Rect.X, d.Rect.Y+3
	extent := pairExtentIn(g, ids[0], ids[1])

	update(m, mouse(tea.MouseActionPress, x, y))
	if a.Resizer.State() != layout.Active {
		t.Fatal("press on divider should begin a resize")
	}
	if kind, held := a.capture.Held(); !held || kind != layout.SessionResize {
		t.Fatal("resize should hold the pointer")
	}

	update(m, mouse(tea.MouseActionMotion, x+10, y))
	update(m, mouse(tea.MouseActionMotion, x+20, y+4))
	update(m, mouse(tea.MouseActionRelease, x+20, y+4))

	want := 1 + 20/extent*2
	if w := a.Group.Weight(ids[0]); !near(w, want) {
		t.Errorf("before weight = %v, want %v", w, want)
	}
	if w := a.Group.Weight(ids[1]); !near(w, 2-want) {
		t.Errorf("after weight = %v, want %v", w, 2-want)
	}
	if _, held := a.capture.Held(); held {
		t.Error("release should free the pointer")
	}
	if got := currentGeometry(a).Dividers[0].Rect.X; got != x+20 {
		t.Errorf("divider drawn at x=%d, want %d under the pointer", got, x+20)
	}

	// motion after release reaches nobody
	before := a.Group.Weight(ids[0])
	update(m, mouse(tea.MouseActionMotion, x+30, y))
	if a.Group.Weight(ids[0]) != before {
		t.Error("motion after release must not resize")
	}
}

func TestApp_DividerFollowsPointer(t *testing.T) {
	for _, delta := range []int{-25, -7, 3, 10, 20, 33} {
		t.Run(fmt.Sprintf("%+d", delta), func(t *testing.T) {
			a, m, _ := newTestApp(t, Options{})
			addPanels(m, "notes", "web")
			d := currentGeometry(a).Dividers[0]
			x, y := d.Rect.X, d.Rect.Y+2

			update(m, mouse(tea.MouseActionPress, x, y))
			update(m, mouse(tea.MouseActionMotion, x+delta, y))

			g := currentGeometry(a)
			if got := g.Dividers[0].Rect.X; got != x+delta {
				t.Errorf("mid-drag divider at x=%d, want %d", got, x+delta)
			}
			update(m, mouse(tea.MouseActionRelease, x+delta, y))
			if got := currentGeometry(a).Dividers[0].Rect.X; got != x+delta {
				t.Errorf("released divider at x=%d, want %d", got, x+delta)
			}
		})
	}
}

func TestApp_DividerFollowsPointerVertical(t *testing.T) {
	a, m, _ := newTestApp(t, Options{Axis: layout.Vertical})
	addPanels(m, "notes", "web")
	// an even pair extent splits evenly, so no half cell is left to round
	for h := 24; (a.frame().body.H-1)%2 != 0; h++ {
		update(m, tea.WindowSizeMsg{Width: 81, Height: h + 1})
	}
	d := currentGeometry(a).Dividers[0]
	x, y := d.Rect.X+5, d.Rect.Y

	update(m, mouse(tea.MouseActionPress, x, y))
	update(m, mouse(tea.MouseActionMotion, x, y-3))
	update(m, mouse(tea.MouseActionRelease, x, y-3))

	if got := currentGeometry(a).Dividers[0].Rect.Y; got != y-3 {
		t.Errorf("divider drawn at y=%d, want %d", got, y-3)
	}
}

func TestApp_DividerDragClampsAtFloor(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	ids := a.Group.Order()
	d := currentGeometry(a).Dividers[0]

	update(m, mouse(tea.MouseActionPress, d.Rect.X, d.Rect.Y+1))
	update(m, mouse(tea.MouseActionMotion, d.Rect.X+500, d.Rect.Y+1))
	update(m, mouse(tea.MouseActionRelease, d.Rect.X+500, d.Rect.Y+1))

	if w := a.Group.Weight(ids[1]); !near(w, layout.DefaultFloor) {
		t.Errorf("after weight = %v, want floor", w)
	}
	if total := a.Group.Snapshot().TotalWeight(); !near(total, 2) {
		t.Errorf("total weight = %v, want 2", total)
	}
}

func TestApp_EscCancelsResize(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	ids := a.Group.Order()
	d := currentGeometry(a).Dividers[0]

	update(m, mouse(tea.MouseActionPress, d.Rect.X, d.Rect.Y+1))
	update(m, mouse(tea.MouseActionMotion, d.Rect.X-15, d.Rect.Y+1))
	if a.Group.Weight(ids[0]) >= 1 {
		t.Fatal("drag left should shrink the first panel")
	}
	typeKeys(m, "esc")

	if a.Group.Weight(ids[0]) != 1 || a.Group.Weight(ids[1]) != 1 {
		t.Errorf("cancel should restore weights, got %v / %v",
			a.Group.Weight(ids[0]), a.Group.Weight(ids[1]))
	}
	if a.Resizer.State() != layout.Idle {
		t.Error("resize should be idle after esc")
	}
	if a.capture.acquired != a.capture.released {
		t.Errorf("capture acquired %d, released %d", a.capture.acquired, a.capture.released)
	}
}

func TestApp_BlurCancelsGestures(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web", "game")
	s := currentGeometry(a).Slots[0]

	update(m, mouse(tea.MouseActionPress, s.Frame.X+3, s.Frame.Y+1))
	if a.Reorder.State() != layout.Active {
		t.Fatal("press on a title should begin a reorder")
	}
	update(m, tea.BlurMsg{})
	if a.Reorder.State() != layout.Idle {
		t.Error("blur should cancel the reorder")
	}
	if _, held := a.capture.Held(); held {
		t.Error("blur should free the pointer")
	}
}

func TestApp_TitleDragReorders(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web", "game")
	ids := a.Group.Order()
	g := currentGeometry(a)
	first, last := g.Slots[0], g.Slots[2]

	update(m, mouse(tea.MouseActionPress, first.Frame.X+3, first.Frame.Y+1))
	update(m, mouse(tea.MouseActionMotion, last.Frame.X+5, last.Frame.Y+6))

	pending, ok := a.Reorder.Pending()
	if !ok || pending[2] != ids[0] {
		t.Fatalf("expected preview with %s last, got %v", ids[0], pending)
	}
	if a.Group.Order()[0] != ids[0] {
		t.Error("preview must not change the committed order")
	}
	if !strings.Contains(m.View(), "moving Notes") {
		t.Error("header should show the drag")
	}

	update(m, mouse(tea.MouseActionRelease, last.Frame.X+5, last.Frame.Y+6))
	want := []string{ids[1], ids[2], ids[0]}
	got := a.Group.Order()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestApp_PanelAddedDuringDrag(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	ids := a.Group.Order()
	g := currentGeometry(a)

	update(m, mouse(tea.MouseActionPress, g.Slots[0].Frame.X+3, g.Slots[0].Frame.Y+1))
	update(m, mouse(tea.MouseActionMotion, g.Slots[1].Frame.X+5, g.Slots[1].Frame.Y+6))
	update(m, AddPanelMsg{Kind: "game"})

	if !strings.Contains(m.View(), "game content") {
		t.Error("the new panel should render while the stale preview is ignored")
	}
	update(m, mouse(tea.MouseActionRelease, g.Slots[1].Frame.X+5, g.Slots[1].Frame.Y+6))

	got := a.Group.Order()
	if len(got) != 3 || got[0] != ids[0] || got[1] != ids[1] {
		t.Errorf("order = %v, want the committed order plus the new panel", got)
	}
	if _, held := a.capture.Held(); held {
		t.Error("release should free the pointer")
	}
}

func TestApp_ReleaseWithoutHoverKeepsOrder(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	ids := a.Group.Order()
	s := currentGeometry(a).Slots[0]

	update(m, mouse(tea.MouseActionPress, s.Frame.X+3, s.Frame.Y+1))
	update(m, mouse(tea.MouseActionRelease, s.Frame.X+3, s.Frame.Y+1))
	if got := a.Group.Order(); got[0] != ids[0] || got[1] != ids[1] {
		t.Errorf("order changed without a drop target: %v", got)
	}
}

func TestApp_CloseAndMaximizeButtons(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web", "game")
	ids := a.Group.Order()
	s := currentGeometry(a).Slots[1]
	row := s.Frame.Y + 1

	update(m, mouse(tea.MouseActionPress, s.Frame.X+s.Frame.W-4, row))
	if a.Mode() != ModeMaximized || a.Maximized != ids[1] {
		t.Fatalf("expected %s maximized, got mode %v (%q)", ids[1], a.Mode(), a.Maximized)
	}

	full := currentGeometry(a).Slots[0]
	update(m, mouse(tea.MouseActionPress, full.Frame.X+full.Frame.W-4, full.Frame.Y+1))
	if a.Mode() != ModeGroup {
		t.Fatalf("second click should restore the group, got %v", a.Mode())
	}

	s = currentGeometry(a).Slots[1]
	update(m, mouse(tea.MouseActionPress, s.Frame.X+s.Frame.W-2, s.Frame.Y+1))
	if a.Group.Has(ids[1]) {
		t.Error("close button should remove the panel")
	}
	if a.Group.Len() != 2 {
		t.Errorf("expected 2 panels left, got %d", a.Group.Len())
	}
}

func TestApp_RemovingMaximizedRestoresGroup(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	typeKeys(m, " ", "m")
	if a.Mode() != ModeMaximized {
		t.Fatalf("expected maximized, got %v", a.Mode())
	}
	typeKeys(m, " ", "x")
	if a.Maximized != "" || a.Mode() != ModeGroup {
		t.Errorf("expected group mode after removing the maximized panel, got %v", a.Mode())
	}
}

func TestApp_RemoveDuringResizeAborts(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	ids := a.Group.Order()
	d := currentGeometry(a).Dividers[0]

	update(m, mouse(tea.MouseActionPress, d.Rect.X, d.Rect.Y+1))
	update(m, RemovePanelMsg{ID: ids[1]})
	update(m, mouse(tea.MouseActionMotion, d.Rect.X+5, d.Rect.Y+1))

	if a.Resizer.State() != layout.Idle {
		t.Error("resize should abort once its panel is gone")
	}
	if _, held := a.capture.Held(); held {
		t.Error("aborted resize must free the pointer")
	}
	if w := a.Group.Weight(ids[0]); w != 1 {
		t.Errorf("surviving panel weight = %v, want 1", w)
	}
}

func TestApp_KeyboardNudgeAndShift(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web", "game")
	ids := a.Group.Order()
	a.Focus.SetFocus(ids[0])

	typeKeys(m, "L")
	if w := a.Group.Weight(ids[0]); w <= 1 {
		t.Errorf("L should grow the focused panel, weight %v", w)
	}
	if total := a.Group.Snapshot().TotalWeight(); !near(total, 3) {
		t.Errorf("total = %v, want 3", total)
	}

	// last panel grows by taking from its left neighbor
	a.Focus.SetFocus(ids[2])
	typeKeys(m, "L")
	if w := a.Group.Weight(ids[2]); w <= 1 {
		t.Errorf("L on the last panel should grow it, weight %v", w)
	}

	a.Focus.SetFocus(ids[0])
	typeKeys(m, "]")
	if got := a.Group.Order(); got[1] != ids[0] {
		t.Errorf("] should move the focused panel forward, order %v", got)
	}
	typeKeys(m, "[", "[")
	if got := a.Group.Order(); got[0] != ids[0] {
		t.Errorf("[ should move it back and stop at the start, order %v", got)
	}
	if a.Reorder.State() != layout.Idle || a.Resizer.State() != layout.Idle {
		t.Error("keyboard gestures must not leave a session open")
	}
}

func TestApp_TabCyclesFocus(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	ids := a.Group.Order()
	a.Focus.SetFocus(ids[0])

	typeKeys(m, "tab")
	if a.Focus.Current != ids[1] {
		t.Errorf("tab: focus %q, want %q", a.Focus.Current, ids[1])
	}
	typeKeys(m, "tab")
	if a.Focus.Current != ids[0] {
		t.Errorf("tab should wrap, focus %q", a.Focus.Current)
	}
}

func TestApp_InsertModeRoutesKeys(t *testing.T) {
	a, m, views := newTestApp(t, Options{})
	addPanels(m, "notes")
	v := views["notes"]

	typeKeys(m, "i")
	if !a.Inserting || !v.focused {
		t.Fatal("i should focus the panel content")
	}
	typeKeys(m, "q", " ", "x")
	if a.Group.Len() != 1 {
		t.Error("keys in insert mode must not run dashboard commands")
	}
	if got := strings.Join(v.keys, ""); got != "q x" {
		t.Errorf("content got keys %q", got)
	}
	typeKeys(m, "esc")
	if a.Inserting || v.focused {
		t.Error("esc should leave insert mode")
	}
}

func TestApp_AxisThemeAndViewMode(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")

	typeKeys(m, " ", "o")
	if a.Group.Axis() != layout.Vertical {
		t.Errorf("SPC o should flip the axis")
	}
	if d := currentGeometry(a).Dividers[0]; d.Rect.H != 1 {
		t.Errorf("vertical axis should use a horizontal divider, got %+v", d.Rect)
	}

	typeKeys(m, " ", "t")
	if a.Theme.Dark {
		t.Error("SPC t should switch to the light theme")
	}

	typeKeys(m, " ", "v", "m")
	body := a.frame().body
	if body.W != 48 || body.X != (81-48)/2 {
		t.Errorf("mobile body = %+v", body)
	}
}

func TestApp_EqualizeResetsWeights(t *testing.T) {
	a, m, _ := newTestApp(t, Options{})
	addPanels(m, "notes", "web")
	ids := a.Group.Order()
	a.Group.SetWeight(ids[0], 3)

	typeKeys(m, " ", "=")
	for _, id := range ids {
		if w := a.Group.Weight(id); w != layout.DefaultWeight {
			t.Errorf("weight of %s = %v after equalize", id, w)
		}
	}
}

func TestApp_ContentIsSizedOnRender(t *testing.T) {
	a, m, views := newTestApp(t, Options{})
	addPanels(m, "notes")
	out := m.View()
	if !strings.Contains(out, "notes content") || !strings.Contains(out, "Notes") {
		t.Errorf("expected panel title and content in view:\n%s", out)
	}
	s := currentGeometry(a).Slots[0]
	if v := views["notes"]; v.w != s.Frame.W-2 || v.h != s.Frame.H-3 {
		t.Errorf("content sized %dx%d for frame %+v", v.w, v.h, s.Frame)
	}
}

func TestApp_PersistsAndRestoresPanels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st, err := store.NewStore(path, logging.Discard())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	a, m, _ := newTestApp(t, Options{Store: st})
	addPanels(m, "notes", "web", "game")
	ids := a.Group.Order()
	if err := a.Group.SetOrder([]string{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("SetOrder: %v", err)
	}
	a.Group.SetWeight(ids[0], 2.5)
	update(m, SetViewModeMsg{Mode: ViewTablet})
	a.Close()

	b, _, _ := newTestApp(t, Options{Store: st})
	got := b.Group.Order()
	want := []string{ids[2], ids[0], ids[1]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("restored order %v, want %v", got, want)
		}
	}
	if w := b.Group.Weight(ids[0]); w != layout.DefaultWeight {
		t.Errorf("weights are not persisted; got %v", w)
	}
	if b.Panels[ids[1]].Kind != "web" || b.Panels[ids[1]].Title != "Web View" {
		t.Errorf("restored panel %+v", b.Panels[ids[1]])
	}
	if b.ViewMode != ViewTablet {
		t.Errorf("restored view mode %q", b.ViewMode)
	}
}
