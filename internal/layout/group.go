// Package layout implements the proportional panel layout engine: a group of
// panels laid out along one axis, each holding a weight that represents its
// share of the axis, plus the resize and reorder gesture controllers that
// mutate it.
//
// Group is the single source of truth. Controllers never hold their own copy
// of weights or order outside a session snapshot, and every mutation goes
// through Group's lock so readers always see a consistent Snapshot.
package layout

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

const (
	// DefaultFloor is the minimum weight any panel may hold.
	DefaultFloor = 0.1
	// DefaultWeight is the weight of a newly registered panel and the value
	// Weight reports for unknown ids.
	DefaultWeight = 1.0
)

// ErrInvalidPermutation is returned by SetOrder when the new order is not a
// permutation of the registered ids.
var ErrInvalidPermutation = errors.New("order is not a permutation of registered panels")

// Axis is the direction panels are laid out in.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseAxis accepts "horizontal"/"h"/"row" and "vertical"/"v"/"column".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "h", "row":
		return Horizontal, nil
	case "vertical", "v", "column", "col":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown axis %q", s)
}

// Panel is one slot in a group.
type Panel struct {
	ID     string
	Weight float64
}

// Snapshot is a consistent copy of a group's layout.
type Snapshot struct {
	Axis   Axis
	Panels []Panel
}

// TotalWeight returns the sum of all panel weights.
func (s Snapshot) TotalWeight() float64 {
	var sum float64
	for _, p := range s.Panels {
		sum += p.Weight
	}
	return sum
}

// IDs returns the panel ids in order.
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s.Panels))
	for i, p := range s.Panels {
		ids[i] = p.ID
	}
	return ids
}

// ChangeKind classifies a group mutation.
type ChangeKind int

const (
	ChangeWeights ChangeKind = iota
	ChangeOrder
	ChangeMembership
	ChangeAxis
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeWeights:
		return "weights"
	case ChangeOrder:
		return "order"
	case ChangeMembership:
		return "membership"
	case ChangeAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after a mutation has been applied.
type Change struct {
	Kind ChangeKind
	IDs  []string // panels affected; nil for whole-group changes
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithFloor sets the minimum panel weight. Non-positive values are ignored.
func WithFloor(f float64) GroupOption {
	return func(g *Group) {
		if f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0) {
			g.floor = f
		}
	}
}

// Group owns the axis, order and weights of a set of panels.
type Group struct {
	mu      sync.Mutex
	axis    Axis
	floor   float64
	order   []string
	weights map[string]float64

	subMu  sync.Mutex
	subs   map[int]func(Change)
	nextID int
}

// NewGroup creates an empty group laid out along axis.
func NewGroup(axis Axis, opts ...GroupOption) *Group {
	g := &Group{
		axis:    axis,
		floor:   DefaultFloor,
		weights: make(map[string]float64),
		subs:    make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Subscribe registers fn to be called after every mutation. Callbacks run on
// the mutating goroutine with no group lock held. The returned func removes
// the subscription.
func (g *Group) Subscribe(fn func(Change)) (cancel func()) {
	g.subMu.Lock()
	id := g.nextID
	g.nextID++
	g.subs[id] = fn
	g.subMu.Unlock()
	return func() {
		g.subMu.Lock()
		delete(g.subs, id)
		g.subMu.Unlock()
	}
}

func (g *Group) notify(c Change) {
	g.subMu.Lock()
	fns := make([]func(Change), 0, len(g.subs))
	for i := 0; i < g.nextID; i++ {
		if fn, ok := g.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	g.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// Axis returns the layout axis.
func (g *Group) Axis() Axis {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.axis
}

// SetAxis changes the layout axis. Weights and order are untouched.
func (g *Group) SetAxis(a Axis) {
	g.mu.Lock()
	changed := g.axis != a
	g.axis = a
	g.mu.Unlock()
	if changed {
		g.notify(Change{Kind: ChangeAxis})
	}
}

// Floor returns the minimum weight.
func (g *Group) Floor() float64 {
	return g.floor
}

// Register adds id at the tail with DefaultWeight. No-op if already present.
func (g *Group) Register(id string) {
	g.RegisterWeight(id, DefaultWeight)
}

// RegisterWeight adds id at the tail with weight clamped to the floor.
// No-op if id is already registered. Non-positive or non-finite weights are
// replaced with DefaultWeight.
func (g *Group) RegisterWeight(id string, weight float64) {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		weight = DefaultWeight
	}
	g.mu.Lock()
	if _, ok := g.weights[id]; ok {
		g.mu.Unlock()
		return
	}
	g.weights[id] = g.clamp(weight)
	g.order = append(g.order, id)
	g.mu.Unlock()
	g.notify(Change{Kind: ChangeMembership, IDs: []string{id}})
}

// Unregister removes id. No-op if unknown.
func (g *Group) Unregister(id string) {
	g.mu.Lock()
	if _, ok := g.weights[id]; !ok {
		g.mu.Unlock()
		return
	}
	delete(g.weights, id)
	for i, o := range g.order {
		if o == id {
			g.order = append(g.order[:i:i], g.order[i+1:]...)
			break
		}
	}
	g.mu.Unlock()
	g.notify(Change{Kind: ChangeMembership, IDs: []string{id}})
}

// Has reports whether id is registered.
func (g *Group) Has(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.weights[id]
	return ok
}

// Len returns the number of registered panels.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.order)
}

// Weight returns the weight of id, or DefaultWeight if id is unknown.
func (g *Group) Weight(id string) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if w, ok := g.weights[id]; ok {
		return w
	}
	return DefaultWeight
}

// SetWeight replaces the weight of id, clamped to the floor. Unknown ids and
// non-finite weights are ignored.
func (g *Group) SetWeight(id string, weight float64) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return
	}
	g.mu.Lock()
	if _, ok := g.weights[id]; !ok {
		g.mu.Unlock()
		return
	}
	g.weights[id] = g.clamp(weight)
	g.mu.Unlock()
	g.notify(Change{Kind: ChangeWeights, IDs: []string{id}})
}

// setPair writes two weights under one lock so no reader observes a state
// with only one side of a resize applied. Both ids must be registered;
// it reports false and changes nothing otherwise.
func (g *Group) setPair(a string, wa float64, b string, wb float64) bool {
	g.mu.Lock()
	_, okA := g.weights[a]
	_, okB := g.weights[b]
	if !okA || !okB {
		g.mu.Unlock()
		return false
	}
	g.weights[a] = g.clamp(wa)
	g.weights[b] = g.clamp(wb)
	g.mu.Unlock()
	g.notify(Change{Kind: ChangeWeights, IDs: []string{a, b}})
	return true
}

// Reset puts every panel back to DefaultWeight.
func (g *Group) Reset() {
	g.mu.Lock()
	for id := range g.weights {
		g.weights[id] = g.clamp(DefaultWeight)
	}
	g.mu.Unlock()
	g.notify(Change{Kind: ChangeWeights})
}

// Order returns a copy of the panel ids in layout order.
func (g *Group) Order() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.order...)
}

// SetOrder replaces the order atomically. It fails with ErrInvalidPermutation,
// leaving the group unchanged, unless ids is a permutation of the registered
// panel ids.
func (g *Group) SetOrder(ids []string) error {
	g.mu.Lock()
	if err := g.checkPermutation(ids); err != nil {
		g.mu.Unlock()
		return err
	}
	same := true
	for i := range ids {
		if g.order[i] != ids[i] {
			same = false
			break
		}
	}
	if same {
		g.mu.Unlock()
		return nil
	}
	g.order = append(g.order[:0:0], ids...)
	g.mu.Unlock()
	g.notify(Change{Kind: ChangeOrder})
	return nil
}

// Must be called with g.mu held.
func (g *Group) checkPermutation(ids []string) error {
	if len(ids) != len(g.order) {
		return fmt.Errorf("%w: got %d ids, have %d panels", ErrInvalidPermutation, len(ids), len(g.order))
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := g.weights[id]; !ok {
			return fmt.Errorf("%w: unknown panel %q", ErrInvalidPermutation, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate panel %q", ErrInvalidPermutation, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Adjacent reports whether before is immediately followed by after.
func (g *Group) Adjacent(before, after string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := indexOf(g.order, before)
	return i >= 0 && i+1 < len(g.order) && g.order[i+1] == after
}

// Neighbors returns the ids on either side of id; empty strings when there is
// no neighbor or id is unknown.
func (g *Group) Neighbors(id string) (before, after string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := indexOf(g.order, id)
	if i < 0 {
		return "", ""
	}
	if i > 0 {
		before = g.order[i-1]
	}
	if i+1 < len(g.order) {
		after = g.order[i+1]
	}
	return before, after
}

// Snapshot returns a consistent copy of axis, order and weights.
func (g *Group) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := Snapshot{Axis: g.axis, Panels: make([]Panel, len(g.order))}
	for i, id := range g.order {
		s.Panels[i] = Panel{ID: id, Weight: g.weights[id]}
	}
	return s
}

func (g *Group) clamp(w float64) float64 {
	if w < g.floor {
		return g.floor
	}
	return w
}

func indexOf(ids []string, id string) int {
	for i, o := range ids {
		if o == id {
			return i
		}
	}
	return -1
}
