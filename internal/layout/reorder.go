package layout

import "sync"

// Reorderer is the capability a drag source needs to reorder panels. Mouse
// drags, keyboard moves and tests all drive reordering through it.
type Reorderer interface {
	BeginReorder(id string) bool
	OnHoverTarget(id string)
	Commit() error
	Cancel()
}

var _ Reorderer = (*Reorder)(nil)

// ReorderOption configures a Reorder.
type ReorderOption func(*Reorder)

// WithReorderCapture sets the input resource held for the life of each session.
func WithReorderCapture(c Capture) ReorderOption {
	return func(r *Reorder) { r.capture = c }
}

// WithReorderObserver sets the session observer.
func WithReorderObserver(o SessionObserver) ReorderOption {
	return func(r *Reorder) { r.observer = o }
}

type reorderSession struct {
	dragged string
	origin  []string
	pending []string
	lease   *lease
}

// Reorder moves one panel to another panel's position. Hovering only builds
// a pending preview; the group's order changes on Commit and never on Cancel.
type Reorder struct {
	group    *Group
	capture  Capture
	observer SessionObserver

	mu      sync.Mutex
	session *reorderSession
}

// NewReorder creates a Reorder acting on g.
func NewReorder(g *Group, opts ...ReorderOption) *Reorder {
	r := &Reorder{
		group:    g,
		capture:  NopCapture{},
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}
	return r
}

// State returns Active while a session is open.
func (r *Reorder) State() SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		return Active
	}
	return Idle
}

// Dragged returns the id being dragged, or "" when idle.
func (r *Reorder) Dragged() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return ""
	}
	return r.session.dragged
}

// Pending returns a copy of the preview order, if one is pending.
func (r *Reorder) Pending() ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil || r.session.pending == nil {
		return nil, false
	}
	return append([]string(nil), r.session.pending...), true
}

// BeginReorder opens a session dragging id. Ignored when id is unknown or a
// session is already open.
func (r *Reorder) BeginReorder(id string) bool {
	r.mu.Lock()
	if r.session != nil || !r.group.Has(id) {
		r.mu.Unlock()
		return false
	}
	r.session = &reorderSession{
		dragged: id,
		origin:  r.group.Order(),
		lease:   acquire(r.capture),
	}
	r.mu.Unlock()
	r.observer.SessionStarted(SessionReorder, id)
	return true
}

// OnHoverTarget previews moving the dragged panel into target's position in
// the order captured by BeginReorder. Hovering the dragged panel itself, an
// unknown id, or a panel added after the drag began clears the preview.
func (r *Reorder) OnHoverTarget(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session
	if s == nil {
		return
	}
	if target == s.dragged || !r.group.Has(target) {
		s.pending = nil
		return
	}
	from, to := indexOf(s.origin, s.dragged), indexOf(s.origin, target)
	if from < 0 || to < 0 {
		s.pending = nil
		return
	}
	s.pending = Move(s.origin, from, to)
}

// Commit applies the pending preview, if any, and closes the session. If the
// group's membership changed during the drag the preview no longer fits;
// Commit then returns ErrInvalidPermutation and the order is unchanged.
func (r *Reorder) Commit() error {
	r.mu.Lock()
	s := r.session
	if s == nil {
		r.mu.Unlock()
		return nil
	}
	r.session = nil
	var err error
	if s.pending != nil {
		err = r.group.SetOrder(s.pending)
	}
	r.mu.Unlock()
	s.lease.Release()
	outcome := OutcomeCommitted
	if err != nil {
		outcome = OutcomeAborted
	}
	r.observer.SessionEnded(SessionReorder, outcome)
	return err
}

// Cancel discards any preview and closes the session.
func (r *Reorder) Cancel() {
	r.mu.Lock()
	s := r.session
	if s == nil {
		r.mu.Unlock()
		return
	}
	r.session = nil
	r.mu.Unlock()
	s.lease.Release()
	r.observer.SessionEnded(SessionReorder, OutcomeCancelled)
}

// Close tears down any open session as a cancel.
func (r *Reorder) Close() {
	r.Cancel()
}

// Origin returns the order captured when the session began.
func (r *Reorder) Origin() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil
	}
	return append([]string(nil), r.session.origin...)
}

// Move returns a copy of ids with the element at from moved to index to.
// The element is removed first, so indices after from shift down by one
// before it is reinserted. Out-of-range indices return an unchanged copy.
func Move(ids []string, from, to int) []string {
	out := append([]string(nil), ids...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	v := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{v}, out[to:]...)...)
	return out
}
