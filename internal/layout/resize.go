package layout

import (
	"math"
	"sync"
)

// DefaultSensitivity is the pointer travel that redistributes the whole
// combined weight of the two panels around a divider.
const DefaultSensitivity = 500.0

// ResizerOption configures a Resizer.
type ResizerOption func(*Resizer)

// WithSensitivity sets the pointer travel that maps to the full pair total.
func WithSensitivity(s float64) ResizerOption {
	return func(r *Resizer) { r.setSensitivity(s) }
}

// WithCapture sets the input resource held for the life of each session.
func WithCapture(c Capture) ResizerOption {
	return func(r *Resizer) { r.capture = c }
}

// WithResizeObserver sets the session observer.
func WithResizeObserver(o SessionObserver) ResizerOption {
	return func(r *Resizer) { r.observer = o }
}

type resizeSession struct {
	before, after           string
	total                   float64
	startBefore, startAfter float64
	lease                   *lease
}

// Resizer turns a divider drag into a redistribution of weight between the
// two panels on either side of it. The combined weight of the pair is fixed
// when the session begins and conserved by every Move.
type Resizer struct {
	group       *Group
	sensitivity float64
	capture     Capture
	observer    SessionObserver

	mu      sync.Mutex
	session *resizeSession
}

// NewResizer creates a Resizer acting on g.
func NewResizer(g *Group, opts ...ResizerOption) *Resizer {
	r := &Resizer{
		group:       g,
		sensitivity: DefaultSensitivity,
		capture:     NopCapture{},
		observer:    nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}
	return r
}

// SetSensitivity changes the sensitivity for subsequent moves. Non-positive
// values are ignored.
func (r *Resizer) SetSensitivity(s float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setSensitivity(s)
}

func (r *Resizer) setSensitivity(s float64) {
	if s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s) {
		r.sensitivity = s
	}
}

// Sensitivity returns the current sensitivity.
func (r *Resizer) Sensitivity() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sensitivity
}

// State returns Active while a session is open.
func (r *Resizer) State() SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		return Active
	}
	return Idle
}

// Active returns the pair being resized.
func (r *Resizer) Active() (before, after string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return "", "", false
	}
	return r.session.before, r.session.after, true
}

// Begin opens a resize session for the divider between before and after.
// It is ignored while another session is open, when either id is unknown, or
// when the two panels are not adjacent in the current order.
func (r *Resizer) Begin(before, after string) bool {
	r.mu.Lock()
	if r.session != nil {
		r.mu.Unlock()
		return false
	}
	if !r.group.Has(before) || !r.group.Has(after) || !r.group.Adjacent(before, after) {
		r.mu.Unlock()
		return false
	}
	wb, wa := r.group.Weight(before), r.group.Weight(after)
	r.session = &resizeSession{
		before:      before,
		after:       after,
		total:       wb + wa,
		startBefore: wb,
		startAfter:  wa,
		lease:       acquire(r.capture),
	}
	r.mu.Unlock()
	r.observer.SessionStarted(SessionResize, before, after)
	return true
}

// Move applies a pointer movement of delta along the group's axis. Positive
// delta grows the panel before the divider. No-op when no session is open.
func (r *Resizer) Move(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	r.mu.Lock()
	s := r.session
	if s == nil {
		r.mu.Unlock()
		return
	}
	floor := r.group.Floor()
	ratio := delta / r.sensitivity
	newBefore := r.group.Weight(s.before) + ratio*s.total
	newBefore = math.Max(floor, math.Min(newBefore, s.total-floor))
	newAfter := s.total - newBefore
	if !r.group.setPair(s.before, newBefore, s.after, newAfter) {
		r.session = nil
		r.mu.Unlock()
		s.lease.Release()
		r.observer.SessionEnded(SessionResize, OutcomeAborted)
		return
	}
	r.mu.Unlock()
}

// End closes the session, keeping the current weights. Idempotent.
func (r *Resizer) End() {
	r.finish(OutcomeCommitted)
}

// Cancel restores the weights the pair held when the session began and
// closes the session.
func (r *Resizer) Cancel() {
	r.finish(OutcomeCancelled)
}

// Close tears down any open session as a cancel. Hosts call it when the
// surface owning the dividers goes away.
func (r *Resizer) Close() {
	r.Cancel()
}

func (r *Resizer) finish(outcome Outcome) {
	r.mu.Lock()
	s := r.session
	if s == nil {
		r.mu.Unlock()
		return
	}
	r.session = nil
	if outcome == OutcomeCancelled {
		if !r.group.setPair(s.before, s.startBefore, s.after, s.startAfter) {
			// One side is gone; restore whatever is left.
			r.group.SetWeight(s.before, s.startBefore)
			r.group.SetWeight(s.after, s.startAfter)
		}
	}
	r.mu.Unlock()
	s.lease.Release()
	r.observer.SessionEnded(SessionResize, outcome)
}
