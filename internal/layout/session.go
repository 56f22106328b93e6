package layout

// SessionState is the state of a gesture controller.
type SessionState int

const (
	Idle SessionState = iota
	Active
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Active:
		return "Active"
	default:
		return "Unknown"
	}
}

// SessionKind identifies which controller owns a session.
type SessionKind int

const (
	SessionResize SessionKind = iota
	SessionReorder
)

func (k SessionKind) String() string {
	switch k {
	case SessionResize:
		return "resize"
	case SessionReorder:
		return "reorder"
	default:
		return "unknown"
	}
}

// Outcome describes how a session left the Active state.
type Outcome int

const (
	// OutcomeCommitted means the gesture finished normally (pointer up, drop).
	OutcomeCommitted Outcome = iota
	// OutcomeCancelled means the pre-session state was restored.
	OutcomeCancelled
	// OutcomeAborted means the session was torn down because a panel it
	// referenced disappeared.
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Capture is the input resource a session holds while it is active, such as
// pointer capture or a global move/up listener. Acquire is called exactly once
// when a session begins and the returned release func is called exactly once
// when it ends, whichever exit path is taken.
type Capture interface {
	Acquire() (release func())
}

// CaptureFunc adapts a function to Capture.
type CaptureFunc func() (release func())

// Acquire implements Capture.
func (f CaptureFunc) Acquire() func() { return f() }

// NopCapture acquires nothing.
type NopCapture struct{}

// Acquire implements Capture.
func (NopCapture) Acquire() func() { return func() {} }

// SessionObserver is notified when sessions start and end.
type SessionObserver interface {
	SessionStarted(kind SessionKind, ids ...string)
	SessionEnded(kind SessionKind, outcome Outcome)
}

type nopObserver struct{}

func (nopObserver) SessionStarted(SessionKind, ...string) {}
func (nopObserver) SessionEnded(SessionKind, Outcome)     {}

// lease tracks an acquired Capture so release runs at most once.
type lease struct {
	release func()
}

func acquire(c Capture) *lease {
	if c == nil {
		c = NopCapture{}
	}
	return &lease{release: c.Acquire()}
}

func (l *lease) Release() {
	if l == nil || l.release == nil {
		return
	}
	r := l.release
	l.release = nil
	r()
}
