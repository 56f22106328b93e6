package ui

import "paneldeck/internal/layout"

// pointerCapture routes pointer motion and release to the gesture that owns
// the pointer. A session acquires it in Begin and releases it on every exit,
// so motion after a finished gesture never reaches a controller.
type pointerCapture struct {
	owner    layout.SessionKind
	held     bool
	acquired int
	released int
}

func (c *pointerCapture) forKind(kind layout.SessionKind) layout.Capture {
	return layout.CaptureFunc(func() func() {
		c.owner = kind
		c.held = true
		c.acquired++
		return func() {
			c.held = false
			c.released++
		}
	})
}

// Held reports whether a session owns the pointer, and which kind.
func (c *pointerCapture) Held() (layout.SessionKind, bool) {
	return c.owner, c.held
}
