package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"paneldeck/internal/ui"
)

// DefaultCountdown is the length of a new countdown.
const DefaultCountdown = 5 * time.Minute

// CountdownView counts down from a fixed duration. In insert mode space
// pauses or resumes, r restarts, + and - add or remove a minute.
type CountdownView struct {
	timer    timer.Model
	duration time.Duration
	focused  bool
}

var (
	_ ui.View    = (*CountdownView)(nil)
	_ ui.Focuser = (*CountdownView)(nil)
)

// NewCountdownView creates a countdown of d. It starts ticking on Init.
func NewCountdownView(d time.Duration) *CountdownView {
	if d <= 0 {
		d = DefaultCountdown
	}
	return &CountdownView{timer: timer.New(d), duration: d}
}

// Init implements ui.View.
func (c *CountdownView) Init() tea.Cmd { return c.timer.Init() }

// Update implements ui.View. Timer messages for other countdowns are
// ignored by the timer itself.
func (c *CountdownView) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if !c.focused {
			return c, nil
		}
		switch k.String() {
		case " ":
			return c, c.timer.Toggle()
		case "r":
			return c, c.restart(c.duration)
		case "+":
			return c, c.restart(c.timer.Timeout + time.Minute)
		case "-":
			if c.timer.Timeout > time.Minute {
				return c, c.restart(c.timer.Timeout - time.Minute)
			}
		}
		return c, nil
	}
	var cmd tea.Cmd
	c.timer, cmd = c.timer.Update(msg)
	return c, cmd
}

func (c *CountdownView) restart(d time.Duration) tea.Cmd {
	c.timer = timer.New(d)
	return c.timer.Init()
}

// View implements ui.View.
func (c *CountdownView) View() string {
	var b strings.Builder
	b.WriteString(formatClock(c.timer.Timeout))
	b.WriteByte('\n')
	switch {
	case c.timer.Timedout():
		b.WriteString("Time's up!")
	case c.timer.Running():
		b.WriteString("running")
	default:
		b.WriteString("paused")
	}
	if c.focused {
		b.WriteString("\nspace: pause  r: restart  +/-: minute")
	}
	return b.String()
}

// Focus implements ui.Focuser.
func (c *CountdownView) Focus() tea.Cmd {
	c.focused = true
	return nil
}

// Blur implements ui.Focuser.
func (c *CountdownView) Blur() { c.focused = false }

// Remaining returns the time left.
func (c *CountdownView) Remaining() time.Duration { return c.timer.Timeout }

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
