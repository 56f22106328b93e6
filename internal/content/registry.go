package content

import (
	"time"

	"github.com/charmbracelet/log"

	"paneldeck/internal/pty"
	"paneldeck/internal/ui"
)

// Registry builds panel content by kind.
type Registry struct {
	// Countdown is the starting duration of countdown panels.
	Countdown time.Duration
	// Starter runs shell panels; nil leaves them showing an error.
	Starter pty.Starter
	// Shell is the program shell panels run; empty uses pty.DefaultShell.
	Shell  string
	Now    func() time.Time
	Logger *log.Logger
}

// NewRegistry returns a registry with default settings.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		Countdown: DefaultCountdown,
		Starter:   pty.Creack{},
		Now:       time.Now,
		Logger:    logger,
	}
}

// New returns a fresh view for kind. Unknown kinds get a placeholder.
func (r *Registry) New(kind string) ui.View {
	switch Kind(kind) {
	case Notes:
		return NewNotesView()
	case Countdown:
		return NewCountdownView(r.Countdown)
	case Terminal:
		return NewTerminalView(r.Now)
	case Shell:
		return NewShellView(r.Starter, r.Shell, r.Logger)
	}
	return &PlaceholderView{Kind: Kind(kind)}
}

// Factory adapts r to ui.ContentFactory.
func (r *Registry) Factory() ui.ContentFactory {
	return r.New
}
