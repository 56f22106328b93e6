package content

import (
	"bytes"
	"os/exec"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"paneldeck/internal/pty"
	"paneldeck/internal/ui"
)

// shellOutputMsg carries bytes read from one shell panel's terminal.
type shellOutputMsg struct {
	from *ShellView
	data []byte
}

// shellExitedMsg reports that a shell's terminal closed.
type shellExitedMsg struct {
	from *ShellView
}

// ShellView runs the user's shell on a pseudo-terminal and shows its
// output. Keys are written to the terminal in insert mode.
type ShellView struct {
	starter pty.Starter
	shell   string
	logger  *log.Logger

	term     pty.Terminal
	out      chan []byte
	done     chan struct{}
	content  bytes.Buffer
	scroll   viewport.Model
	size     pty.Size
	focused  bool
	exited   bool
	startErr error
}

var (
	_ ui.View    = (*ShellView)(nil)
	_ ui.Focuser = (*ShellView)(nil)
	_ ui.Sizer   = (*ShellView)(nil)
)

// NewShellView creates a shell panel. The process starts on Init.
func NewShellView(starter pty.Starter, shell string, logger *log.Logger) *ShellView {
	if shell == "" {
		shell = pty.DefaultShell()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ShellView{
		starter: starter,
		shell:   shell,
		logger:  logger,
		scroll:  viewport.New(40, 8),
		size:    pty.Size{Rows: 8, Cols: 40},
	}
}

// Init implements ui.View. It spawns the shell and starts reading.
func (s *ShellView) Init() tea.Cmd {
	if s.term != nil || s.starter == nil {
		return nil
	}
	term, err := s.starter.Start(exec.Command(s.shell), s.size)
	if err != nil {
		s.startErr = err
		s.logger.Warn("shell start failed", "shell", s.shell, "err", err)
		s.content.WriteString("Failed to start " + s.shell + ": " + err.Error() + "\n")
		s.refresh()
		return nil
	}
	s.term = term
	s.out = make(chan []byte, 64)
	s.done = make(chan struct{})
	go s.readLoop(term, s.out, s.done)
	return s.waitForOutput()
}

func (s *ShellView) readLoop(term pty.Terminal, out chan<- []byte, done <-chan struct{}) {
	defer close(out)
	buf := make([]byte, 1024)
	for {
		n, err := term.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			select {
			case out <- cp:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *ShellView) waitForOutput() tea.Cmd {
	out := s.out
	return func() tea.Msg {
		data, ok := <-out
		if !ok {
			return shellExitedMsg{from: s}
		}
		return shellOutputMsg{from: s, data: data}
	}
}

// Update implements ui.View.
func (s *ShellView) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	switch msg := msg.(type) {
	case shellOutputMsg:
		if msg.from != s {
			return s, nil
		}
		s.content.Write(msg.data)
		s.refresh()
		return s, s.waitForOutput()
	case shellExitedMsg:
		if msg.from == s {
			s.exited = true
			s.content.WriteString("\n[process exited]\n")
			s.refresh()
		}
		return s, nil
	case tea.KeyMsg:
		if !s.focused || s.term == nil || s.exited {
			return s, nil
		}
		if b := keyBytes(msg); len(b) > 0 {
			if _, err := s.term.Write(b); err != nil {
				s.logger.Debug("shell write failed", "err", err)
			}
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.scroll, cmd = s.scroll.Update(msg)
	return s, cmd
}

func (s *ShellView) refresh() {
	s.scroll.SetContent(s.content.String())
	s.scroll.GotoBottom()
}

// View implements ui.View.
func (s *ShellView) View() string { return s.scroll.View() }

// Focus implements ui.Focuser.
func (s *ShellView) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur implements ui.Focuser.
func (s *ShellView) Blur() { s.focused = false }

// SetSize implements ui.Sizer and resizes the terminal to match.
func (s *ShellView) SetSize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	size := pty.Size{Rows: uint16(h), Cols: uint16(w)}
	if size == s.size {
		return
	}
	s.size = size
	s.scroll.Width, s.scroll.Height = w, h
	if s.term != nil && !s.exited {
		if err := s.term.Resize(size); err != nil {
			s.logger.Debug("shell resize failed", "err", err)
		}
	}
	s.refresh()
}

// Close stops the shell. It is called when the panel is removed.
func (s *ShellView) Close() error {
	if s.term == nil {
		return nil
	}
	select {
	case <-s.done:
		return nil
	default:
		close(s.done)
	}
	return s.term.Close()
}

// keyBytes converts a key to the bytes a terminal expects.
func keyBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	}
	return nil
}

// Err returns the error from starting the shell, if any.
func (s *ShellView) Err() error { return s.startErr }
