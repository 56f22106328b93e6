package content

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"paneldeck/internal/ui"
)

const terminalWelcome = `Welcome to the terminal. Type "help" for available commands.`

const terminalHelp = `Available commands:
  help          show this help
  clear         clear the terminal
  echo [text]   print text
  date          show the current date and time
  calc [expr]   evaluate arithmetic, e.g. calc (2+3)*4
  history       show command history
  about         about this terminal`

// TerminalView is a simulated terminal: a scrollback viewport above a
// prompt. Nothing is executed on the host.
type TerminalView struct {
	scroll  viewport.Model
	prompt  textinput.Model
	lines   []string
	history []string
	recall  int // -1 when not browsing history
	now     func() time.Time
}

var (
	_ ui.View    = (*TerminalView)(nil)
	_ ui.Focuser = (*TerminalView)(nil)
	_ ui.Sizer   = (*TerminalView)(nil)
)

// NewTerminalView creates a terminal showing the welcome line.
func NewTerminalView(now func() time.Time) *TerminalView {
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.Prompt = "$ "
	ti.Placeholder = "press i to type"
	t := &TerminalView{
		scroll: viewport.New(40, 5),
		prompt: ti,
		lines:  []string{terminalWelcome},
		recall: -1,
		now:    now,
	}
	t.refresh()
	return t
}

// Init implements ui.View.
func (t *TerminalView) Init() tea.Cmd { return nil }

// Update implements ui.View.
func (t *TerminalView) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		t.scroll, cmd = t.scroll.Update(msg)
		return t, cmd
	}
	if !t.prompt.Focused() {
		return t, nil
	}
	switch k.Type {
	case tea.KeyEnter:
		t.Exec(t.prompt.Value())
		t.prompt.SetValue("")
		return t, nil
	case tea.KeyUp:
		t.browse(1)
		return t, nil
	case tea.KeyDown:
		t.browse(-1)
		return t, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		t.scroll, cmd = t.scroll.Update(msg)
		return t, cmd
	}
	var cmd tea.Cmd
	t.prompt, cmd = t.prompt.Update(msg)
	return t, cmd
}

// browse steps through history; step 1 is older, -1 newer.
func (t *TerminalView) browse(step int) {
	if len(t.history) == 0 {
		return
	}
	i := t.recall + step
	if i < -1 {
		i = -1
	}
	if i >= len(t.history) {
		i = len(t.history) - 1
	}
	t.recall = i
	if i < 0 {
		t.prompt.SetValue("")
		return
	}
	t.prompt.SetValue(t.history[len(t.history)-1-i])
	t.prompt.CursorEnd()
}

// Exec runs one command line and appends its output.
func (t *TerminalView) Exec(line string) {
	line = strings.TrimSpace(line)
	t.recall = -1
	if line == "" {
		return
	}
	if line == "clear" {
		t.history = append(t.history, line)
		t.lines = nil
		t.refresh()
		return
	}

	var out string
	name, arg, _ := strings.Cut(line, " ")
	switch name {
	case "help":
		out = terminalHelp
	case "date":
		out = t.now().Format(time.RFC1123)
	case "history":
		out = strings.Join(t.history, "\n")
	case "about":
		out = "paneldeck terminal: a simulated shell"
	case "echo":
		out = arg
	case "calc":
		v, err := Calc(arg)
		if err != nil {
			out = "Error: " + err.Error()
		} else {
			out = strconv.FormatFloat(v, 'g', -1, 64)
		}
	default:
		out = fmt.Sprintf("Command not found: %s. Type \"help\" for available commands.", line)
	}
	t.history = append(t.history, line)
	t.lines = append(t.lines, "$ "+line)
	if out != "" {
		t.lines = append(t.lines, strings.Split(out, "\n")...)
	}
	t.refresh()
}

func (t *TerminalView) refresh() {
	t.scroll.SetContent(strings.Join(t.lines, "\n"))
	t.scroll.GotoBottom()
}

// View implements ui.View.
func (t *TerminalView) View() string {
	return t.scroll.View() + "\n" + t.prompt.View()
}

// Focus implements ui.Focuser.
func (t *TerminalView) Focus() tea.Cmd { return t.prompt.Focus() }

// Blur implements ui.Focuser.
func (t *TerminalView) Blur() { t.prompt.Blur() }

// SetSize implements ui.Sizer. One row is kept for the prompt.
func (t *TerminalView) SetSize(w, h int) {
	if w < 1 || h < 2 {
		return
	}
	t.scroll.Width = w
	t.scroll.Height = h - 1
	t.prompt.Width = w - len(t.prompt.Prompt) - 1
	t.refresh()
}

// Lines returns the scrollback.
func (t *TerminalView) Lines() []string {
	return append([]string(nil), t.lines...)
}

// ErrBadExpression is returned by Calc for anything but arithmetic on
// number literals.
var ErrBadExpression = errors.New("unsupported expression")

// Calc evaluates an arithmetic expression of number literals with + - * /
// and parentheses.
func Calc(expr string) (float64, error) {
	e, err := parser.ParseExpr(expr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBadExpression, expr)
	}
	return eval(e)
}

func eval(e ast.Expr) (float64, error) {
	switch e := e.(type) {
	case *ast.BasicLit:
		if e.Kind != token.INT && e.Kind != token.FLOAT {
			return 0, fmt.Errorf("%w: %s", ErrBadExpression, e.Value)
		}
		return strconv.ParseFloat(e.Value, 64)
	case *ast.ParenExpr:
		return eval(e.X)
	case *ast.UnaryExpr:
		v, err := eval(e.X)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case token.SUB:
			return -v, nil
		case token.ADD:
			return v, nil
		}
	case *ast.BinaryExpr:
		x, err := eval(e.X)
		if err != nil {
			return 0, err
		}
		y, err := eval(e.Y)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case token.ADD:
			return x + y, nil
		case token.SUB:
			return x - y, nil
		case token.MUL:
			return x * y, nil
		case token.QUO:
			if y == 0 {
				return 0, errors.New("division by zero")
			}
			return x / y, nil
		}
	}
	return 0, ErrBadExpression
}
