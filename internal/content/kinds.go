// Package content provides the views mounted inside dashboard panels. The
// layout engine treats them as opaque; only the panel kind and title are
// persisted.
package content

import (
	"github.com/google/uuid"

	"paneldeck/internal/ui"
)

// Kind identifies a kind of panel content. Its string form is what the
// store persists as a descriptor's type.
type Kind string

const (
	Web          Kind = "web"
	Photo        Kind = "photo"
	AI           Kind = "ai"
	Essay        Kind = "essay"
	Game         Kind = "game"
	Notes        Kind = "notes"
	Terminal     Kind = "terminal"
	Code         Kind = "code"
	EnhancedCode Kind = "enhanced-code"
	Countdown    Kind = "countdown"
	BrowserAI    Kind = "browser-ai"
	Screenshot   Kind = "screenshot"
	Inspector    Kind = "inspector"
	Calories     Kind = "calories"
	Shell        Kind = "shell"
)

// UnknownTitle is shown for kinds this build does not know.
const UnknownTitle = "New Panel"

type kindInfo struct {
	kind  Kind
	title string
	key   string
	blurb string
}

// kinds is in menu order.
var kinds = []kindInfo{
	{Web, "Web Browser", "w", "Browse a page by URL."},
	{Photo, "Photo Gallery", "p", "Flip through a set of images."},
	{AI, "AI Assistant", "a", "Ask questions and get answers."},
	{Essay, "Essay Detector", "e", "Check a text for generated writing."},
	{Game, "Game", "g", "Embed a game."},
	{Notes, "Notes", "n", ""},
	{Terminal, "Terminal", "t", ""},
	{Code, "Code Editor", "c", "Edit a snippet with highlighting."},
	{EnhancedCode, "Enhanced Code Editor", "C", "Edit and run snippets in several languages."},
	{Countdown, "Countdown", "d", ""},
	{BrowserAI, "Browser AI", "b", "Ask about the page you are browsing."},
	{Screenshot, "Screenshot Tool", "s", "Capture a page as an image."},
	{Inspector, "Website Inspector", "i", "Inspect a page's structure and headers."},
	{Calories, "Calorie Tracker", "k", "Log meals against a daily goal."},
	{Shell, "Shell", "S", ""},
}

func lookup(k Kind) (kindInfo, bool) {
	for _, info := range kinds {
		if info.kind == k {
			return info, true
		}
	}
	return kindInfo{}, false
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	info, ok := lookup(Kind(s))
	return info.kind, ok
}

// Title returns the default panel title for k, or UnknownTitle.
func (k Kind) Title() string {
	if info, ok := lookup(k); ok {
		return info.title
	}
	return UnknownTitle
}

// Kinds lists every known kind in menu order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	for i, info := range kinds {
		out[i] = info.kind
	}
	return out
}

// Catalog describes every kind for the dashboard's add menu.
func Catalog() []ui.PanelKind {
	out := make([]ui.PanelKind, 0, len(kinds))
	for _, info := range kinds {
		out = append(out, ui.PanelKind{Name: string(info.kind), Title: info.title, Key: info.key})
	}
	return out
}

// NewID returns a fresh panel id.
func NewID() string {
	return uuid.NewString()
}
