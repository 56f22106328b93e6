package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, focused borders
	ColorHighlight = "205" // Magenta - dragged panel, active divider
	ColorMuted     = "241" // Gray - hints, idle dividers
	ColorText      = "252" // Light gray - normal text on dark
	ColorInk       = "235" // Near black - normal text on light
	ColorBorder    = "238" // Dark gray - idle borders on dark
	ColorPaper     = "250" // Light gray - idle borders on light
)

// Theme holds the styles for one color scheme.
type Theme struct {
	Dark bool

	Header       lipgloss.Style
	Title        lipgloss.Style // panel title text
	TitleFocused lipgloss.Style
	Grip         lipgloss.Style

	Frame        lipgloss.Style // panel border, idle
	FrameFocused lipgloss.Style
	FrameDragged lipgloss.Style // panel being dragged for reorder
	FrameTarget  lipgloss.Style // panel under the drag

	Divider       lipgloss.Style
	DividerActive lipgloss.Style

	Normal  lipgloss.Style
	Muted   lipgloss.Style
	HelpKey lipgloss.Style
	HelpBox lipgloss.Style
	Welcome lipgloss.Style
}

// NewTheme returns the dark or light theme.
func NewTheme(dark bool) Theme {
	text, border := ColorText, ColorBorder
	if !dark {
		text, border = ColorInk, ColorPaper
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border))
	return Theme{
		Dark: dark,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccent)),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)),
		TitleFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccent)),
		Grip: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)),
		Frame:        frame,
		FrameFocused: frame.BorderForeground(lipgloss.Color(ColorAccent)),
		FrameDragged: frame.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(ColorHighlight)),
		FrameTarget:  frame.Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(ColorHighlight)),
		Divider: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)),
		DividerActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorHighlight)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorHighlight)),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccent)).
			Padding(0, 1),
		Welcome: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorHighlight)).
			Padding(1, 2),
	}
}
