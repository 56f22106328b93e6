package ui

// AppMode is the top-level presentation mode.
type AppMode int

const (
	// ModeGroup shows every panel in the group with dividers.
	ModeGroup AppMode = iota
	// ModeMaximized shows one panel filling the body.
	ModeMaximized
	// ModeEmpty shows the welcome card.
	ModeEmpty
)

func (m AppMode) String() string {
	switch m {
	case ModeGroup:
		return "Group"
	case ModeMaximized:
		return "Maximized"
	case ModeEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// ViewMode caps the body width like the device presets of a browser dashboard.
type ViewMode string

const (
	ViewDesktop ViewMode = "desktop"
	ViewTablet  ViewMode = "tablet"
	ViewMobile  ViewMode = "mobile"
)

// MaxWidth returns the body width cap in cells; 0 means no cap.
func (v ViewMode) MaxWidth() int {
	switch v {
	case ViewTablet:
		return 100
	case ViewMobile:
		return 48
	default:
		return 0
	}
}

// ParseViewMode returns the mode for s, defaulting to desktop.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(s) {
	case ViewTablet, ViewMobile:
		return ViewMode(s)
	default:
		return ViewDesktop
	}
}
