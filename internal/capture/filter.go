package capture

import (
	"strings"

	"github.com/mj1618/desktop-vision/internal/model"
	"github.com/mj1618/desktop-vision/internal/platform"
)

const (
	untitledPlaceholder   = "(Untitled)"
	unknownAppPlaceholder = "Unknown"
	unknownPlaceholder    = "(Unknown)"
)

// Filter drops windows that are not user content.
type Filter struct {
	// ExcludeOwners are exact owner names, e.g. the macOS WindowManager process.
	ExcludeOwners []string
	// ExcludeTitleSubstrings match system overlays by title.
	ExcludeTitleSubstrings []string
	MinWidth               int
	MinHeight              int
}

// DefaultFilter returns the filter used when none is configured.
func DefaultFilter() Filter {
	return Filter{
		ExcludeOwners:          []string{"WindowManager"},
		ExcludeTitleSubstrings: []string{"Gesture Blocking Overlay"},
		MinWidth:               50,
		MinHeight:              50,
	}
}

// Keep reports whether w survives the filter chain: owner, then title, then size.
func (f Filter) Keep(w platform.RawWindow) bool {
	for _, owner := range f.ExcludeOwners {
		if w.Owner == owner {
			return false
		}
	}
	for _, sub := range f.ExcludeTitleSubstrings {
		if sub != "" && strings.Contains(w.Title, sub) {
			return false
		}
	}
	if w.Bounds.Width < f.MinWidth || w.Bounds.Height < f.MinHeight {
		return false
	}
	return true
}

// Apply filters raw and maps the survivors to model windows, preserving order.
func (f Filter) Apply(raw []platform.RawWindow) []model.Window {
	windows := make([]model.Window, 0, len(raw))
	for _, w := range raw {
		if !f.Keep(w) {
			continue
		}
		windows = append(windows, toModelWindow(w))
	}
	return windows
}

func toModelWindow(w platform.RawWindow) model.Window {
	title := w.Title
	if title == "" {
		title = untitledPlaceholder
	}
	app := w.Owner
	if app == "" {
		app = unknownAppPlaceholder
	}
	return model.Window{
		ID:    w.ID,
		Title: title,
		App:   app,
		Bounds: model.Bounds{
			X:      w.Bounds.X,
			Y:      w.Bounds.Y,
			Width:  w.Bounds.Width,
			Height: w.Bounds.Height,
		},
		Display: displayIndex(w.Bounds),
	}
}

// displayIndex guesses the display of a window: 0 when it starts at a
// non-negative x, 1 otherwise. Only meaningful for up to two monitors laid
// out left to right from the origin.
func displayIndex(b platform.Bounds) int {
	if b.X >= 0 {
		return 0
	}
	return 1
}
