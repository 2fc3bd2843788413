package platform

import "strconv"

// Bounds represents a screen rectangle.
type Bounds struct {
	X, Y, Width, Height int
}

// RawWindow is a window as reported by the OS, before any filtering.
// Title and Owner are empty when the OS does not expose them.
type RawWindow struct {
	ID     string
	Title  string
	Owner  string
	Bounds Bounds
}

// FormatWindowID renders a numeric native window ID as an opaque string ID.
func FormatWindowID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
