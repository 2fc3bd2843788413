package platform

import "image"

// WindowLister reads window metadata (title, owner, bounds) from the OS.
type WindowLister interface {
	// ListWindows returns every on-screen window, unfiltered.
	ListWindows() ([]RawWindow, error)
}

// Screenshotter enumerates capturable windows and monitors.
type Screenshotter interface {
	// Windows returns a snapshot of the windows that can be captured.
	Windows() ([]WindowHandle, error)

	// Monitors returns the active monitors in platform order.
	Monitors() ([]MonitorHandle, error)
}

// WindowHandle is a native window that can be captured.
type WindowHandle interface {
	ID() string
	Capture() (image.Image, error)
}

// MonitorHandle is a native monitor that can be captured.
type MonitorHandle interface {
	Capture() (image.Image, error)
}
