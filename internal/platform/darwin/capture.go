//go:build darwin && cgo

package darwin

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/mj1618/desktop-vision/internal/platform"
)

// Screenshotter implements platform.Screenshotter for macOS. Windows are
// captured with screencapture, displays with CoreGraphics.
type Screenshotter struct {
	lister *Lister
}

// Windows returns a handle per on-screen application window.
func (s *Screenshotter) Windows() ([]platform.WindowHandle, error) {
	windows, err := s.lister.ListWindows()
	if err != nil {
		return nil, err
	}
	handles := make([]platform.WindowHandle, len(windows))
	for i, w := range windows {
		handles[i] = windowHandle(w.ID)
	}
	return handles, nil
}

// Monitors returns the active displays, main display first.
func (s *Screenshotter) Monitors() ([]platform.MonitorHandle, error) {
	n := screenshot.NumActiveDisplays()
	handles := make([]platform.MonitorHandle, n)
	for i := range handles {
		handles[i] = monitorHandle(i)
	}
	return handles, nil
}

type windowHandle string

func (h windowHandle) ID() string { return string(h) }

func (h windowHandle) Capture() (image.Image, error) {
	return captureWindowImage(context.Background(), string(h))
}

type monitorHandle int

func (h monitorHandle) Capture() (image.Image, error) {
	img, err := screenshot.CaptureDisplay(int(h))
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", int(h), err)
	}
	return img, nil
}
