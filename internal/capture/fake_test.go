package capture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/mj1618/desktop-vision/internal/platform"
)

type fakeWindow struct {
	id  string
	img image.Image
	err error
}

func (w fakeWindow) ID() string { return w.id }

func (w fakeWindow) Capture() (image.Image, error) { return w.img, w.err }

type fakeMonitor struct {
	img image.Image
	err error
}

func (m fakeMonitor) Capture() (image.Image, error) { return m.img, m.err }

// fakeDesktop implements both platform collaborators.
type fakeDesktop struct {
	raw      []platform.RawWindow
	windows  []platform.WindowHandle
	monitors []platform.MonitorHandle
	listErr  error
	winErr   error
	monErr   error

	listCalls int
	winCalls  int
}

func (d *fakeDesktop) ListWindows() ([]platform.RawWindow, error) {
	d.listCalls++
	return d.raw, d.listErr
}

func (d *fakeDesktop) Windows() ([]platform.WindowHandle, error) {
	d.winCalls++
	return d.windows, d.winErr
}

func (d *fakeDesktop) Monitors() ([]platform.MonitorHandle, error) {
	return d.monitors, d.monErr
}

func (d *fakeDesktop) provider() *platform.Provider {
	return &platform.Provider{Lister: d, Screenshotter: d}
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var errCaptureFailed = errors.New("CGWindowListCreateImage failed")

// twoWindowDesktop has a capturable Safari window "101", a Terminal window
// "202" whose capture fails, and two 40x30 monitors.
func twoWindowDesktop() *fakeDesktop {
	return &fakeDesktop{
		raw: []platform.RawWindow{
			{ID: "101", Title: "GitHub", Owner: "Safari", Bounds: platform.Bounds{X: 0, Y: 25, Width: 1200, Height: 800}},
			{ID: "202", Title: "", Owner: "Terminal", Bounds: platform.Bounds{X: -1440, Y: 0, Width: 800, Height: 600}},
		},
		windows: []platform.WindowHandle{
			fakeWindow{id: "101", img: solid(20, 10, color.RGBA{R: 255, A: 255})},
			fakeWindow{id: "202", err: errCaptureFailed},
		},
		monitors: []platform.MonitorHandle{
			fakeMonitor{img: solid(40, 30, color.RGBA{G: 255, A: 255})},
			fakeMonitor{img: solid(40, 30, color.RGBA{B: 255, A: 255})},
		},
	}
}

func newTestService(t *testing.T, d *fakeDesktop) *Service {
	t.Helper()
	return NewService(d.provider(), Options{Filter: DefaultFilter(), OutputDir: t.TempDir()})
}

// decodePNG fails the test unless path holds a valid PNG.
func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("%s is not a valid PNG: %v", path, err)
	}
	return img
}

func wantKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("kind = %s, want %s (message %q)", e.Kind, kind, e.Message)
	}
	return e
}
