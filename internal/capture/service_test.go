package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mj1618/desktop-vision/internal/model"
	"github.com/mj1618/desktop-vision/internal/platform"
)

func TestListWindows(t *testing.T) {
	d := twoWindowDesktop()
	d.raw = append(d.raw, platform.RawWindow{ID: "303", Owner: "WindowManager", Bounds: platform.Bounds{Width: 1920, Height: 1080}})
	s := newTestService(t, d)

	res, err := s.ListWindows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(res.Windows))
	}
	if res.Windows[1].Title != "(Untitled)" || res.Windows[1].Display != 1 {
		t.Errorf("window 202 = %+v", res.Windows[1])
	}
}

func TestListWindows_Idempotent(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())
	first, err := s.ListWindows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.ListWindows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two listings differ:\n%+v\n%+v", first, second)
	}
}

func TestListWindows_Failure(t *testing.T) {
	d := twoWindowDesktop()
	d.listErr = errors.New("failed to enumerate windows")
	s := newTestService(t, d)

	_, err := s.ListWindows(context.Background())
	e := wantKind(t, err, KindInternal)
	if e.Message != "Failed to list windows: failed to enumerate windows" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestCaptureWindow_DefaultPath(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	res, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{WindowID: "101"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Error("success should be true")
	}
	if want := filepath.Join(s.outputDir, "screenshot_101.png"); res.FilePath != want {
		t.Errorf("file_path = %q, want %q", res.FilePath, want)
	}
	decodePNG(t, res.FilePath)
	if res.Window != (model.WindowRef{ID: "101", Title: "GitHub", App: "Safari"}) {
		t.Errorf("window = %+v", res.Window)
	}
}

func TestCaptureWindow_CustomPathCreatesDirectory(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())
	path := filepath.Join(t.TempDir(), "nested", "dir", "shot.png")

	res, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{
		WindowID:   "101",
		Mode:       model.ModeContent,
		OutputPath: path,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.FilePath != path {
		t.Errorf("file_path = %q, want %q", res.FilePath, path)
	}
	decodePNG(t, path)
}

func TestCaptureWindow_RejectsNonPNGPath(t *testing.T) {
	d := twoWindowDesktop()
	s := newTestService(t, d)
	path := filepath.Join(t.TempDir(), "x.jpg")

	_, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{WindowID: "101", OutputPath: path})
	wantKind(t, err, KindInvalidRequest)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for a rejected path")
	}
	if d.winCalls != 0 {
		t.Error("invalid input should be rejected before capturing")
	}
}

func TestCaptureWindow_InvalidInput(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())
	tests := []model.CaptureWindowRequest{
		{},
		{WindowID: "101", Mode: "thumbnail"},
		{WindowID: "101", Scale: 2},
	}
	for _, req := range tests {
		_, err := s.CaptureWindow(context.Background(), req)
		wantKind(t, err, KindInvalidRequest)
	}
}

func TestCaptureWindow_NotFound(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	_, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{WindowID: "999"})
	e := wantKind(t, err, KindInternal)
	if e.Message != "Window 999 not found. It may have been closed." {
		t.Errorf("message = %q", e.Message)
	}
}

func TestCaptureWindow_CaptureFailureIsWrapped(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	_, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{WindowID: "202"})
	e := wantKind(t, err, KindInternal)
	if e.Message != "Failed to capture window: "+errCaptureFailed.Error() {
		t.Errorf("message = %q", e.Message)
	}
	if !errors.Is(err, errCaptureFailed) {
		t.Error("error should unwrap to the capture failure")
	}
}

func TestCaptureWindow_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t, twoWindowDesktop())

	_, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{
		WindowID:   "101",
		OutputPath: filepath.Join(blocker, "sub", "a.png"),
	})
	e := wantKind(t, err, KindInvalidRequest)
	if !strings.HasPrefix(e.Message, "Cannot create directory: ") {
		t.Errorf("message = %q", e.Message)
	}
}

func TestCaptureWindow_MetadataMissing(t *testing.T) {
	d := twoWindowDesktop()
	d.raw = nil
	s := newTestService(t, d)

	res, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{WindowID: "101"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Window.Title != "(Unknown)" || res.Window.App != "(Unknown)" {
		t.Errorf("window = %+v", res.Window)
	}
}

func TestCaptureWindow_Scale(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	res, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{WindowID: "101", Scale: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	b := decodePNG(t, res.FilePath).Bounds()
	if b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("scaled capture is %dx%d, want 10x5", b.Dx(), b.Dy())
	}
}

func TestCaptureWindow_PanicIsNormalized(t *testing.T) {
	d := twoWindowDesktop()
	d.windows = []platform.WindowHandle{panicWindow{id: "101"}}
	s := newTestService(t, d)

	_, err := s.CaptureWindow(context.Background(), model.CaptureWindowRequest{WindowID: "101"})
	e := wantKind(t, err, KindInternal)
	if e.Message != "Failed to capture window: Unknown error" {
		t.Errorf("message = %q", e.Message)
	}
}

type panicWindow struct{ id string }

func (w panicWindow) ID() string { return w.id }

func (w panicWindow) Capture() (image.Image, error) { panic("native crash") }

func TestCaptureWindows_PartialFailure(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	res, err := s.CaptureWindows(context.Background(), model.CaptureWindowsRequest{WindowIDs: []string{"101", "B"}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Error("overall success should be true when one capture succeeded")
	}
	if len(res.Captures) != 2 {
		t.Fatalf("got %d captures, want 2", len(res.Captures))
	}

	a := res.Captures[0]
	if a.WindowID != "101" || !a.Success || a.FilePath == "" || a.Error != "" {
		t.Errorf("capture A = %+v", a)
	}
	decodePNG(t, a.FilePath)
	if a.Window == nil || a.Window.App != "Safari" {
		t.Errorf("capture A window = %+v", a.Window)
	}

	b := res.Captures[1]
	if b.WindowID != "B" || b.Success || b.FilePath != "" || b.Error == "" || b.Window != nil {
		t.Errorf("capture B = %+v", b)
	}
}

func TestCaptureWindows_AllFailed(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	res, err := s.CaptureWindows(context.Background(), model.CaptureWindowsRequest{WindowIDs: []string{"x", "202", "y"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Error("overall success should be false when every capture failed")
	}
	for _, c := range res.Captures {
		if c.Success || c.Error == "" {
			t.Errorf("capture %+v should have failed with a message", c)
		}
	}
	if res.Captures[1].Error != errCaptureFailed.Error() {
		t.Errorf("capture error = %q, want the native message", res.Captures[1].Error)
	}
}

func TestCaptureWindows_SnapshotsOnce(t *testing.T) {
	d := twoWindowDesktop()
	s := newTestService(t, d)

	_, err := s.CaptureWindows(context.Background(), model.CaptureWindowsRequest{WindowIDs: []string{"101", "101", "202", "nope"}})
	if err != nil {
		t.Fatal(err)
	}
	if d.winCalls != 1 || d.listCalls != 1 {
		t.Errorf("window list queried %d times, metadata %d times; want 1 each", d.winCalls, d.listCalls)
	}
}

func TestCaptureWindows_OutputDir(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())
	dir := filepath.Join(t.TempDir(), "batch")

	res, err := s.CaptureWindows(context.Background(), model.CaptureWindowsRequest{WindowIDs: []string{"101"}, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "screenshot_101.png"); res.Captures[0].FilePath != want {
		t.Errorf("file_path = %q, want %q", res.Captures[0].FilePath, want)
	}
}

func TestCaptureWindows_SimilarIDsKeepSeparateFiles(t *testing.T) {
	d := &fakeDesktop{
		windows: []platform.WindowHandle{
			fakeWindow{id: "a.b", img: solid(5, 5, color.White)},
			fakeWindow{id: "a_b", img: solid(9, 9, color.Black)},
		},
	}
	s := newTestService(t, d)

	res, err := s.CaptureWindows(context.Background(), model.CaptureWindowsRequest{WindowIDs: []string{"a.b", "a_b"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Captures) != 2 || !res.Captures[0].Success || !res.Captures[1].Success {
		t.Fatalf("captures = %+v", res.Captures)
	}
	if res.Captures[0].FilePath == res.Captures[1].FilePath {
		t.Fatalf("both windows written to %s", res.Captures[0].FilePath)
	}
	for i, want := range []int{5, 9} {
		if got := decodePNG(t, res.Captures[i].FilePath).Bounds().Dx(); got != want {
			t.Errorf("%s: image width %d, want %d", res.Captures[i].WindowID, got, want)
		}
	}
}

func TestCaptureWindows_EmptyList(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	_, err := s.CaptureWindows(context.Background(), model.CaptureWindowsRequest{})
	e := wantKind(t, err, KindInvalidRequest)
	if e.Message != "At least one window_id is required" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestCaptureWindows_ListFailureFailsCall(t *testing.T) {
	d := twoWindowDesktop()
	d.winErr = errors.New("window server unavailable")
	s := newTestService(t, d)

	_, err := s.CaptureWindows(context.Background(), model.CaptureWindowsRequest{WindowIDs: []string{"101"}})
	e := wantKind(t, err, KindInternal)
	if e.Message != "Failed to capture windows: window server unavailable" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestCaptureWindows_PanicIsPerItem(t *testing.T) {
	d := twoWindowDesktop()
	d.windows = append(d.windows, panicWindow{id: "303"})
	s := newTestService(t, d)

	res, err := s.CaptureWindows(context.Background(), model.CaptureWindowsRequest{WindowIDs: []string{"303", "101"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Captures[0].Success || res.Captures[0].Error != "Unknown error" {
		t.Errorf("panicking item = %+v", res.Captures[0])
	}
	if !res.Captures[1].Success {
		t.Errorf("batch should continue after a panicking item: %+v", res.Captures[1])
	}
}

func TestCaptureDisplay_Single(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())
	one := 1

	res, err := s.CaptureDisplay(context.Background(), model.CaptureDisplayRequest{Display: &one})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.Display == nil || *res.Display != 1 {
		t.Errorf("result = %+v", res)
	}
	if want := filepath.Join(s.outputDir, "display_1.png"); res.FilePath != want {
		t.Errorf("file_path = %q, want %q", res.FilePath, want)
	}
	if len(res.Captures) != 0 {
		t.Error("single display capture should not list captures")
	}
	px := decodePNG(t, res.FilePath).At(0, 0)
	if r, g, b, _ := px.RGBA(); r != 0 || g != 0 || b == 0 {
		t.Errorf("display 1 should be blue, got %v", px)
	}
}

func TestCaptureDisplay_OutOfRange(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	for _, n := range []int{5, 2, -1} {
		_, err := s.CaptureDisplay(context.Background(), model.CaptureDisplayRequest{Display: &n})
		e := wantKind(t, err, KindInvalidRequest)
		if !strings.Contains(e.Message, "0-1") {
			t.Errorf("display %d: message %q should name range 0-1", n, e.Message)
		}
	}
}

func TestCaptureDisplay_All(t *testing.T) {
	s := newTestService(t, twoWindowDesktop())

	res, err := s.CaptureDisplay(context.Background(), model.CaptureDisplayRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.FilePath != "" || res.Display != nil {
		t.Errorf("result = %+v", res)
	}
	if len(res.Captures) != 2 {
		t.Fatalf("got %d captures, want 2", len(res.Captures))
	}
	seen := map[string]bool{}
	for i, c := range res.Captures {
		if c.Display != i {
			t.Errorf("capture %d has display %d", i, c.Display)
		}
		if seen[c.FilePath] {
			t.Errorf("duplicate file path %q", c.FilePath)
		}
		seen[c.FilePath] = true
		decodePNG(t, c.FilePath)
	}
}

func TestCaptureDisplay_NoDisplays(t *testing.T) {
	d := twoWindowDesktop()
	d.monitors = nil
	s := newTestService(t, d)

	_, err := s.CaptureDisplay(context.Background(), model.CaptureDisplayRequest{})
	e := wantKind(t, err, KindInternal)
	if e.Message != "No displays found" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestCaptureDisplay_AnyFailureAbortsAll(t *testing.T) {
	d := twoWindowDesktop()
	d.monitors[1] = fakeMonitor{err: errors.New("display asleep")}
	s := newTestService(t, d)

	res, err := s.CaptureDisplay(context.Background(), model.CaptureDisplayRequest{})
	e := wantKind(t, err, KindInternal)
	if e.Message != "Failed to capture display: display asleep" {
		t.Errorf("message = %q", e.Message)
	}
	if len(res.Captures) != 0 {
		t.Errorf("failed call returned captures %+v", res.Captures)
	}
}

func TestService_NoProvider(t *testing.T) {
	s := NewService(nil, Options{OutputDir: t.TempDir()})
	if _, err := s.ListWindows(context.Background()); err == nil {
		t.Error("expected error without a lister")
	}
	_, err := s.CaptureDisplay(context.Background(), model.CaptureDisplayRequest{})
	e := wantKind(t, err, KindInternal)
	if e.Message != "Failed to capture display: screenshot not supported on this platform" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService(twoWindowDesktop().provider(), Options{})
	if s.outputDir != os.TempDir() {
		t.Errorf("outputDir = %q, want %q", s.outputDir, os.TempDir())
	}
	if s.logger == nil {
		t.Error("logger should default to a discarding logger")
	}
}
