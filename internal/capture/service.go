// Package capture implements window enumeration and window/display capture
// on top of the platform backends, including the error model shared by all
// tools.
package capture

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mj1618/desktop-vision/internal/model"
	"github.com/mj1618/desktop-vision/internal/platform"
)

var (
	errNoLister        = errors.New("window listing not available on this platform")
	errNoScreenshotter = errors.New("screenshot not supported on this platform")
)

// Options configures a Service.
type Options struct {
	Filter Filter
	// OutputDir receives files when the caller does not name a path.
	// Defaults to the system temp directory.
	OutputDir string
	Logger    *slog.Logger
}

// Service runs the list and capture operations. It holds no per-call state;
// every call queries the platform afresh.
type Service struct {
	lister    platform.WindowLister
	shots     platform.Screenshotter
	filter    Filter
	outputDir string
	logger    *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(p *platform.Provider, opts Options) *Service {
	s := &Service{
		filter:    opts.Filter,
		outputDir: opts.OutputDir,
		logger:    opts.Logger,
	}
	if p != nil {
		s.lister = p.Lister
		s.shots = p.Screenshotter
	}
	if s.outputDir == "" {
		s.outputDir = os.TempDir()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// ListWindows returns the filtered list of open windows.
func (s *Service) ListWindows(ctx context.Context) (res model.WindowList, err error) {
	defer s.finish(ctx, "list_windows", "Failed to list windows", &err)

	if s.lister == nil {
		return res, errNoLister
	}
	raw, err := s.lister.ListWindows()
	if err != nil {
		return res, err
	}
	res.Windows = s.filter.Apply(raw)
	s.logger.DebugContext(ctx, "listed windows", "found", len(raw), "kept", len(res.Windows))
	return res, nil
}

// CaptureWindow captures a single window to a PNG file.
func (s *Service) CaptureWindow(ctx context.Context, req model.CaptureWindowRequest) (res model.CaptureWindowResult, err error) {
	defer s.finish(ctx, "capture_window", "Failed to capture window", &err)

	if req.WindowID == "" {
		return res, InvalidRequest("window_id is required")
	}
	if err := validateMode(req.Mode); err != nil {
		return res, err
	}
	scale, err := normalizeScale(req.Scale)
	if err != nil {
		return res, err
	}
	var outFile string
	if req.OutputPath != "" {
		if outFile, err = validateOutputFile(req.OutputPath); err != nil {
			return res, err
		}
	}
	if s.shots == nil {
		return res, errNoScreenshotter
	}
	if s.lister == nil {
		return res, errNoLister
	}

	s.logger.DebugContext(ctx, "capturing window", "window_id", req.WindowID, "mode", modeOrDefault(req.Mode))

	handles, err := s.shots.Windows()
	if err != nil {
		return res, err
	}
	h, ok := findByID(handles, req.WindowID, platform.WindowHandle.ID)
	if !ok {
		return res, Internal("%s", notFoundMessage(req.WindowID))
	}
	img, err := h.Capture()
	if err != nil {
		return res, err
	}

	if outFile == "" {
		if err := prepareDefaultDir(s.outputDir); err != nil {
			return res, err
		}
		outFile = filepath.Join(s.outputDir, windowFileName(req.WindowID))
	} else if _, err := prepareCallerDir(filepath.Dir(outFile)); err != nil {
		return res, err
	}
	if err := writePNG(outFile, scaleImage(img, scale)); err != nil {
		return res, err
	}
	s.logger.InfoContext(ctx, "saved window screenshot", "window_id", req.WindowID, "path", outFile)

	meta, err := s.lister.ListWindows()
	if err != nil {
		return res, err
	}
	return model.CaptureWindowResult{
		Success:  true,
		FilePath: outFile,
		Window:   windowRef(meta, req.WindowID),
	}, nil
}

// CaptureWindows captures several windows. A window that is missing or fails
// to capture is reported in its own item and does not stop the batch.
func (s *Service) CaptureWindows(ctx context.Context, req model.CaptureWindowsRequest) (res model.CaptureWindowsResult, err error) {
	defer s.finish(ctx, "capture_windows", "Failed to capture windows", &err)

	if len(req.WindowIDs) == 0 {
		return res, InvalidRequest("At least one window_id is required")
	}
	if err := validateMode(req.Mode); err != nil {
		return res, err
	}
	scale, err := normalizeScale(req.Scale)
	if err != nil {
		return res, err
	}
	dir := s.outputDir
	if req.OutputDir != "" {
		if dir, err = prepareCallerDir(req.OutputDir); err != nil {
			return res, err
		}
	} else if err := prepareDefaultDir(dir); err != nil {
		return res, err
	}
	if s.shots == nil {
		return res, errNoScreenshotter
	}
	if s.lister == nil {
		return res, errNoLister
	}

	s.logger.DebugContext(ctx, "capturing windows", "count", len(req.WindowIDs), "mode", modeOrDefault(req.Mode))

	// One snapshot of each list serves the whole batch.
	handles, err := s.shots.Windows()
	if err != nil {
		return res, err
	}
	meta, err := s.lister.ListWindows()
	if err != nil {
		return res, err
	}

	res.Captures = make([]model.WindowCapture, 0, len(req.WindowIDs))
	for _, id := range req.WindowIDs {
		item := s.captureItem(ctx, handles, meta, id, dir, scale)
		res.Success = res.Success || item.Success
		res.Captures = append(res.Captures, item)
	}
	return res, nil
}

func (s *Service) captureItem(ctx context.Context, handles []platform.WindowHandle, meta []platform.RawWindow, id, dir string, scale float64) (item model.WindowCapture) {
	item.WindowID = id
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "panic capturing window", "window_id", id, "panic", r)
			item = model.WindowCapture{WindowID: id, Error: messageOf(FromPanic(r))}
		}
	}()

	h, ok := findByID(handles, id, platform.WindowHandle.ID)
	if !ok {
		s.logger.WarnContext(ctx, "window not found", "window_id", id)
		item.Error = notFoundMessage(id)
		return item
	}
	img, err := h.Capture()
	if err == nil {
		outFile := filepath.Join(dir, windowFileName(id))
		if err = writePNG(outFile, scaleImage(img, scale)); err == nil {
			s.logger.InfoContext(ctx, "saved window screenshot", "window_id", id, "path", outFile)
			ref := windowRef(meta, id)
			item.Success = true
			item.FilePath = outFile
			item.Window = &ref
			return item
		}
	}
	s.logger.ErrorContext(ctx, "failed to capture window", "window_id", id, "error", err)
	item.Error = messageOf(err)
	return item
}

// CaptureDisplay captures one display, or every display when req.Display is
// nil. Unlike CaptureWindows, any single failure fails the whole call.
func (s *Service) CaptureDisplay(ctx context.Context, req model.CaptureDisplayRequest) (res model.CaptureDisplayResult, err error) {
	defer s.finish(ctx, "capture_display", "Failed to capture display", &err)

	scale, err := normalizeScale(req.Scale)
	if err != nil {
		return res, err
	}
	if s.shots == nil {
		return res, errNoScreenshotter
	}
	monitors, err := s.shots.Monitors()
	if err != nil {
		return res, err
	}
	if len(monitors) == 0 {
		return res, Internal("No displays found")
	}
	s.logger.DebugContext(ctx, "found displays", "count", len(monitors))

	if req.Display != nil {
		index := *req.Display
		if index < 0 || index >= len(monitors) {
			return res, InvalidRequest("Invalid display ID %d. Available displays: 0-%d", index, len(monitors)-1)
		}
		if err := prepareDefaultDir(s.outputDir); err != nil {
			return res, err
		}
		path, err := s.captureMonitor(ctx, monitors[index], index, scale)
		if err != nil {
			return res, err
		}
		return model.CaptureDisplayResult{Success: true, FilePath: path, Display: &index}, nil
	}

	if err := prepareDefaultDir(s.outputDir); err != nil {
		return res, err
	}
	res.Captures = make([]model.DisplayCapture, 0, len(monitors))
	for i, m := range monitors {
		path, err := s.captureMonitor(ctx, m, i, scale)
		if err != nil {
			return model.CaptureDisplayResult{}, err
		}
		res.Captures = append(res.Captures, model.DisplayCapture{Display: i, FilePath: path})
	}
	res.Success = true
	return res, nil
}

func (s *Service) captureMonitor(ctx context.Context, m platform.MonitorHandle, index int, scale float64) (string, error) {
	img, err := m.Capture()
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.outputDir, displayFileName(index))
	if err := writePNG(path, scaleImage(img, scale)); err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "saved display screenshot", "display", index, "path", path)
	return path, nil
}

// finish normalizes the error returned by a tool operation, converting a
// panic into an error first. It must be deferred directly.
func (s *Service) finish(ctx context.Context, tool, prefix string, errp *error) {
	if r := recover(); r != nil {
		s.logger.ErrorContext(ctx, "panic in tool", "tool", tool, "panic", r)
		*errp = FromPanic(r)
	}
	if *errp == nil {
		return
	}
	e := Normalize(*errp, prefix)
	if e.Kind == KindInvalidRequest {
		s.logger.WarnContext(ctx, "rejected request", "tool", tool, "error", e.Message)
	} else {
		s.logger.ErrorContext(ctx, "tool failed", "tool", tool, "error", e.Message)
	}
	*errp = e
}

func validateMode(m model.CaptureMode) error {
	if !m.Valid() {
		return InvalidRequest("Invalid mode %q. Expected full or content", string(m))
	}
	return nil
}

// modeOrDefault reports the mode in effect. Both modes currently capture the
// full window including decorations.
func modeOrDefault(m model.CaptureMode) model.CaptureMode {
	if m == "" {
		return model.ModeFull
	}
	return m
}
