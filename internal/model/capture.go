package model

// CaptureMode selects what part of a window is captured.
type CaptureMode string

const (
	ModeFull    CaptureMode = "full"
	ModeContent CaptureMode = "content"
)

// Valid reports whether m is a known mode. The empty mode is valid and means full.
func (m CaptureMode) Valid() bool {
	switch m {
	case "", ModeFull, ModeContent:
		return true
	}
	return false
}

// CaptureWindowRequest is the input of capture_window.
type CaptureWindowRequest struct {
	WindowID   string
	Mode       CaptureMode
	OutputPath string
	Scale      float64
}

// CaptureWindowResult is the output of capture_window.
type CaptureWindowResult struct {
	Success  bool      `yaml:"success"   json:"success"`
	FilePath string    `yaml:"file_path" json:"file_path"`
	Window   WindowRef `yaml:"window"    json:"window"`
}

// CaptureWindowsRequest is the input of capture_windows.
type CaptureWindowsRequest struct {
	WindowIDs []string
	Mode      CaptureMode
	OutputDir string
	Scale     float64
}

// WindowCapture is a single item of a capture_windows response.
type WindowCapture struct {
	WindowID string     `yaml:"window_id"           json:"window_id"`
	Success  bool       `yaml:"success"             json:"success"`
	FilePath string     `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	Error    string     `yaml:"error,omitempty"     json:"error,omitempty"`
	Window   *WindowRef `yaml:"window,omitempty"    json:"window,omitempty"`
}

// CaptureWindowsResult is the output of capture_windows.
type CaptureWindowsResult struct {
	Success  bool            `yaml:"success"  json:"success"`
	Captures []WindowCapture `yaml:"captures" json:"captures"`
}

// CaptureDisplayRequest is the input of capture_display. A nil Display
// captures every display.
type CaptureDisplayRequest struct {
	Display *int
	Scale   float64
}

// DisplayCapture is one captured display.
type DisplayCapture struct {
	Display  int    `yaml:"display"   json:"display"`
	FilePath string `yaml:"file_path" json:"file_path"`
}

// CaptureDisplayResult is the output of capture_display. FilePath and Display
// are set for a single display, Captures when all displays were captured.
type CaptureDisplayResult struct {
	Success  bool             `yaml:"success"             json:"success"`
	FilePath string           `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	Display  *int             `yaml:"display,omitempty"   json:"display,omitempty"`
	Captures []DisplayCapture `yaml:"captures,omitempty"  json:"captures,omitempty"`
}
