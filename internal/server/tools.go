package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/desktop-vision/internal/model"
)

var scaleOption = mcp.WithNumber("scale",
	mcp.Description("Downscale factor applied before saving, greater than 0 and at most 1 (default: 1)"),
	mcp.Min(0),
	mcp.Max(1),
)

var modeOption = mcp.WithString("mode",
	mcp.Description("Capture mode (default: full). Both modes include window decorations"),
	mcp.Enum(string(model.ModeFull), string(model.ModeContent)),
)

func (s *Server) registerTools() {
	// list_windows
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List open application windows with their IDs, titles, apps, bounds and display"),
			mcp.WithTitleAnnotation("List windows"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithOutputSchema[model.WindowList](),
		),
		s.handleListWindows,
	)

	// capture_window
	s.mcp.AddTool(
		mcp.NewTool("capture_window",
			mcp.WithDescription("Capture a screenshot of one window and save it as a PNG file"),
			mcp.WithString("window_id", mcp.Required(), mcp.Description("Window ID from list_windows")),
			modeOption,
			mcp.WithString("output_path", mcp.Description("Absolute path ending in .png (default: <output dir>/screenshot_<window_id>.png)")),
			scaleOption,
			mcp.WithTitleAnnotation("Capture window"),
			mcp.WithReadOnlyHintAnnotation(false),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithOutputSchema[model.CaptureWindowResult](),
		),
		s.handleCaptureWindow,
	)

	// capture_windows
	s.mcp.AddTool(
		mcp.NewTool("capture_windows",
			mcp.WithDescription("Capture several windows in one call. A window that cannot be captured is reported in its own entry"),
			mcp.WithArray("window_ids",
				mcp.Required(),
				mcp.Description("Window IDs from list_windows"),
				mcp.MinItems(1),
				mcp.WithStringItems(),
			),
			modeOption,
			mcp.WithString("output_dir", mcp.Description("Directory for the screenshots, created if missing")),
			scaleOption,
			mcp.WithTitleAnnotation("Capture windows"),
			mcp.WithReadOnlyHintAnnotation(false),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithOutputSchema[model.CaptureWindowsResult](),
		),
		s.handleCaptureWindows,
	)

	// capture_display
	s.mcp.AddTool(
		mcp.NewTool("capture_display",
			mcp.WithDescription("Capture a whole display, or every display when display_id is omitted"),
			mcp.WithNumber("display_id",
				mcp.Description("Zero-based display index (integer)"),
				mcp.Min(0),
			),
			scaleOption,
			mcp.WithTitleAnnotation("Capture display"),
			mcp.WithReadOnlyHintAnnotation(false),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithOutputSchema[model.CaptureDisplayResult](),
		),
		s.handleCaptureDisplay,
	)
}
