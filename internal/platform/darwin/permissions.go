//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

static int dv_screen_recording_allowed() {
    return CGPreflightScreenCaptureAccess() ? 1 : 0;
}
*/
import "C"
import "fmt"

// CheckScreenRecordingPermission checks if the process has macOS screen recording permission.
func CheckScreenRecordingPermission() error {
	if C.dv_screen_recording_allowed() == 0 {
		return fmt.Errorf(
			"screen recording permission not granted\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Screen Recording\n" +
				"Add your terminal app or MCP client (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the MCP server.")
	}
	return nil
}
