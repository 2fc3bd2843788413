package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// validateOutputFile makes a caller-supplied file path absolute and checks
// that it names a PNG file.
func validateOutputFile(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf("Invalid output path: %s", p), Err: err}
	}
	if !strings.HasSuffix(abs, ".png") {
		return "", InvalidRequest("Output path must end with .png: %s", p)
	}
	return abs, nil
}

// prepareCallerDir makes a caller-supplied directory absolute and creates it.
func prepareCallerDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf("Invalid output directory: %s", dir), Err: err}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf("Cannot create directory: %s", abs), Err: err}
	}
	return abs, nil
}

// prepareDefaultDir creates the configured output directory. Failures here
// are not the caller's fault.
func prepareDefaultDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}

func windowFileName(id string) string {
	return "screenshot_" + fileSafe(id) + ".png"
}

func displayFileName(index int) string {
	return fmt.Sprintf("display_%d.png", index)
}

// fileSafe encodes s as a single path element. Letters, digits and '-' pass
// through; every other byte becomes '_' followed by two hex digits, so
// distinct IDs never share a file name.
func fileSafe(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return b.String()
}
