package darwin

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// screencaptureBin is the macOS screen capture utility.
var screencaptureBin = "/usr/sbin/screencapture"

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command error: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// windowCaptureArgs captures window id silently, without its drop shadow.
func windowCaptureArgs(id, path string) []string {
	return []string{"-x", "-o", "-l", id, "-t", "png", path}
}

// captureWindowImage runs screencapture into a scratch file and decodes it.
func captureWindowImage(ctx context.Context, id string) (image.Image, error) {
	dir, err := os.MkdirTemp("", "desktop-vision-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "window.png")
	if _, err := runCommand(ctx, screencaptureBin, windowCaptureArgs(id, path)...); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("screencapture produced no image for window %s", id)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode screencapture output: %w", err)
	}
	return img, nil
}
