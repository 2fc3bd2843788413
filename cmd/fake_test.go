package cmd

import (
	"bytes"
	"context"
	"image"
	"testing"

	"github.com/mj1618/desktop-vision/internal/platform"
	"github.com/mj1618/desktop-vision/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type fakeWindow string

func (w fakeWindow) ID() string { return string(w) }

func (w fakeWindow) Capture() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type fakeMonitor struct{}

func (fakeMonitor) Capture() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 8, 6)), nil
}

type fakeDesktop struct{}

func (fakeDesktop) ListWindows() ([]platform.RawWindow, error) {
	return []platform.RawWindow{
		{ID: "11", Title: "notes.txt", Owner: "TextEdit", Bounds: platform.Bounds{X: 40, Y: 60, Width: 640, Height: 480}},
		{ID: "12", Title: "", Owner: "WindowManager", Bounds: platform.Bounds{Width: 1440, Height: 900}},
	}, nil
}

func (fakeDesktop) Windows() ([]platform.WindowHandle, error) {
	return []platform.WindowHandle{fakeWindow("11"), fakeWindow("12")}, nil
}

func (fakeDesktop) Monitors() ([]platform.MonitorHandle, error) {
	return []platform.MonitorHandle{fakeMonitor{}, fakeMonitor{}}, nil
}

// execute runs the root command with args against a fake desktop and
// returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWith(t, nil, nil, args...)
}

// executeWith is execute with a stubbed permission check and server loop.
// Nil stubs grant permission and return immediately.
func executeWith(t *testing.T, check func() error, run func(context.Context, *server.Server, server.Config) error, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DESKTOP_VISION_OUTPUT_DIR", t.TempDir())

	origProvider, origCheck, origRun := newProvider, checkPermissions, runServer
	t.Cleanup(func() {
		newProvider, checkPermissions, runServer = origProvider, origCheck, origRun
		resetFlags(rootCmd)
	})
	if check == nil {
		check = func() error { return nil }
	}
	if run == nil {
		run = func(context.Context, *server.Server, server.Config) error { return nil }
	}
	newProvider = func() (*platform.Provider, error) {
		d := fakeDesktop{}
		return &platform.Provider{Lister: d, Screenshotter: d}, nil
	}
	checkPermissions = check
	runServer = run

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
