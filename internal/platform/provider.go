package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Lister        WindowLister
	Screenshotter Screenshotter
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("desktop-vision is not supported on %s/%s; supported: darwin (cgo), linux (X11)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go and internal/platform/x11/init_linux.go.
var NewProviderFunc func() (*Provider, error)

// CheckPermissionsFunc is set by platform-specific packages via init().
// It reports whether the process may record the screen.
var CheckPermissionsFunc func() error

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// CheckPermissions returns an error when screen capture is not permitted.
func CheckPermissions() error {
	if CheckPermissionsFunc == nil {
		return ErrUnsupported
	}
	return CheckPermissionsFunc()
}
