//go:build darwin && cgo

package darwin

import "github.com/mj1618/desktop-vision/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		lister := &Lister{}
		return &platform.Provider{
			Lister:        lister,
			Screenshotter: &Screenshotter{lister: lister},
		}, nil
	}
	platform.CheckPermissionsFunc = CheckScreenRecordingPermission
}
