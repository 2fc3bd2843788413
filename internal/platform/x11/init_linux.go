//go:build linux

package x11

import "github.com/mj1618/desktop-vision/internal/platform"

func init() {
	platform.NewProviderFunc = NewProvider
	platform.CheckPermissionsFunc = CheckPermissions
}
