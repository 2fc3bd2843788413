// Package darwin provides macOS platform support using CoreGraphics.
// Window listing and the permission check require cgo; when cgo is disabled
// or the target is not macOS, the package compiles without registering a
// backend.
package darwin
