// Package version holds build information, overridable with
// -ldflags "-X github.com/mj1618/desktop-vision/internal/version.Version=...".
package version

var (
	Version = "dev"
	Commit  = "none"
)

// String returns the version with its commit, e.g. "1.2.0 (abc1234)".
func String() string {
	if Commit == "" || Commit == "none" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
