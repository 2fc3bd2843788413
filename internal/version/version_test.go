package version

import "testing"

func TestString(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "none", "dev"},
		{"1.2.0", "", "1.2.0"},
		{"1.2.0", "abc1234", "1.2.0 (abc1234)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := String(); got != tt.want {
			t.Errorf("String() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}
