package capture

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeScale(t *testing.T) {
	tests := []struct {
		in      float64
		want    float64
		wantErr bool
	}{
		{0, 1, false},
		{1, 1, false},
		{0.5, 0.5, false},
		{-0.5, 0, true},
		{1.5, 0, true},
		{math.NaN(), 0, true},
	}
	for _, tt := range tests {
		got, err := normalizeScale(tt.in)
		if tt.wantErr {
			wantKind(t, err, KindInvalidRequest)
			continue
		}
		if err != nil {
			t.Errorf("normalizeScale(%v): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("normalizeScale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScaleImage(t *testing.T) {
	src := solid(200, 100, color.White)

	if got := scaleImage(src, 1); got != src {
		t.Error("scale 1 should return the source image")
	}

	half := scaleImage(src, 0.5).Bounds()
	if half.Dx() != 100 || half.Dy() != 50 {
		t.Errorf("scaled to %dx%d, want 100x50", half.Dx(), half.Dy())
	}

	tiny := scaleImage(src, 0.001).Bounds()
	if tiny.Dx() < 1 || tiny.Dy() < 1 {
		t.Errorf("scaled image must keep at least one pixel, got %dx%d", tiny.Dx(), tiny.Dy())
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := writePNG(path, solid(3, 2, color.Black)); err != nil {
		t.Fatal(err)
	}
	b := decodePNG(t, path).Bounds()
	if b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("decoded %dx%d, want 3x2", b.Dx(), b.Dy())
	}
}

func TestWritePNG_NilImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := writePNG(path, nil); err == nil {
		t.Fatal("expected error for nil image")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for a nil image")
	}
}
