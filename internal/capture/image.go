package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// normalizeScale returns the effective scale factor. Zero means full size.
func normalizeScale(scale float64) (float64, error) {
	if scale == 0 {
		return 1, nil
	}
	if math.IsNaN(scale) || scale < 0 || scale > 1 {
		return 0, InvalidRequest("Invalid scale %v. Must be greater than 0 and at most 1", scale)
	}
	return scale, nil
}

// scaleImage downsamples img by scale. A scale of 1 returns img unchanged.
func scaleImage(img image.Image, scale float64) image.Image {
	if scale >= 1 {
		return img
	}
	src := img.Bounds()
	w := max(1, int(math.Round(float64(src.Dx())*scale)))
	h := max(1, int(math.Round(float64(src.Dy())*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// writePNG encodes img fully before touching path, so a failed encode never
// leaves a truncated file behind.
func writePNG(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("capture returned no image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
