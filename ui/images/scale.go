package images

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// FitSize computes the display size of a w x h image inside an areaW x areaH area.
// When the image exceeds the area in either dimension both sides are divided by
// the single factor max(w/areaW, h/areaH); otherwise the native size is kept.
// scaled reports whether shrinking is needed.
func FitSize(w, h, areaW, areaH int) (newW, newH int, scaled bool) {
	if w <= 0 || h <= 0 || areaW <= 0 || areaH <= 0 {
		return w, h, false
	}
	if w <= areaW && h <= areaH {
		return w, h, false
	}
	factor := math.Max(float64(w)/float64(areaW), float64(h)/float64(areaH))
	newW = int(math.Round(float64(w) / factor))
	newH = int(math.Round(float64(h) / factor))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH, true
}

// FitToArea shrinks src to fit areaW x areaH preserving aspect ratio.
// Images that already fit are returned unchanged; nothing is ever upscaled.
func FitToArea(src image.Image, areaW, areaH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h, scaled := FitSize(b.Dx(), b.Dy(), areaW, areaH)
	if !scaled {
		return src
	}
	return imaging.Resize(src, w, h, imaging.Lanczos)
}
