package ocr

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Preprocessor transforms an image before recognition.
type Preprocessor func(image.Image) image.Image

// minTextHeight is the height below which captures are upscaled; tesseract
// loses glyphs on very small crops.
const minTextHeight = 64

// DefaultPreprocessor upscales small crops, converts to grayscale and boosts contrast.
func DefaultPreprocessor() Preprocessor {
	return func(img image.Image) image.Image {
		if img == nil {
			return nil
		}
		if h := img.Bounds().Dy(); h > 0 && h < minTextHeight {
			img = imaging.Resize(img, 0, minTextHeight, imaging.Lanczos)
		}
		gray := effect.Grayscale(img)
		return adjust.Contrast(gray, 0.3)
	}
}
