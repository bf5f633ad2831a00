package images

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	// Extra decoders for files picked by the user.
	_ "golang.org/x/image/webp"
)

// Load decodes an image file, honouring EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load image %q: %w", path, err)
	}
	return img, nil
}

// CropRegion copies r out of frame. r is clamped to the frame bounds; the
// result is re-based at the origin. ok is false when nothing remains.
func CropRegion(frame image.Image, r image.Rectangle) (*image.NRGBA, bool) {
	if frame == nil {
		return nil, false
	}
	r = r.Intersect(frame.Bounds())
	if r.Empty() {
		return nil, false
	}
	return imaging.Crop(frame, r), true
}
