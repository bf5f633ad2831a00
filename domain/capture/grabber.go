package capture

import (
	"context"
	"errors"
	"fmt"
	"image"

	kbscreenshot "github.com/kbinani/screenshot"
	"github.com/vova616/screenshot"

	"github.com/soocke/pixel-translate-go/config"
)

// ErrEmptyRegion is returned when a capture is requested for a zero-area rectangle.
var ErrEmptyRegion = errors.New("capture: empty region")

// Grabber reads screen pixels.
type Grabber interface {
	// Grab returns the pixels of r (screen coordinates) at call time.
	Grab(ctx context.Context, r image.Rectangle) (*image.RGBA, error)
	// GrabScreen returns the whole screen, used as the selector backdrop.
	GrabScreen(ctx context.Context) (*image.RGBA, error)
}

// NewGrabber returns the grabber for the configured backend.
func NewGrabber(backend string) Grabber {
	if backend == config.CaptureKbinani {
		return displayGrabber{}
	}
	return primaryGrabber{}
}

// primaryGrabber captures from the primary screen via vova616/screenshot.
type primaryGrabber struct{}

func (primaryGrabber) Grab(ctx context.Context, r image.Rectangle) (*image.RGBA, error) {
	if !RegionSet(r) {
		return nil, ErrEmptyRegion
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("capture: screen bounds: %w", err)
	}
	clipped := r.Intersect(screen)
	if clipped.Empty() {
		return nil, fmt.Errorf("capture: region out of bounds region=%v screen=%v", r, screen)
	}
	img, err := screenshot.CaptureRect(clipped)
	if err != nil {
		return nil, fmt.Errorf("capture: region %v: %w", clipped, err)
	}
	return img, nil
}

func (primaryGrabber) GrabScreen(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture: screen: %w", err)
	}
	return img, nil
}

// displayGrabber captures across all active displays via kbinani/screenshot.
type displayGrabber struct{}

// virtualScreen is the union of all active display bounds.
func virtualScreen() (image.Rectangle, error) {
	n := kbscreenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, errors.New("capture: no active displays")
	}
	union := kbscreenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(kbscreenshot.GetDisplayBounds(i))
	}
	return union, nil
}

func (displayGrabber) Grab(ctx context.Context, r image.Rectangle) (*image.RGBA, error) {
	if !RegionSet(r) {
		return nil, ErrEmptyRegion
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	screen, err := virtualScreen()
	if err != nil {
		return nil, err
	}
	clipped := r.Intersect(screen)
	if clipped.Empty() {
		return nil, fmt.Errorf("capture: region out of bounds region=%v screen=%v", r, screen)
	}
	img, err := kbscreenshot.CaptureRect(clipped)
	if err != nil {
		return nil, fmt.Errorf("capture: region %v: %w", clipped, err)
	}
	return img, nil
}

func (displayGrabber) GrabScreen(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	screen, err := virtualScreen()
	if err != nil {
		return nil, err
	}
	img, err := kbscreenshot.CaptureRect(screen)
	if err != nil {
		return nil, fmt.Errorf("capture: screen: %w", err)
	}
	return img, nil
}
