package capture

import (
	"image"
	"time"
)

// Frame carries one captured image and its metadata.
type Frame struct {
	Image      *image.RGBA
	Region     image.Rectangle
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises capture behaviour for instrumentation.
type CaptureStats struct {
	Captures   uint64
	Failures   uint64
	AvgCapture time.Duration
	LastFrame  time.Time
	Sequence   uint64
}
