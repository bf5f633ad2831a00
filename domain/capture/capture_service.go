package capture

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"
)

// Service captures screen regions through a Grabber and keeps instrumentation
// counters. It is safe for concurrent use by the UI thread and the auto-translate task.
type Service struct {
	grabber      Grabber
	logger       *slog.Logger
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastFrame    atomic.Int64
}

// NewService constructs a capture service over g.
func NewService(g Grabber, logger *slog.Logger) *Service {
	return &Service{grabber: g, logger: logger}
}

// Capture grabs r and returns it as a sequenced frame.
func (s *Service) Capture(ctx context.Context, r image.Rectangle) (Frame, error) {
	start := time.Now()
	img, err := s.grabber.Grab(ctx, r)
	if err != nil {
		s.failures.Add(1)
		return Frame{}, err
	}
	return s.record(img, r, start), nil
}

// CaptureScreen grabs the full screen.
func (s *Service) CaptureScreen(ctx context.Context) (Frame, error) {
	start := time.Now()
	img, err := s.grabber.GrabScreen(ctx)
	if err != nil {
		s.failures.Add(1)
		return Frame{}, err
	}
	return s.record(img, img.Bounds(), start), nil
}

func (s *Service) record(img *image.RGBA, r image.Rectangle, start time.Time) Frame {
	now := time.Now()
	s.captureNanos.Add(uint64(now.Sub(start).Nanoseconds()))
	s.captures.Add(1)
	s.lastFrame.Store(now.UnixNano())
	seq := s.sequence.Add(1)
	return Frame{Image: img, Region: r, CapturedAt: now, Sequence: seq}
}

// Stats returns a snapshot of the capture counters.
func (s *Service) Stats() CaptureStats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	var last time.Time
	if ns := s.lastFrame.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return CaptureStats{
		Captures:   captures,
		Failures:   s.failures.Load(),
		AvgCapture: avg,
		LastFrame:  last,
		Sequence:   s.sequence.Load(),
	}
}

// LogStats writes the counters at debug level.
func (s *Service) LogStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
		"sequence", stats.Sequence,
	)
}
