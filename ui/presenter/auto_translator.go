package presenter

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-translate-go/domain/capture"
	"github.com/soocke/pixel-translate-go/domain/pipeline"
)

// AutoSource is the slice of application state the auto task reads and writes.
type AutoSource interface {
	AutoRegion() (image.Rectangle, bool)
	SetCaptured(img image.Image) (seq uint64, ok bool)
}

// RegionCapturer grabs a screen region.
type RegionCapturer interface {
	Capture(ctx context.Context, r image.Rectangle) (capture.Frame, error)
}

// PassRunner runs one OCR + translation pass.
type PassRunner interface {
	TranslateOnce(ctx context.Context, img image.Image) (pipeline.Result, error)
}

// AutoOutcome is what one auto iteration produced. Err is set when the
// capture or the pass failed; Image is nil when the capture failed.
type AutoOutcome struct {
	Sequence uint64
	Image    image.Image
	Result   pipeline.Result
	Err      error
}

// AutoTranslator is the periodic capture + translate task. It runs one
// iteration, then sleeps the full interval regardless of how long the
// iteration took, so slow passes stretch the period instead of piling up.
// Failures are logged and the loop keeps going until Stop or context
// cancellation.
type AutoTranslator struct {
	Source   AutoSource
	Capturer RegionCapturer
	Runner   PassRunner
	Logger   *slog.Logger
	interval atomic.Int64

	outcomes chan AutoOutcome
	cycles   atomic.Uint64

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool
}

// NewAutoTranslator constructs the task. A non-positive interval defaults to 2s.
func NewAutoTranslator(src AutoSource, capturer RegionCapturer, runner PassRunner, interval time.Duration, logger *slog.Logger) *AutoTranslator {
	a := &AutoTranslator{
		Source:   src,
		Capturer: capturer,
		Runner:   runner,
		Logger:   logger,
		outcomes: make(chan AutoOutcome, 1),
	}
	a.SetInterval(interval)
	return a
}

// Outcomes delivers iteration results. Only the latest undelivered outcome is kept.
func (a *AutoTranslator) Outcomes() <-chan AutoOutcome { return a.outcomes }

// Cycles reports how many capture + translate cycles have been attempted.
func (a *AutoTranslator) Cycles() uint64 { return a.cycles.Load() }

// Interval returns the sleep between iterations.
func (a *AutoTranslator) Interval() time.Duration { return time.Duration(a.interval.Load()) }

// SetInterval changes the sleep between iterations; the running loop picks it
// up after its current sleep. A non-positive d restores the 2s default.
func (a *AutoTranslator) SetInterval(d time.Duration) {
	if d <= 0 {
		d = 2 * time.Second
	}
	a.interval.Store(int64(d))
}

// Running reports whether the task goroutine is alive.
func (a *AutoTranslator) Running() bool { return a.running.Load() }

// Start launches the task. Calling Start on a running task is a no-op.
func (a *AutoTranslator) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	a.running.Store(true)
	go a.loop(ctx, a.done)
	if a.Logger != nil {
		a.Logger.Info("auto translate task started", "interval", a.Interval())
	}
}

// Stop cancels the task and waits for the goroutine to exit. An in-flight
// pass observes the cancellation through its context.
func (a *AutoTranslator) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	if a.Logger != nil {
		a.Logger.Info("auto translate task stopped", "cycles", a.cycles.Load())
	}
}

func (a *AutoTranslator) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer a.running.Store(false)
	timer := time.NewTimer(a.Interval())
	defer timer.Stop()
	for {
		a.iterate(ctx)
		timer.Reset(a.Interval())
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// iterate performs at most one capture + translate cycle.
func (a *AutoTranslator) iterate(ctx context.Context) {
	if ctx.Err() != nil || a.Source == nil || a.Capturer == nil || a.Runner == nil {
		return
	}
	r, ok := a.Source.AutoRegion()
	if !ok {
		return
	}
	a.cycles.Add(1)
	frame, err := a.Capturer.Capture(ctx, r)
	if err != nil {
		if a.Logger != nil {
			a.Logger.Error("auto capture failed", "region", r, "error", err)
		}
		a.post(AutoOutcome{Err: err})
		return
	}
	seq, ok := a.Source.SetCaptured(frame.Image)
	if !ok {
		// auto mode was switched off while capturing
		return
	}
	res, err := a.Runner.TranslateOnce(ctx, frame.Image)
	if err != nil && a.Logger != nil {
		a.Logger.Error("auto translate failed", "pass", res.PassID, "error", err)
	}
	a.post(AutoOutcome{Sequence: seq, Image: frame.Image, Result: res, Err: err})
}

// post replaces any undelivered outcome with o.
func (a *AutoTranslator) post(o AutoOutcome) {
	select {
	case a.outcomes <- o:
	default:
		select {
		case <-a.outcomes:
		default:
		}
		select {
		case a.outcomes <- o:
		default:
		}
	}
}
