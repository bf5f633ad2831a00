package presenter

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/soocke/pixel-translate-go/domain/pipeline"
	"github.com/soocke/pixel-translate-go/ui/model"
)

func newAuto(interval time.Duration) (*AutoTranslator, *model.AppState, *fakeCapturer, *fakeOCR) {
	state := model.NewAppState()
	capt := &fakeCapturer{}
	ocr := &fakeOCR{text: "こんにちは"}
	tr := &markerTranslator{table: map[string]string{"ja2zh: こんにちは": "你好"}}
	a := NewAutoTranslator(state, capt, pipeline.New(ocr, tr, nil), interval, nil)
	return a, state, capt, ocr
}

func TestAutoTranslator_NoCyclesWhileOff(t *testing.T) {
	a, state, capt, ocr := newAuto(10 * time.Millisecond)
	state.SetRegion(image.Rect(0, 0, 10, 10))
	a.Start(context.Background())
	time.Sleep(80 * time.Millisecond)
	a.Stop()
	if capt.count() != 0 || ocr.calls.Load() != 0 || a.Cycles() != 0 {
		t.Fatalf("expected no cycles while off: captures=%d ocr=%d", capt.count(), ocr.calls.Load())
	}
}

func TestAutoTranslator_CyclesEveryInterval(t *testing.T) {
	interval := 20 * time.Millisecond
	a, state, capt, _ := newAuto(interval)
	state.SetRegion(image.Rect(0, 0, 10, 10))
	state.EnableAuto()
	a.Start(context.Background())
	time.Sleep(10 * interval)
	a.Stop()
	// generous lower bound for scheduler jitter on loaded CI machines
	if n := capt.count(); n < 3 {
		t.Fatalf("expected several cycles in %v, got %d", 10*interval, n)
	}
	select {
	case o := <-a.Outcomes():
		if o.Err != nil || o.Result.Source != "こんにちは" || o.Result.Target != "你好" {
			t.Fatalf("unexpected outcome %+v", o)
		}
	default:
		t.Fatalf("no outcome posted")
	}
}

func TestAutoTranslator_StopsCyclingWhenFlagCleared(t *testing.T) {
	interval := 15 * time.Millisecond
	a, state, capt, _ := newAuto(interval)
	state.SetRegion(image.Rect(0, 0, 10, 10))
	state.EnableAuto()
	a.Start(context.Background())
	time.Sleep(6 * interval)
	state.DisableAuto()
	// let an in-flight iteration finish
	time.Sleep(2 * interval)
	before := capt.count()
	time.Sleep(6 * interval)
	a.Stop()
	if capt.count() != before {
		t.Fatalf("captures continued after auto was disabled: %d -> %d", before, capt.count())
	}
}

func TestAutoTranslator_FailuresDoNotStopLoop(t *testing.T) {
	interval := 10 * time.Millisecond
	a, state, capt, _ := newAuto(interval)
	capt.err = errBoom
	state.SetRegion(image.Rect(0, 0, 10, 10))
	state.EnableAuto()
	a.Start(context.Background())
	time.Sleep(12 * interval)
	if !a.Running() {
		t.Fatalf("loop exited after failures")
	}
	a.Stop()
	if capt.count() < 2 {
		t.Fatalf("loop should keep polling after errors, got %d captures", capt.count())
	}
	o := <-a.Outcomes()
	if o.Err == nil || o.Image != nil {
		t.Fatalf("expected failed outcome, got %+v", o)
	}
}

func TestAutoTranslator_StartStopIdempotent(t *testing.T) {
	a, _, _, _ := newAuto(time.Hour)
	a.Stop()
	a.Start(context.Background())
	a.Start(context.Background())
	if !a.Running() {
		t.Fatalf("task should be running")
	}
	a.Stop()
	a.Stop()
	if a.Running() {
		t.Fatalf("task should have exited")
	}
}

func TestAutoTranslator_ContextCancel(t *testing.T) {
	a, _, _, _ := newAuto(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)
	cancel()
	deadline := time.Now().Add(time.Second)
	for a.Running() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if a.Running() {
		t.Fatalf("task ignored context cancellation")
	}
	a.Stop()
}

func TestAutoTranslator_DefaultInterval(t *testing.T) {
	a := NewAutoTranslator(nil, nil, nil, 0, nil)
	if a.Interval() != 2*time.Second {
		t.Fatalf("default interval = %v", a.Interval())
	}
}

func TestAutoTranslator_SetInterval(t *testing.T) {
	a := NewAutoTranslator(nil, nil, nil, time.Second, nil)
	a.SetInterval(250 * time.Millisecond)
	if a.Interval() != 250*time.Millisecond {
		t.Fatalf("interval = %v", a.Interval())
	}
	a.SetInterval(-1)
	if a.Interval() != 2*time.Second {
		t.Fatalf("non-positive interval should restore default, got %v", a.Interval())
	}
}
