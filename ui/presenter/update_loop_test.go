package presenter

import (
	"image"
	"testing"
	"time"

	"github.com/soocke/pixel-translate-go/domain/pipeline"
	"github.com/soocke/pixel-translate-go/ui/model"
)

type mockSessionView struct {
	session, total time.Duration
	calls          int
	stats          []model.PassSnapshot
}

func (v *mockSessionView) SetSession(session, total time.Duration) {
	v.session, v.total = session, total
	v.calls++
}

func (v *mockSessionView) SetPassStats(s model.PassSnapshot) { v.stats = append(v.stats, s) }

func TestLoop_TickDrainsHotkeysAndOutcomes(t *testing.T) {
	shell, state, view, _ := newShell()
	state.SetRegion(image.Rect(0, 0, 8, 8))
	hotkeys := make(chan HotkeyRequest, 4)
	outcomes := make(chan AutoOutcome, 1)
	scheduled := 0
	l := NewLoop(shell, nil, outcomes, hotkeys, func() { scheduled++ })

	hotkeys <- HotkeyToggleAuto
	l.Tick()
	if !state.Auto() || !view.auto {
		t.Fatalf("hotkey should toggle auto on")
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	seq, _ := state.SetCaptured(img)
	outcomes <- AutoOutcome{Sequence: seq, Image: img, Result: pipeline.Result{Source: "こんにちは", Target: "你好"}}
	l.Tick()
	if view.target != "你好" {
		t.Fatalf("outcome not applied")
	}
	if scheduled != 2 {
		t.Fatalf("schedule called %d times", scheduled)
	}

	hotkeys <- HotkeyToggleAuto
	hotkeys <- HotkeyToggleAuto
	hotkeys <- HotkeyToggleAuto
	l.Tick()
	if state.Auto() {
		t.Fatalf("three toggles from on should leave auto off")
	}
}

func TestLoop_NilSafe(t *testing.T) {
	var l *Loop
	l.Tick()
	(&Loop{}).Tick()
}

func TestSessionPresenter_Tick(t *testing.T) {
	state := model.NewAppState()
	state.SetRegion(image.Rect(0, 0, 4, 4))
	stats := &model.PassStats{}
	view := &mockSessionView{}
	p := NewSessionPresenter(model.NewSessionModel(), state, stats, view, view)

	base := time.Unix(100, 0)
	state.EnableAuto()
	p.Tick(base)
	p.Tick(base.Add(3 * time.Second))
	if view.session != 3*time.Second || view.total != 3*time.Second {
		t.Fatalf("session=%v total=%v", view.session, view.total)
	}
	if len(view.stats) != 0 {
		t.Fatalf("unchanged stats should not be pushed")
	}
	stats.RecordSuccess(time.Millisecond, 2*time.Millisecond)
	p.Tick(base.Add(4 * time.Second))
	p.Tick(base.Add(5 * time.Second))
	if len(view.stats) != 1 || view.stats[0].Passes != 1 {
		t.Fatalf("stats pushes = %+v", view.stats)
	}
}
