package presenter

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/soocke/pixel-translate-go/domain/pipeline"
	"github.com/soocke/pixel-translate-go/ui/model"
)

func newShell() (*ShellPresenter, *model.AppState, *mockView, *fakeOCR) {
	state := model.NewAppState()
	view := &mockView{}
	ocr := &fakeOCR{text: "こんにちは"}
	tr := &markerTranslator{table: map[string]string{"ja2zh: こんにちは": "你好"}}
	p := NewShellPresenter(context.Background(), state, pipeline.New(ocr, tr, nil), view, &model.PassStats{}, nil)
	return p, state, view, ocr
}

func TestShell_TranslateOnceDisplaysBothTexts(t *testing.T) {
	p, state, view, _ := newShell()
	state.SetImage(image.NewRGBA(image.Rect(0, 0, 20, 10)), model.SourceFile)
	if err := p.TranslateOnce(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.source != "こんにちは" || view.target != "你好" {
		t.Fatalf("displayed (%q, %q)", view.source, view.target)
	}
	if src, dst := state.Result(); src != "こんにちは" || dst != "你好" {
		t.Fatalf("state result (%q, %q)", src, dst)
	}
	if p.Stats.Snapshot().Passes != 1 {
		t.Fatalf("pass not counted")
	}
}

func TestShell_TranslateWithoutImage(t *testing.T) {
	p, _, view, ocr := newShell()
	err := p.TranslateOnce()
	if !errors.Is(err, pipeline.ErrNothingToTranslate) {
		t.Fatalf("expected nothing-to-translate, got %v", err)
	}
	if view.source != MsgNothingToTranslate || view.target != "" {
		t.Fatalf("unexpected display (%q, %q)", view.source, view.target)
	}
	if ocr.calls.Load() != 0 {
		t.Fatalf("ocr must not be invoked without an image")
	}
}

func TestShell_ModelErrorKeepsPriorText(t *testing.T) {
	p, state, view, ocr := newShell()
	state.SetImage(image.NewRGBA(image.Rect(0, 0, 4, 4)), model.SourceFile)
	if err := p.TranslateOnce(); err != nil {
		t.Fatal(err)
	}
	ocr.err = errBoom
	if err := p.TranslateOnce(); err == nil {
		t.Fatalf("expected error")
	}
	if view.source != "こんにちは" || view.target != "你好" || view.texts != 1 {
		t.Fatalf("prior text should stay, got (%q, %q) after %d updates", view.source, view.target, view.texts)
	}
	if p.Stats.Snapshot().Failures != 1 {
		t.Fatalf("failure not counted")
	}
}

func TestShell_ToggleAutoWithoutRegion(t *testing.T) {
	p, state, view, _ := newShell()
	err := p.ToggleAuto()
	if !errors.Is(err, ErrNoRegion) {
		t.Fatalf("expected ErrNoRegion, got %v", err)
	}
	if state.Auto() || view.auto {
		t.Fatalf("auto flag must stay false")
	}
	if view.lastStatus() != MsgRegionNotSet {
		t.Fatalf("status = %q", view.lastStatus())
	}
}

func TestShell_ToggleAutoCycle(t *testing.T) {
	p, state, view, _ := newShell()
	p.FinishSelection(image.Rect(10, 10, 110, 60), nil, true)
	if err := p.ToggleAuto(); err != nil {
		t.Fatal(err)
	}
	if !state.Auto() || !view.auto {
		t.Fatalf("auto should be on")
	}
	if err := p.ToggleAuto(); err != nil {
		t.Fatal(err)
	}
	if state.Auto() || view.auto {
		t.Fatalf("auto should be off")
	}
}

func TestShell_FinishSelection(t *testing.T) {
	p, state, view, _ := newShell()
	snapshot := image.NewRGBA(image.Rect(0, 0, 400, 300))

	// reverse drag is normalised
	p.FinishSelection(image.Rectangle{Min: image.Pt(200, 150), Max: image.Pt(50, 40)}, snapshot, true)
	r, ok := state.Region()
	if !ok || r != image.Rect(50, 40, 200, 150) {
		t.Fatalf("region = %v ok=%v", r, ok)
	}
	if view.lastStatus() != RegionLabel(r) {
		t.Fatalf("status = %q", view.lastStatus())
	}
	img, src, _ := state.Image()
	if img == nil || img.Bounds().Dx() != 150 || img.Bounds().Dy() != 110 || src != model.SourceSelection {
		t.Fatalf("preview crop not stored: %v %v", img, src)
	}

	// cancel keeps the region
	p.FinishSelection(image.Rectangle{}, nil, false)
	if got, ok := state.Region(); !ok || got != r {
		t.Fatalf("cancel changed region to %v", got)
	}
	if view.lastStatus() != MsgSelectionCancelled {
		t.Fatalf("status = %q", view.lastStatus())
	}

	// zero-area release clears it
	p.FinishSelection(image.Rect(70, 70, 70, 70), snapshot, true)
	if _, ok := state.Region(); ok {
		t.Fatalf("zero-area selection should unset the region")
	}
	if view.lastStatus() != MsgSelectAgain {
		t.Fatalf("status = %q", view.lastStatus())
	}
}

func TestShell_BeginSelectionDisablesAuto(t *testing.T) {
	p, state, view, _ := newShell()
	state.SetRegion(image.Rect(0, 0, 10, 10))
	_ = p.ToggleAuto()
	p.BeginSelection()
	if state.Auto() || view.auto {
		t.Fatalf("auto should be off while selecting")
	}
}

func TestShell_LoadImageKeepsRegionAndStopsAuto(t *testing.T) {
	p, state, view, _ := newShell()
	state.SetRegion(image.Rect(0, 0, 10, 10))
	_ = p.ToggleAuto()
	loaded := image.NewRGBA(image.Rect(0, 0, 32, 16))
	p.LoadFile = func(path string) (image.Image, error) { return loaded, nil }
	if err := p.LoadImage("/tmp/page.png"); err != nil {
		t.Fatal(err)
	}
	if _, ok := state.Region(); !ok {
		t.Fatalf("region should be kept")
	}
	if state.Auto() || view.auto {
		t.Fatalf("auto should be switched off by a file load")
	}
	img, src, _ := state.Image()
	if img != loaded || src != model.SourceFile {
		t.Fatalf("loaded image not current")
	}
	if len(view.images) == 0 || view.images[len(view.images)-1] != loaded {
		t.Fatalf("loaded image not shown")
	}

	p.LoadFile = func(string) (image.Image, error) { return nil, errBoom }
	if err := p.LoadImage("/tmp/broken.png"); err == nil {
		t.Fatalf("expected load error")
	}
	if img, _, _ := state.Image(); img != loaded {
		t.Fatalf("failed load replaced the image")
	}
	if err := p.LoadImage(""); err != nil {
		t.Fatalf("dismissed picker should be a no-op, got %v", err)
	}
}

func TestShell_ApplyAutoOutcome(t *testing.T) {
	p, state, view, _ := newShell()
	state.SetRegion(image.Rect(0, 0, 8, 8))
	state.EnableAuto()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	seq, _ := state.SetCaptured(img)

	p.ApplyAutoOutcome(AutoOutcome{Sequence: seq, Image: img, Result: pipeline.Result{Source: "こんにちは", Target: "你好"}})
	if view.source != "こんにちは" || view.target != "你好" {
		t.Fatalf("outcome not displayed")
	}

	// superseded by a file load
	state.SetImage(image.NewRGBA(image.Rect(0, 0, 2, 2)), model.SourceFile)
	p.ApplyAutoOutcome(AutoOutcome{Sequence: seq, Image: img, Result: pipeline.Result{Source: "古い", Target: "旧"}})
	if view.source != "こんにちは" {
		t.Fatalf("stale outcome applied")
	}

	p.ApplyAutoOutcome(AutoOutcome{Err: errBoom})
	if p.Stats.Snapshot().Failures != 1 {
		t.Fatalf("capture failure not counted")
	}
}

func TestShell_CopyTranslation(t *testing.T) {
	p, state, view, _ := newShell()
	clip := &fakeClipboard{}
	p.Clipboard = clip
	if err := p.CopyTranslation(); err != nil || view.lastStatus() != MsgNothingToCopy {
		t.Fatalf("empty copy: err=%v status=%q", err, view.lastStatus())
	}
	state.SetResult("こんにちは", "你好")
	if err := p.CopyTranslation(); err != nil {
		t.Fatal(err)
	}
	if clip.text != "你好" || view.lastStatus() != MsgCopied {
		t.Fatalf("clipboard=%q status=%q", clip.text, view.lastStatus())
	}
	clip.err = errBoom
	if err := p.CopyTranslation(); !errors.Is(err, errBoom) {
		t.Fatalf("expected clipboard error, got %v", err)
	}
}

func TestShell_Init(t *testing.T) {
	p, _, view, _ := newShell()
	p.Init()
	if view.lastStatus() != MsgSetRegionFirst || view.autoSets != 1 || view.auto {
		t.Fatalf("unexpected startup state: %q auto=%v", view.lastStatus(), view.auto)
	}
}

func TestShell_SettingsLockedWhileAutoRuns(t *testing.T) {
	p, state, view, _ := newShell()
	p.Init()
	if !view.editable {
		t.Fatalf("settings should be editable at startup")
	}
	if err := p.ToggleAuto(); err == nil || !view.editable {
		t.Fatalf("refused toggle must leave settings editable, err=%v", err)
	}
	state.SetRegion(image.Rect(0, 0, 10, 10))
	_ = p.ToggleAuto()
	if view.editable {
		t.Fatalf("settings should be locked while auto runs")
	}
	_ = p.ToggleAuto()
	if !view.editable {
		t.Fatalf("settings should unlock when auto stops")
	}
	_ = p.ToggleAuto()
	p.BeginSelection()
	if !view.editable {
		t.Fatalf("settings should unlock when selection stops auto")
	}
	_ = p.ToggleAuto()
	p.LoadFile = func(string) (image.Image, error) { return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil }
	if err := p.LoadImage("page.png"); err != nil {
		t.Fatal(err)
	}
	if !view.editable {
		t.Fatalf("settings should unlock when a file load stops auto")
	}
}
