package presenter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/soocke/pixel-translate-go/domain/capture"
	"github.com/soocke/pixel-translate-go/domain/pipeline"
	"github.com/soocke/pixel-translate-go/ui/images"
	"github.com/soocke/pixel-translate-go/ui/model"
)

// ErrNoRegion is returned when an action needs a capture region and none is set.
var ErrNoRegion = errors.New("capture region not set")

// User-visible messages.
const (
	MsgSetRegionFirst     = "Set the capture region before translating."
	MsgRegionNotSet       = "The capture region has not been set."
	MsgSelectAgain        = "No region selected, please set the capture region again."
	MsgSelectionCancelled = "Region selection cancelled."
	MsgNothingToTranslate = "There is no image to translate."
	MsgNothingToCopy      = "There is no translation to copy."
	MsgCopied             = "Translation copied to the clipboard."
	MsgAutoStopped        = "Auto translate stopped."
	MsgAutoStarted        = "Auto translate started."
)

// ShellState is the application state the shell mutates.
type ShellState interface {
	Region() (image.Rectangle, bool)
	SetRegion(r image.Rectangle)
	ClearRegion()
	Auto() bool
	EnableAuto() bool
	DisableAuto() bool
	SetImage(img image.Image, src model.ImageSource) uint64
	Image() (image.Image, model.ImageSource, uint64)
	SetResult(source, target string)
	Result() (source, target string)
}

// ShellView is the UI surface updated by the shell. Implementations must be
// called on the UI thread only.
type ShellView interface {
	SetStatus(text string)
	SetAutoLabel(on bool)
	ConfigEditable(enabled bool)
	ShowImage(img image.Image)
	ShowTexts(source, target string)
}

// Clipboard receives copied translations.
type Clipboard interface {
	WriteText(text string) error
}

// ShellPresenter routes the user actions: load image, set region, translate
// once, toggle auto-translate and copy. Every method runs on the UI thread.
type ShellPresenter struct {
	State     ShellState
	Runner    PassRunner
	View      ShellView
	Clipboard Clipboard
	Stats     *model.PassStats
	Logger    *slog.Logger
	// LoadFile decodes an image file; defaults to images.Load.
	LoadFile func(path string) (image.Image, error)

	ctx context.Context
}

// NewShellPresenter constructs the presenter. ctx bounds synchronous passes.
func NewShellPresenter(ctx context.Context, state ShellState, runner PassRunner, view ShellView, stats *model.PassStats, logger *slog.Logger) *ShellPresenter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ShellPresenter{State: state, Runner: runner, View: view, Stats: stats, Logger: logger, LoadFile: images.Load, ctx: ctx}
}

// Init shows the startup hints.
func (p *ShellPresenter) Init() {
	if p == nil || p.View == nil {
		return
	}
	p.View.SetStatus(MsgSetRegionFirst)
	p.showAuto(false)
}

// LoadImage replaces the current image with the file at path. An empty path
// means the picker was dismissed. The region is kept; auto mode is turned off
// so the next tick does not overwrite the loaded image.
func (p *ShellPresenter) LoadImage(path string) error {
	if p == nil || p.State == nil || p.View == nil || path == "" {
		return nil
	}
	load := p.LoadFile
	if load == nil {
		load = images.Load
	}
	img, err := load(path)
	if err != nil {
		p.logError("load image failed", err, "path", path)
		p.View.SetStatus(fmt.Sprintf("Could not load %s: %v", filepath.Base(path), err))
		return err
	}
	if p.State.DisableAuto() {
		p.showAuto(false)
	}
	p.State.SetImage(img, model.SourceFile)
	p.View.ShowImage(img)
	b := img.Bounds()
	p.View.SetStatus(fmt.Sprintf("Loaded %s (%dx%d)", filepath.Base(path), b.Dx(), b.Dy()))
	if p.Logger != nil {
		p.Logger.Info("image loaded", "path", path, "width", b.Dx(), "height", b.Dy())
	}
	return nil
}

// BeginSelection prepares for the region selector: auto mode is switched off
// while the region changes.
func (p *ShellPresenter) BeginSelection() {
	if p == nil || p.State == nil || p.View == nil {
		return
	}
	if p.State.DisableAuto() {
		p.showAuto(false)
	}
	if p.Logger != nil {
		if _, ok := p.State.Region(); ok {
			p.Logger.Info("resetting capture region")
		} else {
			p.Logger.Info("initialising capture region")
		}
	}
}

// FinishSelection receives the selector result. ok is false when the user
// cancelled; the previous region is left untouched. A zero-area rectangle
// clears the region. snapshot, when non-nil, is the full-screen backdrop the
// selection was drawn on and supplies the preview.
func (p *ShellPresenter) FinishSelection(r image.Rectangle, snapshot image.Image, ok bool) {
	if p == nil || p.State == nil || p.View == nil {
		return
	}
	if !ok {
		p.View.SetStatus(MsgSelectionCancelled)
		return
	}
	r = capture.NormalizeRect(r.Min, r.Max)
	if !capture.RegionSet(r) {
		p.State.ClearRegion()
		p.View.SetStatus(MsgSelectAgain)
		return
	}
	p.State.SetRegion(r)
	if p.Logger != nil {
		p.Logger.Info("capture region set", "region", r)
	}
	if snapshot != nil {
		if crop, ok := images.CropRegion(snapshot, r); ok {
			p.State.SetImage(crop, model.SourceSelection)
			p.View.ShowImage(crop)
		}
	}
	p.View.SetStatus(RegionLabel(r))
}

// showAuto updates the auto indicator. The settings form is locked while
// auto mode runs.
func (p *ShellPresenter) showAuto(on bool) {
	p.View.SetAutoLabel(on)
	p.View.ConfigEditable(!on)
}

// RegionLabel formats a region for the status line.
func RegionLabel(r image.Rectangle) string {
	return fmt.Sprintf("Capture region: (%d, %d) - (%d, %d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// TranslateOnce runs one pass over the current image and displays both texts.
// Without an image the OCR box shows MsgNothingToTranslate and no model is
// invoked. On model errors the previously displayed texts stay.
func (p *ShellPresenter) TranslateOnce() error {
	if p == nil || p.State == nil || p.View == nil || p.Runner == nil {
		return nil
	}
	img, _, _ := p.State.Image()
	res, err := p.Runner.TranslateOnce(p.ctx, img)
	switch {
	case errors.Is(err, pipeline.ErrNothingToTranslate):
		p.View.ShowTexts(MsgNothingToTranslate, "")
		return err
	case err != nil:
		p.Stats.RecordFailure()
		p.logError("translate failed", err, "pass", res.PassID)
		p.View.SetStatus(fmt.Sprintf("Translation failed: %v", err))
		return err
	}
	p.apply(res)
	return nil
}

// ToggleAuto flips auto-translate. Enabling without a region is refused:
// the flag stays off and ErrNoRegion is returned.
func (p *ShellPresenter) ToggleAuto() error {
	if p == nil || p.State == nil || p.View == nil {
		return nil
	}
	if p.State.Auto() {
		p.State.DisableAuto()
		p.showAuto(false)
		p.View.SetStatus(MsgAutoStopped)
		return nil
	}
	if !p.State.EnableAuto() {
		p.showAuto(false)
		p.View.SetStatus(MsgRegionNotSet)
		return ErrNoRegion
	}
	p.showAuto(true)
	p.View.SetStatus(MsgAutoStarted)
	return nil
}

// ApplyAutoOutcome displays the result of an auto iteration. Outcomes whose
// image has since been replaced (file load, new selection) are dropped.
func (p *ShellPresenter) ApplyAutoOutcome(o AutoOutcome) {
	if p == nil || p.State == nil || p.View == nil {
		return
	}
	if o.Image == nil {
		p.Stats.RecordFailure()
		if o.Err != nil {
			p.View.SetStatus(fmt.Sprintf("Capture failed: %v", o.Err))
		}
		return
	}
	if _, _, seq := p.State.Image(); seq != o.Sequence {
		return
	}
	p.View.ShowImage(o.Image)
	if o.Err != nil {
		p.Stats.RecordFailure()
		p.View.SetStatus(fmt.Sprintf("Translation failed: %v", o.Err))
		return
	}
	p.apply(o.Result)
}

// CopyTranslation puts the last translation on the clipboard.
func (p *ShellPresenter) CopyTranslation() error {
	if p == nil || p.State == nil || p.View == nil {
		return nil
	}
	_, target := p.State.Result()
	if target == "" {
		p.View.SetStatus(MsgNothingToCopy)
		return nil
	}
	if p.Clipboard == nil {
		return errors.New("clipboard unavailable")
	}
	if err := p.Clipboard.WriteText(target); err != nil {
		p.logError("clipboard write failed", err)
		p.View.SetStatus(fmt.Sprintf("Copy failed: %v", err))
		return err
	}
	p.View.SetStatus(MsgCopied)
	return nil
}

func (p *ShellPresenter) apply(res pipeline.Result) {
	p.Stats.RecordSuccess(res.OCRTime, res.Total)
	p.State.SetResult(res.Source, res.Target)
	p.View.ShowTexts(res.Source, res.Target)
}

func (p *ShellPresenter) logError(msg string, err error, args ...any) {
	if p.Logger == nil {
		return
	}
	p.Logger.Error(msg, append(args, "error", err)...)
}
