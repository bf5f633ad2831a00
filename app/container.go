package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/pixel-translate-go/config"
	"github.com/soocke/pixel-translate-go/domain/action"
	"github.com/soocke/pixel-translate-go/domain/capture"
	"github.com/soocke/pixel-translate-go/domain/ocr"
	"github.com/soocke/pixel-translate-go/domain/pipeline"
	"github.com/soocke/pixel-translate-go/domain/translate"
	"github.com/soocke/pixel-translate-go/ui/model"
	"github.com/soocke/pixel-translate-go/ui/presenter"
	"github.com/soocke/pixel-translate-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	// Models
	State   *model.AppState
	Session *model.SessionModel
	Stats   *model.PassStats

	// Services
	CaptureSvc *capture.Service
	OCR        ocr.Recognizer
	Translator translate.Translator
	Decoding   *translate.Params
	Pipeline   *pipeline.Pipeline
	Clipboard  *action.Clipboard

	RootView *view.RootView

	// Presenters
	Shell            *presenter.ShellPresenter
	SessionPresenter *presenter.SessionPresenter
	Auto             *presenter.AutoTranslator
	Loop             *presenter.Loop
}

// LoadModels builds the OCR and translation backends. Both must load before
// the window opens; a failure is an *ocr.LoadError or *translate.LoadError
// naming the model.
func LoadModels(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ocr.Recognizer, translate.Translator, *translate.Params, error) {
	rec, err := ocr.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	params := translate.NewParams(translate.DecodingFromConfig(cfg))
	tr, err := translate.New(ctx, cfg, params, logger)
	if err != nil {
		_ = ocr.Close(rec)
		return nil, nil, nil, err
	}
	return rec, tr, params, nil
}

// BuildContainer constructs all components around already loaded models.
// ctx bounds every pass started from the UI or the auto task.
func BuildContainer(ctx context.Context, cfg *config.Config, cfgPath string, logger *slog.Logger, rec ocr.Recognizer, tr translate.Translator, params *translate.Params) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger, OCR: rec, Translator: tr, Decoding: params}
	c.State = model.NewAppState()
	c.Session = model.NewSessionModel()
	c.Stats = &model.PassStats{}
	c.CaptureSvc = capture.NewService(capture.NewGrabber(cfg.CaptureBackend), logger)
	c.Pipeline = pipeline.New(rec, tr, logger)
	c.Pipeline.SetTimeout(time.Duration(cfg.InferenceTimeoutMs) * time.Millisecond)
	c.Clipboard = action.NewClipboard()

	// View; Build is called by the app once handlers exist.
	c.RootView = view.NewRootView(cfg, cfgPath, logger)

	c.Shell = presenter.NewShellPresenter(ctx, c.State, c.Pipeline, c.RootView, c.Stats, logger)
	c.Shell.Clipboard = c.Clipboard
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.State, c.Stats, c.RootView, c.RootView)
	c.Auto = presenter.NewAutoTranslator(c.State, c.CaptureSvc, c.Pipeline, time.Duration(cfg.AutoIntervalMs)*time.Millisecond, logger)
	return c
}

// ApplyConfig pushes runtime-editable settings into the running services.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	if c == nil || cfg == nil {
		return
	}
	c.Auto.SetInterval(time.Duration(cfg.AutoIntervalMs) * time.Millisecond)
	c.Pipeline.SetTimeout(time.Duration(cfg.InferenceTimeoutMs) * time.Millisecond)
	if c.Decoding != nil {
		c.Decoding.Update(cfg)
	}
	if p, ok := c.OCR.(*ocr.Preprocessed); ok {
		p.SetEnabled(cfg.OCRPreprocess)
	}
	if c.Logger != nil {
		c.Logger.Info("settings applied",
			"auto_interval_ms", cfg.AutoIntervalMs,
			"num_beams", cfg.NumBeams,
			"max_length", cfg.MaxLength,
			"inference_timeout_ms", cfg.InferenceTimeoutMs,
			"ocr_preprocess", cfg.OCRPreprocess,
		)
	}
}

// Close releases model resources.
func (c *AppContainer) Close() {
	if c == nil {
		return
	}
	if err := ocr.Close(c.OCR); err != nil && c.Logger != nil {
		c.Logger.Error("close ocr", "error", err)
	}
}
