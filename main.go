package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/pixel-translate-go/app"
	"github.com/soocke/pixel-translate-go/config"
	"github.com/soocke/pixel-translate-go/domain/action"
	"github.com/soocke/pixel-translate-go/domain/ocr"
	"github.com/soocke/pixel-translate-go/domain/translate"
)

// modelLoadTimeout bounds the startup model checks.
const modelLoadTimeout = 2 * time.Minute

func main() {
	config.LoadDotenv()

	cfgPath := config.DefaultPath()
	cfg, cfgErr := config.Load(cfgPath)

	// Set up logger
	logger := NewLogger(cfg.Debug)
	if cfgErr != nil {
		logger.Warn("config load failed, using defaults", "path", cfgPath, "error", cfgErr)
	}
	logger.Info("config loaded", "path", cfgPath, "ocr", cfg.OCRBackend, "translator", cfg.TranslatorBackend)

	action.EnableDPIAwareness(logger)

	ctx := context.Background()

	loadCtx, cancel := context.WithTimeout(ctx, modelLoadTimeout)
	rec, tr, params, err := app.LoadModels(loadCtx, cfg, logger)
	cancel()
	if err != nil {
		var ocrErr *ocr.LoadError
		var trErr *translate.LoadError
		switch {
		case errors.As(err, &ocrErr):
			logger.Error("ocr model failed to load", "model", ocrErr.Model, "error", ocrErr.Err)
		case errors.As(err, &trErr):
			logger.Error("translation model failed to load", "model", trErr.Model, "error", trErr.Err)
		default:
			logger.Error("model load failed", "error", err)
		}
		os.Exit(1)
	}

	c := app.BuildContainer(ctx, cfg, cfgPath, logger, rec, tr, params)
	application := app.NewApp(ctx, "Pixel Translate", c)
	application.Start()
}
