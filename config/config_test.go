package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_ClampsInvalidValues(t *testing.T) {
	c := &Config{
		OCRBackend:            "bogus",
		TranslatorBackend:     "OLLAMA",
		NumBeams:              -1,
		MaxLength:             0,
		AutoIntervalMs:        10,
		CaptureBackend:        "",
		DisplayWidth:          1,
		SelectionOutlineColor: "not-a-color",
		CacheSize:             -5,
	}
	_ = c.Validate()
	def := DefaultConfig()
	if c.OCRBackend != def.OCRBackend {
		t.Fatalf("ocr backend not reset: %q", c.OCRBackend)
	}
	if c.TranslatorBackend != TranslatorOllama {
		t.Fatalf("translator backend should be normalised to lower case, got %q", c.TranslatorBackend)
	}
	if c.NumBeams != def.NumBeams || c.MaxLength != def.MaxLength {
		t.Fatalf("decoding params not reset: beams=%d max=%d", c.NumBeams, c.MaxLength)
	}
	if c.AutoIntervalMs != def.AutoIntervalMs {
		t.Fatalf("interval not reset: %d", c.AutoIntervalMs)
	}
	if c.CaptureBackend != CaptureVova {
		t.Fatalf("capture backend not defaulted: %q", c.CaptureBackend)
	}
	if c.DisplayWidth != def.DisplayWidth || c.DisplayHeight != def.DisplayHeight {
		t.Fatalf("display area not reset: %dx%d", c.DisplayWidth, c.DisplayHeight)
	}
	if c.SelectionOutlineColor != def.SelectionOutlineColor {
		t.Fatalf("outline colour not reset: %q", c.SelectionOutlineColor)
	}
	if c.CacheSize != 0 {
		t.Fatalf("negative cache size should clamp to 0, got %d", c.CacheSize)
	}
	if c.DirectionMarker != "ja2zh: " {
		t.Fatalf("marker not defaulted: %q", c.DirectionMarker)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AutoIntervalMs != 2000 || cfg.NumBeams != 4 || cfg.MaxLength != 100 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestSaveLoad_PreservesEditedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.AutoIntervalMs = 3500
	cfg.OCRBackend = OCROllama
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.AutoIntervalMs != 3500 || got.OCRBackend != OCROllama {
		t.Fatalf("round trip lost edits: interval=%d backend=%q", got.AutoIntervalMs, got.OCRBackend)
	}
}

func TestLoad_BadJSONReturnsDefaultsWithError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.MaxLength != 100 {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}

func TestLoad_BadJSONStillAppliesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPrefix+"AUTO_INTERVAL_MS", "4000")
	t.Setenv(EnvPrefix+"NUM_BEAMS", "-3")
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg.AutoIntervalMs != 4000 {
		t.Fatalf("env override ignored on bad file: interval=%d", cfg.AutoIntervalMs)
	}
	if cfg.NumBeams != 4 {
		t.Fatalf("env value should still be validated, beams=%d", cfg.NumBeams)
	}
}

func TestLoad_UnreadablePathStillAppliesEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"OCR_BACKEND", "ollama")
	// a directory cannot be decoded as a config file
	cfg, err := Load(t.TempDir())
	if err == nil {
		t.Fatalf("expected error for directory path")
	}
	if cfg.OCRBackend != OCROllama {
		t.Fatalf("env override ignored on unreadable file: %q", cfg.OCRBackend)
	}
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	t.Setenv(EnvPrefix+"OCR_BACKEND", "ollama")
	t.Setenv(EnvPrefix+"AUTO_INTERVAL_MS", "5000")
	t.Setenv(EnvPrefix+"DEBUG", "true")
	t.Setenv(EnvPrefix+"NUM_BEAMS", "not-a-number")
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.OCRBackend != OCROllama || cfg.AutoIntervalMs != 5000 || !cfg.Debug {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.NumBeams != 4 {
		t.Fatalf("unparsable env should be ignored, got beams=%d", cfg.NumBeams)
	}
}

func TestModelPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelsRoot = "root"
	if got, want := cfg.OCRModelPath(), filepath.Join("root", "manga_ocr_base"); got != want {
		t.Fatalf("ocr path %q want %q", got, want)
	}
	if got, want := cfg.TranslatorModelPath(), filepath.Join("root", "mt5_zh_ja_en_trimmed"); got != want {
		t.Fatalf("translator path %q want %q", got, want)
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.json")
	if got := DefaultPath(); got != "/tmp/custom.json" {
		t.Fatalf("DefaultPath = %q", got)
	}
}
