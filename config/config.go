package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	appDirName     = "pixel-translate"
	configFileName = "config.json"

	// EnvPrefix prefixes every environment override, e.g. PIXEL_TRANSLATE_OCR_BACKEND.
	EnvPrefix = "PIXEL_TRANSLATE_"
	// EnvConfigPath points at an alternative config file.
	EnvConfigPath = EnvPrefix + "CONFIG"
)

// Backend identifiers.
const (
	OCRTesseract      = "tesseract"
	OCROllama         = "ollama"
	TranslatorSeq2Seq = "seq2seq"
	TranslatorOllama  = "ollama"
	CaptureVova       = "vova"
	CaptureKbinani    = "kbinani"
)

// Config holds runtime configuration for the models, capture and UI.
// Fields are loaded from a JSON file and may be overridden by environment variables.
type Config struct {
	Debug bool `json:"debug"`

	// Model locations. Each model lives in its own directory under ModelsRoot.
	ModelsRoot         string `json:"models_root"`
	OCRModelDir        string `json:"ocr_model_dir"`
	TranslatorModelDir string `json:"translator_model_dir"`

	// OCR
	OCRBackend    string `json:"ocr_backend"`
	OCRLanguage   string `json:"ocr_language"`
	OCRPreprocess bool   `json:"ocr_preprocess"`

	// Translation
	TranslatorBackend    string `json:"translator_backend"`
	TranslatorEndpoint   string `json:"translator_endpoint"`
	DirectionMarker      string `json:"direction_marker"`
	NumBeams             int    `json:"num_beams"`
	MaxLength            int    `json:"max_length"`
	CacheSize            int    `json:"cache_size"`
	OllamaHost           string `json:"ollama_host"`
	OllamaOCRModel       string `json:"ollama_ocr_model"`
	OllamaTranslateModel string `json:"ollama_translate_model"`

	// Loop and capture
	AutoIntervalMs     int    `json:"auto_interval_ms"`
	InferenceTimeoutMs int    `json:"inference_timeout_ms"`
	CaptureBackend     string `json:"capture_backend"`

	// UI
	DisplayWidth          int    `json:"display_width"`
	DisplayHeight         int    `json:"display_height"`
	SelectionOutlineColor string `json:"selection_outline_color"`
	Hotkey                string `json:"hotkey"`
	DarkMode              bool   `json:"dark_mode"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		ModelsRoot:            "models",
		OCRModelDir:           "manga_ocr_base",
		TranslatorModelDir:    "mt5_zh_ja_en_trimmed",
		OCRBackend:            OCRTesseract,
		OCRLanguage:           "jpn",
		OCRPreprocess:         true,
		TranslatorBackend:     TranslatorSeq2Seq,
		TranslatorEndpoint:    "http://127.0.0.1:8008/generate",
		DirectionMarker:       "ja2zh: ",
		NumBeams:              4,
		MaxLength:             100,
		CacheSize:             256,
		OllamaHost:            "http://127.0.0.1:11434",
		OllamaOCRModel:        "qwen2.5vl:7b",
		OllamaTranslateModel:  "qwen2.5:7b",
		AutoIntervalMs:        2000,
		InferenceTimeoutMs:    0,
		CaptureBackend:        CaptureVova,
		DisplayWidth:          600,
		DisplayHeight:         600,
		SelectionOutlineColor: "#000000",
		Hotkey:                "ctrl+shift+t",
		DarkMode:              false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if strings.TrimSpace(c.ModelsRoot) == "" {
		c.ModelsRoot = def.ModelsRoot
	}
	if strings.TrimSpace(c.OCRModelDir) == "" {
		c.OCRModelDir = def.OCRModelDir
	}
	if strings.TrimSpace(c.TranslatorModelDir) == "" {
		c.TranslatorModelDir = def.TranslatorModelDir
	}
	switch strings.ToLower(strings.TrimSpace(c.OCRBackend)) {
	case OCRTesseract, OCROllama:
		c.OCRBackend = strings.ToLower(strings.TrimSpace(c.OCRBackend))
	default:
		c.OCRBackend = def.OCRBackend
	}
	if c.OCRLanguage == "" {
		c.OCRLanguage = def.OCRLanguage
	}
	switch strings.ToLower(strings.TrimSpace(c.TranslatorBackend)) {
	case TranslatorSeq2Seq, TranslatorOllama:
		c.TranslatorBackend = strings.ToLower(strings.TrimSpace(c.TranslatorBackend))
	default:
		c.TranslatorBackend = def.TranslatorBackend
	}
	if c.DirectionMarker == "" {
		c.DirectionMarker = def.DirectionMarker
	}
	if c.NumBeams <= 0 {
		c.NumBeams = def.NumBeams
	}
	if c.MaxLength <= 0 {
		c.MaxLength = def.MaxLength
	}
	if c.CacheSize < 0 {
		c.CacheSize = 0
	}
	if c.AutoIntervalMs < 100 {
		c.AutoIntervalMs = def.AutoIntervalMs
	}
	if c.InferenceTimeoutMs < 0 {
		c.InferenceTimeoutMs = 0
	}
	switch strings.ToLower(strings.TrimSpace(c.CaptureBackend)) {
	case CaptureVova, CaptureKbinani:
		c.CaptureBackend = strings.ToLower(strings.TrimSpace(c.CaptureBackend))
	default:
		c.CaptureBackend = def.CaptureBackend
	}
	if c.DisplayWidth < 50 {
		c.DisplayWidth = def.DisplayWidth
	}
	if c.DisplayHeight < 50 {
		c.DisplayHeight = def.DisplayHeight
	}
	if col, err := colorful.Hex(c.SelectionOutlineColor); err != nil {
		c.SelectionOutlineColor = def.SelectionOutlineColor
	} else {
		c.SelectionOutlineColor = col.Hex()
	}
	if strings.TrimSpace(c.Hotkey) == "" {
		c.Hotkey = def.Hotkey
	}
	return nil
}

// OCRModelPath is the directory holding the OCR model data.
func (c *Config) OCRModelPath() string { return filepath.Join(c.ModelsRoot, c.OCRModelDir) }

// TranslatorModelPath is the directory holding the translation model weights.
func (c *Config) TranslatorModelPath() string {
	return filepath.Join(c.ModelsRoot, c.TranslatorModelDir)
}

// DefaultPath returns the config path: $PIXEL_TRANSLATE_CONFIG if set, otherwise
// the XDG config location.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	p, err := xdg.ConfigFile(filepath.Join(appDirName, configFileName))
	if err != nil {
		return configFileName
	}
	return p
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On any other error it returns defaults together with
// the error. Environment overrides and validation are applied on every path.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	err := decodeFile(path, cfg)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.ApplyEnv()
	_ = cfg.Validate()
	return cfg, err
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(cfg)
}

// LoadDotenv loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func LoadDotenv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// ApplyEnv overrides fields from PIXEL_TRANSLATE_* environment variables.
func (c *Config) ApplyEnv() {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}
	flag("DEBUG", &c.Debug)
	str("MODELS_ROOT", &c.ModelsRoot)
	str("OCR_MODEL_DIR", &c.OCRModelDir)
	str("TRANSLATOR_MODEL_DIR", &c.TranslatorModelDir)
	str("OCR_BACKEND", &c.OCRBackend)
	str("OCR_LANGUAGE", &c.OCRLanguage)
	flag("OCR_PREPROCESS", &c.OCRPreprocess)
	str("TRANSLATOR_BACKEND", &c.TranslatorBackend)
	str("TRANSLATOR_ENDPOINT", &c.TranslatorEndpoint)
	num("NUM_BEAMS", &c.NumBeams)
	num("MAX_LENGTH", &c.MaxLength)
	num("CACHE_SIZE", &c.CacheSize)
	str("OLLAMA_HOST", &c.OllamaHost)
	str("OLLAMA_OCR_MODEL", &c.OllamaOCRModel)
	str("OLLAMA_TRANSLATE_MODEL", &c.OllamaTranslateModel)
	num("AUTO_INTERVAL_MS", &c.AutoIntervalMs)
	num("INFERENCE_TIMEOUT_MS", &c.InferenceTimeoutMs)
	str("CAPTURE_BACKEND", &c.CaptureBackend)
	str("HOTKEY", &c.Hotkey)
	flag("DARK_MODE", &c.DarkMode)
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
