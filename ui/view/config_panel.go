package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/pixel-translate-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the settings form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // returns next free row
	SetEditable(enabled bool)
	ApplyChanges() error // parses widget text into the config and persists it
}

type configPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	onApplied func(*config.Config)
	applyBtn  *ButtonWidget
	widgets   map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApplied, if set, runs after
// a successful save with the updated config.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApplied func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApplied: onApplied, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(12))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		setText(w, value)
		v.widgets[id] = w
		row++
	}
	makeRow("autoIntervalMs", "Auto Interval (ms)", strconv.Itoa(c.AutoIntervalMs))
	makeRow("numBeams", "Beam Width", strconv.Itoa(c.NumBeams))
	makeRow("maxLength", "Max Output Length", strconv.Itoa(c.MaxLength))
	makeRow("inferenceTimeoutMs", "Inference Timeout (ms, 0=none)", strconv.Itoa(c.InferenceTimeoutMs))
	makeRow("ocrPreprocess", "OCR Preprocess (true/false)", fmt.Sprintf("%t", c.OCRPreprocess))
	makeRow("darkMode", "Dark Mode (true/false)", fmt.Sprintf("%t", c.DarkMode))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { _ = v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) field(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(getText(w)), true
}

func (v *configPanel) ApplyChanges() error {
	if v.cfg == nil {
		return nil
	}
	cfg := *v.cfg // copy
	assignInt := func(id string, dst *int) {
		if s, ok := v.field(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := v.field(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	assignInt("autoIntervalMs", &cfg.AutoIntervalMs)
	assignInt("numBeams", &cfg.NumBeams)
	assignInt("maxLength", &cfg.MaxLength)
	assignInt("inferenceTimeoutMs", &cfg.InferenceTimeoutMs)
	assignBool("ocrPreprocess", &cfg.OCRPreprocess)
	assignBool("darkMode", &cfg.DarkMode)
	if err := cfg.Validate(); err != nil {
		return err
	}
	*v.cfg = cfg
	// reflect clamped values back into the form
	setText(v.widgets["autoIntervalMs"], strconv.Itoa(cfg.AutoIntervalMs))
	setText(v.widgets["numBeams"], strconv.Itoa(cfg.NumBeams))
	setText(v.widgets["maxLength"], strconv.Itoa(cfg.MaxLength))
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		return err
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApplied != nil {
		v.onApplied(v.cfg)
	}
	return nil
}

// parsing helpers (unexported)
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
