package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/pixel-translate-go/config"
	"github.com/soocke/pixel-translate-go/ui/model"
	"github.com/soocke/pixel-translate-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions wired to the buttons. Nil entries leave the
// button inert.
type Handlers struct {
	OnLoadImage  func(path string)
	OnSetRegion  func()
	OnTranslate  func()
	OnToggleAuto func()
	OnCopy       func()
	OnExit       func()
	// OnConfigApplied runs after the settings form saved a new config.
	OnConfigApplied func(*config.Config)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Preview     ImagePreview

	// Widgets
	StatusLabel *TLabelWidget
	AutoLabel   *TLabelWidget
	SourceText  *TextWidget
	TargetText  *TextWidget
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout:
//
//	row 0: action buttons and the auto indicator
//	row 1: status line
//	row 2: image display (left) and the two text boxes (right)
//	row 3: session and pass counters
//	row 4+: settings
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	areaW, areaH := 600, 600
	if rv.cfg != nil {
		areaW, areaH = rv.cfg.DisplayWidth, rv.cfg.DisplayHeight
	}

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	buttons := []struct {
		text  string
		style string
		fn    func()
	}{
		{"Load Image", theme.StylePrimaryButton, func() {
			if h.OnLoadImage != nil {
				h.OnLoadImage(chooseImageFile())
			}
		}},
		{"Set Region", theme.StylePrimaryButton, h.OnSetRegion},
		{"Translate", theme.StylePrimaryButton, h.OnTranslate},
		{"Toggle Auto", theme.StylePrimaryButton, h.OnToggleAuto},
		{"Copy Translation", theme.StylePrimaryButton, h.OnCopy},
		{"Exit", theme.StyleDangerButton, h.OnExit},
	}
	for i, b := range buttons {
		fn := b.fn
		btn := TButton(Style(b.style), Txt(b.text), Command(func() {
			if fn != nil {
				fn()
			}
		}))
		Grid(btn, In(btnFrame), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}
	rv.AutoLabel = TLabel(Style(theme.StyleAutoOffLabel), Txt("Auto: OFF"))
	Grid(rv.AutoLabel, In(btnFrame), Row(0), Column(len(buttons)), Sticky("e"), Padx("0.6m"))

	rv.StatusLabel = TLabel(Style(theme.StyleStatusLabel), Txt(""), Anchor("w"))
	Grid(rv.StatusLabel, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.2m"))

	imgFrame := Frame()
	Grid(imgFrame, Row(2), Column(0), Sticky("nw"), Padx("0.3m"), Pady("0.3m"))
	rv.Preview = NewImagePreview(imgFrame, 0, 0, areaW, areaH)

	textFrame := Frame()
	Grid(textFrame, Row(2), Column(1), Sticky("nsew"), Padx("0.3m"), Pady("0.3m"))
	Grid(Label(Txt("Recognized text"), Anchor("w")), In(textFrame), Row(0), Column(0), Sticky("w"))
	rv.SourceText = Text(Height(12), Width(40), Wrap("word"), Borderwidth(1), Relief("sunken"))
	Grid(rv.SourceText, In(textFrame), Row(1), Column(0), Sticky("nsew"), Pady("0.2m"))
	Grid(Label(Txt("Translation"), Anchor("w")), In(textFrame), Row(2), Column(0), Sticky("w"))
	rv.TargetText = Text(Height(12), Width(40), Wrap("word"), Borderwidth(1), Relief("sunken"))
	Grid(rv.TargetText, In(textFrame), Row(3), Column(0), Sticky("nsew"), Pady("0.2m"))

	statsFrame := Frame()
	Grid(statsFrame, Row(3), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"))
	rv.Session = NewSessionStats(statsFrame, 0, 0)

	cfgFrame := Frame()
	Grid(cfgFrame, Row(4), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.OnConfigApplied)
	rv.ConfigPanel.Build(cfgFrame, 0)
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetAutoLabel switches the auto indicator between its on and off styles.
func (rv *RootView) SetAutoLabel(on bool) {
	if rv == nil || rv.AutoLabel == nil {
		return
	}
	if on {
		rv.AutoLabel.Configure(Style(theme.StyleAutoOnLabel), Txt("Auto: ON"))
		return
	}
	rv.AutoLabel.Configure(Style(theme.StyleAutoOffLabel), Txt("Auto: OFF"))
}

func (rv *RootView) ShowImage(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Show(img)
	}
}

// ShowTexts replaces both text boxes.
func (rv *RootView) ShowTexts(source, target string) {
	if rv == nil {
		return
	}
	setText(rv.SourceText, source)
	setText(rv.TargetText, target)
}

// SetSession updates both session and total auto-translate durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(session, total)
	}
}

func (rv *RootView) SetPassStats(s model.PassSnapshot) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetPassStats(s)
	}
}

// ConfigEditable toggles config panel editability.
func (rv *RootView) ConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}
