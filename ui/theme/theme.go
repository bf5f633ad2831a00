package theme

// Centralized theming for the translator window. Base colours are fixed;
// hover and muted shades are derived in CIE-L*a*b* so light and dark modes
// stay consistent without hand-picking every tint.

import (
	"github.com/lucasb-eyer/go-colorful"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Base palette.
const (
	ColorBg      = "#f7f9fb"
	ColorSurface = "#ffffff"
	ColorBorder  = "#d0d7de"
	ColorPrimary = "#2563eb"
	ColorDanger  = "#dc2626"
	ColorAccent  = "#10b981"
	ColorText    = "#1e293b"

	darkBg      = "#0f172a"
	darkSurface = "#1e293b"
	darkText    = "#f1f5f9"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	PrimaryHi string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStatusLabel   = "status.TLabel"
	StyleAutoOnLabel   = "autoon.TLabel"
	StyleAutoOffLabel  = "autooff.TLabel"
)

var darkMode bool

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot { return PaletteFor(darkMode) }

// PaletteFor resolves the palette for the given mode.
func PaletteFor(dark bool) PaletteSnapshot {
	bg, surface, text := ColorBg, ColorSurface, ColorText
	if dark {
		bg, surface, text = darkBg, darkSurface, darkText
	}
	primary := ColorPrimary
	if dark {
		primary = blend(ColorPrimary, "#ffffff", 0.15)
	}
	return PaletteSnapshot{
		AppBg:     bg,
		Surface:   surface,
		Border:    blend(surface, text, 0.2),
		Primary:   primary,
		PrimaryHi: blend(primary, "#000000", 0.15),
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      text,
		TextMuted: blend(text, bg, 0.45),
	}
}

// blend mixes a toward b by t in Lab space. Unparsable input returns a.
func blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(CurrentPalette()) }

// SetDark switches mode and reapplies styles. Returns the new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(CurrentPalette())
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(p PaletteSnapshot) {
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(p.Text),
		Background(p.Surface),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleAutoOnLabel,
		Foreground("white"),
		Background(p.Accent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleAutoOffLabel,
		Foreground(p.TextMuted),
		Background(p.Surface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
