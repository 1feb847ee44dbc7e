package theme

// Centralized theming and styling initialization for the kiosk UI.
// Provides palette constants and InitStyles to activate a base theme and
// configure semantic widget styles. The kiosk runs dark by default; a
// photo booth in a dim room should not glow white between visitors.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#0f172a" // app background
	ColorSurface   = "#1e293b" // panels, cards
	ColorBorder    = "#334155"
	ColorPrimary   = "#3b82f6" // buttons, accents
	ColorDanger    = "#ef4444"
	ColorAccent    = "#10b981"
	ColorText      = "#f1f5f9"
	ColorTextMuted = "#94a3b8"
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
)

// InitStyles applies the kiosk palette and semantic widget styles.
func InitStyles() {
	_ = ActivateTheme("azure dark") // baseline metrics
	App.Configure(Background(ColorBg))

	// Primary button
	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("6p 4p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	// Danger button
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground("white"),
		Padding("6p 4p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	// Phase label
	StyleConfigure(StyleStateLabel,
		Foreground("#f0fdf4"),
		Background(ColorAccent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
