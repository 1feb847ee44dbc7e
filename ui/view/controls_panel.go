package view

import (
	"fmt"

	"github.com/soocke/pixel-sorter-go/domain/sorting"
	"github.com/soocke/pixel-sorter-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers bundles the callbacks the controls panel raises on user input.
type Handlers struct {
	OnActivate       func()
	OnCapture        func()
	OnCycleAlgorithm func()
	OnThresholdDelta func(delta float64)
	OnHueDelta       func(delta float64)
	OnTintDelta      func(delta float64)
	OnTintToggle     func()
	OnCrop           func()
	OnSave           func()
	OnExport         func()
	OnReset          func()
	OnExit           func()
}

// ControlsPanel encapsulates the kiosk button column. Buttons are sized
// for touch input; parameter adjustment uses stepper pairs instead of
// sliders so the same actions map 1:1 onto the hardware buttons.
type ControlsPanel interface {
	SetAlgorithm(name string)
	SetThreshold(v float64)
	SetHueShift(v float64)
	SetColorTint(v float64)
	SetTintEnabled(enabled bool)
	SetEditingEnabled(enabled bool)
}

type controlsPanel struct {
	algorithmBtn *ButtonWidget
	thresholdLbl *LabelWidget
	hueLbl       *LabelWidget
	tintLbl      *LabelWidget
	tintBtn      *ButtonWidget
	editButtons  []*ButtonWidget
}

// NewControlsPanel builds the button column at the given grid column,
// starting at startRow. Returns the view and the next free row.
func NewControlsPanel(col, startRow int, h Handlers) (ControlsPanel, int) {
	v := &controlsPanel{}
	row := startRow

	placeBtn := func(text string, style string, cmd func()) *ButtonWidget {
		btn := Button(Txt(text), Command(cmd))
		if style != "" {
			btn.Configure(Style(style))
		}
		Grid(btn, Row(row), Column(col), Sticky("we"), Padx("0.3m"), Pady("0.2m"))
		row++
		return btn
	}
	placeStepper := func(label string, onDelta func(float64), step float64) *LabelWidget {
		frame := Frame()
		Grid(frame, Row(row), Column(col), Sticky("we"), Padx("0.3m"), Pady("0.2m"))
		lbl := Label(Txt(label), Anchor("center"), Width(16))
		down := Button(Txt("-"), Width(3), Command(func() { onDelta(-step) }))
		up := Button(Txt("+"), Width(3), Command(func() { onDelta(step) }))
		Grid(down, In(frame), Row(0), Column(0), Padx("0.2m"))
		Grid(lbl, In(frame), Row(0), Column(1), Sticky("we"), Padx("0.2m"))
		Grid(up, In(frame), Row(0), Column(2), Padx("0.2m"))
		row++
		return lbl
	}

	placeBtn("Start", theme.StylePrimaryButton, h.OnActivate)
	placeBtn("Take Photo", theme.StylePrimaryButton, h.OnCapture)
	v.algorithmBtn = placeBtn(algorithmText(sorting.Horizontal.Name()), "", h.OnCycleAlgorithm)
	v.thresholdLbl = placeStepper(thresholdText(sorting.DefaultParams().Threshold), h.OnThresholdDelta, 5)
	v.hueLbl = placeStepper(hueText(0), h.OnHueDelta, 15)
	v.tintLbl = placeStepper(tintText(0), h.OnTintDelta, 15)
	v.tintBtn = placeBtn(tintToggleText(false), "", h.OnTintToggle)
	crop := placeBtn("Crop", "", h.OnCrop)
	save := placeBtn("Save", theme.StylePrimaryButton, h.OnSave)
	export := placeBtn("Export to USB", "", h.OnExport)
	placeBtn("Done", theme.StyleDangerButton, h.OnReset)
	placeBtn("Exit", "", h.OnExit)

	v.editButtons = []*ButtonWidget{v.algorithmBtn, v.tintBtn, crop, save, export}
	return v, row
}

func algorithmText(name string) string { return "Sort: " + name }
func thresholdText(v float64) string   { return fmt.Sprintf("Threshold %.0f", v) }
func hueText(v float64) string         { return fmt.Sprintf("Hue %.0f°", v) }
func tintText(v float64) string        { return fmt.Sprintf("Tint %.0f°", v) }

func tintToggleText(enabled bool) string {
	if enabled {
		return "Tint: on"
	}
	return "Tint: off"
}

func (v *controlsPanel) SetAlgorithm(name string) {
	if v != nil && v.algorithmBtn != nil {
		v.algorithmBtn.Configure(Txt(algorithmText(name)))
	}
}

func (v *controlsPanel) SetThreshold(val float64) {
	if v != nil && v.thresholdLbl != nil {
		v.thresholdLbl.Configure(Txt(thresholdText(val)))
	}
}

func (v *controlsPanel) SetHueShift(val float64) {
	if v != nil && v.hueLbl != nil {
		v.hueLbl.Configure(Txt(hueText(val)))
	}
}

func (v *controlsPanel) SetColorTint(val float64) {
	if v != nil && v.tintLbl != nil {
		v.tintLbl.Configure(Txt(tintText(val)))
	}
}

func (v *controlsPanel) SetTintEnabled(enabled bool) {
	if v != nil && v.tintBtn != nil {
		v.tintBtn.Configure(Txt(tintToggleText(enabled)))
	}
}

// SetEditingEnabled toggles the buttons that only make sense with a
// captured photo on screen.
func (v *controlsPanel) SetEditingEnabled(enabled bool) {
	if v == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, btn := range v.editButtons {
		if btn != nil {
			btn.Configure(State(state))
		}
	}
}
