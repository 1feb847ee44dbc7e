package view

import (
	"image"

	"github.com/soocke/pixel-sorter-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ImagePanel abstracts the central display showing either the live camera
// feed or the sorted output. It owns one LabelWidget and provides methods
// to update or reset it.
type ImagePanel interface {
	Update(img image.Image)
	Reset()
	SetTargetSize(w, h int)
}

type imagePanel struct {
	label     *LabelWidget
	targetW   int
	targetH   int
	prevPhoto *Img // last Tk photo image instance
}

// Internal state tracks the current photo so we can dispose the old image
// before replacing it, preventing accumulation of off-screen image data.

const (
	defaultPanelW = 800
	defaultPanelH = 480
)

// NewImagePanel creates the display label, grids it and returns the view.
func NewImagePanel(row, col, colspan int) ImagePanel {
	placeholder := image.NewRGBA(image.Rect(0, 0, 400, 240))
	pngBytes := images.EncodePNG(placeholder)
	photo := NewPhoto(Data(pngBytes))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(col), Columnspan(colspan), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	return &imagePanel{label: label, prevPhoto: photo}
}

func (v *imagePanel) Update(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	w, h := v.targetW, v.targetH
	if w <= 0 || h <= 0 {
		w, h = defaultPanelW, defaultPanelH
	}
	// Scale for display only; allocate a fresh scaled image each call.
	scaled := images.ScaleToFit(img, w, h)
	pngBytes := images.EncodePNG(scaled)
	// Replace the previous photo to avoid retaining obsolete pixel buffers.
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevPhoto = newPhoto
	v.label.Configure(Image(newPhoto))
}

func (v *imagePanel) Reset() {
	if v == nil || v.label == nil {
		return
	}
	placeholder := image.NewRGBA(image.Rect(0, 0, 400, 240))
	pngBytes := images.EncodePNG(placeholder)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}

// SetTargetSize updates the desired scaling dimensions used by Update.
func (v *imagePanel) SetTargetSize(w, h int) {
	if v == nil {
		return
	}
	if w < 50 {
		w = 50
	}
	if h < 50 {
		h = 50
	}
	v.targetW, v.targetH = w, h
}
