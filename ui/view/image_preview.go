package view

import (
	"image"

	"github.com/soocke/pixel-translate-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ImagePreview shows the current image inside a fixed display area.
type ImagePreview interface {
	Show(img image.Image)
	Reset()
}

type imagePreview struct {
	label *LabelWidget
	areaW int
	areaH int
	photo *Img // disposed before replacement so old pixel buffers are released
}

// NewImagePreview creates the preview label inside parent at (row, col).
func NewImagePreview(parent *FrameWidget, row, col, areaW, areaH int) ImagePreview {
	v := &imagePreview{areaW: areaW, areaH: areaH}
	v.photo = NewPhoto(Data(images.EncodePNG(blank(areaW, areaH))))
	v.label = Label(Image(v.photo), Borderwidth(1), Relief("sunken"), Background("white"))
	Grid(v.label, In(parent), Row(row), Column(col), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	return v
}

// Show renders img at native size, or shrunk by a uniform factor when it
// exceeds the display area.
func (v *imagePreview) Show(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	v.replace(images.FitToArea(img, v.areaW, v.areaH))
}

func (v *imagePreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.replace(blank(v.areaW, v.areaH))
}

func (v *imagePreview) replace(img image.Image) {
	pngBytes := images.EncodePNG(img)
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.photo))
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}
