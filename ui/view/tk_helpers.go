package view

import (
	"image"
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// eventPoint returns the pointer position carried by a mouse event, relative
// to the widget the binding is attached to.
func eventPoint(e *Event) image.Point {
	if e == nil {
		return image.Point{}
	}
	return image.Pt(e.X, e.Y)
}

// chooseImageFile opens the native file picker. An empty string means the
// dialog was dismissed.
func chooseImageFile() string {
	files := GetOpenFile(Title("Load image"))
	if len(files) == 0 {
		return ""
	}
	return strings.TrimSpace(files[0])
}

// placeAt positions w at absolute coordinates inside its parent.
func placeAt(w Widget, r image.Rectangle) {
	Place(w, X(r.Min.X), Y(r.Min.Y), Width(r.Dx()), Height(r.Dy()))
}

// setText replaces the whole content of a Text widget.
func setText(w *TextWidget, s string) {
	if w == nil {
		return
	}
	w.Delete("1.0", END)
	w.Insert("1.0", s)
}

// getText returns the content of a Text widget without the trailing newline Tk appends.
func getText(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimRight(strings.Join(w.Get("1.0", END), ""), "\n")
}
