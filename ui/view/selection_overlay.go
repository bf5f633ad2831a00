package view

import (
	"image"
	"log/slog"

	"github.com/soocke/pixel-translate-go/domain/capture"
	"github.com/soocke/pixel-translate-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// SelectionResult is delivered once per overlay: the normalized rectangle in
// screen coordinates, the backdrop snapshot, and ok=false on cancel.
type SelectionResult func(r image.Rectangle, snapshot image.Image, ok bool)

// RegionSelector opens a borderless full-screen overlay over a snapshot of
// the screen and lets the user drag a rectangle on it.
type RegionSelector interface {
	Open(snapshot image.Image, done SelectionResult)
	Opened() bool
}

const outlineWidth = 2

type regionSelector struct {
	logger *slog.Logger
	color  string
	win    *ToplevelWidget
	photo  *Img
	edges  [4]*FrameWidget
	drag   capture.DragTracker
	origin image.Point
	shot   image.Image
	done   SelectionResult
}

// NewRegionSelector creates a selector drawing its outline in color (hex).
func NewRegionSelector(color string, logger *slog.Logger) RegionSelector {
	if color == "" {
		color = "#000000"
	}
	return &regionSelector{logger: logger, color: color}
}

func (v *regionSelector) Opened() bool { return v.win != nil }

// Open shows the overlay. snapshot must be the full screen; its bounds origin
// maps to the overlay's top-left corner.
func (v *regionSelector) Open(snapshot image.Image, done SelectionResult) {
	if snapshot == nil {
		if done != nil {
			done(image.Rectangle{}, nil, false)
		}
		return
	}
	if v.win != nil {
		v.finish(image.Rectangle{}, false)
	}
	v.shot, v.done = snapshot, done
	v.origin = snapshot.Bounds().Min
	v.drag.Reset()

	b := snapshot.Bounds()
	win := App.Toplevel(Borderwidth(0), Background("black"))
	v.win = win
	WmGeometry(win.Window, fmtGeometry(b))
	WmAttributes(win.Window, "-fullscreen", 1)
	WmAttributes(win.Window, "-topmost", 1)

	v.photo = NewPhoto(Data(images.EncodePNG(snapshot)))
	backdrop := win.Label(Image(v.photo), Borderwidth(0), Cursor("crosshair"))
	placeAt(backdrop, image.Rect(0, 0, b.Dx(), b.Dy()))
	for i := range v.edges {
		v.edges[i] = win.Frame(Background(v.color), Borderwidth(0))
	}

	Bind(backdrop, "<ButtonPress-1>", Command(func(e *Event) { v.press(eventPoint(e)) }))
	Bind(backdrop, "<B1-Motion>", Command(func(e *Event) { v.move(eventPoint(e)) }))
	Bind(backdrop, "<ButtonRelease-1>", Command(func(e *Event) { v.release(eventPoint(e)) }))
	// right click cancels too; pointer bindings fire even without keyboard focus
	Bind(backdrop, "<ButtonPress-3>", Command(func() { v.finish(image.Rectangle{}, false) }))
	Bind(win, "<Escape>", Command(func() { v.finish(image.Rectangle{}, false) }))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", func() { v.finish(image.Rectangle{}, false) })
	// Escape needs keyboard focus; some window managers do not focus new toplevels
	Focus(win)
	if v.logger != nil {
		v.logger.Debug("selector opened", "screen", b)
	}
}

func (v *regionSelector) press(p image.Point) { v.drag.Press(p) }

func (v *regionSelector) move(p image.Point) {
	outline, ok := v.drag.Drag(p)
	if !ok {
		return
	}
	v.drawOutline(outline)
}

func (v *regionSelector) release(p image.Point) {
	r, ok := v.drag.Release(p)
	if !ok {
		return
	}
	v.finish(r.Add(v.origin), true)
}

// drawOutline repositions the four edge frames; there is only ever one outline.
func (v *regionSelector) drawOutline(r image.Rectangle) {
	edges := capture.OutlineEdges(r, outlineWidth)
	for i, e := range v.edges {
		if e == nil {
			continue
		}
		placeAt(e, edges[i])
	}
}

func (v *regionSelector) finish(r image.Rectangle, ok bool) {
	done, shot := v.done, v.shot
	v.done, v.shot = nil, nil
	v.drag.Reset()
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
	if v.photo != nil {
		v.photo.Delete()
		v.photo = nil
	}
	v.edges = [4]*FrameWidget{}
	if done != nil {
		done(r, shot, ok)
	}
}
