package capture

import "image"

// NormalizeRect builds the rectangle spanned by two corner points so that
// Min holds the smaller x/y and Max the larger, whatever the drag direction.
func NormalizeRect(a, b image.Point) image.Rectangle {
	r := image.Rectangle{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// RegionSet reports whether r is usable as a capture region.
// Zero-area rectangles count as unset.
func RegionSet(r image.Rectangle) bool { return r.Dx() > 0 && r.Dy() > 0 }

// DragTracker follows one press/drag/release gesture of the region selector.
// The zero value is idle and ready to use. It is not safe for concurrent use;
// the selector drives it from the UI thread.
type DragTracker struct {
	start    image.Point
	current  image.Point
	dragging bool
}

// Press records the anchor point and starts a gesture.
func (d *DragTracker) Press(p image.Point) {
	d.start = p
	d.current = p
	d.dragging = true
}

// Drag moves the free corner and returns the outline to draw.
// ok is false when no gesture is in progress.
func (d *DragTracker) Drag(p image.Point) (outline image.Rectangle, ok bool) {
	if !d.dragging {
		return image.Rectangle{}, false
	}
	d.current = p
	return NormalizeRect(d.start, d.current), true
}

// Release ends the gesture and returns the normalized selection.
// ok is false when Release arrives without a preceding Press.
func (d *DragTracker) Release(p image.Point) (image.Rectangle, bool) {
	if !d.dragging {
		return image.Rectangle{}, false
	}
	d.dragging = false
	d.current = p
	return NormalizeRect(d.start, p), true
}

// Active reports whether a gesture is in progress.
func (d *DragTracker) Active() bool { return d.dragging }

// Reset abandons any gesture in progress.
func (d *DragTracker) Reset() { *d = DragTracker{} }

// OutlineEdges returns the top, bottom, left and right bars of a w-pixel
// outline drawn inside r. Degenerate rectangles still yield 1px bars so a
// zero-movement drag shows a visible point.
func OutlineEdges(r image.Rectangle, w int) [4]image.Rectangle {
	dx, dy := max(r.Dx(), 1), max(r.Dy(), 1)
	wx, wy := min(w, dx), min(w, dy)
	x0, y0 := r.Min.X, r.Min.Y
	return [4]image.Rectangle{
		image.Rect(x0, y0, x0+dx, y0+wy),
		image.Rect(x0, y0+dy-wy, x0+dx, y0+dy),
		image.Rect(x0, y0, x0+wx, y0+dy),
		image.Rect(x0+dx-wx, y0, x0+dx, y0+dy),
	}
}
