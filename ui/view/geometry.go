package view

import (
	"fmt"
	"image"
)

// fmtGeometry renders r as a Tk geometry string "WxH+X+Y".
func fmtGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}
