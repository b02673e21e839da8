package glfwcontext

import (
	"fmt"
	"image"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/richinsley/goglitch/page"
	"github.com/richinsley/goglitch/snapshot"
)

// pageSignature changes whenever the page layer must be recomposed.
func pageSignature(doc *page.Document, w, h int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d@%g;", w, h, doc.ScrollY())
	for _, box := range doc.Boxes {
		b.WriteString(box.Visibility())
		b.WriteByte(',')
	}
	return b.String()
}

// composePage rasterizes every box the effects do not cover: boxes that are still
// loading, failed, or not watched at all. w and h are framebuffer pixels.
func composePage(doc *page.Document, raster snapshot.Provider, w, h int, scale float64) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	for _, box := range doc.Boxes {
		if box.Visibility() == "hidden" {
			continue
		}
		st := box.ComputedStyle()
		if st.Hidden() {
			continue
		}
		r := box.BoundingRect()
		dr := image.Rect(
			int(math.Round(r.X*scale)), int(math.Round(r.Y*scale)),
			int(math.Round(r.Right()*scale)), int(math.Round(r.Bottom()*scale)),
		)
		if !dr.Overlaps(dst.Bounds()) {
			continue
		}
		var (
			img *image.RGBA
			err error
		)
		switch {
		case box.Kind().IsImageLike() && box.Image() != nil:
			img, err = raster.CaptureStill(box, snapshot.FitOf(st))
		case strings.TrimSpace(box.TextContent()) != "":
			img, err = raster.CaptureText(box)
		default:
			continue
		}
		if err != nil {
			continue
		}
		xdraw.ApproxBiLinear.Scale(dst, dr, img, img.Bounds(), xdraw.Over, nil)
	}
	return dst
}
