package snapshot

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/richinsley/goglitch/page"
)

// Rasterizer is the default Provider. It scales element pixels with Catmull-Rom
// and draws text with the embedded Go fonts.
type Rasterizer struct{}

func (Rasterizer) CaptureStill(el page.Element, fit Fit) (*image.RGBA, error) {
	src := el.Image()
	if src == nil || src.Bounds().Empty() {
		return nil, ErrNoContent
	}
	sb := src.Bounds()
	natW, natH := float64(sb.Dx()), float64(sb.Dy())
	w, h := CanvasSize(el.Kind(), el.BoundingRect(), natW, natH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	// Only images honour object-fit; canvas and svg content is stretched.
	if el.Kind() != page.KindImage {
		fit = Fit{Mode: "fill", Position: fit.Position}
	}
	s, d := FitRects(natW, natH, float64(w), float64(h), fit)
	sr := s.image().Add(sb.Min).Intersect(sb)
	dr := d.image().Intersect(dst.Bounds())
	if sr.Empty() || dr.Empty() {
		return dst, nil
	}
	xdraw.CatmullRom.Scale(dst, dr, src, sr, xdraw.Over, nil)
	return dst, nil
}

func (Rasterizer) CaptureText(el page.Element) (*image.RGBA, error) {
	box := el.BoundingRect()
	w, h := CanvasSize(page.KindBlock, box, 0, 0)
	scale := 2.0
	if !box.Empty() {
		scale = min(float64(w)/box.Width, float64(h)/box.Height)
	}
	return RenderText(el.TextContent(), el.ComputedStyle(), w, h, scale)
}
