package snapshot

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/richinsley/goglitch/page"
)

// FRect is a rectangle with fractional coordinates.
type FRect struct {
	X, Y, W, H float64
}

func (r FRect) image() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
}

// Fit is the element's object-fit mode and object-position.
type Fit struct {
	Mode     string
	Position string
}

// FitOf reads the fit of an element's computed style, with the CSS defaults.
func FitOf(s page.Style) Fit {
	f := Fit{Mode: strings.TrimSpace(s.ObjectFit), Position: strings.TrimSpace(s.ObjectPosition)}
	if f.Mode == "" {
		f.Mode = "fill"
	}
	if f.Position == "" {
		f.Position = "center center"
	}
	return f
}

// FitRects returns the source rectangle of a natural-size image and the
// destination rectangle on a canvas that reproduce object-fit placement.
func FitRects(natW, natH, canvasW, canvasH float64, fit Fit) (src, dst FRect) {
	src = FRect{0, 0, natW, natH}
	dst = FRect{0, 0, canvasW, canvasH}
	if fit.Mode == "fill" || natW <= 0 || natH <= 0 || canvasW <= 0 || canvasH <= 0 {
		return src, dst
	}

	natAspect := natW / natH
	canvasAspect := canvasW / canvasH
	contain := func() {
		if natAspect > canvasAspect {
			dst.H = canvasW / natAspect
			dst.Y = (canvasH - dst.H) / 2
		} else {
			dst.W = canvasH * natAspect
			dst.X = (canvasW - dst.W) / 2
		}
	}

	switch fit.Mode {
	case "contain":
		contain()
	case "cover":
		if natAspect > canvasAspect {
			scale := canvasH / natH
			src.W = canvasW / scale
			src.X = (natW - src.W) / 2
		} else {
			scale := canvasW / natW
			src.H = canvasH / scale
			src.Y = (natH - src.H) / 2
		}
	case "none":
		src.W = math.Min(natW, canvasW)
		src.H = math.Min(natH, canvasH)
		src.X = (natW - src.W) / 2
		src.Y = (natH - src.H) / 2
		dst = FRect{(canvasW - src.W) / 2, (canvasH - src.H) / 2, src.W, src.H}
	case "scale-down":
		if math.Min(math.Min(canvasW/natW, canvasH/natH), 1) >= 1 {
			dst = FRect{(canvasW - natW) / 2, (canvasH - natH) / 2, natW, natH}
		} else {
			contain()
		}
	}

	xPos, yPos := splitPosition(fit.Position)
	switch fit.Mode {
	case "cover":
		src.X = anchor(xPos, "left", "right", src.X, natW-src.W)
		src.Y = anchor(yPos, "top", "bottom", src.Y, natH-src.H)
	case "contain", "none", "scale-down":
		dst.X = anchor(xPos, "left", "right", dst.X, canvasW-dst.W)
		dst.Y = anchor(yPos, "top", "bottom", dst.Y, canvasH-dst.H)
	}
	return src, dst
}

func splitPosition(pos string) (x, y string) {
	parts := strings.Fields(pos)
	x, y = "center", "center"
	if len(parts) > 0 {
		x = parts[0]
	}
	if len(parts) > 1 {
		y = parts[1]
	}
	return x, y
}

// anchor resolves one object-position keyword against the free space. Centered
// and unrecognised values keep cur.
func anchor(pos, start, end string, cur, free float64) float64 {
	switch {
	case pos == start:
		return 0
	case pos == end:
		return free
	case strings.HasSuffix(pos, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(pos, "%"), 64)
		if err != nil {
			return cur
		}
		return free * pct / 100
	}
	return cur
}

// CanvasSize picks the bitmap size for a capture. Images and videos follow the
// container aspect so fit and crop are baked in; other image-like content keeps its
// intrinsic aspect; everything else is rendered at twice its box size.
func CanvasSize(kind page.Kind, box page.Rect, natW, natH float64) (w, h int) {
	if !kind.IsImageLike() {
		return clampSide(box.Width * 2), clampSide(box.Height * 2)
	}
	aspect := box.Aspect()
	if kind != page.KindImage && kind != page.KindVideo {
		if natW <= 0 || natH <= 0 {
			natW, natH = box.Width, box.Height
		}
		aspect = 1
		if natW > 0 && natH > 0 {
			aspect = natW / natH
		}
	}
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	if aspect >= 1 {
		return MaxSide, clampSide(MaxSide / aspect)
	}
	return clampSide(MaxSide * aspect), MaxSide
}

func clampSide(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	if n > MaxSide {
		return MaxSide
	}
	return n
}
