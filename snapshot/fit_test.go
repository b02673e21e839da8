package snapshot

import (
	"math"
	"testing"

	"github.com/richinsley/goglitch/page"
)

func nearly(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func rectEq(a, b FRect) bool {
	return nearly(a.X, b.X) && nearly(a.Y, b.Y) && nearly(a.W, b.W) && nearly(a.H, b.H)
}

func TestFitRects(t *testing.T) {
	tests := []struct {
		name       string
		natW, natH float64
		fit        Fit
		src, dst   FRect
	}{
		{"fill", 200, 100, Fit{"fill", "center"}, FRect{0, 0, 200, 100}, FRect{0, 0, 100, 100}},
		{"contain wide", 200, 100, Fit{"contain", "center center"}, FRect{0, 0, 200, 100}, FRect{0, 25, 100, 50}},
		{"contain tall", 100, 200, Fit{"contain", "center center"}, FRect{0, 0, 100, 200}, FRect{25, 0, 50, 100}},
		{"contain right bottom", 200, 100, Fit{"contain", "right bottom"}, FRect{0, 0, 200, 100}, FRect{0, 50, 100, 50}},
		{"cover", 200, 100, Fit{"cover", "center center"}, FRect{50, 0, 100, 100}, FRect{0, 0, 100, 100}},
		{"cover left", 200, 100, Fit{"cover", "left top"}, FRect{0, 0, 100, 100}, FRect{0, 0, 100, 100}},
		{"cover percent", 200, 100, Fit{"cover", "25% 50%"}, FRect{25, 0, 100, 100}, FRect{0, 0, 100, 100}},
		{"none", 50, 50, Fit{"none", "center center"}, FRect{0, 0, 50, 50}, FRect{25, 25, 50, 50}},
		{"none crops", 400, 50, Fit{"none", "center center"}, FRect{150, 0, 100, 50}, FRect{0, 25, 100, 50}},
		{"scale-down small", 50, 50, Fit{"scale-down", "left top"}, FRect{0, 0, 50, 50}, FRect{0, 0, 50, 50}},
		{"scale-down large", 400, 200, Fit{"scale-down", "center center"}, FRect{0, 0, 400, 200}, FRect{0, 25, 100, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := FitRects(tt.natW, tt.natH, 100, 100, tt.fit)
			if !rectEq(src, tt.src) {
				t.Errorf("src = %+v, want %+v", src, tt.src)
			}
			if !rectEq(dst, tt.dst) {
				t.Errorf("dst = %+v, want %+v", dst, tt.dst)
			}
		})
	}
}

func TestFitOfDefaults(t *testing.T) {
	f := FitOf(page.Style{})
	if f.Mode != "fill" || f.Position != "center center" {
		t.Errorf("FitOf(empty) = %+v", f)
	}
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		name       string
		kind       page.Kind
		box        page.Rect
		natW, natH float64
		w, h       int
	}{
		{"image follows box", page.KindImage, page.Rect{Width: 400, Height: 200}, 100, 100, 2048, 1024},
		{"video portrait", page.KindVideo, page.Rect{Width: 100, Height: 400}, 1920, 1080, 512, 2048},
		{"canvas follows pixels", page.KindCanvas, page.Rect{Width: 400, Height: 400}, 300, 150, 2048, 1024},
		{"block doubles", page.KindBlock, page.Rect{Width: 300, Height: 40}, 0, 0, 600, 80},
		{"block capped", page.KindBlock, page.Rect{Width: 1500, Height: 40}, 0, 0, 2048, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := CanvasSize(tt.kind, tt.box, tt.natW, tt.natH)
			if w != tt.w || h != tt.h {
				t.Errorf("CanvasSize = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}
