package glrender

import (
	"testing"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/page"
)

func TestDrawOrder(t *testing.T) {
	mk := func(seq int, z string, hidden bool) *Surface {
		return &Surface{seq: seq, hidden: hidden, placement: graphics.Placement{ZIndex: z}}
	}
	a := mk(1, "auto", false)
	b := mk(2, "5", false)
	c := mk(3, "", false)
	d := mk(4, "-1", false)
	e := mk(5, "10", true)

	got := drawOrder([]*Surface{a, b, c, d, e})
	want := []*Surface{d, a, c, b}
	if len(got) != len(want) {
		t.Fatalf("got %d surfaces, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: seq %d, want %d", i, got[i].seq, want[i].seq)
		}
	}
}

func TestViewportRect(t *testing.T) {
	tests := []struct {
		box        page.Rect
		fbHeight   int
		scale      float64
		x, y, w, h int32
	}{
		{page.Rect{X: 0, Y: 0, Width: 100, Height: 50}, 600, 1, 0, 550, 100, 50},
		{page.Rect{X: 10, Y: 20, Width: 100, Height: 50}, 1200, 2, 20, 1060, 200, 100},
		{page.Rect{X: 0, Y: -30, Width: 10, Height: 40}, 100, 1, 0, 90, 10, 40},
	}
	for _, tt := range tests {
		x, y, w, h := viewportRect(tt.box, tt.fbHeight, tt.scale)
		if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
			t.Errorf("viewportRect(%+v) = %d,%d,%d,%d want %d,%d,%d,%d", tt.box, x, y, w, h, tt.x, tt.y, tt.w, tt.h)
		}
	}
}
