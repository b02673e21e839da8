package snapshot

import (
	"image/color"
	"strings"
	"testing"

	"github.com/richinsley/goglitch/page"
)

func TestWrapWords(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }
	lines := wrapWords(strings.Fields("aaa bbb ccc dddddddddddd e"), 7, measure)
	want := []string{"aaa bbb", "ccc", "dddddddddddd", "e"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTextCentred(t *testing.T) {
	style := page.Style{FontSize: 16, Color: color.RGBA{255, 0, 0, 255}, TextAlign: "center"}
	img, err := RenderText("Hello glitch", style, 400, 200, 2)
	if err != nil {
		t.Fatal(err)
	}
	minY, maxY := 200, -1
	painted := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			if img.RGBAAt(x, y).A > 0 {
				painted++
				minY = min(minY, y)
				maxY = max(maxY, y)
			}
		}
	}
	if painted == 0 {
		t.Fatal("no text pixels drawn")
	}
	mid := (minY + maxY) / 2
	if mid < 80 || mid > 120 {
		t.Errorf("text centre row = %d, want near 100", mid)
	}
}

func TestRenderTextBlank(t *testing.T) {
	img, err := RenderText("   ", page.Style{}, 10, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("blank text should leave a transparent bitmap")
		}
	}
}
