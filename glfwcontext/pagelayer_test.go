package glfwcontext

import (
	"image"
	"image/color"
	"testing"

	"github.com/richinsley/goglitch/page"
	"github.com/richinsley/goglitch/snapshot"
)

func redBox(id string, r page.Rect) *page.Box {
	b := page.NewBox(id, page.KindImage, r)
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 0xff, 0xff
	}
	b.SetImage(img)
	return b
}

func TestComposePageSkipsHiddenBoxes(t *testing.T) {
	doc := &page.Document{}
	shown := redBox("shown", page.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	covered := redBox("covered", page.Rect{X: 20, Y: 0, Width: 10, Height: 10})
	covered.SetVisibility("hidden")
	doc.Add(shown)
	doc.Add(covered)

	img := composePage(doc, snapshot.Rasterizer{}, 40, 20, 1)
	if got := img.RGBAAt(5, 5); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("visible box pixel = %v", got)
	}
	if got := img.RGBAAt(25, 5); got.A != 0 {
		t.Errorf("covered box drawn: %v", got)
	}
}

func TestPageSignature(t *testing.T) {
	doc := &page.Document{}
	b := redBox("a", page.Rect{Width: 10, Height: 2000})
	doc.Add(b)
	s0 := pageSignature(doc, 100, 100)
	if pageSignature(doc, 100, 100) != s0 {
		t.Fatal("signature not stable")
	}
	b.SetVisibility("hidden")
	s1 := pageSignature(doc, 100, 100)
	if s1 == s0 {
		t.Error("visibility change not detected")
	}
	doc.ScrollBy(50, 100)
	if pageSignature(doc, 100, 100) == s1 {
		t.Error("scroll not detected")
	}
	if pageSignature(doc, 200, 100) == pageSignature(doc, 100, 100) {
		t.Error("resize not detected")
	}
}
