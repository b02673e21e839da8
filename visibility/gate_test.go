package visibility

import (
	"testing"

	"github.com/richinsley/goglitch/page"
)

type fixedViewport struct{ w, h float64 }

func (v fixedViewport) Size() (float64, float64)  { return v.w, v.h }
func (v fixedViewport) RootFontSize() float64     { return 16 }
func (v fixedViewport) DevicePixelRatio() float64 { return 1 }

func TestGateWithoutObserverIsAlwaysOpen(t *testing.T) {
	g := NewGate(nil, page.NewBox("a", page.KindImage, page.Rect{}), nil)
	if !g.InView() {
		t.Error("InView() = false without an observer")
	}
	g.Close()
}

func TestRectObserverPreRoll(t *testing.T) {
	vp := fixedViewport{800, 600}
	obs := NewRectObserver(vp)
	box := page.NewBox("a", page.KindImage, page.Rect{X: 0, Y: 1000, Width: 100, Height: 100})

	var changes []bool
	g := NewGate(obs, box, func(in bool) { changes = append(changes, in) })
	if !g.InView() {
		t.Fatal("element 400px below the fold should be inside the pre-roll margin")
	}

	box.SetRect(page.Rect{X: 0, Y: 1200, Width: 100, Height: 100})
	obs.Check()
	if g.InView() {
		t.Error("element 600px below the fold should be out of view")
	}

	obs.Check()
	box.SetRect(page.Rect{X: 0, Y: 100, Width: 100, Height: 100})
	obs.Check()
	if !g.InView() {
		t.Error("element back on screen should be in view")
	}
	want := []bool{true, false, true}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %v, want %v", i, changes[i], want[i])
		}
	}

	g.Close()
	box.SetRect(page.Rect{X: 0, Y: 5000, Width: 100, Height: 100})
	obs.Check()
	if !g.InView() {
		t.Error("closed gate should keep its last state")
	}
}
