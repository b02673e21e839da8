package render

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goglitch/graphics/graphicstest"
)

type fakeModel struct {
	draws    int
	disposed bool
}

func (m *fakeModel) Draw(mgl32.Mat4) error { m.draws++; return nil }
func (m *fakeModel) Dispose()              { m.disposed = true }

func TestNewCleansUpOnFailure(t *testing.T) {
	dev := graphicstest.NewDevice()
	dev.FailProgram = true
	if _, err := New(dev, "a"); !errors.Is(err, graphicstest.ErrInjected) {
		t.Fatalf("err = %v", err)
	}
	if s, _, _ := dev.Live(); s != 0 {
		t.Errorf("%d surfaces left alive", s)
	}
}

func TestSwapSourceDisposesOld(t *testing.T) {
	dev := graphicstest.NewDevice()
	c, err := New(dev, "a")
	if err != nil {
		t.Fatal(err)
	}
	t1, _ := dev.NewTexture(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	t2, _ := dev.NewTexture(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	c.SwapSource(t1)
	c.SwapSource(t2)
	if !dev.Textures[0].Disposed || dev.Textures[1].Disposed {
		t.Error("swap must dispose exactly the replaced texture")
	}
	if err := c.Draw(1); err != nil {
		t.Fatal(err)
	}
	if dev.Surfaces[0].LastDraw.Source != t2 {
		t.Error("draw did not use the new texture")
	}
	c.Dispose()
	if s, tx, p := dev.Live(); s+tx+p != 0 {
		t.Errorf("live after dispose: surfaces %d textures %d programs %d", s, tx, p)
	}
}

func TestModelPass(t *testing.T) {
	dev := graphicstest.NewDevice()
	c, err := New(dev, "m")
	if err != nil {
		t.Fatal(err)
	}
	c.Resize(100, 50, 1)
	m := &fakeModel{}
	if err := c.AttachModel(m); err != nil {
		t.Fatal(err)
	}
	if !c.Is3D() {
		t.Fatal("Is3D() = false after AttachModel")
	}
	if err := c.Draw(1); err != nil {
		t.Fatal(err)
	}
	if m.draws != 1 || dev.Targets[0].Renders != 1 {
		t.Errorf("model draws %d, target renders %d", m.draws, dev.Targets[0].Renders)
	}
	if dev.Surfaces[0].LastDraw.Source != dev.Targets[0].Texture() {
		t.Error("effect pass must sample the model target")
	}
	c.Dispose()
	if !m.disposed || !dev.Targets[0].Disposed {
		t.Error("model resources not released")
	}
}

func TestDrawWithoutSource(t *testing.T) {
	c, err := New(graphicstest.NewDevice(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Draw(1); err == nil {
		t.Error("expected an error without a source texture")
	}
}
