package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraTiltEases(t *testing.T) {
	c := NewCamera()
	c.SetTilt(mgl32.Vec2{0.2, -0.2})
	c.Step(0.05)
	if got := c.Rotation().X(); math.Abs(float64(got)-0.01) > 1e-6 {
		t.Errorf("rotation after one step = %v, want 0.01", got)
	}
	for range 500 {
		c.Step(0.05)
	}
	if !c.Rotation().ApproxEqualThreshold(mgl32.Vec2{0.2, -0.2}, 1e-4) {
		t.Errorf("rotation did not converge: %v", c.Rotation())
	}
}

func TestCameraAspect(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	c.SetAspect(0)
	if c.Aspect() != 2 {
		t.Errorf("Aspect() = %v, want 2", c.Aspect())
	}
	p := c.Projection()
	if math.Abs(float64(p.At(1, 1)/p.At(0, 0))-2) > 1e-5 {
		t.Error("projection does not reflect the aspect")
	}
}
