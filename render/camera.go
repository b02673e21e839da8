package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	cameraFovY = 75
	cameraZ    = 2
	cameraNear = 0.1
	cameraFar  = 1000
)

// Camera is the perspective camera of model mode. It also carries the model's
// eased tilt.
type Camera struct {
	aspect   float32
	rotation mgl32.Vec2
	target   mgl32.Vec2
}

func NewCamera() *Camera {
	return &Camera{aspect: 1}
}

// SetAspect tracks the element's box; non-positive values are ignored.
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.aspect = float32(aspect)
	}
}

func (c *Camera) Aspect() float64 { return float64(c.aspect) }

// SetTilt sets the rotation the model eases toward (x, y radians).
func (c *Camera) SetTilt(target mgl32.Vec2) { c.target = target }

// Step moves the rotation toward the target by speed of the remaining distance.
func (c *Camera) Step(speed float64) {
	c.rotation = c.rotation.Add(c.target.Sub(c.rotation).Mul(float32(speed)))
}

func (c *Camera) Rotation() mgl32.Vec2 { return c.rotation }

// Settled reports whether the rotation has reached its target.
func (c *Camera) Settled() bool {
	return c.rotation.ApproxEqualThreshold(c.target, 1e-4)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(cameraFovY), c.aspect, cameraNear, cameraFar)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{0, 0, cameraZ}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// MVP returns projection*view*model for a model scaled uniformly by scale.
func (c *Camera) MVP(scale float64) mgl32.Mat4 {
	s := float32(scale)
	model := mgl32.HomogRotate3DX(c.rotation.X()).
		Mul4(mgl32.HomogRotate3DY(c.rotation.Y())).
		Mul4(mgl32.Scale3D(s, s, s))
	return c.Projection().Mul4(c.View()).Mul4(model)
}
