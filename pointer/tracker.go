// Package pointer tracks the shared pointer state: last position, smoothed speed and
// the eased effect scale every effect instance reads.
package pointer

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goglitch/page"
)

const (
	Smoothing   = 0.3
	IdleAfter   = 16 * time.Millisecond
	DecayRate   = 0.95
	VelocityMin = 0.01
	MaxVelocity = 30.0
	ScaleCurve  = 0.6
	EaseSpeed   = 0.15
	easeSnap    = 0.001
)

// Tracker owns the pointer state. It is not safe for concurrent use; the runtime
// calls it from the frame loop and the input callbacks on the same thread.
type Tracker struct {
	last     mgl32.Vec2
	hasLast  bool
	velocity float64
	scale    float64
	target   float64
	lastMove time.Time
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordMove registers a pointer position in client coordinates.
func (t *Tracker) RecordMove(x, y float64, now time.Time) {
	cur := mgl32.Vec2{float32(x), float32(y)}
	var instant float64
	if t.hasLast {
		instant = float64(cur.Sub(t.last).Len())
	}
	t.velocity = t.velocity*(1-Smoothing) + instant*Smoothing
	t.last = cur
	t.hasLast = true
	t.lastMove = now
}

// Reset starts a new gesture at (x, y) with zero speed, as a touch start does.
func (t *Tracker) Reset(x, y float64, now time.Time) {
	t.velocity = 0
	t.last = mgl32.Vec2{float32(x), float32(y)}
	t.hasLast = true
	t.lastMove = now
}

// Decay lets the speed fall off once the pointer has been still for IdleAfter.
func (t *Tracker) Decay(now time.Time) {
	if now.Sub(t.lastMove) <= IdleAfter {
		return
	}
	t.velocity *= DecayRate
	if t.velocity < VelocityMin {
		t.velocity = 0
	}
}

// ComputeScale eases the effect scale toward the normalized speed and returns it.
func (t *Tracker) ComputeScale() float64 {
	norm := math.Min(t.velocity/MaxVelocity, 1)
	t.target = math.Pow(norm, ScaleCurve)
	diff := t.target - t.scale
	if math.Abs(diff) > easeSnap {
		t.scale += diff * EaseSpeed
	} else {
		t.scale = t.target
	}
	return t.scale
}

// Update runs one frame of decay and easing.
func (t *Tracker) Update(now time.Time) float64 {
	t.Decay(now)
	return t.ComputeScale()
}

func (t *Tracker) Velocity() float64    { return t.velocity }
func (t *Tracker) EffectScale() float64 { return t.scale }
func (t *Tracker) Position() mgl32.Vec2 { return t.last }
func (t *Tracker) HasPosition() bool    { return t.hasLast }

// Settling reports whether the speed or the scale are still moving.
func (t *Tracker) Settling() bool {
	return t.velocity > 0 || t.scale != t.target
}

// ScaleFor returns the effect scale an instance should use.
func (t *Tracker) ScaleFor(velocityEnabled bool) float64 {
	if !velocityEnabled {
		return 1
	}
	return t.scale
}

// HitTest reports whether (x, y) lies in box and returns the local position with a
// bottom-left origin, as the effect shader expects.
func HitTest(box page.Rect, x, y float64) (bool, mgl32.Vec2) {
	if !box.Contains(x, y) {
		return false, mgl32.Vec2{}
	}
	relX := x - box.Left()
	relY := y - box.Top()
	return true, mgl32.Vec2{float32(relX), float32(box.Height - relY)}
}

// Tilt maps a local pointer position to a model rotation target (x, y radians).
func Tilt(box page.Rect, x, y, factor float64) mgl32.Vec2 {
	if box.Empty() {
		return mgl32.Vec2{}
	}
	nx := (x-box.Left())/box.Width*2 - 1
	ny := -(y-box.Top())/box.Height*2 + 1
	return mgl32.Vec2{float32(ny * factor), float32(nx * factor)}
}
