package engine

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/page"
	"github.com/richinsley/goglitch/render"
	"github.com/richinsley/goglitch/snapshot"
	"github.com/richinsley/goglitch/visibility"
)

// State is the scheduling state of an effect system.
type State int

const (
	// Pending: asynchronous setup has not completed.
	Pending State = iota
	// Suspended: outside the viewport and its pre-roll margin.
	Suspended
	// Idle: in view with nothing to draw.
	Idle
	// PendingDraw: invalidated or animating; drawn on the next tick.
	PendingDraw
	// Failed: setup or drawing failed; the source element is shown untouched.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Suspended:
		return "suspended"
	case Idle:
		return "idle"
	case PendingDraw:
		return "pending-draw"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// EffectSystem is the runtime record of one watched element.
type EffectSystem struct {
	id       int
	instance *Instance
	el       page.Element
	rc       *render.Context
	gate     *visibility.Gate

	ctx    context.Context
	cancel context.CancelFunc

	ready  bool
	failed bool
	dirty  bool

	mouseOver bool
	pointer   mgl32.Vec2
	clock     float64
	radius    float64

	video      snapshot.FrameSource
	text       bool
	fitApplied bool
	lastAspect float64
	lastBox    page.Rect
	capturing  bool

	shapeMask     graphics.Texture
	shapeGradient graphics.Texture

	savedVisibility string
}

func (s *EffectSystem) Element() page.Element { return s.el }

func (s *EffectSystem) State() State {
	switch {
	case s.failed:
		return Failed
	case !s.ready:
		return Pending
	case !s.gate.InView():
		return Suspended
	case s.dirty || s.continuous():
		return PendingDraw
	}
	return Idle
}

// continuous reports whether the system animates on its own and so draws on
// every frame it is visible.
func (s *EffectSystem) continuous() bool {
	return s.video != nil || s.instance.cfg.HasTimeDrivenEffect()
}

// Texture returns the bound source texture; nil before setup and in model mode.
func (s *EffectSystem) Texture() graphics.Texture { return s.rc.Source() }

func (s *EffectSystem) Surface() graphics.Surface { return s.rc.Surface }

func (s *EffectSystem) Uniforms() *graphics.UniformSet { return s.rc.Material.Uniforms() }

// Clock returns the effect time in seconds.
func (s *EffectSystem) Clock() float64 { return s.clock }

func (s *EffectSystem) IsVideo() bool { return s.video != nil }

func (s *EffectSystem) Is3D() bool { return s.rc.Is3D() }

// Radius returns the resolved interaction radius in CSS pixels.
func (s *EffectSystem) Radius() float64 { return s.radius }

func (s *EffectSystem) setShape(mask, gradient graphics.Texture) {
	if s.shapeMask != nil {
		s.shapeMask.Dispose()
	}
	if s.shapeGradient != nil {
		s.shapeGradient.Dispose()
	}
	s.shapeMask, s.shapeGradient = mask, gradient
	s.rc.Material.SetInteractionShape(mask, gradient)
}

// release frees everything the system owns. The element's visibility is restored
// unless keepHidden is set.
func (s *EffectSystem) release(keepHidden bool) {
	s.cancel()
	s.gate.Close()
	if s.video != nil {
		s.video.Close()
		s.video = nil
	}
	s.setShape(nil, nil)
	s.rc.Dispose()
	if !keepHidden {
		s.el.SetVisibility(s.savedVisibility)
	}
}
