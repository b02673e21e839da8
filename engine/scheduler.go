package engine

import (
	"math"

	"github.com/richinsley/goglitch/render"
	"github.com/richinsley/goglitch/snapshot"
)

// ClockStep is how far an effect's clock advances per drawn frame, in seconds.
const ClockStep = 0.016

// Tick runs one frame. It is a no-op without instances. A new frame is requested
// only when some system still needs frames or an animation is running; otherwise
// the loop stays idle until input, a resize, a config change or a completed load
// requests one.
func (r *Runtime) Tick() {
	r.armed.Store(false)
	r.drainPending()
	if r.shared == nil {
		return
	}
	now := r.opts.Now()
	animating := r.stepAnimations(now)

	r.shared.tracker.Update(now)

	busy := false
	for _, id := range r.order {
		inst, ok := r.instances[id]
		if !ok {
			continue
		}
		for _, sys := range inst.systems {
			if r.stepSystem(sys) {
				busy = true
			}
		}
	}
	if busy || animating {
		r.requestFrame()
	}
}

// stepSystem draws sys if it has to. It reports whether sys needs another frame:
// it drew, or it is hidden but animates on its own and must resume once shown.
func (r *Runtime) stepSystem(sys *EffectSystem) bool {
	if !sys.ready || sys.failed || !sys.gate.InView() {
		return false
	}
	el := sys.el
	box := el.BoundingRect()
	placement, visible := render.Mirror(box, el.ComputedStyle())
	surface := sys.rc.Surface
	if !visible {
		surface.SetHidden(true)
		sys.dirty = false
		return sys.continuous()
	}
	if surface.Hidden() {
		surface.SetHidden(false)
		sys.dirty = true
	}
	if box != sys.lastBox {
		sys.dirty = true
	}

	if !sys.capturing && sys.video == nil && !sys.rc.Is3D() && snapshot.ShouldRecapture(el, sys.lastAspect) {
		Logger().Debug("recapturing", "element", el.ID(), "aspect", box.Aspect(), "last", sys.lastAspect)
		r.startCapture(sys)
	}

	cfg := &sys.instance.cfg
	tracker := r.shared.tracker
	interacting := sys.mouseOver && cfg.Interaction.Velocity && tracker.Settling()
	tilting := sys.rc.Is3D() && !sys.rc.Camera.Settled()
	if !sys.dirty && !sys.continuous() && !interacting && !tilting {
		return false
	}

	sys.clock += ClockStep
	ratio := r.pixelRatio()
	if sys.rc.Is3D() {
		sys.rc.Camera.Step(cfg.TiltSpeed)
		sys.rc.Camera.SetAspect(box.Aspect())
	}
	if sys.video != nil {
		snapshot.Refresh(sys.rc.Source(), sys.video)
	}
	if sys.fitApplied {
		sys.rc.Material.Uniforms().SetFloat("textureAspect", box.Aspect())
	}

	sys.rc.Resize(int(math.Round(box.Width)), int(math.Round(box.Height)), ratio)
	surface.Place(placement)
	sys.rc.Material.SetFrame(render.Frame{
		Time:        sys.clock,
		Pointer:     sys.pointer,
		Width:       box.Width,
		Height:      box.Height,
		EffectScale: tracker.ScaleFor(cfg.Interaction.Velocity),
		PixelRatio:  ratio,
	})
	sys.dirty = false
	sys.lastBox = box
	if err := sys.rc.Draw(cfg.ModelScale); err != nil {
		r.fail(sys, DiagDraw, err)
		return false
	}
	return true
}
