package engine

import (
	"fmt"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/options"
	"github.com/richinsley/goglitch/page"
	"github.com/richinsley/goglitch/render"
	"github.com/richinsley/goglitch/snapshot"
)

// Background work never touches runtime state: it posts a completion that runs on
// the render loop and first checks that the owner is still registered.

func (r *Runtime) startSetup(sys *EffectSystem) {
	if src := sys.el.ModelSource(); src != "" && r.opts.Models != nil {
		id, ctx, loader := sys.id, sys.ctx, r.opts.Models
		r.opts.Spawn(func() {
			asset, err := loader.Load(ctx, src)
			r.post(func() { r.finishModel(id, asset, err) })
		})
		return
	}
	r.startCapture(sys)
}

func (r *Runtime) startCapture(sys *EffectSystem) {
	sys.capturing = true
	sys.lastAspect = sys.el.BoundingRect().Aspect()
	id, ctx, el, cfg := sys.id, sys.ctx, sys.el, sys.instance.cfg.Clone()
	r.opts.Spawn(func() {
		snap, err := r.bridge.Capture(ctx, el, cfg)
		r.post(func() { r.finishCapture(id, snap, err) })
	})
}

func (r *Runtime) finishCapture(id int, snap *snapshot.Snapshot, err error) {
	sys, ok := r.systems[id]
	if !ok {
		if snap != nil && snap.Video != nil {
			snap.Video.Close()
		}
		return
	}
	sys.capturing = false
	if err == nil {
		var tex graphics.Texture
		if tex, err = snapshot.Upload(r.opts.Device, snap); err == nil {
			// The previous texture is disposed only once the new one is bound.
			sys.rc.SwapSource(tex)
		}
	}
	if err != nil {
		if snap != nil && snap.Video != nil {
			snap.Video.Close()
		}
		if sys.ready {
			// A failed recapture keeps the old texture.
			r.report(Diagnostic{Instance: sys.instance.id, Element: sys.el.ID(), Kind: DiagSetup, Err: fmt.Errorf("recapture: %w", err)})
			return
		}
		r.fail(sys, DiagSetup, err)
		return
	}

	if sys.video != nil && sys.video != snap.Video {
		sys.video.Close()
	}
	sys.video = snap.Video
	sys.text = snap.Text
	// These captures follow the box aspect, so the texture aspect tracks the box.
	kind := sys.el.Kind()
	sys.fitApplied = snap.Video == nil && (kind == page.KindImage || kind == page.KindVideo || !kind.IsImageLike())
	sys.rc.Material.SetSource(snap.TextureAspect, snap.AspectCorrection, !sys.el.Kind().IsImageLike())
	r.markReady(sys)
}

func (r *Runtime) finishModel(id int, asset render.ModelAsset, err error) {
	sys, ok := r.systems[id]
	if !ok {
		return
	}
	var model render.Model
	if err == nil {
		model, err = asset.Upload(r.opts.Device)
	}
	if err == nil {
		if err = sys.rc.AttachModel(model); err != nil {
			model.Dispose()
		}
	}
	if err != nil {
		r.fail(sys, DiagSetup, fmt.Errorf("load model: %w", err))
		return
	}
	sys.rc.Material.SetSource(sys.el.BoundingRect().Aspect(), false, false)
	r.markReady(sys)
}

func (r *Runtime) markReady(sys *EffectSystem) {
	if !sys.ready {
		sys.ready = true
		sys.el.SetVisibility("hidden")
		sys.rc.Surface.SetHidden(false)
		Logger().Debug("effect system ready", "instance", sys.instance.id, "element", sys.el.ID())
	}
	sys.dirty = true
}

// fail isolates a system: its surface is hidden and the element shown again.
func (r *Runtime) fail(sys *EffectSystem, kind DiagnosticKind, err error) {
	sys.failed = true
	sys.dirty = false
	sys.rc.Surface.SetHidden(true)
	sys.el.SetVisibility(sys.savedVisibility)
	r.report(Diagnostic{Instance: sys.instance.id, Element: sys.el.ID(), Kind: kind, Err: err})
}

// loadShape (re)loads the custom interaction shape of an instance, or clears it
// when the configuration no longer asks for one.
func (r *Runtime) loadShape(inst *Instance) {
	inst.shapeSeq++
	in := inst.cfg.Interaction
	if !in.Enabled || in.Shape != options.ShapeCustom || in.CustomURL == "" {
		r.applyShape(inst, nil)
		return
	}
	id, seq, url := inst.id, inst.shapeSeq, in.CustomURL
	r.opts.Spawn(func() {
		shape, err := snapshot.LoadInteractionShape(url)
		r.post(func() { r.finishShape(id, seq, shape, err) })
	})
}

func (r *Runtime) finishShape(id InstanceID, seq int, shape *snapshot.InteractionShape, err error) {
	inst, ok := r.instances[id]
	if !ok || inst.shapeSeq != seq {
		return
	}
	if err != nil {
		r.report(Diagnostic{Instance: id, Kind: DiagSetup, Err: fmt.Errorf("interaction shape: %w", err)})
		r.applyShape(inst, nil)
		return
	}
	r.applyShape(inst, shape)
}

func (r *Runtime) applyShape(inst *Instance, shape *snapshot.InteractionShape) {
	for _, sys := range inst.systems {
		if shape == nil {
			if sys.shapeMask != nil {
				sys.setShape(nil, nil)
				sys.dirty = true
			}
			continue
		}
		mask, err := r.opts.Device.NewTexture(shape.Mask)
		if err != nil {
			r.report(Diagnostic{Instance: inst.id, Element: sys.el.ID(), Kind: DiagSetup, Err: err})
			continue
		}
		gradient, err := r.opts.Device.NewTexture(shape.Gradient)
		if err != nil {
			mask.Dispose()
			r.report(Diagnostic{Instance: inst.id, Element: sys.el.ID(), Kind: DiagSetup, Err: err})
			continue
		}
		sys.setShape(mask, gradient)
		sys.dirty = true
	}
}
