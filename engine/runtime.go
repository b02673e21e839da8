// Package engine runs the effect systems: instance registry, asynchronous setup,
// the shared pointer state and the demand-driven render scheduler.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/options"
	"github.com/richinsley/goglitch/page"
	"github.com/richinsley/goglitch/pointer"
	"github.com/richinsley/goglitch/render"
	"github.com/richinsley/goglitch/snapshot"
	"github.com/richinsley/goglitch/visibility"
)

// FrameRequester schedules one call to Runtime.Tick on the render loop. It must be
// safe to call from any goroutine.
type FrameRequester interface {
	RequestFrame()
}

// RuntimeOptions wires a Runtime to its collaborators.
type RuntimeOptions struct {
	Device   graphics.Device
	Viewport page.Viewport
	// Observer reports viewport intersection. Nil treats every element as visible.
	Observer visibility.Observer
	// Bridge captures element content. Nil uses snapshot.NewBridge(nil, nil).
	Bridge *snapshot.Bridge
	// Models loads 3D models. Nil renders model elements as flat snapshots.
	Models render.ModelLoader
	Frames FrameRequester
	// Spawn runs background work. Nil starts a goroutine.
	Spawn func(func())
	// Now is the clock. Nil uses time.Now.
	Now func() time.Time
	// Mobile selects touch-device resize heuristics.
	Mobile       bool
	OnDiagnostic func(Diagnostic)
}

// InstanceID identifies a registration.
type InstanceID int

// Instance is one registration of a configuration against a set of elements.
type Instance struct {
	id      InstanceID
	cfg     options.Config
	systems []*EffectSystem

	ctx    context.Context
	cancel context.CancelFunc

	shapeSeq int
	anims    []*animation
}

func (i *Instance) ID() InstanceID           { return i.id }
func (i *Instance) Config() options.Config   { return i.cfg.Clone() }
func (i *Instance) Systems() []*EffectSystem { return i.systems }

// shared is the process-wide pointer and resize state, alive while at least one
// instance is registered.
type shared struct {
	tracker *pointer.Tracker
	resize  *resizeWatcher
}

// Runtime owns every instance. All methods except the FrameRequester callback and
// background tasks must be called from the render loop goroutine.
type Runtime struct {
	opts   RuntimeOptions
	bridge *snapshot.Bridge

	instances map[InstanceID]*Instance
	order     []InstanceID
	systems   map[int]*EffectSystem
	nextInst  InstanceID
	nextSys   int
	shared    *shared

	mu      sync.Mutex
	pending []func()
	armed   atomic.Bool
}

func NewRuntime(opts RuntimeOptions) *Runtime {
	if opts.Spawn == nil {
		opts.Spawn = func(f func()) { go f() }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	b := opts.Bridge
	if b == nil {
		b = snapshot.NewBridge(nil, nil)
	}
	return &Runtime{
		opts:      opts,
		bridge:    b,
		instances: make(map[InstanceID]*Instance),
		systems:   make(map[int]*EffectSystem),
	}
}

// Register creates one effect system per element. It fails without leaving
// anything registered when the graphics device is missing or cannot create the
// per-element resources.
func (r *Runtime) Register(cfg options.Config, elements []page.Element) (InstanceID, error) {
	if r.opts.Device == nil {
		return 0, ErrNoGraphics
	}
	if len(elements) == 0 {
		return 0, ErrNoElements
	}

	r.nextInst++
	inst := &Instance{id: r.nextInst, cfg: cfg.Clone()}
	inst.ctx, inst.cancel = context.WithCancel(context.Background())

	for _, el := range elements {
		rc, err := render.New(r.opts.Device, fmt.Sprintf("%d-%s", inst.id, el.ID()))
		if err != nil {
			for _, s := range inst.systems {
				s.rc.Dispose()
				s.cancel()
			}
			inst.cancel()
			return 0, fmt.Errorf("%w: %v", ErrNoGraphics, err)
		}
		rc.Surface.SetHidden(true)
		r.nextSys++
		sys := &EffectSystem{
			id:              r.nextSys,
			instance:        inst,
			el:              el,
			rc:              rc,
			savedVisibility: el.ComputedStyle().Visibility,
		}
		sys.ctx, sys.cancel = context.WithCancel(inst.ctx)
		inst.systems = append(inst.systems, sys)
	}

	if r.shared == nil {
		r.acquireShared()
	}
	r.instances[inst.id] = inst
	r.order = append(r.order, inst.id)

	for _, sys := range inst.systems {
		r.systems[sys.id] = sys
		id := sys.id
		sys.gate = visibility.NewGate(r.opts.Observer, sys.el, func(in bool) {
			r.post(func() { r.visibilityChanged(id, in) })
		})
		r.resolveRadius(sys)
		sys.rc.Material.ApplyConfig(&inst.cfg, sys.radius)
		r.startSetup(sys)
	}
	r.loadShape(inst)

	Logger().Info("instance registered", "instance", inst.id, "elements", len(elements))
	r.requestFrame()
	return inst.id, nil
}

// UpdateConfig merges p into the instance configuration and marks every system
// dirty. Rejected values are reported as diagnostics.
func (r *Runtime) UpdateConfig(id InstanceID, p options.Patch) error {
	inst, ok := r.instances[id]
	if !ok {
		return ErrUnknownInstance
	}
	cfg, errs := options.Merge(inst.cfg, p)
	for _, err := range errs {
		r.report(Diagnostic{Instance: id, Kind: DiagConfig, Err: err})
	}
	old := inst.cfg
	inst.cfg = cfg
	for _, sys := range inst.systems {
		r.resolveRadius(sys)
		sys.rc.Material.ApplyConfig(&inst.cfg, sys.radius)
		sys.dirty = true
	}
	if options.InteractionTextureChanged(old, cfg) {
		r.loadShape(inst)
	}
	r.requestFrame()
	return nil
}

// Destroy releases the instance. The shared pointer and resize state go away with
// the last instance.
func (r *Runtime) Destroy(id InstanceID, keepHidden bool) error {
	inst, ok := r.instances[id]
	if !ok {
		return ErrUnknownInstance
	}
	inst.cancel()
	for _, a := range inst.anims {
		a.finish()
	}
	inst.anims = nil
	for _, sys := range inst.systems {
		delete(r.systems, sys.id)
		sys.release(keepHidden)
	}
	delete(r.instances, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if len(r.instances) == 0 {
		r.releaseShared()
	}
	Logger().Info("instance destroyed", "instance", id)
	return nil
}

// DestroyAll releases every instance.
func (r *Runtime) DestroyAll(keepHidden bool) {
	for _, id := range append([]InstanceID(nil), r.order...) {
		r.Destroy(id, keepHidden)
	}
}

// Instance returns a registered instance.
func (r *Runtime) Instance(id InstanceID) (*Instance, bool) {
	inst, ok := r.instances[id]
	return inst, ok
}

// Active reports whether the shared pointer state exists.
func (r *Runtime) Active() bool { return r.shared != nil }

// Tracker returns the shared pointer tracker, nil without instances.
func (r *Runtime) Tracker() *pointer.Tracker {
	if r.shared == nil {
		return nil
	}
	return r.shared.tracker
}

// Armed reports whether a frame has been requested and not yet run.
func (r *Runtime) Armed() bool { return r.armed.Load() }

// PointerMove feeds a pointer position in client coordinates.
func (r *Runtime) PointerMove(x, y float64) {
	if r.shared == nil {
		return
	}
	r.shared.tracker.RecordMove(x, y, r.opts.Now())
	r.hitTest(x, y)
	r.requestFrame()
}

// TouchStart begins a touch: the speed is reset so the jump to the touch point
// does not count as motion.
func (r *Runtime) TouchStart(x, y float64) {
	if r.shared == nil {
		return
	}
	r.shared.tracker.Reset(x, y, r.opts.Now())
	r.hitTest(x, y)
	r.requestFrame()
}

// TouchEnd ends a touch; no element is hovered afterwards.
func (r *Runtime) TouchEnd() {
	r.eachSystem(func(s *EffectSystem) { s.mouseOver = false })
}

func (r *Runtime) hitTest(x, y float64) {
	r.eachSystem(func(s *EffectSystem) {
		box := s.el.BoundingRect()
		over, local := pointer.HitTest(box, x, y)
		s.mouseOver = over
		if !over {
			return
		}
		s.pointer = local
		s.dirty = true
		if s.rc.Is3D() {
			s.rc.Camera.SetTilt(pointer.Tilt(box, x, y, s.instance.cfg.TiltFactor))
		}
	})
}

// ViewportResized feeds a window size or pixel ratio change into the debounced
// resize watcher.
func (r *Runtime) ViewportResized(width, height, ratio float64) {
	if r.shared == nil {
		return
	}
	r.shared.resize.Resized(width, height, ratio)
}

// OrientationChanged feeds a device rotation.
func (r *Runtime) OrientationChanged() {
	if r.shared == nil {
		return
	}
	r.shared.resize.OrientationChanged()
}

// TriggerRenderAll marks every system dirty and requests a frame.
func (r *Runtime) TriggerRenderAll() {
	r.eachSystem(func(s *EffectSystem) { s.dirty = true })
	r.requestFrame()
}

func (r *Runtime) eachSystem(fn func(*EffectSystem)) {
	for _, id := range r.order {
		for _, s := range r.instances[id].systems {
			fn(s)
		}
	}
}

func (r *Runtime) acquireShared() {
	w, h, ratio := r.viewport()
	r.shared = &shared{
		tracker: pointer.NewTracker(),
		resize: newResizeWatcher(w, h, ratio, r.opts.Mobile, func() {
			r.post(r.TriggerRenderAll)
		}),
	}
}

func (r *Runtime) releaseShared() {
	if r.shared == nil {
		return
	}
	r.shared.resize.Stop()
	r.shared = nil
}

func (r *Runtime) viewport() (w, h, ratio float64) {
	if r.opts.Viewport == nil {
		return 0, 0, 1
	}
	w, h = r.opts.Viewport.Size()
	return w, h, r.opts.Viewport.DevicePixelRatio()
}

// pixelRatio is the backing store scale of surfaces, capped at 2.
func (r *Runtime) pixelRatio() float64 {
	_, _, ratio := r.viewport()
	if ratio <= 0 {
		return 1
	}
	return min(ratio, 2)
}

func (r *Runtime) resolveRadius(sys *EffectSystem) {
	w, h, _ := r.viewport()
	ctx := options.LengthContext{
		ViewportWidth:   w,
		ViewportHeight:  h,
		ElementFontSize: sys.el.ComputedStyle().FontSize,
	}
	if r.opts.Viewport != nil {
		ctx.RootFontSize = r.opts.Viewport.RootFontSize()
	}
	radius, err := sys.instance.cfg.InteractionRadius(ctx)
	if err != nil {
		r.report(Diagnostic{Instance: sys.instance.id, Element: sys.el.ID(), Kind: DiagConfig, Err: err})
	}
	sys.radius = radius
}

func (r *Runtime) report(d Diagnostic) {
	Logger().Warn("effect diagnostic", "instance", d.Instance, "element", d.Element, "kind", d.Kind.String(), "err", d.Err)
	if r.opts.OnDiagnostic != nil {
		r.opts.OnDiagnostic(d)
	}
}

// post queues fn to run at the start of the next tick and requests that tick.
// Safe from any goroutine.
func (r *Runtime) post(fn func()) {
	r.mu.Lock()
	r.pending = append(r.pending, fn)
	r.mu.Unlock()
	r.requestFrame()
}

func (r *Runtime) drainPending() {
	r.mu.Lock()
	fns := r.pending
	r.pending = nil
	r.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (r *Runtime) requestFrame() {
	if r.armed.CompareAndSwap(false, true) && r.opts.Frames != nil {
		r.opts.Frames.RequestFrame()
	}
}

func (r *Runtime) visibilityChanged(id int, in bool) {
	sys, ok := r.systems[id]
	if !ok {
		return
	}
	Logger().Debug("visibility changed", "element", sys.el.ID(), "inView", in)
	if in {
		sys.dirty = true
	}
}
