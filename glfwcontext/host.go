package glfwcontext

import (
	"log"
	"time"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/goglitch/encoder"
	"github.com/richinsley/goglitch/engine"
	"github.com/richinsley/goglitch/glrender"
	"github.com/richinsley/goglitch/page"
	"github.com/richinsley/goglitch/snapshot"
	"github.com/richinsley/goglitch/visibility"
)

// ScrollStep is how far one wheel notch scrolls the page, in CSS pixels.
const ScrollStep = 40.0

// Host connects a window, a page document and an effect runtime.
type Host struct {
	ctx    *Context
	dev    *glrender.Device
	rt     *engine.Runtime
	doc    *page.Document
	obs    *visibility.RectObserver
	mobile bool

	raster      snapshot.Rasterizer
	pageSig     string
	needPresent bool
	landscape   bool

	rec       *encoder.Encoder
	recStart  time.Time
	recWarned bool
}

// NewHost installs the window callbacks. The runtime must have been created with
// ctx as its Viewport and FrameRequester and obs as its Observer.
func NewHost(ctx *Context, dev *glrender.Device, rt *engine.Runtime, doc *page.Document, obs *visibility.RectObserver, mobile bool) *Host {
	h := &Host{ctx: ctx, dev: dev, rt: rt, doc: doc, obs: obs, mobile: mobile, needPresent: true}
	w, vh := ctx.Size()
	h.landscape = w >= vh
	win := ctx.Window()
	win.SetCursorPosCallback(h.onCursor)
	win.SetMouseButtonCallback(h.onButton)
	win.SetScrollCallback(h.onScroll)
	win.SetSizeCallback(func(*glfw.Window, int, int) { h.onResize() })
	win.SetContentScaleCallback(func(*glfw.Window, float32, float32) { h.onResize() })
	win.SetRefreshCallback(func(*glfw.Window) { h.needPresent = true })
	return h
}

// SetRecorder sends every presented frame to rec. Frames whose size no longer
// matches the recording are skipped.
func (h *Host) SetRecorder(rec *encoder.Encoder) {
	h.rec = rec
	h.recStart = time.Now()
}

func (h *Host) onCursor(_ *glfw.Window, x, y float64) {
	h.rt.PointerMove(x, y)
}

// onButton maps the left button to touch start and end in touch mode.
func (h *Host) onButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if !h.mobile || button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		x, y := w.GetCursorPos()
		h.rt.TouchStart(x, y)
	case glfw.Release:
		h.rt.TouchEnd()
	}
}

func (h *Host) onScroll(_ *glfw.Window, _, yoff float64) {
	_, vh := h.ctx.Size()
	if !h.doc.ScrollBy(-yoff*ScrollStep, vh) {
		return
	}
	h.obs.Check()
	h.rt.TriggerRenderAll()
	h.needPresent = true
}

// onResize also reports a flip between landscape and portrait as an orientation
// change, which is how a rotated touch device looks from here.
func (h *Host) onResize() {
	w, vh := h.ctx.Size()
	h.rt.ViewportResized(w, vh, h.ctx.DevicePixelRatio())
	if landscape := w >= vh; landscape != h.landscape {
		h.landscape = landscape
		h.rt.OrientationChanged()
	}
	h.obs.Check()
	h.needPresent = true
}

// Run processes events until the window closes. A tick runs only when the runtime
// requested one; the window is repainted after ticks and on damage.
func (h *Host) Run() {
	for !h.ctx.ShouldClose() {
		glfw.WaitEvents()
		if h.ctx.takeFrame() {
			h.rt.Tick()
			h.needPresent = true
		}
		if h.needPresent {
			h.present()
		}
	}
}

func (h *Host) present() {
	h.needPresent = false
	fbWidth, fbHeight := h.ctx.GetFramebufferSize()
	scale := h.ctx.DevicePixelRatio()
	if sig := pageSignature(h.doc, fbWidth, fbHeight); sig != h.pageSig {
		h.pageSig = sig
		if err := h.dev.SetPage(composePage(h.doc, h.raster, fbWidth, fbHeight, scale)); err != nil {
			log.Printf("page layer: %v", err)
		}
	}
	if err := h.dev.Present(fbWidth, fbHeight, scale); err != nil {
		log.Printf("present: %v", err)
	}
	if h.rec != nil {
		h.record(fbWidth, fbHeight)
	}
	h.ctx.Window().SwapBuffers()
}

func (h *Host) record(fbWidth, fbHeight int) {
	o := h.rec.Options()
	if fbWidth != o.Width || fbHeight != o.Height {
		if !h.recWarned {
			log.Printf("Warning: window is %dx%d, recording is %dx%d; frames skipped", fbWidth, fbHeight, o.Width, o.Height)
			h.recWarned = true
		}
		return
	}
	h.recWarned = false
	pts := int64(time.Since(h.recStart).Seconds() * float64(o.FPS))
	h.rec.SendVideo(&encoder.Frame{Pixels: h.dev.ReadPixels(fbWidth, fbHeight), PTS: pts})
}
