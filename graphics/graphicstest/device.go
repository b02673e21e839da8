// Package graphicstest provides an in-memory graphics.Device that records what
// the runtime does with it.
package graphicstest

import (
	"errors"
	"image"
	"sync"

	"github.com/richinsley/goglitch/graphics"
)

var ErrInjected = errors.New("graphicstest: injected failure")

// Device is a recording fake. Set the Fail* fields to make creation fail.
type Device struct {
	mu sync.Mutex

	FailSurface bool
	FailProgram bool
	FailTexture bool
	FailDraw    bool
	// SurfaceLimit makes NewSurface fail once that many surfaces exist; 0 means
	// no limit.
	SurfaceLimit int

	Surfaces []*Surface
	Textures []*Texture
	Targets  []*Target
	Programs []*Program
}

func NewDevice() *Device { return &Device{} }

func (d *Device) NewSurface(id string) (graphics.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailSurface || (d.SurfaceLimit > 0 && len(d.Surfaces) >= d.SurfaceLimit) {
		return nil, ErrInjected
	}
	s := &Surface{id: id, dev: d}
	d.Surfaces = append(d.Surfaces, s)
	return s, nil
}

func (d *Device) NewTexture(img *image.RGBA) (graphics.Texture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailTexture {
		return nil, ErrInjected
	}
	t := &Texture{w: img.Bounds().Dx(), h: img.Bounds().Dy()}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) NewRenderTarget(w, h int) (graphics.RenderTarget, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := &Target{tex: &Texture{w: w, h: h}}
	d.Targets = append(d.Targets, t)
	return t, nil
}

func (d *Device) NewEffectProgram() (graphics.Program, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailProgram {
		return nil, ErrInjected
	}
	p := &Program{}
	d.Programs = append(d.Programs, p)
	return p, nil
}

// Draws returns the total number of draws over all surfaces.
func (d *Device) Draws() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, s := range d.Surfaces {
		n += s.Draws
	}
	return n
}

// Live counts resources that were created and not disposed.
func (d *Device) Live() (surfaces, textures, programs int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.Surfaces {
		if !s.Disposed {
			surfaces++
		}
	}
	for _, t := range d.Textures {
		if !t.Disposed {
			textures++
		}
	}
	for _, p := range d.Programs {
		if !p.Disposed {
			programs++
		}
	}
	return
}

// Surface records placements and draws.
type Surface struct {
	id  string
	dev *Device

	W, H       int
	PixelRatio float64
	Placement  graphics.Placement
	Hide       bool
	Draws      int
	LastDraw   graphics.DrawCall
	Disposed   bool
}

func (s *Surface) ID() string { return s.id }
func (s *Surface) Resize(w, h int, pr float64) {
	s.W, s.H, s.PixelRatio = w, h, pr
}
func (s *Surface) Size() (int, int)           { return s.W, s.H }
func (s *Surface) Place(p graphics.Placement) { s.Placement = p }
func (s *Surface) SetHidden(h bool)           { s.Hide = h }
func (s *Surface) Hidden() bool               { return s.Hide }
func (s *Surface) Draw(call graphics.DrawCall) error {
	if s.dev.FailDraw {
		return ErrInjected
	}
	if call.Source == nil {
		return errors.New("graphicstest: draw without source")
	}
	if t, ok := call.Source.(*Texture); ok && t.Disposed {
		return errors.New("graphicstest: draw with disposed texture")
	}
	s.Draws++
	s.LastDraw = call
	return nil
}
func (s *Surface) Dispose() { s.Disposed = true }

type Texture struct {
	w, h     int
	Updates  int
	Disposed bool
}

func (t *Texture) Size() (int, int) { return t.w, t.h }
func (t *Texture) Update(img *image.RGBA) error {
	t.w, t.h = img.Bounds().Dx(), img.Bounds().Dy()
	t.Updates++
	return nil
}
func (t *Texture) Dispose() { t.Disposed = true }

type Target struct {
	tex      *Texture
	Renders  int
	Disposed bool
}

func (t *Target) Texture() graphics.Texture { return t.tex }
func (t *Target) Resize(w, h int)           { t.tex.w, t.tex.h = w, h }
func (t *Target) Render(draw func()) error {
	t.Renders++
	draw()
	return nil
}
func (t *Target) Dispose() { t.Disposed = true; t.tex.Disposed = true }

type Program struct{ Disposed bool }

func (p *Program) Dispose() { p.Disposed = true }
