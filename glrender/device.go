// Package glrender implements the graphics binding on OpenGL 4.1: textures, model
// render targets, framebuffer-backed effect surfaces and the window compositor.
package glrender

import (
	"fmt"
	"image"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/shader"
	"github.com/richinsley/goglitch/translator"
)

var glInitOnce sync.Once

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// Device owns the shared GL objects. All methods must be called on the goroutine
// that holds the GL context.
type Device struct {
	gles        bool
	quadVAO     uint32
	quadVBO     uint32
	blitProgram uint32

	effectCode  string
	effectNames map[string]string

	surfaces []*Surface
	seq      int
	page     *Texture
}

// NewDevice initializes the GL bindings for the current context and compiles the
// shared programs. The effect shader is translated once here.
func NewDevice(gles bool) (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	d := &Device{gles: gles}
	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	var err error
	d.blitProgram, err = newProgram(shader.GenerateVertexShader(gles), shader.GetBlitFragmentShader(false, gles))
	if err != nil {
		d.Shutdown()
		return nil, fmt.Errorf("failed to create blit program: %w", err)
	}
	d.effectCode, d.effectNames, err = translator.Fragment(shader.GetEffectFragmentShader(), gles)
	if err != nil {
		d.Shutdown()
		return nil, err
	}
	return d, nil
}

func (d *Device) NewSurface(id string) (graphics.Surface, error) {
	d.seq++
	s := &Surface{id: id, dev: d, seq: d.seq, pixelRatio: 1, tex: allocTexture(1, 1)}
	gl.GenFramebuffers(1, &s.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, s.tex.id, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &s.fbo)
		s.tex.Dispose()
		return nil, fmt.Errorf("surface %s: framebuffer is not complete (0x%x)", id, status)
	}
	d.surfaces = append(d.surfaces, s)
	return s, nil
}

func (d *Device) NewTexture(img *image.RGBA) (graphics.Texture, error) {
	return newTexture(img, "linear")
}

func (d *Device) NewRenderTarget(w, h int) (graphics.RenderTarget, error) {
	return newRenderTarget(w, h)
}

func (d *Device) NewEffectProgram() (graphics.Program, error) {
	id, err := newProgram(shader.GenerateVertexShader(d.gles), d.effectCode)
	if err != nil {
		return nil, fmt.Errorf("failed to create effect program: %w", err)
	}
	return &Program{id: id, names: d.effectNames, locs: make(map[string]int32)}, nil
}

func (d *Device) removeSurface(s *Surface) {
	for i, v := range d.surfaces {
		if v == s {
			d.surfaces = append(d.surfaces[:i], d.surfaces[i+1:]...)
			return
		}
	}
}

// Shutdown releases the shared objects. Surfaces and textures are owned by their
// creators.
func (d *Device) Shutdown() {
	if d.page != nil {
		d.page.Dispose()
		d.page = nil
	}
	if d.blitProgram != 0 {
		gl.DeleteProgram(d.blitProgram)
		d.blitProgram = 0
	}
	if d.quadVBO != 0 {
		gl.DeleteBuffers(1, &d.quadVBO)
		d.quadVBO = 0
	}
	if d.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &d.quadVAO)
		d.quadVAO = 0
	}
}
