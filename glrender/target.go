package glrender

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/goglitch/graphics"
)

// RenderTarget is a color texture plus depth buffer for the model pass.
type RenderTarget struct {
	fbo   uint32
	depth uint32
	tex   *Texture
}

func newRenderTarget(w, h int) (*RenderTarget, error) {
	t := &RenderTarget{tex: allocTexture(w, h)}
	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.tex.id, 0)
	gl.GenRenderbuffers(1, &t.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(t.tex.w), int32(t.tex.h))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depth)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Dispose()
		return nil, fmt.Errorf("model target fbo is not complete (0x%x)", status)
	}
	return t, nil
}

func (t *RenderTarget) Texture() graphics.Texture { return t.tex }

func (t *RenderTarget) Resize(w, h int) {
	if w == t.tex.w && h == t.tex.h {
		return
	}
	t.tex.resize(w, h)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(t.tex.w), int32(t.tex.h))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// Render binds the target with depth testing on and runs draw.
func (t *RenderTarget) Render(draw func()) error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.tex.w), int32(t.tex.h))
	gl.ClearColor(0, 0, 0, 0)
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	draw()
	gl.Disable(gl.DEPTH_TEST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return glError("model pass")
}

func (t *RenderTarget) Dispose() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.depth != 0 {
		gl.DeleteRenderbuffers(1, &t.depth)
		t.depth = 0
	}
	t.tex.Dispose()
}
