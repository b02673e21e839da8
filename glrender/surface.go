package glrender

import (
	"errors"
	"fmt"
	"math"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/shader"
)

// Surface is an offscreen canvas the effect is drawn into; Device.Present
// composites it over its element's box.
type Surface struct {
	id  string
	dev *Device
	seq int

	fbo        uint32
	tex        *Texture
	w, h       int
	pixelRatio float64
	placement  graphics.Placement
	hidden     bool
	disposed   bool
}

func (s *Surface) ID() string { return s.id }

func (s *Surface) Resize(w, h int, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	s.w, s.h, s.pixelRatio = w, h, pixelRatio
	bw := int(math.Round(float64(w) * pixelRatio))
	bh := int(math.Round(float64(h) * pixelRatio))
	if bw != s.tex.w || bh != s.tex.h {
		s.tex.resize(bw, bh)
	}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Place(p graphics.Placement) { s.placement = p }

func (s *Surface) SetHidden(hidden bool) { s.hidden = hidden }

func (s *Surface) Hidden() bool { return s.hidden }

// Draw renders one effect pass into the surface.
func (s *Surface) Draw(call graphics.DrawCall) error {
	if s.disposed {
		return errors.New("glrender: draw on disposed surface")
	}
	prog, ok := call.Program.(*Program)
	if !ok || prog.id == 0 {
		return errors.New("glrender: draw without a linked program")
	}
	src, ok := call.Source.(*Texture)
	if !ok || src.id == 0 {
		return errors.New("glrender: draw without a source texture")
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.Viewport(0, 0, int32(s.tex.w), int32(s.tex.h))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(prog.id)

	units := map[string]uint32{shader.EffectSamplers[0]: 0}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, src.id)
	if loc := prog.location(shader.EffectSamplers[0]); loc != -1 {
		gl.Uniform1i(loc, 0)
	}
	if call.Uniforms != nil {
		call.Uniforms.Each(func(name string, v graphics.Uniform) {
			loc := prog.location(name)
			if loc == -1 {
				return
			}
			switch v.Kind {
			case graphics.UniformFloat:
				gl.Uniform1f(loc, v.Float)
			case graphics.UniformInt, graphics.UniformBool:
				gl.Uniform1i(loc, v.Int)
			case graphics.UniformVec2:
				gl.Uniform2f(loc, v.Vec2[0], v.Vec2[1])
			case graphics.UniformTexture:
				tex, ok := v.Texture.(*Texture)
				if !ok || tex.id == 0 {
					return
				}
				unit := uint32(len(units))
				units[name] = unit
				gl.ActiveTexture(gl.TEXTURE0 + unit)
				gl.BindTexture(gl.TEXTURE_2D, tex.id)
				gl.Uniform1i(loc, int32(unit))
			}
		})
	}
	// Samplers without a texture read the source unit.
	for _, name := range shader.EffectSamplers[1:] {
		if _, ok := units[name]; ok {
			continue
		}
		if loc := prog.location(name); loc != -1 {
			gl.Uniform1i(loc, 0)
		}
	}

	gl.BindVertexArray(s.dev.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	for _, unit := range units {
		gl.ActiveTexture(gl.TEXTURE0 + unit)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if err := glError("effect pass"); err != nil {
		return fmt.Errorf("surface %s: %w", s.id, err)
	}
	return nil
}

func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	gl.DeleteFramebuffers(1, &s.fbo)
	s.tex.Dispose()
	s.dev.removeSurface(s)
}
