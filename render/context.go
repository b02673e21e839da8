// Package render holds the per-element rendering state: output surface, effect
// program, material and, in model mode, the offscreen model pass.
package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goglitch/graphics"
)

// ModelLoader loads 3D model assets off the render loop.
type ModelLoader interface {
	Load(ctx context.Context, src string) (ModelAsset, error)
}

// ModelAsset is a loaded model whose GPU resources are created on the render loop.
type ModelAsset interface {
	Upload(dev graphics.Device) (Model, error)
}

// Model draws itself into the bound framebuffer.
type Model interface {
	Draw(mvp mgl32.Mat4) error
	Dispose()
}

// Context is the rendering state of one effect system.
type Context struct {
	Surface  graphics.Surface
	Program  graphics.Program
	Material *Material
	Camera   *Camera

	dev    graphics.Device
	source graphics.Texture
	target graphics.RenderTarget
	model  Model

	pixelRatio float64
}

// New creates the surface and effect program for one element. Nothing is left
// allocated on failure.
func New(dev graphics.Device, id string) (*Context, error) {
	if dev == nil {
		return nil, errors.New("render: no graphics device")
	}
	surface, err := dev.NewSurface(id)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	prog, err := dev.NewEffectProgram()
	if err != nil {
		surface.Dispose()
		return nil, fmt.Errorf("create effect program: %w", err)
	}
	return &Context{
		Surface:  surface,
		Program:  prog,
		Material: NewMaterial(),
		Camera:   NewCamera(),
		dev:      dev,
	}, nil
}

func (c *Context) Source() graphics.Texture { return c.source }

// SwapSource binds tex and only then disposes the texture it replaces.
func (c *Context) SwapSource(tex graphics.Texture) {
	old := c.source
	c.source = tex
	if old != nil && old != tex {
		old.Dispose()
	}
}

// AttachModel switches the context to model mode: the model is drawn into an
// offscreen target which then feeds the effect pass.
func (c *Context) AttachModel(m Model) error {
	w, h := c.Surface.Size()
	target, err := c.dev.NewRenderTarget(max(w, 1), max(h, 1))
	if err != nil {
		return fmt.Errorf("create model target: %w", err)
	}
	if c.model != nil {
		c.model.Dispose()
	}
	if c.target != nil {
		c.target.Dispose()
	}
	c.model = m
	c.target = target
	c.SwapSource(nil)
	return nil
}

func (c *Context) Is3D() bool { return c.model != nil }

// Resize matches the surface, and the model target, to the element's box.
func (c *Context) Resize(width, height int, pixelRatio float64) {
	w, h := c.Surface.Size()
	if w == width && h == height && c.pixelRatio == pixelRatio {
		return
	}
	c.pixelRatio = pixelRatio
	c.Surface.Resize(width, height, pixelRatio)
	if c.target != nil {
		c.target.Resize(max(width, 1), max(height, 1))
	}
}

// Draw runs the model pass, if any, and the effect pass.
func (c *Context) Draw(modelScale float64) error {
	src := c.source
	if c.model != nil {
		var drawErr error
		err := c.target.Render(func() {
			drawErr = c.model.Draw(c.Camera.MVP(modelScale))
		})
		if err == nil {
			err = drawErr
		}
		if err != nil {
			return fmt.Errorf("model pass: %w", err)
		}
		src = c.target.Texture()
	}
	if src == nil {
		return errors.New("render: no source texture")
	}
	return c.Surface.Draw(graphics.DrawCall{
		Program:  c.Program,
		Uniforms: c.Material.Uniforms(),
		Source:   src,
	})
}

// Dispose releases every GPU resource of the context.
func (c *Context) Dispose() {
	if c.model != nil {
		c.model.Dispose()
		c.model = nil
	}
	if c.target != nil {
		c.target.Dispose()
		c.target = nil
	}
	c.SwapSource(nil)
	c.Material.SetInteractionShape(nil, nil)
	if c.Program != nil {
		c.Program.Dispose()
	}
	if c.Surface != nil {
		c.Surface.Dispose()
	}
}
