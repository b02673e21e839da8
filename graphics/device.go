// Package graphics declares the graphics binding the effect runtime draws through.
// Backends (see glrender) implement these interfaces; tests use in-memory fakes.
package graphics

import (
	"image"
	"strconv"
	"strings"

	"github.com/richinsley/goglitch/page"
)

// Texture is an uploaded bitmap.
type Texture interface {
	Size() (width, height int)
	// Update replaces the pixels, reallocating when the size changes.
	Update(img *image.RGBA) error
	Dispose()
}

// RenderTarget is an offscreen color target whose result can be sampled as a texture.
type RenderTarget interface {
	Texture() Texture
	Resize(width, height int)
	// Render runs draw with the target bound as the framebuffer.
	Render(draw func()) error
	Dispose()
}

// Program is a linked effect program.
type Program interface {
	Dispose()
}

// DrawCall is one full-surface quad draw.
type DrawCall struct {
	Program  Program
	Uniforms *UniformSet
	// Source is bound to the "u_texture" sampler. Further samplers are taken from
	// texture uniforms in Uniforms.
	Source Texture
}

// Surface is the output canvas of one effect system, placed over its element.
type Surface interface {
	ID() string
	// Resize sets the CSS size; the backing store is width*pixelRatio by
	// height*pixelRatio.
	Resize(width, height int, pixelRatio float64)
	Size() (width, height int)
	Place(p Placement)
	SetHidden(hidden bool)
	Hidden() bool
	Draw(call DrawCall) error
	Dispose()
}

// Device creates GPU resources.
type Device interface {
	NewSurface(id string) (Surface, error)
	NewTexture(img *image.RGBA) (Texture, error)
	NewRenderTarget(width, height int) (RenderTarget, error)
	NewEffectProgram() (Program, error)
}

// Placement mirrors the element's layout onto its surface. Box is always the live
// bounding box in client pixels; the CSS fields carry the computed values verbatim.
type Placement struct {
	Box             page.Rect
	Position        string
	Top             string
	Left            string
	Right           string
	Bottom          string
	Width           string
	Height          string
	Margin          string
	Padding         string
	Transform       string
	TransformOrigin string
	ZIndex          string
	BorderRadius    string
	BoxSizing       string
	ObjectFit       string
	ObjectPosition  string
	PointerEvents   string
}

// Z returns the integer stacking order; "auto" and junk count as 0.
func (p Placement) Z() int {
	z, err := strconv.Atoi(strings.TrimSpace(p.ZIndex))
	if err != nil {
		return 0
	}
	return z
}
