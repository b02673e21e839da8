package glrender

import (
	"image"
	"math"
	"sort"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/goglitch/page"
)

// SetPage replaces the page layer composited under the surfaces.
func (d *Device) SetPage(img *image.RGBA) error {
	if d.page != nil && img != nil {
		return d.page.Update(img)
	}
	if img == nil {
		if d.page != nil {
			d.page.Dispose()
			d.page = nil
		}
		return nil
	}
	t, err := newTexture(img, "nearest")
	if err != nil {
		return err
	}
	d.page = t
	return nil
}

// Present draws the page layer and then every visible surface over its box into
// the default framebuffer. scale converts CSS pixels to framebuffer pixels.
func (d *Device) Present(fbWidth, fbHeight int, scale float64) error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(d.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(d.quadVAO)
	gl.Enable(gl.BLEND)
	// image.RGBA pixels are premultiplied.
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	if d.page != nil {
		gl.BindTexture(gl.TEXTURE_2D, d.page.id)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
	for _, s := range drawOrder(d.surfaces) {
		x, y, w, h := viewportRect(s.placement.Box, fbHeight, scale)
		if w <= 0 || h <= 0 {
			continue
		}
		gl.Viewport(x, y, w, h)
		gl.BindTexture(gl.TEXTURE_2D, s.tex.id)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.Disable(gl.BLEND)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	return glError("present")
}

// drawOrder returns the visible surfaces back to front: by z-index, then by
// creation order.
func drawOrder(surfaces []*Surface) []*Surface {
	out := make([]*Surface, 0, len(surfaces))
	for _, s := range surfaces {
		if !s.hidden && !s.disposed {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		zi, zj := out[i].placement.Z(), out[j].placement.Z()
		if zi != zj {
			return zi < zj
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// viewportRect converts a client box (top-left origin, CSS pixels) to a GL
// viewport in framebuffer pixels.
func viewportRect(box page.Rect, fbHeight int, scale float64) (x, y, w, h int32) {
	x = int32(math.Round(box.X * scale))
	w = int32(math.Round(box.Width * scale))
	h = int32(math.Round(box.Height * scale))
	y = int32(fbHeight) - int32(math.Round(box.Y*scale)) - h
	return
}

// ReadPixels reads the default framebuffer back as bottom-up RGBA rows.
func (d *Device) ReadPixels(width, height int) []byte {
	buf := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf
}
