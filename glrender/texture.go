package glrender

import (
	"errors"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is an RGBA8 texture. Pixels are stored bottom row first so that texture
// coordinates share gl_FragCoord's bottom-left origin.
type Texture struct {
	id   uint32
	w, h int
}

// vflip returns src with its rows reversed.
func vflip(src *image.RGBA) []byte {
	bounds := src.Bounds()
	height := bounds.Dy()
	rowSize := bounds.Dx() * 4
	out := make([]byte, rowSize*height)
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		copy(out[y*rowSize:], srcRow[:rowSize])
	}
	return out
}

func newTexture(img *image.RGBA, filter string) (*Texture, error) {
	if img == nil {
		return nil, errors.New("glrender: nil image")
	}
	t := &Texture{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, getWrapMode("clamp"))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, getWrapMode("clamp"))
	minFilter, magFilter := getFilterMode(filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := t.Update(img); err != nil {
		t.Dispose()
		return nil, err
	}
	return t, nil
}

// allocTexture creates an empty render-target texture.
func allocTexture(w, h int) *Texture {
	t := &Texture{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, getWrapMode("clamp"))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, getWrapMode("clamp"))
	minFilter, magFilter := getFilterMode("linear")
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	t.resize(w, h)
	return t
}

func (t *Texture) resize(w, h int) {
	t.w, t.h = max(w, 1), max(h, 1)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.w), int32(t.h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *Texture) Size() (int, int) { return t.w, t.h }

// Update uploads img, reallocating the storage when the size changed.
func (t *Texture) Update(img *image.RGBA) error {
	if t.id == 0 {
		return errors.New("glrender: texture disposed")
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return errors.New("glrender: empty image")
	}
	pix := vflip(img)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if w == t.w && h == t.h {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
		t.w, t.h = w, h
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return glError("texture upload")
}

func (t *Texture) Dispose() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// getWrapMode converts a wrap name to the GL constant.
func getWrapMode(wrap string) int32 {
	switch wrap {
	case "repeat":
		return gl.REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

// getFilterMode converts a filter name to GL min/mag filters.
func getFilterMode(filter string) (minFilter, magFilter int32) {
	switch filter {
	case "nearest":
		return gl.NEAREST, gl.NEAREST
	default:
		return gl.LINEAR, gl.LINEAR
	}
}
