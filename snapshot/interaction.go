package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"

	xdraw "golang.org/x/image/draw"
)

const (
	// InteractionTextureSize is the side of custom interaction shape textures.
	InteractionTextureSize = 512
	shapePadding           = 0.7
	fieldBlurPasses        = 3
	fieldBlurRadius        = 8
)

// InteractionShape holds a custom pointer shape mask and its soft distance field.
type InteractionShape struct {
	Mask     *image.RGBA
	Gradient *image.RGBA
}

// LoadInteractionShape decodes a raster image file into an interaction shape.
func LoadInteractionShape(path string) (*InteractionShape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode interaction shape %s: %w", path, err)
	}
	return BuildInteractionShape(img), nil
}

// BuildInteractionShape centres src on a square canvas at 70% of its side, makes
// every pixel with content fully opaque and derives the gradient field.
func BuildInteractionShape(src image.Image) *InteractionShape {
	const size = InteractionTextureSize
	mask := image.NewRGBA(image.Rect(0, 0, size, size))
	sb := src.Bounds()
	if sb.Dx() > 0 && sb.Dy() > 0 {
		scale := min(float64(size)/float64(sb.Dx()), float64(size)/float64(sb.Dy())) * shapePadding
		w, h := float64(sb.Dx())*scale, float64(sb.Dy())*scale
		x, y := (size-w)/2, (size-h)/2
		dr := FRect{x, y, w, h}.image()
		xdraw.CatmullRom.Scale(mask, dr, src, sb, xdraw.Over, nil)
	}
	for i := 0; i < len(mask.Pix); i += 4 {
		p := mask.Pix[i : i+4 : i+4]
		if p[0] > 0 || p[1] > 0 || p[2] > 0 || p[3] > 0 {
			p[3] = 0xff
		}
	}
	return &InteractionShape{Mask: mask, Gradient: DistanceField(mask)}
}

// DistanceField blurs the alpha of mask with separable box blurs into a grey
// gradient whose value falls off smoothly around the shape's edge.
func DistanceField(mask *image.RGBA) *image.RGBA {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	cur := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cur[y*w+x] = float64(mask.RGBAAt(b.Min.X+x, b.Min.Y+y).A)
		}
	}
	tmp := make([]float64, w*h)
	for range fieldBlurPasses {
		boxBlur(cur, tmp, w, h, 1, 0)
		boxBlur(tmp, cur, w, h, 0, 1)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(min(255, max(0, cur[y*w+x]+0.5)))
			out.SetRGBA(x, y, color.RGBA{v, v, v, 0xff})
		}
	}
	return out
}

// boxBlur averages each sample with its neighbours within fieldBlurRadius along
// (dx, dy), counting only in-bounds samples.
func boxBlur(src, dst []float64, w, h, dx, dy int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			n := 0
			for k := -fieldBlurRadius; k <= fieldBlurRadius; k++ {
				nx, ny := x+k*dx, y+k*dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				sum += src[ny*w+nx]
				n++
			}
			dst[y*w+x] = sum / float64(n)
		}
	}
}
