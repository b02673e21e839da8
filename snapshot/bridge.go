// Package snapshot turns page elements into effect source pixels: fit-aware still
// bitmaps, rendered text, continuously decoded video and interaction shape masks.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/options"
	"github.com/richinsley/goglitch/page"
)

const (
	// MaxSide caps the long edge of a captured bitmap.
	MaxSide = 2048
	// RecaptureThreshold is the aspect drift that invalidates a still capture.
	RecaptureThreshold = 0.01
)

var ErrNoContent = errors.New("snapshot: element has no capturable content")

// Provider rasterizes element content.
type Provider interface {
	CaptureStill(el page.Element, fit Fit) (*image.RGBA, error)
	CaptureText(el page.Element) (*image.RGBA, error)
}

// FrameSource is a continuously updating pixel source.
type FrameSource interface {
	Size() (width, height int)
	// Next returns the newest frame if one arrived since the previous call.
	Next() (*image.RGBA, bool)
	Close() error
}

// VideoOpener starts decoding the media at src.
type VideoOpener func(ctx context.Context, src string) (FrameSource, error)

// Snapshot is the CPU side of a capture. Exactly one of Image and Video is set.
type Snapshot struct {
	Image *image.RGBA
	Video FrameSource
	// Aspect is the element's box aspect when the capture was taken.
	Aspect float64
	// TextureAspect is the aspect of the produced pixels.
	TextureAspect float64
	// Text is set when the pixels were produced from text content.
	Text bool
	// AspectCorrection tells the shader to letterbox the texture into the box.
	AspectCorrection bool
}

// Bridge captures elements through a Provider and a VideoOpener.
type Bridge struct {
	provider  Provider
	openVideo VideoOpener
}

// NewBridge returns a bridge. A nil provider selects Rasterizer; a nil opener makes
// video elements fall back to still captures of their poster image.
func NewBridge(p Provider, open VideoOpener) *Bridge {
	if p == nil {
		p = Rasterizer{}
	}
	return &Bridge{provider: p, openVideo: open}
}

// Capture produces the source pixels for el. It may block on I/O and is meant to
// run off the render loop; upload the result with Upload on the render loop.
func (b *Bridge) Capture(ctx context.Context, el page.Element, cfg options.Config) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	box := el.BoundingRect()
	snap := &Snapshot{Aspect: box.Aspect()}

	switch kind := el.Kind(); {
	case kind == page.KindVideo && b.openVideo != nil && el.MediaSource() != "":
		src, err := b.openVideo(ctx, el.MediaSource())
		if err != nil {
			return nil, fmt.Errorf("open video %q: %w", el.MediaSource(), err)
		}
		snap.Video = src
		w, h := src.Size()
		snap.TextureAspect = aspectOf(w, h)
		snap.AspectCorrection = cfg.AspectCorrection
		return snap, nil
	case kind.IsImageLike():
		img, err := b.provider.CaptureStill(el, FitOf(el.ComputedStyle()))
		if err != nil {
			return nil, fmt.Errorf("capture %s %q: %w", kind, el.ID(), err)
		}
		snap.Image = img
		// Image and video captures follow the box aspect with fit applied.
		snap.AspectCorrection = cfg.AspectCorrection && kind != page.KindImage && kind != page.KindVideo
	case strings.TrimSpace(el.TextContent()) != "":
		img, err := b.provider.CaptureText(el)
		if err != nil {
			return nil, fmt.Errorf("capture text %q: %w", el.ID(), err)
		}
		snap.Image = img
		snap.Text = true
	default:
		w, h := CanvasSize(page.KindBlock, box, 0, 0)
		snap.Image = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	snap.TextureAspect = aspectOf(snap.Image.Bounds().Dx(), snap.Image.Bounds().Dy())
	return snap, nil
}

// ShouldRecapture reports whether el's aspect has drifted from lastAspect enough to
// invalidate a still capture. Degenerate boxes never trigger.
func ShouldRecapture(el page.Element, lastAspect float64) bool {
	cur := el.BoundingRect().Aspect()
	if cur <= 0 || lastAspect <= 0 {
		return false
	}
	return math.Abs(cur-lastAspect) > RecaptureThreshold
}

// Upload creates the texture for a snapshot. Video textures start blank and are fed
// with Refresh.
func Upload(dev graphics.Device, s *Snapshot) (graphics.Texture, error) {
	if s.Video != nil {
		w, h := s.Video.Size()
		tex, err := dev.NewTexture(image.NewRGBA(image.Rect(0, 0, w, h)))
		if err != nil {
			return nil, err
		}
		Refresh(tex, s.Video)
		return tex, nil
	}
	if s.Image == nil {
		return nil, ErrNoContent
	}
	return dev.NewTexture(s.Image)
}

// Refresh uploads the newest video frame, if any, and reports whether it did.
func Refresh(tex graphics.Texture, src FrameSource) bool {
	frame, ok := src.Next()
	if !ok {
		return false
	}
	if err := tex.Update(frame); err != nil {
		return false
	}
	return true
}

func aspectOf(w, h int) float64 {
	if h <= 0 {
		return 1
	}
	return float64(w) / float64(h)
}
