// Package page models the elements an effect is attached to: their live layout box,
// their computed style and the content a snapshot can be taken from.
package page

import (
	"image"
	"image/color"
	"strings"
)

// Kind classifies an element by the kind of content it displays.
type Kind int

const (
	KindBlock Kind = iota // generic container, rendered from its text content
	KindImage
	KindVideo
	KindCanvas
	KindSVG
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "img"
	case KindVideo:
		return "video"
	case KindCanvas:
		return "canvas"
	case KindSVG:
		return "svg"
	default:
		return "block"
	}
}

// ParseKind maps a tag-like name to a Kind. Unknown names are blocks.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "img", "image":
		return KindImage
	case "video":
		return KindVideo
	case "canvas":
		return KindCanvas
	case "svg":
		return KindSVG
	default:
		return KindBlock
	}
}

// IsImageLike reports whether the kind carries pixels of its own.
func (k Kind) IsImageLike() bool {
	return k != KindBlock
}

// Rect is a box in viewport (client) coordinates, CSS pixels.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point lies inside the rect, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left() && x <= r.Right() && y >= r.Top() && y <= r.Bottom()
}

// Aspect returns width/height, or 0 for a degenerate rect.
func (r Rect) Aspect() float64 {
	if r.Height <= 0 {
		return 0
	}
	return r.Width / r.Height
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether r overlaps o after growing o by margin on every side.
func (r Rect) Intersects(o Rect, margin float64) bool {
	return r.Left() <= o.Right()+margin && r.Right() >= o.Left()-margin &&
		r.Top() <= o.Bottom()+margin && r.Bottom() >= o.Top()-margin
}

// Style is the subset of computed style the effect runtime reads or mirrors.
// Length-valued fields hold CSS text exactly as computed ("12px", "auto").
type Style struct {
	Position        string
	Top             string
	Left            string
	Right           string
	Bottom          string
	Width           string
	Height          string
	Transform       string
	TransformOrigin string
	ZIndex          string
	BorderRadius    string
	BoxSizing       string
	ObjectFit       string
	ObjectPosition  string
	Display         string
	Opacity         float64
	Visibility      string

	FontFamily string
	FontSize   float64
	FontWeight string
	FontStyle  string
	LineHeight float64
	TextAlign  string
	Color      color.Color
}

// Hidden reports whether the style makes the element invisible.
func (s Style) Hidden() bool {
	return s.Display == "none" || s.Opacity == 0
}

// Element is a live page element. Implementations must return current layout on
// every call; the runtime never caches boxes across ticks.
type Element interface {
	ID() string
	Kind() Kind
	BoundingRect() Rect
	ComputedStyle() Style
	// TextContent returns the element's text, for block elements.
	TextContent() string
	// Image returns the natural-size pixels for image, canvas and svg elements.
	Image() image.Image
	// MediaSource returns the media URL or path of a video element.
	MediaSource() string
	// ModelSource returns a 3D model reference; non-empty switches to model mode.
	ModelSource() string
	// SetVisibility sets the element's own visibility ("hidden" or the saved value).
	SetVisibility(v string)
}

// Viewport describes the window the elements are laid out in.
type Viewport interface {
	Size() (width, height float64)
	RootFontSize() float64
	DevicePixelRatio() float64
}
