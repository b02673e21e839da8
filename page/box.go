package page

import (
	"image"
	"sync"
)

// Box is an in-memory Element with a settable layout. Its rect is stored in document
// coordinates and shifted by the owning document's scroll offset.
type Box struct {
	mu sync.RWMutex

	id       string
	kind     Kind
	rect     Rect
	style    Style
	text     string
	img      image.Image
	media    string
	model    string
	doc      *Document
	visState string
}

// NewBox creates a free-standing box laid out at rect.
func NewBox(id string, kind Kind, rect Rect) *Box {
	return &Box{
		id:   id,
		kind: kind,
		rect: rect,
		style: Style{
			Position:  "static",
			Display:   "block",
			Opacity:   1,
			ObjectFit: "fill",
			FontSize:  16,
		},
	}
}

func (b *Box) ID() string { return b.id }
func (b *Box) Kind() Kind { return b.kind }

func (b *Box) ModelSource() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

func (b *Box) BoundingRect() Rect {
	b.mu.RLock()
	r := b.rect
	doc := b.doc
	fixed := b.style.Position == "fixed"
	b.mu.RUnlock()
	if doc != nil && !fixed {
		r.Y -= doc.ScrollY()
	}
	return r
}

func (b *Box) ComputedStyle() Style {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.style
}

func (b *Box) TextContent() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

func (b *Box) Image() image.Image {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.img
}

func (b *Box) MediaSource() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.media
}

func (b *Box) SetVisibility(v string) {
	b.mu.Lock()
	b.visState = v
	b.style.Visibility = v
	b.mu.Unlock()
}

// Visibility returns the last value passed to SetVisibility.
func (b *Box) Visibility() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.visState
}

// SetRect moves or resizes the box (document coordinates).
func (b *Box) SetRect(r Rect) {
	b.mu.Lock()
	b.rect = r
	b.mu.Unlock()
}

// SetStyle replaces the computed style.
func (b *Box) SetStyle(s Style) {
	b.mu.Lock()
	b.style = s
	b.mu.Unlock()
}

// UpdateStyle applies fn to the current style.
func (b *Box) UpdateStyle(fn func(*Style)) {
	b.mu.Lock()
	fn(&b.style)
	b.mu.Unlock()
}

func (b *Box) SetText(s string) {
	b.mu.Lock()
	b.text = s
	b.mu.Unlock()
}

func (b *Box) SetImage(img image.Image) {
	b.mu.Lock()
	b.img = img
	b.mu.Unlock()
}

func (b *Box) SetMediaSource(src string) {
	b.mu.Lock()
	b.media = src
	b.mu.Unlock()
}

func (b *Box) SetModelSource(src string) {
	b.mu.Lock()
	b.model = src
	b.mu.Unlock()
}
