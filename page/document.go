package page

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Document is a scrollable set of boxes loaded from a JSON layout file.
type Document struct {
	mu      sync.RWMutex
	Title   string
	Boxes   []*Box
	scrollY float64
	height  float64
}

type boxJSON struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Src    string    `json:"src"`
	Text   string    `json:"text"`
	Model  string    `json:"model"`
	Style  styleJSON `json:"style"`
}

type styleJSON struct {
	Position       string   `json:"position"`
	ZIndex         string   `json:"zIndex"`
	BorderRadius   string   `json:"borderRadius"`
	Transform      string   `json:"transform"`
	ObjectFit      string   `json:"objectFit"`
	ObjectPosition string   `json:"objectPosition"`
	Opacity        *float64 `json:"opacity"`
	Display        string   `json:"display"`
	FontFamily     string   `json:"fontFamily"`
	FontSize       float64  `json:"fontSize"`
	FontWeight     string   `json:"fontWeight"`
	LineHeight     float64  `json:"lineHeight"`
	TextAlign      string   `json:"textAlign"`
	Color          string   `json:"color"`
}

type documentJSON struct {
	Title string    `json:"title"`
	Boxes []boxJSON `json:"boxes"`
}

// LoadDocument reads a layout file. Relative image paths resolve against the file's
// directory; video paths are passed through untouched.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page document: %w", err)
	}
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse page document: %w", err)
	}

	doc := &Document{Title: raw.Title}
	base := filepath.Dir(path)
	for i, bj := range raw.Boxes {
		id := bj.ID
		if id == "" {
			id = fmt.Sprintf("element-%d", i)
		}
		b := NewBox(id, ParseKind(bj.Kind), Rect{X: bj.X, Y: bj.Y, Width: bj.Width, Height: bj.Height})
		b.text = bj.Text
		b.model = bj.Model
		applyStyleJSON(&b.style, bj.Style)

		switch b.kind {
		case KindImage, KindCanvas, KindSVG:
			if bj.Src != "" {
				img, err := loadImage(resolvePath(base, bj.Src))
				if err != nil {
					return nil, fmt.Errorf("box %s: %w", id, err)
				}
				b.img = img
			}
		case KindVideo:
			b.media = resolvePath(base, bj.Src)
		}
		doc.Add(b)
	}
	return doc, nil
}

// Add attaches a box to the document so it follows the scroll offset.
func (d *Document) Add(b *Box) {
	b.mu.Lock()
	b.doc = d
	bottom := b.rect.Bottom()
	b.mu.Unlock()

	d.mu.Lock()
	d.Boxes = append(d.Boxes, b)
	if bottom > d.height {
		d.height = bottom
	}
	d.mu.Unlock()
}

// Elements returns the boxes as Elements.
func (d *Document) Elements() []Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Element, len(d.Boxes))
	for i, b := range d.Boxes {
		out[i] = b
	}
	return out
}

func (d *Document) ScrollY() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scrollY
}

// ScrollBy moves the scroll offset, clamped to [0, contentHeight-viewportHeight].
// It returns true when the offset changed.
func (d *Document) ScrollBy(dy, viewportHeight float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	next := d.scrollY + dy
	maxScroll := d.height - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if next > maxScroll {
		next = maxScroll
	}
	if next < 0 {
		next = 0
	}
	if next == d.scrollY {
		return false
	}
	d.scrollY = next
	return true
}

func applyStyleJSON(s *Style, sj styleJSON) {
	if sj.Position != "" {
		s.Position = sj.Position
	}
	s.ZIndex = sj.ZIndex
	if s.ZIndex == "" {
		s.ZIndex = "auto"
	}
	s.BorderRadius = sj.BorderRadius
	s.Transform = sj.Transform
	if s.Transform == "" {
		s.Transform = "none"
	}
	if sj.ObjectFit != "" {
		s.ObjectFit = sj.ObjectFit
	}
	s.ObjectPosition = sj.ObjectPosition
	if s.ObjectPosition == "" {
		s.ObjectPosition = "50% 50%"
	}
	if sj.Opacity != nil {
		s.Opacity = *sj.Opacity
	}
	if sj.Display != "" {
		s.Display = sj.Display
	}
	s.FontFamily = sj.FontFamily
	if sj.FontSize > 0 {
		s.FontSize = sj.FontSize
	}
	s.FontWeight = sj.FontWeight
	s.LineHeight = sj.LineHeight
	s.TextAlign = sj.TextAlign
	s.Color = parseHexColor(sj.Color)
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
		return p
	}
	return filepath.Join(base, p)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// parseHexColor accepts #rgb and #rrggbb; anything else yields nil.
func parseHexColor(s string) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
