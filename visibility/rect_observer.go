package visibility

import (
	"sync"

	"github.com/richinsley/goglitch/page"
)

// RectObserver implements Observer by testing element boxes against the viewport.
// The host calls Check after anything that can move elements (scroll, resize).
type RectObserver struct {
	mu       sync.Mutex
	viewport page.Viewport
	watches  map[int]*watch
	nextID   int
}

type watch struct {
	el     page.Element
	margin float64
	fn     func(bool)
	state  int // -1 unknown, 0 out, 1 in
}

func NewRectObserver(vp page.Viewport) *RectObserver {
	return &RectObserver{viewport: vp, watches: make(map[int]*watch)}
}

// Observe registers el and reports its initial state immediately.
func (o *RectObserver) Observe(el page.Element, margin float64, fn func(bool)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	w := &watch{el: el, margin: margin, fn: fn, state: -1}
	o.watches[id] = w
	o.mu.Unlock()

	o.evaluate(w)
	return func() {
		o.mu.Lock()
		delete(o.watches, id)
		o.mu.Unlock()
	}
}

// Check re-evaluates every watched element and fires callbacks for transitions.
func (o *RectObserver) Check() {
	o.mu.Lock()
	ws := make([]*watch, 0, len(o.watches))
	for _, w := range o.watches {
		ws = append(ws, w)
	}
	o.mu.Unlock()
	for _, w := range ws {
		o.evaluate(w)
	}
}

func (o *RectObserver) evaluate(w *watch) {
	vw, vh := o.viewport.Size()
	view := page.Rect{Width: vw, Height: vh}
	in := 0
	if w.el.BoundingRect().Intersects(view, w.margin) {
		in = 1
	}
	if in == w.state {
		return
	}
	w.state = in
	w.fn(in == 1)
}
