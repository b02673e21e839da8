// Package visibility tracks whether elements are in or near the viewport so that
// off-screen effects cost nothing.
package visibility

import (
	"sync"

	"github.com/richinsley/goglitch/page"
)

// PreRollMargin grows the viewport so elements just outside it warm up early.
const PreRollMargin = 500.0

// Observer is the intersection capability. Observe calls fn whenever the element
// starts or stops intersecting the viewport grown by margin, and returns a function
// that stops the observation.
type Observer interface {
	Observe(el page.Element, margin float64, fn func(intersecting bool)) (stop func())
}

// Gate holds the visibility record of one effect system.
type Gate struct {
	mu     sync.Mutex
	inView bool
	stop   func()
}

// NewGate starts observing el. With no observer the gate is permanently open.
// onChange runs on every transition reported by the observer.
func NewGate(obs Observer, el page.Element, onChange func(inView bool)) *Gate {
	g := &Gate{}
	if obs == nil {
		g.inView = true
		return g
	}
	g.stop = obs.Observe(el, PreRollMargin, func(in bool) {
		g.mu.Lock()
		changed := g.inView != in
		g.inView = in
		g.mu.Unlock()
		if changed && onChange != nil {
			onChange(in)
		}
	})
	return g
}

func (g *Gate) InView() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inView
}

// Close stops the observation; the gate keeps its last state.
func (g *Gate) Close() {
	g.mu.Lock()
	stop := g.stop
	g.stop = nil
	g.mu.Unlock()
	if stop != nil {
		stop()
	}
}
