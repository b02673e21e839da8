package engine

import (
	"math"
	"sync"
	"time"
)

const (
	ResizeDebounce    = 250 * time.Millisecond
	OrientationDelay  = 500 * time.Millisecond
	resizeWidthSlack  = 10.0
	resizeHeightSlack = 100.0
)

// resizeWatcher debounces viewport changes and calls fire when the change is
// large enough to matter: width by more than 10px, height by more than 100px
// (ignored on touch devices, where toolbars resize the viewport constantly) or a
// different pixel ratio.
type resizeWatcher struct {
	mu     sync.Mutex
	mobile bool
	fire   func()
	timer  *time.Timer

	width, height, ratio          float64
	curWidth, curHeight, curRatio float64
	stopped                       bool
}

func newResizeWatcher(width, height, ratio float64, mobile bool, fire func()) *resizeWatcher {
	return &resizeWatcher{
		mobile: mobile,
		fire:   fire,
		width:  width, height: height, ratio: ratio,
		curWidth: width, curHeight: height, curRatio: ratio,
	}
}

// Resized records the new viewport and restarts the debounce timer.
func (w *resizeWatcher) Resized(width, height, ratio float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.curWidth, w.curHeight, w.curRatio = width, height, ratio
	w.schedule(ResizeDebounce)
}

// OrientationChanged re-checks the viewport after the rotation settles. Only touch
// devices report orientation changes.
func (w *resizeWatcher) OrientationChanged() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.mobile {
		return
	}
	w.schedule(OrientationDelay + ResizeDebounce)
}

func (w *resizeWatcher) schedule(d time.Duration) {
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(d, w.check)
}

func (w *resizeWatcher) check() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	changed := w.significant()
	if changed {
		w.width, w.height, w.ratio = w.curWidth, w.curHeight, w.curRatio
	}
	w.mu.Unlock()
	if changed {
		w.fire()
	}
}

func (w *resizeWatcher) significant() bool {
	if math.Abs(w.curWidth-w.width) > resizeWidthSlack {
		return true
	}
	if !w.mobile && math.Abs(w.curHeight-w.height) > resizeHeightSlack {
		return true
	}
	return w.curRatio != w.ratio
}

func (w *resizeWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
