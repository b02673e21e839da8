package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/richinsley/goglitch/options"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

var easings = map[string]Easing{
	"linear":  func(t float64) float64 { return t },
	"easeIn":  func(t float64) float64 { return t * t },
	"easeOut": func(t float64) float64 { return t * (2 - t) },
	"easeInOut": func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},
}

// animatable maps property names to the patch that sets them.
var animatable = map[string]func(v float64) options.Patch{
	"intensity": func(v float64) options.Patch {
		return options.Patch{Intensity: &v}
	},
	"interactionRadius": func(v float64) options.Patch {
		size := options.SizeRadius(v)
		return options.Patch{Interaction: &options.InteractionPatch{CustomSize: &size}}
	},
	"pixelSize": func(v float64) options.Patch {
		return options.Patch{Effects: &options.EffectsPatch{Pixelation: &options.PixelationPatch{PixelSize: &v}}}
	},
	"scanlineIntensity": func(v float64) options.Patch {
		return options.Patch{Effects: &options.EffectsPatch{CRT: &options.CRTPatch{ScanlineIntensity: &v}}}
	},
	"rgbShift": func(v float64) options.Patch {
		return options.Patch{Effects: &options.EffectsPatch{Glitch: &options.GlitchPatch{RGBShift: &v}}}
	},
	"bitCrushDepth": func(v float64) options.Patch {
		return options.Patch{Effects: &options.EffectsPatch{Glitch: &options.GlitchPatch{BitCrushDepth: &v}}}
	},
	"datamoshStrength": func(v float64) options.Patch {
		return options.Patch{Effects: &options.EffectsPatch{Glitch: &options.GlitchPatch{DatamoshStrength: &v}}}
	},
	"interferenceIntensity": func(v float64) options.Patch {
		return options.Patch{Effects: &options.EffectsPatch{Glitch: &options.GlitchPatch{InterferenceIntensity: &v}}}
	},
}

// AnimatableProperties lists the property names Animate accepts.
func AnimatableProperties() []string {
	names := make([]string, 0, len(animatable))
	for n := range animatable {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type animation struct {
	set      func(float64) options.Patch
	from, to float64
	start    time.Time
	duration time.Duration
	ease     Easing
	done     chan struct{}
	closed   bool
}

func (a *animation) progress(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	return min(float64(now.Sub(a.start))/float64(a.duration), 1)
}

func (a *animation) finish() {
	if !a.closed {
		a.closed = true
		close(a.done)
	}
}

// Animate drives property from one value to another over d, one config update per
// frame. Unknown easings fall back to linear. The returned channel is closed when
// the animation ends or the instance is destroyed.
func (r *Runtime) Animate(id InstanceID, property string, from, to float64, d time.Duration, easing string) (<-chan struct{}, error) {
	inst, ok := r.instances[id]
	if !ok {
		return nil, ErrUnknownInstance
	}
	set, ok := animatable[property]
	if !ok {
		return nil, fmt.Errorf("engine: property %q cannot be animated", property)
	}
	ease, ok := easings[easing]
	if !ok {
		ease = easings["linear"]
	}
	a := &animation{
		set:      set,
		from:     from,
		to:       to,
		start:    r.opts.Now(),
		duration: d,
		ease:     ease,
		done:     make(chan struct{}),
	}
	inst.anims = append(inst.anims, a)
	r.UpdateConfig(id, set(from))
	return a.done, nil
}

// stepAnimations applies the current value of every animation and reports whether
// any is still running.
func (r *Runtime) stepAnimations(now time.Time) bool {
	running := false
	for _, id := range r.order {
		inst := r.instances[id]
		if len(inst.anims) == 0 {
			continue
		}
		kept := inst.anims[:0]
		for _, a := range inst.anims {
			p := a.progress(now)
			r.UpdateConfig(id, a.set(a.from+(a.to-a.from)*a.ease(p)))
			if p >= 1 {
				a.finish()
				continue
			}
			kept = append(kept, a)
		}
		inst.anims = kept
		if len(kept) > 0 {
			running = true
		}
	}
	return running
}
