package options

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultCRTPreset seeds the CRT defaults.
const DefaultCRTPreset = "consumer-tv"

var ErrUnknownPreset = errors.New("unknown CRT preset")

type crtPreset struct {
	ScanlineIntensity   float64
	ScanlineThickness   float64
	ScanlineCount       float64
	Brightness          float64
	PhosphorGlow        float64
	Curvature           float64
	ChromaticAberration float64
	Flicker             bool
	FlickerIntensity    float64
	LineMovement        bool
	LineSpeed           float64
	LineDirection       LineDirection
}

var crtPresets = map[string]crtPreset{
	"consumer-tv": {
		ScanlineIntensity: 0.7, ScanlineThickness: 0.8, ScanlineCount: 240,
		Brightness: 1.2, PhosphorGlow: 0.4, Curvature: 8.0, ChromaticAberration: 0.004,
		FlickerIntensity: 0.5, LineSpeed: 1.0,
	},
	"arcade-monitor": {
		ScanlineIntensity: 0.5, ScanlineThickness: 0.6, ScanlineCount: 240,
		Brightness: 1.4, PhosphorGlow: 0.6, Curvature: 4.0, ChromaticAberration: 0.002,
		Flicker: true, FlickerIntensity: 0.5, LineSpeed: 1.0,
	},
	"computer-monitor": {
		ScanlineIntensity: 0.3, ScanlineThickness: 0.4, ScanlineCount: 480,
		Brightness: 1.1, PhosphorGlow: 0.2, Curvature: 2.0, ChromaticAberration: 0.001,
		FlickerIntensity: 0.5, LineSpeed: 1.0,
	},
	"broadcast-monitor": {
		ScanlineIntensity: 0.2, ScanlineThickness: 0.3, ScanlineCount: 720,
		Brightness: 4.0, PhosphorGlow: 0.1, Curvature: 11.6, ChromaticAberration: 0.0045,
		Flicker: true, FlickerIntensity: 0.5, LineSpeed: 1.0,
	},
}

func (p crtPreset) apply(c CRTConfig) CRTConfig {
	c.ScanlineIntensity = p.ScanlineIntensity
	c.ScanlineThickness = p.ScanlineThickness
	c.ScanlineCount = p.ScanlineCount
	c.Brightness = p.Brightness
	c.PhosphorGlow = p.PhosphorGlow
	c.Curvature = p.Curvature
	c.ChromaticAberration = p.ChromaticAberration
	c.Flicker = p.Flicker
	c.FlickerIntensity = p.FlickerIntensity
	c.LineMovement = p.LineMovement
	c.LineSpeed = p.LineSpeed
	c.LineDirection = p.LineDirection
	return c
}

// ApplyCRTPreset overwrites the tunable CRT fields with the named preset. The
// enabled flag is left alone.
func ApplyCRTPreset(c CRTConfig, name string) (CRTConfig, error) {
	p, ok := crtPresets[name]
	if !ok {
		return c, fmt.Errorf("%w %q (available: %v)", ErrUnknownPreset, name, CRTPresetNames())
	}
	c = p.apply(c)
	c.Preset = name
	return c, nil
}

// CRTPresetNames lists the preset names in sorted order.
func CRTPresetNames() []string {
	names := make([]string, 0, len(crtPresets))
	for n := range crtPresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
