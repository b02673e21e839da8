package options

import "fmt"

// EffectKind identifies one stage of the combined effect.
type EffectKind int

const (
	EffectPixelation EffectKind = iota
	EffectCRT
	EffectGlitch
)

var EffectKinds = []EffectKind{EffectPixelation, EffectCRT, EffectGlitch}

func (k EffectKind) String() string {
	switch k {
	case EffectPixelation:
		return "pixelation"
	case EffectCRT:
		return "crt"
	case EffectGlitch:
		return "glitch"
	}
	return fmt.Sprintf("EffectKind(%d)", int(k))
}

// Param describes one parameter of an effect kind.
type Param struct {
	Name string
	// Interactive parameters may be listed in InteractionConfig.Effects; the shader
	// receives a bool uniform named Uniform.
	Interactive bool
	Uniform     string
	// TimeDriven parameters animate on their own whenever Amount is positive.
	TimeDriven bool
	Amount     func(*Config) float64
}

func boolAmount(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// EffectParams is the fixed parameter table of every effect kind.
var EffectParams = map[EffectKind][]Param{
	EffectPixelation: {
		{Name: "pixelSize", Interactive: true, Uniform: "pixelSizeInteractive"},
	},
	EffectCRT: {
		{Name: "scanlines", Interactive: true, Uniform: "scanlinesInteractive"},
		{Name: "chromaticAberration", Interactive: true, Uniform: "chromaticAberrationInteractive"},
		{Name: "phosphorGlow", Interactive: true, Uniform: "phosphorGlowInteractive"},
		{Name: "curvature", Interactive: true, Uniform: "curvatureInteractive"},
		{Name: "flicker", TimeDriven: true, Amount: func(c *Config) float64 { return boolAmount(c.Effects.CRT.Flicker) }},
		{Name: "lineMovement", TimeDriven: true, Amount: func(c *Config) float64 { return boolAmount(c.Effects.CRT.LineMovement) }},
	},
	EffectGlitch: {
		{Name: "rgbShift", Interactive: true, Uniform: "rgbShiftInteractive", TimeDriven: true,
			Amount: func(c *Config) float64 { return c.Effects.Glitch.RGBShift }},
		{Name: "digitalNoise", Interactive: true, Uniform: "digitalNoiseInteractive", TimeDriven: true,
			Amount: func(c *Config) float64 { return c.Effects.Glitch.DigitalNoise }},
		{Name: "lineDisplacement", Interactive: true, Uniform: "lineDisplacementInteractive"},
		{Name: "bitCrushing", Interactive: true, Uniform: "bitCrushInteractive"},
		{Name: "signalDropout", Interactive: true, Uniform: "signalDropoutInteractive", TimeDriven: true,
			Amount: func(c *Config) float64 { return c.Effects.Glitch.SignalDropoutFreq }},
		{Name: "syncErrors", Interactive: true, Uniform: "syncErrorsInteractive", TimeDriven: true,
			Amount: func(c *Config) float64 { return c.Effects.Glitch.SyncErrorFreq }},
		{Name: "interferenceLines", Interactive: true, Uniform: "interferenceLinesInteractive", TimeDriven: true,
			Amount: func(c *Config) float64 { return c.Effects.Glitch.InterferenceIntensity }},
		{Name: "frameGhosting", Interactive: true, Uniform: "frameGhostingInteractive", TimeDriven: true,
			Amount: func(c *Config) float64 { return c.Effects.Glitch.FrameGhostAmount }},
		{Name: "stutterFreeze", Interactive: true, Uniform: "stutterFreezeInteractive", TimeDriven: true,
			Amount: func(c *Config) float64 { return c.Effects.Glitch.StutterFreq }},
		{Name: "datamoshing", Interactive: true, Uniform: "datamoshingInteractive", TimeDriven: true,
			Amount: func(c *Config) float64 { return c.Effects.Glitch.DatamoshStrength }},
	},
}

// Enabled reports whether the given effect kind is switched on.
func (c *Config) Enabled(kind EffectKind) bool {
	switch kind {
	case EffectPixelation:
		return c.Effects.Pixelation.Enabled
	case EffectCRT:
		return c.Effects.CRT.Enabled
	case EffectGlitch:
		return c.Effects.Glitch.Enabled
	}
	return false
}

// HasTimeDrivenEffect reports whether any enabled effect animates with time alone.
func (c *Config) HasTimeDrivenEffect() bool {
	for _, kind := range EffectKinds {
		if !c.Enabled(kind) {
			continue
		}
		for _, p := range EffectParams[kind] {
			if p.TimeDriven && p.Amount(c) > 0 {
				return true
			}
		}
	}
	return false
}

// IsInteractive reports whether the pointer modulates the named parameter.
func (c *Config) IsInteractive(kind EffectKind, name string) bool {
	if !c.Interaction.Enabled {
		return false
	}
	for _, n := range c.Interaction.Effects.names(kind) {
		if n == name {
			return true
		}
	}
	return false
}

func lookupParam(kind EffectKind, name string) (Param, bool) {
	for _, p := range EffectParams[kind] {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// validateInteractive drops names that are not interactive parameters of kind.
func validateInteractive(kind EffectKind, names []string) ([]string, []error) {
	var errs []error
	out := make([]string, 0, len(names))
	for _, n := range names {
		p, ok := lookupParam(kind, n)
		if !ok || !p.Interactive {
			errs = append(errs, fmt.Errorf("%s has no interactive parameter %q", kind, n))
			continue
		}
		out = append(out, n)
	}
	return out, errs
}
