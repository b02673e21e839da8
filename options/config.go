// Package options defines the typed effect configuration, its defaults, CRT presets,
// the effect parameter table and the pure merge of partial updates.
package options

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Config is a fully resolved effect configuration for one instance.
type Config struct {
	Intensity        float64
	AspectCorrection bool
	ModelScale       float64
	TiltFactor       float64
	TiltSpeed        float64
	Interaction      InteractionConfig
	Effects          EffectsConfig
}

// InteractionConfig controls pointer proximity effects.
type InteractionConfig struct {
	Enabled    bool
	Shape      InteractionShape
	CustomSize InteractionSize
	CustomURL  string
	Velocity   bool
	// Effects lists, per effect kind, the parameter names the pointer modulates.
	Effects InteractiveSet
}

// InteractiveSet names interactive parameters per effect kind.
type InteractiveSet struct {
	Pixelation []string
	CRT        []string
	Glitch     []string
}

func (s InteractiveSet) names(kind EffectKind) []string {
	switch kind {
	case EffectPixelation:
		return s.Pixelation
	case EffectCRT:
		return s.CRT
	case EffectGlitch:
		return s.Glitch
	}
	return nil
}

func (s InteractiveSet) clone() InteractiveSet {
	return InteractiveSet{
		Pixelation: append([]string(nil), s.Pixelation...),
		CRT:        append([]string(nil), s.CRT...),
		Glitch:     append([]string(nil), s.Glitch...),
	}
}

type EffectsConfig struct {
	Pixelation PixelationConfig
	CRT        CRTConfig
	Glitch     GlitchConfig
}

type PixelationConfig struct {
	Enabled        bool
	PixelSize      float64
	PixelShape     PixelShape
	BitDepth       BitDepth
	Dithering      Dithering
	PixelDirection PixelDirection
}

type CRTConfig struct {
	Enabled             bool
	Preset              string
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

type GlitchConfig struct {
	Enabled               bool
	RGBShift              float64
	DigitalNoise          float64
	LineDisplacement      float64
	BitCrushDepth         float64
	SignalDropoutFreq     float64
	SignalDropoutSize     float64
	SyncErrorFreq         float64
	SyncErrorAmount       float64
	InterferenceSpeed     float64
	InterferenceIntensity float64
	FrameGhostAmount      float64
	StutterFreq           float64
	DatamoshStrength      float64
}

// Length is a CSS-like length ("10vw", "120px", "2rem").
type Length string

// InteractionSize is either a CSS length, whose half is the interaction radius,
// or a plain number, which is the radius itself in pixels. A zero Radius means
// the length applies.
type InteractionSize struct {
	Length Length
	Radius float64
}

func SizeLength(l Length) InteractionSize { return InteractionSize{Length: l} }

func SizeRadius(px float64) InteractionSize { return InteractionSize{Radius: px} }

// UnmarshalJSON accepts a JSON string as a length and a JSON number as a radius.
func (s *InteractionSize) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = SizeLength(Length(str))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("interaction size must be a string or number: %w", err)
	}
	*s = SizeRadius(f)
	return nil
}

func (s InteractionSize) String() string {
	if s.Radius != 0 {
		return strconv.FormatFloat(s.Radius, 'f', -1, 64)
	}
	return string(s.Length)
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	cfg := Config{
		Intensity:        1.0,
		AspectCorrection: true,
		ModelScale:       1,
		TiltFactor:       0.2,
		TiltSpeed:        0.05,
		Interaction: InteractionConfig{
			Enabled:    true,
			Shape:      ShapeCircle,
			CustomSize: SizeLength("10vw"),
			Velocity:   false,
		},
		Effects: EffectsConfig{
			Pixelation: PixelationConfig{
				Enabled:   true,
				PixelSize: 8,
			},
			Glitch: GlitchConfig{
				Enabled:               false,
				RGBShift:              0,
				DigitalNoise:          0.1,
				LineDisplacement:      0.01,
				BitCrushDepth:         4.0,
				SignalDropoutFreq:     0.05,
				SignalDropoutSize:     0.1,
				SyncErrorFreq:         0.02,
				SyncErrorAmount:       0.05,
				InterferenceSpeed:     1.0,
				InterferenceIntensity: 0.2,
				FrameGhostAmount:      0.3,
				StutterFreq:           0.1,
				DatamoshStrength:      0.5,
			},
		},
	}
	cfg.Effects.CRT = crtPresets[DefaultCRTPreset].apply(CRTConfig{})
	cfg.Effects.CRT.Preset = DefaultCRTPreset
	return cfg
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	c.Interaction.Effects = c.Interaction.Effects.clone()
	return c
}
