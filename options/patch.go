package options

import (
	"encoding/json"
	"fmt"
	"os"
)

// Patch is a partial configuration. Nil fields leave the base value untouched.
type Patch struct {
	Intensity        *float64          `json:"intensity,omitempty"`
	AspectCorrection *bool             `json:"aspectCorrection,omitempty"`
	ModelScale       *float64          `json:"modelScale,omitempty"`
	TiltFactor       *float64          `json:"tiltFactor,omitempty"`
	TiltSpeed        *float64          `json:"tiltSpeed,omitempty"`
	Interaction      *InteractionPatch `json:"interaction,omitempty"`
	Effects          *EffectsPatch     `json:"effects,omitempty"`
}

type InteractionPatch struct {
	Enabled    *bool                `json:"enabled,omitempty"`
	Shape      *string              `json:"shape,omitempty"`
	CustomSize *InteractionSize     `json:"customSize,omitempty"`
	CustomURL  *string              `json:"customUrl,omitempty"`
	Velocity   *bool                `json:"velocity,omitempty"`
	Effects    *InteractiveSetPatch `json:"effects,omitempty"`
}

type InteractiveSetPatch struct {
	Pixelation *[]string `json:"pixelation,omitempty"`
	CRT        *[]string `json:"crt,omitempty"`
	Glitch     *[]string `json:"glitch,omitempty"`
}

type EffectsPatch struct {
	Pixelation *PixelationPatch `json:"pixelation,omitempty"`
	CRT        *CRTPatch        `json:"crt,omitempty"`
	Glitch     *GlitchPatch     `json:"glitch,omitempty"`
}

type PixelationPatch struct {
	Enabled        *bool    `json:"enabled,omitempty"`
	PixelSize      *float64 `json:"pixelSize,omitempty"`
	PixelShape     *string  `json:"pixelShape,omitempty"`
	BitDepth       *string  `json:"bitDepth,omitempty"`
	Dithering      *string  `json:"dithering,omitempty"`
	PixelDirection *string  `json:"pixelDirection,omitempty"`
}

type CRTPatch struct {
	Enabled             *bool    `json:"enabled,omitempty"`
	Preset              *string  `json:"preset,omitempty"`
	ScanlineIntensity   *float64 `json:"scanlineIntensity,omitempty"`
	ScanlineThickness   *float64 `json:"scanlineThickness,omitempty"`
	ScanlineCount       *float64 `json:"scanlineCount,omitempty"`
	Brightness          *float64 `json:"brightness,omitempty"`
	PhosphorGlow        *float64 `json:"phosphorGlow,omitempty"`
	Curvature           *float64 `json:"curvature,omitempty"`
	ChromaticAberration *float64 `json:"chromaticAberration,omitempty"`
	Flicker             *bool    `json:"flicker,omitempty"`
	FlickerIntensity    *float64 `json:"flickerIntensity,omitempty"`
	LineMovement        *bool    `json:"lineMovement,omitempty"`
	LineSpeed           *float64 `json:"lineSpeed,omitempty"`
	LineDirection       *string  `json:"lineDirection,omitempty"`
}

type GlitchPatch struct {
	Enabled               *bool    `json:"enabled,omitempty"`
	RGBShift              *float64 `json:"rgbShift,omitempty"`
	DigitalNoise          *float64 `json:"digitalNoise,omitempty"`
	LineDisplacement      *float64 `json:"lineDisplacement,omitempty"`
	BitCrushDepth         *float64 `json:"bitCrushDepth,omitempty"`
	SignalDropoutFreq     *float64 `json:"signalDropoutFreq,omitempty"`
	SignalDropoutSize     *float64 `json:"signalDropoutSize,omitempty"`
	SyncErrorFreq         *float64 `json:"syncErrorFreq,omitempty"`
	SyncErrorAmount       *float64 `json:"syncErrorAmount,omitempty"`
	InterferenceSpeed     *float64 `json:"interferenceSpeed,omitempty"`
	InterferenceIntensity *float64 `json:"interferenceIntensity,omitempty"`
	FrameGhostAmount      *float64 `json:"frameGhostAmount,omitempty"`
	StutterFreq           *float64 `json:"stutterFreq,omitempty"`
	DatamoshStrength      *float64 `json:"datamoshStrength,omitempty"`
}

// LoadPatch reads a JSON patch file.
func LoadPatch(path string) (Patch, error) {
	var p Patch
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse config: %w", err)
	}
	return p, nil
}

func setF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setB(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setEnum[T ~int](dst *T, src *string, parse func(string) (T, error), errs *[]error) {
	if src == nil {
		return
	}
	v, err := parse(*src)
	if err != nil {
		*errs = append(*errs, err)
	}
	*dst = v
}

// Merge applies p on top of base and returns the result. Base is not modified.
// Problems in p (unknown enum names, presets or interactive parameters) are reported
// as errors; the offending field falls back to its documented default and the merge
// still completes.
func Merge(base Config, p Patch) (Config, []error) {
	out := base.Clone()
	var errs []error

	setF(&out.Intensity, p.Intensity)
	setB(&out.AspectCorrection, p.AspectCorrection)
	setF(&out.ModelScale, p.ModelScale)
	setF(&out.TiltFactor, p.TiltFactor)
	setF(&out.TiltSpeed, p.TiltSpeed)

	if ip := p.Interaction; ip != nil {
		in := &out.Interaction
		setB(&in.Enabled, ip.Enabled)
		setEnum(&in.Shape, ip.Shape, ParseInteractionShape, &errs)
		if ip.CustomSize != nil {
			in.CustomSize = *ip.CustomSize
		}
		if ip.CustomURL != nil {
			in.CustomURL = *ip.CustomURL
		}
		setB(&in.Velocity, ip.Velocity)
		if ep := ip.Effects; ep != nil {
			mergeInteractive(&in.Effects.Pixelation, EffectPixelation, ep.Pixelation, &errs)
			mergeInteractive(&in.Effects.CRT, EffectCRT, ep.CRT, &errs)
			mergeInteractive(&in.Effects.Glitch, EffectGlitch, ep.Glitch, &errs)
		}
	}

	if ep := p.Effects; ep != nil {
		if px := ep.Pixelation; px != nil {
			c := &out.Effects.Pixelation
			setB(&c.Enabled, px.Enabled)
			setF(&c.PixelSize, px.PixelSize)
			setEnum(&c.PixelShape, px.PixelShape, ParsePixelShape, &errs)
			setEnum(&c.BitDepth, px.BitDepth, ParseBitDepth, &errs)
			setEnum(&c.Dithering, px.Dithering, ParseDithering, &errs)
			setEnum(&c.PixelDirection, px.PixelDirection, ParsePixelDirection, &errs)
		}
		if cp := ep.CRT; cp != nil {
			c := &out.Effects.CRT
			// A preset is laid down first so explicit fields in the same patch win.
			if cp.Preset != nil && *cp.Preset != c.Preset {
				applied, err := ApplyCRTPreset(*c, *cp.Preset)
				if err != nil {
					errs = append(errs, err)
				} else {
					*c = applied
				}
			}
			setB(&c.Enabled, cp.Enabled)
			setF(&c.ScanlineIntensity, cp.ScanlineIntensity)
			setF(&c.ScanlineThickness, cp.ScanlineThickness)
			setF(&c.ScanlineCount, cp.ScanlineCount)
			setF(&c.Brightness, cp.Brightness)
			setF(&c.PhosphorGlow, cp.PhosphorGlow)
			setF(&c.Curvature, cp.Curvature)
			setF(&c.ChromaticAberration, cp.ChromaticAberration)
			setB(&c.Flicker, cp.Flicker)
			setF(&c.FlickerIntensity, cp.FlickerIntensity)
			setB(&c.LineMovement, cp.LineMovement)
			setF(&c.LineSpeed, cp.LineSpeed)
			setEnum(&c.LineDirection, cp.LineDirection, ParseLineDirection, &errs)
		}
		if gp := ep.Glitch; gp != nil {
			c := &out.Effects.Glitch
			setB(&c.Enabled, gp.Enabled)
			setF(&c.RGBShift, gp.RGBShift)
			setF(&c.DigitalNoise, gp.DigitalNoise)
			setF(&c.LineDisplacement, gp.LineDisplacement)
			setF(&c.BitCrushDepth, gp.BitCrushDepth)
			setF(&c.SignalDropoutFreq, gp.SignalDropoutFreq)
			setF(&c.SignalDropoutSize, gp.SignalDropoutSize)
			setF(&c.SyncErrorFreq, gp.SyncErrorFreq)
			setF(&c.SyncErrorAmount, gp.SyncErrorAmount)
			setF(&c.InterferenceSpeed, gp.InterferenceSpeed)
			setF(&c.InterferenceIntensity, gp.InterferenceIntensity)
			setF(&c.FrameGhostAmount, gp.FrameGhostAmount)
			setF(&c.StutterFreq, gp.StutterFreq)
			setF(&c.DatamoshStrength, gp.DatamoshStrength)
		}
	}
	return out, errs
}

func mergeInteractive(dst *[]string, kind EffectKind, src *[]string, errs *[]error) {
	if src == nil {
		return
	}
	valid, bad := validateInteractive(kind, *src)
	*errs = append(*errs, bad...)
	*dst = valid
}

// InteractionTextureChanged reports whether the custom interaction shape must be reloaded.
func InteractionTextureChanged(old, cur Config) bool {
	o, n := old.Interaction, cur.Interaction
	if o.CustomURL != n.CustomURL {
		return true
	}
	if o.Enabled != n.Enabled && (o.Shape == ShapeCustom || n.Shape == ShapeCustom) {
		return true
	}
	return (o.Shape == ShapeCustom) != (n.Shape == ShapeCustom)
}

// Ptr returns a pointer to v, for building patches in code.
func Ptr[T any](v T) *T { return &v }
