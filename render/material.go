package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/options"
)

// Material is the uniform set of one effect system.
type Material struct {
	u *graphics.UniformSet
}

func NewMaterial() *Material {
	m := &Material{u: graphics.NewUniformSet()}
	m.u.SetFloat("textureAspect", 1)
	m.u.SetFloat("interactionTextureAspect", 1)
	m.u.SetFloat("effectScale", 1)
	m.u.SetFloat("pixelRatio", 1)
	return m
}

func (m *Material) Uniforms() *graphics.UniformSet { return m.u }

// ApplyConfig writes every configuration-derived uniform. radius is the resolved
// interaction radius in CSS pixels.
func (m *Material) ApplyConfig(cfg *options.Config, radius float64) {
	u := m.u
	u.SetFloat("intensity", cfg.Intensity)
	u.SetBool("interactionEnabled", cfg.Interaction.Enabled)
	u.SetInt("interactionShape", int(cfg.Interaction.Shape))
	u.SetFloat("radiusPx", radius)

	px := cfg.Effects.Pixelation
	u.SetBool("pixelationEnabled", px.Enabled)
	u.SetFloat("pixelSize", px.PixelSize)
	u.SetInt("pixelShape", int(px.PixelShape))
	u.SetInt("bitDepth", int(px.BitDepth))
	u.SetInt("dithering", int(px.Dithering))
	u.SetInt("pixelDirection", int(px.PixelDirection))

	crt := cfg.Effects.CRT
	u.SetBool("crtEnabled", crt.Enabled)
	u.SetFloat("scanlineIntensity", crt.ScanlineIntensity)
	u.SetFloat("scanlineThickness", crt.ScanlineThickness)
	u.SetFloat("scanlineCount", crt.ScanlineCount)
	u.SetFloat("brightness", crt.Brightness)
	u.SetFloat("phosphorGlow", crt.PhosphorGlow)
	u.SetFloat("curvature", crt.Curvature)
	u.SetFloat("chromaticAberration", crt.ChromaticAberration)
	u.SetBool("flicker", crt.Flicker)
	u.SetFloat("flickerIntensity", crt.FlickerIntensity)
	u.SetBool("lineMovement", crt.LineMovement)
	u.SetFloat("lineSpeed", crt.LineSpeed)
	u.SetInt("lineDirection", int(crt.LineDirection))

	g := cfg.Effects.Glitch
	u.SetBool("glitchEnabled", g.Enabled)
	u.SetFloat("rgbShift", g.RGBShift)
	u.SetFloat("digitalNoise", g.DigitalNoise)
	u.SetFloat("lineDisplacement", g.LineDisplacement)
	u.SetFloat("bitCrushDepth", g.BitCrushDepth)
	u.SetFloat("signalDropoutFreq", g.SignalDropoutFreq)
	u.SetFloat("signalDropoutSize", g.SignalDropoutSize)
	u.SetFloat("syncErrorFreq", g.SyncErrorFreq)
	u.SetFloat("syncErrorAmount", g.SyncErrorAmount)
	u.SetFloat("interferenceSpeed", g.InterferenceSpeed)
	u.SetFloat("interferenceIntensity", g.InterferenceIntensity)
	u.SetFloat("frameGhostAmount", g.FrameGhostAmount)
	u.SetFloat("stutterFreq", g.StutterFreq)
	u.SetFloat("datamoshStrength", g.DatamoshStrength)

	for _, kind := range options.EffectKinds {
		for _, p := range options.EffectParams[kind] {
			if p.Interactive {
				u.SetBool(p.Uniform, cfg.IsInteractive(kind, p.Name))
			}
		}
	}
}

// SetSource describes the source pixels. Text sources are drawn without the
// image-only pixelation tweaks.
func (m *Material) SetSource(textureAspect float64, aspectCorrection, text bool) {
	if textureAspect <= 0 {
		textureAspect = 1
	}
	m.u.SetFloat("textureAspect", textureAspect)
	m.u.SetBool("aspectCorrectionEnabled", aspectCorrection)
	if text {
		m.u.SetInt("isText", 1)
	} else {
		m.u.SetInt("isText", 0)
	}
}

// SetInteractionShape binds a custom shape mask and its gradient; nil clears them.
func (m *Material) SetInteractionShape(mask, gradient graphics.Texture) {
	m.u.SetTexture("interactionTexture", mask)
	m.u.SetTexture("interactionGradientTexture", gradient)
	m.u.SetBool("hasCustomInteractionTexture", mask != nil)
	aspect := 1.0
	if mask != nil {
		if w, h := mask.Size(); w > 0 && h > 0 {
			aspect = float64(w) / float64(h)
		}
	}
	m.u.SetFloat("interactionTextureAspect", aspect)
}

// Frame is the per-draw state pushed before every draw.
type Frame struct {
	Time        float64
	Pointer     mgl32.Vec2
	Width       float64
	Height      float64
	EffectScale float64
	PixelRatio  float64
}

func (m *Material) SetFrame(f Frame) {
	m.u.SetFloat("time", f.Time)
	m.u.SetVec2("mousePx", f.Pointer)
	m.u.SetVec2("resolution", mgl32.Vec2{float32(f.Width), float32(f.Height)})
	if f.Height > 0 {
		m.u.SetFloat("aspect", f.Width/f.Height)
	}
	m.u.SetFloat("effectScale", f.EffectScale)
	m.u.SetFloat("pixelRatio", f.PixelRatio)
}
