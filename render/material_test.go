package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goglitch/options"
)

func TestApplyConfig(t *testing.T) {
	cfg := options.Defaults()
	cfg.Effects.Pixelation.PixelShape = options.PixelShape(2)
	cfg.Effects.Glitch.Enabled = true
	cfg.Interaction.Effects.Glitch = []string{"rgbShift"}
	cfg.Interaction.Effects.Pixelation = []string{"pixelSize"}

	m := NewMaterial()
	m.ApplyConfig(&cfg, 64)
	u := m.Uniforms()

	if !u.Bool("pixelationEnabled") || u.Float("pixelSize") != 8 || u.Int("pixelShape") != 2 {
		t.Errorf("pixelation uniforms wrong: enabled=%v size=%v shape=%v",
			u.Bool("pixelationEnabled"), u.Float("pixelSize"), u.Int("pixelShape"))
	}
	if u.Bool("crtEnabled") {
		t.Error("crt should be disabled by default")
	}
	if u.Float("radiusPx") != 64 {
		t.Errorf("radiusPx = %v", u.Float("radiusPx"))
	}
	if !u.Bool("rgbShiftInteractive") || !u.Bool("pixelSizeInteractive") || u.Bool("digitalNoiseInteractive") {
		t.Error("interactive flags do not follow the interaction lists")
	}

	cfg.Interaction.Enabled = false
	m.ApplyConfig(&cfg, 64)
	if u.Bool("rgbShiftInteractive") {
		t.Error("interactive flags must be off when interaction is disabled")
	}
}

func TestApplyConfigIdempotent(t *testing.T) {
	cfg := options.Defaults()
	m := NewMaterial()
	m.ApplyConfig(&cfg, 100)
	v := m.Uniforms().Version()
	m.ApplyConfig(&cfg, 100)
	if m.Uniforms().Version() != v {
		t.Error("reapplying the same config changed the uniform set")
	}
}

func TestSetFrame(t *testing.T) {
	m := NewMaterial()
	m.SetFrame(Frame{Time: 0.032, Pointer: mgl32.Vec2{3, 4}, Width: 200, Height: 100, EffectScale: 0.5, PixelRatio: 2})
	u := m.Uniforms()
	if u.Float("aspect") != 2 || u.Vec2("resolution") != (mgl32.Vec2{200, 100}) || u.Vec2("mousePx") != (mgl32.Vec2{3, 4}) {
		t.Errorf("frame uniforms: aspect=%v res=%v mouse=%v", u.Float("aspect"), u.Vec2("resolution"), u.Vec2("mousePx"))
	}
	if u.Float("effectScale") != 0.5 || u.Float("pixelRatio") != 2 {
		t.Errorf("effectScale=%v pixelRatio=%v", u.Float("effectScale"), u.Float("pixelRatio"))
	}
}
