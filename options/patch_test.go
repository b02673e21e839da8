package options

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMergeEmptyPatchIsIdentity(t *testing.T) {
	base := Defaults()
	base.Interaction.Effects.Glitch = []string{"rgbShift"}
	got, errs := Merge(base, Patch{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !reflect.DeepEqual(got, base) {
		t.Errorf("empty patch changed the config:\n got %+v\nwant %+v", got, base)
	}
}

func TestMergeDoesNotAliasBase(t *testing.T) {
	base := Defaults()
	base.Interaction.Effects.CRT = []string{"scanlines"}
	got, _ := Merge(base, Patch{})
	got.Interaction.Effects.CRT[0] = "curvature"
	if base.Interaction.Effects.CRT[0] != "scanlines" {
		t.Error("merged config shares slices with base")
	}
}

func TestMergeNested(t *testing.T) {
	p := Patch{
		Intensity: Ptr(0.5),
		Effects: &EffectsPatch{
			Pixelation: &PixelationPatch{PixelSize: Ptr(12.0), PixelShape: Ptr("diamond")},
			Glitch:     &GlitchPatch{Enabled: Ptr(true), RGBShift: Ptr(0.2)},
		},
	}
	got, errs := Merge(Defaults(), p)
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	if got.Intensity != 0.5 || got.Effects.Pixelation.PixelSize != 12 || got.Effects.Pixelation.PixelShape != PixelDiamond {
		t.Errorf("pixelation not merged: %+v", got.Effects.Pixelation)
	}
	if !got.Effects.Pixelation.Enabled {
		t.Error("unset field was overwritten")
	}
	if !got.Effects.Glitch.Enabled || got.Effects.Glitch.RGBShift != 0.2 || got.Effects.Glitch.DigitalNoise != 0.1 {
		t.Errorf("glitch not merged: %+v", got.Effects.Glitch)
	}
}

func TestMergePresetThenOverride(t *testing.T) {
	p := Patch{Effects: &EffectsPatch{CRT: &CRTPatch{
		Preset:    Ptr("computer-monitor"),
		Curvature: Ptr(5.0),
	}}}
	got, errs := Merge(Defaults(), p)
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	crt := got.Effects.CRT
	if crt.Preset != "computer-monitor" || crt.ScanlineCount != 480 {
		t.Errorf("preset not applied: %+v", crt)
	}
	if crt.Curvature != 5 {
		t.Errorf("explicit curvature = %v, want 5", crt.Curvature)
	}
	if crt.Enabled {
		t.Error("preset must not enable the CRT effect")
	}
}

func TestMergeReportsBadValues(t *testing.T) {
	p := Patch{
		Interaction: &InteractionPatch{
			Shape: Ptr("hexagon"),
			Effects: &InteractiveSetPatch{
				CRT: &[]string{"scanlines", "flicker", "bogus"},
			},
		},
		Effects: &EffectsPatch{CRT: &CRTPatch{Preset: Ptr("plasma")}},
	}
	got, errs := Merge(Defaults(), p)
	if len(errs) != 4 {
		t.Fatalf("errors = %v, want 4", errs)
	}
	if got.Interaction.Shape != ShapeCircle {
		t.Errorf("unknown shape = %v, want circle fallback", got.Interaction.Shape)
	}
	if !reflect.DeepEqual(got.Interaction.Effects.CRT, []string{"scanlines"}) {
		t.Errorf("interactive CRT = %v", got.Interaction.Effects.CRT)
	}
	if got.Effects.CRT.Preset != DefaultCRTPreset {
		t.Errorf("unknown preset replaced %q", got.Effects.CRT.Preset)
	}
	found := false
	for _, err := range errs {
		if errors.Is(err, ErrUnknownPreset) {
			found = true
		}
	}
	if !found {
		t.Error("missing ErrUnknownPreset")
	}
}

func TestPatchJSON(t *testing.T) {
	src := `{
		"intensity": 0.8,
		"interaction": {"customSize": 120, "shape": "square", "effects": {"glitch": ["rgbShift"]}},
		"effects": {"crt": {"enabled": true, "preset": "arcade-monitor"}}
	}`
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPatch(path)
	if err != nil {
		t.Fatal(err)
	}
	got, errs := Merge(Defaults(), p)
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	if got.Interaction.CustomSize != SizeRadius(120) || got.Interaction.Shape != ShapeSquare {
		t.Errorf("interaction = %+v", got.Interaction)
	}
	if !got.Effects.CRT.Enabled || !got.Effects.CRT.Flicker {
		t.Errorf("crt = %+v", got.Effects.CRT)
	}

	var size InteractionSize
	if err := json.Unmarshal([]byte(`true`), &size); err == nil {
		t.Error("boolean interaction size accepted")
	}
	if _, err := LoadPatch(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestInteractionTextureChanged(t *testing.T) {
	circle := Defaults()
	custom := Defaults()
	custom.Interaction.Shape = ShapeCustom
	custom.Interaction.CustomURL = "star.png"
	moved := custom
	moved.Interaction.CustomURL = "moon.png"
	disabled := custom
	disabled.Interaction.Enabled = false
	square := Defaults()
	square.Interaction.Shape = ShapeSquare

	tests := []struct {
		name     string
		old, cur Config
		want     bool
	}{
		{"same", custom, custom, false},
		{"to custom", circle, custom, true},
		{"from custom", custom, circle, true},
		{"url", custom, moved, true},
		{"disable custom", custom, disabled, true},
		{"builtin shapes", circle, square, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InteractionTextureChanged(tt.old, tt.cur); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
