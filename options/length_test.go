package options

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestResolveLength(t *testing.T) {
	ctx := LengthContext{ViewportWidth: 1000, ViewportHeight: 500, RootFontSize: 10, ElementFontSize: 20}
	tests := []struct {
		in   Length
		want float64
	}{
		{"120", 120},
		{"120px", 120},
		{" 12.5px ", 12.5},
		{"10vw", 100},
		{"10vh", 50},
		{"10vmin", 50},
		{"10vmax", 100},
		{"2rem", 20},
		{"2em", 40},
		{"10VW", 100},
	}
	for _, tt := range tests {
		got, err := ResolveLength(tt.in, ctx)
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []Length{"", "px", "ten", "10pt", "1e3"} {
		if _, err := ResolveLength(bad, ctx); !errors.Is(err, ErrBadLength) {
			t.Errorf("%q: err = %v, want ErrBadLength", bad, err)
		}
	}
}

func TestResolveLengthFontFallback(t *testing.T) {
	got, err := ResolveLength("2em", LengthContext{})
	if err != nil || got != 32 {
		t.Errorf("em without fonts = %v, %v; want 32", got, err)
	}
}

func TestInteractionRadius(t *testing.T) {
	ctx := LengthContext{ViewportWidth: 800, ViewportHeight: 600}
	cfg := Defaults()
	if r, err := cfg.InteractionRadius(ctx); err != nil || r != 40 {
		t.Errorf("default radius = %v, %v; want 40", r, err)
	}
	cfg.Interaction.CustomSize = SizeLength("auto")
	if r, _ := cfg.InteractionRadius(ctx); r != DefaultInteractionRadius {
		t.Errorf("auto radius = %v", r)
	}
	cfg.Interaction.CustomSize = SizeLength("huge")
	r, err := cfg.InteractionRadius(ctx)
	if err == nil || r != DefaultInteractionRadius {
		t.Errorf("invalid radius = %v, %v", r, err)
	}
}

func TestInteractionRadiusNumericSize(t *testing.T) {
	ctx := LengthContext{ViewportWidth: 800, ViewportHeight: 600}
	tests := []struct {
		json string
		want float64
	}{
		// A number is the radius; only lengths are halved.
		{`200`, 200},
		{`"200"`, 100},
		{`"200px"`, 100},
		{`0`, DefaultInteractionRadius},
	}
	for _, tt := range tests {
		var p Patch
		src := `{"interaction": {"customSize": ` + tt.json + `}}`
		if err := json.Unmarshal([]byte(src), &p); err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		cfg, errs := Merge(Defaults(), p)
		if len(errs) != 0 {
			t.Fatalf("%s: %v", src, errs)
		}
		if r, err := cfg.InteractionRadius(ctx); err != nil || r != tt.want {
			t.Errorf("customSize %s: radius = %v, %v; want %v", tt.json, r, err, tt.want)
		}
	}
}
