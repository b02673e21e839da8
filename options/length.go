package options

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultInteractionRadius is used when the interaction size is unset or invalid.
const DefaultInteractionRadius = 100.0

var ErrBadLength = errors.New("invalid length")

var lengthPattern = regexp.MustCompile(`(?i)^(-?\d*\.?\d+)(px|vw|vh|vmin|vmax|rem|em)?$`)

// LengthContext carries what relative units are measured against.
type LengthContext struct {
	ViewportWidth   float64
	ViewportHeight  float64
	RootFontSize    float64
	ElementFontSize float64
}

// ResolveLength converts a CSS-like length to pixels.
func ResolveLength(l Length, ctx LengthContext) (float64, error) {
	m := lengthPattern.FindStringSubmatch(strings.TrimSpace(string(l)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadLength, string(l))
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadLength, string(l))
	}
	root := ctx.RootFontSize
	if root <= 0 {
		root = 16
	}
	switch strings.ToLower(m[2]) {
	case "", "px":
		return v, nil
	case "vw":
		return v / 100 * ctx.ViewportWidth, nil
	case "vh":
		return v / 100 * ctx.ViewportHeight, nil
	case "vmin":
		return v / 100 * min(ctx.ViewportWidth, ctx.ViewportHeight), nil
	case "vmax":
		return v / 100 * max(ctx.ViewportWidth, ctx.ViewportHeight), nil
	case "rem":
		return v * root, nil
	case "em":
		fs := ctx.ElementFontSize
		if fs <= 0 {
			fs = root
		}
		return v * fs, nil
	}
	return v, nil
}

// InteractionRadius resolves the configured interaction size to a radius in pixels.
// A plain number is the radius; a length is halved. Unset or "auto" yields the
// default; an invalid length yields the default together with an error.
func (c *Config) InteractionRadius(ctx LengthContext) (float64, error) {
	if r := c.Interaction.CustomSize.Radius; r != 0 {
		return r, nil
	}
	size := strings.TrimSpace(string(c.Interaction.CustomSize.Length))
	if size == "" || size == "auto" {
		return DefaultInteractionRadius, nil
	}
	px, err := ResolveLength(Length(size), ctx)
	if err != nil {
		return DefaultInteractionRadius, err
	}
	return px / 2, nil
}
