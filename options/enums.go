package options

import (
	"fmt"
	"strings"
)

// The integer values of the enums below are the values the effect shader expects.

type PixelShape int

const (
	PixelSquare PixelShape = iota
	PixelCircle
	PixelDiamond
	PixelCross
	PixelPlus
)

type BitDepth int

const (
	BitDepthNone BitDepth = iota
	BitDepth1
	BitDepth4
	BitDepth8
)

type Dithering int

const (
	DitherNone Dithering = iota
	DitherFloydSteinberg
	DitherBayer
)

type PixelDirection int

const (
	DirectionSquare PixelDirection = iota
	DirectionHorizontal
	DirectionVertical
)

type LineDirection int

const (
	LineUp LineDirection = iota
	LineDown
	LineLeft
	LineRight
)

type InteractionShape int

const (
	ShapeCircle InteractionShape = iota
	ShapeSquare
	ShapeDiamond
	ShapeCross
	ShapePlus
	ShapeCustom
)

var (
	pixelShapeNames       = []string{"square", "circle", "diamond", "cross", "plus"}
	bitDepthNames         = []string{"none", "1-bit", "4-bit", "8-bit"}
	ditheringNames        = []string{"none", "floyd-steinberg", "bayer"}
	pixelDirectionNames   = []string{"square", "horizontal", "vertical"}
	lineDirectionNames    = []string{"up", "down", "left", "right"}
	interactionShapeNames = []string{"circle", "square", "diamond", "cross", "plus", "custom"}
)

// parseEnum returns the index of name in names. Unknown names map to 0 and an error.
func parseEnum(kind string, names []string, name string) (int, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range names {
		if v == n {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q, using %q", kind, name, names[0])
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return names[0]
	}
	return names[v]
}

func ParsePixelShape(s string) (PixelShape, error) {
	v, err := parseEnum("pixel shape", pixelShapeNames, s)
	return PixelShape(v), err
}

func ParseBitDepth(s string) (BitDepth, error) {
	v, err := parseEnum("bit depth", bitDepthNames, s)
	return BitDepth(v), err
}

func ParseDithering(s string) (Dithering, error) {
	v, err := parseEnum("dithering", ditheringNames, s)
	return Dithering(v), err
}

func ParsePixelDirection(s string) (PixelDirection, error) {
	v, err := parseEnum("pixel direction", pixelDirectionNames, s)
	return PixelDirection(v), err
}

func ParseLineDirection(s string) (LineDirection, error) {
	v, err := parseEnum("line direction", lineDirectionNames, s)
	return LineDirection(v), err
}

func ParseInteractionShape(s string) (InteractionShape, error) {
	v, err := parseEnum("interaction shape", interactionShapeNames, s)
	return InteractionShape(v), err
}

func (v PixelShape) String() string       { return enumName(pixelShapeNames, int(v)) }
func (v BitDepth) String() string         { return enumName(bitDepthNames, int(v)) }
func (v Dithering) String() string        { return enumName(ditheringNames, int(v)) }
func (v PixelDirection) String() string   { return enumName(pixelDirectionNames, int(v)) }
func (v LineDirection) String() string    { return enumName(lineDirectionNames, int(v)) }
func (v InteractionShape) String() string { return enumName(interactionShapeNames, int(v)) }
