package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/richinsley/goglitch/page"
)

const (
	textWrapRatio = 0.9
	textInset     = 0.05
)

type fontStyle int

const (
	styleRegular fontStyle = iota
	styleBold
	styleItalic
	styleBoldItalic
)

var (
	fontsOnce sync.Once
	fonts     [4]*opentype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
			f, err := opentype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("parse embedded font: %w", err)
				return
			}
			fonts[i] = f
		}
	})
	return fontsErr
}

func styleOf(s page.Style) fontStyle {
	bold := s.FontWeight == "bold" || s.FontWeight == "bolder"
	if w, err := strconv.Atoi(s.FontWeight); err == nil && w >= 600 {
		bold = true
	}
	italic := s.FontStyle == "italic" || s.FontStyle == "oblique"
	switch {
	case bold && italic:
		return styleBoldItalic
	case bold:
		return styleBold
	case italic:
		return styleItalic
	}
	return styleRegular
}

// RenderText draws text onto a transparent w×h bitmap: words wrapped at 90% of the
// width, the block vertically centred, each line aligned by style.TextAlign. scale
// converts CSS pixels of the style to bitmap pixels.
func RenderText(text string, style page.Style, w, h int, scale float64) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	words := strings.Fields(text)
	if len(words) == 0 {
		return dst, nil
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}

	size := style.FontSize
	if size <= 0 {
		size = 16
	}
	lineHeight := style.LineHeight
	if lineHeight <= 0 {
		lineHeight = size * 1.2
	}
	size *= scale
	lineHeight *= scale

	face, err := opentype.NewFace(fonts[styleOf(style)], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	lines := wrapWords(words, float64(w)*textWrapRatio, func(s string) float64 {
		return fixedToFloat(font.MeasureString(face, s))
	})

	var col color.Color = color.White
	if style.Color != nil {
		col = style.Color
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	ascent := fixedToFloat(face.Metrics().Ascent)

	startY := (float64(h) - float64(len(lines))*lineHeight) / 2
	for i, line := range lines {
		width := fixedToFloat(d.MeasureString(line))
		var x float64
		switch style.TextAlign {
		case "right", "end":
			x = float64(w) - float64(w)*textInset - width
		case "left", "start":
			x = float64(w) * textInset
		default:
			x = (float64(w) - width) / 2
		}
		y := startY + float64(i)*lineHeight + ascent
		d.Dot = fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)}
		d.DrawString(line)
	}
	return dst, nil
}

// wrapWords greedily fills lines up to maxWidth. A single word wider than maxWidth
// gets a line of its own.
func wrapWords(words []string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	cur := ""
	for _, word := range words {
		test := word
		if cur != "" {
			test = cur + " " + word
		}
		if measure(test) > maxWidth && cur != "" {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = test
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
