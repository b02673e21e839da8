package render

import (
	"strconv"

	"github.com/richinsley/goglitch/graphics"
	"github.com/richinsley/goglitch/page"
)

// Mirror computes where an element's surface goes. It returns false when the
// element is invisible and the surface must be hidden.
func Mirror(box page.Rect, s page.Style) (graphics.Placement, bool) {
	if box.Empty() || s.Hidden() {
		return graphics.Placement{Box: box}, false
	}
	p := graphics.Placement{
		Box:             box,
		Margin:          "0",
		Padding:         "0",
		TransformOrigin: s.TransformOrigin,
		ZIndex:          s.ZIndex,
		BorderRadius:    s.BorderRadius,
		BoxSizing:       s.BoxSizing,
		ObjectFit:       s.ObjectFit,
		ObjectPosition:  s.ObjectPosition,
		PointerEvents:   "none",
	}
	if s.Transform != "none" {
		p.Transform = s.Transform
	}
	if s.Position == "" || s.Position == "static" {
		// A static element cannot be tracked by CSS alone; pin the surface to the
		// viewport at the element's live box.
		p.Position = "fixed"
		p.Top = px(box.Top())
		p.Left = px(box.Left())
		p.Width = px(box.Width)
		p.Height = px(box.Height)
		return p, true
	}
	p.Position = s.Position
	p.Top = s.Top
	p.Left = s.Left
	p.Right = s.Right
	p.Bottom = s.Bottom
	p.Width = s.Width
	p.Height = s.Height
	return p, true
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
