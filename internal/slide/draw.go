package slide

import (
	"image/color"
	"math"

	"github.com/iburimskiy/circular-rule/internal/rule"
)

// Surface is the 2D drawing capability the rule needs from its host.
type Surface interface {
	FillRect(x, y, w, h float64, clr color.Color)
	Line(x0, y0, x1, y1, width float64, clr color.Color)
	// Text draws s centred on x with its baseline at y.
	Text(s string, x, y, size float64, clr color.Color)
}

// Frame is everything needed to paint the rule once.
type Frame struct {
	Geometry rule.Geometry
	Mode     rule.Mode
	Top      float64
	Product  float64
	Rings    [2][]rule.Tick
}

var (
	colorBackground = color.White
	colorTick       = color.Black
	colorEmphasis   = color.NRGBA{B: 0xff, A: 0xff}
	colorHairline   = color.NRGBA{R: 0xff, A: 0x80}
	colorInnerBand  = color.NRGBA{G: 0xff, A: 0x1a}
	colorOuterBand  = color.NRGBA{R: 0xff, A: 0x1a}
	colorResult     = color.NRGBA{B: 0xff, A: 0x1a}
)

const (
	hairlineReach = 50.0
	bandReach     = 60.0
	bandWidth     = 20.0
)

// Frame returns the ticks for the current view. The result is cached until
// the view changes, so calling it every host frame is cheap.
func (c *Controller) Frame() Frame {
	rev := c.view.Revision()
	if c.hasFrame && rev == c.frameRev {
		return c.frame
	}
	g := c.view.Geometry()
	rings := c.view.Rings()
	f := Frame{
		Geometry: g,
		Mode:     c.view.Mode(),
		Top:      c.view.Top(),
		Product:  c.view.Product(),
	}
	for i, r := range rings {
		f.Rings[i] = c.renderer.Ticks(r, g)
	}
	c.frame, c.frameRev, c.hasFrame = f, rev, true
	return f
}

// Draw paints the current frame onto s.
func (c *Controller) Draw(s Surface) {
	f := c.Frame()
	g := f.Geometry

	s.FillRect(0, 0, g.Width, g.Height, colorBackground)

	for _, ticks := range f.Rings {
		for _, t := range ticks {
			clr := color.Color(colorTick)
			if t.Emphasis {
				clr = colorEmphasis
			}
			x0, y0, x1, y1 := t.Line(g)
			s.Line(x0, y0, x1, y1, 1, clr)
			if t.Label != "" {
				x, y := t.LabelAt(g)
				s.Text(t.Label, x, y, t.LabelSize, clr)
			}
		}
	}

	top := g.CenterY - g.Radius
	s.Line(g.CenterX, top+hairlineReach, g.CenterX, top-hairlineReach, 1, colorHairline)
	s.Line(g.CenterX, top, g.CenterX, top+bandReach, bandWidth, colorInnerBand)
	s.Line(g.CenterX, top, g.CenterX, top-bandReach, bandWidth, colorOuterBand)

	// The result marker sits on the "1" of the ring that carries the mode.
	ref := f.Top
	if f.Mode == rule.Divide {
		ref = f.Product
	}
	ang := -math.Log(ref)*rule.Factor - math.Pi/2
	cos, sin := math.Cos(ang), math.Sin(ang)
	r1 := g.Radius - f.Mode.Sign()*bandReach
	s.Line(g.CenterX+cos*g.Radius, g.CenterY+sin*g.Radius, g.CenterX+cos*r1, g.CenterY+sin*r1, bandWidth, colorResult)
}
