package rule

import (
	"math"
	"strconv"
)

const (
	// DefaultMaxDepth bounds sub-decade recursion. At the largest zoom a
	// 600px canvas needs 15 levels.
	DefaultMaxDepth = 18

	baseTickLength = 34.0
	tickShrink     = 0.477
	bandMargin     = 20.0
	minRecurseGap  = 4.0
	labelGap       = 10.0
	majorLabelSize = 24.0
	minorLabelSize = 12.0
)

// Ring is one logarithmic scale: the value shown at the top and the side of
// the circle its ticks grow toward (+1 outward, -1 inward).
type Ring struct {
	Reference float64
	Sign      float64
	// Emphasize marks the unity crossing on the ring that carries the
	// current mode's result.
	Emphasize bool
}

// Tick is a single mark on a ring.
type Tick struct {
	Value float64
	Angle float64
	// Radius is the base circle; the mark runs to Radius+Length, so Length
	// carries the ring's sign.
	Radius float64
	Length float64

	Label       string
	LabelRadius float64
	LabelSize   float64

	Emphasis   bool
	Depth      int
	Prominence int
}

// Line returns the two endpoints of the mark on the canvas.
func (t Tick) Line(g Geometry) (x0, y0, x1, y1 float64) {
	cos, sin := math.Cos(t.Angle), math.Sin(t.Angle)
	x0, y0 = g.CenterX+cos*t.Radius, g.CenterY+sin*t.Radius
	r := t.Radius + t.Length
	return x0, y0, g.CenterX + cos*r, g.CenterY + sin*r
}

// LabelAt returns where the label's baseline centre goes.
func (t Tick) LabelAt(g Geometry) (x, y float64) {
	return g.CenterX + math.Cos(t.Angle)*t.LabelRadius,
		g.CenterY + math.Sin(t.Angle)*t.LabelRadius + 5
}

// Renderer generates the marks for a ring, subdividing a step into ten finer
// steps wherever the step is wide enough on screen to show them.
type Renderer struct {
	MaxDepth int
}

// Ticks renders one full decade of ring, starting the walk at value 1.
func (r Renderer) Ticks(ring Ring, g Geometry) []Tick {
	if !Valid(ring.Reference) || !(g.Radius > 0) {
		return nil
	}
	maxDepth := r.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	w := tickWalk{
		ring:     ring,
		geom:     g,
		offset:   RingOffset(ring.Reference),
		maxDepth: maxDepth,
		maxLen:   g.CenterY - g.Radius - bandMargin,
	}
	w.render(1, 0)
	return w.ticks
}

type tickWalk struct {
	ring     Ring
	geom     Geometry
	offset   float64
	maxDepth int
	maxLen   float64
	ticks    []Tick
}

func (w *tickWalk) render(from float64, depth int) {
	radius := w.geom.Radius
	by := math.Pow(0.1, float64(depth))
	prevAngle := math.Log(from)*Factor - w.offset
	prevVal := from

	limit := math.Log((from+by)/from) * Factor * radius
	step := 1
	switch {
	case limit < 1:
		step = 5
	case limit < 2:
		step = 2
	}

	last := 10
	if depth == 0 {
		last = 9
	}
	for i := step; i <= last; i += step {
		val := from + float64(i)*by
		angle := math.Log(val)*Factor - w.offset

		prominence := 0
		if i == 5 {
			prominence = 2
		} else if i%2 == 0 {
			prominence = 1
		}
		length := baseTickLength * w.geom.Zoom
		if depth > 0 {
			length *= math.Pow(tickShrink, float64(3*depth-prominence))
		}
		length = min(length, w.maxLen)

		if i != 10 {
			w.emit(val, angle, length, limit, depth, prominence)
		}

		// The band test takes the x of the previous tick, not of the interval start.
		if (angle-prevAngle)*radius > minRecurseGap && depth < w.maxDepth && w.visible(prevAngle, angle, depth) {
			w.render(prevVal, depth+1)
		}
		prevVal = val
		prevAngle = angle
	}
}

// visible keeps the top level unconditional and culls deeper levels to the
// horizontal band of the canvas.
func (w *tickWalk) visible(prevAngle, angle float64, depth int) bool {
	if depth == 0 {
		return true
	}
	g := w.geom
	return g.CenterX+math.Cos(prevAngle)*g.Radius <= g.Width &&
		g.CenterX+math.Cos(angle)*g.Radius >= 0
}

// offscreen reports whether the whole mark lies left or right of the canvas.
func (w *tickWalk) offscreen(angle, length float64) bool {
	g := w.geom
	cos := math.Cos(angle)
	x0 := g.CenterX + cos*g.Radius
	x1 := g.CenterX + cos*(g.Radius+length*w.ring.Sign)
	return (x0 < 0 && x1 < 0) || (x0 > g.Width && x1 > g.Width)
}

func (w *tickWalk) emit(val, angle, length, limit float64, depth, prominence int) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) || math.IsNaN(length) || math.IsInf(length, 0) {
		return
	}
	if depth > 1 && w.offscreen(angle, length) {
		return
	}
	t := Tick{
		Value:      val,
		Angle:      angle,
		Radius:     w.geom.Radius,
		Length:     length * w.ring.Sign,
		Emphasis:   w.ring.Emphasize && depth == 0 && val == 10,
		Depth:      depth,
		Prominence: prominence,
	}
	if limit/float64(4-prominence)+length/3 > 5+float64(depth)*4 {
		shown := val
		if val == 10 {
			shown = 1
		}
		t.Label = strconv.FormatFloat(shown, 'f', depth, 64)
		t.LabelRadius = w.geom.Radius + (length+labelGap)*w.ring.Sign
		t.LabelSize = minorLabelSize
		if depth == 0 {
			t.LabelSize = majorLabelSize
		}
	}
	w.ticks = append(w.ticks, t)
}
