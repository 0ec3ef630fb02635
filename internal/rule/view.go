package rule

import "math"

// Mode selects what the offset ring means.
type Mode int

const (
	Multiply Mode = 1
	Divide   Mode = -1
)

func (m Mode) String() string {
	if m == Divide {
		return "divide"
	}
	return "multiply"
}

// Symbol is the operator shown between the top and offset values.
func (m Mode) Symbol() string {
	if m == Divide {
		return "÷"
	}
	return "×"
}

// Sign is the tick direction of the ring that carries the mode's result
// marker: +1 for the top ring, -1 for the offset ring.
func (m Mode) Sign() float64 {
	return float64(m)
}

// ParseMode accepts "multiply"/"mul" and "divide"/"div".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "multiply", "mul", "×":
		return Multiply, true
	case "divide", "div", "÷":
		return Divide, true
	}
	return Multiply, false
}

// Geometry is where the rule sits on the canvas at a given zoom.
type Geometry struct {
	Width, Height    float64
	CenterX, CenterY float64
	Radius           float64
	Zoom             float64
}

// View is the mutable state of one rule. Setters reject values that would
// leave the logarithmic domain.
type View struct {
	width, height float64
	maxZoom       float64

	zoom   float64
	top    float64
	offset float64
	mode   Mode

	revision uint64
}

// NewView creates a rule at zoom 1 with both rings reading 1.
func NewView(width, height, maxZoom float64) *View {
	if !(maxZoom >= 1) {
		maxZoom = 1
	}
	return &View{
		width:   width,
		height:  height,
		maxZoom: maxZoom,
		zoom:    1,
		top:     1,
		offset:  1,
		mode:    Multiply,
	}
}

func (v *View) Zoom() float64    { return v.zoom }
func (v *View) MaxZoom() float64 { return v.maxZoom }
func (v *View) Top() float64     { return v.top }
func (v *View) Offset() float64  { return v.offset }
func (v *View) Mode() Mode       { return v.mode }

// Revision increases on every accepted mutation.
func (v *View) Revision() uint64 { return v.revision }

// DisplayOffset is the offset as the user reads it: the multiplier, or the
// divisor in divide mode.
func (v *View) DisplayOffset() float64 {
	if v.mode == Divide {
		return 1 / v.offset
	}
	return v.offset
}

// Product is the value under the cursor on the offset ring.
func (v *View) Product() float64 {
	return v.top * v.offset
}

// Geometry places the rule on the canvas for the current zoom.
func (v *View) Geometry() Geometry {
	radius := v.zoom * v.height * 0.4
	return Geometry{
		Width:   v.width,
		Height:  v.height,
		CenterX: v.width/2 + 0.5,
		CenterY: v.height*v.zoom/(2*v.zoom+8) + radius,
		Radius:  radius,
		Zoom:    v.zoom,
	}
}

// SetZoom clamps z into [1, MaxZoom] and reports whether the zoom changed.
// NaN is rejected.
func (v *View) SetZoom(z float64) bool {
	if math.IsNaN(z) {
		return false
	}
	z = min(max(z, 1), v.maxZoom)
	if z == v.zoom {
		return false
	}
	v.zoom = z
	v.revision++
	return true
}

// ScaleZoom multiplies the zoom by a positive finite factor.
func (v *View) ScaleZoom(f float64) bool {
	if !Valid(f) {
		return false
	}
	return v.SetZoom(v.zoom * f)
}

// SetTop reports whether t was accepted.
func (v *View) SetTop(t float64) bool {
	if !Valid(t) {
		return false
	}
	if t != v.top {
		v.top = t
		v.revision++
	}
	return true
}

// SetOffset reports whether o was accepted.
func (v *View) SetOffset(o float64) bool {
	if !Valid(o) {
		return false
	}
	if o != v.offset {
		v.offset = o
		v.revision++
	}
	return true
}

// SetMode switches between multiply and divide. The internal offset is kept,
// so the product is unchanged; only its displayed form flips.
func (v *View) SetMode(m Mode) bool {
	if m != Multiply && m != Divide {
		return false
	}
	if m == v.mode {
		return false
	}
	v.mode = m
	v.revision++
	return true
}

// Rings returns the two rings drawn each frame: the top ring, ticks pointing
// outward, and the offset ring, ticks pointing inward.
func (v *View) Rings() [2]Ring {
	return [2]Ring{
		{Reference: v.top, Sign: 1, Emphasize: v.mode.Sign() == 1},
		{Reference: v.top * v.offset, Sign: -1, Emphasize: v.mode.Sign() == -1},
	}
}
