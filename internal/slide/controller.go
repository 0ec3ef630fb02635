// Package slide is the interaction layer of the circular slide rule. A
// Controller owns one rule's state and turns host events (pointers, wheel,
// edited fields, mode changes) into view updates and frames.
package slide

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iburimskiy/circular-rule/internal/gesture"
	"github.com/iburimskiy/circular-rule/internal/rule"
	"github.com/iburimskiy/circular-rule/internal/spin"
)

// Field names one of the three mirrored numeric inputs.
type Field int

const (
	FieldTop Field = iota
	FieldOffset
	FieldProduct
)

func (f Field) String() string {
	switch f {
	case FieldTop:
		return "top"
	case FieldOffset:
		return "offset"
	case FieldProduct:
		return "product"
	}
	return "unknown"
}

// Fields is the text shown in the numeric inputs.
type Fields struct {
	Top, Offset, Product string
}

func (f Fields) Get(field Field) string {
	switch field {
	case FieldTop:
		return f.Top
	case FieldOffset:
		return f.Offset
	case FieldProduct:
		return f.Product
	}
	return ""
}

func (f *Fields) set(field Field, s string) {
	switch field {
	case FieldTop:
		f.Top = s
	case FieldOffset:
		f.Offset = s
	case FieldProduct:
		f.Product = s
	}
}

type Options struct {
	Width, Height float64
	MaxZoom       float64
	MaxTickDepth  int
	SpinDelay     time.Duration

	Scheduler spin.Scheduler
	Capturer  gesture.Capturer
	Logger    *slog.Logger

	// OnSnap is called after a click snapped a ring to a round value.
	OnSnap func(ring gesture.Ring)
}

// Controller is single-threaded: every method must be called from the
// goroutine that runs the host's event loop.
type Controller struct {
	view     *rule.View
	tracker  *gesture.Tracker
	anim     *spin.Animator
	renderer rule.Renderer
	fields   Fields
	onSnap   func(gesture.Ring)
	log      *slog.Logger

	frame    Frame
	frameRev uint64
	hasFrame bool
}

func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	view := rule.NewView(opts.Width, opts.Height, opts.MaxZoom)
	c := &Controller{
		view:     view,
		tracker:  gesture.New(view, opts.Capturer, log.With("component", "gesture")),
		anim:     spin.New(view, opts.Scheduler, opts.SpinDelay, log.With("component", "spin")),
		renderer: rule.Renderer{MaxDepth: opts.MaxTickDepth},
		onSnap:   opts.OnSnap,
		log:      log,
	}
	c.writeFields()
	return c
}

func (c *Controller) View() *rule.View          { return c.view }
func (c *Controller) Fields() Fields            { return c.fields }
func (c *Controller) Tracker() *gesture.Tracker { return c.tracker }
func (c *Controller) Spinning() bool            { return c.anim.Running() }

func (c *Controller) PointerDown(id gesture.PointerID, p gesture.Point) {
	c.tracker.Down(id, p)
}

func (c *Controller) PointerMove(id gesture.PointerID, p gesture.Point) {
	if c.tracker.Move(id, p) {
		c.writeFields()
	}
}

func (c *Controller) PointerUp(id gesture.PointerID, p gesture.Point) {
	click, ok := c.tracker.Up(id, p)
	if !ok {
		return
	}
	c.snap(click.Ring)
}

// Wheel zooms by 1.001^deltaY, with deltaY in browser wheel units.
func (c *Controller) Wheel(deltaY float64) {
	if deltaY == 0 {
		return
	}
	c.view.ScaleZoom(math.Pow(1.001, deltaY))
}

func (c *Controller) snap(ring gesture.Ring) {
	v := c.view
	zoom := v.Zoom()
	switch {
	case ring == gesture.Outer:
		v.SetTop(rule.RoundToNice(v.Top(), zoom))
	case v.Mode() == rule.Divide:
		v.SetOffset(rule.RoundReciprocal(v.Offset(), zoom))
	default:
		v.SetOffset(rule.RoundToNice(v.Offset(), zoom))
	}
	c.log.Debug("snapped", "ring", ring, "top", v.Top(), "offset", v.DisplayOffset(), "zoom", zoom)
	c.writeFields()
	if c.onSnap != nil {
		c.onSnap(ring)
	}
}

// SetMode switches multiply/divide. The product is preserved; the offset
// field is rewritten to show the multiplier or the divisor.
func (c *Controller) SetMode(m rule.Mode) {
	if !c.view.SetMode(m) {
		return
	}
	c.fields.Offset = FormatValue(c.view.DisplayOffset())
	c.log.Info("mode changed", "mode", m)
}

// SetField records text typed into field and spins the wheels toward the
// values the fields now describe. Unparseable or non-positive input leaves
// the wheels where they are.
func (c *Controller) SetField(field Field, text string) {
	c.fields.set(field, text)

	divisor, ok := parseValue(c.fields.Offset)
	if !ok {
		c.anim.Stop()
		return
	}
	offset := divisor
	if c.view.Mode() == rule.Divide {
		offset = 1 / divisor
	}

	var top float64
	if field == FieldProduct {
		product, ok := parseValue(c.fields.Product)
		if !ok {
			c.anim.Stop()
			return
		}
		top = product / offset
	} else {
		top, ok = parseValue(c.fields.Top)
		if !ok {
			c.anim.Stop()
			return
		}
	}

	c.anim.Start(spin.Target{Top: top, Offset: offset}, func(bool) {
		if field == FieldProduct {
			c.fields.Top = FormatValue(c.view.Top())
		} else {
			c.fields.Product = FormatValue(c.view.Product())
		}
	})
}

func (c *Controller) writeFields() {
	c.fields = Fields{
		Top:     FormatValue(c.view.Top()),
		Offset:  FormatValue(c.view.DisplayOffset()),
		Product: FormatValue(c.view.Product()),
	}
}

func parseValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !rule.Valid(v) {
		return 0, false
	}
	return v, true
}

// FormatValue prints v the way a numeric input shows it: plain decimals for
// everyday magnitudes, exponent form for the extremes.
func FormatValue(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-6 || a >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
