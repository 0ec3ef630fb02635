package slide

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/circular-rule/internal/gesture"
	"github.com/iburimskiy/circular-rule/internal/rule"
	"github.com/iburimskiy/circular-rule/internal/spin"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	c     *Controller
	q     *spin.Queue
	snaps []gesture.Ring
}

func newHarness() *harness {
	h := &harness{q: spin.NewQueue(epoch)}
	h.c = New(Options{
		Width:     1000,
		Height:    500,
		MaxZoom:   1.213e12,
		SpinDelay: 10 * time.Millisecond,
		Scheduler: h.q,
		OnSnap:    func(r gesture.Ring) { h.snaps = append(h.snaps, r) },
	})
	return h
}

// settle runs the spin queue until the animation is done.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	now := h.q.Now()
	for i := 0; h.c.Spinning(); i++ {
		require.Less(t, i, 1000)
		now = now.Add(10 * time.Millisecond)
		h.q.Advance(now)
	}
}

func (h *harness) polar(r, a float64) gesture.Point {
	g := h.c.View().Geometry()
	return gesture.Point{X: g.CenterX + r*math.Cos(a), Y: g.CenterY + r*math.Sin(a)}
}

func TestNewControllerFields(t *testing.T) {
	h := newHarness()
	assert.Equal(t, Fields{Top: "1", Offset: "1", Product: "1"}, h.c.Fields())
}

func TestDragRewritesFields(t *testing.T) {
	h := newHarness()
	h.c.PointerDown(1, h.polar(250, -math.Pi/2))
	h.c.PointerMove(1, h.polar(250, -math.Pi/2-0.5))

	v := h.c.View()
	f := h.c.Fields()
	assert.Equal(t, FormatValue(v.Top()), f.Top)
	assert.Equal(t, FormatValue(v.Product()), f.Product)
	assert.Equal(t, "1", f.Offset)
	assert.Empty(t, h.snaps)
}

func TestClickOnInnerRingSnapsOffset(t *testing.T) {
	h := newHarness()
	v := h.c.View()
	v.SetTop(1.234)
	v.SetOffset(2.345)

	p := h.polar(100, 0.2)
	h.c.PointerDown(1, p)
	h.c.PointerUp(1, p)

	assert.Equal(t, 1.234, v.Top())
	assert.Equal(t, 2.3, v.Offset())
	assert.Equal(t, "2.3", h.c.Fields().Offset)
	assert.Equal(t, []gesture.Ring{gesture.Inner}, h.snaps)
}

func TestClickOnOuterRingSnapsTop(t *testing.T) {
	h := newHarness()
	v := h.c.View()
	v.SetTop(7.77)
	v.SetOffset(2.345)

	p := h.polar(260, 1)
	h.c.PointerDown(1, p)
	h.c.PointerUp(1, p)

	assert.Equal(t, 7.8, v.Top())
	assert.Equal(t, 2.345, v.Offset())
	assert.Equal(t, []gesture.Ring{gesture.Outer}, h.snaps)
}

func TestClickInDivideModeSnapsDivisor(t *testing.T) {
	h := newHarness()
	v := h.c.View()
	h.c.SetMode(rule.Divide)
	v.SetOffset(1 / 3.456)

	p := h.polar(100, 0)
	h.c.PointerDown(1, p)
	h.c.PointerUp(1, p)

	assert.InDelta(t, 3.5, v.DisplayOffset(), 1e-12)
	assert.Equal(t, 1.0, v.Top())
}

func TestWheelZooms(t *testing.T) {
	h := newHarness()
	h.c.Wheel(100)
	assert.InEpsilon(t, math.Pow(1.001, 100), h.c.View().Zoom(), 1e-12)
	h.c.Wheel(-1e4)
	assert.Equal(t, 1.0, h.c.View().Zoom())
}

func TestSetModePreservesProduct(t *testing.T) {
	h := newHarness()
	v := h.c.View()
	v.SetTop(6)
	v.SetOffset(0.25)
	before := v.Product()

	h.c.SetMode(rule.Divide)
	assert.Equal(t, before, v.Product())
	assert.Equal(t, "4", h.c.Fields().Offset)

	h.c.SetMode(rule.Multiply)
	assert.Equal(t, before, v.Product())
	assert.Equal(t, "0.25", h.c.Fields().Offset)
}

func TestSetFieldTopSpins(t *testing.T) {
	h := newHarness()
	h.c.SetField(FieldTop, "5")
	assert.True(t, h.c.Spinning())
	h.settle(t)

	v := h.c.View()
	assert.Equal(t, 5.0, v.Top())
	assert.Equal(t, 1.0, v.Offset())
	assert.Equal(t, "5", h.c.Fields().Product)
	assert.Equal(t, "5", h.c.Fields().Top)
}

func TestSetFieldProductSolvesForTop(t *testing.T) {
	h := newHarness()
	h.c.SetField(FieldOffset, "3")
	h.settle(t)
	h.c.SetField(FieldProduct, "12")
	h.settle(t)

	v := h.c.View()
	assert.Equal(t, 3.0, v.Offset())
	assert.Equal(t, 4.0, v.Top())
	assert.Equal(t, "4", h.c.Fields().Top)
}

func TestSetFieldDivisor(t *testing.T) {
	h := newHarness()
	h.c.SetMode(rule.Divide)
	h.c.SetField(FieldTop, "9")
	h.c.SetField(FieldOffset, "4")
	h.settle(t)

	v := h.c.View()
	assert.Equal(t, 0.25, v.Offset())
	assert.Equal(t, 4.0, v.DisplayOffset())
	assert.Equal(t, 2.25, v.Product())
}

func TestSetFieldIgnoresBadInput(t *testing.T) {
	h := newHarness()
	for _, text := range []string{"", "abc", "-4", "0", "NaN", "Inf"} {
		h.c.SetField(FieldTop, text)
		assert.False(t, h.c.Spinning(), "%q", text)
	}
	assert.Equal(t, 1.0, h.c.View().Top())
	assert.Equal(t, 1.0, h.c.View().Offset())
}

func TestFrameIsCachedUntilViewChanges(t *testing.T) {
	h := newHarness()
	a := h.c.Frame()
	b := h.c.Frame()
	require.NotEmpty(t, a.Rings[0])
	assert.Same(t, &a.Rings[0][0], &b.Rings[0][0])

	h.c.View().SetTop(2)
	d := h.c.Frame()
	assert.NotSame(t, &a.Rings[0][0], &d.Rings[0][0])
	assert.Equal(t, 2.0, d.Top)
}

type recordingSurface struct {
	rects, lines []color.Color
	texts        []string
}

func (s *recordingSurface) FillRect(_, _, _, _ float64, clr color.Color) {
	s.rects = append(s.rects, clr)
}

func (s *recordingSurface) Line(_, _, _, _, _ float64, clr color.Color) {
	s.lines = append(s.lines, clr)
}

func (s *recordingSurface) Text(str string, _, _, _ float64, _ color.Color) {
	s.texts = append(s.texts, str)
}

func TestDraw(t *testing.T) {
	h := newHarness()
	s := &recordingSurface{}
	h.c.Draw(s)

	f := h.c.Frame()
	ticks, labels := 0, 0
	for _, ring := range f.Rings {
		for _, tk := range ring {
			ticks++
			if tk.Label != "" {
				labels++
			}
		}
	}
	require.Len(t, s.rects, 1)
	assert.Equal(t, color.White, s.rects[0])
	// ticks, hairline, two bands and the result marker
	assert.Len(t, s.lines, ticks+4)
	assert.Len(t, s.texts, labels)
	assert.Contains(t, s.lines, color.Color(colorEmphasis))

	// drawing is idempotent
	again := &recordingSurface{}
	h.c.Draw(again)
	assert.Equal(t, s, again)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1200", FormatValue(1200))
	assert.Equal(t, "0.25", FormatValue(0.25))
	assert.Equal(t, "1e+21", FormatValue(1e21))
	assert.Equal(t, "1e-07", FormatValue(1e-7))
}
