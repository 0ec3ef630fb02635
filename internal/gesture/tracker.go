// Package gesture turns raw pointer sequences into rotations and zooms of a
// rule.View.
package gesture

import (
	"log/slog"
	"math"
	"slices"

	"github.com/iburimskiy/circular-rule/internal/rule"
)

// PointerID identifies one mouse button or touch for the lifetime of a press.
type PointerID int

// Ring is the band of the rule a pointer went down on.
type Ring int

const (
	Inner Ring = iota
	Outer
)

func (r Ring) String() string {
	if r == Outer {
		return "outer"
	}
	return "inner"
}

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

func (p Point) dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Capturer routes a pointer's later events back to the rule even when it
// leaves the surface.
type Capturer interface {
	Capture(id PointerID)
	Release(id PointerID)
}

// Track is the per-pointer state: *RingDrag or *PinchGesture.
type Track interface {
	pos() Point
}

// RingDrag rotates one ring.
type RingDrag struct {
	Ring      Ring
	LastAngle float64
	LastPos   Point
	Moved     bool
}

// PinchGesture is one finger of a two-finger zoom.
type PinchGesture struct {
	Partner PointerID
	LastPos Point
}

func (d *RingDrag) pos() Point     { return d.LastPos }
func (p *PinchGesture) pos() Point { return p.LastPos }

// Click is a press and release without movement on a ring.
type Click struct {
	Ring Ring
	At   Point
}

// Tracker owns the pointer map. It is not safe for concurrent use; every call
// must come from the goroutine that owns the view.
type Tracker struct {
	view    *rule.View
	capture Capturer
	tracks  map[PointerID]Track
	log     *slog.Logger
}

// New tracks pointers over view. capture may be nil.
func New(view *rule.View, capture Capturer, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{
		view:    view,
		capture: capture,
		tracks:  map[PointerID]Track{},
		log:     log,
	}
}

// Classify reports which ring lies under p and the angle of p around the
// centre.
func (t *Tracker) Classify(p Point) (Ring, float64) {
	g := t.view.Geometry()
	dx, dy := p.X-g.CenterX, p.Y-g.CenterY
	ring := Inner
	if dx*dx+dy*dy > g.Radius*g.Radius {
		ring = Outer
	}
	return ring, math.Atan2(dy, dx)
}

// Track returns the state of id, or nil when it is not tracked.
func (t *Tracker) Track(id PointerID) Track {
	return t.tracks[id]
}

// Active is the number of tracked pointers.
func (t *Tracker) Active() int {
	return len(t.tracks)
}

func (t *Tracker) ids() []PointerID {
	ids := make([]PointerID, 0, len(t.tracks))
	for id := range t.tracks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Down starts tracking id. A second pointer on a ring that is already being
// dragged turns both into a pinch. It reports false for an id that is
// already tracked.
func (t *Tracker) Down(id PointerID, p Point) bool {
	if _, ok := t.tracks[id]; ok {
		return false
	}
	ring, angle := t.Classify(p)
	if t.capture != nil {
		t.capture.Capture(id)
	}
	for _, other := range t.ids() {
		drag, ok := t.tracks[other].(*RingDrag)
		if !ok || drag.Ring != ring {
			continue
		}
		t.tracks[id] = &PinchGesture{Partner: other, LastPos: p}
		t.tracks[other] = &PinchGesture{Partner: id, LastPos: drag.LastPos}
		t.log.Debug("pinch started", "pointer", id, "partner", other, "ring", ring)
		return true
	}
	t.tracks[id] = &RingDrag{Ring: ring, LastAngle: angle, LastPos: p}
	return true
}

// Move applies a pointer motion and reports whether the view changed.
// Untracked ids are ignored.
func (t *Tracker) Move(id PointerID, p Point) bool {
	switch tr := t.tracks[id].(type) {
	case *PinchGesture:
		return t.pinch(tr, p)
	case *RingDrag:
		return t.drag(id, tr, p)
	}
	return false
}

func (t *Tracker) pinch(tr *PinchGesture, p Point) bool {
	partner, ok := t.tracks[tr.Partner]
	if !ok {
		return false
	}
	anchor := partner.pos()
	before := tr.LastPos.dist(anchor)
	after := p.dist(anchor)
	tr.LastPos = p
	return t.view.ScaleZoom(after / before)
}

func (t *Tracker) drag(id PointerID, tr *RingDrag, p Point) bool {
	tr.Moved = true
	_, angle := t.Classify(p)
	m := rule.RotationFactor(rule.WrapAngle(tr.LastAngle - angle))
	tr.LastAngle = angle
	tr.LastPos = p

	if tr.Ring == Inner {
		return t.view.SetOffset(t.view.Offset() * m)
	}
	if !t.view.SetTop(t.view.Top() * m) {
		return false
	}
	// Turning the top ring drags the offset ring with it. A finger holding
	// the inner ring pins it in place instead.
	for _, other := range t.ids() {
		if other == id {
			continue
		}
		if d, ok := t.tracks[other].(*RingDrag); ok && d.Ring == Inner {
			t.view.SetOffset(t.view.Offset() / m)
			break
		}
	}
	return true
}

// Up stops tracking id. A ring drag that never moved is reported as a click on
// the ring under the release point. Releasing one finger of a pinch leaves
// the other dragging the ring under it.
func (t *Tracker) Up(id PointerID, p Point) (Click, bool) {
	tr, ok := t.tracks[id]
	if !ok {
		return Click{}, false
	}
	if t.capture != nil {
		t.capture.Release(id)
	}
	delete(t.tracks, id)

	switch tr := tr.(type) {
	case *RingDrag:
		if !tr.Moved {
			ring, _ := t.Classify(p)
			return Click{Ring: ring, At: p}, true
		}
	case *PinchGesture:
		if partner, ok := t.tracks[tr.Partner].(*PinchGesture); ok {
			ring, angle := t.Classify(partner.LastPos)
			t.tracks[tr.Partner] = &RingDrag{Ring: ring, LastAngle: angle, LastPos: partner.LastPos, Moved: true}
			t.log.Debug("pinch ended", "pointer", id, "survivor", tr.Partner, "ring", ring)
		}
	}
	return Click{}, false
}

// Cancel drops every tracked pointer without producing clicks.
func (t *Tracker) Cancel() {
	for _, id := range t.ids() {
		if t.capture != nil {
			t.capture.Release(id)
		}
		delete(t.tracks, id)
	}
}
