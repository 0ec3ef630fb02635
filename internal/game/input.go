package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/circular-rule/internal/gesture"
)

// mousePointer is the id of the left mouse button. Touch ids are never
// negative.
const mousePointer gesture.PointerID = -1

type pointerSink interface {
	PointerDown(id gesture.PointerID, p gesture.Point)
	PointerMove(id gesture.PointerID, p gesture.Point)
	PointerUp(id gesture.PointerID, p gesture.Point)
}

// pointerInput polls ebiten's mouse and touch state once per tick and turns
// it into pointer events. Captured pointers keep receiving moves wherever
// they are, since ebiten reports positions outside the window too.
type pointerInput struct {
	captured map[gesture.PointerID]bool
	last     map[gesture.PointerID]gesture.Point
	touches  []ebiten.TouchID
}

func newPointerInput() *pointerInput {
	return &pointerInput{
		captured: map[gesture.PointerID]bool{},
		last:     map[gesture.PointerID]gesture.Point{},
	}
}

func (in *pointerInput) Capture(id gesture.PointerID) { in.captured[id] = true }

func (in *pointerInput) Release(id gesture.PointerID) {
	delete(in.captured, id)
	delete(in.last, id)
}

func point(x, y int) gesture.Point {
	return gesture.Point{X: float64(x), Y: float64(y)}
}

func (in *pointerInput) poll(sink pointerSink) {
	// mouse
	cursor := point(ebiten.CursorPosition())
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.last[mousePointer] = cursor
		sink.PointerDown(mousePointer, cursor)
	}
	in.move(sink, mousePointer, cursor)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		sink.PointerUp(mousePointer, cursor)
	}

	// touches
	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	for _, t := range in.touches {
		id := gesture.PointerID(t)
		p := point(ebiten.TouchPosition(t))
		in.last[id] = p
		sink.PointerDown(id, p)
	}
	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	for _, t := range in.touches {
		in.move(sink, gesture.PointerID(t), point(ebiten.TouchPosition(t)))
	}
	in.touches = inpututil.AppendJustReleasedTouchIDs(in.touches[:0])
	for _, t := range in.touches {
		sink.PointerUp(gesture.PointerID(t), point(inpututil.TouchPositionInPreviousTick(t)))
	}
}

func (in *pointerInput) move(sink pointerSink, id gesture.PointerID, p gesture.Point) {
	if !in.captured[id] || in.last[id] == p {
		return
	}
	in.last[id] = p
	sink.PointerMove(id, p)
}
