package testing

import (
	"time"

	"github.com/go-drift/drawer/pkg/gestures"
	"github.com/go-drift/drawer/pkg/graphics"
)

// nextPointerID is incremented for each new pointer to avoid collisions.
var nextPointerID int64

func allocPointerID() int64 {
	nextPointerID++
	return nextPointerID
}

// TapAt simulates a tap at pos.
func (t *DrawerTester) TapAt(pos graphics.Offset) {
	id := allocPointerID()
	t.SendPointerDown(pos, id)
	t.SendPointerUp(pos, id)
}

// Drag simulates a drag starting at the center of the content pane.
func (t *DrawerTester) Drag(delta graphics.Offset) {
	t.DragFrom(t.ContentCenter(), delta)
}

// DragFrom simulates a drag from start by delta in a single move.
func (t *DrawerTester) DragFrom(start, delta graphics.Offset) {
	t.DragSteps(start, delta, 1)
}

// DragSteps simulates a drag from start by delta split into steps equal
// moves, without advancing the clock.
func (t *DrawerTester) DragSteps(start, delta graphics.Offset, steps int) {
	id := allocPointerID()
	t.SendPointerDown(start, id)
	end := t.moveSteps(id, start, delta, steps, 0)
	t.SendPointerUp(end, id)
}

// Fling simulates a fast drag from start by delta: ten moves one frame apart,
// so the drag helper sees a velocity.
func (t *DrawerTester) Fling(start, delta graphics.Offset) {
	id := allocPointerID()
	t.SendPointerDown(start, id)
	end := t.moveSteps(id, start, delta, 10, frameDuration)
	t.SendPointerUp(end, id)
}

// Path sends a down at the first point, moves through the rest, and lifts
// at the last. Points after the first are absolute positions.
func (t *DrawerTester) Path(points ...graphics.Offset) {
	if len(points) == 0 {
		return
	}
	id := allocPointerID()
	t.SendPointerDown(points[0], id)
	for _, p := range points[1:] {
		t.SendPointerMove(p, id)
	}
	t.SendPointerUp(points[len(points)-1], id)
}

func (t *DrawerTester) moveSteps(id int64, start, delta graphics.Offset, steps int, gap time.Duration) graphics.Offset {
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		if gap > 0 {
			t.clock.Advance(gap)
		}
		t.SendPointerMove(graphics.Offset{X: start.X + delta.X*frac, Y: start.Y + delta.Y*frac}, id)
	}
	return graphics.Offset{X: start.X + delta.X, Y: start.Y + delta.Y}
}

// ContentCenter returns the center of the content pane in display
// coordinates.
func (t *DrawerTester) ContentCenter() graphics.Offset {
	b := t.drawer.Content().Bounds()
	return graphics.Offset{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// SendPointerDown sends a pointer-down event at pos.
func (t *DrawerTester) SendPointerDown(pos graphics.Offset, pointerID int64) bool {
	t.pointers[pointerID] = pos
	return t.sendPointer(gestures.PointerEvent{
		PointerID: pointerID,
		Position:  pos,
		Phase:     gestures.PointerPhaseDown,
	})
}

// SendPointerMove sends a pointer-move event at pos.
func (t *DrawerTester) SendPointerMove(pos graphics.Offset, pointerID int64) bool {
	return t.sendPointer(gestures.PointerEvent{
		PointerID: pointerID,
		Position:  pos,
		Delta:     t.advancePointer(pointerID, pos),
		Phase:     gestures.PointerPhaseMove,
	})
}

// SendPointerUp sends a pointer-up event at pos.
func (t *DrawerTester) SendPointerUp(pos graphics.Offset, pointerID int64) bool {
	delta := t.advancePointer(pointerID, pos)
	delete(t.pointers, pointerID)
	return t.sendPointer(gestures.PointerEvent{
		PointerID: pointerID,
		Position:  pos,
		Delta:     delta,
		Phase:     gestures.PointerPhaseUp,
	})
}

// SendPointerCancel sends a pointer-cancel event.
func (t *DrawerTester) SendPointerCancel(pointerID int64) bool {
	pos := t.pointers[pointerID]
	delete(t.pointers, pointerID)
	return t.sendPointer(gestures.PointerEvent{
		PointerID: pointerID,
		Position:  pos,
		Phase:     gestures.PointerPhaseCancel,
	})
}

func (t *DrawerTester) advancePointer(pointerID int64, pos graphics.Offset) graphics.Offset {
	prev, ok := t.pointers[pointerID]
	t.pointers[pointerID] = pos
	if !ok {
		return graphics.Offset{}
	}
	return graphics.Offset{X: pos.X - prev.X, Y: pos.Y - prev.Y}
}

// sendPointer routes ev the way a host does: the drawer sees it first as an
// interception candidate, then as a touch event. It returns the interception
// result.
func (t *DrawerTester) sendPointer(ev gestures.PointerEvent) bool {
	captured := t.drawer.ShouldCapture(ev)
	t.drawer.OnTouchEvent(ev)
	return captured
}
