// Package gestures turns a raw pointer-event stream into horizontal drags of
// a captured pane, and settles that pane at a target position after release.
//
// The central type is [DragHelper]. A host forwards every pointer event to
// [DragHelper.ShouldIntercept] (to decide whether the drag should steal the
// stream from children) and to [DragHelper.ProcessEvent]. Policy decisions
// (which pane may be captured, how far it may move, where it goes on release)
// are delegated to a [DragCallback].
package gestures

import (
	"fmt"

	"github.com/go-drift/drawer/pkg/graphics"
)

// DefaultTouchSlop is the distance in pixels a pointer must travel before a
// move is treated as a drag, at a sensitivity of 1.0.
const DefaultTouchSlop = 8.0

// PointerPhase is the lifecycle phase of a pointer event.
type PointerPhase int

const (
	// PointerPhaseDown is the first contact of a pointer.
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove reports a pointer moving while in contact.
	PointerPhaseMove
	// PointerPhaseUp reports a pointer lifting.
	PointerPhaseUp
	// PointerPhaseCancel reports the host taking the pointer away.
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerEvent is a single event of the host's pointer stream.
type PointerEvent struct {
	PointerID int64
	Position  graphics.Offset
	// Delta is the movement since the previous event for this pointer, when
	// the host tracks it. DragHelper recomputes deltas itself.
	Delta graphics.Offset
	Phase PointerPhase
}

// Down builds a pointer-down event.
func Down(id int64, x, y float64) PointerEvent {
	return PointerEvent{PointerID: id, Position: graphics.Offset{X: x, Y: y}, Phase: PointerPhaseDown}
}

// Move builds a pointer-move event.
func Move(id int64, x, y float64) PointerEvent {
	return PointerEvent{PointerID: id, Position: graphics.Offset{X: x, Y: y}, Phase: PointerPhaseMove}
}

// Up builds a pointer-up event.
func Up(id int64, x, y float64) PointerEvent {
	return PointerEvent{PointerID: id, Position: graphics.Offset{X: x, Y: y}, Phase: PointerPhaseUp}
}

// Cancel builds a pointer-cancel event.
func Cancel(id int64) PointerEvent {
	return PointerEvent{PointerID: id, Phase: PointerPhaseCancel}
}
