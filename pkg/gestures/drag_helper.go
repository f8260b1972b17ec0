package gestures

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/drawer/pkg/animation"
	"github.com/go-drift/drawer/pkg/graphics"
)

// noPointer marks the absence of an active pointer.
const noPointer int64 = -1

// Draggable is a pane that a DragHelper can move.
type Draggable interface {
	Left() int
	Top() int
	// Bounds is used for hit testing, in the same coordinates as pointer events.
	Bounds() graphics.Rect
	OffsetLeftAndRight(dx int)
	OffsetTopAndBottom(dy int)
}

// DragCallback supplies drag policy to a DragHelper.
type DragCallback interface {
	// TryCapture is asked whether child may be dragged by pointerID.
	// The callback may capture a different pane itself with
	// DragHelper.CaptureChild and return false.
	TryCapture(child Draggable, pointerID int64) bool
	// OnCaptured is called when child becomes the captured pane.
	OnCaptured(child Draggable, pointerID int64)
	// ClampHorizontal returns the allowed left edge for a proposed left edge.
	ClampHorizontal(child Draggable, left, dx int) int
	// OnPositionChanged is called after the captured pane moved, by drag or settle.
	OnPositionChanged(child Draggable, left, top, dx, dy int)
	// OnReleased is called when the pointer dragging child lifts or is
	// cancelled. Velocities are in pixels per second; a cancel reports zero.
	OnReleased(child Draggable, xvel, yvel float64)
}

// DragRanger is an optional DragCallback extension reporting how far a pane
// can travel horizontally. A zero range disables slop-based capture; the
// range also scales settle durations.
type DragRanger interface {
	HorizontalDragRange(child Draggable) int
}

// DragState is the state of a DragHelper.
type DragState int

const (
	// StateIdle means no pane is being dragged or settled.
	StateIdle DragState = iota
	// StateDragging means a pointer is moving the captured pane.
	StateDragging
	// StateSettling means the captured pane is sliding toward a target.
	StateSettling
)

func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSettling:
		return "settling"
	default:
		return fmt.Sprintf("DragState(%d)", int(s))
	}
}

// DragHelper tracks one pointer at a time, captures a pane once the callback
// agrees, moves it horizontally with clamping and settles it with a [animation.Slide].
//
// DragHelper is not safe for concurrent use; the host delivers events and
// frame ticks from one goroutine.
type DragHelper struct {
	// SettleBase and SettleLimit tune settle durations; zero selects
	// animation.BaseSettleDuration and animation.MaxSettleDuration.
	SettleBase  time.Duration
	SettleLimit time.Duration

	callback DragCallback
	children []Draggable // bottom to top
	slop     float64
	state    DragState
	slide    *animation.Slide

	captured      Draggable
	activePointer int64
	tracking      int64 // pointer seen going down, captured or not
	initial       graphics.Offset
	last          graphics.Offset
	lastTime      time.Time
	velocity      graphics.Offset // smoothed, pixels/second
}

// NewDragHelper returns a helper for children, listed bottom to top. The
// touch slop is DefaultTouchSlop divided by sensitivity, so larger
// sensitivities start drags sooner; a non-positive sensitivity means 1.0.
func NewDragHelper(callback DragCallback, sensitivity float64, children ...Draggable) *DragHelper {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return &DragHelper{
		callback:      callback,
		children:      children,
		slop:          DefaultTouchSlop / sensitivity,
		slide:         animation.NewSlide(),
		activePointer: noPointer,
		tracking:      noPointer,
	}
}

// State returns the current drag state.
func (h *DragHelper) State() DragState { return h.state }

// Captured returns the captured pane, or nil.
func (h *DragHelper) Captured() Draggable { return h.captured }

// ActivePointer returns the pointer dragging the captured pane, or -1.
func (h *DragHelper) ActivePointer() int64 { return h.activePointer }

// TouchSlop returns the drag threshold in pixels.
func (h *DragHelper) TouchSlop() float64 { return h.slop }

// TopChildUnder returns the topmost child whose bounds contain pos.
func (h *DragHelper) TopChildUnder(pos graphics.Offset) Draggable {
	for i := len(h.children) - 1; i >= 0; i-- {
		if c := h.children[i]; c != nil && c.Bounds().Contains(pos) {
			return c
		}
	}
	return nil
}

// CaptureChild makes child the captured pane for pointerID and enters the
// dragging state, interrupting any settle in progress.
func (h *DragHelper) CaptureChild(child Draggable, pointerID int64) {
	h.captured = child
	h.activePointer = pointerID
	h.callback.OnCaptured(child, pointerID)
	h.setState(StateDragging)
}

// ShouldIntercept inspects ev and reports whether a drag is in progress. A
// down on the pane being settled captures it at once; otherwise capture is
// deferred until a move crosses the touch slop along the horizontal axis.
func (h *DragHelper) ShouldIntercept(ev PointerEvent) bool {
	if h.state == StateDragging && ev.Phase == PointerPhaseMove {
		// Already ours; ProcessEvent does the moving.
		return true
	}
	switch ev.Phase {
	case PointerPhaseDown:
		if h.ownedByOtherPointer(ev) {
			break
		}
		h.releaseStaleDrag()
		h.resetTracking()
		h.saveInitial(ev)
		if h.state == StateSettling {
			if child := h.TopChildUnder(ev.Position); child != nil && child == h.captured {
				h.tryCaptureForDrag(child, ev.PointerID)
			}
		}

	case PointerPhaseMove:
		if ev.PointerID != h.tracking {
			break
		}
		if h.state != StateDragging && h.crossedSlop(ev.Position) {
			h.tryCaptureForDrag(h.TopChildUnder(h.initial), ev.PointerID)
		}
		h.saveLast(ev)

	case PointerPhaseUp, PointerPhaseCancel:
		if ev.PointerID == h.tracking && h.state != StateDragging {
			h.resetTracking()
		}
	}
	return h.state == StateDragging
}

// ProcessEvent feeds ev into the drag state machine. Events for pointers
// other than the tracked one are ignored.
func (h *DragHelper) ProcessEvent(ev PointerEvent) {
	switch ev.Phase {
	case PointerPhaseDown:
		if h.ownedByOtherPointer(ev) || h.capturedOnDown(ev) {
			return
		}
		h.releaseStaleDrag()
		h.resetTracking()
		h.saveInitial(ev)
		// The host already routed this stream to us, so there is no reason
		// to wait for the slop before capturing.
		h.tryCaptureForDrag(h.TopChildUnder(ev.Position), ev.PointerID)

	case PointerPhaseMove:
		if ev.PointerID != h.tracking {
			return
		}
		if h.state == StateDragging {
			if ev.PointerID != h.activePointer {
				return
			}
			dx := int(math.Round(ev.Position.X - h.last.X))
			h.updateVelocity(ev)
			h.dragTo(h.captured.Left()+dx, dx)
			h.saveLast(ev)
			return
		}
		if h.crossedSlop(ev.Position) {
			h.tryCaptureForDrag(h.TopChildUnder(h.initial), ev.PointerID)
		}
		h.saveLast(ev)

	case PointerPhaseUp:
		if ev.PointerID != h.tracking {
			return
		}
		if h.state == StateDragging && ev.PointerID == h.activePointer {
			h.updateVelocity(ev)
			h.release(h.velocity.X, h.velocity.Y)
		}
		h.resetTracking()

	case PointerPhaseCancel:
		if ev.PointerID != h.tracking {
			return
		}
		if h.state == StateDragging {
			h.release(0, 0)
		}
		h.resetTracking()
	}
}

// SmoothSlideTo starts settling child toward (left, top). It returns false,
// and leaves the helper idle, when child is already there.
func (h *DragHelper) SmoothSlideTo(child Draggable, left, top int) bool {
	h.captured = child
	h.activePointer = noPointer

	dx := left - child.Left()
	dy := top - child.Top()
	if dx == 0 && dy == 0 {
		h.slide.Abort()
		h.setState(StateIdle)
		return false
	}

	span := 0
	if r, ok := h.callback.(DragRanger); ok {
		span = r.HorizontalDragRange(child)
	}
	duration := animation.SettleDuration(dx, span, h.SettleBase, h.SettleLimit)
	h.slide.Start(child.Left(), child.Top(), dx, dy, duration)
	h.setState(StateSettling)
	return true
}

// ContinueSettling advances a settle by one frame and reports whether more
// frames are needed. Hosts call it from their redraw callback until it
// returns false.
func (h *DragHelper) ContinueSettling() bool {
	if h.state != StateSettling {
		return false
	}

	keepGoing := h.slide.Compute()
	x, y := h.slide.CurrX(), h.slide.CurrY()
	dx := x - h.captured.Left()
	dy := y - h.captured.Top()
	if dx != 0 {
		h.captured.OffsetLeftAndRight(dx)
	}
	if dy != 0 {
		h.captured.OffsetTopAndBottom(dy)
	}
	if dx != 0 || dy != 0 {
		h.callback.OnPositionChanged(h.captured, x, y, dx, dy)
	}

	if keepGoing && x == h.slide.FinalX() && y == h.slide.FinalY() {
		h.slide.Abort()
		keepGoing = false
	}
	if !keepGoing {
		h.setState(StateIdle)
	}
	return h.state == StateSettling
}

// SettleTarget returns the left edge the current settle is heading to.
// The second result is false when the helper is not settling.
func (h *DragHelper) SettleTarget() (int, bool) {
	if h.state != StateSettling {
		return 0, false
	}
	return h.slide.FinalX(), true
}

func (h *DragHelper) tryCaptureForDrag(child Draggable, pointerID int64) bool {
	if child == nil {
		return false
	}
	if child == h.captured && h.activePointer == pointerID && h.state == StateDragging {
		return true
	}
	if h.callback.TryCapture(child, pointerID) {
		h.CaptureChild(child, pointerID)
		return true
	}
	return false
}

func (h *DragHelper) dragTo(left, dx int) {
	oldLeft := h.captured.Left()
	clamped := h.callback.ClampHorizontal(h.captured, left, dx)
	if clamped == oldLeft {
		return
	}
	h.captured.OffsetLeftAndRight(clamped - oldLeft)
	h.callback.OnPositionChanged(h.captured, clamped, h.captured.Top(), clamped-oldLeft, 0)
}

func (h *DragHelper) release(xvel, yvel float64) {
	h.callback.OnReleased(h.captured, xvel, yvel)
	// The callback may have started a settle; only fall back to idle if not.
	if h.state == StateDragging {
		h.setState(StateIdle)
	}
}

// crossedSlop reports whether the tracked pointer moved past the slop with
// horizontal motion dominant.
func (h *DragHelper) crossedSlop(pos graphics.Offset) bool {
	if r, ok := h.callback.(DragRanger); ok {
		if child := h.TopChildUnder(h.initial); child == nil || r.HorizontalDragRange(child) <= 0 {
			return false
		}
	}
	dx := math.Abs(pos.X - h.initial.X)
	dy := math.Abs(pos.Y - h.initial.Y)
	return dx > h.slop && dx >= dy
}

func (h *DragHelper) saveInitial(ev PointerEvent) {
	h.tracking = ev.PointerID
	h.initial = ev.Position
	h.last = ev.Position
	h.lastTime = animation.Now()
	h.velocity = graphics.Offset{}
}

func (h *DragHelper) saveLast(ev PointerEvent) {
	h.last = ev.Position
	h.lastTime = animation.Now()
}

// updateVelocity folds the latest movement into the smoothed velocity.
func (h *DragHelper) updateVelocity(ev PointerEvent) {
	dt := animation.Since(h.lastTime).Seconds()
	if dt <= 0 {
		return
	}
	vx := (ev.Position.X - h.last.X) / dt
	vy := (ev.Position.Y - h.last.Y) / dt
	h.velocity.X = h.velocity.X*0.8 + vx*0.2
	h.velocity.Y = h.velocity.Y*0.8 + vy*0.2
}

// ownedByOtherPointer reports whether ev is a down from a second pointer
// while another pointer is dragging. Such a down neither captures nor ends
// the drag.
func (h *DragHelper) ownedByOtherPointer(ev PointerEvent) bool {
	return h.state == StateDragging && ev.PointerID != h.activePointer
}

// capturedOnDown reports whether ShouldIntercept already captured a pane
// for this very down.
func (h *DragHelper) capturedOnDown(ev PointerEvent) bool {
	return h.state == StateDragging && ev.PointerID == h.activePointer &&
		ev.PointerID == h.tracking && ev.Position == h.initial
}

// releaseStaleDrag releases a drag whose pointer went down again without
// reporting up or cancel, so the callback still decides where it rests.
func (h *DragHelper) releaseStaleDrag() {
	if h.state == StateDragging {
		h.release(0, 0)
	}
}

func (h *DragHelper) resetTracking() {
	h.tracking = noPointer
	h.velocity = graphics.Offset{}
	if h.state != StateDragging {
		h.activePointer = noPointer
	}
}

func (h *DragHelper) setState(state DragState) {
	if h.state == state {
		return
	}
	if h.state == StateSettling {
		h.slide.Abort()
	}
	h.state = state
	if state == StateIdle {
		h.captured = nil
		h.activePointer = noPointer
	}
}
