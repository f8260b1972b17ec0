package drawer

import (
	"fmt"

	"github.com/go-drift/drawer/pkg/gestures"
)

// Direction is the direction of the most recent content movement.
type Direction int

const (
	// LeftToRight means the content last moved right, revealing the menu.
	LeftToRight Direction = iota
	// RightToLeft means the content last moved left (or not at all).
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ReleaseOpens decides the snap on release. After a left-to-right drag the
// drawer opens once the content is TriggerDistance past closed; after a
// right-to-left drag it stays open unless the content is TriggerDistance
// short of open. Either way a short drag is undone and a longer one finishes
// in the direction it was heading.
func ReleaseOpens(dir Direction, contentLeft, menuWidth, trigger int) bool {
	if dir == LeftToRight {
		return contentLeft >= trigger
	}
	return contentLeft >= menuWidth-trigger
}

// GestureController is the drag policy of a drawer. It implements
// gestures.DragCallback for the drawer's drag helper.
type GestureController struct {
	d         *Drawer
	direction Direction
	shadowHex string
}

var (
	_ gestures.DragCallback = (*GestureController)(nil)
	_ gestures.DragRanger   = (*GestureController)(nil)
)

// Direction returns the direction of the last movement.
func (c *GestureController) Direction() Direction { return c.direction }

// ShadowOpacity returns the shadow opacity computed at the last movement.
func (c *GestureController) ShadowOpacity() string { return c.shadowHex }

// TryCapture accepts the content pane. A touch on the menu is re-targeted:
// the content pane is captured in its place and the menu itself refused.
func (c *GestureController) TryCapture(child gestures.Draggable, pointerID int64) bool {
	switch child {
	case gestures.Draggable(c.d.menu):
		c.d.helper.CaptureChild(c.d.content, pointerID)
		return false
	case gestures.Draggable(c.d.content):
		return true
	}
	return false
}

// OnCaptured starts a drag session.
func (c *GestureController) OnCaptured(child gestures.Draggable, pointerID int64) {
	if c.d.compositor.State() == MenuOpened {
		c.direction = RightToLeft
	} else {
		c.direction = LeftToRight
	}
	debugf("captured pointer %d at left=%d", pointerID, child.Left())
}

// ClampHorizontal keeps the content within [0, menuWidth].
func (c *GestureController) ClampHorizontal(_ gestures.Draggable, left, _ int) int {
	return c.d.geometry.ClampContent(left)
}

// HorizontalDragRange is the menu width.
func (c *GestureController) HorizontalDragRange(gestures.Draggable) int {
	return c.d.layout.MenuWidth
}

// OnPositionChanged records the direction and lays the menu out at its
// parallax position.
func (c *GestureController) OnPositionChanged(_ gestures.Draggable, left, _, dx, _ int) {
	if dx > 0 {
		c.direction = LeftToRight
	} else {
		c.direction = RightToLeft
	}
	c.relayout(left)
}

// OnReleased snaps open or closed. Velocity does not take part.
func (c *GestureController) OnReleased(child gestures.Draggable, xvel, _ float64) {
	left := child.Left()
	open := ReleaseOpens(c.direction, left, c.d.layout.MenuWidth, c.d.opts.TriggerDistance)
	debugf("released at left=%d dir=%s xvel=%.0f open=%v", left, c.direction, xvel, open)
	if open {
		c.d.Open()
	} else {
		c.d.Close()
	}
}

func (c *GestureController) relayout(contentLeft int) {
	m := c.d.menu
	c.shadowHex = c.d.geometry.ShadowOpacityHex(contentLeft)
	m.SetBounds(c.d.geometry.MenuRect(contentLeft, m.Top(), m.Height()))
}
