package drawer

import (
	"github.com/go-drift/drawer/pkg/graphics"
)

// CompositorState owns the resting open/closed state and draws the frame.
type CompositorState struct {
	d        *Drawer
	state    MenuState
	onChange func(MenuState)
}

// State returns the resting state. It is only authoritative when no drag or
// settle is in progress.
func (c *CompositorState) State() MenuState { return c.state }

// UpdateState derives the resting state from the content offset: 0 is
// closed, menuWidth is open, anything else is in transit and leaves the state
// unchanged. It reports whether the state changed.
func (c *CompositorState) UpdateState() bool {
	next := c.state
	switch c.d.content.Left() {
	case 0:
		next = MenuClosed
	case c.d.layout.MenuWidth:
		next = MenuOpened
	}
	if next == c.state {
		return false
	}
	c.state = next
	debugf("state %s", next)
	if c.onChange != nil {
		c.onChange(next)
	}
	return true
}

// Paint draws one frame: the menu clipped to the strip left of the content,
// the content, then the shadow over everything right of the content edge.
func (c *CompositorState) Paint(canvas graphics.Canvas) {
	g := c.d.geometry
	left := c.d.content.Left()

	canvas.Save()
	canvas.ClipRect(g.MenuClip(left, c.d.content.Height()))
	c.d.menu.Paint(canvas)
	canvas.Restore()

	c.d.content.Paint(canvas)

	canvas.DrawRect(g.ShadowRect(left), graphics.Paint{Color: g.ShadowColor(left)})
}
