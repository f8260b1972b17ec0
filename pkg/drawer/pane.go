package drawer

import (
	"fmt"

	"github.com/go-drift/drawer/pkg/graphics"
)

// Role identifies a pane within the drawer.
type Role int

const (
	// RoleMenu is the side panel revealed by dragging.
	RoleMenu Role = iota
	// RoleContent is the main panel the user drags.
	RoleContent
)

func (r Role) String() string {
	switch r {
	case RoleMenu:
		return "menu"
	case RoleContent:
		return "content"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Painter draws a pane's own content. The canvas origin is the pane's
// top-left corner.
type Painter func(canvas graphics.Canvas, size graphics.Size)

// Pane is one of the two children of a drawer. Its size is fixed at creation;
// its position is owned by the drawer once attached.
type Pane struct {
	// Name labels the pane in logs and diagnostics.
	Name string
	// Painter draws the pane. Nil panes draw nothing.
	Painter Painter

	width  int
	height int
	left   int
	top    int
	role   Role
}

// NewPane creates a pane of the given size at the origin.
func NewPane(name string, width, height int, painter Painter) *Pane {
	return &Pane{Name: name, Painter: painter, width: width, height: height}
}

// Role returns the role assigned at attach time.
func (p *Pane) Role() Role { return p.role }

// Width returns the pane width in pixels.
func (p *Pane) Width() int { return p.width }

// Height returns the pane height in pixels.
func (p *Pane) Height() int { return p.height }

// Left returns the left edge in container coordinates.
func (p *Pane) Left() int { return p.left }

// Top returns the top edge in container coordinates.
func (p *Pane) Top() int { return p.top }

// Bounds returns the pane rectangle in container coordinates.
func (p *Pane) Bounds() graphics.Rect {
	return graphics.RectFromInts(p.left, p.top, p.left+p.width, p.top+p.height)
}

// OffsetLeftAndRight moves the pane horizontally by dx.
func (p *Pane) OffsetLeftAndRight(dx int) { p.left += dx }

// OffsetTopAndBottom moves the pane vertically by dy.
func (p *Pane) OffsetTopAndBottom(dy int) { p.top += dy }

// SetBounds positions the pane at the rectangle declared by the geometry model.
func (p *Pane) SetBounds(r graphics.Rect) {
	p.left = int(r.Left)
	p.top = int(r.Top)
	p.width = int(r.Width())
	p.height = int(r.Height())
}

// Paint draws the pane at its current position.
func (p *Pane) Paint(canvas graphics.Canvas) {
	if p.Painter == nil {
		return
	}
	canvas.Save()
	canvas.Translate(float64(p.left), float64(p.top))
	p.Painter(canvas, graphics.Size{Width: float64(p.width), Height: float64(p.height)})
	canvas.Restore()
}

func (p *Pane) String() string {
	return fmt.Sprintf("%s(%s %dx%d @%d,%d)", p.role, p.Name, p.width, p.height, p.left, p.top)
}
