package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/go-drift/drawer/pkg/graphics"
)

// CellSize is the number of drawer pixels one terminal cell stands for.
type CellSize struct {
	W, H int
}

// DefaultCellSize approximates a common terminal font.
var DefaultCellSize = CellSize{W: 8, H: 16}

type cell struct {
	bg    graphics.Color
	fg    graphics.Color
	ch    rune
	width int
}

type canvasState struct {
	dx, dy float64
	clip   graphics.Rect
}

// CellCanvas implements graphics.Canvas on a grid of terminal cells. A cell
// is covered by a rectangle when the cell's center lies inside it; covering
// blends the fill over the cell background.
type CellCanvas struct {
	cols, rows int
	size       CellSize
	cells      []cell
	cur        canvasState
	stack      []canvasState
}

// NewCellCanvas returns a canvas for a cols x rows terminal.
func NewCellCanvas(cols, rows int, size CellSize) *CellCanvas {
	c := &CellCanvas{cols: cols, rows: rows, size: size, cells: make([]cell, cols*rows)}
	c.Reset()
	return c
}

// Reset clears all cells to black and drops saved state.
func (c *CellCanvas) Reset() {
	for i := range c.cells {
		c.cells[i] = cell{bg: graphics.ColorBlack, fg: graphics.ColorWhite, ch: ' ', width: 1}
	}
	c.cur = canvasState{clip: graphics.RectFromInts(0, 0, c.cols*c.size.W, c.rows*c.size.H)}
	c.stack = c.stack[:0]
}

func (c *CellCanvas) Save() {
	c.stack = append(c.stack, c.cur)
}

func (c *CellCanvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.cur = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *CellCanvas) Translate(dx, dy float64) {
	c.cur.dx += dx
	c.cur.dy += dy
}

func (c *CellCanvas) ClipRect(rect graphics.Rect) {
	c.cur.clip = c.cur.clip.Intersect(rect.Translate(c.cur.dx, c.cur.dy))
}

func (c *CellCanvas) Clear(color graphics.Color) {
	for i := range c.cells {
		c.cells[i].bg = color
		c.cells[i].ch = ' '
		c.cells[i].width = 1
	}
}

func (c *CellCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	r := rect.Translate(c.cur.dx, c.cur.dy).Intersect(c.cur.clip)
	if r.IsEmpty() {
		return
	}
	col0, col1 := c.span(r.Left, r.Right, c.size.W, c.cols)
	row0, row1 := c.span(r.Top, r.Bottom, c.size.H, c.rows)
	for y := row0; y < row1; y++ {
		for x := col0; x < col1; x++ {
			cl := &c.cells[y*c.cols+x]
			cl.bg = blend(paint.Color, cl.bg)
			// An opaque fill hides text underneath; a translucent one tints it.
			if paint.Color.Alpha8() == 0xff {
				cl.ch, cl.width = ' ', 1
			} else {
				cl.fg = blend(paint.Color, cl.fg)
			}
		}
	}
}

func (c *CellCanvas) DrawText(text string, position graphics.Offset, color graphics.Color) {
	p := graphics.Offset{X: position.X + c.cur.dx, Y: position.Y + c.cur.dy}
	row := int(math.Floor(p.Y / float64(c.size.H)))
	col := int(math.Floor(p.X / float64(c.size.W)))
	if row < 0 || row >= c.rows {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= c.cols && c.cellInClip(col, row) && c.cellInClip(col+w-1, row) {
			cl := &c.cells[row*c.cols+col]
			cl.ch, cl.fg, cl.width = r, color, w
			for i := 1; i < w; i++ {
				c.cells[row*c.cols+col+i].width = 0
			}
		}
		col += w
	}
}

func (c *CellCanvas) Size() graphics.Size {
	return graphics.Size{Width: float64(c.cols * c.size.W), Height: float64(c.rows * c.size.H)}
}

// Flush copies the cells to the screen.
func (c *CellCanvas) Flush(screen ScreenDriver) {
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			cl := c.cells[y*c.cols+x]
			if cl.width == 0 {
				continue
			}
			style := tcell.StyleDefault.Background(toTcell(cl.bg)).Foreground(toTcell(cl.fg))
			screen.SetContent(x, y, cl.ch, nil, style)
		}
	}
}

// Text returns the characters of row y, for tests and diagnostics.
func (c *CellCanvas) Text(y int) string {
	rs := make([]rune, 0, c.cols)
	for x := 0; x < c.cols; x++ {
		if cl := c.cells[y*c.cols+x]; cl.width > 0 {
			rs = append(rs, cl.ch)
		}
	}
	return string(rs)
}

// Background returns the background color of cell (x, y).
func (c *CellCanvas) Background(x, y int) graphics.Color {
	return c.cells[y*c.cols+x].bg
}

// span returns the cells [first, last) whose centers fall in [lo, hi).
func (c *CellCanvas) span(lo, hi float64, unit, limit int) (int, int) {
	u := float64(unit)
	first := int(math.Ceil(lo/u - 0.5))
	last := int(math.Ceil(hi/u - 0.5))
	return max(first, 0), min(last, limit)
}

func (c *CellCanvas) cellInClip(col, row int) bool {
	center := graphics.Offset{
		X: (float64(col) + 0.5) * float64(c.size.W),
		Y: (float64(row) + 0.5) * float64(c.size.H),
	}
	return c.cur.clip.Contains(center)
}

// blend composites src over an opaque dst.
func blend(src, dst graphics.Color) graphics.Color {
	a := float64(src.Alpha8()) / 255
	if a == 1 {
		return src
	}
	out := toColorful(dst).BlendRgb(toColorful(src), a)
	r, g, b := out.RGB255()
	return graphics.RGB(r, g, b)
}

func toColorful(c graphics.Color) colorful.Color {
	r, g, b, _ := c.RGBA8Components()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func toTcell(c graphics.Color) tcell.Color {
	r, g, b, _ := c.RGBA8Components()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
