// Package raster paints drawer frames into images and writes them as PNG.
package raster

import (
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/drawer/pkg/graphics"
)

type state struct {
	dx, dy float64
	clip   image.Rectangle
}

// Canvas implements graphics.Canvas over an RGBA image. Rectangles are
// composited with source-over; text uses a fixed 7x13 bitmap face.
type Canvas struct {
	img   *image.RGBA
	face  font.Face
	cur   state
	stack []state
}

// NewCanvas allocates a transparent width x height canvas.
func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Canvas{
		img:  img,
		face: basicfont.Face7x13,
		cur:  state{clip: img.Bounds()},
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Reset clears the image to transparent and drops saved state.
func (c *Canvas) Reset() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	c.cur = state{clip: c.img.Bounds()}
	c.stack = c.stack[:0]
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.cur = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) Translate(dx, dy float64) {
	c.cur.dx += dx
	c.cur.dy += dy
}

func (c *Canvas) ClipRect(rect graphics.Rect) {
	c.cur.clip = c.cur.clip.Intersect(c.device(rect))
}

func (c *Canvas) Clear(color graphics.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color), image.Point{}, draw.Src)
}

func (c *Canvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	r := c.device(rect).Intersect(c.cur.clip)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(paint.Color), image.Point{}, draw.Over)
}

func (c *Canvas) DrawText(text string, position graphics.Offset, color graphics.Color) {
	if c.cur.clip.Empty() {
		return
	}
	dst, ok := c.img.SubImage(c.cur.clip).(*image.RGBA)
	if !ok {
		return
	}
	x := int(math.Round(position.X + c.cur.dx))
	y := int(math.Round(position.Y + c.cur.dy))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color),
		Face: c.face,
		Dot:  fixed.P(x, y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func (c *Canvas) Size() graphics.Size {
	b := c.img.Bounds()
	return graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// TextWidth returns the advance of text in the canvas face, in pixels.
func (c *Canvas) TextWidth(text string) int {
	return font.MeasureString(c.face, text).Ceil()
}

// device converts a rectangle in the current coordinate space to image
// pixels. Edges are floored so that adjacent rectangles do not overlap.
func (c *Canvas) device(r graphics.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left+c.cur.dx)),
		int(math.Floor(r.Top+c.cur.dy)),
		int(math.Floor(r.Right+c.cur.dx)),
		int(math.Floor(r.Bottom+c.cur.dy)),
	)
}

// Scaled returns img resized by factor with the given interpolator. A factor
// of 1 returns img unchanged.
func Scaled(img image.Image, factor float64, scaler draw.Scaler) image.Image {
	if factor == 1 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
