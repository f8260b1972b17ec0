package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/drawer/pkg/graphics"
)

// DisplayOp represents a recorded canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// RecordingCanvas implements graphics.Canvas and records every call as a
// DisplayOp.
type RecordingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

// NewRecordingCanvas returns an empty recording canvas of the given size.
func NewRecordingCanvas(size graphics.Size) *RecordingCanvas {
	return &RecordingCanvas{size: size}
}

// Ops returns the operations recorded so far.
func (c *RecordingCanvas) Ops() []DisplayOp {
	return c.ops
}

// Reset discards recorded operations.
func (c *RecordingCanvas) Reset() {
	c.ops = nil
}

// OpNames returns the operation names in order.
func (c *RecordingCanvas) OpNames() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Op
	}
	return names
}

// Find returns the recorded operations with the given name.
func (c *RecordingCanvas) Find(name string) []DisplayOp {
	var out []DisplayOp
	for _, op := range c.ops {
		if op.Op == name {
			out = append(out, op)
		}
	}
	return out
}

func (c *RecordingCanvas) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *RecordingCanvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: map[string]any{"dx": round2(dx), "dy": round2(dy)},
	})
}

func (c *RecordingCanvas) ClipRect(rect graphics.Rect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clipRect",
		Params: map[string]any{"rect": serializeRect(rect)},
	})
}

func (c *RecordingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: map[string]any{"color": serializeColor(color)},
	})
}

func (c *RecordingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawRect",
		Params: map[string]any{"rect": serializeRect(rect), "color": serializeColor(paint.Color)},
	})
}

func (c *RecordingCanvas) DrawText(text string, position graphics.Offset, color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawText",
		Params: map[string]any{
			"text":  text,
			"x":     round2(position.X),
			"y":     round2(position.Y),
			"color": serializeColor(color),
		},
	})
}

func (c *RecordingCanvas) Size() graphics.Size {
	return c.size
}

func serializeRect(r graphics.Rect) map[string]any {
	return map[string]any{
		"l": round2(r.Left),
		"t": round2(r.Top),
		"r": round2(r.Right),
		"b": round2(r.Bottom),
	}
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
