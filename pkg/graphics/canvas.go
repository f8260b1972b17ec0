package graphics

// Paint describes how a shape is filled.
type Paint struct {
	Color Color
}

// DefaultPaint returns an opaque black fill.
func DefaultPaint() Paint {
	return Paint{Color: ColorBlack}
}

// Canvas receives drawing commands for one frame.
//
// Implementations keep a stack of transform and clip state; Save pushes it and
// Restore pops it. Coordinates passed to drawing calls are in the current
// (translated) coordinate space.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()

	// Restore pops the most recent transform and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawText draws a single line of text with its top-left corner at position.
	DrawText(text string, position Offset, color Color)

	// Size returns the size of the drawing surface.
	Size() Size
}
