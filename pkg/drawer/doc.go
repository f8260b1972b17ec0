// Package drawer implements a slide-out drawer: a container with a fixed-width
// menu pane underneath a content pane. Dragging the content pane to the right
// reveals the menu, which follows with a parallax lag, while a shadow over the
// revealed area darkens in proportion to the reveal distance. On release the
// content snaps open or closed depending on where it is and which way it was
// last moving.
//
// # Host contract
//
// The drawer is driven entirely by its host, from one goroutine:
//
//	d, err := drawer.New(host, []*drawer.Pane{menu, content})
//	if err != nil {
//	    return err
//	}
//
//	// for every pointer event
//	d.ShouldCapture(ev) // true once the drawer owns the gesture
//	d.OnTouchEvent(ev)
//
//	// on every redraw the drawer requested
//	d.OnFrameTick()
//	d.Paint(canvas)
//
// The drawer asks for redraws through [Host.RequestRedraw] while it settles
// toward the open or closed position; there are no goroutines or timers.
//
// # Saved state
//
// [Drawer.SaveState] encodes the open/closed state behind an opaque payload
// owned by the host. [Drawer.RestoreState] replays the open transition when
// the saved state was open.
package drawer

import "log"

// DebugMode enables trace logging of captures, releases and state changes.
var DebugMode = false

func debugf(format string, args ...any) {
	if DebugMode {
		log.Printf("drawer: "+format, args...)
	}
}
