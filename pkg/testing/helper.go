package testing

import (
	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/gestures"
)

// SlideRequest is one SmoothSlideTo call seen by a RecordingHelper.
type SlideRequest struct {
	Left    int
	Top     int
	Started bool
}

// RecordingHelper wraps the default drag helper and records slide requests.
type RecordingHelper struct {
	*gestures.DragHelper
	Slides []SlideRequest
}

// Option installs the recording helper in a drawer.
func (h *RecordingHelper) Option() drawer.Option {
	return drawer.WithDragHelper(func(cb gestures.DragCallback, sensitivity float64, children ...gestures.Draggable) drawer.DragHelper {
		h.DragHelper = gestures.NewDragHelper(cb, sensitivity, children...)
		return h
	})
}

// SmoothSlideTo records the request and forwards it.
func (h *RecordingHelper) SmoothSlideTo(child gestures.Draggable, left, top int) bool {
	started := h.DragHelper.SmoothSlideTo(child, left, top)
	h.Slides = append(h.Slides, SlideRequest{Left: left, Top: top, Started: started})
	return started
}

// Targets returns the distinct left targets of the started slides, in order.
func (h *RecordingHelper) Targets() []int {
	var out []int
	for _, s := range h.Slides {
		if !s.Started {
			continue
		}
		if len(out) == 0 || out[len(out)-1] != s.Left {
			out = append(out, s.Left)
		}
	}
	return out
}
