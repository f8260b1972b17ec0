// Package animation provides the timing primitives used to settle a dragged
// pane after release.
//
// There is no animation thread. A [Slide] records where it started, where it
// is heading and when it began; the owner polls it once per frame with
// [Slide.Compute] and reads the interpolated position back:
//
//	slide := animation.NewSlide()
//	slide.Start(pane.Left(), pane.Top(), target-pane.Left(), 0,
//	    animation.SettleDuration(target-pane.Left(), width, 0, 0))
//
//	// on every frame
//	if slide.Compute() {
//	    pane.OffsetLeftAndRight(slide.CurrX() - pane.Left())
//	    host.RequestRedraw()
//	}
//
// Time comes from a package [Clock] that tests replace with [SetClock].
package animation

import "time"

// Default settle timing.
const (
	// BaseSettleDuration is the duration of a slide across the full drag range.
	BaseSettleDuration = 256 * time.Millisecond
	// MaxSettleDuration caps any computed settle duration.
	MaxSettleDuration = 600 * time.Millisecond
)

// SettleDuration returns the time a slide of distance pixels should take when
// the drag range is span pixels wide. Short slides finish faster than long
// ones; a zero base or limit selects the package defaults.
func SettleDuration(distance, span int, base, limit time.Duration) time.Duration {
	if base <= 0 {
		base = BaseSettleDuration
	}
	if limit <= 0 {
		limit = MaxSettleDuration
	}
	if distance < 0 {
		distance = -distance
	}
	if distance == 0 {
		return 0
	}
	if span <= 0 {
		return min(base, limit)
	}
	d := time.Duration((float64(distance)/float64(span) + 1) * float64(base))
	return min(d, limit)
}
