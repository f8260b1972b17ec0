package animation

import (
	"fmt"
	"math"
	"time"
)

// SlideStatus represents the current state of a slide.
//
//	          Start()              duration elapsed
//	Idle ──────────────► Running ───────────────────► Finished
//	  ▲                     │
//	  └──── Abort() ────────┘
type SlideStatus int

const (
	// SlideIdle means no slide has been started since the last Abort.
	SlideIdle SlideStatus = iota
	// SlideRunning means the slide is interpolating toward its final position.
	SlideRunning
	// SlideFinished means the slide reached its final position.
	SlideFinished
)

// String returns a human-readable representation of the slide status.
func (s SlideStatus) String() string {
	switch s {
	case SlideIdle:
		return "idle"
	case SlideRunning:
		return "running"
	case SlideFinished:
		return "finished"
	default:
		return fmt.Sprintf("SlideStatus(%d)", int(s))
	}
}

// Slide interpolates an integer pixel position from a start point to a final
// point over a fixed duration. It has no timer of its own: the owner calls
// Compute on each frame and reads CurrX/CurrY.
type Slide struct {
	// Curve transforms linear progress. Defaults to [ViscousFluid].
	Curve func(float64) float64

	status   SlideStatus
	startX   int
	startY   int
	finalX   int
	finalY   int
	currX    int
	currY    int
	duration time.Duration
	start    time.Time
}

// NewSlide creates an idle slide.
func NewSlide() *Slide {
	return &Slide{Curve: ViscousFluid}
}

// Start begins sliding from (startX, startY) by (dx, dy) over duration.
// Starting a slide replaces any slide in progress.
func (s *Slide) Start(startX, startY, dx, dy int, duration time.Duration) {
	s.startX, s.startY = startX, startY
	s.currX, s.currY = startX, startY
	s.finalX, s.finalY = startX+dx, startY+dy
	s.duration = duration
	s.start = Now()
	s.status = SlideRunning
}

// Compute advances the slide to the current clock time. It returns true
// while the slide has not yet reported its final position; the call that
// lands on the final position also returns true, every call after that
// returns false.
func (s *Slide) Compute() bool {
	if s.status != SlideRunning {
		return false
	}
	elapsed := Since(s.start)
	if s.duration <= 0 || elapsed >= s.duration {
		s.currX, s.currY = s.finalX, s.finalY
		s.status = SlideFinished
		return true
	}

	progress := float64(elapsed) / float64(s.duration)
	eased := progress
	if s.Curve != nil {
		eased = s.Curve(progress)
	}
	s.currX = s.startX + int(math.Round(eased*float64(s.finalX-s.startX)))
	s.currY = s.startY + int(math.Round(eased*float64(s.finalY-s.startY)))
	return true
}

// Abort stops the slide at its current position.
func (s *Slide) Abort() {
	s.status = SlideIdle
}

// Status returns the current slide status.
func (s *Slide) Status() SlideStatus {
	return s.status
}

// IsRunning returns true while the slide has not reached its final position.
func (s *Slide) IsRunning() bool {
	return s.status == SlideRunning
}

// CurrX returns the most recently computed horizontal position.
func (s *Slide) CurrX() int { return s.currX }

// CurrY returns the most recently computed vertical position.
func (s *Slide) CurrY() int { return s.currY }

// FinalX returns the horizontal position the slide is heading to.
func (s *Slide) FinalX() int { return s.finalX }

// FinalY returns the vertical position the slide is heading to.
func (s *Slide) FinalY() int { return s.finalY }

// Duration returns the duration of the current slide.
func (s *Slide) Duration() time.Duration { return s.duration }
