package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/drawer/pkg/animation"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

// This example settles a position from 0 to 120 over several frames.
func ExampleSlide() {
	clock := &stepClock{now: time.Unix(0, 0)}
	prev := animation.SetClock(clock)
	defer animation.SetClock(prev)

	slide := animation.NewSlide()
	slide.Curve = animation.LinearCurve
	slide.Start(0, 0, 120, 0, 300*time.Millisecond)

	for slide.Compute() {
		fmt.Println(slide.CurrX())
		clock.now = clock.now.Add(100 * time.Millisecond)
	}
	// Output:
	// 0
	// 40
	// 80
	// 120
}

// This example shows how settle durations scale with distance.
func ExampleSettleDuration() {
	fmt.Println(animation.SettleDuration(0, 200, 0, 0))
	fmt.Println(animation.SettleDuration(100, 200, 0, 0))
	fmt.Println(animation.SettleDuration(-200, 200, 0, 0))
	fmt.Println(animation.SettleDuration(1000, 200, 0, 0))
	// Output:
	// 0s
	// 384ms
	// 512ms
	// 600ms
}
