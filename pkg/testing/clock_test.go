package testing

import (
	"testing"
	"time"

	"github.com/go-drift/drawer/pkg/animation"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}

	clk.AdvanceFrames(3)
	if got := clk.Now().Sub(start); got != 148*time.Millisecond {
		t.Errorf("expected 148ms elapsed, got %v", got)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestDrawerTester_InstallsClock(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	clk := tester.Clock()

	start := animation.Now()
	clk.Advance(500 * time.Millisecond)
	if animation.Since(start) != 500*time.Millisecond {
		t.Error("animation clock does not follow the fake clock")
	}
}

func TestDrawerTester_ClockDrivesSettle(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	d := tester.Drawer()

	d.Open()
	tester.Pump()
	if left := d.ContentLeft(); left != 0 {
		t.Fatalf("content moved to %d before time advanced", left)
	}

	tester.Clock().Advance(100 * time.Millisecond)
	tester.Pump()
	mid := d.ContentLeft()
	if mid <= 0 || mid >= DefaultMenuWidth {
		t.Errorf("expected content between 0 and %d, got %d", DefaultMenuWidth, mid)
	}

	tester.Clock().Advance(time.Second)
	tester.Pump()
	if d.ContentLeft() != DefaultMenuWidth || !d.IsOpen() {
		t.Errorf("expected open at %d, got %v", DefaultMenuWidth, d)
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	tester.Drawer().Open()

	if err := tester.PumpAndSettle(32 * time.Millisecond); err != ErrSettleTimeout {
		t.Errorf("expected ErrSettleTimeout, got %v", err)
	}
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Errorf("expected settle, got %v", err)
	}
}
