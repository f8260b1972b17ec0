package drawer_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/gestures"
	"github.com/go-drift/drawer/pkg/graphics"
	drawertest "github.com/go-drift/drawer/pkg/testing"
)

const mw = drawertest.DefaultMenuWidth

func TestReleaseOpens(t *testing.T) {
	tests := []struct {
		dir  drawer.Direction
		left int
		want bool
	}{
		{drawer.LeftToRight, 0, false},
		{drawer.LeftToRight, 40, false},
		{drawer.LeftToRight, 49, false},
		{drawer.LeftToRight, 50, true},
		{drawer.LeftToRight, 60, true},
		{drawer.LeftToRight, mw, true},
		{drawer.RightToLeft, 0, false},
		{drawer.RightToLeft, 60, false},
		{drawer.RightToLeft, mw - 60, false},
		{drawer.RightToLeft, mw - 51, false},
		{drawer.RightToLeft, mw - 50, true},
		{drawer.RightToLeft, mw - 40, true},
		{drawer.RightToLeft, mw, true},
	}
	for _, tt := range tests {
		if got := drawer.ReleaseOpens(tt.dir, tt.left, mw, drawer.DefaultTriggerDistance); got != tt.want {
			t.Errorf("ReleaseOpens(%s, %d) = %v, want %v", tt.dir, tt.left, got, tt.want)
		}
	}
}

func settle(t *testing.T, tester *drawertest.DrawerTester) {
	t.Helper()
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
}

func openTester(t *testing.T, opts ...drawer.Option) *drawertest.DrawerTester {
	t.Helper()
	tester := drawertest.NewDrawerTesterWithT(t, opts...)
	tester.Drawer().Open()
	settle(t, tester)
	if !tester.Drawer().IsOpen() {
		t.Fatal("drawer did not open")
	}
	return tester
}

func TestLeftToRightRelease(t *testing.T) {
	for _, tt := range []struct {
		dx   float64
		open bool
	}{{40, false}, {60, true}} {
		tester := drawertest.NewDrawerTesterWithT(t)
		tester.Drag(graphics.Offset{X: tt.dx})
		if got := tester.Drawer().Controller().Direction(); got != drawer.LeftToRight {
			t.Errorf("dx=%v: direction = %s", tt.dx, got)
		}
		settle(t, tester)
		if got := tester.Drawer().IsOpen(); got != tt.open {
			t.Errorf("release at %v: open = %v, want %v", tt.dx, got, tt.open)
		}
	}
}

func TestRightToLeftRelease(t *testing.T) {
	for _, tt := range []struct {
		dx   float64
		open bool
	}{{-60, false}, {-40, true}} {
		tester := openTester(t)
		tester.DragFrom(graphics.Offset{X: mw + 100, Y: 300}, graphics.Offset{X: tt.dx})
		if got := tester.Drawer().Controller().Direction(); got != drawer.RightToLeft {
			t.Errorf("dx=%v: direction = %s", tt.dx, got)
		}
		settle(t, tester)
		if got := tester.Drawer().IsOpen(); got != tt.open {
			t.Errorf("release at %v: open = %v, want %v", mw+int(tt.dx), got, tt.open)
		}
	}
}

func TestTouchOnMenuDragsContent(t *testing.T) {
	tester := openTester(t)
	d := tester.Drawer()

	// x=100 is on the menu, left of the content edge.
	tester.DragFrom(graphics.Offset{X: 100, Y: 300}, graphics.Offset{X: -100})
	if got := d.ContentLeft(); got != mw-100 {
		t.Errorf("content at %d, want %d", got, mw-100)
	}
	if got, want := d.Menu().Left(), d.Geometry().MenuLeft(mw-100); got != want {
		t.Errorf("menu at %d, want parallax position %d", got, want)
	}
	settle(t, tester)
	if d.IsOpen() {
		t.Error("expected close after a long leftward drag")
	}
}

func TestTryCaptureRetargetsMenu(t *testing.T) {
	rec := &drawertest.RecordingHelper{}
	tester := drawertest.NewDrawerTesterWithT(t, rec.Option())
	d := tester.Drawer()
	c := d.Controller()

	if !c.TryCapture(d.Content(), 1) {
		t.Error("content should be capturable")
	}
	if c.TryCapture(d.Menu(), 2) {
		t.Error("menu itself must not be captured")
	}
	if rec.Captured() != gestures.Draggable(d.Content()) || rec.ActivePointer() != 2 {
		t.Errorf("captured %v by %d, want content by 2", rec.Captured(), rec.ActivePointer())
	}
	if c.TryCapture(drawer.NewPane("stranger", 10, 10, nil), 3) {
		t.Error("foreign pane captured")
	}
}

func TestDragMovesMenuWithParallax(t *testing.T) {
	tester := drawertest.NewDrawerTesterWithT(t)
	d := tester.Drawer()

	id := int64(900)
	tester.SendPointerDown(graphics.Offset{X: 400, Y: 300}, id)
	for _, x := range []float64{410, 450, 520, 640} {
		tester.SendPointerMove(graphics.Offset{X: x, Y: 300}, id)
		left := d.ContentLeft()
		if got, want := d.Menu().Left(), d.Geometry().MenuLeft(left); got != want {
			t.Errorf("content %d: menu at %d, want %d", left, got, want)
		}
		if got, want := d.ShadowOpacity(), d.Geometry().ShadowOpacityHex(left); got != want {
			t.Errorf("content %d: shadow %s, want %s", left, got, want)
		}
	}
	if d.ContentLeft() != mw {
		t.Errorf("content at %d, want clamp at %d", d.ContentLeft(), mw)
	}
	tester.SendPointerUp(graphics.Offset{X: 640, Y: 300}, id)
}

func TestVerticalMotionIgnored(t *testing.T) {
	tester := drawertest.NewDrawerTesterWithT(t)
	d := tester.Drawer()
	tester.DragSteps(graphics.Offset{X: 400, Y: 300}, graphics.Offset{X: 30, Y: 200}, 4)
	if d.Content().Top() != 0 {
		t.Errorf("content top = %d, want 0", d.Content().Top())
	}
	if d.Menu().Top() != 0 {
		t.Errorf("menu top = %d, want 0", d.Menu().Top())
	}
}

func TestContentStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tester := drawertest.NewDrawerTesterWithT(t)
	d := tester.Drawer()

	check := func(stage string) {
		t.Helper()
		if left := d.ContentLeft(); left < 0 || left > mw {
			t.Fatalf("%s: content left %d outside [0, %d]", stage, left, mw)
		}
	}

	for gesture := range 50 {
		id := int64(1000 + gesture)
		pos := graphics.Offset{X: float64(rng.IntN(800)), Y: float64(rng.IntN(600))}
		tester.SendPointerDown(pos, id)
		check("down")
		for range rng.IntN(12) {
			pos.X += float64(rng.IntN(801) - 400)
			pos.Y += float64(rng.IntN(41) - 20)
			tester.Clock().Advance(time.Duration(rng.IntN(40)) * time.Millisecond)
			tester.SendPointerMove(pos, id)
			check("move")
		}
		if rng.IntN(5) == 0 {
			tester.SendPointerCancel(id)
		} else {
			tester.SendPointerUp(pos, id)
		}
		check("release")
		for range rng.IntN(20) {
			tester.Clock().Advance(16 * time.Millisecond)
			tester.Pump()
			check("settle")
		}
	}
	settle(t, tester)
	check("rest")
	if left := d.ContentLeft(); left != 0 && left != mw {
		t.Errorf("content came to rest at %d", left)
	}
}

func TestSecondPointerDoesNotStrandDrag(t *testing.T) {
	tester := drawertest.NewDrawerTesterWithT(t)
	d := tester.Drawer()

	tester.SendPointerDown(graphics.Offset{X: 50, Y: 300}, 1)
	tester.SendPointerMove(graphics.Offset{X: 80, Y: 300}, 1)
	tester.SendPointerMove(graphics.Offset{X: 150, Y: 300}, 1)
	if d.ContentLeft() != 100 {
		t.Fatalf("content left = %d, want 100", d.ContentLeft())
	}
	// The second pointer lands outside both panes.
	tester.SendPointerDown(graphics.Offset{X: 50, Y: 5000}, 2)
	tester.SendPointerUp(graphics.Offset{X: 150, Y: 300}, 1)
	tester.SendPointerUp(graphics.Offset{X: 50, Y: 5000}, 2)
	settle(t, tester)

	if d.ContentLeft() != mw || !d.IsOpen() {
		t.Errorf("drawer = %v, want opened at %d", d, mw)
	}
}

func TestTwoPointerGesturesComeToRest(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	tester := drawertest.NewDrawerTesterWithT(t)
	d := tester.Drawer()

	for gesture := range 200 {
		ids := [2]int64{int64(2*gesture + 1), int64(2*gesture + 2)}
		var pos [2]graphics.Offset
		var down [2]bool
		for range 1 + rng.IntN(16) {
			i := rng.IntN(2)
			switch {
			case !down[i]:
				// Some downs land below the panes.
				pos[i] = graphics.Offset{X: float64(rng.IntN(800)), Y: float64(rng.IntN(700))}
				tester.SendPointerDown(pos[i], ids[i])
				down[i] = true
			case rng.IntN(4) == 0:
				tester.SendPointerUp(pos[i], ids[i])
				down[i] = false
			default:
				pos[i].X += float64(rng.IntN(201) - 100)
				tester.SendPointerMove(pos[i], ids[i])
			}
			if left := d.ContentLeft(); left < 0 || left > mw {
				t.Fatalf("gesture %d: content left %d outside [0, %d]", gesture, left, mw)
			}
			if rng.IntN(3) == 0 {
				tester.Clock().Advance(16 * time.Millisecond)
				tester.Pump()
			}
		}
		for i := range ids {
			if down[i] {
				tester.SendPointerUp(pos[i], ids[i])
			}
		}
		settle(t, tester)

		switch left := d.ContentLeft(); {
		case left == 0 && d.State() == drawer.MenuClosed:
		case left == mw && d.State() == drawer.MenuOpened:
		default:
			t.Fatalf("gesture %d: drawer rests at left=%d state=%s drag=%s", gesture, left, d.State(), d.DragState())
		}
	}
}
