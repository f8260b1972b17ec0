package testing

import (
	"testing"
	"time"

	"github.com/go-drift/drawer/pkg/animation"
	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/errors"
)

func TestNewDrawerTester_AttachError(t *testing.T) {
	prev := animation.SetClock(nil)
	defer animation.SetClock(prev)

	_, err := NewDrawerTester(Setup{Width: 0, Height: 600, MenuWidth: 240})
	if !errors.IsKind(err, errors.KindAttach) {
		t.Fatalf("expected attach error, got %v", err)
	}

	// A failed attach must not leave the fake clock installed.
	now := animation.SetClock(nil)
	if _, fake := now.(*FakeClock); fake {
		t.Error("fake clock left installed after failed attach")
	}
}

func TestNewDrawerTester_Options(t *testing.T) {
	var changes []drawer.MenuState
	tester := NewDrawerTesterWithSetup(t,
		Setup{Width: 400, Height: 300, MenuWidth: 100},
		drawer.WithMenuOffset(50),
		drawer.WithStateListener(func(s drawer.MenuState) { changes = append(changes, s) }),
	)
	d := tester.Drawer()
	if got := d.Layout(); got.MenuWidth != 100 || got.MenuOffset != 50 || got.ScreenWidth != 400 {
		t.Errorf("layout = %+v", got)
	}
	if d.Menu().Left() != -50 {
		t.Errorf("closed menu at %d, want -50", d.Menu().Left())
	}

	d.Toggle()
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || changes[0] != drawer.MenuOpened {
		t.Errorf("state changes = %v", changes)
	}
}

func TestFakeHost_Redraws(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	h := tester.Host()
	if h.TakeRedraw() {
		t.Fatal("no redraw expected before any interaction")
	}
	tester.Drawer().Open()
	if !h.TakeRedraw() {
		t.Fatal("Open should request a redraw")
	}
	if h.TakeRedraw() {
		t.Error("TakeRedraw should clear the request")
	}
	tester.Pump()
	if !h.TakeRedraw() {
		t.Error("a settling frame should request the next one")
	}
	if h.Redraws() != 2 {
		t.Errorf("redraws = %d, want 2", h.Redraws())
	}
}
