package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/drawer/pkg/animation"
	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/gestures"
	"github.com/go-drift/drawer/pkg/graphics"
)

const (
	// DefaultTestWidth is the default display width.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default display height.
	DefaultTestHeight = 600
	// DefaultMenuWidth is the default menu pane width.
	DefaultMenuWidth = 240

	frameDuration = 16 * time.Millisecond
)

// Pane colors used by the tester's painters.
const (
	MenuColor    graphics.Color = 0xFF3F51B5
	ContentColor graphics.Color = 0xFFFAFAFA
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: drawer did not settle")

// Setup describes the display and panes a tester builds.
type Setup struct {
	Width     int
	Height    int
	MenuWidth int
}

// DefaultSetup returns an 800x600 display with a 240 pixel menu.
func DefaultSetup() Setup {
	return Setup{Width: DefaultTestWidth, Height: DefaultTestHeight, MenuWidth: DefaultMenuWidth}
}

func (s Setup) size() graphics.Size {
	return graphics.Size{Width: float64(s.Width), Height: float64(s.Height)}
}

// DrawerTester attaches a drawer to a FakeHost and drives it with a fake
// clock, synthetic pointer events and a recording canvas.
type DrawerTester struct {
	setup     Setup
	host      *FakeHost
	clock     *FakeClock
	prevClock animation.Clock
	drawer    *drawer.Drawer
	canvas    *RecordingCanvas
	pointers  map[int64]graphics.Offset
}

// NewDrawerTester builds a tester for setup. Call Cleanup when done, or use
// NewDrawerTesterWithT instead.
func NewDrawerTester(setup Setup, opts ...drawer.Option) (*DrawerTester, error) {
	clk := NewFakeClock()
	prev := animation.SetClock(clk)

	host := NewFakeHost(setup.Width, setup.Height)
	menu := drawer.NewPane("menu", setup.MenuWidth, setup.Height, fillPainter("menu", MenuColor))
	content := drawer.NewPane("content", setup.Width, setup.Height, fillPainter("content", ContentColor))
	d, err := drawer.New(host, []*drawer.Pane{menu, content}, opts...)
	if err != nil {
		animation.SetClock(prev)
		return nil, err
	}
	return &DrawerTester{
		setup:     setup,
		host:      host,
		clock:     clk,
		prevClock: prev,
		drawer:    d,
		canvas:    NewRecordingCanvas(setup.size()),
		pointers:  make(map[int64]graphics.Offset),
	}, nil
}

// NewDrawerTesterWithT builds a tester with DefaultSetup that cleans up via
// t.Cleanup. This is the recommended constructor for tests.
func NewDrawerTesterWithT(t testing.TB, opts ...drawer.Option) *DrawerTester {
	t.Helper()
	return NewDrawerTesterWithSetup(t, DefaultSetup(), opts...)
}

// NewDrawerTesterWithSetup is NewDrawerTesterWithT for a custom setup.
func NewDrawerTesterWithSetup(t testing.TB, setup Setup, opts ...drawer.Option) *DrawerTester {
	t.Helper()
	tester, err := NewDrawerTester(setup, opts...)
	if err != nil {
		t.Fatalf("attach drawer: %v", err)
	}
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock.
func (t *DrawerTester) Cleanup() {
	animation.SetClock(t.prevClock)
}

// Drawer returns the drawer under test.
func (t *DrawerTester) Drawer() *drawer.Drawer { return t.drawer }

// Host returns the fake host.
func (t *DrawerTester) Host() *FakeHost { return t.host }

// Clock returns the fake clock for advancing time in tests.
func (t *DrawerTester) Clock() *FakeClock { return t.clock }

// Setup returns the display and pane sizes.
func (t *DrawerTester) Setup() Setup { return t.setup }

// Pump runs a single frame.
func (t *DrawerTester) Pump() error {
	t.host.TakeRedraw()
	t.drawer.OnFrameTick()
	return nil
}

// PumpAndSettle runs frames until the drawer stops settling or the timeout
// is reached. Each frame advances the fake clock by 16ms.
func (t *DrawerTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if err := t.Pump(); err != nil {
			return err
		}
		if t.drawer.DragState() != gestures.StateSettling {
			return nil
		}
		t.clock.Advance(frameDuration)
		elapsed += frameDuration
	}
	return ErrSettleTimeout
}

// Paint draws one frame and returns the recorded operations.
func (t *DrawerTester) Paint() []DisplayOp {
	t.canvas.Reset()
	t.drawer.Paint(t.canvas)
	return t.canvas.Ops()
}

// Canvas returns the canvas the last Paint recorded into.
func (t *DrawerTester) Canvas() *RecordingCanvas { return t.canvas }

func fillPainter(label string, color graphics.Color) drawer.Painter {
	return func(c graphics.Canvas, size graphics.Size) {
		c.DrawRect(graphics.RectFromLTWH(0, 0, size.Width, size.Height), graphics.Paint{Color: color})
		c.DrawText(label, graphics.Offset{X: 8, Y: 8}, graphics.ColorBlack)
	}
}
