package script

import (
	"fmt"
	"io"
	"time"

	"github.com/go-drift/drawer/pkg/animation"
	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/errors"
	"github.com/go-drift/drawer/pkg/gestures"
	"github.com/go-drift/drawer/pkg/graphics"
)

// FrameInterval is the virtual time between replayed frames.
const FrameInterval = 16 * time.Millisecond

// maxSettleFrames bounds a settle step.
const maxSettleFrames = 1000

// Pane colors used by replayed drawers.
var (
	MenuColor    = graphics.Color(0xFF3F51B5)
	ContentColor = graphics.Color(0xFFFAFAFA)
	LabelColor   = graphics.Color(0xFF212121)
)

// Runner replays scripts. The zero value is ready to use.
type Runner struct {
	// Options are passed to every drawer the runner attaches.
	Options []drawer.Option
	// OnFrame is called after every replayed frame. A returned error stops
	// the run.
	OnFrame func(d *drawer.Drawer) error
	// Log receives one line per step when set.
	Log io.Writer
}

// Result summarizes a finished run.
type Result struct {
	Steps       int
	Frames      int
	State       drawer.MenuState
	ContentLeft int
}

type frameClock struct{ now time.Time }

func (c *frameClock) Now() time.Time { return c.now }

type scriptHost struct {
	width, height int
	redraws       int
}

func (h *scriptHost) DisplaySize() (int, int) { return h.width, h.height }
func (h *scriptHost) RequestRedraw()          { h.redraws++ }

type run struct {
	r       *Runner
	s       *Script
	clock   *frameClock
	host    *scriptHost
	d       *drawer.Drawer
	pointer int64
	saved   []byte
	frames  int
}

// Run replays s from a closed drawer on a virtual clock. The clock is
// installed with animation.SetClock for the duration of the run, so Run
// must not be called concurrently with anything else animating.
func (r *Runner) Run(s *Script) (*Result, error) {
	clock := &frameClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := animation.SetClock(clock)
	defer animation.SetClock(prev)

	rn := &run{
		r:     r,
		s:     s,
		clock: clock,
		host:  &scriptHost{width: s.Display.Width, height: s.Display.Height},
	}
	if err := rn.attach(); err != nil {
		return nil, err
	}
	for i, st := range s.Steps {
		if err := rn.step(st); err != nil {
			return nil, fmt.Errorf("%s: step %d (%s): %w", s.Name, i+1, st, err)
		}
		if r.Log != nil {
			fmt.Fprintf(r.Log, "%3d %-22s %s\n", i+1, st, rn.d)
		}
	}
	return &Result{
		Steps:       len(s.Steps),
		Frames:      rn.frames,
		State:       rn.d.State(),
		ContentLeft: rn.d.ContentLeft(),
	}, nil
}

func (rn *run) attach() error {
	s := rn.s
	menu := drawer.NewPane("menu", s.MenuWidth, s.Display.Height, labeled(MenuColor, "menu", ContentColor))
	content := drawer.NewPane("content", s.Display.Width, s.Display.Height, labeled(ContentColor, s.Name, LabelColor))
	d, err := drawer.New(rn.host, []*drawer.Pane{menu, content}, rn.r.Options...)
	if err != nil {
		return err
	}
	rn.d = d
	return rn.frame()
}

func labeled(bg graphics.Color, label string, fg graphics.Color) drawer.Painter {
	return func(c graphics.Canvas, size graphics.Size) {
		c.DrawRect(graphics.RectFromLTWH(0, 0, size.Width, size.Height), graphics.Paint{Color: bg})
		c.DrawText(label, graphics.Offset{X: 12, Y: 12}, fg)
	}
}

// frame advances the virtual clock by one interval and ticks the drawer.
func (rn *run) frame() error {
	rn.clock.now = rn.clock.now.Add(FrameInterval)
	rn.d.OnFrameTick()
	rn.frames++
	if rn.r.OnFrame != nil {
		return rn.r.OnFrame(rn.d)
	}
	return nil
}

func (rn *run) pointerEvent(phase gestures.PointerPhase, p *Point) error {
	if phase == gestures.PointerPhaseDown {
		rn.pointer++
	}
	ev := gestures.PointerEvent{PointerID: rn.pointer, Phase: phase}
	if p != nil {
		ev.Position = graphics.Offset{X: p.X, Y: p.Y}
	}
	rn.d.ShouldCapture(ev)
	rn.d.OnTouchEvent(ev)
	return rn.frame()
}

func (rn *run) step(st Step) error {
	var err error
	switch {
	case st.Down != nil:
		err = rn.pointerEvent(gestures.PointerPhaseDown, st.Down)
	case st.Move != nil:
		err = rn.pointerEvent(gestures.PointerPhaseMove, st.Move)
	case st.Up != nil:
		err = rn.pointerEvent(gestures.PointerPhaseUp, st.Up)
	case st.Cancel:
		err = rn.pointerEvent(gestures.PointerPhaseCancel, nil)
	case st.Wait > 0:
		n := int((st.Wait + FrameInterval - 1) / FrameInterval)
		for i := 0; i < n && err == nil; i++ {
			err = rn.frame()
		}
	case st.Settle:
		err = rn.settle()
	case st.Action != "":
		err = rn.action(st.Action)
	}
	if err != nil {
		return err
	}
	if st.Expect != nil {
		return rn.check(*st.Expect)
	}
	return nil
}

func (rn *run) settle() error {
	for i := 0; rn.d.DragState() == gestures.StateSettling; i++ {
		if i == maxSettleFrames {
			return errors.Errorf("script.settle", errors.KindState, "still settling after %d frames", maxSettleFrames)
		}
		if err := rn.frame(); err != nil {
			return err
		}
	}
	return nil
}

func (rn *run) action(name string) error {
	switch name {
	case ActionOpen:
		rn.d.Open()
	case ActionClose:
		rn.d.Close()
	case ActionToggle:
		rn.d.Toggle()
	case ActionSave:
		data, err := rn.d.SaveState(nil)
		if err != nil {
			return err
		}
		rn.saved = data
		return nil
	case ActionRestore:
		if err := rn.attach(); err != nil {
			return err
		}
		rn.d.RestoreState(rn.saved)
	default:
		return errors.Errorf("script.action", errors.KindState, "unknown action %q", name)
	}
	return rn.frame()
}

func (rn *run) check(e Expect) error {
	const op = "script.expect"
	d := rn.d
	if e.State != "" && d.State().String() != e.State {
		return errors.Errorf(op, errors.KindState, "state = %s, want %s", d.State(), e.State)
	}
	if e.ContentLeft != nil && d.ContentLeft() != *e.ContentLeft {
		return errors.Errorf(op, errors.KindState, "content left = %d, want %d", d.ContentLeft(), *e.ContentLeft)
	}
	if e.MenuLeft != nil && d.Menu().Left() != *e.MenuLeft {
		return errors.Errorf(op, errors.KindState, "menu left = %d, want %d", d.Menu().Left(), *e.MenuLeft)
	}
	if e.Shadow != "" && d.ShadowOpacity() != e.Shadow {
		return errors.Errorf(op, errors.KindState, "shadow = %s, want %s", d.ShadowOpacity(), e.Shadow)
	}
	return nil
}
