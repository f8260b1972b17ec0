// Package term hosts a drawer in a terminal. Mouse drags become pointer
// events, redraw requests are served by a 16ms frame loop and every frame
// is painted into terminal cells.
package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/errors"
	"github.com/go-drift/drawer/pkg/gestures"
	"github.com/go-drift/drawer/pkg/graphics"
)

// ScreenDriver is the subset of tcell.Screen the host uses. A tcell.Screen,
// including tcell's simulation screen, satisfies it.
type ScreenDriver interface {
	Init() error
	Fini()
	Size() (int, int)
	EnableMouse(flags ...tcell.MouseFlags)
	HideCursor()
	Clear()
	Show()
	PollEvent() tcell.Event
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

const frameInterval = 16 * time.Millisecond

// Colors of the demo panes.
var (
	MenuBackground    = graphics.RGB(0x28, 0x2c, 0x34)
	MenuForeground    = graphics.RGB(0xab, 0xb2, 0xbf)
	ContentBackground = graphics.RGB(0xf5, 0xf5, 0xf5)
	ContentForeground = graphics.RGB(0x21, 0x21, 0x21)
)

// Config describes the terminal demo.
type Config struct {
	Cell CellSize
	// MenuCols is the menu width in cells.
	MenuCols int
	// Items are listed in the menu pane.
	Items []string
	// Options are passed to every drawer the host attaches.
	Options []drawer.Option
}

// DefaultConfig returns a 30 column menu with a few placeholder items.
func DefaultConfig() Config {
	return Config{
		Cell:     DefaultCellSize,
		MenuCols: 30,
		Items:    []string{"Inbox", "Starred", "Sent", "Drafts", "Archive"},
	}
}

// Host runs a drawer on a terminal screen. It implements drawer.Host.
type Host struct {
	screen ScreenDriver
	cfg    Config
	drawer *drawer.Drawer
	canvas *CellCanvas

	buttons tcell.ButtonMask
	pointer int64
	dirty   bool

	quit     chan struct{}
	quitOnce sync.Once
	finiOnce sync.Once
	err      error
}

// New initializes screen and attaches a drawer sized to it.
func New(screen ScreenDriver, cfg Config) (*Host, error) {
	if cfg.Cell.W <= 0 || cfg.Cell.H <= 0 {
		cfg.Cell = DefaultCellSize
	}
	if err := screen.Init(); err != nil {
		return nil, errors.New("term.New", errors.KindRender, err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	h := &Host{screen: screen, cfg: cfg, quit: make(chan struct{})}
	if err := h.attach(); err != nil {
		screen.Fini()
		return nil, err
	}
	return h, nil
}

// Drawer returns the attached drawer. It is replaced when the terminal is
// resized.
func (h *Host) Drawer() *drawer.Drawer { return h.drawer }

// Canvas returns the cell canvas of the last frame.
func (h *Host) Canvas() *CellCanvas { return h.canvas }

// DisplaySize reports the terminal size in drawer pixels.
func (h *Host) DisplaySize() (int, int) {
	cols, rows := h.screen.Size()
	return cols * h.cfg.Cell.W, rows * h.cfg.Cell.H
}

// RequestRedraw marks the screen dirty; the frame loop paints it on its
// next tick.
func (h *Host) RequestRedraw() { h.dirty = true }

// Dirty reports whether a redraw is pending.
func (h *Host) Dirty() bool { return h.dirty }

func (h *Host) attach() error {
	cols, rows := h.screen.Size()
	w, ht := cols*h.cfg.Cell.W, rows*h.cfg.Cell.H
	menu := drawer.NewPane("menu", h.cfg.MenuCols*h.cfg.Cell.W, ht, h.paintMenu)
	content := drawer.NewPane("content", w, ht, h.paintContent)

	d, err := drawer.New(h, []*drawer.Pane{menu, content}, h.cfg.Options...)
	if err != nil {
		return err
	}
	h.drawer = d
	h.canvas = NewCellCanvas(cols, rows, h.cfg.Cell)
	h.dirty = true
	return nil
}

// HandleEvent applies one terminal event and reports whether the host
// should quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.resize()
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
	return false
}

// resize re-attaches the drawer to the new terminal size, carrying the open
// state across through the drawer's saved state.
func (h *Host) resize() {
	data, err := h.drawer.SaveState(nil)
	if err != nil {
		errors.Report(errors.New("term.resize", errors.KindState, err))
	}
	if err := h.attach(); err != nil {
		errors.Report(errors.New("term.resize", errors.KindAttach, err))
		return
	}
	h.drawer.RestoreState(data)
	h.screen.Clear()
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		h.drawer.Toggle()
		return false
	}
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		h.drawer.Toggle()
	case 'o':
		h.drawer.Open()
	case 'c':
		h.drawer.Close()
	}
	return false
}

// handleMouse turns button 1 edges into a pointer stream: press is down,
// motion while held is move, release is up.
func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := graphics.Offset{
		X: (float64(x) + 0.5) * float64(h.cfg.Cell.W),
		Y: (float64(y) + 0.5) * float64(h.cfg.Cell.H),
	}
	now := ev.Buttons()&tcell.Button1 != 0
	prev := h.buttons&tcell.Button1 != 0
	h.buttons = ev.Buttons()

	var phase gestures.PointerPhase
	switch {
	case now && !prev:
		h.pointer++
		phase = gestures.PointerPhaseDown
	case now && prev:
		phase = gestures.PointerPhaseMove
	case !now && prev:
		phase = gestures.PointerPhaseUp
	default:
		return
	}
	pe := gestures.PointerEvent{PointerID: h.pointer, Position: pos, Phase: phase}
	h.drawer.ShouldCapture(pe)
	h.drawer.OnTouchEvent(pe)
	h.dirty = true
}

// Frame advances the drawer by one frame and paints it. A panic while
// painting is reported and stops Run.
func (h *Host) Frame() {
	defer errors.RecoverWithCallback("term.frame", h.abort)
	h.drawer.OnFrameTick()
	h.canvas.Reset()
	h.drawer.Paint(h.canvas)
	h.canvas.Flush(h.screen)
	h.screen.Show()
}

// Run processes events and paints requested frames until the user quits,
// the screen is finalized, a frame panics or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 10)
	go func() {
		defer close(events)
		defer errors.Recover("term.poll")
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-h.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if h.dirty {
				h.dirty = false
				h.Frame()
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-h.quit:
			return h.err
		}
	}
}

// Close stops the event loop and restores the terminal.
func (h *Host) Close() {
	h.stop()
	h.finiOnce.Do(h.screen.Fini)
}

func (h *Host) stop() {
	h.quitOnce.Do(func() { close(h.quit) })
}

func (h *Host) abort(r any) {
	h.err = errors.Errorf("term.frame", errors.KindPanic, "frame panicked: %v", r)
	h.stop()
}

func (h *Host) paintMenu(c graphics.Canvas, size graphics.Size) {
	cw, ch := float64(h.cfg.Cell.W), float64(h.cfg.Cell.H)
	c.DrawRect(graphics.RectFromLTWH(0, 0, size.Width, size.Height), graphics.Paint{Color: MenuBackground})
	c.DrawText("MENU", graphics.Offset{X: cw, Y: 0}, MenuForeground)
	for i, item := range h.cfg.Items {
		c.DrawText(item, graphics.Offset{X: 2 * cw, Y: float64(i+2) * ch}, MenuForeground)
	}
}

func (h *Host) paintContent(c graphics.Canvas, size graphics.Size) {
	cw, ch := float64(h.cfg.Cell.W), float64(h.cfg.Cell.H)
	c.DrawRect(graphics.RectFromLTWH(0, 0, size.Width, size.Height), graphics.Paint{Color: ContentBackground})
	c.DrawText("drawer demo", graphics.Offset{X: cw, Y: 0}, ContentForeground)
	c.DrawText("drag right to open, space toggles, q quits", graphics.Offset{X: cw, Y: 2 * ch}, ContentForeground)
	status := fmt.Sprintf("state=%s left=%d shadow=%s", h.drawer.State(), h.drawer.ContentLeft(), h.drawer.ShadowOpacity())
	c.DrawText(status, graphics.Offset{X: cw, Y: 4 * ch}, ContentForeground)
}
