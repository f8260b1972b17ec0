package drawer

import (
	"fmt"

	"github.com/go-drift/drawer/pkg/errors"
	"github.com/go-drift/drawer/pkg/gestures"
	"github.com/go-drift/drawer/pkg/graphics"
)

// Host is the environment a drawer lives in.
type Host interface {
	// DisplaySize returns the display size in pixels. It is queried once.
	DisplaySize() (width, height int)
	// RequestRedraw asks for OnFrameTick and Paint to be called on the next frame.
	RequestRedraw()
}

// DragHelper moves and settles the content pane. *gestures.DragHelper is the
// default implementation.
type DragHelper interface {
	ShouldIntercept(ev gestures.PointerEvent) bool
	ProcessEvent(ev gestures.PointerEvent)
	CaptureChild(child gestures.Draggable, pointerID int64)
	SmoothSlideTo(child gestures.Draggable, left, top int) bool
	ContinueSettling() bool
	State() gestures.DragState
}

// Drawer is a two-pane slide-out container.
type Drawer struct {
	host       Host
	menu       *Pane
	content    *Pane
	layout     LayoutConstants
	geometry   GeometryModel
	opts       Options
	helper     DragHelper
	controller *GestureController
	compositor *CompositorState
}

// New attaches a drawer to panes, which must be exactly the menu followed by
// the content. The menu width becomes the drawer's open offset; the display
// size is read from host once. Panes start closed.
func New(host Host, panes []*Pane, opts ...Option) (*Drawer, error) {
	const op = "drawer.New"
	if host == nil {
		return nil, errors.Errorf(op, errors.KindAttach, "host is nil")
	}
	if len(panes) != 2 {
		return nil, errors.Errorf(op, errors.KindAttach, "need exactly 2 panes (menu, content), got %d", len(panes))
	}
	menu, content := panes[0], panes[1]
	if menu == nil || content == nil {
		return nil, errors.Errorf(op, errors.KindAttach, "pane is nil")
	}
	if menu == content {
		return nil, errors.Errorf(op, errors.KindAttach, "menu and content are the same pane")
	}
	if menu.Width() <= 0 {
		return nil, errors.Errorf(op, errors.KindAttach, "menu width must be positive, got %d", menu.Width())
	}
	sw, sh := host.DisplaySize()
	if sw <= 0 || sh <= 0 {
		return nil, errors.Errorf(op, errors.KindAttach, "display size must be positive, got %dx%d", sw, sh)
	}

	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	if err := o.validate(); err != nil {
		return nil, errors.New(op, errors.KindConfig, err)
	}

	menu.role = RoleMenu
	content.role = RoleContent
	d := &Drawer{
		host:    host,
		menu:    menu,
		content: content,
		layout: LayoutConstants{
			MenuWidth:    menu.Width(),
			MenuOffset:   o.MenuOffset,
			ScreenWidth:  sw,
			ScreenHeight: sh,
		},
		opts: o,
	}
	d.geometry = GeometryModel{Layout: d.layout, ShadowBase: o.ShadowBase}
	d.controller = &GestureController{d: d, direction: LeftToRight}
	d.compositor = &CompositorState{d: d, state: MenuClosed, onChange: o.OnStateChanged}

	factory := o.NewHelper
	if factory == nil {
		factory = defaultHelper(o.SettleDuration, o.MaxSettleDuration)
	}
	d.helper = factory(d.controller, o.TouchSlopSensitivity, menu, content)

	content.SetBounds(d.geometry.ContentRect(0, content.Top(), content.Width(), content.Height()))
	d.controller.relayout(0)
	debugf("attached menu=%s content=%s screen=%dx%d", menu, content, sw, sh)
	return d, nil
}

// Menu returns the menu pane.
func (d *Drawer) Menu() *Pane { return d.menu }

// Content returns the content pane.
func (d *Drawer) Content() *Pane { return d.content }

// Layout returns the constants fixed at attach time.
func (d *Drawer) Layout() LayoutConstants { return d.layout }

// Geometry returns the geometry model.
func (d *Drawer) Geometry() GeometryModel { return d.geometry }

// Controller returns the gesture controller.
func (d *Drawer) Controller() *GestureController { return d.controller }

// Compositor returns the compositor.
func (d *Drawer) Compositor() *CompositorState { return d.compositor }

// State returns the resting state.
func (d *Drawer) State() MenuState { return d.compositor.State() }

// IsOpen reports whether the drawer rests open.
func (d *Drawer) IsOpen() bool { return d.compositor.State() == MenuOpened }

// DragState reports whether the content is idle, being dragged or settling.
func (d *Drawer) DragState() gestures.DragState { return d.helper.State() }

// ContentLeft returns the current content offset.
func (d *Drawer) ContentLeft() int { return d.content.Left() }

// ShadowOpacity returns the current shadow opacity as two hex digits.
func (d *Drawer) ShadowOpacity() string { return d.controller.ShadowOpacity() }

// ShouldCapture reports whether the drawer wants to own the pointer stream
// starting with or containing ev. Hosts still deliver every event to
// OnTouchEvent.
func (d *Drawer) ShouldCapture(ev gestures.PointerEvent) bool {
	return d.helper.ShouldIntercept(ev)
}

// OnTouchEvent processes a pointer event. Events for unknown pointers are
// ignored. It always reports the event as consumed.
func (d *Drawer) OnTouchEvent(ev gestures.PointerEvent) bool {
	d.helper.ProcessEvent(ev)
	return true
}

// OnFrameTick advances a settle by one frame, asking for another frame while
// it continues, then refreshes the resting state.
func (d *Drawer) OnFrameTick() {
	if d.helper.ContinueSettling() {
		d.host.RequestRedraw()
	}
	d.compositor.UpdateState()
}

// Paint draws the current frame.
func (d *Drawer) Paint(canvas graphics.Canvas) {
	d.compositor.Paint(canvas)
}

// Open slides the content to the open position.
func (d *Drawer) Open() {
	d.slideTo(d.layout.MenuWidth)
}

// Close slides the content back over the menu.
func (d *Drawer) Close() {
	d.slideTo(0)
}

// Toggle opens a closed drawer and closes an open one.
func (d *Drawer) Toggle() {
	if d.IsOpen() {
		d.Close()
	} else {
		d.Open()
	}
}

func (d *Drawer) slideTo(left int) {
	d.helper.SmoothSlideTo(d.content, left, d.content.Top())
	d.host.RequestRedraw()
}

// SaveState encodes the resting state behind the host's own payload.
func (d *Drawer) SaveState(super []byte) ([]byte, error) {
	data, err := SavedState{Super: super, Menu: d.State()}.MarshalBinary()
	if err != nil {
		return nil, errors.New("drawer.SaveState", errors.KindState, err)
	}
	return data, nil
}

// RestoreState decodes data produced by SaveState and returns the host
// payload. An open state replays Open, so the content slides to the open
// position. Empty data means nothing was saved. A payload that cannot be
// decoded is reported and handed back unchanged for the host's own restore;
// the drawer stays closed.
func (d *Drawer) RestoreState(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	var s SavedState
	if err := s.UnmarshalBinary(data); err != nil {
		errors.Report(errors.New("drawer.RestoreState", errors.KindParsing, err))
		return data
	}
	debugf("restoring %s", s.Menu)
	if s.Menu == MenuOpened {
		d.Open()
	}
	return s.Super
}

func (d *Drawer) String() string {
	return fmt.Sprintf("Drawer(%s left=%d/%d)", d.State(), d.content.Left(), d.layout.MenuWidth)
}
