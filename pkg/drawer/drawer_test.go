package drawer_test

import (
	"bytes"
	"io"
	"log"
	"testing"
	"time"

	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/errors"
	"github.com/go-drift/drawer/pkg/gestures"
	"github.com/go-drift/drawer/pkg/graphics"
	drawertest "github.com/go-drift/drawer/pkg/testing"
)

func panes() (*drawer.Pane, *drawer.Pane) {
	return drawer.NewPane("menu", 240, 600, nil), drawer.NewPane("content", 800, 600, nil)
}

func captureLog(w io.Writer) (restore func()) {
	out, flags := log.Writer(), log.Flags()
	log.SetOutput(w)
	log.SetFlags(0)
	return func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	}
}

func TestNewAttachErrors(t *testing.T) {
	menu, content := panes()
	host := drawertest.NewFakeHost(800, 600)
	tests := []struct {
		name  string
		host  drawer.Host
		panes []*drawer.Pane
		opts  []drawer.Option
		kind  errors.ErrorKind
	}{
		{"nil host", nil, []*drawer.Pane{menu, content}, nil, errors.KindAttach},
		{"no panes", host, nil, nil, errors.KindAttach},
		{"one pane", host, []*drawer.Pane{menu}, nil, errors.KindAttach},
		{"three panes", host, []*drawer.Pane{menu, content, drawer.NewPane("x", 1, 1, nil)}, nil, errors.KindAttach},
		{"nil pane", host, []*drawer.Pane{menu, nil}, nil, errors.KindAttach},
		{"same pane", host, []*drawer.Pane{content, content}, nil, errors.KindAttach},
		{"zero menu", host, []*drawer.Pane{drawer.NewPane("menu", 0, 600, nil), content}, nil, errors.KindAttach},
		{"empty display", drawertest.NewFakeHost(0, 600), []*drawer.Pane{menu, content}, nil, errors.KindAttach},
		{"negative offset", host, []*drawer.Pane{menu, content}, []drawer.Option{drawer.WithMenuOffset(-1)}, errors.KindConfig},
		{"negative trigger", host, []*drawer.Pane{menu, content}, []drawer.Option{drawer.WithTriggerDistance(-1)}, errors.KindConfig},
		{"zero sensitivity", host, []*drawer.Pane{menu, content}, []drawer.Option{drawer.WithTouchSlopSensitivity(0)}, errors.KindConfig},
		{"negative settle", host, []*drawer.Pane{menu, content}, []drawer.Option{drawer.WithSettleDuration(-time.Second, 0)}, errors.KindConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := drawer.New(tt.host, tt.panes, tt.opts...)
			if d != nil {
				t.Error("expected no drawer")
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("err = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestNewLaysOutClosed(t *testing.T) {
	menu, content := panes()
	content.OffsetLeftAndRight(77)
	d, err := drawer.New(drawertest.NewFakeHost(800, 600), []*drawer.Pane{menu, content})
	if err != nil {
		t.Fatal(err)
	}
	if d.ContentLeft() != 0 || d.State() != drawer.MenuClosed {
		t.Errorf("got %v, want closed at 0", d)
	}
	if menu.Left() != -drawer.DefaultMenuOffset {
		t.Errorf("menu at %d, want %d", menu.Left(), -drawer.DefaultMenuOffset)
	}
	if menu.Role() != drawer.RoleMenu || content.Role() != drawer.RoleContent {
		t.Errorf("roles = %s, %s", menu.Role(), content.Role())
	}
	if d.ShadowOpacity() != "00" {
		t.Errorf("shadow = %q", d.ShadowOpacity())
	}
	if d.DragState() != gestures.StateIdle {
		t.Errorf("drag state = %s", d.DragState())
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	rec := &drawertest.RecordingHelper{}
	tester := openTester(t, rec.Option())
	d := tester.Drawer()
	before := len(rec.Slides)

	d.Open()
	d.Open()
	if d.State() != drawer.MenuOpened {
		t.Errorf("state = %s, want opened", d.State())
	}
	for _, s := range rec.Slides[before:] {
		if s.Started || s.Left != mw {
			t.Errorf("unexpected slide request %+v", s)
		}
	}
	if _, settling := rec.SettleTarget(); settling {
		t.Error("no settle expected")
	}
	settle(t, tester)
	if d.ContentLeft() != mw {
		t.Errorf("content at %d, want %d", d.ContentLeft(), mw)
	}
}

func TestCloseAndToggle(t *testing.T) {
	tester := openTester(t)
	d := tester.Drawer()

	d.Toggle()
	settle(t, tester)
	if d.IsOpen() || d.ContentLeft() != 0 {
		t.Errorf("toggle from open: %v", d)
	}
	d.Toggle()
	settle(t, tester)
	if !d.IsOpen() {
		t.Errorf("toggle from closed: %v", d)
	}
	d.Close()
	d.Close()
	settle(t, tester)
	if d.State() != drawer.MenuClosed {
		t.Errorf("close: %v", d)
	}
}

func TestStateOnlyChangesAtRest(t *testing.T) {
	var changes []drawer.MenuState
	tester := drawertest.NewDrawerTesterWithT(t, drawer.WithStateListener(func(s drawer.MenuState) {
		changes = append(changes, s)
	}))
	d := tester.Drawer()

	d.Open()
	for d.DragState() == gestures.StateSettling {
		tester.Clock().AdvanceFrames(1)
		tester.Pump()
		if left := d.ContentLeft(); left != mw && d.State() != drawer.MenuClosed {
			t.Fatalf("state %s while content at %d", d.State(), left)
		}
	}
	d.Close()
	settle(t, tester)

	want := []drawer.MenuState{drawer.MenuOpened, drawer.MenuClosed}
	if len(changes) != len(want) || changes[0] != want[0] || changes[1] != want[1] {
		t.Errorf("changes = %v, want %v", changes, want)
	}
}

func TestOpenRequestsRedraw(t *testing.T) {
	tester := drawertest.NewDrawerTesterWithT(t)
	tester.Drawer().Open()
	if tester.Host().Redraws() != 1 {
		t.Errorf("redraws = %d, want 1", tester.Host().Redraws())
	}
}

func TestDebugMode(t *testing.T) {
	var buf bytes.Buffer
	restore := captureLog(&buf)
	defer restore()

	drawer.DebugMode = true
	defer func() { drawer.DebugMode = false }()

	tester := drawertest.NewDrawerTesterWithT(t)
	tester.Drag(tester.ContentCenter())
	settle(t, tester)

	if !bytes.Contains(buf.Bytes(), []byte("drawer: released at left=")) {
		t.Errorf("debug log missing release trace:\n%s", buf.String())
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{drawer.MenuClosed.String(), "closed"},
		{drawer.MenuOpened.String(), "opened"},
		{drawer.MenuState(9).String(), "MenuState(9)"},
		{drawer.LeftToRight.String(), "left-to-right"},
		{drawer.RightToLeft.String(), "right-to-left"},
		{drawer.Direction(5).String(), "Direction(5)"},
		{drawer.RoleMenu.String(), "menu"},
		{drawer.Role(4).String(), "Role(4)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}

	menu, content := panes()
	d, err := drawer.New(drawertest.NewFakeHost(800, 600), []*drawer.Pane{menu, content})
	if err != nil {
		t.Fatal(err)
	}
	if got := d.String(); got != "Drawer(closed left=0/240)" {
		t.Errorf("drawer = %q", got)
	}
	if got := menu.String(); got != "menu(menu 240x600 @-300,0)" {
		t.Errorf("pane = %q", got)
	}
}

func TestMenuClipFollowsContainerHeight(t *testing.T) {
	host := drawertest.NewFakeHost(800, 600)
	menu, content := drawer.NewPane("menu", 240, 400, nil), drawer.NewPane("content", 800, 400, nil)
	d, err := drawer.New(host, []*drawer.Pane{menu, content})
	if err != nil {
		t.Fatal(err)
	}

	c := drawertest.NewRecordingCanvas(graphics.Size{Width: 800, Height: 600})
	d.Paint(c)
	clip := c.Find("clipRect")[0].Params["rect"].(map[string]any)
	if clip["b"] != float64(400) {
		t.Errorf("menu clip = %v, want bottom at the pane height 400", clip)
	}
}
