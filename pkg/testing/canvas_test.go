package testing

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-drift/drawer/pkg/graphics"
)

func TestPaint_CompositingOrder(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	tester.Drag(graphics.Offset{X: 100})
	tester.Paint()

	want := []string{
		"save", "clipRect",
		"save", "translate", "drawRect", "drawText", "restore",
		"restore",
		"save", "translate", "drawRect", "drawText", "restore",
		"drawRect",
	}
	if got := tester.Canvas().OpNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ops = %v\nwant %v", got, want)
	}
}

func TestPaint_ClipAndShadowFollowContent(t *testing.T) {
	tester := NewDrawerTesterWithT(t)
	d := tester.Drawer()
	d.Open()
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	tester.Paint()
	c := tester.Canvas()

	clip := c.Find("clipRect")[0].Params["rect"].(map[string]any)
	if clip["r"] != float64(DefaultMenuWidth) || clip["b"] != float64(DefaultTestHeight) {
		t.Errorf("clip = %v", clip)
	}

	rects := c.Find("drawRect")
	shadow := rects[len(rects)-1].Params
	sr := shadow["rect"].(map[string]any)
	if sr["l"] != float64(DefaultMenuWidth) || sr["r"] != float64(DefaultTestWidth) {
		t.Errorf("shadow rect = %v", sr)
	}
	// round(240/800*255) = 77 = 0x4d over #777777.
	if shadow["color"] != "0x4D777777" {
		t.Errorf("shadow color = %v", shadow["color"])
	}
	if d.ShadowOpacity() != "4d" {
		t.Errorf("shadow opacity = %q, want 4d", d.ShadowOpacity())
	}

	menuTranslate := c.Find("translate")[0].Params
	if menuTranslate["dx"] != 0.0 {
		t.Errorf("open menu translated to %v, want 0", menuTranslate["dx"])
	}
}

func TestRecordingCanvas_Reset(t *testing.T) {
	c := NewRecordingCanvas(DefaultSetup().size())
	c.Save()
	c.Restore()
	if len(c.Ops()) != 2 {
		t.Fatalf("got %d ops, want 2", len(c.Ops()))
	}
	c.Reset()
	if len(c.Ops()) != 0 {
		t.Error("Reset should discard ops")
	}
	if c.Size().Width != DefaultTestWidth {
		t.Errorf("size = %v", c.Size())
	}
}
