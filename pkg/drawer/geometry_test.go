package drawer_test

import (
	"testing"

	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/graphics"
)

func model(menuWidth, menuOffset, screenW, screenH int) drawer.GeometryModel {
	return drawer.GeometryModel{
		Layout: drawer.LayoutConstants{
			MenuWidth:    menuWidth,
			MenuOffset:   menuOffset,
			ScreenWidth:  screenW,
			ScreenHeight: screenH,
		},
		ShadowBase: drawer.DefaultShadowBase,
	}
}

func TestMenuLeftEndpoints(t *testing.T) {
	tests := []struct {
		name             string
		menuW, offset    int
		closed, halfOpen int
	}{
		{"offset wider than menu", 240, 300, -300, -150},
		{"offset narrower than menu", 300, 120, -120, -60},
		{"no parallax", 200, 0, 0, 0},
		{"offset equals menu", 200, 200, -200, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := model(tt.menuW, tt.offset, 800, 600)
			if got := g.MenuLeft(0); got != tt.closed {
				t.Errorf("MenuLeft(0) = %d, want %d", got, tt.closed)
			}
			if got := g.MenuLeft(tt.menuW); got != 0 {
				t.Errorf("MenuLeft(%d) = %d, want 0", tt.menuW, got)
			}
			if got := g.MenuLeft(tt.menuW / 2); got != tt.halfOpen {
				t.Errorf("MenuLeft(%d) = %d, want %d", tt.menuW/2, got, tt.halfOpen)
			}
		})
	}
}

func TestMenuLeftNonDecreasing(t *testing.T) {
	for _, cfg := range [][2]int{{240, 300}, {300, 120}, {97, 13}, {50, 500}, {1, 0}} {
		g := model(cfg[0], cfg[1], 800, 600)
		prev := g.MenuLeft(0)
		for left := 1; left <= cfg[0]; left++ {
			cur := g.MenuLeft(left)
			if cur < prev {
				t.Fatalf("menu %v: MenuLeft(%d) = %d < MenuLeft(%d) = %d", cfg, left, cur, left-1, prev)
			}
			prev = cur
		}
	}
}

func TestMenuLeftMatchesFloatFormula(t *testing.T) {
	g := model(240, 300, 800, 600)
	scale := g.Layout.Scale()
	for _, left := range []int{0, 1, 7, 100, 120, 239, 240} {
		// Only exact float cases are compared; others may differ by rounding.
		lag := scale*float64(left) + float64(g.Layout.MenuOffset)
		if lag != float64(int(lag)) {
			continue
		}
		if got, want := g.MenuLeft(left), left-int(lag); got != want {
			t.Errorf("MenuLeft(%d) = %d, want %d", left, got, want)
		}
	}
}

func TestMenuRect(t *testing.T) {
	g := model(240, 300, 800, 600)
	got := g.MenuRect(120, 10, 500)
	want := graphics.RectFromInts(-150, 10, 90, 510)
	if got != want {
		t.Errorf("MenuRect = %v, want %v", got, want)
	}
}

func TestShadowOpacityHex(t *testing.T) {
	g := model(240, 300, 800, 600)
	tests := []struct {
		left int
		want string
	}{
		{-5, "00"},
		{0, "00"},
		{1, "00"},
		{2, "01"},
		{240, "4d"},
		{400, "80"},
		{799, "ff"},
		{800, "ff"},
		{2000, "ff"},
	}
	for _, tt := range tests {
		if got := g.ShadowOpacityHex(tt.left); got != tt.want {
			t.Errorf("ShadowOpacityHex(%d) = %q, want %q", tt.left, got, tt.want)
		}
	}
}

func TestShadowColorKeepsBase(t *testing.T) {
	g := model(240, 300, 800, 600)
	g.ShadowBase = graphics.RGB(0x10, 0x20, 0x30)
	if got := g.ShadowColor(400); got != graphics.Color(0x80102030) {
		t.Errorf("ShadowColor = %v", got)
	}
}

func TestClipAndShadowRects(t *testing.T) {
	g := model(240, 300, 800, 600)
	if got, want := g.MenuClip(100, 600), graphics.RectFromInts(0, 0, 100, 600); got != want {
		t.Errorf("MenuClip = %v, want %v", got, want)
	}
	if got, want := g.ShadowRect(100), graphics.RectFromInts(100, 0, 800, 600); got != want {
		t.Errorf("ShadowRect = %v, want %v", got, want)
	}
	if got, want := g.ContentRect(100, 0, 800, 600), graphics.RectFromInts(100, 0, 900, 600); got != want {
		t.Errorf("ContentRect = %v, want %v", got, want)
	}
	if !g.MenuClip(0, 600).IsEmpty() {
		t.Error("closed clip should be empty")
	}
	if got, want := g.MenuClip(100, 450), graphics.RectFromInts(0, 0, 100, 450); got != want {
		t.Errorf("MenuClip in a short container = %v, want %v", got, want)
	}
}

func TestClampContent(t *testing.T) {
	g := model(240, 300, 800, 600)
	for in, want := range map[int]int{-1: 0, 0: 0, 120: 120, 240: 240, 241: 240} {
		if got := g.ClampContent(in); got != want {
			t.Errorf("ClampContent(%d) = %d, want %d", in, got, want)
		}
	}
}
