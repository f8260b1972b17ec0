package drawer

import (
	"fmt"

	"github.com/go-drift/drawer/pkg/graphics"
)

// LayoutConstants are fixed when the drawer is attached.
type LayoutConstants struct {
	// MenuWidth is the menu pane width and the fully-open content offset.
	MenuWidth int
	// MenuOffset is the parallax lag.
	MenuOffset int
	// ScreenWidth and ScreenHeight are the display size queried from the host.
	ScreenWidth  int
	ScreenHeight int
}

// Scale is the fraction of content motion the menu lags behind:
// (MenuWidth - MenuOffset) / MenuWidth.
func (c LayoutConstants) Scale() float64 {
	return float64(c.MenuWidth-c.MenuOffset) / float64(c.MenuWidth)
}

// GeometryModel maps a content offset to the menu position and the shadow.
// It holds no state beyond its constants.
type GeometryModel struct {
	Layout     LayoutConstants
	ShadowBase graphics.Color
}

// MenuLeft returns the menu's left edge for a content offset:
//
//	contentLeft - (scale*contentLeft + menuOffset)
//
// evaluated exactly in integers, so the closed and open endpoints land on
// -menuOffset and 0.
func (g GeometryModel) MenuLeft(contentLeft int) int {
	mw, off := g.Layout.MenuWidth, g.Layout.MenuOffset
	lag := floorDiv((mw-off)*contentLeft+off*mw, mw)
	return contentLeft - lag
}

// MenuRect declares where the menu pane goes for a content offset. The menu
// keeps its top and height.
func (g GeometryModel) MenuRect(contentLeft, top, height int) graphics.Rect {
	left := g.MenuLeft(contentLeft)
	return graphics.RectFromInts(left, top, left+g.Layout.MenuWidth, top+height)
}

// ContentRect is where a content pane of the given size sits at an offset.
func (g GeometryModel) ContentRect(contentLeft, top, width, height int) graphics.Rect {
	return graphics.RectFromLTWH(float64(contentLeft), float64(top), float64(width), float64(height))
}

// MenuClip is the only region where the menu may be drawn: the strip of a
// container of the given height left of the content edge.
func (g GeometryModel) MenuClip(contentLeft, height int) graphics.Rect {
	return graphics.RectFromInts(0, 0, contentLeft, height)
}

// ShadowRect is the overlay region from the content edge to the screen edge.
func (g GeometryModel) ShadowRect(contentLeft int) graphics.Rect {
	return graphics.RectFromInts(contentLeft, 0, g.Layout.ScreenWidth, g.Layout.ScreenHeight)
}

// ShadowAlpha returns round(contentLeft/screenWidth * 255) clamped to a byte.
func (g GeometryModel) ShadowAlpha(contentLeft int) uint8 {
	if contentLeft <= 0 {
		return 0
	}
	w := g.Layout.ScreenWidth
	if contentLeft >= w {
		return 255
	}
	// Half-up rounding in integers.
	return uint8((2*contentLeft*255 + w) / (2 * w))
}

// ShadowOpacityHex returns the shadow alpha as two lowercase hex digits.
func (g GeometryModel) ShadowOpacityHex(contentLeft int) string {
	return fmt.Sprintf("%02x", g.ShadowAlpha(contentLeft))
}

// ShadowColor returns the overlay fill: the shadow alpha over ShadowBase.
func (g GeometryModel) ShadowColor(contentLeft int) graphics.Color {
	return g.ShadowBase.WithAlpha8(g.ShadowAlpha(contentLeft))
}

// ClampContent limits a proposed content offset to [0, MenuWidth].
func (g GeometryModel) ClampContent(left int) int {
	return min(max(left, 0), g.Layout.MenuWidth)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
