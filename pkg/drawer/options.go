package drawer

import (
	"time"

	"github.com/go-drift/drawer/pkg/animation"
	"github.com/go-drift/drawer/pkg/errors"
	"github.com/go-drift/drawer/pkg/gestures"
	"github.com/go-drift/drawer/pkg/graphics"
)

// Defaults for Options.
const (
	DefaultMenuOffset           = 300
	DefaultTriggerDistance      = 50
	DefaultTouchSlopSensitivity = 1.0
	DefaultShadowBase           = graphics.ColorGray
)

// HelperFactory builds the drag helper for a drawer. The callback is the
// drawer's GestureController; children are listed bottom to top.
type HelperFactory func(callback gestures.DragCallback, sensitivity float64, children ...gestures.Draggable) DragHelper

// Options configures a Drawer.
type Options struct {
	// MenuOffset is the parallax lag in pixels: how far left of its resting
	// place the menu sits while the drawer is closed.
	MenuOffset int
	// TriggerDistance is the release threshold in pixels.
	TriggerDistance int
	// TouchSlopSensitivity scales the drag threshold; higher is more eager.
	TouchSlopSensitivity float64
	// ShadowBase supplies the RGB of the shadow overlay; its alpha is ignored.
	ShadowBase graphics.Color
	// SettleDuration is the time a settle across the full menu width takes.
	SettleDuration time.Duration
	// MaxSettleDuration caps any settle.
	MaxSettleDuration time.Duration
	// OnStateChanged, when set, is called after the resting state changes.
	OnStateChanged func(MenuState)
	// NewHelper replaces the default gestures.DragHelper.
	NewHelper HelperFactory
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		MenuOffset:           DefaultMenuOffset,
		TriggerDistance:      DefaultTriggerDistance,
		TouchSlopSensitivity: DefaultTouchSlopSensitivity,
		ShadowBase:           DefaultShadowBase,
		SettleDuration:       animation.BaseSettleDuration,
		MaxSettleDuration:    animation.MaxSettleDuration,
	}
}

// WithMenuOffset sets the parallax lag.
func WithMenuOffset(px int) Option {
	return func(o *Options) { o.MenuOffset = px }
}

// WithTriggerDistance sets the release threshold.
func WithTriggerDistance(px int) Option {
	return func(o *Options) { o.TriggerDistance = px }
}

// WithTouchSlopSensitivity sets the drag threshold sensitivity.
func WithTouchSlopSensitivity(s float64) Option {
	return func(o *Options) { o.TouchSlopSensitivity = s }
}

// WithShadowBase sets the shadow overlay color.
func WithShadowBase(c graphics.Color) Option {
	return func(o *Options) { o.ShadowBase = c }
}

// WithSettleDuration sets the full-width settle duration and its cap.
func WithSettleDuration(base, limit time.Duration) Option {
	return func(o *Options) {
		o.SettleDuration = base
		o.MaxSettleDuration = limit
	}
}

// WithStateListener registers a callback for resting state changes.
func WithStateListener(fn func(MenuState)) Option {
	return func(o *Options) { o.OnStateChanged = fn }
}

// WithDragHelper substitutes the drag helper, typically with a test double.
func WithDragHelper(f HelperFactory) Option {
	return func(o *Options) { o.NewHelper = f }
}

func (o Options) validate() error {
	switch {
	case o.MenuOffset < 0:
		return &errors.ConfigError{Field: "MenuOffset", Value: o.MenuOffset, Reason: "must not be negative"}
	case o.TriggerDistance < 0:
		return &errors.ConfigError{Field: "TriggerDistance", Value: o.TriggerDistance, Reason: "must not be negative"}
	case o.TouchSlopSensitivity <= 0:
		return &errors.ConfigError{Field: "TouchSlopSensitivity", Value: o.TouchSlopSensitivity, Reason: "must be positive"}
	case o.SettleDuration < 0 || o.MaxSettleDuration < 0:
		return &errors.ConfigError{Field: "SettleDuration", Value: o.SettleDuration, Reason: "must not be negative"}
	}
	return nil
}

func defaultHelper(base, limit time.Duration) HelperFactory {
	return func(callback gestures.DragCallback, sensitivity float64, children ...gestures.Draggable) DragHelper {
		h := gestures.NewDragHelper(callback, sensitivity, children...)
		h.SettleBase = base
		h.SettleLimit = limit
		return h
	}
}
