// Package config loads drawer.yaml, the optional file that tunes a drawer
// without recompiling its host.
//
//	version: v1.0.0
//	drawer:
//	  menu_width: 30
//	  menu_offset: 300
//	  trigger_distance: 50
//	  touch_slop_sensitivity: 1.0
//	  settle_duration: 256ms
//	  max_settle_duration: 600ms
//	  shadow_color: "#777777"
//
// Every field is optional. A missing file resolves to the drawer defaults.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/drawer/pkg/drawer"
	"github.com/go-drift/drawer/pkg/errors"
	"github.com/go-drift/drawer/pkg/graphics"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "drawer.yaml"

// SchemaVersion is the schema version written by this package. Files must
// share its major version.
const SchemaVersion = "v1.0.0"

// Config is the parsed drawer.yaml.
type Config struct {
	Version string       `yaml:"version,omitempty"`
	Drawer  DrawerConfig `yaml:"drawer"`
}

// DrawerConfig holds drawer settings. Nil pointers mean "use the default",
// so an explicit zero can still be told apart.
type DrawerConfig struct {
	MenuWidth            int            `yaml:"menu_width,omitempty"`
	MenuOffset           *int           `yaml:"menu_offset,omitempty"`
	TriggerDistance      *int           `yaml:"trigger_distance,omitempty"`
	TouchSlopSensitivity *float64       `yaml:"touch_slop_sensitivity,omitempty"`
	SettleDuration       *time.Duration `yaml:"settle_duration,omitempty"`
	MaxSettleDuration    *time.Duration `yaml:"max_settle_duration,omitempty"`
	ShadowColor          string         `yaml:"shadow_color,omitempty"`
}

// Resolved contains validated configuration values with defaults applied.
type Resolved struct {
	// Source is the file the values came from, or empty for defaults.
	Source  string
	Version string
	// MenuWidth is only meaningful to hosts that size the menu pane
	// themselves; zero leaves it to the host.
	MenuWidth            int
	MenuOffset           int
	TriggerDistance      int
	TouchSlopSensitivity float64
	SettleDuration       time.Duration
	MaxSettleDuration    time.Duration
	ShadowColor          graphics.Color
}

// LoadOptional reads drawer.yaml from dir if present. A missing file yields
// an empty Config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.New("config.Load", errors.KindConfig, fmt.Errorf("failed to read %s: %w", FileName, err))
	}
	return Parse(bytes.NewReader(data), path)
}

// Parse decodes a drawer.yaml document. Unknown fields are rejected so that
// typos do not silently fall back to defaults.
func Parse(r io.Reader, source string) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.New("config.Parse", errors.KindParsing, &errors.ParseError{
			Source:   source,
			DataType: FileName,
			Reason:   err.Error(),
		})
	}
	return &cfg, nil
}

// Resolve loads drawer.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	source := ""
	if !cfg.isZero() {
		source = filepath.Join(dir, FileName)
	}
	return cfg.Resolve(source)
}

// Resolve applies defaults to c and validates the result. source names the
// origin of c in the result and in errors.
func (c *Config) Resolve(source string) (*Resolved, error) {
	version, err := checkVersion(c.Version)
	if err != nil {
		return nil, err
	}

	d := drawer.DefaultOptions()
	res := &Resolved{
		Source:               source,
		Version:              version,
		MenuWidth:            c.Drawer.MenuWidth,
		MenuOffset:           d.MenuOffset,
		TriggerDistance:      d.TriggerDistance,
		TouchSlopSensitivity: d.TouchSlopSensitivity,
		SettleDuration:       d.SettleDuration,
		MaxSettleDuration:    d.MaxSettleDuration,
		ShadowColor:          d.ShadowBase,
	}
	if v := c.Drawer.MenuOffset; v != nil {
		res.MenuOffset = *v
	}
	if v := c.Drawer.TriggerDistance; v != nil {
		res.TriggerDistance = *v
	}
	if v := c.Drawer.TouchSlopSensitivity; v != nil {
		res.TouchSlopSensitivity = *v
	}
	if v := c.Drawer.SettleDuration; v != nil {
		res.SettleDuration = *v
	}
	if v := c.Drawer.MaxSettleDuration; v != nil {
		res.MaxSettleDuration = *v
	}
	if s := strings.TrimSpace(c.Drawer.ShadowColor); s != "" {
		col, err := graphics.ParseHexColor(s)
		if err != nil || len(s) != len("#rrggbb") {
			return nil, invalid("drawer.shadow_color", s, "must be #rrggbb")
		}
		res.ShadowColor = col
	}

	if err := res.validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Resolved) validate() error {
	switch {
	case r.MenuWidth < 0:
		return invalid("drawer.menu_width", r.MenuWidth, "must not be negative")
	case r.MenuOffset < 0:
		return invalid("drawer.menu_offset", r.MenuOffset, "must not be negative")
	case r.TriggerDistance < 0:
		return invalid("drawer.trigger_distance", r.TriggerDistance, "must not be negative")
	case r.TouchSlopSensitivity <= 0:
		return invalid("drawer.touch_slop_sensitivity", r.TouchSlopSensitivity, "must be positive")
	case r.SettleDuration < 0:
		return invalid("drawer.settle_duration", r.SettleDuration, "must not be negative")
	case r.MaxSettleDuration < 0:
		return invalid("drawer.max_settle_duration", r.MaxSettleDuration, "must not be negative")
	}
	return nil
}

// Options converts the resolved values into drawer options.
func (r *Resolved) Options() []drawer.Option {
	return []drawer.Option{
		drawer.WithMenuOffset(r.MenuOffset),
		drawer.WithTriggerDistance(r.TriggerDistance),
		drawer.WithTouchSlopSensitivity(r.TouchSlopSensitivity),
		drawer.WithSettleDuration(r.SettleDuration, r.MaxSettleDuration),
		drawer.WithShadowBase(r.ShadowColor),
	}
}

// MenuWidthOr returns the configured menu width, or def when none is set.
func (r *Resolved) MenuWidthOr(def int) int {
	if r.MenuWidth > 0 {
		return r.MenuWidth
	}
	return def
}

// FindConfigDir walks up from dir to the first directory containing
// drawer.yaml. It returns dir itself when none is found.
func FindConfigDir(dir string) string {
	for cur := dir; ; {
		if _, err := os.Stat(filepath.Join(cur, FileName)); err == nil {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return dir
		}
		cur = parent
	}
}

// checkVersion normalizes v to canonical semver and rejects other majors.
// An empty version means SchemaVersion.
func checkVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return SchemaVersion, nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", invalid("version", v, "not a semantic version")
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return "", invalid("version", v, fmt.Sprintf("unsupported schema, want %s.x", semver.Major(SchemaVersion)))
	}
	return semver.Canonical(v), nil
}

func invalid(field string, value any, reason string) error {
	return errors.New("config.Resolve", errors.KindConfig, &errors.ConfigError{Field: field, Value: value, Reason: reason})
}

func (c *Config) isZero() bool {
	return c.Version == "" && c.Drawer == (DrawerConfig{})
}
