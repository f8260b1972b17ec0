// Package script reads gesture scripts and replays them against a drawer.
//
// A script is a YAML document describing a display, a menu width and a list
// of steps. Each step either feeds the drawer one pointer event, lets time
// pass, invokes a drawer action, or checks the drawer's state:
//
//	name: drag open
//	display: {width: 800, height: 600}
//	menu_width: 240
//	steps:
//	  - down: {x: 10, y: 300}
//	  - move: {x: 110, y: 300}
//	  - up: {x: 110, y: 300}
//	  - settle: true
//	  - expect: {state: opened, content_left: 240, shadow: "4d"}
package script

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/drawer/pkg/errors"
)

// Defaults applied to fields a script leaves out.
const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultMenuWidth = 240
)

// Actions a step may invoke.
const (
	ActionOpen    = "open"
	ActionClose   = "close"
	ActionToggle  = "toggle"
	ActionSave    = "save"
	ActionRestore = "restore"
)

// Script is a parsed gesture script.
type Script struct {
	Name      string  `yaml:"name"`
	Display   Display `yaml:"display"`
	MenuWidth int     `yaml:"menu_width"`
	Steps     []Step  `yaml:"steps"`
}

// Display is the size the script's drawer reports to it.
type Display struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Point is a pointer position in drawer pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Step is one entry of a script. Exactly one of the pointer, time or action
// fields is set; Expect may accompany any of them or stand alone.
type Step struct {
	Down   *Point        `yaml:"down,omitempty"`
	Move   *Point        `yaml:"move,omitempty"`
	Up     *Point        `yaml:"up,omitempty"`
	Cancel bool          `yaml:"cancel,omitempty"`
	Wait   time.Duration `yaml:"wait,omitempty"`
	Settle bool          `yaml:"settle,omitempty"`
	Action string        `yaml:"action,omitempty"`
	Expect *Expect       `yaml:"expect,omitempty"`
}

// Expect lists the drawer properties checked after a step. Empty fields are
// not checked.
type Expect struct {
	State       string `yaml:"state,omitempty"`
	ContentLeft *int   `yaml:"content_left,omitempty"`
	MenuLeft    *int   `yaml:"menu_left,omitempty"`
	Shadow      string `yaml:"shadow,omitempty"`
}

// Kind names what the step does.
func (s Step) Kind() string {
	switch {
	case s.Down != nil:
		return "down"
	case s.Move != nil:
		return "move"
	case s.Up != nil:
		return "up"
	case s.Cancel:
		return "cancel"
	case s.Wait > 0:
		return "wait"
	case s.Settle:
		return "settle"
	case s.Action != "":
		return s.Action
	case s.Expect != nil:
		return "expect"
	default:
		return "empty"
	}
}

func (s Step) String() string {
	switch {
	case s.Down != nil:
		return fmt.Sprintf("down (%g,%g)", s.Down.X, s.Down.Y)
	case s.Move != nil:
		return fmt.Sprintf("move (%g,%g)", s.Move.X, s.Move.Y)
	case s.Up != nil:
		return fmt.Sprintf("up (%g,%g)", s.Up.X, s.Up.Y)
	case s.Wait > 0:
		return "wait " + s.Wait.String()
	default:
		return s.Kind()
	}
}

func (s Step) count() int {
	n := 0
	for _, set := range []bool{s.Down != nil, s.Move != nil, s.Up != nil, s.Cancel, s.Wait > 0, s.Settle, s.Action != ""} {
		if set {
			n++
		}
	}
	return n
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("script.Load", errors.KindParsing, err)
	}
	return Parse(bytes.NewReader(data), path)
}

// Parse decodes a script, applies defaults and validates its steps.
func Parse(r io.Reader, source string) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, parseError(source, "empty script")
		}
		return nil, parseError(source, err.Error())
	}
	if s.Name == "" {
		s.Name = source
	}
	if s.Display.Width == 0 {
		s.Display.Width = DefaultWidth
	}
	if s.Display.Height == 0 {
		s.Display.Height = DefaultHeight
	}
	if s.MenuWidth == 0 {
		s.MenuWidth = DefaultMenuWidth
	}
	if err := s.validate(); err != nil {
		return nil, parseError(source, err.Error())
	}
	return &s, nil
}

func (s *Script) validate() error {
	if s.Display.Width < 0 || s.Display.Height < 0 {
		return fmt.Errorf("display %dx%d must be positive", s.Display.Width, s.Display.Height)
	}
	if s.MenuWidth < 0 {
		return fmt.Errorf("menu_width %d must be positive", s.MenuWidth)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	saved := false
	for i, st := range s.Steps {
		switch n := st.count(); {
		case n > 1:
			return fmt.Errorf("step %d: more than one of down, move, up, cancel, wait, settle, action", i+1)
		case n == 0 && st.Expect == nil:
			return fmt.Errorf("step %d: empty", i+1)
		}
		if st.Wait < 0 {
			return fmt.Errorf("step %d: negative wait %s", i+1, st.Wait)
		}
		switch st.Action {
		case "", ActionOpen, ActionClose, ActionToggle:
		case ActionSave:
			saved = true
		case ActionRestore:
			if !saved {
				return fmt.Errorf("step %d: restore without an earlier save", i+1)
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, st.Action)
		}
		if e := st.Expect; e != nil && e.State != "" && e.State != "opened" && e.State != "closed" {
			return fmt.Errorf("step %d: unknown state %q", i+1, e.State)
		}
	}
	return nil
}

func parseError(source, reason string) error {
	return errors.New("script.Parse", errors.KindParsing, &errors.ParseError{
		Source:   source,
		DataType: "gesture script",
		Reason:   reason,
	})
}
