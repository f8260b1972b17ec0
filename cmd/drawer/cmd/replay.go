package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/drawer/cmd/drawer/internal/script"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay gesture scripts and check their expectations",
		Long: `Replay one or more gesture scripts against a fresh drawer on a virtual
clock and check every expectation they contain.

A script is a YAML file:

  name: drag open
  display: {width: 800, height: 600}
  menu_width: 240
  steps:
    - down: {x: 10, y: 300}
    - move: {x: 110, y: 300}
    - up: {x: 110, y: 300}
    - settle: true
    - expect: {state: opened, content_left: 240}

Step kinds: down, move, up (pointer positions), cancel, wait (a duration),
settle, action (open, close, toggle, save, restore) and expect (state,
content_left, menu_left, shadow).

Flags:
  --verbose    Print the drawer after every step`,
		Usage: "drawer replay <script.yaml>... [--verbose]",
		Run:   runReplay,
	})
}

type replayOptions struct {
	verbose bool
}

func parseReplayArgs(args []string) ([]string, replayOptions) {
	opts := replayOptions{}
	files := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "--verbose":
			opts.verbose = true
		default:
			files = append(files, arg)
		}
	}
	return files, opts
}

func runReplay(args []string) error {
	files, opts := parseReplayArgs(args)
	if len(files) == 0 {
		return fmt.Errorf("at least one script is required\n\nUsage: drawer replay <script.yaml>... [--verbose]")
	}
	res, err := resolveConfig()
	if err != nil {
		return err
	}
	return replayFiles(os.Stdout, files, script.Runner{Options: res.Options()}, opts)
}

func replayFiles(w io.Writer, files []string, runner script.Runner, opts replayOptions) error {
	if opts.verbose {
		runner.Log = w
	}
	var failed []string
	for _, file := range files {
		s, err := script.Load(file)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s\n     %v\n", file, err)
			failed = append(failed, file)
			continue
		}
		result, err := runner.Run(s)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s\n     %v\n", s.Name, err)
			failed = append(failed, file)
			continue
		}
		fmt.Fprintf(w, "ok   %s (%d steps, %d frames, %s)\n", s.Name, result.Steps, result.Frames, result.State)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d scripts failed: %s", len(failed), len(files), strings.Join(failed, ", "))
	}
	return nil
}
