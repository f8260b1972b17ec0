package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/drawer/cmd/drawer/internal/term"
	"github.com/go-drift/drawer/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Open the drawer demo in the terminal",
		Long: `Open a drawer in the terminal. Drag the content to the right with the
mouse to reveal the menu; release to let it snap open or closed.

Keys:
  space, enter   Toggle the drawer
  o, c           Open or close the drawer
  q, esc         Quit

Flags:
  --cols N       Menu width in terminal cells (default: drawer.yaml menu_width, or 30)
  --log FILE     Write errors and debug traces to FILE instead of discarding them`,
		Usage: "drawer run [--cols N] [--log FILE]",
		Run:   runRun,
	})
}

type runOptions struct {
	cols    int
	logFile string
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--cols":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--cols requires a number")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("--cols: invalid column count %q", args[i+1])
			}
			opts.cols = n
			i++
		case "--log":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--log requires a file path")
			}
			opts.logFile = args[i+1]
			i++
		default:
			return opts, fmt.Errorf("unexpected argument %q", args[i])
		}
	}
	return opts, nil
}

func runRun(args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	res, err := resolveConfig()
	if err != nil {
		return err
	}

	// The screen belongs to tcell while the demo runs, so diagnostics go to
	// the log file or nowhere.
	logOut, err := openLog(opts.logFile)
	if err != nil {
		return err
	}
	defer logOut.Close()
	log.SetOutput(logOut)
	prev := errors.SetHandler(&errors.LogHandler{Verbose: true, Out: logOut})
	defer errors.SetHandler(prev)

	cfg := term.DefaultConfig()
	cfg.MenuCols = res.MenuWidthOr(cfg.MenuCols)
	if opts.cols > 0 {
		cfg.MenuCols = opts.cols
	}
	cfg.Options = res.Options()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	host, err := term.New(screen, cfg)
	if err != nil {
		return err
	}
	defer host.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return host.Run(ctx)
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
