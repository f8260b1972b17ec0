package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-drift/drawer/cmd/drawer/internal/raster"
	"github.com/go-drift/drawer/cmd/drawer/internal/script"
	"github.com/go-drift/drawer/pkg/drawer"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a gesture script to PNG frames",
		Long: `Replay a gesture script and write every frame it produces as a PNG
file named frame_NNNN.png.

Flags:
  --out DIR     Output directory (required, created if missing)
  --scale N     Resize frames by factor N (default 1)
  --every N     Only write every Nth frame (default 1)`,
		Usage: "drawer render <script.yaml> --out DIR [--scale N] [--every N]",
		Run:   runRender,
	})
}

type renderOptions struct {
	out   string
	scale float64
	every int
}

func parseRenderArgs(args []string) ([]string, renderOptions, error) {
	opts := renderOptions{scale: 1, every: 1}
	var files []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--out", "--scale", "--every":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("%s requires a value", arg)
			}
			val := args[i+1]
			i++
			switch arg {
			case "--out":
				opts.out = val
			case "--scale":
				f, err := strconv.ParseFloat(val, 64)
				if err != nil || f <= 0 {
					return nil, opts, fmt.Errorf("--scale: invalid factor %q", val)
				}
				opts.scale = f
			case "--every":
				n, err := strconv.Atoi(val)
				if err != nil || n <= 0 {
					return nil, opts, fmt.Errorf("--every: invalid count %q", val)
				}
				opts.every = n
			}
		default:
			files = append(files, arg)
		}
	}
	if opts.out == "" {
		return nil, opts, fmt.Errorf("--out is required")
	}
	return files, opts, nil
}

func runRender(args []string) error {
	files, opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return fmt.Errorf("exactly one script is required\n\nUsage: drawer render <script.yaml> --out DIR")
	}
	res, err := resolveConfig()
	if err != nil {
		return err
	}
	n, err := renderScript(files[0], opts, res.Options())
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", n, opts.out)
	return nil
}

// renderScript replays the script at path and writes its frames, returning
// how many were written.
func renderScript(path string, opts renderOptions, drawerOpts []drawer.Option) (int, error) {
	s, err := script.Load(path)
	if err != nil {
		return 0, err
	}
	fw, err := raster.NewFrameWriter(opts.out, s.Display.Width, s.Display.Height)
	if err != nil {
		return 0, err
	}
	fw.Scale = opts.scale

	frame := 0
	runner := script.Runner{
		Options: drawerOpts,
		OnFrame: func(d *drawer.Drawer) error {
			defer func() { frame++ }()
			if frame%opts.every != 0 {
				return nil
			}
			_, err := fw.WriteFrame(d)
			return err
		},
	}
	if _, err := runner.Run(s); err != nil {
		return fw.Count(), err
	}
	return fw.Count(), nil
}
