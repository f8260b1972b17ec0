package raster

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/go-drift/drawer/pkg/drawer"
)

// FrameWriter paints drawer frames and writes each one to a numbered PNG
// file in Dir.
type FrameWriter struct {
	Dir    string
	Prefix string
	// Scale resizes frames on output; 0 and 1 keep the drawer's size.
	Scale float64

	canvas *Canvas
	count  int
}

// NewFrameWriter creates dir if needed and returns a writer for frames of
// the given size.
func NewFrameWriter(dir string, width, height int) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FrameWriter{Dir: dir, Prefix: "frame", canvas: NewCanvas(width, height)}, nil
}

// Count returns the number of frames written.
func (w *FrameWriter) Count() int { return w.count }

// WriteFrame paints d and writes it out, returning the file path.
func (w *FrameWriter) WriteFrame(d *drawer.Drawer) (string, error) {
	w.canvas.Reset()
	d.Paint(w.canvas)

	path := filepath.Join(w.Dir, fmt.Sprintf("%s_%04d.png", w.Prefix, w.count))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	img := Scaled(w.canvas.Image(), w.Scale, draw.ApproxBiLinear)
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	w.count++
	return path, nil
}
