package testing

import "sync"

// FakeHost is a drawer.Host with a fixed display size that counts redraw
// requests instead of scheduling frames.
type FakeHost struct {
	Width  int
	Height int

	mu      sync.Mutex
	redraws int
	pending bool
}

// NewFakeHost returns a host with the given display size.
func NewFakeHost(width, height int) *FakeHost {
	return &FakeHost{Width: width, Height: height}
}

// DisplaySize returns the configured size.
func (h *FakeHost) DisplaySize() (int, int) {
	return h.Width, h.Height
}

// RequestRedraw records a redraw request.
func (h *FakeHost) RequestRedraw() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redraws++
	h.pending = true
}

// Redraws returns the total number of redraw requests.
func (h *FakeHost) Redraws() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.redraws
}

// TakeRedraw reports whether a redraw was requested since the last call and
// clears the request.
func (h *FakeHost) TakeRedraw() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.pending
	h.pending = false
	return p
}
