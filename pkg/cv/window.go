//go:build !nocv

package cv

import (
	"fmt"
	"time"

	"github.com/teslashibe/go-facecam/pkg/vision"
	"gocv.io/x/gocv"
)

// Window is a HighGUI window.
type Window struct {
	name   string
	win    *gocv.Window
	closed bool
}

// NewWindow creates a named window. HighGUI creates it normal with a kept
// aspect ratio; it is then switched to autosize so frames show at their
// native resolution.
func NewWindow(name string) (*Window, error) {
	win := gocv.NewWindow(name)
	if err := win.SetWindowProperty(gocv.WindowPropertyAutosize, gocv.WindowAutosize); err != nil {
		win.Close()
		return nil, fmt.Errorf("window %q autosize: %w", name, err)
	}
	return &Window{name: name, win: win}, nil
}

func (w *Window) Show(f vision.Frame) error {
	m, err := matOf(f)
	if err != nil {
		return err
	}
	if w.closed {
		return vision.ErrClosed
	}
	if m.Empty() {
		return fmt.Errorf("show in %q: %w", w.name, vision.ErrEmptyImage)
	}
	if err := w.win.IMShow(m.Mat); err != nil {
		return fmt.Errorf("show in %q: %w", w.name, err)
	}
	return nil
}

// PollKey waits up to timeout for a key. HighGUI also pumps window events
// here, so it must be called after every Show.
func (w *Window) PollKey(timeout time.Duration) (vision.Key, error) {
	if w.closed {
		return vision.NoKey, vision.ErrClosed
	}
	return normalizeKey(w.win.WaitKey(waitMillis(timeout.Milliseconds()))), nil
}

// Close destroys the window. Calling it again is a no-op.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.win.Close()
}
