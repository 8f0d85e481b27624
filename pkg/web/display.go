package web

import (
	"sync/atomic"
	"time"

	"github.com/teslashibe/go-facecam/pkg/vision"
)

// Display is a vision.Display that streams frames to browser clients and
// reads keys posted to the server.
type Display struct {
	s      *Server
	closed atomic.Bool
}

// Display returns the server's display sink.
func (s *Server) Display() *Display {
	return &Display{s: s}
}

// Show encodes f as JPEG and broadcasts it. Frames are not encoded while no
// one is watching.
func (d *Display) Show(f vision.Frame) error {
	if d.closed.Load() {
		return vision.ErrClosed
	}
	if d.s.cameraHub.ClientCount() == 0 {
		return nil
	}
	data, err := d.s.renderer.EncodeJPEG(f, d.s.cfg.JPEGQuality)
	if err != nil {
		return err
	}
	d.s.cameraHub.BroadcastBinary(data)
	return nil
}

// PollKey waits up to timeout for a key posted through the API or the
// status websocket.
func (d *Display) PollKey(timeout time.Duration) (vision.Key, error) {
	if d.closed.Load() {
		return vision.NoKey, vision.ErrClosed
	}
	select {
	case k := <-d.s.keys:
		return k, nil
	default:
	}
	if timeout <= 0 {
		return vision.NoKey, nil
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case k := <-d.s.keys:
		return k, nil
	case <-t.C:
		return vision.NoKey, nil
	}
}

// Close detaches the display. The server keeps running until Shutdown.
func (d *Display) Close() error {
	d.closed.Store(true)
	return nil
}
