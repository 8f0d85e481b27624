//go:build !nocv

package cv

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/teslashibe/go-facecam/pkg/vision"
	"gocv.io/x/gocv"
)

// Camera is a capture device opened through OpenCV's VideoCapture.
type Camera struct {
	device string
	logger *slog.Logger

	mu     sync.Mutex
	vc     *gocv.VideoCapture
	props  vision.Properties
	closed bool
}

// OpenCamera opens device, which is either a numeric index ("0") or a file
// path / stream URL, and reads its properties once.
func OpenCamera(device string, logger *slog.Logger) (*Camera, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var id interface{} = device
	if n, err := strconv.Atoi(device); err == nil {
		id = n
	}

	vc, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, fmt.Errorf("open camera %q: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open camera %q: %w", device, ErrNotOpened)
	}

	props := vision.Properties{
		Width:  int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(vc.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    vc.Get(gocv.VideoCaptureFPS),
	}
	logger.Info("camera opened",
		"device", device,
		"width", props.Width,
		"height", props.Height,
		"fps", props.FPS,
	)

	return &Camera{
		device: device,
		logger: logger,
		vc:     vc,
		props:  props,
	}, nil
}

// Read grabs the next frame. A failed grab yields an empty frame so the
// caller can back off and retry.
func (c *Camera) Read() (vision.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, vision.ErrClosed
	}

	m := gocv.NewMat()
	if ok := c.vc.Read(&m); !ok {
		m.Close()
		return NewFrame(gocv.NewMat()), nil
	}
	return NewFrame(m), nil
}

func (c *Camera) Properties() vision.Properties {
	return c.props
}

// Close releases the device. Calling it again is a no-op.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.vc.Close(); err != nil {
		return fmt.Errorf("release camera %q: %w", c.device, err)
	}
	return nil
}
