//go:build nocv

package cv

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/teslashibe/go-facecam/pkg/vision"
)

// Available reports whether this build links OpenCV.
const Available = false

// Camera is unavailable without OpenCV.
type Camera struct{}

func OpenCamera(device string, logger *slog.Logger) (*Camera, error) {
	return nil, ErrUnavailable
}

func (c *Camera) Read() (vision.Frame, error)    { return nil, ErrUnavailable }
func (c *Camera) Properties() vision.Properties { return vision.Properties{} }
func (c *Camera) Close() error                  { return nil }

// Cascade is unavailable without OpenCV.
type Cascade struct{}

func NewCascade(path string) (*Cascade, error) {
	return nil, ErrUnavailable
}

func (c *Cascade) Detect(f vision.Frame, p vision.DetectParams) ([]image.Rectangle, error) {
	return nil, ErrUnavailable
}

func (c *Cascade) Close() error { return nil }

// Window is unavailable without OpenCV.
type Window struct{}

func NewWindow(name string) (*Window, error) {
	return nil, ErrUnavailable
}

func (w *Window) Show(f vision.Frame) error { return ErrUnavailable }
func (w *Window) PollKey(timeout time.Duration) (vision.Key, error) {
	return vision.NoKey, ErrUnavailable
}
func (w *Window) Close() error { return nil }

// Renderer is unavailable without OpenCV.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) TextSize(text string, style vision.TextStyle) (image.Point, error) {
	return image.Point{}, ErrUnavailable
}

func (r *Renderer) PutText(f vision.Frame, text string, org image.Point, style vision.TextStyle) error {
	return ErrUnavailable
}

func (r *Renderer) Rectangle(f vision.Frame, rect image.Rectangle, c color.RGBA, thickness int) error {
	return ErrUnavailable
}

func (r *Renderer) BlendRect(f vision.Frame, rect image.Rectangle, c color.RGBA, keep float64) error {
	return ErrUnavailable
}

func (r *Renderer) Grayscale(f vision.Frame) (vision.Frame, error) { return nil, ErrUnavailable }

func (r *Renderer) Resize(f vision.Frame, fx, fy float64) (vision.Frame, error) {
	return nil, ErrUnavailable
}

func (r *Renderer) EncodeJPEG(f vision.Frame, quality int) ([]byte, error) {
	return nil, ErrUnavailable
}

// Loader is unavailable without OpenCV.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

func (l *Loader) Load(path string, gray bool) (vision.Frame, error) { return nil, ErrUnavailable }
func (l *Loader) Decode(data []byte) (vision.Frame, error)          { return nil, ErrUnavailable }
