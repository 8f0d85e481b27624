// Package vision defines the boundary between the annotation loop and the
// library that owns pixels, capture devices and windows.
//
// Two backends implement it: pkg/cv (OpenCV through gocv) and pkg/raster
// (pure Go). The loop in pkg/annotate only talks to these interfaces, which
// keeps it testable with the fakes in mock.go.
package vision

import (
	"image"
	"image/color"
	"time"
)

// Frame is one captured raster image, color (3 channels) or gray (1 channel).
// A Frame is owned by whoever received it and must be closed exactly once.
type Frame interface {
	// Size returns width (X) and height (Y) in pixels.
	Size() image.Point

	// Channels returns 1 for grayscale frames and 3 for color frames.
	Channels() int

	// Empty reports whether the frame carries no pixels.
	Empty() bool

	// Close releases the frame's pixel storage.
	Close() error
}

// IsEmpty reports whether f is nil, empty or zero-sized.
func IsEmpty(f Frame) bool {
	if f == nil || f.Empty() {
		return true
	}
	sz := f.Size()
	return sz.X <= 0 || sz.Y <= 0
}

// Properties describe a capture session. They are read once when the source
// is opened and treated as constant afterwards.
type Properties struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
}

// Source yields frames on demand.
type Source interface {
	// Read returns the next frame. An empty frame is a transient capture gap,
	// not an error. io.EOF signals that a finite source is exhausted.
	Read() (Frame, error)

	// Properties returns the session properties captured at open time.
	Properties() Properties

	// Close releases the capture device.
	Close() error
}

// DetectParams are the tuning knobs handed to a Detector on each call.
type DetectParams struct {
	MinSize      image.Point // Smallest object considered
	MaxSize      image.Point // Largest object considered; zero means unbounded
	ScaleFactor  float64     // Image pyramid step
	MinNeighbors int         // Overlapping hits needed to keep a candidate
}

// Detector finds faces in a frame. Rectangles are in the coordinate space of
// the frame it was given.
type Detector interface {
	Detect(f Frame, p DetectParams) ([]image.Rectangle, error)
	Close() error
}

// TextStyle controls how overlay text is drawn.
type TextStyle struct {
	Scale     float64    `yaml:"scale" json:"scale"`
	Thickness int        `yaml:"thickness" json:"thickness"`
	Color     color.RGBA `yaml:"color" json:"color"`
}

// Renderer performs the pixel operations the loop needs.
type Renderer interface {
	// TextSize measures text; Y is the height above the baseline.
	TextSize(text string, style TextStyle) (image.Point, error)

	// PutText draws text with its baseline starting at org.
	PutText(f Frame, text string, org image.Point, style TextStyle) error

	// Rectangle outlines r. A negative thickness fills it.
	Rectangle(f Frame, r image.Rectangle, c color.RGBA, thickness int) error

	// BlendRect fills r with c, keeping `keep` of the original pixels.
	BlendRect(f Frame, r image.Rectangle, c color.RGBA, keep float64) error

	// Grayscale returns a new single-channel copy of f.
	Grayscale(f Frame) (Frame, error)

	// Resize returns a new copy of f scaled by fx, fy.
	Resize(f Frame, fx, fy float64) (Frame, error)

	// EncodeJPEG compresses f for transport.
	EncodeJPEG(f Frame, quality int) ([]byte, error)
}

// Display shows frames and reports key presses.
type Display interface {
	Show(f Frame) error

	// PollKey waits at most timeout for a key press and returns NoKey when
	// none arrived.
	PollKey(timeout time.Duration) (Key, error)

	// Close destroys every window the display created.
	Close() error
}

// Loader reads still images.
type Loader interface {
	// Load reads the image at path, converted to gray when gray is set.
	Load(path string, gray bool) (Frame, error)

	// Decode reads an encoded image (JPEG, PNG, ...) from memory.
	Decode(data []byte) (Frame, error)
}

// Dimensioned is implemented by frames that know their matrix dimensionality.
type Dimensioned interface {
	Dims() int
}
