//go:build !nocv

package cv

import (
	"fmt"

	"github.com/teslashibe/go-facecam/pkg/vision"
	"gocv.io/x/gocv"
)

// Loader reads images with OpenCV's codecs.
type Loader struct{}

// NewLoader returns a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads path as 3-channel BGR, or 1-channel gray when gray is set.
func (l *Loader) Load(path string, gray bool) (vision.Frame, error) {
	flags := gocv.IMReadColor
	if gray {
		flags = gocv.IMReadGrayScale
	}
	m := gocv.IMRead(path, flags)
	if m.Empty() {
		m.Close()
		return nil, fmt.Errorf("%w: %s", vision.ErrEmptyImage, path)
	}
	return NewFrame(m), nil
}

// Decode decodes an encoded image held in memory.
func (l *Loader) Decode(data []byte) (vision.Frame, error) {
	m, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if m.Empty() {
		m.Close()
		return nil, vision.ErrEmptyImage
	}
	return NewFrame(m), nil
}
