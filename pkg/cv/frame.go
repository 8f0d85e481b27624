//go:build !nocv

package cv

import (
	"fmt"
	"image"

	"github.com/teslashibe/go-facecam/pkg/vision"
	"gocv.io/x/gocv"
)

// Available reports whether this build links OpenCV.
const Available = true

// Frame is a vision.Frame backed by a gocv.Mat.
type Frame struct {
	Mat gocv.Mat
}

// NewFrame takes ownership of m.
func NewFrame(m gocv.Mat) *Frame {
	return &Frame{Mat: m}
}

func (f *Frame) Size() image.Point { return image.Pt(f.Mat.Cols(), f.Mat.Rows()) }
func (f *Frame) Channels() int     { return f.Mat.Channels() }
func (f *Frame) Empty() bool       { return f.Mat.Empty() }

// Dims returns the number of matrix dimensions.
func (f *Frame) Dims() int { return len(f.Mat.Size()) }

func (f *Frame) Close() error {
	return f.Mat.Close()
}

func matOf(f vision.Frame) (*Frame, error) {
	m, ok := f.(*Frame)
	if !ok {
		return nil, fmt.Errorf("%w: %T", vision.ErrForeignFrame, f)
	}
	return m, nil
}
