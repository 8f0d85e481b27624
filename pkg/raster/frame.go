// Package raster is a pure-Go backend for the preview loop. Frames are
// standard library images, drawing uses golang.org/x/image fonts and
// disintegration/imaging, and faces are found with the pigo detector.
package raster

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

// Frame is a vision.Frame over an *image.NRGBA (color) or *image.Gray.
type Frame struct {
	Img draw.Image
}

// NewFrame wraps img. Gray images stay single-channel; anything else is
// copied into an NRGBA buffer anchored at the origin.
func NewFrame(img image.Image) *Frame {
	switch m := img.(type) {
	case *image.Gray:
		if m.Bounds().Min == (image.Point{}) {
			return &Frame{Img: m}
		}
		return &Frame{Img: toGray(m)}
	case *image.NRGBA:
		if m.Bounds().Min == (image.Point{}) {
			return &Frame{Img: m}
		}
	}
	return &Frame{Img: imaging.Clone(img)}
}

// Blank returns a w×h color frame filled with c.
func Blank(w, h int, c image.Image) *Frame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), c, image.Point{}, draw.Src)
	return &Frame{Img: img}
}

func (f *Frame) Size() image.Point {
	if f.Img == nil {
		return image.Point{}
	}
	return f.Img.Bounds().Size()
}

func (f *Frame) Channels() int {
	if _, ok := f.Img.(*image.Gray); ok {
		return 1
	}
	return 3
}

func (f *Frame) Empty() bool {
	return f.Img == nil || f.Img.Bounds().Empty()
}

// Dims is always 2 for raster images.
func (f *Frame) Dims() int { return 2 }

// Close drops the pixel buffer.
func (f *Frame) Close() error {
	f.Img = nil
	return nil
}

func frameOf(f vision.Frame) (*Frame, error) {
	r, ok := f.(*Frame)
	if !ok {
		return nil, fmt.Errorf("%w: %T", vision.ErrForeignFrame, f)
	}
	if r.Img == nil {
		return nil, vision.ErrClosed
	}
	return r, nil
}

func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}
