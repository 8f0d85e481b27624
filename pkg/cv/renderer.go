//go:build !nocv

package cv

import (
	"fmt"
	"image"
	"image/color"

	"github.com/teslashibe/go-facecam/pkg/vision"
	"gocv.io/x/gocv"
)

// Renderer draws on Mats with OpenCV.
type Renderer struct {
	Font     gocv.HersheyFont
	LineType gocv.LineType
}

// NewRenderer returns a renderer using the Hershey Duplex font with
// anti-aliased lines.
func NewRenderer() *Renderer {
	return &Renderer{
		Font:     gocv.FontHersheyDuplex,
		LineType: gocv.LineAA,
	}
}

func (r *Renderer) TextSize(text string, style vision.TextStyle) (image.Point, error) {
	return gocv.GetTextSize(text, r.Font, style.Scale, style.Thickness), nil
}

func (r *Renderer) PutText(f vision.Frame, text string, org image.Point, style vision.TextStyle) error {
	m, err := matOf(f)
	if err != nil {
		return err
	}
	if err := gocv.PutTextWithParams(&m.Mat, text, org, r.Font, style.Scale, style.Color, style.Thickness, r.LineType, false); err != nil {
		return fmt.Errorf("put text %q: %w", text, err)
	}
	return nil
}

func (r *Renderer) Rectangle(f vision.Frame, rect image.Rectangle, c color.RGBA, thickness int) error {
	m, err := matOf(f)
	if err != nil {
		return err
	}
	if err := gocv.Rectangle(&m.Mat, rect, c, thickness); err != nil {
		return fmt.Errorf("rectangle %v: %w", rect, err)
	}
	return nil
}

// BlendRect fills rect with c and mixes it into the frame, keeping keep of
// the original pixels.
func (r *Renderer) BlendRect(f vision.Frame, rect image.Rectangle, c color.RGBA, keep float64) error {
	m, err := matOf(f)
	if err != nil {
		return err
	}
	rect = rect.Intersect(image.Rectangle{Max: m.Size()})
	if rect.Empty() {
		return nil
	}

	roi := m.Mat.Region(rect)
	defer roi.Close()
	overlay := roi.Clone()
	defer overlay.Close()

	if err := gocv.Rectangle(&overlay, image.Rect(0, 0, rect.Dx(), rect.Dy()), c, -1); err != nil {
		return fmt.Errorf("fill panel: %w", err)
	}
	if err := gocv.AddWeighted(roi, keep, overlay, 1-keep, 0, &roi); err != nil {
		return fmt.Errorf("blend panel: %w", err)
	}
	return nil
}

func (r *Renderer) Grayscale(f vision.Frame) (vision.Frame, error) {
	m, err := matOf(f)
	if err != nil {
		return nil, err
	}
	if m.Channels() == 1 {
		return NewFrame(m.Mat.Clone()), nil
	}
	gray := gocv.NewMat()
	if err := gocv.CvtColor(m.Mat, &gray, gocv.ColorBGRToGray); err != nil {
		gray.Close()
		return nil, fmt.Errorf("convert to gray: %w", err)
	}
	return NewFrame(gray), nil
}

func (r *Renderer) Resize(f vision.Frame, fx, fy float64) (vision.Frame, error) {
	m, err := matOf(f)
	if err != nil {
		return nil, err
	}
	dst := gocv.NewMat()
	if err := gocv.Resize(m.Mat, &dst, image.Point{}, fx, fy, gocv.InterpolationLinear); err != nil {
		dst.Close()
		return nil, fmt.Errorf("resize by (%v, %v): %w", fx, fy, err)
	}
	return NewFrame(dst), nil
}

func (r *Renderer) EncodeJPEG(f vision.Frame, quality int) ([]byte, error) {
	m, err := matOf(f)
	if err != nil {
		return nil, err
	}
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, m.Mat, []int{int(gocv.IMWriteJpegQuality), quality})
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()
	return append([]byte(nil), buf.GetBytes()...), nil
}
