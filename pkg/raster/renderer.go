package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/teslashibe/go-facecam/pkg/vision"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Renderer draws on raster frames.
type Renderer struct {
	fonts faceCache
}

// NewRenderer returns a renderer using the Go Regular font.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// TextSize returns the advance width and the ascent of text, the same
// box OpenCV reports above the baseline.
func (r *Renderer) TextSize(text string, style vision.TextStyle) (image.Point, error) {
	face, err := r.fonts.face(style.Scale)
	if err != nil {
		return image.Point{}, err
	}
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Ascent.Ceil()
	return image.Pt(w, h), nil
}

// PutText draws text with its baseline starting at org. Thickness above 1
// is emulated by overstriking.
func (r *Renderer) PutText(f vision.Frame, text string, org image.Point, style vision.TextStyle) error {
	fr, err := frameOf(f)
	if err != nil {
		return err
	}
	face, err := r.fonts.face(style.Scale)
	if err != nil {
		return err
	}

	d := &font.Drawer{
		Dst:  fr.Img,
		Src:  image.NewUniform(opaque(style.Color)),
		Face: face,
	}
	for i := 0; i < max(style.Thickness, 1); i++ {
		d.Dot = fixed.P(org.X+i, org.Y)
		d.DrawString(text)
	}
	return nil
}

// Rectangle outlines rect with a border of the given thickness centered on
// its edges. A negative thickness fills it.
func (r *Renderer) Rectangle(f vision.Frame, rect image.Rectangle, c color.RGBA, thickness int) error {
	fr, err := frameOf(f)
	if err != nil {
		return err
	}
	src := image.NewUniform(opaque(c))
	if thickness < 0 {
		draw.Draw(fr.Img, rect, src, image.Point{}, draw.Src)
		return nil
	}

	t := max(thickness, 1)
	outer := rect.Inset(-(t / 2))
	inner := outer.Inset(t)
	if inner.Empty() {
		draw.Draw(fr.Img, outer, src, image.Point{}, draw.Src)
		return nil
	}
	bands := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y),
		image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y),
		image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y),
	}
	for _, b := range bands {
		draw.Draw(fr.Img, b, src, image.Point{}, draw.Src)
	}
	return nil
}

// BlendRect mixes a solid c panel into rect, keeping keep of the original
// pixels.
func (r *Renderer) BlendRect(f vision.Frame, rect image.Rectangle, c color.RGBA, keep float64) error {
	fr, err := frameOf(f)
	if err != nil {
		return err
	}
	rect = rect.Intersect(fr.Img.Bounds())
	if rect.Empty() {
		return nil
	}

	under := imaging.Crop(fr.Img, rect)
	panel := imaging.New(rect.Dx(), rect.Dy(), opaque(c))
	blended := imaging.Overlay(under, panel, image.Point{}, 1-keep)
	draw.Draw(fr.Img, rect, blended, image.Point{}, draw.Src)
	return nil
}

func (r *Renderer) Grayscale(f vision.Frame) (vision.Frame, error) {
	fr, err := frameOf(f)
	if err != nil {
		return nil, err
	}
	return &Frame{Img: toGray(fr.Img)}, nil
}

// Resize scales f by fx and fy with bilinear filtering. Gray input stays
// gray.
func (r *Renderer) Resize(f vision.Frame, fx, fy float64) (vision.Frame, error) {
	fr, err := frameOf(f)
	if err != nil {
		return nil, err
	}
	sz := fr.Size()
	w := int(math.Round(float64(sz.X) * fx))
	h := int(math.Round(float64(sz.Y) * fy))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("resize %v by (%v, %v): %w", sz, fx, fy, vision.ErrEmptyImage)
	}

	out := imaging.Resize(fr.Img, w, h, imaging.Linear)
	if fr.Channels() == 1 {
		return &Frame{Img: toGray(out)}, nil
	}
	return &Frame{Img: out}, nil
}

func (r *Renderer) EncodeJPEG(f vision.Frame, quality int) ([]byte, error) {
	fr, err := frameOf(f)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fr.Img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}
