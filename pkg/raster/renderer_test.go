package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/teslashibe/go-facecam/pkg/vision"
)

var white = image.NewUniform(color.White)

func nrgbaAt(t *testing.T, f *Frame, x, y int) color.NRGBA {
	t.Helper()
	return color.NRGBAModel.Convert(f.Img.At(x, y)).(color.NRGBA)
}

func TestFrame(t *testing.T) {
	f := Blank(64, 48, white)
	if f.Size() != image.Pt(64, 48) || f.Channels() != 3 || f.Empty() {
		t.Errorf("blank frame: size %v, channels %d, empty %v", f.Size(), f.Channels(), f.Empty())
	}

	g := NewFrame(image.NewGray(image.Rect(0, 0, 8, 8)))
	if g.Channels() != 1 {
		t.Errorf("gray channels: got %d", g.Channels())
	}

	offset := NewFrame(image.NewRGBA(image.Rect(10, 10, 20, 30)))
	if offset.Img.Bounds().Min != (image.Point{}) || offset.Size() != image.Pt(10, 20) {
		t.Errorf("offset image not re-anchored: bounds %v", offset.Img.Bounds())
	}

	f.Close()
	if !f.Empty() || !vision.IsEmpty(f) {
		t.Error("closed frame should be empty")
	}
}

func TestRenderer_Rectangle(t *testing.T) {
	r := NewRenderer()
	f := Blank(100, 100, white)
	red := color.RGBA{R: 255, A: 255}

	if err := r.Rectangle(f, image.Rect(20, 20, 60, 60), red, 4); err != nil {
		t.Fatalf("Rectangle: %v", err)
	}

	if got := nrgbaAt(t, f, 20, 40); got.R != 255 || got.G != 0 {
		t.Errorf("left edge: got %v, want red", got)
	}
	if got := nrgbaAt(t, f, 40, 40); got.G != 255 {
		t.Errorf("interior should stay white, got %v", got)
	}
	if got := nrgbaAt(t, f, 10, 10); got.G != 255 {
		t.Errorf("outside should stay white, got %v", got)
	}

	if err := r.Rectangle(f, image.Rect(70, 70, 80, 80), red, -1); err != nil {
		t.Fatalf("filled Rectangle: %v", err)
	}
	if got := nrgbaAt(t, f, 75, 75); got.G != 0 {
		t.Errorf("filled interior: got %v, want red", got)
	}
}

func TestRenderer_BlendRect(t *testing.T) {
	r := NewRenderer()
	f := Blank(100, 100, white)

	if err := r.BlendRect(f, image.Rect(50, 0, 100, 40), color.RGBA{A: 255}, 0.3); err != nil {
		t.Fatalf("BlendRect: %v", err)
	}

	got := nrgbaAt(t, f, 75, 20)
	if got.R < 70 || got.R > 85 {
		t.Errorf("blended pixel: got %d, want about 0.3*255", got.R)
	}
	if got := nrgbaAt(t, f, 25, 20); got.R != 255 {
		t.Errorf("pixel outside panel changed: %v", got)
	}

	// Off-frame panels are clipped, not rejected.
	if err := r.BlendRect(f, image.Rect(90, -10, 140, 10), color.RGBA{A: 255}, 0.3); err != nil {
		t.Errorf("clipped BlendRect: %v", err)
	}
}

func TestRenderer_Text(t *testing.T) {
	r := NewRenderer()
	style := vision.TextStyle{Scale: 0.8, Thickness: 1, Color: color.RGBA{G: 255, A: 255}}

	short, err := r.TextSize("Hi", style)
	if err != nil {
		t.Fatalf("TextSize: %v", err)
	}
	long, _ := r.TextSize("Press any key to exit", style)
	if short.X <= 0 || short.Y <= 0 || long.X <= short.X {
		t.Errorf("text sizes: short %v, long %v", short, long)
	}
	if long.Y != short.Y {
		t.Errorf("line height should not depend on the text: %d vs %d", short.Y, long.Y)
	}

	f := Blank(200, 60, image.NewUniform(color.Black))
	if err := r.PutText(f, "Faces: 1", image.Pt(5, 30), style); err != nil {
		t.Fatalf("PutText: %v", err)
	}
	lit := false
	for y := 0; y < 30 && !lit; y++ {
		for x := 5; x < 5+short.X*4; x++ {
			if nrgbaAt(t, f, x, y).G > 128 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("PutText drew nothing above the baseline")
	}
}

func TestRenderer_GrayscaleAndResize(t *testing.T) {
	r := NewRenderer()
	f := Blank(640, 480, white)

	gray, err := r.Grayscale(f)
	if err != nil {
		t.Fatalf("Grayscale: %v", err)
	}
	if gray.Channels() != 1 || gray.Size() != image.Pt(640, 480) {
		t.Errorf("gray: %d channels, size %v", gray.Channels(), gray.Size())
	}

	small, err := r.Resize(gray, 0.25, 0.25)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if small.Size() != image.Pt(160, 120) || small.Channels() != 1 {
		t.Errorf("resized: size %v, %d channels", small.Size(), small.Channels())
	}

	if _, err := r.Resize(gray, 0, 0.5); !errors.Is(err, vision.ErrEmptyImage) {
		t.Errorf("zero scale: got %v", err)
	}
}

func TestRenderer_EncodeJPEG(t *testing.T) {
	r := NewRenderer()
	data, err := r.EncodeJPEG(Blank(32, 16, white), 80)
	if err != nil {
		t.Fatalf("EncodeJPEG: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Size() != image.Pt(32, 16) {
		t.Errorf("decoded size: %v", img.Bounds().Size())
	}
}

func TestRenderer_ForeignFrame(t *testing.T) {
	r := NewRenderer()
	err := r.Rectangle(vision.NewMockFrame(10, 10), image.Rect(0, 0, 5, 5), color.RGBA{}, 1)
	if !errors.Is(err, vision.ErrForeignFrame) {
		t.Errorf("got %v, want ErrForeignFrame", err)
	}
}
