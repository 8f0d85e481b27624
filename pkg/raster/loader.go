package raster

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

// Loader reads jpeg, png, gif, bmp, tiff and webp files.
type Loader struct{}

// NewLoader returns a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads path, honouring EXIF orientation. With gray set the frame is
// converted to a single channel.
func (l *Loader) Load(path string, gray bool) (vision.Frame, error) {
	img, err := open(path)
	if err != nil {
		return nil, err
	}
	return frameFor(img, gray)
}

// Decode decodes an encoded image held in memory.
func (l *Loader) Decode(data []byte) (vision.Frame, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		var werr error
		if img, werr = webp.Decode(bytes.NewReader(data)); werr != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
	}
	return frameFor(img, false)
}

func open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	if !strings.EqualFold(filepath.Ext(path), ".webp") {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	f, ferr := os.Open(path)
	if ferr != nil {
		return nil, ferr
	}
	defer f.Close()
	img, werr := webp.Decode(f)
	if werr != nil {
		return nil, fmt.Errorf("decode webp %s: %w", path, werr)
	}
	return img, nil
}

func frameFor(img image.Image, gray bool) (vision.Frame, error) {
	if img.Bounds().Empty() {
		return nil, vision.ErrEmptyImage
	}
	if gray {
		return &Frame{Img: toGray(img)}, nil
	}
	return NewFrame(img), nil
}
