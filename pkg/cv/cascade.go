//go:build !nocv

package cv

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/teslashibe/go-facecam/pkg/vision"
	"gocv.io/x/gocv"
)

// cascadeScaleImage is OpenCV's CASCADE_SCALE_IMAGE flag.
const cascadeScaleImage = 2

// Cascade is a Haar or LBP cascade classifier.
type Cascade struct {
	path       string
	classifier gocv.CascadeClassifier
	mu         sync.Mutex // Protects inference
}

// NewCascade loads a cascade XML file such as
// haarcascade_frontalface_alt.xml.
func NewCascade(path string) (*Cascade, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cascade file: %w", err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeLoad, path)
	}
	return &Cascade{path: path, classifier: classifier}, nil
}

// Detect runs multi-scale detection on f, which should already be gray and
// downscaled.
func (c *Cascade) Detect(f vision.Frame, p vision.DetectParams) ([]image.Rectangle, error) {
	m, err := matOf(f)
	if err != nil {
		return nil, err
	}
	if m.Empty() {
		return nil, vision.ErrEmptyImage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	rects := c.classifier.DetectMultiScaleWithParams(
		m.Mat,
		p.ScaleFactor,
		p.MinNeighbors,
		cascadeScaleImage,
		p.MinSize,
		p.MaxSize,
	)
	return rects, nil
}

func (c *Cascade) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.classifier.Close()
}
