package raster

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	pigo "github.com/esimov/pigo/core"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

// ErrBadCascade is returned for files that are not pigo cascades.
var ErrBadCascade = errors.New("raster: invalid pigo cascade")

// PigoConfig configures the pure-Go face detector.
type PigoConfig struct {
	CascadePath  string  `yaml:"cascade_path" json:"cascade_path"` // pigo "facefinder" file
	MaxSize      int     `yaml:"max_size" json:"max_size"`         // Used when DetectParams.MaxSize is zero
	ShiftFactor  float64 `yaml:"shift_factor" json:"shift_factor"`
	IoUThreshold float64 `yaml:"iou_threshold" json:"iou_threshold"`
	MinQuality   float32 `yaml:"min_quality" json:"min_quality"` // Detections below this score are dropped
	Angle        float64 `yaml:"angle" json:"angle"`             // Cascade rotation, 1.0 is 2π
}

// DefaultPigoConfig returns pigo's recommended settings.
func DefaultPigoConfig() PigoConfig {
	return PigoConfig{
		MaxSize:      1000,
		ShiftFactor:  0.1,
		IoUThreshold: 0.2,
		MinQuality:   5,
	}
}

// PigoDetector finds faces with a pigo pixel-intensity-comparison cascade.
type PigoDetector struct {
	cfg        PigoConfig
	classifier *pigo.Pigo
	mu         sync.Mutex
}

// NewPigoDetector loads cfg.CascadePath.
func NewPigoDetector(cfg PigoConfig) (*PigoDetector, error) {
	data, err := os.ReadFile(cfg.CascadePath)
	if err != nil {
		return nil, fmt.Errorf("read cascade: %w", err)
	}
	// Header: 8 reserved bytes, tree depth and tree count.
	if len(data) < 16 {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrBadCascade, cfg.CascadePath, len(data))
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCascade, err)
	}
	return &PigoDetector{cfg: cfg, classifier: classifier}, nil
}

// Detect runs the cascade over f. MinNeighbors has no pigo equivalent;
// clustering by IoU plays that role.
func (d *PigoDetector) Detect(f vision.Frame, p vision.DetectParams) ([]image.Rectangle, error) {
	fr, err := frameOf(f)
	if err != nil {
		return nil, err
	}
	if fr.Empty() {
		return nil, vision.ErrEmptyImage
	}

	gray := grayPixels(fr)
	sz := fr.Size()
	params := pigo.CascadeParams{
		MinSize:     max(p.MinSize.X, 1),
		MaxSize:     d.cfg.MaxSize,
		ShiftFactor: d.cfg.ShiftFactor,
		ScaleFactor: p.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: gray,
			Rows:   sz.Y,
			Cols:   sz.X,
			Dim:    sz.X,
		},
	}
	if p.MaxSize.X > 0 {
		params.MaxSize = p.MaxSize.X
	}

	d.mu.Lock()
	dets := d.classifier.RunCascade(params, d.cfg.Angle)
	dets = d.classifier.ClusterDetections(dets, d.cfg.IoUThreshold)
	d.mu.Unlock()

	return facesFrom(dets, d.cfg.MinQuality), nil
}

func (d *PigoDetector) Close() error { return nil }

func grayPixels(fr *Frame) []uint8 {
	g, ok := fr.Img.(*image.Gray)
	if !ok || g.Stride != g.Rect.Dx() {
		g = toGray(fr.Img)
	}
	return g.Pix
}

// facesFrom converts pigo's centre/scale detections to rectangles.
func facesFrom(dets []pigo.Detection, minQuality float32) []image.Rectangle {
	var faces []image.Rectangle
	for _, det := range dets {
		if det.Q < minQuality {
			continue
		}
		half := det.Scale / 2
		faces = append(faces, image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half))
	}
	return faces
}
