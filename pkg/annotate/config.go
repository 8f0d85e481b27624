// Package annotate runs the live preview loop: capture a frame, draw the tip
// overlay, detect faces on a shrunken gray copy, draw the info panel and the
// face boxes, show the result and react to the keyboard.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/teslashibe/go-facecam/pkg/vision"
)

// DefaultTips is the help overlay drawn in the top-left corner.
var DefaultTips = []string{
	"Press 'g' to toggle grayscale mode",
	"Press any key to exit",
}

// Config holds every tunable of the loop. Pixel values are in full-frame
// coordinates.
type Config struct {
	// === Detection ===
	// DetectionScale shrinks the gray copy before detection. Boxes are
	// scaled back by its inverse, so both directions use this one value.
	DetectionScale float64    `yaml:"detection_scale" json:"detection_scale"`
	MinFaceSize    int        `yaml:"min_face_size" json:"min_face_size"` // In detection coordinates
	ScaleFactor    float64    `yaml:"scale_factor" json:"scale_factor"`
	MinNeighbors   int        `yaml:"min_neighbors" json:"min_neighbors"`
	FaceColor      color.RGBA `yaml:"face_color" json:"face_color"`
	FaceThickness  int        `yaml:"face_thickness" json:"face_thickness"`

	// === Timing ===
	CaptureBackoff time.Duration `yaml:"capture_backoff" json:"capture_backoff"` // Wait after an empty frame
	KeyPollTimeout time.Duration `yaml:"key_poll_timeout" json:"key_poll_timeout"`

	// === Keys ===
	ToggleKey string `yaml:"toggle_key" json:"toggle_key"`

	// === Tip overlay ===
	Tips     []string         `yaml:"tips" json:"tips"`
	TipX     int              `yaml:"tip_x" json:"tip_x"`
	TipY     int              `yaml:"tip_y" json:"tip_y"`
	LineGap  int              `yaml:"line_gap" json:"line_gap"`
	TipStyle vision.TextStyle `yaml:"tip_style" json:"tip_style"`

	// === Info panel ===
	InfoPanel   bool             `yaml:"info_panel" json:"info_panel"`
	PanelWidth  int              `yaml:"panel_width" json:"panel_width"`
	PanelHeight int              `yaml:"panel_height" json:"panel_height"`
	PanelMargin int              `yaml:"panel_margin" json:"panel_margin"`
	PanelKeep   float64          `yaml:"panel_keep" json:"panel_keep"` // Weight of the original pixels
	PanelColor  color.RGBA       `yaml:"panel_color" json:"panel_color"`
	PanelTextX  int              `yaml:"panel_text_x" json:"panel_text_x"` // Text origin inside the panel
	PanelTextY  int              `yaml:"panel_text_y" json:"panel_text_y"`
	PanelStyle  vision.TextStyle `yaml:"panel_style" json:"panel_style"`
}

// DefaultConfig returns the settings of the original webcam face detector.
func DefaultConfig() Config {
	return Config{
		DetectionScale: 0.25,
		MinFaceSize:    30,
		ScaleFactor:    1.1,
		MinNeighbors:   2,
		FaceColor:      color.RGBA{R: 255, A: 255},
		FaceThickness:  5,

		CaptureBackoff: 5 * time.Second,
		KeyPollTimeout: 10 * time.Millisecond,

		ToggleKey: "g",

		Tips:    append([]string(nil), DefaultTips...),
		TipX:    5,
		TipY:    30,
		LineGap: 10,
		TipStyle: vision.TextStyle{
			Scale:     0.8,
			Thickness: 1,
			Color:     color.RGBA{G: 255, A: 255},
		},

		InfoPanel:   true,
		PanelWidth:  280,
		PanelHeight: 88,
		PanelMargin: 2,
		PanelKeep:   0.3,
		PanelColor:  color.RGBA{A: 255},
		PanelTextX:  10,
		PanelTextY:  22,
		PanelStyle: vision.TextStyle{
			Scale:     0.55,
			Thickness: 1,
			Color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		},
	}
}

// PreviewConfig is DefaultConfig without the info panel, matching the plain
// camera preview.
func PreviewConfig() Config {
	cfg := DefaultConfig()
	cfg.InfoPanel = false
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DetectionScale <= 0 || c.DetectionScale > 1 {
		return fmt.Errorf("detection_scale must be in (0, 1], got %v", c.DetectionScale)
	}
	if c.ScaleFactor <= 1 {
		return fmt.Errorf("scale_factor must be greater than 1, got %v", c.ScaleFactor)
	}
	if c.MinNeighbors < 0 {
		return fmt.Errorf("min_neighbors must not be negative, got %d", c.MinNeighbors)
	}
	if c.CaptureBackoff < 0 {
		return fmt.Errorf("capture_backoff must not be negative, got %v", c.CaptureBackoff)
	}
	if c.KeyPollTimeout <= 0 {
		return fmt.Errorf("key_poll_timeout must be positive, got %v", c.KeyPollTimeout)
	}
	if _, err := vision.ParseKey(c.ToggleKey); err != nil {
		return fmt.Errorf("toggle_key: %w", err)
	}
	if c.LineGap < 0 {
		return fmt.Errorf("line_gap must not be negative, got %d", c.LineGap)
	}
	if c.InfoPanel {
		if c.PanelWidth <= 0 || c.PanelHeight <= 0 {
			return fmt.Errorf("panel size must be positive, got %dx%d", c.PanelWidth, c.PanelHeight)
		}
		if c.PanelKeep < 0 || c.PanelKeep > 1 {
			return fmt.Errorf("panel_keep must be in [0, 1], got %v", c.PanelKeep)
		}
	}
	return nil
}

// Toggle returns the key code that flips grayscale mode.
func (c *Config) Toggle() vision.Key {
	k, err := vision.ParseKey(c.ToggleKey)
	if err != nil {
		return vision.NoKey
	}
	return k
}

// Upscale is the factor applied to detections before drawing.
func (c *Config) Upscale() float64 {
	return 1 / c.DetectionScale
}

// DetectParams returns the detector parameters.
func (c *Config) DetectParams() vision.DetectParams {
	return vision.DetectParams{
		MinSize:      image.Pt(c.MinFaceSize, c.MinFaceSize),
		ScaleFactor:  c.ScaleFactor,
		MinNeighbors: c.MinNeighbors,
	}
}

// TipAnchor is the baseline origin of the first tip line.
func (c *Config) TipAnchor() image.Point {
	return image.Pt(c.TipX, c.TipY)
}

// PanelRect places the info panel in the top-right corner of a frame of the
// given size, clipped to the frame.
func (c *Config) PanelRect(frame image.Point) image.Rectangle {
	x := frame.X - c.PanelMargin - c.PanelWidth
	y := c.PanelMargin
	r := image.Rect(x, y, x+c.PanelWidth, y+c.PanelHeight)
	return r.Intersect(image.Rectangle{Max: frame})
}
