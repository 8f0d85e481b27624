// Package viewer shows a still image in a window together with a short
// description of it.
package viewer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/teslashibe/go-facecam/pkg/vision"
)

// ErrLoadFailed marks an image that could not be read or decoded to
// pixels.
var ErrLoadFailed = errors.New("viewer: image load failed")

// Info describes a loaded image.
type Info struct {
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Grayscale bool `json:"grayscale"`
	Dims      int  `json:"dims"`
}

// Describe reads the size, channel count and dimensionality of f.
func Describe(f vision.Frame) Info {
	sz := f.Size()
	dims := 2
	if d, ok := f.(vision.Dimensioned); ok {
		dims = d.Dims()
	}
	return Info{
		Width:     sz.X,
		Height:    sz.Y,
		Grayscale: f.Channels() == 1,
		Dims:      dims,
	}
}

func (i Info) String() string {
	var b strings.Builder
	b.WriteString("\n[ Image Info ]:")
	fmt.Fprintf(&b, "\nresolution: %d x %d", i.Width, i.Height)
	fmt.Fprintf(&b, "\nIs grayscale: %t", i.Grayscale)
	fmt.Fprintf(&b, "\nDimension: %d", i.Dims)
	return b.String()
}

// Config configures Show.
type Config struct {
	WindowName string        `yaml:"window_name" json:"window_name"`
	Wait       time.Duration `yaml:"wait" json:"wait"` // How long to keep the window up without a key
	Grayscale  bool          `yaml:"grayscale" json:"grayscale"`

	// Out receives the info block before the window opens, and the load
	// failure line. Nil writes nothing.
	Out io.Writer `yaml:"-" json:"-"`
}

// DefaultConfig returns the viewer defaults.
func DefaultConfig() Config {
	return Config{
		WindowName: "Image Preview",
		Wait:       10 * time.Second,
	}
}

// Show loads path, prints and logs its description, displays it and waits
// up to cfg.Wait for a key. A file that cannot be loaded is reported and
// Show returns an ErrLoadFailed error without showing anything. The display
// is always closed.
func Show(path string, loader vision.Loader, display vision.Display, cfg Config, logger *slog.Logger) (info Info, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	defer func() {
		if cerr := display.Close(); cerr != nil {
			logger.Error("close all windows abnormally", "err", cerr)
			if err == nil {
				err = cerr
			}
		}
	}()

	img, err := loader.Load(path, cfg.Grayscale)
	if err == nil && vision.IsEmpty(img) {
		img.Close()
		err = vision.ErrEmptyImage
	}
	if err != nil {
		logger.Error("image load failed", "path", path, "err", err)
		if cfg.Out != nil {
			fmt.Fprintf(cfg.Out, "Image load failed: %s\n", path)
		}
		return Info{}, fmt.Errorf("%w: %s: %w", ErrLoadFailed, path, err)
	}
	defer img.Close()

	info = Describe(img)
	if cfg.Out != nil {
		fmt.Fprintln(cfg.Out, info.String())
	}
	logger.Info("image loaded",
		"path", path,
		"width", info.Width,
		"height", info.Height,
		"grayscale", info.Grayscale,
		"dims", info.Dims,
	)

	if err := display.Show(img); err != nil {
		return info, fmt.Errorf("show %s: %w", path, err)
	}
	key, err := display.PollKey(cfg.Wait)
	if err != nil {
		return info, fmt.Errorf("wait for key: %w", err)
	}
	logger.Debug("viewer closing", "key", key.String())
	return info, nil
}
