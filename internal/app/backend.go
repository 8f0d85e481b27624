// Package app wires sources, detectors, renderers, displays and the web
// preview into a runnable annotation loop for the facecam commands.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/teslashibe/go-facecam/internal/httpc"
	"github.com/teslashibe/go-facecam/pkg/cv"
	"github.com/teslashibe/go-facecam/pkg/raster"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

// Backend names.
const (
	BackendGocv   = "gocv"
	BackendRaster = "raster"
)

// ErrNeedsGocv is returned when an option only the OpenCV backend supports
// is combined with another backend.
var ErrNeedsGocv = errors.New("app: requires the gocv backend")

// Backend bundles the drawing and decoding halves of one implementation.
type Backend struct {
	Name     string
	Renderer vision.Renderer
	Loader   vision.Loader
}

// NewBackend returns the backend called name.
func NewBackend(name string) (Backend, error) {
	switch name {
	case BackendGocv, "":
		if !cv.Available {
			return Backend{}, cv.ErrUnavailable
		}
		return Backend{Name: BackendGocv, Renderer: cv.NewRenderer(), Loader: cv.NewLoader()}, nil
	case BackendRaster:
		return Backend{Name: BackendRaster, Renderer: raster.NewRenderer(), Loader: raster.NewLoader()}, nil
	default:
		return Backend{}, fmt.Errorf("unknown backend %q (want %s or %s)", name, BackendGocv, BackendRaster)
	}
}

// urlLoader downloads http(s) paths before decoding them.
type urlLoader struct {
	ctx     context.Context
	backend Backend
}

// URLLoader returns a loader that also accepts http and https URLs.
func URLLoader(ctx context.Context, b Backend) vision.Loader {
	return &urlLoader{ctx: ctx, backend: b}
}

func (l *urlLoader) Load(path string, gray bool) (vision.Frame, error) {
	if !httpc.IsURL(path) {
		return l.backend.Loader.Load(path, gray)
	}
	data, err := httpc.FetchImage(l.ctx, path, 0)
	if err != nil {
		return nil, err
	}
	f, err := l.backend.Loader.Decode(data)
	if err != nil || !gray {
		return f, err
	}
	defer f.Close()
	return l.backend.Renderer.Grayscale(f)
}

func (l *urlLoader) Decode(data []byte) (vision.Frame, error) {
	return l.backend.Loader.Decode(data)
}
