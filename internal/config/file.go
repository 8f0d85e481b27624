package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/teslashibe/go-facecam/pkg/annotate"
	"github.com/teslashibe/go-facecam/pkg/raster"
	"github.com/teslashibe/go-facecam/pkg/viewer"
	"github.com/teslashibe/go-facecam/pkg/web"
	"gopkg.in/yaml.v3"
)

// File is the layout of a facecam YAML settings file. Omitted keys keep
// their defaults.
type File struct {
	Annotate annotate.Config   `yaml:"annotate"`
	Web      web.Config        `yaml:"web"`
	Pigo     raster.PigoConfig `yaml:"pigo"`
	Viewer   viewer.Config     `yaml:"viewer"`
}

// Default returns the settings used without a file.
func Default() File {
	pigo := raster.DefaultPigoConfig()
	pigo.CascadePath = DefaultPigoCascade
	return File{
		Annotate: annotate.DefaultConfig(),
		Web:      web.DefaultConfig(),
		Pigo:     pigo,
		Viewer:   viewer.DefaultConfig(),
	}
}

// Load reads path over the defaults. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over the defaults and validates them.
func Parse(data []byte) (File, error) {
	f := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse config: %w", err)
	}

	if err := f.Annotate.Validate(); err != nil {
		return File{}, fmt.Errorf("annotate: %w", err)
	}
	if err := f.Web.Validate(); err != nil {
		return File{}, fmt.Errorf("web: %w", err)
	}
	return f, nil
}
