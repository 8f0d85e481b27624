package raster

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// basePointSize is the font size at TextStyle.Scale 1, roughly matching
// the cap height of OpenCV's Hershey fonts.
const basePointSize = 30

type faceCache struct {
	once  sync.Once
	font  *opentype.Font
	err   error
	mu    sync.Mutex
	faces map[float64]font.Face
}

func (c *faceCache) face(scale float64) (font.Face, error) {
	c.once.Do(func() {
		c.font, c.err = opentype.Parse(goregular.TTF)
	})
	if c.err != nil {
		return nil, fmt.Errorf("parse font: %w", c.err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[scale]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    basePointSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face at scale %v: %w", scale, err)
	}
	if c.faces == nil {
		c.faces = make(map[float64]font.Face)
	}
	c.faces[scale] = f
	return f, nil
}
