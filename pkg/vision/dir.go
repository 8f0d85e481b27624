package vision

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
)

// DirConfig configures a DirSource.
type DirConfig struct {
	Pattern string  `yaml:"pattern" json:"pattern"` // Glob such as "frames/*.jpg"
	Loop    bool    `yaml:"loop" json:"loop"`       // Restart after the last file
	FPS     float64 `yaml:"fps" json:"fps"`         // Reported frame rate
}

// DirSource replays still images as a video source.
type DirSource struct {
	loader Loader
	paths  []string
	loop   bool
	props  Properties

	mu     sync.Mutex
	next   int
	closed bool
}

// OpenDir globs cfg.Pattern and reads the first image to learn the session
// properties.
func OpenDir(cfg DirConfig, loader Loader) (*DirSource, error) {
	paths, err := filepath.Glob(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", cfg.Pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images match %q", cfg.Pattern)
	}
	sort.Strings(paths)

	first, err := loader.Load(paths[0], false)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", paths[0], err)
	}
	sz := first.Size()
	first.Close()

	return &DirSource{
		loader: loader,
		paths:  paths,
		loop:   cfg.Loop,
		props:  Properties{Width: sz.X, Height: sz.Y, FPS: cfg.FPS},
	}, nil
}

// Read loads the next image in name order.
func (s *DirSource) Read() (Frame, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.next >= len(s.paths) {
		if !s.loop {
			s.mu.Unlock()
			return nil, io.EOF
		}
		s.next = 0
	}
	path := s.paths[s.next]
	s.next++
	s.mu.Unlock()

	f, err := s.loader.Load(path, false)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return f, nil
}

func (s *DirSource) Properties() Properties {
	return s.props
}

// Len returns the number of images in the sequence.
func (s *DirSource) Len() int {
	return len(s.paths)
}

func (s *DirSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
