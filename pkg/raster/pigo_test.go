package raster

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"
)

func TestNewPigoDetector_Errors(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultPigoConfig()
	cfg.CascadePath = filepath.Join(dir, "missing")
	if _, err := NewPigoDetector(cfg); err == nil {
		t.Error("missing cascade should fail")
	}

	short := filepath.Join(dir, "short")
	if err := os.WriteFile(short, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.CascadePath = short
	if _, err := NewPigoDetector(cfg); !errors.Is(err, ErrBadCascade) {
		t.Errorf("short cascade: got %v, want ErrBadCascade", err)
	}
}

func TestFacesFrom(t *testing.T) {
	dets := []pigo.Detection{
		{Row: 50, Col: 40, Scale: 20, Q: 9.5},
		{Row: 10, Col: 10, Scale: 8, Q: 1.2},
	}
	faces := facesFrom(dets, 5)
	if len(faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(faces))
	}
	if want := image.Rect(30, 40, 50, 60); faces[0] != want {
		t.Errorf("got %v, want %v", faces[0], want)
	}
}

func TestGrayPixels(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 3))
	g.Pix[5] = 77
	if px := grayPixels(&Frame{Img: g}); len(px) != 12 || px[5] != 77 {
		t.Errorf("gray passthrough: len %d", len(px))
	}

	color := Blank(4, 3, white)
	if px := grayPixels(color); len(px) != 12 || px[0] != 255 {
		t.Errorf("converted pixels: len %d, first %d", len(px), px[0])
	}
}
