//go:build !nocv

package cv

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/teslashibe/go-facecam/pkg/annotate"
	"github.com/teslashibe/go-facecam/pkg/vision"
	"gocv.io/x/gocv"
)

func bgrFrame(w, h int) *Frame {
	return NewFrame(gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3))
}

// twoChannelFrame has a channel count no color conversion accepts.
func twoChannelFrame(w, h int) *Frame {
	return NewFrame(gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC2))
}

func TestRenderer_DrawsOnBGR(t *testing.T) {
	r := NewRenderer()
	f := bgrFrame(64, 48)
	defer f.Close()

	style := vision.TextStyle{Scale: 0.5, Thickness: 1, Color: color.RGBA{G: 255, A: 255}}
	if err := r.PutText(f, "hi", image.Pt(2, 20), style); err != nil {
		t.Errorf("PutText: %v", err)
	}
	if err := r.Rectangle(f, image.Rect(4, 4, 20, 20), color.RGBA{R: 255, A: 255}, 2); err != nil {
		t.Errorf("Rectangle: %v", err)
	}
	if err := r.BlendRect(f, image.Rect(30, 0, 64, 20), color.RGBA{A: 255}, 0.3); err != nil {
		t.Errorf("BlendRect: %v", err)
	}

	gray, err := r.Grayscale(f)
	if err != nil {
		t.Fatalf("Grayscale: %v", err)
	}
	defer gray.Close()
	if gray.Channels() != 1 || gray.Size() != image.Pt(64, 48) {
		t.Errorf("gray: %v x%d", gray.Size(), gray.Channels())
	}

	small, err := r.Resize(gray, 0.5, 0.5)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	defer small.Close()
	if small.Size() != image.Pt(32, 24) {
		t.Errorf("small: %v", small.Size())
	}
}

func TestRenderer_ReportsOpenCVFailures(t *testing.T) {
	r := NewRenderer()

	t.Run("grayscale of two channels", func(t *testing.T) {
		f := twoChannelFrame(16, 16)
		defer f.Close()
		if gray, err := r.Grayscale(f); err == nil {
			gray.Close()
			t.Fatal("expected conversion error")
		}
	})

	t.Run("resize to nothing", func(t *testing.T) {
		f := bgrFrame(16, 16)
		defer f.Close()
		if out, err := r.Resize(f, 0, 0); err == nil {
			out.Close()
			t.Fatal("expected resize error")
		}
	})
}

// A failing OpenCV call mid-session must stop the loop as a collaborator
// failure instead of being shown as if nothing happened.
func TestLoop_StopsOnOpenCVFailure(t *testing.T) {
	cfg := annotate.DefaultConfig()
	cfg.InfoPanel = false

	source := &vision.ScriptedSource{
		Frames: []vision.Frame{twoChannelFrame(64, 48)},
		Props:  vision.Properties{Width: 64, Height: 48, FPS: 30},
	}
	display := &vision.RecordingDisplay{}

	loop, err := annotate.New(cfg, annotate.Deps{
		Source:   source,
		Detector: &vision.StubDetector{},
		Renderer: NewRenderer(),
		Display:  display,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = loop.Run(context.Background())
	if !annotate.IsCollaborator(err) {
		t.Fatalf("got %v (kind %v), want collaborator failure", err, annotate.KindOf(err))
	}
	if n := len(display.Shown()); n != 0 {
		t.Errorf("shown %d frames after a failed call", n)
	}
	if source.Closes() != 1 || display.Closes() != 1 {
		t.Errorf("cleanup: source %d, display %d", source.Closes(), display.Closes())
	}
}
