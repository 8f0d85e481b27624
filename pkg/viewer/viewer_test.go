package viewer

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/teslashibe/go-facecam/pkg/vision"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInfoString(t *testing.T) {
	info := Info{Width: 640, Height: 480, Grayscale: false, Dims: 2}
	want := "\n[ Image Info ]:\nresolution: 640 x 480\nIs grayscale: false\nDimension: 2"
	if got := info.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDescribe(t *testing.T) {
	gray := &vision.MockFrame{W: 10, H: 20, Ch: 1}
	if info := Describe(gray); info != (Info{Width: 10, Height: 20, Grayscale: true, Dims: 2}) {
		t.Errorf("gray: %+v", info)
	}
}

func TestShow(t *testing.T) {
	loader := &vision.MockLoader{W: 800, H: 600}
	display := &vision.RecordingDisplay{Keys: []vision.Key{vision.KeySpace}}
	cfg := DefaultConfig()

	info, err := Show("cat.jpg", loader, display, cfg, quietLogger())
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if info.Width != 800 || info.Height != 600 || info.Grayscale {
		t.Errorf("info: %+v", info)
	}
	if len(display.Shown()) != 1 {
		t.Errorf("shown: %d", len(display.Shown()))
	}
	if polls := display.Polls(); len(polls) != 1 || polls[0] != 10*time.Second {
		t.Errorf("polls: %v", polls)
	}
	if display.Closes() != 1 {
		t.Errorf("closes: %d", display.Closes())
	}
	if len(loader.Paths) != 1 || loader.Paths[0] != "cat.jpg" {
		t.Errorf("loaded: %v", loader.Paths)
	}
}

func TestShow_Grayscale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grayscale = true
	info, err := Show("cat.jpg", &vision.MockLoader{W: 4, H: 4}, &vision.RecordingDisplay{}, cfg, quietLogger())
	if err != nil || !info.Grayscale {
		t.Errorf("got %+v, %v", info, err)
	}
}

func TestShow_LoadFailure(t *testing.T) {
	tests := []struct {
		name   string
		loader *vision.MockLoader
		want   error
	}{
		{name: "missing", loader: &vision.MockLoader{Err: errors.New("no such file")}},
		{name: "empty", loader: &vision.MockLoader{W: 0, H: 0}, want: vision.ErrEmptyImage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			display := &vision.RecordingDisplay{}
			_, err := Show("nope.png", tc.loader, display, DefaultConfig(), quietLogger())
			if err == nil || !strings.Contains(err.Error(), "nope.png") {
				t.Fatalf("got %v", err)
			}
			if !errors.Is(err, ErrLoadFailed) {
				t.Errorf("got %v, want ErrLoadFailed", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
			if len(display.Shown()) != 0 {
				t.Error("nothing should be shown")
			}
			if display.Closes() != 1 {
				t.Errorf("closes: %d", display.Closes())
			}
		})
	}
}

func TestShow_CloseErrorReported(t *testing.T) {
	display := &vision.RecordingDisplay{CloseErr: errors.New("destroy failed")}
	if _, err := Show("a.png", &vision.MockLoader{W: 2, H: 2}, display, DefaultConfig(), quietLogger()); err == nil {
		t.Error("close error should surface when nothing else failed")
	}
}

// infoCheckDisplay records what had been printed when the image was shown.
type infoCheckDisplay struct {
	vision.RecordingDisplay
	out          *bytes.Buffer
	printedSoFar string
}

func (d *infoCheckDisplay) Show(f vision.Frame) error {
	d.printedSoFar = d.out.String()
	return d.RecordingDisplay.Show(f)
}

func TestShow_PrintsInfoBeforeWindow(t *testing.T) {
	var out bytes.Buffer
	display := &infoCheckDisplay{out: &out}
	cfg := DefaultConfig()
	cfg.Out = &out

	if _, err := Show("cat.jpg", &vision.MockLoader{W: 640, H: 480}, display, cfg, quietLogger()); err != nil {
		t.Fatalf("Show: %v", err)
	}
	want := "\n[ Image Info ]:\nresolution: 640 x 480\nIs grayscale: false\nDimension: 2\n"
	if display.printedSoFar != want {
		t.Errorf("printed before show: %q, want %q", display.printedSoFar, want)
	}
}

func TestShow_PrintsLoadFailure(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.Out = &out

	_, err := Show("gone.png", &vision.MockLoader{Err: errors.New("no such file")}, &vision.RecordingDisplay{}, cfg, quietLogger())
	if !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("got %v, want ErrLoadFailed", err)
	}
	if got := out.String(); got != "Image load failed: gone.png\n" {
		t.Errorf("printed %q", got)
	}
}
