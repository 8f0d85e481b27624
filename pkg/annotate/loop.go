package annotate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/teslashibe/go-facecam/pkg/metrics"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

// Deps are the collaborators a Loop drives. The loop owns them once Run is
// called and releases them when it returns.
type Deps struct {
	Source   vision.Source
	Detector vision.Detector // nil disables detection
	Renderer vision.Renderer
	Display  vision.Display
	Metrics  *metrics.Metrics // Optional
}

// Stats describes one displayed frame.
type Stats struct {
	Frame         uint64
	Properties    vision.Properties
	Faces         []image.Rectangle // Full-frame coordinates
	Grayscale     bool
	DetectLatency time.Duration
}

// Loop is the single-threaded capture → detect → draw → display → key loop.
// It is not safe for concurrent use.
type Loop struct {
	cfg    Config
	deps   Deps
	logger *slog.Logger
	toggle vision.Key
	props  vision.Properties

	// OnFrame, if set, is called after every displayed frame.
	OnFrame func(Stats)

	grayscale bool
	frames    uint64
	finished  bool
}

// New validates cfg and deps and reads the session properties from the
// source. Errors are startup failures.
func New(cfg Config, deps Deps, logger *slog.Logger) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, StartupError("config", err)
	}
	switch {
	case deps.Source == nil:
		return nil, StartupError("deps", ErrNoSource)
	case deps.Renderer == nil:
		return nil, StartupError("deps", ErrNoRenderer)
	case deps.Display == nil:
		return nil, StartupError("deps", ErrNoDisplay)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Loop{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		toggle: cfg.Toggle(),
		props:  deps.Source.Properties(),
	}, nil
}

// Grayscale reports whether frames are currently displayed in grayscale.
func (l *Loop) Grayscale() bool {
	return l.grayscale
}

// Properties returns the session properties read at startup.
func (l *Loop) Properties() vision.Properties {
	return l.props
}

// Frames returns how many frames have been displayed.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run loops until an exit key is pressed, the source is exhausted, ctx is
// cancelled or a collaborator fails. The source, detector and display are
// released exactly once before Run returns, whichever way it exits. Cleanup
// failures are returned only when nothing else went wrong.
func (l *Loop) Run(ctx context.Context) (err error) {
	if l.finished {
		return ErrLoopClosed
	}
	defer func() {
		err = l.release(err)
	}()

	l.logger.Info("live camera is showing, press any key to close",
		"width", l.props.Width,
		"height", l.props.Height,
		"fps", l.props.FPS,
		"detection", l.deps.Detector != nil,
	)

	for {
		if ctx.Err() != nil {
			l.logger.Info("preview interrupted", "frames", l.frames)
			return nil
		}

		stop, err := l.step(ctx)
		if err != nil {
			if l.deps.Metrics != nil {
				l.deps.Metrics.Errors.Add(1)
			}
			return err
		}
		if stop {
			return nil
		}
	}
}

// HandleKey applies one key-poll result and reports whether the loop should
// stop. The toggle key flips grayscale mode, any other key requests exit and
// NoKey changes nothing.
func (l *Loop) HandleKey(k vision.Key) bool {
	switch {
	case k == l.toggle:
		l.grayscale = !l.grayscale
		if m := l.deps.Metrics; m != nil {
			m.Toggles.Add(1)
			m.SetGrayscale(l.grayscale)
		}
		l.logger.Info("grayscale mode toggled", "enabled", l.grayscale)
		return false
	case k.Pressed():
		l.logger.Info("exit key pressed", "key", k.String())
		return true
	default:
		return false
	}
}

func (l *Loop) step(ctx context.Context) (bool, error) {
	frame, err := l.deps.Source.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.logger.Info("frame source exhausted", "frames", l.frames)
			return true, nil
		}
		return true, collaborator("read frame", err)
	}

	if vision.IsEmpty(frame) {
		if frame != nil {
			frame.Close()
		}
		if l.deps.Metrics != nil {
			l.deps.Metrics.CaptureGaps.Add(1)
		}
		l.logger.Warn("empty frame from capture source, retrying", "backoff", l.cfg.CaptureBackoff)
		l.backoff(ctx)
		return false, nil
	}
	defer frame.Close()

	if l.deps.Metrics != nil {
		l.deps.Metrics.FramesRead.Add(1)
	}

	if err := l.drawLines(frame, l.cfg.Tips, l.cfg.TipAnchor(), l.cfg.TipStyle); err != nil {
		return true, collaborator("draw tips", err)
	}

	faces, took, err := l.detect(frame)
	if err != nil {
		return true, collaborator("detect", err)
	}

	if l.cfg.InfoPanel {
		if err := l.drawPanel(frame, len(faces)); err != nil {
			return true, collaborator("draw info panel", err)
		}
	}

	for _, r := range faces {
		if err := l.deps.Renderer.Rectangle(frame, r, l.cfg.FaceColor, l.cfg.FaceThickness); err != nil {
			return true, collaborator("draw face", err)
		}
	}

	// Converted after drawing so overlays stay color-agnostic.
	out := frame
	if l.grayscale {
		gray, err := l.deps.Renderer.Grayscale(frame)
		if err != nil {
			return true, collaborator("grayscale", err)
		}
		defer gray.Close()
		out = gray
	}

	if err := l.deps.Display.Show(out); err != nil {
		return true, collaborator("show frame", err)
	}
	l.frames++
	if l.deps.Metrics != nil {
		l.deps.Metrics.FramesShown.Add(1)
	}

	if l.OnFrame != nil {
		l.OnFrame(Stats{
			Frame:         l.frames,
			Properties:    l.props,
			Faces:         faces,
			Grayscale:     l.grayscale,
			DetectLatency: took,
		})
	}

	key, err := l.deps.Display.PollKey(l.cfg.KeyPollTimeout)
	if err != nil {
		return true, collaborator("poll key", err)
	}
	return l.HandleKey(key), nil
}

// detect runs the detector on a gray copy shrunk by DetectionScale and
// returns the boxes in full-frame coordinates.
func (l *Loop) detect(frame vision.Frame) ([]image.Rectangle, time.Duration, error) {
	if l.deps.Detector == nil {
		return nil, 0, nil
	}
	start := time.Now()

	gray, err := l.deps.Renderer.Grayscale(frame)
	if err != nil {
		return nil, 0, fmt.Errorf("grayscale: %w", err)
	}
	defer gray.Close()

	small, err := l.deps.Renderer.Resize(gray, l.cfg.DetectionScale, l.cfg.DetectionScale)
	if err != nil {
		return nil, 0, fmt.Errorf("resize: %w", err)
	}
	defer small.Close()

	rects, err := l.deps.Detector.Detect(small, l.cfg.DetectParams())
	if err != nil {
		return nil, 0, err
	}

	took := time.Since(start)
	if l.deps.Metrics != nil {
		l.deps.Metrics.ObserveDetect(len(rects), took)
	}
	if len(rects) > 0 {
		l.logger.Debug("faces detected", "count", len(rects), "took", took)
	}
	return vision.Upscale(rects, l.cfg.DetectionScale), took, nil
}

func (l *Loop) drawPanel(frame vision.Frame, faces int) error {
	panel := l.cfg.PanelRect(frame.Size())
	if panel.Empty() {
		return nil
	}
	if err := l.deps.Renderer.BlendRect(frame, panel, l.cfg.PanelColor, l.cfg.PanelKeep); err != nil {
		return err
	}
	lines := InfoLines(l.props, faces, l.deps.Detector != nil)
	anchor := panel.Min.Add(image.Pt(l.cfg.PanelTextX, l.cfg.PanelTextY))
	return l.drawLines(frame, lines, anchor, l.cfg.PanelStyle)
}

func (l *Loop) drawLines(frame vision.Frame, lines []string, anchor image.Point, style vision.TextStyle) error {
	measure := func(s string) (image.Point, error) {
		return l.deps.Renderer.TextSize(s, style)
	}
	origins, err := LayoutLines(lines, anchor, l.cfg.LineGap, measure)
	if err != nil {
		return err
	}
	for i, line := range lines {
		if err := l.deps.Renderer.PutText(frame, line, origins[i], style); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) backoff(ctx context.Context) {
	if l.cfg.CaptureBackoff <= 0 {
		return
	}
	t := time.NewTimer(l.cfg.CaptureBackoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (l *Loop) release(primary error) error {
	l.finished = true

	var errs []error
	if err := l.deps.Source.Close(); err != nil {
		l.logger.Error("close video capture abnormally", "err", err)
		errs = append(errs, cleanup("close source", err))
	}
	if l.deps.Detector != nil {
		if err := l.deps.Detector.Close(); err != nil {
			l.logger.Error("release detector abnormally", "err", err)
			errs = append(errs, cleanup("close detector", err))
		}
	}
	if err := l.deps.Display.Close(); err != nil {
		l.logger.Error("close all windows abnormally", "err", err)
		errs = append(errs, cleanup("close display", err))
	}

	if primary != nil {
		return primary
	}
	return errors.Join(errs...)
}

// InfoLines returns the info panel text.
func InfoLines(props vision.Properties, faces int, detecting bool) []string {
	lines := []string{
		fmt.Sprintf("Resolution: %dx%d", props.Width, props.Height),
		"FPS: " + formatFPS(props.FPS),
	}
	if detecting {
		lines = append(lines, fmt.Sprintf("Faces: %d", faces))
	}
	return lines
}

func formatFPS(fps float64) string {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(math.Round(fps*100)/100, 'f', -1, 64)
}
