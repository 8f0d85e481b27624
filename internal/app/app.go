package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/teslashibe/go-facecam/pkg/annotate"
	"github.com/teslashibe/go-facecam/pkg/cv"
	"github.com/teslashibe/go-facecam/pkg/metrics"
	"github.com/teslashibe/go-facecam/pkg/raster"
	"github.com/teslashibe/go-facecam/pkg/vision"
	"github.com/teslashibe/go-facecam/pkg/web"
)

// Options selects the parts of a session.
type Options struct {
	Backend string // gocv or raster

	// Source is "camera", "dir:<glob>" or a ws:// URL of another
	// instance's /ws/camera feed.
	Source string
	Device string
	Dir    vision.DirConfig // Loop and FPS for dir sources

	Detect  bool
	Cascade string            // Haar cascade for gocv
	Pigo    raster.PigoConfig // Cascade for raster

	Window     bool
	WindowName string

	Annotate annotate.Config
	Web      web.Config // Web preview runs when Web.Addr is set
}

// App is a wired session ready to Run.
type App struct {
	SessionID string
	Loop      *annotate.Loop
	Server    *web.Server // nil without the web preview
	Metrics   *metrics.Metrics

	logger *slog.Logger
}

// Build opens everything opts asks for. Failures are startup errors, and
// whatever was already opened is closed again.
func Build(ctx context.Context, opts Options, logger *slog.Logger) (_ *App, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	sessionID := uuid.NewString()
	logger = logger.With("session", sessionID[:8])

	var opened []io.Closer
	defer func() {
		if err == nil {
			return
		}
		for i := len(opened) - 1; i >= 0; i-- {
			if cerr := opened[i].Close(); cerr != nil {
				logger.Warn("cleanup after failed startup", "err", cerr)
			}
		}
	}()

	backend, err := NewBackend(opts.Backend)
	if err != nil {
		return nil, annotate.StartupError("backend", err)
	}
	m := metrics.New()

	a := &App{SessionID: sessionID, Metrics: m, logger: logger}
	loopLogger := logger
	if opts.Web.Addr != "" {
		srv, err := web.NewServer(opts.Web, sessionID, backend.Renderer, m, logger)
		if err != nil {
			return nil, annotate.StartupError("web preview", err)
		}
		addr, err := srv.StartAsync()
		if err != nil {
			return nil, annotate.StartupError("web preview", err)
		}
		opened = append(opened, closerFunc(srv.Shutdown))
		a.Server = srv
		loopLogger = slog.New(srv.LogHandler(logger.Handler()))
		logger.Info("web preview started", "addr", addr.String())
	}

	source, err := openSource(ctx, opts, backend, logger)
	if err != nil {
		return nil, annotate.StartupError("open source", err)
	}
	opened = append(opened, source)

	var detector vision.Detector
	if opts.Detect {
		detector, err = openDetector(opts, backend)
		if err != nil {
			return nil, annotate.StartupError("load detector", err)
		}
		opened = append(opened, detector)
	}

	display, err := openDisplay(opts, backend, a.Server)
	if err != nil {
		return nil, annotate.StartupError("open display", err)
	}
	opened = append(opened, display)

	loop, err := annotate.New(opts.Annotate, annotate.Deps{
		Source:   source,
		Detector: detector,
		Renderer: backend.Renderer,
		Display:  display,
		Metrics:  m,
	}, loopLogger)
	if err != nil {
		return nil, err
	}
	if a.Server != nil {
		loop.OnFrame = a.Server.Publish
	}
	a.Loop = loop
	return a, nil
}

// Run drives the loop until it ends, then stops the web preview.
func (a *App) Run(ctx context.Context) error {
	err := a.Loop.Run(ctx)
	if a.Server != nil {
		if serr := a.Server.Shutdown(); serr != nil {
			a.logger.Warn("web preview shutdown", "err", serr)
		}
	}
	return err
}

func openSource(ctx context.Context, opts Options, b Backend, logger *slog.Logger) (vision.Source, error) {
	switch src := opts.Source; {
	case src == "" || src == "camera":
		if b.Name != BackendGocv {
			return nil, fmt.Errorf("camera capture: %w", ErrNeedsGocv)
		}
		return cv.OpenCamera(opts.Device, logger)
	case strings.HasPrefix(src, "dir:"):
		cfg := opts.Dir
		cfg.Pattern = strings.TrimPrefix(src, "dir:")
		return vision.OpenDir(cfg, b.Loader)
	case strings.HasPrefix(src, "ws://"), strings.HasPrefix(src, "wss://"):
		return web.DialRemote(ctx, web.RemoteConfig{URL: src}, b.Loader, logger)
	default:
		return nil, fmt.Errorf("unknown source %q (want camera, dir:<glob> or ws://host/ws/camera)", src)
	}
}

func openDetector(opts Options, b Backend) (vision.Detector, error) {
	if b.Name == BackendGocv {
		return cv.NewCascade(opts.Cascade)
	}
	return raster.NewPigoDetector(opts.Pigo)
}

func openDisplay(opts Options, b Backend, srv *web.Server) (vision.Display, error) {
	var displays []vision.Display
	if opts.Window {
		if b.Name != BackendGocv {
			return nil, fmt.Errorf("window: %w", ErrNeedsGocv)
		}
		win, err := cv.NewWindow(opts.WindowName)
		if err != nil {
			return nil, err
		}
		displays = append(displays, win)
	}
	if srv != nil {
		displays = append(displays, srv.Display())
	}
	if len(displays) == 0 {
		return nil, fmt.Errorf("no display: enable the window or the web preview")
	}
	return vision.Tee(displays...), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
