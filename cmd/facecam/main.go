// facecam shows a live camera preview with face boxes, a help overlay and
// an info panel. Press 'g' to toggle grayscale and any other key to exit.
//
// Usage:
//
//	facecam [-device 0] [-cascade haarcascade_frontalface_alt.xml]
//	facecam -backend raster -source 'dir:frames/*.jpg' -no-window -web :8080
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-facecam/internal/app"
	"github.com/teslashibe/go-facecam/internal/config"
	"github.com/teslashibe/go-facecam/internal/log"
)

const windowName = "Web Cam Preview Window"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML settings file")
	backend := flag.String("backend", app.BackendGocv, "Backend: gocv or raster")
	source := flag.String("source", "camera", "Frame source: camera, dir:<glob> or ws://host:port/ws/camera")
	device := flag.String("device", config.Device(), "Capture device index or video path (overrides FACECAM_DEVICE)")
	cascade := flag.String("cascade", config.Cascade(), "Haar cascade XML for the gocv backend")
	pigoCascade := flag.String("pigo-cascade", config.PigoCascade(), "pigo cascade for the raster backend")
	webAddr := flag.String("web", config.WebAddr(), "Serve the browser preview on this address, e.g. :8080")
	noWindow := flag.Bool("no-window", false, "Do not open a desktop window")
	noDetect := flag.Bool("no-detect", false, "Skip face detection")
	loopDir := flag.Bool("loop", false, "Restart dir: sources after the last image")
	fps := flag.Float64("fps", 0, "Frame rate reported for dir: sources")
	logLevel := flag.String("log-level", config.LogLevel(), "Log level: debug, info, warn, error")
	strictExit := flag.Bool("strict-exit", false, "Exit 1 when the preview ends abnormally")
	flag.Parse()

	logger := log.Init(*logLevel)

	settings := config.Default()
	if *configPath != "" {
		var err error
		if settings, err = config.Load(*configPath); err != nil {
			logger.Error("load settings", "path", *configPath, "err", err)
			return 1
		}
	}
	settings = overrides{
		explicit:    explicitFlags(flag.CommandLine),
		pigoCascade: *pigoCascade,
		webAddr:     *webAddr,
	}.merge(settings)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Build(ctx, app.Options{
		Backend:    *backend,
		Source:     *source,
		Device:     *device,
		Dir:        visionDir(*loopDir, *fps),
		Detect:     !*noDetect,
		Cascade:    *cascade,
		Pigo:       settings.Pigo,
		Window:     !*noWindow,
		WindowName: windowName,
		Annotate:   settings.Annotate,
		Web:        settings.Web,
	}, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		return 1
	}

	return finish(a.Run(ctx), *strictExit)
}
