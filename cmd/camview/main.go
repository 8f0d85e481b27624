// camview is a plain camera preview with the help overlay only: no face
// detection and no info panel. 'g' toggles grayscale; any other key exits.
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
	"github.com/teslashibe/go-facecam/pkg/annotate"
)

func main() {
	device := flag.String("device", config.Device(), "Capture device index or video path")
	logLevel := flag.String("log-level", config.LogLevel(), "Log level: debug, info, warn, error")
	flag.Parse()

	logger := log.Init(*logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Build(ctx, app.Options{
		Backend:    app.BackendGocv,
		Source:     "camera",
		Device:     *device,
		Window:     true,
		WindowName: "Web Cam Preview Window",
		Annotate:   annotate.PreviewConfig(),
	}, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		cancel()
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("close video capture abnormally", "err", err)
		return
	}
	logger.Info("program exit normally")
}
