// imgview shows one image, prints its resolution and channel count, and
// closes after a key press or ten seconds.
//
// Usage:
//
//	imgview [-gray] [-wait 10s] [-strict-exit] <path-or-url>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/teslashibe/go-facecam/internal/app"
	"github.com/teslashibe/go-facecam/internal/config"
	"github.com/teslashibe/go-facecam/internal/log"
	"github.com/teslashibe/go-facecam/pkg/cv"
	"github.com/teslashibe/go-facecam/pkg/viewer"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := viewer.DefaultConfig()
	configPath := flag.String("config", "", "YAML settings file")
	gray := flag.Bool("gray", false, "Load the image as grayscale")
	wait := flag.Duration("wait", 0, "How long to wait for a key (default from settings, 10s)")
	logLevel := flag.String("log-level", config.LogLevel(), "Log level: debug, info, warn, error")
	strictExit := flag.Bool("strict-exit", false, "Exit 1 when the image cannot be loaded")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("\nPlease provide an image file name:)")
		return 0
	}

	logger := log.Init(*logLevel)
	if *configPath != "" {
		settings, err := config.Load(*configPath)
		if err != nil {
			logger.Error("load settings", "path", *configPath, "err", err)
			return 1
		}
		cfg = settings.Viewer
	}
	if *gray {
		cfg.Grayscale = true
	}
	if *wait > 0 {
		cfg.Wait = *wait
	}
	cfg.Out = os.Stdout

	backend, err := app.NewBackend(app.BackendGocv)
	if err != nil {
		logger.Error("backend", "err", err)
		return 1
	}
	win, err := cv.NewWindow(cfg.WindowName)
	if err != nil {
		logger.Error("open window", "err", err)
		return 1
	}

	_, err = viewer.Show(flag.Arg(0), app.URLLoader(context.Background(), backend), win, cfg, logger)
	return exitCode(err, *strictExit)
}
