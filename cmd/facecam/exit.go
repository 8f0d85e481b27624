package main

import (
	"github.com/teslashibe/go-facecam/internal/log"
	"github.com/teslashibe/go-facecam/pkg/annotate"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

func visionDir(loop bool, fps float64) vision.DirConfig {
	return vision.DirConfig{Loop: loop, FPS: fps}
}

// finish reports how the preview ended and picks the exit code. Abnormal
// endings exit 0 unless strict is set.
func finish(err error, strict bool) int {
	if err == nil {
		log.Info("program exit normally")
		return 0
	}
	if annotate.IsCleanup(err) {
		log.Warn("preview finished but cleanup failed", "err", err)
	} else {
		log.Error("close video capture abnormally", "err", err)
	}
	if strict {
		return 1
	}
	return 0
}
