package main

import (
	"errors"

	"github.com/teslashibe/go-facecam/pkg/viewer"
)

// exitCode maps the viewer result to a process exit code. An image that
// cannot be loaded has already been reported and exits 0 unless strict is
// set; window failures always exit 1.
func exitCode(err error, strict bool) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, viewer.ErrLoadFailed) && !strict:
		return 0
	default:
		return 1
	}
}
