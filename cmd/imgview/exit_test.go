package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/teslashibe/go-facecam/pkg/viewer"
)

func TestExitCode(t *testing.T) {
	loadErr := fmt.Errorf("%w: cat.png: %w", viewer.ErrLoadFailed, errors.New("no such file"))
	showErr := errors.New("show cat.png: window destroyed")

	tests := []struct {
		name   string
		err    error
		strict bool
		want   int
	}{
		{name: "shown", err: nil, want: 0},
		{name: "load failed", err: loadErr, want: 0},
		{name: "load failed strict", err: loadErr, strict: true, want: 1},
		{name: "window failed", err: showErr, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err, tc.strict); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}
