package main

import (
	"errors"
	"testing"

	"github.com/teslashibe/go-facecam/pkg/annotate"
)

func TestFinish(t *testing.T) {
	boom := annotate.StartupError("open camera", errors.New("no device"))

	tests := []struct {
		name   string
		err    error
		strict bool
		want   int
	}{
		{name: "clean", err: nil, want: 0},
		{name: "clean strict", err: nil, strict: true, want: 0},
		{name: "abnormal", err: boom, want: 0},
		{name: "abnormal strict", err: boom, strict: true, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := finish(tc.err, tc.strict); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestVisionDir(t *testing.T) {
	d := visionDir(true, 12.5)
	if !d.Loop || d.FPS != 12.5 || d.Pattern != "" {
		t.Errorf("got %+v", d)
	}
}
