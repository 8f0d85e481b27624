package cv

import (
	"testing"

	"github.com/teslashibe/go-facecam/pkg/vision"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		code int
		want vision.Key
	}{
		{name: "timeout", code: -1, want: vision.NoKey},
		{name: "timeout as 255", code: 255, want: vision.NoKey},
		{name: "nul", code: 0, want: vision.NoKey},
		{name: "letter", code: 'g', want: vision.KeyOf('g')},
		{name: "escape", code: 27, want: vision.KeyEscape},
		{name: "modifier bits", code: 0x100000 | 'q', want: vision.KeyOf('q')},
		{name: "modifier with no key", code: 0x100000 | 0xFF, want: vision.NoKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeKey(tc.code); got != tc.want {
				t.Errorf("normalizeKey(%#x) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

func TestWaitMillis(t *testing.T) {
	if waitMillis(0) != 1 {
		t.Error("zero timeout must not block forever")
	}
	if waitMillis(10) != 10 {
		t.Errorf("got %d, want 10", waitMillis(10))
	}
}
