package cv

import "github.com/teslashibe/go-facecam/pkg/vision"

// normalizeKey maps a HighGUI waitKey result to a vision.Key. Platforms
// report "no key" as -1 or 255 and may set modifier bits above the low
// byte.
func normalizeKey(code int) vision.Key {
	if code < 0 {
		return vision.NoKey
	}
	code &= 0xFF
	if code == 0 || code == 0xFF {
		return vision.NoKey
	}
	return vision.Key(code)
}

// waitMillis converts a poll timeout to the millisecond delay for waitKey.
// A zero delay would block forever, so the minimum is 1ms.
func waitMillis(ms int64) int {
	if ms < 1 {
		return 1
	}
	return int(ms)
}
