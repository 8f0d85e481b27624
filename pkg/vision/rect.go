package vision

import (
	"image"
	"math"
)

// ScaleRect multiplies position and size of r by k.
func ScaleRect(r image.Rectangle, k float64) image.Rectangle {
	x := scale(r.Min.X, k)
	y := scale(r.Min.Y, k)
	return image.Rect(x, y, x+scale(r.Dx(), k), y+scale(r.Dy(), k))
}

// Upscale maps rectangles found on a frame shrunk by downscale back to the
// original frame.
func Upscale(rects []image.Rectangle, downscale float64) []image.Rectangle {
	if len(rects) == 0 {
		return nil
	}
	k := 1 / downscale
	out := make([]image.Rectangle, len(rects))
	for i, r := range rects {
		out[i] = ScaleRect(r, k)
	}
	return out
}

func scale(v int, k float64) int {
	return int(math.Round(float64(v) * k))
}
