// Package cv adapts gocv (OpenCV) to the vision interfaces: capture devices,
// Haar cascades, HighGUI windows, Mat drawing and image codecs.
//
// Build with -tags nocv to compile without OpenCV; every constructor then
// returns ErrUnavailable.
package cv

import "errors"

var (
	// ErrUnavailable is returned by the nocv build.
	ErrUnavailable = errors.New("cv: built without OpenCV support")

	// ErrNotOpened is returned when a capture device cannot be opened.
	ErrNotOpened = errors.New("cv: capture device not opened")

	// ErrCascadeLoad is returned when a cascade file cannot be parsed.
	ErrCascadeLoad = errors.New("cv: cascade classifier load failed")
)
