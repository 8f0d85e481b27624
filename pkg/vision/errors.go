package vision

import "errors"

var (
	// ErrEmptyImage is returned when an image decodes to zero pixels.
	ErrEmptyImage = errors.New("vision: empty image")

	// ErrForeignFrame is returned when a backend receives a frame created by
	// a different backend.
	ErrForeignFrame = errors.New("vision: frame belongs to another backend")

	// ErrClosed is returned by operations on a closed source or display.
	ErrClosed = errors.New("vision: closed")
)
