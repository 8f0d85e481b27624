package annotate

import (
	"errors"
	"fmt"
)

// Sentinel errors for loop setup.
var (
	// ErrNoSource is returned when no frame source was supplied.
	ErrNoSource = errors.New("annotate: frame source required")

	// ErrNoRenderer is returned when no renderer was supplied.
	ErrNoRenderer = errors.New("annotate: renderer required")

	// ErrNoDisplay is returned when no display was supplied.
	ErrNoDisplay = errors.New("annotate: display required")

	// ErrLoopClosed is returned when Run is called after the loop finished.
	ErrLoopClosed = errors.New("annotate: loop already finished")
)

// Kind classifies a failure.
type Kind int

const (
	// KindStartup means a camera, model or window could not be set up.
	// Nothing has been shown yet.
	KindStartup Kind = iota + 1

	// KindCollaborator means a capture, detect, draw or display call failed
	// mid-session. The loop stops immediately.
	KindCollaborator

	// KindCleanup means releasing the device or windows failed.
	KindCleanup
)

func (k Kind) String() string {
	switch k {
	case KindStartup:
		return "startup"
	case KindCollaborator:
		return "collaborator"
	case KindCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// Error is a classified loop failure.
type Error struct {
	Kind Kind
	Op   string // Operation that failed, e.g. "detect"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("annotate: %s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StartupError wraps err as a startup failure.
func StartupError(op string, err error) error {
	return &Error{Kind: KindStartup, Op: op, Err: err}
}

func collaborator(op string, err error) error {
	return &Error{Kind: KindCollaborator, Op: op, Err: err}
}

func cleanup(op string, err error) error {
	return &Error{Kind: KindCleanup, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsStartup reports whether err is a startup failure.
func IsStartup(err error) bool { return KindOf(err) == KindStartup }

// IsCollaborator reports whether err is a mid-session collaborator failure.
func IsCollaborator(err error) bool { return KindOf(err) == KindCollaborator }

// IsCleanup reports whether err only concerns releasing resources.
func IsCleanup(err error) bool { return KindOf(err) == KindCleanup }
