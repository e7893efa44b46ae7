package render

import (
	"errors"
	"fmt"
)

var (
	// ErrSurface indicates the drawing surface could not be created or was lost.
	ErrSurface = errors.New("render: surface unavailable")

	// ErrRegister indicates geometry could not be uploaded to the backend.
	ErrRegister = errors.New("render: geometry registration failed")

	// ErrDraw indicates a draw call was rejected.
	ErrDraw = errors.New("render: draw failed")

	// ErrPresent indicates the finished frame could not be shown.
	ErrPresent = errors.New("render: present failed")

	// ErrUnknownHandle indicates a draw referenced geometry that was never registered.
	ErrUnknownHandle = errors.New("render: unknown geometry handle")
)

// BackendError wraps a backend failure with the operation and backend name.
type BackendError struct {
	Op      string
	Backend string
	Wrapped error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Wrapped)
}

func (e *BackendError) Unwrap() error {
	return e.Wrapped
}

// Fail builds a BackendError whose chain carries both kind and cause.
func Fail(backend, op string, kind, cause error) error {
	wrapped := kind
	if cause != nil && !errors.Is(cause, kind) {
		wrapped = fmt.Errorf("%w: %w", kind, cause)
	}
	return &BackendError{Op: op, Backend: backend, Wrapped: wrapped}
}

func wrap(b Backend, op string, kind, err error) error {
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	return Fail(b.Name(), op, kind, err)
}
