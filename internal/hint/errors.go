package hint

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrNotActive indicates an input event arrived while no hints are shown.
	ErrNotActive = errors.New("hint session not active")

	// ErrInvalidMode indicates Activate was asked for the inactive mode.
	ErrInvalidMode = errors.New("invalid hint mode")

	// ErrConfig indicates the settings cannot produce labels.
	ErrConfig = errors.New("invalid hint configuration")
)

// ActivationError describes why an activation was aborted.
type ActivationError struct {
	Mode Mode
	Op   string // "settings", "scan" or "render"
	Err  error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("activate %s hints: %s: %v", e.Mode, e.Op, e.Err)
}

func (e *ActivationError) Unwrap() error {
	return e.Err
}
