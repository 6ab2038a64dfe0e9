package volume

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by every operation on a controller whose audio
// endpoint could not be acquired. The message is the wire contract surfaced to
// tool callers, hence the capitalization.
var ErrNotInitialized = errors.New("Audio interface not initialized") //nolint:staticcheck // message is the tool-facing contract

// ErrInvalidPercentage is returned by SetVolume for requests outside [0, 100].
var ErrInvalidPercentage = errors.New("Volume percentage must be between 0 and 100") //nolint:staticcheck // message is the tool-facing contract

// PlatformError wraps an endpoint failure with the operation that hit it.
// No raw platform error crosses the facade without this wrapping.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }
