// Package audio abstracts the operating system's default audio output endpoint.
//
// Endpoint is the narrow capability the volume facade needs: read and write the
// master volume scalar and mute flag, read the decibel level. Platform files
// provide the real implementations (Core Audio on Windows, osascript on macOS,
// pactl on Linux); FakeEndpoint provides an in-memory one.
package audio

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEndpointUnavailable reports that no default output endpoint could be
	// acquired: no audio device, no sound server, or an unsupported platform.
	ErrEndpointUnavailable = errors.New("audio endpoint unavailable")

	// ErrEndpointClosed reports use of an endpoint after Close.
	ErrEndpointClosed = errors.New("audio endpoint closed")
)

// Endpoint is a handle on one output device's master volume controls.
// Implementations are not safe for concurrent use; callers serialize access.
type Endpoint interface {
	// MasterVolumeScalar returns the master volume in [0.0, 1.0].
	MasterVolumeScalar(ctx context.Context) (float64, error)

	// MasterVolumeDecibels returns the master volume level in decibels.
	MasterVolumeDecibels(ctx context.Context) (float64, error)

	// Muted reports whether the endpoint is muted.
	Muted(ctx context.Context) (bool, error)

	// SetMasterVolumeScalar sets the master volume. The caller validates range;
	// scalar is expected in [0.0, 1.0].
	SetMasterVolumeScalar(ctx context.Context, scalar float64) error

	// SetMuted mutes or unmutes the endpoint. Writing the current state again
	// is a valid no-op at the device level.
	SetMuted(ctx context.Context, muted bool) error

	// Name returns a human-readable device label for logs.
	Name() string

	// Close releases the OS handle. The endpoint is unusable afterwards.
	Close() error
}

// Opener acquires an endpoint. The context bounds acquisition only, not the
// returned endpoint's lifetime.
type Opener func(ctx context.Context) (Endpoint, error)

// OpenDefault acquires the OS default output endpoint. Every platform opener
// probes a read before returning, so a present-but-broken device fails here
// rather than on first use.
func OpenDefault(ctx context.Context) (Endpoint, error) {
	ep, err := openDefaultEndpoint(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEndpointUnavailable, err)
	}
	return ep, nil
}
