// Package volume is the facade over the OS default audio output endpoint:
// query volume and mute state, set volume, mute, unmute, toggle mute.
package volume

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/akansha-code/volumemcpserver/internal/infra/audio"
)

// Transition messages surfaced verbatim to tool callers.
const (
	msgAlreadyMuted   = "System was already muted"
	msgMuted          = "System muted successfully"
	msgAlreadyUnmuted = "System was already unmuted"
	msgUnmuted        = "System unmuted successfully"
)

// Status is one coherent reading of the endpoint state, recomputed per query.
type Status struct {
	Percentage float64 // 0-100, rounded to one decimal
	Scalar     float64 // raw device scalar in [0, 1], unrounded
	Decibels   float64 // rounded to two decimals
	Muted      bool
}

// SetResult reports a volume write: what was requested and what the device
// kept. The two differ on hardware with coarse volume steps.
type SetResult struct {
	RequestedPercentage float64
	ActualPercentage    float64 // re-read after the write, rounded to one decimal
	Scalar              float64 // raw re-read scalar
}

// MuteResult reports a mute or unmute request. WasMuted == Muted means the
// request was a no-op and no device write happened.
type MuteResult struct {
	Message  string
	WasMuted bool
	Muted    bool
}

// ToggleResult reports a toggle. Action is "muted" or "unmuted", naming the
// state the toggle switched to.
type ToggleResult struct {
	Message  string
	WasMuted bool
	Muted    bool
	Action   string
}

// Controller is the volume facade over one audio endpoint.
//
// Operations serialize on an internal mutex: the endpoint handle is not
// reentrant and the HTTP transport delivers tool calls concurrently. A
// controller whose endpoint could not be acquired is still safe to use;
// every operation then returns ErrNotInitialized. It never re-acquires.
type Controller struct {
	mu       sync.Mutex
	endpoint audio.Endpoint
	initErr  error
	logger   *slog.Logger
}

// NewController acquires an endpoint via open. Acquisition failure does not
// make construction fail: the cause is logged, retained, and every later
// operation reports it.
func NewController(ctx context.Context, open audio.Opener, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{logger: logger}

	ep, err := open(ctx)
	if err != nil {
		c.initErr = fmt.Errorf("%w: %w", ErrNotInitialized, err)
		logger.Error("audio interface initialization failed", "error", err)
		return c
	}
	c.endpoint = ep
	logger.Info("audio interface initialized", "endpoint", ep.Name())
	return c
}

// InitErr returns the retained construction failure, nil when ready.
func (c *Controller) InitErr() error {
	return c.initErr
}

// Status reads volume scalar, decibel level, and mute state.
func (c *Controller) Status(ctx context.Context) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initErr != nil {
		return Status{}, ErrNotInitialized
	}

	scalar, err := c.endpoint.MasterVolumeScalar(ctx)
	if err != nil {
		return Status{}, &PlatformError{Op: "get volume info", Err: err}
	}
	db, err := c.endpoint.MasterVolumeDecibels(ctx)
	if err != nil {
		return Status{}, &PlatformError{Op: "get volume info", Err: err}
	}
	muted, err := c.endpoint.Muted(ctx)
	if err != nil {
		return Status{}, &PlatformError{Op: "get volume info", Err: err}
	}

	return Status{
		Percentage: round1(scalar * 100),
		Scalar:     scalar,
		Decibels:   round2(db),
		Muted:      muted,
	}, nil
}

// SetVolume writes percentage (0-100) to the device, then re-reads the
// effective value so the caller sees what the hardware actually kept.
func (c *Controller) SetVolume(ctx context.Context, percentage float64) (SetResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initErr != nil {
		return SetResult{}, ErrNotInitialized
	}
	// The negated form rejects NaN as well.
	if !(percentage >= 0 && percentage <= 100) {
		return SetResult{}, ErrInvalidPercentage
	}

	if err := c.endpoint.SetMasterVolumeScalar(ctx, percentage/100); err != nil {
		return SetResult{}, &PlatformError{Op: "set volume", Err: err}
	}
	scalar, err := c.endpoint.MasterVolumeScalar(ctx)
	if err != nil {
		return SetResult{}, &PlatformError{Op: "set volume", Err: err}
	}

	actual := round1(scalar * 100)
	c.logger.Info("volume set", "requested", percentage, "actual", actual)
	return SetResult{
		RequestedPercentage: percentage,
		ActualPercentage:    actual,
		Scalar:              scalar,
	}, nil
}

// Mute mutes the endpoint. Already muted is a no-op success with no write.
func (c *Controller) Mute(ctx context.Context) (MuteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initErr != nil {
		return MuteResult{}, ErrNotInitialized
	}

	muted, err := c.endpoint.Muted(ctx)
	if err != nil {
		return MuteResult{}, &PlatformError{Op: "mute", Err: err}
	}
	if muted {
		return MuteResult{Message: msgAlreadyMuted, WasMuted: true, Muted: true}, nil
	}

	if err := c.endpoint.SetMuted(ctx, true); err != nil {
		return MuteResult{}, &PlatformError{Op: "mute", Err: err}
	}
	c.logger.Info("system muted")
	return MuteResult{Message: msgMuted, WasMuted: false, Muted: true}, nil
}

// Unmute unmutes the endpoint. Already unmuted is a no-op success with no write.
func (c *Controller) Unmute(ctx context.Context) (MuteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initErr != nil {
		return MuteResult{}, ErrNotInitialized
	}

	muted, err := c.endpoint.Muted(ctx)
	if err != nil {
		return MuteResult{}, &PlatformError{Op: "unmute", Err: err}
	}
	if !muted {
		return MuteResult{Message: msgAlreadyUnmuted, WasMuted: false, Muted: false}, nil
	}

	if err := c.endpoint.SetMuted(ctx, false); err != nil {
		return MuteResult{}, &PlatformError{Op: "unmute", Err: err}
	}
	c.logger.Info("system unmuted")
	return MuteResult{Message: msgUnmuted, WasMuted: true, Muted: false}, nil
}

// ToggleMute flips the mute state. The write always happens, even though the
// target state is known from the read; Mute and Unmute short-circuit, Toggle
// does not.
func (c *Controller) ToggleMute(ctx context.Context) (ToggleResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initErr != nil {
		return ToggleResult{}, ErrNotInitialized
	}

	wasMuted, err := c.endpoint.Muted(ctx)
	if err != nil {
		return ToggleResult{}, &PlatformError{Op: "toggle mute", Err: err}
	}
	target := !wasMuted
	if err := c.endpoint.SetMuted(ctx, target); err != nil {
		return ToggleResult{}, &PlatformError{Op: "toggle mute", Err: err}
	}

	res := ToggleResult{WasMuted: wasMuted, Muted: target}
	if target {
		res.Message = msgMuted
		res.Action = "muted"
	} else {
		res.Message = msgUnmuted
		res.Action = "unmuted"
	}
	c.logger.Info("mute toggled", "muted", target)
	return res, nil
}

// Close releases the endpoint. Safe to call on a failed controller and safe
// to call twice; the controller must not be used afterwards.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.endpoint == nil {
		return nil
	}
	return c.endpoint.Close()
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
