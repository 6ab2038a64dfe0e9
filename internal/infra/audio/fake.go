package audio

import (
	"context"
	"math"
	"sync"
)

// dbFloor bounds the decibel value derived for a silent endpoint, since
// 20*log10(0) has no finite value.
const dbFloor = -96.0

// FakeEndpoint is an in-memory Endpoint for tests and for machines without an
// audio device (audio.backend: fake). It stores writes exactly unless
// quantization is enabled, and counts writes so callers can assert which
// operations touched the device.
type FakeEndpoint struct {
	mu sync.Mutex

	scalar float64
	db     float64
	dbSet  bool // explicit decibel reading seeded; otherwise derived from scalar
	muted  bool

	steps int // when > 0, scalar writes snap to the nearest 1/steps

	failAll    error
	failReads  error
	failWrites error

	scalarWrites int
	muteWrites   int

	closed bool
}

// NewFakeEndpoint returns a fake at 50% volume, unmuted.
func NewFakeEndpoint() *FakeEndpoint {
	return &FakeEndpoint{scalar: 0.5}
}

// OpenFake is an Opener for the fake backend.
func OpenFake(_ context.Context) (Endpoint, error) {
	return NewFakeEndpoint(), nil
}

// SetState seeds the stored scalar and mute flag and clears any explicit
// decibel reading, so decibels derive from the scalar again.
func (f *FakeEndpoint) SetState(scalar float64, muted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scalar = scalar
	f.muted = muted
	f.dbSet = false
}

// SetDecibels seeds an explicit decibel reading, decoupled from the scalar.
func (f *FakeEndpoint) SetDecibels(db float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.db = db
	f.dbSet = true
}

// Quantize makes scalar writes snap to the nearest multiple of 1/steps,
// imitating devices with a fixed volume step count. Zero disables it.
func (f *FakeEndpoint) Quantize(steps int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps = steps
}

// FailWith makes every subsequent call return err. Nil restores normal operation.
func (f *FakeEndpoint) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAll = err
}

// FailReadsWith makes subsequent reads return err, leaving writes working.
func (f *FakeEndpoint) FailReadsWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failReads = err
}

// FailWritesWith makes subsequent writes return err, leaving reads working.
func (f *FakeEndpoint) FailWritesWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = err
}

// ScalarWrites returns how many volume writes reached the fake.
func (f *FakeEndpoint) ScalarWrites() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scalarWrites
}

// MuteWrites returns how many mute writes reached the fake.
func (f *FakeEndpoint) MuteWrites() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muteWrites
}

func (f *FakeEndpoint) readGate() error {
	if f.closed {
		return ErrEndpointClosed
	}
	if f.failAll != nil {
		return f.failAll
	}
	return f.failReads
}

func (f *FakeEndpoint) writeGate() error {
	if f.closed {
		return ErrEndpointClosed
	}
	if f.failAll != nil {
		return f.failAll
	}
	return f.failWrites
}

func (f *FakeEndpoint) MasterVolumeScalar(_ context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readGate(); err != nil {
		return 0, err
	}
	return f.scalar, nil
}

func (f *FakeEndpoint) MasterVolumeDecibels(_ context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readGate(); err != nil {
		return 0, err
	}
	if f.dbSet {
		return f.db, nil
	}
	return scalarToDecibels(f.scalar), nil
}

func (f *FakeEndpoint) Muted(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readGate(); err != nil {
		return false, err
	}
	return f.muted, nil
}

func (f *FakeEndpoint) SetMasterVolumeScalar(_ context.Context, scalar float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writeGate(); err != nil {
		return err
	}
	if f.steps > 0 {
		scalar = math.Round(scalar*float64(f.steps)) / float64(f.steps)
	}
	f.scalar = scalar
	f.dbSet = false
	f.scalarWrites++
	return nil
}

func (f *FakeEndpoint) SetMuted(_ context.Context, muted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writeGate(); err != nil {
		return err
	}
	f.muted = muted
	f.muteWrites++
	return nil
}

func (f *FakeEndpoint) Name() string { return "fake endpoint" }

func (f *FakeEndpoint) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// scalarToDecibels derives a decibel value for backends that expose none.
func scalarToDecibels(scalar float64) float64 {
	if scalar <= 0 {
		return dbFloor
	}
	return math.Max(20*math.Log10(scalar), dbFloor)
}
