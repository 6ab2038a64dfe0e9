package audio

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestFakeEndpointDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := NewFakeEndpoint()

	scalar, err := fake.MasterVolumeScalar(ctx)
	if err != nil {
		t.Fatalf("MasterVolumeScalar() error = %v", err)
	}
	if scalar != 0.5 {
		t.Errorf("scalar = %v, want 0.5", scalar)
	}

	muted, err := fake.Muted(ctx)
	if err != nil {
		t.Fatalf("Muted() error = %v", err)
	}
	if muted {
		t.Error("muted = true, want false")
	}
}

func TestFakeEndpointSetState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := NewFakeEndpoint()

	fake.SetState(0.57, true)

	scalar, _ := fake.MasterVolumeScalar(ctx)
	if scalar != 0.57 {
		t.Errorf("scalar = %v, want 0.57", scalar)
	}
	muted, _ := fake.Muted(ctx)
	if !muted {
		t.Error("muted = false, want true")
	}
}

func TestFakeEndpointDecibels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := NewFakeEndpoint()

	// Derived from the scalar until seeded explicitly.
	fake.SetState(0.5, false)
	db, err := fake.MasterVolumeDecibels(ctx)
	if err != nil {
		t.Fatalf("MasterVolumeDecibels() error = %v", err)
	}
	if want := 20 * math.Log10(0.5); math.Abs(db-want) > 1e-9 {
		t.Errorf("derived db = %v, want %v", db, want)
	}

	fake.SetDecibels(-12.345)
	db, _ = fake.MasterVolumeDecibels(ctx)
	if db != -12.345 {
		t.Errorf("seeded db = %v, want -12.345", db)
	}

	// A volume write invalidates the seeded reading.
	if err := fake.SetMasterVolumeScalar(ctx, 0.8); err != nil {
		t.Fatalf("SetMasterVolumeScalar() error = %v", err)
	}
	db, _ = fake.MasterVolumeDecibels(ctx)
	if want := 20 * math.Log10(0.8); math.Abs(db-want) > 1e-9 {
		t.Errorf("db after write = %v, want derived %v", db, want)
	}
}

func TestScalarToDecibels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scalar float64
		want   float64
	}{
		{1.0, 0},
		{0.5, 20 * math.Log10(0.5)},
		{0, dbFloor},
		{-0.1, dbFloor},
		{1e-10, dbFloor}, // below the floor
	}
	for _, tt := range tests {
		if got := scalarToDecibels(tt.scalar); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("scalarToDecibels(%v) = %v, want %v", tt.scalar, got, tt.want)
		}
	}
}

func TestFakeEndpointQuantize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := NewFakeEndpoint()
	fake.Quantize(32)

	if err := fake.SetMasterVolumeScalar(ctx, 0.30); err != nil {
		t.Fatalf("SetMasterVolumeScalar() error = %v", err)
	}

	scalar, _ := fake.MasterVolumeScalar(ctx)
	if want := math.Round(0.30*32) / 32; scalar != want {
		t.Errorf("quantized scalar = %v, want %v", scalar, want)
	}
	if scalar == 0.30 {
		t.Error("quantized scalar kept the exact request, want a snapped value")
	}
}

func TestFakeEndpointWriteCounters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := NewFakeEndpoint()

	if err := fake.SetMasterVolumeScalar(ctx, 0.2); err != nil {
		t.Fatalf("SetMasterVolumeScalar() error = %v", err)
	}
	if err := fake.SetMuted(ctx, true); err != nil {
		t.Fatalf("SetMuted() error = %v", err)
	}
	if err := fake.SetMuted(ctx, true); err != nil {
		t.Fatalf("SetMuted() error = %v", err)
	}

	if got := fake.ScalarWrites(); got != 1 {
		t.Errorf("ScalarWrites() = %d, want 1", got)
	}
	if got := fake.MuteWrites(); got != 2 {
		t.Errorf("MuteWrites() = %d, want 2", got)
	}
}

func TestFakeEndpointFailureInjection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	injected := errors.New("device gone")

	t.Run("all", func(t *testing.T) {
		t.Parallel()
		fake := NewFakeEndpoint()
		fake.FailWith(injected)

		if _, err := fake.MasterVolumeScalar(ctx); !errors.Is(err, injected) {
			t.Errorf("read error = %v, want injected", err)
		}
		if err := fake.SetMuted(ctx, true); !errors.Is(err, injected) {
			t.Errorf("write error = %v, want injected", err)
		}

		fake.FailWith(nil)
		if _, err := fake.MasterVolumeScalar(ctx); err != nil {
			t.Errorf("read after reset error = %v, want nil", err)
		}
	})

	t.Run("reads only", func(t *testing.T) {
		t.Parallel()
		fake := NewFakeEndpoint()
		fake.FailReadsWith(injected)

		if _, err := fake.Muted(ctx); !errors.Is(err, injected) {
			t.Errorf("read error = %v, want injected", err)
		}
		if err := fake.SetMasterVolumeScalar(ctx, 0.4); err != nil {
			t.Errorf("write error = %v, want nil", err)
		}
	})

	t.Run("writes only", func(t *testing.T) {
		t.Parallel()
		fake := NewFakeEndpoint()
		fake.FailWritesWith(injected)

		if _, err := fake.Muted(ctx); err != nil {
			t.Errorf("read error = %v, want nil", err)
		}
		if err := fake.SetMuted(ctx, true); !errors.Is(err, injected) {
			t.Errorf("write error = %v, want injected", err)
		}
	})
}

func TestFakeEndpointClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := NewFakeEndpoint()

	if err := fake.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := fake.MasterVolumeScalar(ctx); !errors.Is(err, ErrEndpointClosed) {
		t.Errorf("read after close error = %v, want ErrEndpointClosed", err)
	}
	if err := fake.SetMuted(ctx, true); !errors.Is(err, ErrEndpointClosed) {
		t.Errorf("write after close error = %v, want ErrEndpointClosed", err)
	}
}

func TestOpenFake(t *testing.T) {
	t.Parallel()

	ep, err := OpenFake(context.Background())
	if err != nil {
		t.Fatalf("OpenFake() error = %v", err)
	}
	defer ep.Close()

	if _, ok := ep.(*FakeEndpoint); !ok {
		t.Errorf("OpenFake() returned %T, want *FakeEndpoint", ep)
	}
}
