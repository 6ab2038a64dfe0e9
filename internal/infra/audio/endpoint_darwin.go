package audio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// darwinEndpoint drives the default output device through osascript.
// AppleScript reports output volume as an integer percent and exposes no
// decibel reading, so decibels are derived from the scalar.
type darwinEndpoint struct{}

func openDefaultEndpoint(ctx context.Context) (Endpoint, error) {
	ep := darwinEndpoint{}
	if _, _, err := ep.volumeSettings(ctx); err != nil {
		return nil, err
	}
	return ep, nil
}

func (e darwinEndpoint) volumeSettings(ctx context.Context) (percent int, muted bool, err error) {
	out, err := runOsascript(ctx, "get volume settings")
	if err != nil {
		return 0, false, err
	}
	return parseVolumeSettings(out)
}

func (e darwinEndpoint) MasterVolumeScalar(ctx context.Context) (float64, error) {
	percent, _, err := e.volumeSettings(ctx)
	if err != nil {
		return 0, err
	}
	return float64(percent) / 100, nil
}

func (e darwinEndpoint) MasterVolumeDecibels(ctx context.Context) (float64, error) {
	percent, _, err := e.volumeSettings(ctx)
	if err != nil {
		return 0, err
	}
	return scalarToDecibels(float64(percent) / 100), nil
}

func (e darwinEndpoint) Muted(ctx context.Context) (bool, error) {
	_, muted, err := e.volumeSettings(ctx)
	if err != nil {
		return false, err
	}
	return muted, nil
}

func (e darwinEndpoint) SetMasterVolumeScalar(ctx context.Context, scalar float64) error {
	percent := int(math.Round(scalar * 100))
	_, err := runOsascript(ctx, fmt.Sprintf("set volume output volume %d", percent))
	return err
}

func (e darwinEndpoint) SetMuted(ctx context.Context, muted bool) error {
	_, err := runOsascript(ctx, fmt.Sprintf("set volume output muted %t", muted))
	return err
}

func (e darwinEndpoint) Name() string { return "default output (osascript)" }

func (e darwinEndpoint) Close() error { return nil }

func runOsascript(ctx context.Context, script string) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("osascript %q: %w (%s)", script, err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// parseVolumeSettings extracts the output fields from a `get volume settings`
// report: "output volume:57, input volume:75, alert volume:100, output muted:false".
func parseVolumeSettings(out string) (percent int, muted bool, err error) {
	percent = -1
	haveMuted := false
	for _, field := range strings.Split(out, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(field), ":")
		if !ok {
			continue
		}
		switch key {
		case "output volume":
			p, convErr := strconv.Atoi(value)
			if convErr != nil {
				return 0, false, fmt.Errorf("parse output volume %q: %w", value, convErr)
			}
			percent = p
		case "output muted":
			switch value {
			case "true":
				muted, haveMuted = true, true
			case "false":
				muted, haveMuted = false, true
			default:
				// "missing value" when the device has no mute control.
				return 0, false, fmt.Errorf("unsupported output muted state %q", value)
			}
		}
	}
	if percent < 0 || !haveMuted {
		return 0, false, fmt.Errorf("unexpected volume settings %q", out)
	}
	return percent, muted, nil
}
