package audio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// paVolumeNorm is PulseAudio's PA_VOLUME_NORM: the raw volume unit for 100%.
// Writes use raw units so sub-percent requests are not truncated.
const paVolumeNorm = 65536

// defaultSink addresses whatever sink the sound server currently routes to.
const defaultSink = "@DEFAULT_SINK@"

// linuxEndpoint drives the default sink through pactl, which talks to
// PulseAudio or PipeWire's pulse shim alike.
type linuxEndpoint struct {
	name string
}

func openDefaultEndpoint(ctx context.Context) (Endpoint, error) {
	out, err := runPactl(ctx, "get-default-sink")
	if err != nil {
		return nil, err
	}
	ep := &linuxEndpoint{name: strings.TrimSpace(out)}
	if _, _, err := ep.sinkVolume(ctx); err != nil {
		return nil, err
	}
	return ep, nil
}

func (e *linuxEndpoint) sinkVolume(ctx context.Context) (raw int64, db float64, err error) {
	out, err := runPactl(ctx, "get-sink-volume", defaultSink)
	if err != nil {
		return 0, 0, err
	}
	return parseSinkVolume(out)
}

func (e *linuxEndpoint) MasterVolumeScalar(ctx context.Context) (float64, error) {
	raw, _, err := e.sinkVolume(ctx)
	if err != nil {
		return 0, err
	}
	return float64(raw) / paVolumeNorm, nil
}

func (e *linuxEndpoint) MasterVolumeDecibels(ctx context.Context) (float64, error) {
	_, db, err := e.sinkVolume(ctx)
	if err != nil {
		return 0, err
	}
	return db, nil
}

func (e *linuxEndpoint) Muted(ctx context.Context) (bool, error) {
	out, err := runPactl(ctx, "get-sink-mute", defaultSink)
	if err != nil {
		return false, err
	}
	return parseSinkMute(out)
}

func (e *linuxEndpoint) SetMasterVolumeScalar(ctx context.Context, scalar float64) error {
	raw := int64(math.Round(scalar * paVolumeNorm))
	if raw < 0 {
		raw = 0
	}
	_, err := runPactl(ctx, "set-sink-volume", defaultSink, strconv.FormatInt(raw, 10))
	return err
}

func (e *linuxEndpoint) SetMuted(ctx context.Context, muted bool) error {
	arg := "0"
	if muted {
		arg = "1"
	}
	_, err := runPactl(ctx, "set-sink-mute", defaultSink, arg)
	return err
}

func (e *linuxEndpoint) Name() string { return e.name }

func (e *linuxEndpoint) Close() error { return nil }

func runPactl(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "pactl", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pactl %s: %w (%s)", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// parseSinkVolume extracts the first channel of a `pactl get-sink-volume`
// report, e.g. "Volume: front-left: 37224 /  57% / -14.71 dB, ...".
// Muted sinks report "-inf dB", which ParseFloat accepts.
func parseSinkVolume(out string) (raw int64, db float64, err error) {
	var line string
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimSpace(l)
		if rest, ok := strings.CutPrefix(l, "Volume:"); ok {
			line = strings.TrimSpace(rest)
			break
		}
	}
	if line == "" {
		return 0, 0, fmt.Errorf("no volume line in pactl output %q", out)
	}

	first := line
	if i := strings.IndexByte(first, ','); i >= 0 {
		first = first[:i]
	}
	parts := strings.Split(first, "/")
	if len(parts) < 3 {
		return 0, 0, fmt.Errorf("unexpected volume entry %q", first)
	}

	rawField := parts[0]
	if i := strings.LastIndexByte(rawField, ':'); i >= 0 {
		rawField = rawField[i+1:]
	}
	raw, err = strconv.ParseInt(strings.TrimSpace(rawField), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse raw volume in %q: %w", first, err)
	}

	dbField := strings.TrimSpace(parts[2])
	dbField = strings.TrimSpace(strings.TrimSuffix(dbField, "dB"))
	db, err = strconv.ParseFloat(dbField, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse decibels in %q: %w", first, err)
	}
	return raw, db, nil
}

// parseSinkMute reads a `pactl get-sink-mute` report: "Mute: yes" or "Mute: no".
func parseSinkMute(out string) (bool, error) {
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimSpace(l)
		if rest, ok := strings.CutPrefix(l, "Mute:"); ok {
			switch strings.TrimSpace(rest) {
			case "yes":
				return true, nil
			case "no":
				return false, nil
			default:
				return false, fmt.Errorf("unexpected mute state %q", strings.TrimSpace(rest))
			}
		}
	}
	return false, fmt.Errorf("no mute line in pactl output %q", out)
}
