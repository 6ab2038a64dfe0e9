package audio

import (
	"context"
	"errors"
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

// hrAlreadyInitialized is S_FALSE from CoInitializeEx: COM was already
// initialized on this thread, which is fine.
const hrAlreadyInitialized = 0x00000001

// windowsEndpoint wraps the IAudioEndpointVolume interface of the default
// render device, the same Core Audio surface pycaw and deej drive.
type windowsEndpoint struct {
	device *wca.IMMDevice
	volume *wca.IAudioEndpointVolume
	name   string
	closed bool
}

func openDefaultEndpoint(_ context.Context) (Endpoint, error) {
	// COM stays initialized for the life of the process. Goroutines migrate OS
	// threads, so a paired CoUninitialize cannot be issued reliably.
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != hrAlreadyInitialized {
			return nil, fmt.Errorf("initialize COM: %w", err)
		}
	}

	var enumerator *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &enumerator); err != nil {
		return nil, fmt.Errorf("create device enumerator: %w", err)
	}
	defer enumerator.Release()

	var device *wca.IMMDevice
	if err := enumerator.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &device); err != nil {
		return nil, fmt.Errorf("get default render endpoint: %w", err)
	}

	var volume *wca.IAudioEndpointVolume
	if err := device.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &volume); err != nil {
		device.Release()
		return nil, fmt.Errorf("activate endpoint volume: %w", err)
	}

	ep := &windowsEndpoint{device: device, volume: volume, name: deviceName(device)}

	var probe float32
	if err := volume.GetMasterVolumeLevelScalar(&probe); err != nil {
		ep.Close()
		return nil, fmt.Errorf("probe endpoint volume: %w", err)
	}
	return ep, nil
}

// deviceName reads the device's friendly name from its property store,
// falling back to a generic label when the store is unreadable.
func deviceName(device *wca.IMMDevice) string {
	var store *wca.IPropertyStore
	if err := device.OpenPropertyStore(wca.STGM_READ, &store); err != nil {
		return "default output"
	}
	defer store.Release()

	var value wca.PROPVARIANT
	if err := store.GetValue(&wca.PKEY_Device_FriendlyName, &value); err != nil {
		return "default output"
	}
	return value.String()
}

func (e *windowsEndpoint) MasterVolumeScalar(_ context.Context) (float64, error) {
	if e.closed {
		return 0, ErrEndpointClosed
	}
	var level float32
	if err := e.volume.GetMasterVolumeLevelScalar(&level); err != nil {
		return 0, fmt.Errorf("get master volume scalar: %w", err)
	}
	return float64(level), nil
}

func (e *windowsEndpoint) MasterVolumeDecibels(_ context.Context) (float64, error) {
	if e.closed {
		return 0, ErrEndpointClosed
	}
	var level float32
	if err := e.volume.GetMasterVolumeLevel(&level); err != nil {
		return 0, fmt.Errorf("get master volume level: %w", err)
	}
	return float64(level), nil
}

func (e *windowsEndpoint) Muted(_ context.Context) (bool, error) {
	if e.closed {
		return false, ErrEndpointClosed
	}
	var muted bool
	if err := e.volume.GetMute(&muted); err != nil {
		return false, fmt.Errorf("get mute: %w", err)
	}
	return muted, nil
}

func (e *windowsEndpoint) SetMasterVolumeScalar(_ context.Context, scalar float64) error {
	if e.closed {
		return ErrEndpointClosed
	}
	if err := e.volume.SetMasterVolumeLevelScalar(float32(scalar), nil); err != nil {
		return fmt.Errorf("set master volume scalar: %w", err)
	}
	return nil
}

func (e *windowsEndpoint) SetMuted(_ context.Context, muted bool) error {
	if e.closed {
		return ErrEndpointClosed
	}
	if err := e.volume.SetMute(muted, nil); err != nil {
		return fmt.Errorf("set mute: %w", err)
	}
	return nil
}

func (e *windowsEndpoint) Name() string { return e.name }

func (e *windowsEndpoint) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.volume != nil {
		e.volume.Release()
		e.volume = nil
	}
	if e.device != nil {
		e.device.Release()
		e.device = nil
	}
	return nil
}
