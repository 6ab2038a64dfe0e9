//go:build !windows && !darwin && !linux

package audio

import (
	"context"
	"fmt"
	"runtime"
)

func openDefaultEndpoint(_ context.Context) (Endpoint, error) {
	return nil, fmt.Errorf("no audio endpoint support on %s", runtime.GOOS)
}
