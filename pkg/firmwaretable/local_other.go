//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package firmwaretable

import (
	"context"
	"runtime"
)

type unsupported struct{}

func (unsupported) AcquireTable(context.Context) ([]byte, []byte, error) {
	return nil, nil, ErrPlatformUnsupported{Platform: runtime.GOOS}
}

// Local returns the default provider of the platform.
func Local(opts ...Option) Provider {
	return unsupported{}
}
