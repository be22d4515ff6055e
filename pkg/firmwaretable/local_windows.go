//go:build windows
// +build windows

package firmwaretable

// Local returns the default provider of the platform.
func Local(opts ...Option) Provider {
	return NewWindowsAPI(opts...)
}
