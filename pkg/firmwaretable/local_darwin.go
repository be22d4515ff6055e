//go:build darwin
// +build darwin

package firmwaretable

// Local returns the default provider of the platform.
func Local(opts ...Option) Provider {
	return NewIORegistry(opts...)
}
