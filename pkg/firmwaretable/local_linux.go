//go:build linux
// +build linux

package firmwaretable

// Local returns the default provider of the platform: the sysfs export
// with a fallback to physical memory at the firmware-published address.
func Local(opts ...Option) Provider {
	return Chain{NewSysFS(opts...), NewDevMem(opts...)}
}
