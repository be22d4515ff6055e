package inventory

import (
	"time"
)

const (
	// DefaultTTL is the default period during which an acquired table
	// is reused without asking the provider again.
	DefaultTTL = time.Minute

	// DefaultDecodeCacheSize is the default amount of decoded tables
	// kept by their digest.
	DefaultDecodeCacheSize = 8
)

type config struct {
	TTL             time.Duration
	DecodeCacheSize int
	CPUIDFallback   bool
}

// Option is an optional argument of NewCollector.
type Option interface {
	apply(*config)
}

// OptionTTL sets how long an acquired table is reused. Zero disables
// the reuse, so every request acquires the table.
type OptionTTL time.Duration

func (opt OptionTTL) apply(cfg *config) {
	cfg.TTL = time.Duration(opt)
}

// OptionDecodeCacheSize sets how many decoded tables are kept by the
// digest of their bytes. Zero disables the cache.
type OptionDecodeCacheSize int

func (opt OptionDecodeCacheSize) apply(cfg *config) {
	cfg.DecodeCacheSize = int(opt)
}

// OptionCPUIDFallback enables completing the processor information with
// what CPUID reports for the local CPU. It makes sense only for tables
// acquired from the local machine.
type OptionCPUIDFallback bool

func (opt OptionCPUIDFallback) apply(cfg *config) {
	cfg.CPUIDFallback = bool(opt)
}

func getConfig(opts ...Option) config {
	cfg := config{
		TTL:             DefaultTTL,
		DecodeCacheSize: DefaultDecodeCacheSize,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}
