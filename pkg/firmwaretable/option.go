// Copyright 2023 Meta Platforms, Inc. and affiliates.
//
// Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:
//
// 1. Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package firmwaretable

import (
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

const (
	// DefaultSysFSEntryPointPath is the default path to the entry point
	// exported by Linux.
	DefaultSysFSEntryPointPath = `/sys/firmware/dmi/tables/smbios_entry_point`

	// DefaultSysFSTablePath is the default path to the structure table
	// exported by Linux.
	DefaultSysFSTablePath = `/sys/firmware/dmi/tables/DMI`

	// DefaultDevMemPath is the default path to the device to access
	// memory by physical addresses.
	DefaultDevMemPath = `/dev/mem`

	// DefaultIOMemPath is the default path to the list of ranges
	// of physical memory addresses.
	DefaultIOMemPath = `/proc/iomem`

	// DefaultEFISystabPath is the default path to the EFI system table
	// summary, which contains the physical address of the entry point.
	DefaultEFISystabPath = `/sys/firmware/efi/systab`

	// DefaultIORegPath is the default command to execute "ioreg".
	DefaultIORegPath = `ioreg`

	// DefaultMaxTableSize limits the amount of bytes read for a table
	// when the entry point declares only the maximum size.
	DefaultMaxTableSize = 1 << 20
)

// DefaultVersion is the SMBIOS version assumed for a table which comes
// without an entry point or a version.
var DefaultVersion = smbios.Version{Major: 3, Minor: 0}

type config struct {
	SysFSEntryPointPath string
	SysFSTablePath      string
	DevMemPath          string
	IOMemPath           string
	EFISystabPath       string
	IORegPath           string
	Version             smbios.Version
	MaxTableSize        uint32
}

// Option is an abstract option for providers.
type Option interface {
	apply(*config)
}

// OptionSysFSEntryPointPath is an Option which defines the path to the
// entry point exported by the kernel.
type OptionSysFSEntryPointPath string

func (opt OptionSysFSEntryPointPath) apply(cfg *config) {
	cfg.SysFSEntryPointPath = string(opt)
}

// OptionSysFSTablePath is an Option which defines the path to the
// structure table exported by the kernel.
type OptionSysFSTablePath string

func (opt OptionSysFSTablePath) apply(cfg *config) {
	cfg.SysFSTablePath = string(opt)
}

// OptionDevMemPath is an Option which defines the path where to look for
// the device to access memory by physical addresses.
type OptionDevMemPath string

func (opt OptionDevMemPath) apply(cfg *config) {
	cfg.DevMemPath = string(opt)
}

// OptionIOMemPath is an Option which defines the path to look for the
// lists ranges of physical memory addresses.
type OptionIOMemPath string

func (opt OptionIOMemPath) apply(cfg *config) {
	cfg.IOMemPath = string(opt)
}

// OptionEFISystabPath is an Option which defines the path to the EFI
// system table summary.
type OptionEFISystabPath string

func (opt OptionEFISystabPath) apply(cfg *config) {
	cfg.EFISystabPath = string(opt)
}

// OptionIORegPath is an Option which defines the command
// for os.Exec to execute tool "ioreg".
type OptionIORegPath string

func (opt OptionIORegPath) apply(cfg *config) {
	cfg.IORegPath = string(opt)
}

// OptionVersion is an Option which defines the SMBIOS version put into
// synthesized entry points (used when the source has no entry point).
type OptionVersion smbios.Version

func (opt OptionVersion) apply(cfg *config) {
	cfg.Version = smbios.Version(opt)
}

// OptionMaxTableSize is an Option which limits the amount of bytes read
// for a table which has only the maximum size declared.
type OptionMaxTableSize uint32

func (opt OptionMaxTableSize) apply(cfg *config) {
	cfg.MaxTableSize = uint32(opt)
}

func getConfig(opts ...Option) config {
	cfg := config{
		SysFSEntryPointPath: DefaultSysFSEntryPointPath,
		SysFSTablePath:      DefaultSysFSTablePath,
		DevMemPath:          DefaultDevMemPath,
		IOMemPath:           DefaultIOMemPath,
		EFISystabPath:       DefaultEFISystabPath,
		IORegPath:           DefaultIORegPath,
		Version:             DefaultVersion,
		MaxTableSize:        DefaultMaxTableSize,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}
