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

package smbios

// MemoryDevice is the decoded Memory Device structure (type 17).
type MemoryDevice struct {
	Structure `json:"-"`

	PhysicalMemoryArrayHandle *uint16
	ErrorInformationHandle    *uint16
	TotalWidth                *uint16
	DataWidth                 *uint16

	// RawSize is the "Size" field as stored in the table.
	RawSize *uint16

	// Size is the size of the device in bytes (zero if no device is
	// installed in the socket). It is nil if the size is unknown.
	Size *uint64

	FormFactor    *MemoryFormFactor
	DeviceSet     *uint8
	DeviceLocator string
	BankLocator   string
	MemoryType    *MemoryType
	TypeDetail    *uint16

	// SpeedMTs and ConfiguredSpeedMTs are in megatransfers per second,
	// resolved through the extended speed fields when needed.
	SpeedMTs *uint32

	Manufacturer string
	SerialNumber string
	AssetTag     string
	PartNumber   string

	// Rank is nil if absent or unknown.
	Rank *uint8

	ConfiguredSpeedMTs *uint32

	MinimumVoltageMV    *uint16
	MaximumVoltageMV    *uint16
	ConfiguredVoltageMV *uint16

	MemoryTechnology     *uint8
	FirmwareVersion      string
	ModuleManufacturerID *uint16
	ModuleProductID      *uint16
	VolatileSize         *uint64
}

// IsInstalled returns true if a device of a known non-zero size is
// installed in the socket.
func (d *MemoryDevice) IsInstalled() bool {
	return d.Size != nil && *d.Size > 0
}

func decodeMemoryDevice(_ Version, s Structure) Record {
	f := newFields(&s)
	r := &MemoryDevice{
		Structure:                 s,
		PhysicalMemoryArrayHandle: f.u16(0x04),
		ErrorInformationHandle:    f.u16(0x06),
		TotalWidth:                f.u16(0x08),
		DataWidth:                 f.u16(0x0A),
		RawSize:                   f.u16(0x0C),
		DeviceSet:                 f.u8(0x0F),
		DeviceLocator:             f.str(0x10),
		BankLocator:               f.str(0x11),
		TypeDetail:                f.u16(0x13),
		SpeedMTs:                  memorySpeed(f, 0x15, 0x54),
		Manufacturer:              f.str(0x17),
		SerialNumber:              f.str(0x18),
		AssetTag:                  f.str(0x19),
		PartNumber:                f.str(0x1A),
		ConfiguredSpeedMTs:        memorySpeed(f, 0x20, 0x58),
		MinimumVoltageMV:          f.u16(0x22),
		MaximumVoltageMV:          f.u16(0x24),
		ConfiguredVoltageMV:       f.u16(0x26),
		MemoryTechnology:          f.u8(0x28),
		FirmwareVersion:           f.str(0x2B),
		ModuleManufacturerID:      f.u16(0x2C),
		ModuleProductID:           f.u16(0x2E),
		VolatileSize:              f.u64(0x3C),
	}
	if r.RawSize != nil {
		r.Size = memoryDeviceSize(*r.RawSize, f.u32(0x1C))
	}
	if v := f.u8(0x0E); v != nil {
		r.FormFactor = ptr(MemoryFormFactor(*v))
	}
	if v := f.u8(0x12); v != nil {
		r.MemoryType = ptr(MemoryType(*v))
	}
	if v := f.u8(0x1B); v != nil && *v&0x0F != 0 {
		r.Rank = ptr(*v & 0x0F)
	}
	return r
}

func memoryDeviceSize(size uint16, extendedSize *uint32) *uint64 {
	switch {
	case size == 0xFFFF:
		return nil
	case size == 0x7FFF && extendedSize != nil:
		return ptr(uint64(*extendedSize&0x7FFFFFFF) * mib)
	case size&0x8000 != 0:
		return ptr(uint64(size&0x7FFF) * kib)
	}
	return ptr(uint64(size) * mib)
}

func memorySpeed(f fields, offset, extOffset int) *uint32 {
	v := f.u16(offset)
	if v == nil {
		return nil
	}
	if *v == 0xFFFF {
		if ext := f.u32(extOffset); ext != nil {
			return ptr(*ext & 0x7FFFFFFF)
		}
	}
	return ptr(uint32(*v))
}

// MemoryFormFactor is the form factor of a memory device.
type MemoryFormFactor uint8

var memoryFormFactorNames = map[MemoryFormFactor]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "SIMM",
	0x04: "SIP",
	0x05: "Chip",
	0x06: "DIP",
	0x07: "ZIP",
	0x08: "Proprietary Card",
	0x09: "DIMM",
	0x0A: "TSOP",
	0x0B: "Row Of Chips",
	0x0C: "RIMM",
	0x0D: "SODIMM",
	0x0E: "SRIMM",
	0x0F: "FB-DIMM",
	0x10: "Die",
}

// String implements fmt.Stringer.
func (f MemoryFormFactor) String() string {
	return enumName(f, memoryFormFactorNames)
}

// MemoryType is the type of a memory device.
type MemoryType uint8

var memoryTypeNames = map[MemoryType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "DRAM",
	0x04: "EDRAM",
	0x05: "VRAM",
	0x06: "SRAM",
	0x07: "RAM",
	0x08: "ROM",
	0x09: "Flash",
	0x0A: "EEPROM",
	0x0B: "FEPROM",
	0x0C: "EPROM",
	0x0D: "CDRAM",
	0x0E: "3DRAM",
	0x0F: "SDRAM",
	0x10: "SGRAM",
	0x11: "RDRAM",
	0x12: "DDR",
	0x13: "DDR2",
	0x14: "DDR2 FB-DIMM",
	0x18: "DDR3",
	0x19: "FBD2",
	0x1A: "DDR4",
	0x1B: "LPDDR",
	0x1C: "LPDDR2",
	0x1D: "LPDDR3",
	0x1E: "LPDDR4",
	0x1F: "Logical non-volatile device",
	0x20: "HBM",
	0x21: "HBM2",
	0x22: "DDR5",
	0x23: "LPDDR5",
	0x24: "HBM3",
}

// String implements fmt.Stringer.
func (t MemoryType) String() string {
	return enumName(t, memoryTypeNames)
}
