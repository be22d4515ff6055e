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

import (
	"fmt"
)

// Processor is the decoded Processor Information structure (type 4).
type Processor struct {
	Structure `json:"-"`

	SocketDesignation string
	ProcessorType     *ProcessorType

	// Family is resolved through "Processor Family 2" when the
	// legacy field holds the escape value 0xFE.
	Family       *ProcessorFamily
	Manufacturer string
	ID           *uint64
	Version      string
	Voltage      *ProcessorVoltage

	ExternalClockMHz *uint16
	MaxSpeedMHz      *uint16
	CurrentSpeedMHz  *uint16

	Status  *ProcessorStatus
	Upgrade *uint8

	L1CacheHandle *uint16
	L2CacheHandle *uint16
	L3CacheHandle *uint16

	SerialNumber string
	AssetTag     string
	PartNumber   string

	// CoreCount, CoreEnabled and ThreadCount are resolved through
	// their 16-bit counterparts when the 8-bit field holds 0xFF.
	CoreCount     *uint16
	CoreEnabled   *uint16
	ThreadCount   *uint16
	ThreadEnabled *uint16

	Characteristics *ProcessorCharacteristics
	SocketType      string
}

func decodeProcessor(_ Version, s Structure) Record {
	f := newFields(&s)
	r := &Processor{
		Structure:         s,
		SocketDesignation: f.str(0x04),
		Manufacturer:      f.str(0x07),
		ID:                f.u64(0x08),
		Version:           f.str(0x10),
		ExternalClockMHz:  f.u16(0x12),
		MaxSpeedMHz:       f.u16(0x14),
		CurrentSpeedMHz:   f.u16(0x16),
		Upgrade:           f.u8(0x19),
		L1CacheHandle:     f.u16(0x1A),
		L2CacheHandle:     f.u16(0x1C),
		L3CacheHandle:     f.u16(0x1E),
		SerialNumber:      f.str(0x20),
		AssetTag:          f.str(0x21),
		PartNumber:        f.str(0x22),
		CoreCount:         extendedCount(f, 0x23, 0x2A),
		CoreEnabled:       extendedCount(f, 0x24, 0x2C),
		ThreadCount:       extendedCount(f, 0x25, 0x2E),
		ThreadEnabled:     f.u16(0x30),
		SocketType:        f.str(0x32),
	}
	if v := f.u8(0x05); v != nil {
		r.ProcessorType = ptr(ProcessorType(*v))
	}
	if v := f.u8(0x06); v != nil {
		family := ProcessorFamily(*v)
		if *v == 0xFE {
			if v2 := f.u16(0x28); v2 != nil {
				family = ProcessorFamily(*v2)
			}
		}
		r.Family = &family
	}
	if v := f.u8(0x11); v != nil {
		r.Voltage = ptr(ProcessorVoltage(*v))
	}
	if v := f.u8(0x18); v != nil {
		r.Status = ptr(ProcessorStatus(*v))
	}
	if v := f.u16(0x26); v != nil {
		r.Characteristics = ptr(ProcessorCharacteristics(*v))
	}
	return r
}

// extendedCount reads an 8-bit count which escapes to a 16-bit field
// with value 0xFF (if the structure is long enough to have one).
func extendedCount(f fields, offset, extOffset int) *uint16 {
	v := f.u8(offset)
	if v == nil {
		return nil
	}
	if *v == 0xFF {
		if ext := f.u16(extOffset); ext != nil {
			return ext
		}
	}
	return ptr(uint16(*v))
}

// ProcessorType is the type of a processor.
type ProcessorType uint8

var processorTypeNames = map[ProcessorType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Central Processor",
	0x04: "Math Processor",
	0x05: "DSP Processor",
	0x06: "Video Processor",
}

// String implements fmt.Stringer.
func (t ProcessorType) String() string {
	return enumName(t, processorTypeNames)
}

// ProcessorFamily is the family of a processor.
type ProcessorFamily uint16

var processorFamilyNames = map[ProcessorFamily]string{
	0x01:  "Other",
	0x02:  "Unknown",
	0x6B:  "Zen",
	0xB2:  "Pentium 4",
	0xB3:  "Xeon",
	0xBF:  "Core 2 Duo",
	0xC6:  "Core i7",
	0xCD:  "Core i5",
	0xCE:  "Core i3",
	0x100: "ARMv7",
	0x101: "ARMv8",
	0x102: "ARMv9",
	0x200: "RISC-V RV32",
	0x201: "RISC-V RV64",
	0x202: "RISC-V RV128",
}

// String implements fmt.Stringer.
func (f ProcessorFamily) String() string {
	if name, ok := processorFamilyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family 0x%X", uint16(f))
}

// ProcessorVoltage is the "Voltage" field of a processor.
type ProcessorVoltage uint8

// IsLegacy returns true if the value is a set of supported voltage flags
// instead of the current voltage.
func (v ProcessorVoltage) IsLegacy() bool {
	return v&0x80 == 0
}

// Volts returns the current voltage. It is defined only if !IsLegacy().
func (v ProcessorVoltage) Volts() float64 {
	return float64(v&0x7F) / 10
}

var processorVoltageLegacyNames = []string{
	"5.0 V",
	"3.3 V",
	"2.9 V",
}

// Names returns the supported voltages in the legacy mode
// or the current voltage otherwise.
func (v ProcessorVoltage) Names() []string {
	if !v.IsLegacy() {
		return []string{fmt.Sprintf("%.1f V", v.Volts())}
	}
	return bitNames(uint64(v), processorVoltageLegacyNames)
}

// Unknown returns the reserved bits set in the legacy mode.
func (v ProcessorVoltage) Unknown() uint8 {
	if !v.IsLegacy() {
		return 0
	}
	return uint8(unknownBits(uint64(v), processorVoltageLegacyNames))
}

// ProcessorStatus is the "Status" field of a processor.
type ProcessorStatus uint8

// CPUStatus is the state of a processor reported in bits 2:0 of ProcessorStatus.
type CPUStatus uint8

var cpuStatusNames = map[CPUStatus]string{
	0: "Unknown",
	1: "Enabled",
	2: "Disabled By User",
	3: "Disabled By BIOS",
	4: "Idle",
	7: "Other",
}

// String implements fmt.Stringer.
func (s CPUStatus) String() string {
	return enumName(s, cpuStatusNames)
}

// Populated returns true if the socket is populated.
func (s ProcessorStatus) Populated() bool {
	return s&0x40 != 0
}

// CPUStatus returns the state of the processor.
func (s ProcessorStatus) CPUStatus() CPUStatus {
	return CPUStatus(s & 0x07)
}

// Unknown returns the reserved bits.
func (s ProcessorStatus) Unknown() uint8 {
	return uint8(s) &^ 0x47
}

// ProcessorCharacteristics is the "Processor Characteristics" bit field.
type ProcessorCharacteristics uint16

var processorCharacteristicsNames = []string{
	2: "64-bit capable",
	3: "Multi-Core",
	4: "Hardware Thread",
	5: "Execute Protection",
	6: "Enhanced Virtualization",
	7: "Power/Performance Control",
	8: "128-bit Capable",
	9: "Arm64 SoC ID",
}

// Names returns the names of the set bits.
func (c ProcessorCharacteristics) Names() []string {
	return bitNames(uint64(c), processorCharacteristicsNames)
}

// Unknown returns the set bits which have no name.
func (c ProcessorCharacteristics) Unknown() uint16 {
	return uint16(unknownBits(uint64(c), processorCharacteristicsNames))
}
