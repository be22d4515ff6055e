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

// BIOS is the decoded BIOS Information structure (type 0).
type BIOS struct {
	Structure `json:"-"`

	Vendor                 string
	Version                string
	StartingAddressSegment *uint16
	ReleaseDate            string

	// ROMSize is the size of the BIOS ROM in bytes, taking the extended
	// size field into account.
	ROMSize *uint64

	Characteristics     *BIOSCharacteristics
	CharacteristicsExt1 *BIOSCharacteristicsExt1
	CharacteristicsExt2 *BIOSCharacteristicsExt2

	SystemBIOSMajorRelease *uint8
	SystemBIOSMinorRelease *uint8
	ECFirmwareMajorRelease *uint8
	ECFirmwareMinorRelease *uint8
}

const (
	kib = uint64(1) << 10
	mib = uint64(1) << 20
	gib = uint64(1) << 30
)

func decodeBIOS(_ Version, s Structure) Record {
	f := newFields(&s)
	r := &BIOS{
		Structure:              s,
		Vendor:                 f.str(0x04),
		Version:                f.str(0x05),
		StartingAddressSegment: f.u16(0x06),
		ReleaseDate:            f.str(0x08),
		SystemBIOSMajorRelease: f.u8(0x14),
		SystemBIOSMinorRelease: f.u8(0x15),
		ECFirmwareMajorRelease: f.u8(0x16),
		ECFirmwareMinorRelease: f.u8(0x17),
	}

	if romSize := f.u8(0x09); romSize != nil {
		if *romSize != 0xFF {
			r.ROMSize = ptr(64 * kib * (uint64(*romSize) + 1))
		} else if ext := f.u16(0x18); ext != nil {
			size := uint64(*ext & 0x3FFF)
			switch *ext >> 14 {
			case 0:
				r.ROMSize = ptr(size * mib)
			case 1:
				r.ROMSize = ptr(size * gib)
			}
		}
	}
	if v := f.u64(0x0A); v != nil {
		r.Characteristics = ptr(BIOSCharacteristics(*v))
	}
	if v := f.u8(0x12); v != nil {
		r.CharacteristicsExt1 = ptr(BIOSCharacteristicsExt1(*v))
	}
	if v := f.u8(0x13); v != nil {
		r.CharacteristicsExt2 = ptr(BIOSCharacteristicsExt2(*v))
	}
	return r
}

// BIOSCharacteristics is the "BIOS Characteristics" bit field.
type BIOSCharacteristics uint64

var biosCharacteristicsNames = []string{
	3:  "BIOS characteristics not supported",
	4:  "ISA is supported",
	5:  "MCA is supported",
	6:  "EISA is supported",
	7:  "PCI is supported",
	8:  "PC Card (PCMCIA) is supported",
	9:  "Plug and Play is supported",
	10: "APM is supported",
	11: "BIOS is upgradeable",
	12: "BIOS shadowing is allowed",
	13: "VL-VESA is supported",
	14: "ESCD support is available",
	15: "Boot from CD is supported",
	16: "Selectable boot is supported",
	17: "BIOS ROM is socketed",
	18: "Boot from PC Card (PCMCIA) is supported",
	19: "EDD is supported",
	20: "Japanese floppy for NEC 9800 1.2 MB is supported (int 13h)",
	21: "Japanese floppy for Toshiba 1.2 MB is supported (int 13h)",
	22: "5.25\"/360 kB floppy services are supported (int 13h)",
	23: "5.25\"/1.2 MB floppy services are supported (int 13h)",
	24: "3.5\"/720 kB floppy services are supported (int 13h)",
	25: "3.5\"/2.88 MB floppy services are supported (int 13h)",
	26: "Print screen service is supported (int 5h)",
	27: "8042 keyboard services are supported (int 9h)",
	28: "Serial services are supported (int 14h)",
	29: "Printer services are supported (int 17h)",
	30: "CGA/mono video services are supported (int 10h)",
	31: "NEC PC-98",
}

// Names returns the names of the set known bits.
func (c BIOSCharacteristics) Names() []string {
	return bitNames(uint64(c), biosCharacteristicsNames)
}

// Unknown returns the set bits which have no name (reserved or vendor-specific).
func (c BIOSCharacteristics) Unknown() uint64 {
	return unknownBits(uint64(c), biosCharacteristicsNames)
}

// BIOSCharacteristicsExt1 is the first "BIOS Characteristics Extension" byte.
type BIOSCharacteristicsExt1 uint8

var biosCharacteristicsExt1Names = []string{
	"ACPI is supported",
	"USB legacy is supported",
	"AGP is supported",
	"I2O boot is supported",
	"LS-120 boot is supported",
	"ATAPI Zip drive boot is supported",
	"IEEE 1394 boot is supported",
	"Smart battery is supported",
}

// Names returns the names of the set bits.
func (c BIOSCharacteristicsExt1) Names() []string {
	return bitNames(uint64(c), biosCharacteristicsExt1Names)
}

// Unknown returns the set bits which have no name.
func (c BIOSCharacteristicsExt1) Unknown() uint8 {
	return uint8(unknownBits(uint64(c), biosCharacteristicsExt1Names))
}

// BIOSCharacteristicsExt2 is the second "BIOS Characteristics Extension" byte.
type BIOSCharacteristicsExt2 uint8

// BIOSCharacteristicsExt2UEFI is set if UEFI is supported.
const BIOSCharacteristicsExt2UEFI = BIOSCharacteristicsExt2(1 << 3)

// BIOSCharacteristicsExt2VirtualMachine is set if SMBIOS
// table describes a virtual machine.
const BIOSCharacteristicsExt2VirtualMachine = BIOSCharacteristicsExt2(1 << 4)

var biosCharacteristicsExt2Names = []string{
	"BIOS boot specification is supported",
	"Function key-initiated network boot is supported",
	"Targeted content distribution is supported",
	"UEFI is supported",
	"System is a virtual machine",
	"Manufacturing mode is supported",
	"Manufacturing mode is enabled",
}

// Names returns the names of the set bits.
func (c BIOSCharacteristicsExt2) Names() []string {
	return bitNames(uint64(c), biosCharacteristicsExt2Names)
}

// Unknown returns the set bits which have no name.
func (c BIOSCharacteristicsExt2) Unknown() uint8 {
	return uint8(unknownBits(uint64(c), biosCharacteristicsExt2Names))
}

// bitNames returns names[i] for every set bit i with a non-empty name.
func bitNames(v uint64, names []string) []string {
	var result []string
	for bit, name := range names {
		if name != "" && v&(1<<uint(bit)) != 0 {
			result = append(result, name)
		}
	}
	return result
}

func unknownBits(v uint64, names []string) uint64 {
	for bit, name := range names {
		if name != "" {
			v &^= 1 << uint(bit)
		}
	}
	return v
}
