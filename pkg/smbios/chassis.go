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

// Chassis is the decoded System Enclosure or Chassis structure (type 3).
type Chassis struct {
	Structure `json:"-"`

	Manufacturer string
	Type         *ChassisType
	Lock         *bool
	Version      string
	SerialNumber string
	AssetTag     string

	BootUpState      *ChassisState
	PowerSupplyState *ChassisState
	ThermalState     *ChassisState
	SecurityStatus   *ChassisSecurityStatus

	OEMDefined *uint32

	// Height is the height of the enclosure in rack units, 0 means unspecified.
	Height             *uint8
	NumberOfPowerCords *uint8
	ContainedElements  []ChassisElement
	SKUNumber          string
}

// ChassisElement is one entry of the "Contained Elements" list.
type ChassisElement struct {
	// Type is either a base board type (if bit 7 is clear) or
	// a structure type (if bit 7 is set) in bits 6:0.
	Type    uint8
	Minimum uint8
	Maximum uint8
}

func decodeChassis(_ Version, s Structure) Record {
	f := newFields(&s)
	r := &Chassis{
		Structure:          s,
		Manufacturer:       f.str(0x04),
		Version:            f.str(0x06),
		SerialNumber:       f.str(0x07),
		AssetTag:           f.str(0x08),
		OEMDefined:         f.u32(0x0D),
		Height:             f.u8(0x11),
		NumberOfPowerCords: f.u8(0x12),
	}
	if v := f.u8(0x05); v != nil {
		r.Type = ptr(ChassisType(*v & 0x7F))
		r.Lock = ptr(*v&0x80 != 0)
	}
	if v := f.u8(0x09); v != nil {
		r.BootUpState = ptr(ChassisState(*v))
	}
	if v := f.u8(0x0A); v != nil {
		r.PowerSupplyState = ptr(ChassisState(*v))
	}
	if v := f.u8(0x0B); v != nil {
		r.ThermalState = ptr(ChassisState(*v))
	}
	if v := f.u8(0x0C); v != nil {
		r.SecurityStatus = ptr(ChassisSecurityStatus(*v))
	}

	count, recordLength := f.u8(0x13), f.u8(0x14)
	if count == nil || recordLength == nil {
		return r
	}
	n, m := int(*count), int(*recordLength)
	if m >= 3 {
		for idx := 0; idx < n; idx++ {
			e := f.bytes(0x15+idx*m, 3)
			if e == nil {
				break
			}
			r.ContainedElements = append(r.ContainedElements, ChassisElement{
				Type:    e[0],
				Minimum: e[1],
				Maximum: e[2],
			})
		}
	}
	r.SKUNumber = f.str(0x15 + n*m)
	return r
}

// ChassisType is the type of an enclosure.
type ChassisType uint8

var chassisTypeNames = map[ChassisType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Desktop",
	0x04: "Low Profile Desktop",
	0x05: "Pizza Box",
	0x06: "Mini Tower",
	0x07: "Tower",
	0x08: "Portable",
	0x09: "Laptop",
	0x0A: "Notebook",
	0x0B: "Hand Held",
	0x0C: "Docking Station",
	0x0D: "All In One",
	0x0E: "Sub Notebook",
	0x0F: "Space-saving",
	0x10: "Lunch Box",
	0x11: "Main Server Chassis",
	0x12: "Expansion Chassis",
	0x13: "Sub Chassis",
	0x14: "Bus Expansion Chassis",
	0x15: "Peripheral Chassis",
	0x16: "RAID Chassis",
	0x17: "Rack Mount Chassis",
	0x18: "Sealed-case PC",
	0x19: "Multi-system",
	0x1A: "CompactPCI",
	0x1B: "AdvancedTCA",
	0x1C: "Blade",
	0x1D: "Blade Enclosure",
	0x1E: "Tablet",
	0x1F: "Convertible",
	0x20: "Detachable",
	0x21: "IoT Gateway",
	0x22: "Embedded PC",
	0x23: "Mini PC",
	0x24: "Stick PC",
}

// String implements fmt.Stringer.
func (t ChassisType) String() string {
	return enumName(t, chassisTypeNames)
}

// ChassisState is the state of the enclosure (boot-up, power supply or
// thermal) as of the last boot.
type ChassisState uint8

var chassisStateNames = map[ChassisState]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Safe",
	0x04: "Warning",
	0x05: "Critical",
	0x06: "Non-recoverable",
}

// String implements fmt.Stringer.
func (s ChassisState) String() string {
	return enumName(s, chassisStateNames)
}

// ChassisSecurityStatus is the physical security status of the enclosure.
type ChassisSecurityStatus uint8

var chassisSecurityStatusNames = map[ChassisSecurityStatus]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "None",
	0x04: "External Interface Locked Out",
	0x05: "External Interface Enabled",
}

// String implements fmt.Stringer.
func (s ChassisSecurityStatus) String() string {
	return enumName(s, chassisSecurityStatusNames)
}
