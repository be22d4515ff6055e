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

// StructureType is the type code of an SMBIOS structure.
type StructureType uint8

// The structure types this package knows by name. Only some of them
// have a typed decoder, the rest are decoded into OpaqueRecord.
const (
	StructureTypeBIOS                       = StructureType(0)
	StructureTypeSystem                     = StructureType(1)
	StructureTypeBaseBoard                  = StructureType(2)
	StructureTypeChassis                    = StructureType(3)
	StructureTypeProcessor                  = StructureType(4)
	StructureTypeMemoryController           = StructureType(5)
	StructureTypeMemoryModule               = StructureType(6)
	StructureTypeCache                      = StructureType(7)
	StructureTypePortConnector              = StructureType(8)
	StructureTypeSystemSlots                = StructureType(9)
	StructureTypeOnBoardDevices             = StructureType(10)
	StructureTypeOEMStrings                 = StructureType(11)
	StructureTypeSystemConfigurationOptions = StructureType(12)
	StructureTypeBIOSLanguage               = StructureType(13)
	StructureTypeGroupAssociations          = StructureType(14)
	StructureTypeSystemEventLog             = StructureType(15)
	StructureTypePhysicalMemoryArray        = StructureType(16)
	StructureTypeMemoryDevice               = StructureType(17)
	StructureTypeMemoryArrayMappedAddress   = StructureType(19)
	StructureTypeSystemBoot                 = StructureType(32)
	StructureTypeIPMIDevice                 = StructureType(38)
	StructureTypeSystemPowerSupply          = StructureType(39)
	StructureTypeInactive                   = StructureType(126)
	StructureTypeEndOfTable                 = StructureType(127)
)

var structureTypeNames = map[StructureType]string{
	0:   "BIOS Information",
	1:   "System Information",
	2:   "Base Board Information",
	3:   "Chassis Information",
	4:   "Processor Information",
	5:   "Memory Controller Information",
	6:   "Memory Module Information",
	7:   "Cache Information",
	8:   "Port Connector Information",
	9:   "System Slots",
	10:  "On Board Devices Information",
	11:  "OEM Strings",
	12:  "System Configuration Options",
	13:  "BIOS Language Information",
	14:  "Group Associations",
	15:  "System Event Log",
	16:  "Physical Memory Array",
	17:  "Memory Device",
	18:  "32-bit Memory Error Information",
	19:  "Memory Array Mapped Address",
	20:  "Memory Device Mapped Address",
	21:  "Built-in Pointing Device",
	22:  "Portable Battery",
	23:  "System Reset",
	24:  "Hardware Security",
	25:  "System Power Controls",
	26:  "Voltage Probe",
	27:  "Cooling Device",
	28:  "Temperature Probe",
	29:  "Electrical Current Probe",
	30:  "Out-of-band Remote Access",
	31:  "Boot Integrity Services Entry Point",
	32:  "System Boot Information",
	33:  "64-bit Memory Error Information",
	34:  "Management Device",
	35:  "Management Device Component",
	36:  "Management Device Threshold Data",
	37:  "Memory Channel",
	38:  "IPMI Device Information",
	39:  "System Power Supply",
	40:  "Additional Information",
	41:  "Onboard Devices Extended Information",
	42:  "Management Controller Host Interface",
	43:  "TPM Device",
	44:  "Processor Additional Information",
	45:  "Firmware Inventory Information",
	46:  "String Property",
	126: "Inactive",
	127: "End Of Table",
}

// String implements fmt.Stringer.
func (t StructureType) String() string {
	if name, ok := structureTypeNames[t]; ok {
		return name
	}
	if t >= 128 {
		return fmt.Sprintf("OEM-specific Type %d", uint8(t))
	}
	return fmt.Sprintf("Unknown Type %d", uint8(t))
}
