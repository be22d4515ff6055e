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
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// System is the decoded System Information structure (type 1).
type System struct {
	Structure `json:"-"`

	Manufacturer string
	ProductName  string
	Version      string
	SerialNumber string

	// UUID is nil if the field is absent or if the firmware reports
	// it as "not present" (all zeros) or "not settable" (all ones).
	UUID *uuid.UUID

	// RawUUID is the UUID field as stored in the table.
	RawUUID []byte

	WakeUpType *WakeUpType
	SKUNumber  string
	Family     string
}

// UUIDNotSettable returns true if the firmware reports that the UUID
// is present but not set yet.
func (s *System) UUIDNotSettable() bool {
	return len(s.RawUUID) == 16 && bytes.Equal(s.RawUUID, bytes.Repeat([]byte{0xFF}, 16))
}

func decodeSystem(v Version, s Structure) Record {
	f := newFields(&s)
	r := &System{
		Structure:    s,
		Manufacturer: f.str(0x04),
		ProductName:  f.str(0x05),
		Version:      f.str(0x06),
		SerialNumber: f.str(0x07),
		RawUUID:      f.bytes(0x08, 16),
		SKUNumber:    f.str(0x19),
		Family:       f.str(0x1A),
	}
	if r.RawUUID != nil {
		r.UUID = decodeSystemUUID(v, r.RawUUID)
	}
	if w := f.u8(0x18); w != nil {
		r.WakeUpType = ptr(WakeUpType(*w))
	}
	return r
}

// decodeSystemUUID converts the on-table UUID to the RFC 4122 byte order.
//
// Since SMBIOS 2.6 the first three fields are little-endian. Older
// versions did not define the byte order, and in practice these are
// stored in network byte order.
func decodeSystemUUID(v Version, raw []byte) *uuid.UUID {
	if bytes.Equal(raw, make([]byte, 16)) || bytes.Equal(raw, bytes.Repeat([]byte{0xFF}, 16)) {
		return nil
	}
	b := append([]byte{}, raw...)
	if v.AtLeast(2, 6) {
		b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
		b[4], b[5] = b[5], b[4]
		b[6], b[7] = b[7], b[6]
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return nil
	}
	return &id
}

// WakeUpType is the event which caused the system to power up.
type WakeUpType uint8

var wakeUpTypeNames = map[WakeUpType]string{
	0: "Reserved",
	1: "Other",
	2: "Unknown",
	3: "APM Timer",
	4: "Modem Ring",
	5: "LAN Remote",
	6: "Power Switch",
	7: "PCI PME#",
	8: "AC Power Restored",
}

// String implements fmt.Stringer.
func (t WakeUpType) String() string {
	return enumName(t, wakeUpTypeNames)
}

func enumName[T ~uint8 | ~uint16](v T, names map[T]string) string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("<OUT OF SPEC: 0x%X>", uint64(v))
}
