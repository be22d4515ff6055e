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
	"encoding/binary"
	"fmt"
)

const (
	// AnchorSMBIOS2 is the anchor string of the legacy (32-bit) entry point.
	AnchorSMBIOS2 = "_SM_"

	// AnchorSMBIOS3 is the anchor string of the SMBIOS 3 (64-bit) entry point.
	AnchorSMBIOS3 = "_SM3_"

	anchorIntermediate = "_DMI_"

	// EntryPointSMBIOS2Size is the length of the legacy entry point.
	EntryPointSMBIOS2Size = 0x1F

	// EntryPointSMBIOS3Size is the length of the SMBIOS 3 entry point.
	EntryPointSMBIOS3Size = 0x18
)

// EntryPoint is the anchor structure describing where the structure
// table is and which SMBIOS version it follows.
type EntryPoint struct {
	Anchor   string
	Checksum uint8
	Length   uint8
	Major    uint8
	Minor    uint8

	// DocRev is the specification revision (SMBIOS 3 only).
	DocRev uint8

	// Revision is the entry point structure revision.
	Revision uint8

	// MaxStructureSize is the size of the largest structure (legacy only).
	MaxStructureSize uint16

	FormattedArea        [5]byte
	IntermediateChecksum uint8

	// TableLength is the exact table length for the legacy entry point
	// and the maximum table size for the SMBIOS 3 one.
	TableLength  uint32
	TableAddress uint64

	// NumberOfStructures is the amount of structures in the table (legacy only).
	NumberOfStructures uint16
	BCDRevision        uint8
}

// IsSMBIOS3 returns true for the 64-bit entry point.
func (ep *EntryPoint) IsSMBIOS3() bool {
	return ep.Anchor == AnchorSMBIOS3
}

// Version returns the SMBIOS version declared by the entry point.
func (ep *EntryPoint) Version() Version {
	v := Version{Major: ep.Major, Minor: ep.Minor}
	if ep.IsSMBIOS3() {
		v.Revision = ep.DocRev
	}
	return v
}

func checksum(b []byte) uint8 {
	var sum uint8
	for _, c := range b {
		sum += c
	}
	return sum
}

// ParseEntryPoint parses and validates an entry point: the anchor,
// the declared length and the checksums.
func ParseEntryPoint(b []byte) (*EntryPoint, error) {
	switch {
	case bytes.HasPrefix(b, []byte(AnchorSMBIOS3)):
		return parseEntryPoint3(b)
	case bytes.HasPrefix(b, []byte(AnchorSMBIOS2)):
		return parseEntryPoint2(b)
	}
	return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("unknown anchor %q", truncate(b, 5))}
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

func parseEntryPoint3(b []byte) (*EntryPoint, error) {
	if len(b) < EntryPointSMBIOS3Size {
		return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("too short: %d < %d", len(b), EntryPointSMBIOS3Size)}
	}
	length := int(b[0x06])
	if length < EntryPointSMBIOS3Size || length > len(b) {
		return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("invalid length 0x%X (buffer size: 0x%X)", length, len(b))}
	}
	if sum := checksum(b[:length]); sum != 0 {
		return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("checksum mismatch: the sum is 0x%02X", sum)}
	}

	return &EntryPoint{
		Anchor:       AnchorSMBIOS3,
		Checksum:     b[0x05],
		Length:       b[0x06],
		Major:        b[0x07],
		Minor:        b[0x08],
		DocRev:       b[0x09],
		Revision:     b[0x0A],
		TableLength:  binary.LittleEndian.Uint32(b[0x0C:]),
		TableAddress: binary.LittleEndian.Uint64(b[0x10:]),
	}, nil
}

func parseEntryPoint2(b []byte) (*EntryPoint, error) {
	if len(b) < EntryPointSMBIOS2Size {
		return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("too short: %d < %d", len(b), EntryPointSMBIOS2Size)}
	}
	length := int(b[0x05])
	if length == 0x1E {
		// SMBIOS 2.1 defined the length as 0x1E by mistake; such firmware
		// still lays out the full structure.
		length = EntryPointSMBIOS2Size
	}
	if length < EntryPointSMBIOS2Size || length > len(b) {
		return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("invalid length 0x%X (buffer size: 0x%X)", length, len(b))}
	}
	if sum := checksum(b[:length]); sum != 0 {
		return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("checksum mismatch: the sum is 0x%02X", sum)}
	}
	if !bytes.Equal(b[0x10:0x15], []byte(anchorIntermediate)) {
		return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("unknown intermediate anchor %q", b[0x10:0x15])}
	}
	if sum := checksum(b[0x10:EntryPointSMBIOS2Size]); sum != 0 {
		return nil, ErrInvalidEntryPoint{Reason: fmt.Sprintf("intermediate checksum mismatch: the sum is 0x%02X", sum)}
	}

	ep := &EntryPoint{
		Anchor:               AnchorSMBIOS2,
		Checksum:             b[0x04],
		Length:               b[0x05],
		Major:                b[0x06],
		Minor:                b[0x07],
		MaxStructureSize:     binary.LittleEndian.Uint16(b[0x08:]),
		Revision:             b[0x0A],
		IntermediateChecksum: b[0x15],
		TableLength:          uint32(binary.LittleEndian.Uint16(b[0x16:])),
		TableAddress:         uint64(binary.LittleEndian.Uint32(b[0x18:])),
		NumberOfStructures:   binary.LittleEndian.Uint16(b[0x1C:]),
		BCDRevision:          b[0x1E],
	}
	copy(ep.FormattedArea[:], b[0x0B:0x10])
	return ep, nil
}

// MarshalBinary returns the on-memory encoding of the entry point
// with the checksums recalculated.
func (ep *EntryPoint) MarshalBinary() ([]byte, error) {
	switch ep.Anchor {
	case AnchorSMBIOS3:
		b := make([]byte, EntryPointSMBIOS3Size)
		copy(b, AnchorSMBIOS3)
		b[0x06] = EntryPointSMBIOS3Size
		b[0x07] = ep.Major
		b[0x08] = ep.Minor
		b[0x09] = ep.DocRev
		b[0x0A] = ep.Revision
		binary.LittleEndian.PutUint32(b[0x0C:], ep.TableLength)
		binary.LittleEndian.PutUint64(b[0x10:], ep.TableAddress)
		b[0x05] = -checksum(b)
		return b, nil
	case AnchorSMBIOS2:
		if ep.TableLength > 0xFFFF {
			return nil, fmt.Errorf("table length 0x%X does not fit into a legacy entry point", ep.TableLength)
		}
		if ep.TableAddress > 0xFFFFFFFF {
			return nil, fmt.Errorf("table address 0x%X does not fit into a legacy entry point", ep.TableAddress)
		}
		b := make([]byte, EntryPointSMBIOS2Size)
		copy(b, AnchorSMBIOS2)
		b[0x05] = EntryPointSMBIOS2Size
		b[0x06] = ep.Major
		b[0x07] = ep.Minor
		binary.LittleEndian.PutUint16(b[0x08:], ep.MaxStructureSize)
		b[0x0A] = ep.Revision
		copy(b[0x0B:0x10], ep.FormattedArea[:])
		copy(b[0x10:], anchorIntermediate)
		binary.LittleEndian.PutUint16(b[0x16:], uint16(ep.TableLength))
		binary.LittleEndian.PutUint32(b[0x18:], uint32(ep.TableAddress))
		binary.LittleEndian.PutUint16(b[0x1C:], ep.NumberOfStructures)
		b[0x1E] = ep.BCDRevision
		b[0x15] = -checksum(b[0x10:])
		b[0x04] = -checksum(b)
		return b, nil
	}
	return nil, fmt.Errorf("unknown anchor %q", ep.Anchor)
}

// NewEntryPoint3 returns an SMBIOS 3 entry point for a table which
// was obtained without one (for example from an OS API which returns
// only the version and the table itself).
func NewEntryPoint3(version Version, tableLength uint32) *EntryPoint {
	return &EntryPoint{
		Anchor:      AnchorSMBIOS3,
		Length:      EntryPointSMBIOS3Size,
		Major:       version.Major,
		Minor:       version.Minor,
		DocRev:      version.Revision,
		Revision:    1,
		TableLength: tableLength,
	}
}
