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

// BaseBoard is the decoded Base Board Information structure (type 2).
type BaseBoard struct {
	Structure `json:"-"`

	Manufacturer      string
	Product           string
	Version           string
	SerialNumber      string
	AssetTag          string
	FeatureFlags      *BaseBoardFeatures
	LocationInChassis string
	ChassisHandle     *uint16
	BoardType         *BoardType

	// ContainedObjectHandles lists the handles of the structures contained
	// by the board. Handles not covered by the declared length are omitted.
	ContainedObjectHandles []uint16
}

func decodeBaseBoard(_ Version, s Structure) Record {
	f := newFields(&s)
	r := &BaseBoard{
		Structure:         s,
		Manufacturer:      f.str(0x04),
		Product:           f.str(0x05),
		Version:           f.str(0x06),
		SerialNumber:      f.str(0x07),
		AssetTag:          f.str(0x08),
		LocationInChassis: f.str(0x0A),
		ChassisHandle:     f.u16(0x0B),
	}
	if v := f.u8(0x09); v != nil {
		r.FeatureFlags = ptr(BaseBoardFeatures(*v))
	}
	if v := f.u8(0x0D); v != nil {
		r.BoardType = ptr(BoardType(*v))
	}
	if count := f.u8(0x0E); count != nil {
		for idx := 0; idx < int(*count); idx++ {
			h := f.u16(0x0F + idx*2)
			if h == nil {
				break
			}
			r.ContainedObjectHandles = append(r.ContainedObjectHandles, *h)
		}
	}
	return r
}

// BaseBoardFeatures is the "Feature Flags" bit field of a base board.
type BaseBoardFeatures uint8

var baseBoardFeaturesNames = []string{
	"Board is a hosting board",
	"Board requires at least one daughter board",
	"Board is removable",
	"Board is replaceable",
	"Board is hot swappable",
}

// Names returns the names of the set bits.
func (f BaseBoardFeatures) Names() []string {
	return bitNames(uint64(f), baseBoardFeaturesNames)
}

// Unknown returns the set bits which have no name.
func (f BaseBoardFeatures) Unknown() uint8 {
	return uint8(unknownBits(uint64(f), baseBoardFeaturesNames))
}

// BoardType is the type of a base board.
type BoardType uint8

var boardTypeNames = map[BoardType]string{
	0x01: "Unknown",
	0x02: "Other",
	0x03: "Server Blade",
	0x04: "Connectivity Switch",
	0x05: "System Management Module",
	0x06: "Processor Module",
	0x07: "I/O Module",
	0x08: "Memory Module",
	0x09: "Daughter Board",
	0x0A: "Motherboard",
	0x0B: "Processor+Memory Module",
	0x0C: "Processor+I/O Module",
	0x0D: "Interconnect Board",
}

// String implements fmt.Stringer.
func (t BoardType) String() string {
	return enumName(t, boardTypeNames)
}
