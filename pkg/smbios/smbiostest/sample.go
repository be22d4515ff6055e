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

package smbiostest

// Handles of the structures in SampleTable.
const (
	SampleHandleBIOS      = 0x0000
	SampleHandleSystem    = 0x0001
	SampleHandleBaseBoard = 0x0002
	SampleHandleChassis   = 0x0003
	SampleHandleProcessor = 0x0004
	SampleHandleL1Cache   = 0x0005
	SampleHandleL2Cache   = 0x0006
	SampleHandleL3Cache   = 0x0007
	SampleHandleArray     = 0x0008
	SampleHandleDIMM0     = 0x0009
	SampleHandleDIMM1     = 0x000A
	SampleHandleOEM       = 0x000B
	SampleHandleOpaque    = 0x000C
	SampleHandleEnd       = 0x000D
)

// SampleSystemUUID is the RFC 4122 form of the system UUID in SampleTable.
const SampleSystemUUID = "00112233-4455-6677-8899-aabbccddeeff"

// SampleTable returns a table of a typical single-socket machine
// with one installed and one empty DIMM slot, an OEM strings
// structure and an OEM-specific structure of type 200.
func SampleTable() *TableBuilder {
	b := NewTableBuilder()

	b.Add(0, SampleHandleBIOS, NewFormatted(0x1A).
		U8(0x04, 1).
		U8(0x05, 2).
		U16(0x06, 0xF000).
		U8(0x08, 3).
		U8(0x09, 0xFF).
		U64(0x0A, 1<<7|1<<11).
		U8(0x12, 0x03).
		U8(0x13, 0x0D).
		U8(0x14, 5).
		U8(0x15, 27).
		U8(0x16, 0xFF).
		U8(0x17, 0xFF).
		U16(0x18, 0x0020),
		"American Megatrends Inc.", "F.42", "03/14/2023")

	b.Add(1, SampleHandleSystem, NewFormatted(0x1B).
		U8(0x04, 1).
		U8(0x05, 2).
		U8(0x06, 3).
		U8(0x07, 4).
		Bytes(0x08, []byte{
			0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66,
			0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
		}).
		U8(0x18, 6).
		U8(0x19, 5).
		U8(0x1A, 6),
		"Acme", "X100", "1.0", "SN-123456", "SKU-42", "Servers")

	b.Add(2, SampleHandleBaseBoard, NewFormatted(0x11).
		U8(0x04, 1).
		U8(0x05, 2).
		U8(0x06, 3).
		U8(0x07, 4).
		U8(0x08, 5).
		U8(0x09, 0x09).
		U8(0x0A, 6).
		U16(0x0B, SampleHandleChassis).
		U8(0x0D, 0x0A).
		U8(0x0E, 1).
		U16(0x0F, SampleHandleProcessor),
		"Acme", "MB-1", "Rev A", "BSN-1", "To Be Filled By O.E.M.", "Slot 0")

	b.Add(3, SampleHandleChassis, NewFormatted(0x16).
		U8(0x04, 1).
		U8(0x05, 0x80|0x17).
		U8(0x07, 2).
		U8(0x08, 3).
		U8(0x09, 3).
		U8(0x0A, 3).
		U8(0x0B, 3).
		U8(0x0C, 3).
		U8(0x11, 2).
		U8(0x12, 2).
		U8(0x13, 0).
		U8(0x14, 3).
		U8(0x15, 4),
		"Acme", "CSN-1", "Default string", "Chassis SKU")

	b.Add(4, SampleHandleProcessor, NewFormatted(0x30).
		U8(0x04, 1).
		U8(0x05, 3).
		U8(0x06, 0xFE).
		U8(0x07, 2).
		U64(0x08, 0xBFEBFBFF000906EA).
		U8(0x10, 3).
		U8(0x11, 0x8A).
		U16(0x12, 100).
		U16(0x14, 4600).
		U16(0x16, 3200).
		U8(0x18, 0x41).
		U8(0x19, 0x01).
		U16(0x1A, SampleHandleL1Cache).
		U16(0x1C, SampleHandleL2Cache).
		U16(0x1E, SampleHandleL3Cache).
		U8(0x23, 6).
		U8(0x24, 6).
		U8(0x25, 12).
		U16(0x26, 0x00FC).
		U16(0x28, 0x00C6).
		U16(0x2A, 6).
		U16(0x2C, 6).
		U16(0x2E, 12),
		"CPU0", "Intel(R) Corporation", "Intel(R) Core(TM) i7-8700 CPU @ 3.20GHz")

	for idx, c := range []struct {
		handle uint16
		name   string
		kib    uint16
	}{
		{SampleHandleL1Cache, "L1 Cache", 384},
		{SampleHandleL2Cache, "L2 Cache", 1536},
		{SampleHandleL3Cache, "L3 Cache", 12288},
	} {
		b.Add(7, c.handle, NewFormatted(0x1B).
			U8(0x04, 1).
			U16(0x05, 0x0180|uint16(idx)).
			U16(0x07, c.kib).
			U16(0x09, c.kib).
			U32(0x13, uint32(c.kib)).
			U32(0x17, uint32(c.kib)),
			c.name)
	}

	b.Add(16, SampleHandleArray, NewFormatted(0x17).
		U8(0x04, 0x03).
		U8(0x05, 0x03).
		U8(0x06, 0x03).
		U32(0x07, 64<<20).
		U16(0x0B, 0xFFFE).
		U16(0x0D, 2))

	b.Add(17, SampleHandleDIMM0, NewFormatted(0x28).
		U16(0x04, SampleHandleArray).
		U16(0x06, 0xFFFE).
		U16(0x08, 64).
		U16(0x0A, 64).
		U16(0x0C, 16384).
		U8(0x0E, 0x09).
		U8(0x10, 1).
		U8(0x11, 2).
		U8(0x12, 0x1A).
		U16(0x13, 0x0080).
		U16(0x15, 2666).
		U8(0x17, 3).
		U8(0x18, 4).
		U8(0x1A, 5).
		U8(0x1B, 0x02).
		U16(0x20, 2666).
		U16(0x22, 1200).
		U16(0x24, 1200).
		U16(0x26, 1200),
		"DIMM_A1", "BANK 0", "Samsung", "S/N 1", "M378A2K43CB1-CTD")

	b.Add(17, SampleHandleDIMM1, NewFormatted(0x28).
		U16(0x04, SampleHandleArray).
		U16(0x06, 0xFFFE).
		U16(0x08, 0xFFFF).
		U16(0x0A, 0xFFFF).
		U8(0x0E, 0x09).
		U8(0x10, 1).
		U8(0x11, 2).
		U8(0x12, 0x02),
		"DIMM_B1", "BANK 1")

	b.Structure(11, SampleHandleOEM, []byte{2}, "vendor:acme", "tag:42")
	b.Structure(200, SampleHandleOpaque, []byte{0xDE, 0xAD, 0x01}, "opaque")
	b.EndOfTable(SampleHandleEnd)
	return b
}
