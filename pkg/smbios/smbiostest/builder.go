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

// Package smbiostest builds synthetic SMBIOS tables and entry points for tests.
package smbiostest

import (
	"bytes"
	"encoding/binary"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// Formatted is a formatted section of a structure being built. Setters use
// structure-relative offsets (the header occupies offsets 0x00-0x03), so the
// offsets match the ones in the SMBIOS specification.
type Formatted struct {
	length int
	data   []byte
}

// NewFormatted returns a formatted section of a structure with
// declared length `length` (header included).
func NewFormatted(length int) *Formatted {
	return &Formatted{length: length, data: make([]byte, length-smbios.HeaderSize)}
}

// U8 sets a byte at `offset`.
func (f *Formatted) U8(offset int, v uint8) *Formatted {
	f.data[offset-smbios.HeaderSize] = v
	return f
}

// U16 sets a little-endian uint16 at `offset`.
func (f *Formatted) U16(offset int, v uint16) *Formatted {
	binary.LittleEndian.PutUint16(f.data[offset-smbios.HeaderSize:], v)
	return f
}

// U32 sets a little-endian uint32 at `offset`.
func (f *Formatted) U32(offset int, v uint32) *Formatted {
	binary.LittleEndian.PutUint32(f.data[offset-smbios.HeaderSize:], v)
	return f
}

// U64 sets a little-endian uint64 at `offset`.
func (f *Formatted) U64(offset int, v uint64) *Formatted {
	binary.LittleEndian.PutUint64(f.data[offset-smbios.HeaderSize:], v)
	return f
}

// Bytes copies `b` to `offset`.
func (f *Formatted) Bytes(offset int, b []byte) *Formatted {
	copy(f.data[offset-smbios.HeaderSize:], b)
	return f
}

// Data returns the formatted section (without the header).
func (f *Formatted) Data() []byte {
	return f.data
}

// TableBuilder accumulates structures into a table.
type TableBuilder struct {
	buf              bytes.Buffer
	count            int
	maxStructureSize int
}

// NewTableBuilder returns an empty TableBuilder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

// Structure appends a structure with declared length 4+len(formatted).
func (b *TableBuilder) Structure(typ uint8, handle uint16, formatted []byte, strings ...string) *TableBuilder {
	return b.Raw(EncodeStructure(typ, uint8(smbios.HeaderSize+len(formatted)), handle, formatted, strings...))
}

// Add appends a structure with a formatted section built by Formatted.
func (b *TableBuilder) Add(typ uint8, handle uint16, f *Formatted, strings ...string) *TableBuilder {
	return b.Raw(EncodeStructure(typ, uint8(f.length), handle, f.data, strings...))
}

// EndOfTable appends the End-Of-Table structure.
func (b *TableBuilder) EndOfTable(handle uint16) *TableBuilder {
	return b.Structure(uint8(smbios.StructureTypeEndOfTable), handle, nil)
}

// Raw appends raw bytes as one structure.
func (b *TableBuilder) Raw(raw []byte) *TableBuilder {
	b.buf.Write(raw)
	b.count++
	if len(raw) > b.maxStructureSize {
		b.maxStructureSize = len(raw)
	}
	return b
}

// Bytes returns the table.
func (b *TableBuilder) Bytes() []byte {
	return append([]byte{}, b.buf.Bytes()...)
}

// Count returns the amount of structures added.
func (b *TableBuilder) Count() int {
	return b.count
}

// EntryPoint3 returns a valid SMBIOS 3 entry point for the table.
func (b *TableBuilder) EntryPoint3(major, minor uint8) []byte {
	ep := smbios.NewEntryPoint3(smbios.Version{Major: major, Minor: minor}, uint32(b.buf.Len()))
	ep.TableAddress = 0x7AEB6000
	raw, err := ep.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return raw
}

// EntryPoint2 returns a valid legacy entry point for the table.
func (b *TableBuilder) EntryPoint2(major, minor uint8) []byte {
	ep := &smbios.EntryPoint{
		Anchor:             smbios.AnchorSMBIOS2,
		Major:              major,
		Minor:              minor,
		MaxStructureSize:   uint16(b.maxStructureSize),
		TableLength:        uint32(b.buf.Len()),
		TableAddress:       0x000E8000,
		NumberOfStructures: uint16(b.count),
		BCDRevision:        major<<4 | minor&0x0F,
	}
	raw, err := ep.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return raw
}

// EncodeStructure encodes a structure with an arbitrary declared length.
func EncodeStructure(typ uint8, length uint8, handle uint16, formatted []byte, strings ...string) []byte {
	var buf bytes.Buffer
	buf.WriteByte(typ)
	buf.WriteByte(length)
	_ = binary.Write(&buf, binary.LittleEndian, handle)
	buf.Write(formatted)
	if len(strings) == 0 {
		buf.Write([]byte{0, 0})
		return buf.Bytes()
	}
	for _, s := range strings {
		buf.WriteString(s)
		buf.WriteByte(0)
	}
	buf.WriteByte(0)
	return buf.Bytes()
}
