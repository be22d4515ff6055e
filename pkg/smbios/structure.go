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

// HeaderSize is the size of the structure header, the smallest possible
// declared length of a structure.
const HeaderSize = 4

// Header is the fixed part every SMBIOS structure starts with.
type Header struct {
	Type   StructureType
	Length uint8
	Handle uint16
}

// Structure is a structure as it is stored in the table: the header,
// the formatted section (the bytes following the header) and the
// resolved string pool.
type Structure struct {
	Header    Header
	Formatted []byte
	Strings   StringPool
}

// Raw returns the structure as it is stored in the table.
func (s *Structure) Raw() *Structure {
	return s
}

func (s *Structure) isRecord() {}

// Bytes returns the on-table encoding of the structure.
func (s *Structure) Bytes() []byte {
	result := make([]byte, 0, HeaderSize+len(s.Formatted)+2)
	result = append(result,
		uint8(s.Header.Type),
		s.Header.Length,
		uint8(s.Header.Handle),
		uint8(s.Header.Handle>>8),
	)
	result = append(result, s.Formatted...)
	result = append(result, s.Strings.encode()...)
	return result
}

// Record is a decoded structure. It is one of *BIOS, *System,
// *BaseBoard, *Chassis, *Processor, *Cache, *PhysicalMemoryArray,
// *MemoryDevice, *EndOfTable or *OpaqueRecord.
//
// Records belong to a RecordStore and must not be modified.
type Record interface {
	Raw() *Structure
	isRecord()
}

// Version is an SMBIOS specification version.
type Version struct {
	Major    uint8
	Minor    uint8
	Revision uint8
}

// AtLeast returns true if the version is not older than major.minor.
func (v Version) AtLeast(major, minor uint8) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// String implements fmt.Stringer.
func (v Version) String() string {
	if v.Revision != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// fields gives length-gated access to the formatted section of a structure.
// Offsets are structure-relative (the header occupies offsets 0x00-0x03);
// a field is present only if the declared length covers it completely.
type fields struct {
	length  int
	cursor  *Cursor
	strings StringPool
}

func newFields(s *Structure) fields {
	return fields{
		length:  int(s.Header.Length),
		cursor:  NewCursor(s.Formatted),
		strings: s.Strings,
	}
}

func (f fields) has(offset, width int) bool {
	return offset >= HeaderSize && f.length >= offset+width && offset-HeaderSize+width <= len(f.cursor.buf)
}

func (f fields) seek(offset, width int) bool {
	if !f.has(offset, width) {
		return false
	}
	return f.cursor.Seek(offset-HeaderSize) == nil
}

func (f fields) u8(offset int) *uint8 {
	if !f.seek(offset, 1) {
		return nil
	}
	v, err := f.cursor.ReadU8()
	if err != nil {
		return nil
	}
	return &v
}

func (f fields) u16(offset int) *uint16 {
	if !f.seek(offset, 2) {
		return nil
	}
	v, err := f.cursor.ReadU16()
	if err != nil {
		return nil
	}
	return &v
}

func (f fields) u32(offset int) *uint32 {
	if !f.seek(offset, 4) {
		return nil
	}
	v, err := f.cursor.ReadU32()
	if err != nil {
		return nil
	}
	return &v
}

func (f fields) u64(offset int) *uint64 {
	if !f.seek(offset, 8) {
		return nil
	}
	v, err := f.cursor.ReadU64()
	if err != nil {
		return nil
	}
	return &v
}

// bytes returns a copy of `n` bytes at `offset`, or nil if absent.
func (f fields) bytes(offset, n int) []byte {
	if !f.seek(offset, n) {
		return nil
	}
	b, err := f.cursor.ReadBytes(n)
	if err != nil {
		return nil
	}
	return append([]byte{}, b...)
}

// str resolves the string referenced by the index byte at `offset`.
// An absent field resolves the same way as index 0.
func (f fields) str(offset int) string {
	idx := f.u8(offset)
	if idx == nil {
		return ""
	}
	return f.strings.Resolve(*idx)
}

func ptr[T any](v T) *T {
	return &v
}
