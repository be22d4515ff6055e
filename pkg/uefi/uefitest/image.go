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

package uefitest

import (
	"encoding/binary"

	"github.com/linuxboot/fiano/pkg/guid"
	fianoUEFI "github.com/linuxboot/fiano/pkg/uefi"
)

const (
	fvHeaderLen    = fianoUEFI.FirmwareVolumeFixedHeaderSize + 16
	fvAttributes   = 0x0004FEFF
	fvRevision     = 2
	fileHeaderLen  = fianoUEFI.FileHeaderMinLength
	fileStateValid = 0xF8
	sectionLen     = 4 + guid.Size
)

// NewFirmwareVolume returns an image consisting of a single FFS2
// firmware volume. The volume holds one freeform file named fileGUID
// which carries payload in a freeform subtype GUID section.
func NewFirmwareVolume(fileGUID guid.GUID, payload []byte) []byte {
	section := make([]byte, sectionLen, sectionLen+len(payload))
	putSize3(section[0:3], sectionLen+len(payload))
	section[3] = uint8(fianoUEFI.SectionTypeFreeformSubtypeGUID)
	section = append(section, payload...)

	file := make([]byte, fileHeaderLen, fileHeaderLen+len(section))
	copy(file[0x00:0x10], fileGUID[:])
	file[0x12] = uint8(fianoUEFI.FVFileTypeFreeForm)
	putSize3(file[0x14:0x17], fileHeaderLen+len(section))
	// The header checksum excludes the body checksum and the state.
	file[0x10] = -fianoUEFI.Checksum8(file)
	file[0x11] = fianoUEFI.EmptyBodyChecksum
	file[0x17] = fileStateValid
	file = append(file, section...)

	length := fianoUEFI.Align8(uint64(fvHeaderLen + len(file)))
	fv := make([]byte, length)
	copy(fv[0x10:0x20], fianoUEFI.FFS2[:])
	binary.LittleEndian.PutUint64(fv[0x20:], length)
	copy(fv[0x28:0x2C], "_FVH")
	binary.LittleEndian.PutUint32(fv[0x2C:], fvAttributes)
	binary.LittleEndian.PutUint16(fv[0x30:], fvHeaderLen)
	fv[0x37] = fvRevision
	// Block map: one block spanning the volume, then the terminator.
	binary.LittleEndian.PutUint32(fv[0x38:], 1)
	binary.LittleEndian.PutUint32(fv[0x3C:], uint32(length))
	binary.LittleEndian.PutUint16(fv[0x32:], -checksum16(fv[:fvHeaderLen]))

	n := copy(fv[fvHeaderLen:], file)
	for idx := fvHeaderLen + n; idx < len(fv); idx++ {
		fv[idx] = 0xFF
	}
	return fv
}

func putSize3(dst []byte, size int) {
	dst[0] = uint8(size)
	dst[1] = uint8(size >> 8)
	dst[2] = uint8(size >> 16)
}

func checksum16(b []byte) uint16 {
	var sum uint16
	for idx := 0; idx+1 < len(b); idx += 2 {
		sum += binary.LittleEndian.Uint16(b[idx:])
	}
	return sum
}
