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

// ErrOutOfBounds means a read would go past the end of the buffer.
//
// It never leaves Scan as is: it is always wrapped into ErrMalformedStructure.
type ErrOutOfBounds struct {
	Offset    int
	Want      int
	Remaining int
}

func (err ErrOutOfBounds) Error() string {
	return fmt.Sprintf("out of bounds: requested %d bytes at offset 0x%X, but only %d bytes are left",
		err.Want, err.Offset, err.Remaining)
}

// ErrInvalidEntryPoint means the entry point structure has an unknown
// anchor, an invalid length or a wrong checksum.
type ErrInvalidEntryPoint struct {
	Reason string
}

func (err ErrInvalidEntryPoint) Error() string {
	return fmt.Sprintf("invalid SMBIOS entry point: %s", err.Reason)
}

// ErrMalformedStructure means a structure of the table could not be
// decoded: its declared length is less than the header size or it
// does not fit into the table.
type ErrMalformedStructure struct {
	Offset int
	Type   StructureType
	Handle uint16
	Err    error
}

func (err ErrMalformedStructure) Error() string {
	return fmt.Sprintf("malformed structure (type: %d, handle: 0x%04X) at offset 0x%X: %v",
		uint8(err.Type), err.Handle, err.Offset, err.Err)
}

func (err ErrMalformedStructure) Unwrap() error {
	return err.Err
}

// ErrShortLength means the declared length of a structure is less than
// the size of the structure header.
type ErrShortLength struct {
	Length uint8
}

func (err ErrShortLength) Error() string {
	return fmt.Sprintf("declared length %d is less than the header size %d", err.Length, HeaderSize)
}
