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

type decodeFunc func(v Version, s Structure) Record

// decoders maps structure types to typed decoders, all other
// types are decoded into OpaqueRecord.
var decoders = map[StructureType]decodeFunc{
	StructureTypeBIOS:                decodeBIOS,
	StructureTypeSystem:              decodeSystem,
	StructureTypeBaseBoard:           decodeBaseBoard,
	StructureTypeChassis:             decodeChassis,
	StructureTypeProcessor:           decodeProcessor,
	StructureTypeCache:               decodeCache,
	StructureTypePhysicalMemoryArray: decodePhysicalMemoryArray,
	StructureTypeMemoryDevice:        decodeMemoryDevice,
	StructureTypeEndOfTable:          decodeEndOfTable,
}

// HasDecoder returns true if structures of type `t` are decoded
// into a typed record (instead of OpaqueRecord).
func HasDecoder(t StructureType) bool {
	_, ok := decoders[t]
	return ok
}

// DecodeStructure decodes one structure starting at the current position
// of the cursor and leaves the cursor right after its string pool.
//
// The returned error is always ErrMalformedStructure.
func DecodeStructure(c *Cursor, v Version) (Record, error) {
	s, err := readStructure(c)
	if err != nil {
		return nil, err
	}
	decode, ok := decoders[s.Header.Type]
	if !ok {
		return &OpaqueRecord{Structure: *s}, nil
	}
	return decode(v, *s), nil
}

func readStructure(c *Cursor) (*Structure, error) {
	start := c.Offset()
	var hdr Header
	malformed := func(err error) error {
		return ErrMalformedStructure{Offset: start, Type: hdr.Type, Handle: hdr.Handle, Err: err}
	}

	typ, err := c.ReadU8()
	if err != nil {
		return nil, malformed(err)
	}
	hdr.Type = StructureType(typ)
	if hdr.Length, err = c.ReadU8(); err != nil {
		return nil, malformed(err)
	}
	if hdr.Handle, err = c.ReadU16(); err != nil {
		return nil, malformed(err)
	}
	if hdr.Length < HeaderSize {
		return nil, malformed(ErrShortLength{Length: hdr.Length})
	}

	formatted, err := c.ReadBytes(int(hdr.Length) - HeaderSize)
	if err != nil {
		return nil, malformed(err)
	}
	strings, err := readStringPool(c)
	if err != nil {
		return nil, malformed(err)
	}

	return &Structure{
		Header:    hdr,
		Formatted: append([]byte{}, formatted...),
		Strings:   strings,
	}, nil
}
