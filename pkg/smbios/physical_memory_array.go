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

// PhysicalMemoryArray is the decoded Physical Memory Array structure (type 16).
type PhysicalMemoryArray struct {
	Structure `json:"-"`

	Location        *uint8
	Use             *MemoryArrayUse
	ErrorCorrection *uint8

	// MaximumCapacity is in bytes, resolved through the extended
	// capacity field when needed.
	MaximumCapacity *uint64

	ErrorInformationHandle *uint16
	NumberOfMemoryDevices  *uint16
}

func decodePhysicalMemoryArray(_ Version, s Structure) Record {
	f := newFields(&s)
	r := &PhysicalMemoryArray{
		Structure:              s,
		Location:               f.u8(0x04),
		ErrorCorrection:        f.u8(0x06),
		ErrorInformationHandle: f.u16(0x0B),
		NumberOfMemoryDevices:  f.u16(0x0D),
	}
	if v := f.u8(0x05); v != nil {
		r.Use = ptr(MemoryArrayUse(*v))
	}
	if v := f.u32(0x07); v != nil {
		if *v == 0x80000000 {
			r.MaximumCapacity = f.u64(0x0F)
		} else {
			r.MaximumCapacity = ptr(uint64(*v) * kib)
		}
	}
	return r
}

// MemoryArrayUse is the function a memory array is used for.
type MemoryArrayUse uint8

var memoryArrayUseNames = map[MemoryArrayUse]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "System Memory",
	0x04: "Video Memory",
	0x05: "Flash Memory",
	0x06: "Non-volatile RAM",
	0x07: "Cache Memory",
}

// String implements fmt.Stringer.
func (u MemoryArrayUse) String() string {
	return enumName(u, memoryArrayUseNames)
}
