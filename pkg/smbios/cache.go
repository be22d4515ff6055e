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

// Cache is the decoded Cache Information structure (type 7).
type Cache struct {
	Structure `json:"-"`

	SocketDesignation string
	Configuration     *CacheConfiguration

	// MaximumSize and InstalledSize are in bytes. The 32-bit
	// "Size 2" fields are used when present.
	MaximumSize   *uint64
	InstalledSize *uint64

	SupportedSRAMType *uint16
	CurrentSRAMType   *uint16
	SpeedNs           *uint8
	ErrorCorrection   *uint8
	SystemCacheType   *uint8
	Associativity     *uint8
}

func decodeCache(_ Version, s Structure) Record {
	f := newFields(&s)
	r := &Cache{
		Structure:         s,
		SocketDesignation: f.str(0x04),
		MaximumSize:       cacheSize(f, 0x07, 0x13),
		InstalledSize:     cacheSize(f, 0x09, 0x17),
		SupportedSRAMType: f.u16(0x0B),
		CurrentSRAMType:   f.u16(0x0D),
		SpeedNs:           f.u8(0x0F),
		ErrorCorrection:   f.u8(0x10),
		SystemCacheType:   f.u8(0x11),
		Associativity:     f.u8(0x12),
	}
	if v := f.u16(0x05); v != nil {
		r.Configuration = ptr(CacheConfiguration(*v))
	}
	return r
}

func cacheSize(f fields, offset, offset2 int) *uint64 {
	if v := f.u32(offset2); v != nil {
		granularity := kib
		if *v&(1<<31) != 0 {
			granularity = 64 * kib
		}
		return ptr(uint64(*v&0x7FFFFFFF) * granularity)
	}
	if v := f.u16(offset); v != nil {
		granularity := kib
		if *v&(1<<15) != 0 {
			granularity = 64 * kib
		}
		return ptr(uint64(*v&0x7FFF) * granularity)
	}
	return nil
}

// CacheConfiguration is the "Cache Configuration" field.
type CacheConfiguration uint16

// Level returns the cache level (1 for L1 and so on).
func (c CacheConfiguration) Level() uint8 {
	return uint8(c&0x07) + 1
}

// Socketed returns true if the cache is socketed.
func (c CacheConfiguration) Socketed() bool {
	return c&(1<<3) != 0
}

// Enabled returns true if the cache is enabled at boot time.
func (c CacheConfiguration) Enabled() bool {
	return c&(1<<7) != 0
}

// Location returns the location relative to the CPU module:
// 0 is internal, 1 is external, 3 is unknown.
func (c CacheConfiguration) Location() uint8 {
	return uint8(c>>5) & 0x03
}

// OperationalMode returns 0 for write through, 1 for write back,
// 2 for "varies with memory address" and 3 for unknown.
func (c CacheConfiguration) OperationalMode() uint8 {
	return uint8(c>>8) & 0x03
}
