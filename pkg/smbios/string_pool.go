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

	"golang.org/x/text/encoding/charmap"
)

// StringPool is the set of strings trailing the formatted section of
// a structure. Strings are referenced by 1-based indexes.
type StringPool []string

// Resolve returns the string referenced by `index`.
//
// Index 0 means "not specified" and, as any index beyond the pool,
// resolves to an empty string.
func (p StringPool) Resolve(index uint8) string {
	if index == 0 || int(index) > len(p) {
		return ""
	}
	return p[index-1]
}

var stringPoolTerminator = []byte{0, 0}

// readStringPool reads strings up to the double-NUL terminator and moves
// the cursor right past it. An empty pool is encoded as two NULs.
func readStringPool(c *Cursor) (StringPool, error) {
	end := bytes.Index(c.rest(), stringPoolTerminator)
	if end < 0 {
		return nil, ErrOutOfBounds{Offset: c.Offset(), Want: len(c.rest()) + 1, Remaining: c.Remaining()}
	}
	raw, err := c.ReadBytes(end + len(stringPoolTerminator))
	if err != nil {
		return nil, err
	}
	raw = raw[:end]
	if len(raw) == 0 {
		return StringPool{}, nil
	}

	parts := bytes.Split(raw, []byte{0})
	pool := make(StringPool, 0, len(parts))
	for _, part := range parts {
		pool = append(pool, decodeSingleByteString(part))
	}
	return pool, nil
}

// decodeSingleByteString interprets each byte as one character (ISO-8859-1).
func decodeSingleByteString(b []byte) string {
	isASCII := true
	for _, c := range b {
		if c >= 0x80 {
			isASCII = false
			break
		}
	}
	if isASCII {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// ISO-8859-1 maps every byte, unreachable in practice
		return string(b)
	}
	return string(s)
}

// encode serializes the pool back to its on-table form.
func (p StringPool) encode() []byte {
	if len(p) == 0 {
		return []byte{0, 0}
	}
	var buf bytes.Buffer
	for _, s := range p {
		b, err := charmap.ISO8859_1.NewEncoder().String(s)
		if err != nil {
			b = s
		}
		buf.WriteString(b)
		buf.WriteByte(0)
	}
	buf.WriteByte(0)
	return buf.Bytes()
}
