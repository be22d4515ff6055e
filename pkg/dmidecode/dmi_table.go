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

package dmidecode

import (
	"bytes"
	"context"
	"sort"
	"strings"

	gosmbios "github.com/digitalocean/go-smbios/smbios"
	"github.com/xaionaro-facebook/go-dmidecode"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// Keyword is a `dmidecode -s` keyword.
type Keyword = dmidecode.Keyword

// DMITable is a parsed DMI table.
type DMITable struct {
	*dmidecode.DMITable
}

// minLength is the structure length below which Query would read
// past the formatted area.
var minLength = map[Keyword]uint8{
	dmidecode.KeywordSystemUUID:         0x18,
	dmidecode.KeywordProcessorFrequency: 0x18,
}

// DMITableFromRecordStore converts an already scanned table.
func DMITableFromRecordStore(store *smbios.RecordStore) (*DMITable, error) {
	ep := store.EntryPoint()
	raw, err := ep.MarshalBinary()
	if err != nil {
		return nil, ErrDMITable{Err: err}
	}
	entryPoint, err := gosmbios.ParseEntryPoint(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrDMITable{Err: dmidecode.ErrDecode{Err: err}}
	}
	return &DMITable{
		DMITable: &dmidecode.DMITable{
			EntryPoint:    entryPoint,
			SMBIOSStructs: Structures(store),
		},
	}, nil
}

// DMITableFromProvider acquires and scans a table through `provider`
// and converts it.
func DMITableFromProvider(ctx context.Context, provider firmwaretable.Provider) (*DMITable, error) {
	store, err := firmwaretable.Scan(ctx, provider)
	if err != nil {
		return nil, ErrDMITable{Err: err}
	}
	return DMITableFromRecordStore(store)
}

// Value returns the value `dmidecode -s keyword` would print. The
// second value is false for an unknown keyword, when the structure is
// absent or too short, or when the field is unset.
func (t *DMITable) Value(keyword Keyword) (string, bool) {
	kw, ok := dmidecode.Table[keyword]
	if !ok {
		return "", false
	}
	for _, s := range t.SMBIOSStructs {
		if s.Header.Type != kw.Type {
			continue
		}
		if s.Header.Length < minLength[keyword] || len(s.Formatted) < int(s.Header.Length)-4 {
			return "", false
		}
		value := strings.TrimSpace(t.Query(keyword))
		return value, value != ""
	}
	return "", false
}

// IsKeyword returns true if `keyword` is known.
func IsKeyword(keyword Keyword) bool {
	_, ok := dmidecode.Table[keyword]
	return ok
}

// Keywords returns all known keywords in alphabetical order.
func Keywords() []Keyword {
	result := make([]Keyword, 0, len(dmidecode.Table))
	for keyword := range dmidecode.Table {
		result = append(result, keyword)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

// Structures converts the records to the go-smbios representation.
// Typed records are converted from the raw structure they were decoded
// from. Strings are UTF-8, so for ASCII tables the result matches what
// go-smbios decodes from the same bytes.
func Structures(store *smbios.RecordStore) []*gosmbios.Structure {
	records := store.All()
	result := make([]*gosmbios.Structure, 0, len(records))
	for _, r := range records {
		s := r.Raw()
		result = append(result, &gosmbios.Structure{
			Header: gosmbios.Header{
				Type:   uint8(s.Header.Type),
				Length: s.Header.Length,
				Handle: s.Header.Handle,
			},
			Formatted: append([]byte{}, s.Formatted...),
			Strings:   append([]string{}, s.Strings...),
		})
	}
	return result
}
