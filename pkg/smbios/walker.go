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
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// Scan validates the entry point and decodes the structure table.
//
// The walk stops at the End-Of-Table structure or at the end of the
// table (the smaller of the buffer length and the length declared by
// the entry point). On any error no records are returned.
//
// The context is used only to get the logger.
func Scan(ctx context.Context, entryPoint []byte, table []byte) (*RecordStore, error) {
	log := logger.FromCtx(ctx)

	ep, err := ParseEntryPoint(entryPoint)
	if err != nil {
		return nil, err
	}
	version := ep.Version()
	log.Debugf("SMBIOS %s entry point (anchor %q), table length: declared 0x%X, got 0x%X",
		version, ep.Anchor, ep.TableLength, len(table))

	limit := len(table)
	if ep.TableLength > 0 && uint64(ep.TableLength) < uint64(limit) {
		limit = int(ep.TableLength)
	}

	store := newRecordStore(*ep)
	c := NewCursor(table[:limit])
	for c.Remaining() > 0 {
		offset := c.Offset()
		record, err := DecodeStructure(c, version)
		if err != nil {
			log.Debugf("unable to decode the structure at offset 0x%X: %v", offset, err)
			return nil, err
		}
		hdr := record.Raw().Header
		log.Tracef("decoded structure %s (type %d, handle 0x%04X, length 0x%X) at offset 0x%X as %T",
			hdr.Type, uint8(hdr.Type), hdr.Handle, hdr.Length, offset, record)
		store.add(record)

		if hdr.Type == StructureTypeEndOfTable {
			break
		}
	}

	if _, ok := store.GetFirst(StructureTypeEndOfTable); !ok {
		log.Debugf("no End-Of-Table structure, stopped at the end of the table (0x%X)", limit)
	}
	if !ep.IsSMBIOS3() && int(ep.NumberOfStructures) != store.Len() {
		log.Debugf("the entry point declares %d structures, but %d were found",
			ep.NumberOfStructures, store.Len())
	}
	return store, nil
}
