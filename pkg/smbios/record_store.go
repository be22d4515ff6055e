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
	"encoding/json"
)

// RecordStore is the result of Scan: decoded records grouped by
// structure type, in the order of the table.
//
// A RecordStore is not modified after Scan returns and is safe
// for concurrent use.
type RecordStore struct {
	entryPoint EntryPoint
	records    []Record
	byType     map[StructureType][]Record
	byHandle   map[uint16]Record
}

func newRecordStore(ep EntryPoint) *RecordStore {
	return &RecordStore{
		entryPoint: ep,
		byType:     map[StructureType][]Record{},
		byHandle:   map[uint16]Record{},
	}
}

func (s *RecordStore) add(r Record) {
	hdr := r.Raw().Header
	s.records = append(s.records, r)
	s.byType[hdr.Type] = append(s.byType[hdr.Type], r)
	if _, ok := s.byHandle[hdr.Handle]; !ok {
		s.byHandle[hdr.Handle] = r
	}
}

// EntryPoint returns the entry point the table was scanned with.
func (s *RecordStore) EntryPoint() EntryPoint {
	return s.entryPoint
}

// Version returns the SMBIOS version declared by the entry point.
func (s *RecordStore) Version() Version {
	return s.entryPoint.Version()
}

// Len returns the amount of records.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// All returns all records in the table order.
func (s *RecordStore) All() []Record {
	return append([]Record{}, s.records...)
}

// Get returns records of type `t` in the table order. The result
// is empty (but not nil) if there are no such records.
func (s *RecordStore) Get(t StructureType) []Record {
	return append([]Record{}, s.byType[t]...)
}

// GetFirst returns the first record of type `t`.
func (s *RecordStore) GetFirst(t StructureType) (Record, bool) {
	records := s.byType[t]
	if len(records) == 0 {
		return nil, false
	}
	return records[0], true
}

// ByHandle returns the record with handle `h`. If the table has
// duplicate handles, the first record wins.
func (s *RecordStore) ByHandle(h uint16) (Record, bool) {
	r, ok := s.byHandle[h]
	return r, ok
}

func recordsOf[T Record](s *RecordStore, t StructureType) []T {
	result := make([]T, 0, len(s.byType[t]))
	for _, r := range s.byType[t] {
		if typed, ok := r.(T); ok {
			result = append(result, typed)
		}
	}
	return result
}

func firstOf[T Record](s *RecordStore, t StructureType) (T, bool) {
	r, ok := s.GetFirst(t)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := r.(T)
	return typed, ok
}

// BIOS returns the first BIOS Information record.
func (s *RecordStore) BIOS() (*BIOS, bool) {
	return firstOf[*BIOS](s, StructureTypeBIOS)
}

// System returns the first System Information record.
func (s *RecordStore) System() (*System, bool) {
	return firstOf[*System](s, StructureTypeSystem)
}

// BaseBoards returns Base Board Information records.
func (s *RecordStore) BaseBoards() []*BaseBoard {
	return recordsOf[*BaseBoard](s, StructureTypeBaseBoard)
}

// Chassis returns System Enclosure records.
func (s *RecordStore) Chassis() []*Chassis {
	return recordsOf[*Chassis](s, StructureTypeChassis)
}

// Processors returns Processor Information records.
func (s *RecordStore) Processors() []*Processor {
	return recordsOf[*Processor](s, StructureTypeProcessor)
}

// Caches returns Cache Information records.
func (s *RecordStore) Caches() []*Cache {
	return recordsOf[*Cache](s, StructureTypeCache)
}

// PhysicalMemoryArrays returns Physical Memory Array records.
func (s *RecordStore) PhysicalMemoryArrays() []*PhysicalMemoryArray {
	return recordsOf[*PhysicalMemoryArray](s, StructureTypePhysicalMemoryArray)
}

// MemoryDevices returns Memory Device records.
func (s *RecordStore) MemoryDevices() []*MemoryDevice {
	return recordsOf[*MemoryDevice](s, StructureTypeMemoryDevice)
}

// Opaque returns records of type `t` which have no typed decoder.
func (s *RecordStore) Opaque(t StructureType) []*OpaqueRecord {
	return recordsOf[*OpaqueRecord](s, t)
}

type jsonRecord struct {
	Type     uint8  `json:"type"`
	TypeName string `json:"typeName"`
	Handle   uint16 `json:"handle"`
	Length   uint8  `json:"length"`
	Record   Record `json:"record"`
}

type jsonRecordStore struct {
	Version    string       `json:"version"`
	Anchor     string       `json:"anchor"`
	Structures []jsonRecord `json:"structures"`
}

// MarshalJSON implements json.Marshaler.
func (s *RecordStore) MarshalJSON() ([]byte, error) {
	out := jsonRecordStore{
		Version:    s.Version().String(),
		Anchor:     s.entryPoint.Anchor,
		Structures: make([]jsonRecord, 0, len(s.records)),
	}
	for _, r := range s.records {
		hdr := r.Raw().Header
		out.Structures = append(out.Structures, jsonRecord{
			Type:     uint8(hdr.Type),
			TypeName: hdr.Type.String(),
			Handle:   hdr.Handle,
			Length:   hdr.Length,
			Record:   r,
		})
	}
	return json.Marshal(out)
}
