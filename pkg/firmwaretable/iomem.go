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

package firmwaretable

import (
	"bytes"
	"fmt"
	"strconv"
)

// IOMemEntry is one entry of `/proc/iomem`
type IOMemEntry struct {
	Start       uint64
	End         uint64
	Description string
	Children    IOMemEntries
}

// Contains returns true if the inclusive range of the entry covers [addr, addr+length).
func (e *IOMemEntry) Contains(addr, length uint64) bool {
	if length == 0 {
		return addr >= e.Start && addr <= e.End
	}
	last := addr + length - 1
	return last >= addr && addr >= e.Start && last <= e.End
}

// IOMemEntries is the result of ParseIOMem
type IOMemEntries []*IOMemEntry

// Find returns the deepest entry which covers [addr, addr+length).
func (s IOMemEntries) Find(addr, length uint64) *IOMemEntry {
	for _, entry := range s {
		if !entry.Contains(addr, length) {
			continue
		}
		if child := entry.Children.Find(addr, length); child != nil {
			return child
		}
		return entry
	}
	return nil
}

// ParseIOMem parses `/proc/iomem` contents.
func ParseIOMem(iomemBytes []byte) (IOMemEntries, error) {
	entries, _, err := parseIOMem(bytes.Split(iomemBytes, []byte("\n")), nil)
	return entries, err
}

func parseIOMem(iomemLines [][]byte, indent []byte) (IOMemEntries, [][]byte, error) {
	/*
		Example of input data:

		000f0000-000fffff : System ROM
		00100000-7ae0bfff : System RAM
		7ae0c000-7aeb5fff : Reserved
		7aeb6000-7aeb6fff : ACPI Tables
		c0000000-febfffff : PCI Bus 0000:00
		  feb80000-febbffff : 0000:00:02.0

		An entry with a deeper indent is a child of the previous entry.
	*/

	var result IOMemEntries
	var curEntry *IOMemEntry

	nextLevelIndent := append(append([]byte{}, indent...), []byte("  ")...)
	for len(iomemLines) > 0 {
		line := iomemLines[0]
		switch {
		case len(bytes.TrimSpace(line)) == 0:
			iomemLines = iomemLines[1:]
			continue
		case !bytes.HasPrefix(line, indent):
			return result, iomemLines, nil
		case bytes.HasPrefix(line, nextLevelIndent):
			if curEntry == nil {
				return nil, nil, fmt.Errorf("invalid format, extra nesting level")
			}
			var err error
			curEntry.Children, iomemLines, err = parseIOMem(iomemLines, nextLevelIndent)
			if err != nil {
				return nil, nil, err
			}
			continue
		}
		iomemLines = iomemLines[1:]

		leftRight := bytes.SplitN(line, []byte(" : "), 2)
		if len(leftRight) != 2 {
			return nil, nil, fmt.Errorf("invalid format, expected two parts in '%s': %d != 2",
				line, len(leftRight))
		}
		left, right := leftRight[0], leftRight[1]

		rangeBytes := bytes.Split(bytes.TrimSpace(left), []byte("-"))
		if len(rangeBytes) != 2 {
			return nil, nil, fmt.Errorf("invalid format of the left part, expected two parts in '%s': %d != 2",
				left, len(rangeBytes))
		}
		start, err := strconv.ParseUint(string(rangeBytes[0]), 16, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to parse starting offset '%s': %w", rangeBytes[0], err)
		}
		end, err := strconv.ParseUint(string(rangeBytes[1]), 16, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to parse ending offset '%s': %w", rangeBytes[1], err)
		}

		curEntry = &IOMemEntry{
			Start:       start,
			End:         end,
			Description: string(right),
		}
		result = append(result, curEntry)
	}

	return result, nil, nil
}
