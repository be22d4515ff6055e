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

package uefi

import (
	"fmt"

	"github.com/linuxboot/fiano/pkg/guid"
	fianoUEFI "github.com/linuxboot/fiano/pkg/uefi"
)

// GUIDSMBIOSStaticData is the GUID of the file which carries the
// SMBIOS table built into the firmware.
var GUIDSMBIOSStaticData = *guid.MustParse(`DAF4BF89-CE71-4917-B522-C89D32FBC59F`)

// freeformHeaderSize is the size of the header prepended to the table
// in the freeform section.
const freeformHeaderSize = 0x14

// SMBIOSStaticData returns the structure table embedded into a firmware
// image. The table is not preceded by an entry point.
func SMBIOSStaticData(fw *UEFI) ([]byte, error) {
	nodes, err := fw.GetByGUID(GUIDSMBIOSStaticData)
	if err != nil {
		return nil, ErrFindSMBIOSStaticData{Err: err}
	}
	for _, node := range nodes {
		file, ok := node.Firmware.(*fianoUEFI.File)
		if !ok {
			return nil, ErrUnexpectedNodeType{Obj: node.Firmware}
		}
		for _, section := range file.Sections {
			data := section.Buf()
			if len(section.Encapsulated) > 0 {
				data = section.Encapsulated[0].Value.Buf()
			}
			if len(data) < freeformHeaderSize {
				continue
			}
			return data[freeformHeaderSize:], nil
		}
	}

	return nil, ErrFindSMBIOSStaticData{Err: fmt.Errorf("no appropriate nodes found")}
}

// SMBIOSStaticDataFromImage parses the image and returns the structure
// table embedded into it.
func SMBIOSStaticDataFromImage(imageBytes []byte) ([]byte, error) {
	fw, err := Parse(imageBytes, true)
	if err != nil {
		return nil, err
	}
	return SMBIOSStaticData(fw)
}
