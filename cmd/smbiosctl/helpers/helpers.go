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

package helpers

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// Source is the method to acquire the table of the local machine.
type Source string

const (
	SourceAuto   = Source("auto")
	SourceSysFS  = Source("sysfs")
	SourceDevMem = Source("devmem")
)

// ParseVersion parses a version in format "MAJOR.MINOR".
func ParseVersion(s string) (smbios.Version, error) {
	majorString, minorString, ok := strings.Cut(s, ".")
	if !ok {
		return smbios.Version{}, fmt.Errorf("version '%s' is not in format MAJOR.MINOR", s)
	}
	major, err := strconv.ParseUint(majorString, 10, 8)
	if err != nil {
		return smbios.Version{}, fmt.Errorf("unable to parse the major version '%s': %w", majorString, err)
	}
	minor, err := strconv.ParseUint(minorString, 10, 8)
	if err != nil {
		return smbios.Version{}, fmt.Errorf("unable to parse the minor version '%s': %w", minorString, err)
	}
	return smbios.Version{Major: uint8(major), Minor: uint8(minor)}, nil
}

// ProviderParams are the values of the options which select where
// the table is acquired from.
type ProviderParams struct {
	Source    Source
	DumpDir   string
	ImagePath string
}

// IsLocal returns true if the table is acquired from the local machine.
func (p ProviderParams) IsLocal() bool {
	return p.DumpDir == "" && p.ImagePath == ""
}

// NewProvider returns the provider selected by the params.
func NewProvider(params ProviderParams, opts ...firmwaretable.Option) (firmwaretable.Provider, error) {
	if params.DumpDir != "" && params.ImagePath != "" {
		return nil, fmt.Errorf("a dump directory and a firmware image cannot be used together")
	}

	switch {
	case params.DumpDir != "":
		return firmwaretable.NewDumpDir(params.DumpDir, opts...), nil
	case params.ImagePath != "":
		image, err := os.ReadFile(params.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("unable to read the firmware image '%s': %w", params.ImagePath, err)
		}
		return firmwaretable.NewFirmwareImage(image, opts...), nil
	}

	switch Source(strings.ToLower(string(params.Source))) {
	case SourceAuto, "":
		return firmwaretable.Local(opts...), nil
	case SourceSysFS:
		return firmwaretable.NewSysFS(opts...), nil
	case SourceDevMem:
		return firmwaretable.NewDevMem(opts...), nil
	}
	return nil, fmt.Errorf("unknown source '%s', possible values: %s, %s, %s",
		params.Source, SourceAuto, SourceSysFS, SourceDevMem)
}
