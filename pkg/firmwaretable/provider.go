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

// Package firmwaretable obtains the raw SMBIOS entry point and structure
// table from the platform or from files.
package firmwaretable

import (
	"context"
	"fmt"
	"os"

	"github.com/facebookincubator/go-belt/tool/logger"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// Provider supplies the raw SMBIOS entry point and structure table.
//
// Errors are ErrNotFound, ErrAccessDenied or ErrPlatformUnsupported
// (possibly wrapped).
type Provider interface {
	AcquireTable(ctx context.Context) (entryPoint []byte, table []byte, err error)
}

// ProviderFunc is a function which implements Provider.
type ProviderFunc func(ctx context.Context) ([]byte, []byte, error)

// AcquireTable implements Provider.
func (fn ProviderFunc) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	return fn(ctx)
}

// Scan acquires the table using the provider and decodes it.
func Scan(ctx context.Context, provider Provider) (*smbios.RecordStore, error) {
	entryPoint, table, err := provider.AcquireTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to acquire the SMBIOS table: %w", err)
	}
	logger.FromCtx(ctx).Debugf("acquired SMBIOS table: entry point %d bytes, table %d bytes", len(entryPoint), len(table))
	return smbios.Scan(ctx, entryPoint, table)
}

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, classifyError(path, err)
	}
	return b, nil
}

// synthesizeEntryPoint builds an SMBIOS 3 entry point for a table
// obtained without one.
func synthesizeEntryPoint(version smbios.Version, table []byte) ([]byte, error) {
	ep, err := smbios.NewEntryPoint3(version, uint32(len(table))).MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("unable to synthesize an entry point: %w", err)
	}
	return ep, nil
}
