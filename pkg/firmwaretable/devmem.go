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
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// DevMem reads the entry point and the table from physical memory
// ("/dev/mem") at the entry point address published by the firmware
// in the EFI system table summary ("/sys/firmware/efi/systab").
//
// It never scans memory for the anchor.
type DevMem struct {
	Config config
}

var _ Provider = (*DevMem)(nil)

// NewDevMem returns a new instance of DevMem.
func NewDevMem(opts ...Option) *DevMem {
	return &DevMem{Config: getConfig(opts...)}
}

// EntryPointAddress returns the physical address of the entry point
// published in the EFI system table summary. SMBIOS3 is preferred over
// the legacy entry point.
func (p *DevMem) EntryPointAddress() (uint64, error) {
	systab, err := readFile(p.Config.EFISystabPath)
	if err != nil {
		return 0, err
	}
	return parseSystab(systab)
}

func parseSystab(systab []byte) (uint64, error) {
	addrs := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(systab))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		addrs[key] = value
	}
	for _, key := range []string{"SMBIOS3", "SMBIOS"} {
		value, ok := addrs[key]
		if !ok {
			continue
		}
		addr, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(value), "0x"), 16, 64)
		if err != nil {
			return 0, ErrNotFound{Source: "systab", Err: fmt.Errorf("unable to parse address '%s' of %s: %w", value, key, err)}
		}
		return addr, nil
	}
	return 0, ErrNotFound{Source: "systab", Err: fmt.Errorf("no SMBIOS entry point address")}
}

// checkIOMem verifies the range is known to the kernel. It is a sanity
// check only: an unreadable iomem does not prevent reading.
func (p *DevMem) checkIOMem(ctx context.Context, addr, length uint64) error {
	iomemBytes, err := os.ReadFile(p.Config.IOMemPath)
	if err != nil {
		logger.FromCtx(ctx).Debugf("unable to read '%s', skipping the range check: %v", p.Config.IOMemPath, err)
		return nil
	}
	iomem, err := ParseIOMem(iomemBytes)
	if err != nil {
		logger.FromCtx(ctx).Warnf("unable to parse '%s', skipping the range check: %v", p.Config.IOMemPath, err)
		return nil
	}
	entry := iomem.Find(addr, length)
	if entry == nil {
		return ErrNotFound{
			Source: p.Config.DevMemPath,
			Err:    fmt.Errorf("range 0x%X-0x%X is not described in '%s'", addr, addr+length, p.Config.IOMemPath),
		}
	}
	logger.FromCtx(ctx).Debugf("range 0x%X-0x%X is in '%s'", addr, addr+length, entry.Description)
	return nil
}

func (p *DevMem) read(f io.ReaderAt, addr uint64, length int) ([]byte, error) {
	b := make([]byte, length)
	n, err := f.ReadAt(b, int64(addr))
	if n != length {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, classifyError(p.Config.DevMemPath, fmt.Errorf("unable to read %d bytes at 0x%X: %w", length, addr, err))
	}
	return b, nil
}

// AcquireTable implements Provider.
func (p *DevMem) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	epAddr, err := p.EntryPointAddress()
	if err != nil {
		return nil, nil, err
	}
	if err := p.checkIOMem(ctx, epAddr, smbios.EntryPointSMBIOS3Size); err != nil {
		return nil, nil, err
	}

	devMem, err := os.OpenFile(p.Config.DevMemPath, os.O_RDONLY, 0000)
	if err != nil {
		return nil, nil, classifyError(p.Config.DevMemPath, err)
	}
	defer devMem.Close()

	entryPoint, err := p.read(devMem, epAddr, smbios.EntryPointSMBIOS2Size)
	if err != nil {
		return nil, nil, err
	}
	ep, err := smbios.ParseEntryPoint(entryPoint)
	if err != nil {
		return nil, nil, ErrNotFound{Source: p.Config.DevMemPath, Err: fmt.Errorf("at 0x%X: %w", epAddr, err)}
	}
	if ep.IsSMBIOS3() {
		entryPoint = entryPoint[:ep.Length]
	}

	tableLength := ep.TableLength
	if ep.IsSMBIOS3() && tableLength > p.Config.MaxTableSize {
		logger.FromCtx(ctx).Debugf("limiting the table size 0x%X to 0x%X", tableLength, p.Config.MaxTableSize)
		tableLength = p.Config.MaxTableSize
	}
	if err := p.checkIOMem(ctx, ep.TableAddress, uint64(tableLength)); err != nil {
		return nil, nil, err
	}
	table, err := p.read(devMem, ep.TableAddress, int(tableLength))
	if err != nil {
		return nil, nil, err
	}
	logger.FromCtx(ctx).Debugf("read the SMBIOS table from '%s' at 0x%X", p.Config.DevMemPath, ep.TableAddress)
	return entryPoint, table, nil
}
