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
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// SysFS reads the entry point and the table exported by the Linux
// kernel via sysfs (see DefaultSysFSEntryPointPath and DefaultSysFSTablePath).
type SysFS struct {
	Config config
}

var _ Provider = (*SysFS)(nil)

// NewSysFS returns a new instance of SysFS.
func NewSysFS(opts ...Option) *SysFS {
	return &SysFS{Config: getConfig(opts...)}
}

// AcquireTable implements Provider.
func (p *SysFS) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	entryPoint, err := readFile(p.Config.SysFSEntryPointPath)
	if err != nil {
		return nil, nil, err
	}
	table, err := readFile(p.Config.SysFSTablePath)
	if err != nil {
		return nil, nil, err
	}
	logger.FromCtx(ctx).Debugf("read the SMBIOS table from '%s'", p.Config.SysFSTablePath)
	return entryPoint, table, nil
}
