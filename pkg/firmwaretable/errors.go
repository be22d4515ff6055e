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
	"errors"
	"fmt"
	"io/fs"
)

// ErrNotFound means the source has no SMBIOS table.
type ErrNotFound struct {
	Source string
	Err    error
}

func (err ErrNotFound) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("SMBIOS table not found in %s", err.Source)
	}
	return fmt.Sprintf("SMBIOS table not found in %s: %v", err.Source, err.Err)
}

func (err ErrNotFound) Unwrap() error {
	return err.Err
}

// ErrAccessDenied means the source has the table, but the process
// has no permission to read it.
type ErrAccessDenied struct {
	Source string
	Err    error
}

func (err ErrAccessDenied) Error() string {
	return fmt.Sprintf("access to the SMBIOS table in %s is denied: %v", err.Source, err.Err)
}

func (err ErrAccessDenied) Unwrap() error {
	return err.Err
}

// ErrPlatformUnsupported means the provider cannot work on this platform.
type ErrPlatformUnsupported struct {
	Platform string
}

func (err ErrPlatformUnsupported) Error() string {
	return fmt.Sprintf("acquiring the SMBIOS table is not supported on %s", err.Platform)
}

// classifyError converts an I/O error to one of ErrNotFound or ErrAccessDenied.
func classifyError(source string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return ErrAccessDenied{Source: source, Err: err}
	}
	return ErrNotFound{Source: source, Err: err}
}
