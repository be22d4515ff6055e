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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/ulikunitz/xz"
)

const (
	// DumpEntryPointFileName is the name of the entry point file in a dump
	// directory (the same as in sysfs).
	DumpEntryPointFileName = "smbios_entry_point"

	// DumpTableFileName is the name of the table file in a dump directory.
	DumpTableFileName = "DMI"

	// CompressedSuffix is the suffix of xz-compressed files.
	CompressedSuffix = ".xz"
)

// Files reads a previously saved table. Files with suffix ".xz" are
// decompressed. If EntryPointPath is empty or the file does not exist,
// an SMBIOS 3 entry point is synthesized.
type Files struct {
	EntryPointPath string
	TablePath      string
	Config         config
}

var _ Provider = (*Files)(nil)

// NewFiles returns a provider reading the given files.
func NewFiles(entryPointPath, tablePath string, opts ...Option) *Files {
	return &Files{
		EntryPointPath: entryPointPath,
		TablePath:      tablePath,
		Config:         getConfig(opts...),
	}
}

// NewDumpDir returns a provider reading a dump directory in the sysfs
// layout (see DumpEntryPointFileName and DumpTableFileName).
func NewDumpDir(dir string, opts ...Option) *Files {
	return NewFiles(
		findDumpFile(dir, DumpEntryPointFileName),
		findDumpFile(dir, DumpTableFileName),
		opts...,
	)
}

func findDumpFile(dir, name string) string {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if _, xzErr := os.Stat(path + CompressedSuffix); xzErr == nil {
			return path + CompressedSuffix
		}
	}
	return path
}

// AcquireTable implements Provider.
func (p *Files) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	table, err := readMaybeCompressedFile(p.TablePath)
	if err != nil {
		return nil, nil, err
	}

	var entryPoint []byte
	if p.EntryPointPath != "" {
		entryPoint, err = readMaybeCompressedFile(p.EntryPointPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
	}
	if entryPoint == nil {
		logger.FromCtx(ctx).Debugf("no entry point for '%s', synthesizing SMBIOS %s one", p.TablePath, p.Config.Version)
		entryPoint, err = synthesizeEntryPoint(p.Config.Version, table)
		if err != nil {
			return nil, nil, err
		}
	}
	return entryPoint, table, nil
}

func readMaybeCompressedFile(path string) ([]byte, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, CompressedSuffix) {
		return b, nil
	}
	r, err := xz.ReaderConfig{SingleStream: true}.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, ErrNotFound{Source: path, Err: fmt.Errorf("unable to initialize an xz reader: %w", err)}
	}
	b, err = io.ReadAll(r)
	if err != nil {
		return nil, ErrNotFound{Source: path, Err: fmt.Errorf("unable to decompress: %w", err)}
	}
	return b, nil
}

// WriteDump saves the entry point and the table to `dir` in the layout
// expected by NewDumpDir.
func WriteDump(dir string, entryPoint, table []byte, compress bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create directory '%s': %w", dir, err)
	}
	for name, data := range map[string][]byte{
		DumpEntryPointFileName: entryPoint,
		DumpTableFileName:      table,
	} {
		path := filepath.Join(dir, name)
		if compress {
			path += CompressedSuffix
			var err error
			data, err = compressXZ(data)
			if err != nil {
				return fmt.Errorf("unable to compress '%s': %w", name, err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("unable to write '%s': %w", path, err)
		}
	}
	return nil
}

func compressXZ(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
