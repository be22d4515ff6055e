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

package commands

import (
	"io"
	"os"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/inventory"
)

// Config is the configuration shared by all verbs.
type Config struct {
	IsQuiet bool

	// Provider acquires the table to work on.
	Provider firmwaretable.Provider

	// CollectorOptions are used for inventory.NewCollector.
	CollectorOptions []inventory.Option

	// Stdout is where the results are printed (os.Stdout if nil).
	Stdout io.Writer
}

// Output returns the writer for the results, which discards them
// if IsQuiet is set.
func (cfg Config) Output() io.Writer {
	if cfg.IsQuiet {
		return io.Discard
	}
	if cfg.Stdout != nil {
		return cfg.Stdout
	}
	return os.Stdout
}

// NewCollector returns a Collector of the configured provider.
func (cfg Config) NewCollector() (*inventory.Collector, error) {
	return inventory.NewCollector(cfg.Provider, cfg.CollectorOptions...)
}
