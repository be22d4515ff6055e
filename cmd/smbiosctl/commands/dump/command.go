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

package dump

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/experimental/tracer"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/spf13/pflag"

	"github.com/immune-gmbh/hwinventory/pkg/commands"
	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

type Command struct {
	compress *bool
	force    *bool
}

func (cmd Command) Usage() string {
	return "<output-dir>"
}

func (cmd Command) Description() string {
	return "save the entry point and the structure table in the sysfs layout"
}

func (cmd *Command) SetupFlagSet(flag *pflag.FlagSet) {
	cmd.compress = flag.Bool("xz", false, "compress the files with xz")
	cmd.force = flag.Bool("force", false, "save the table even if it cannot be decoded")
}

// Execute saves the table.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	if len(args) < 1 {
		return commands.ErrArgs{Err: fmt.Errorf("no output directory was specified")}
	}
	if len(args) > 1 {
		return commands.ErrArgs{Err: fmt.Errorf("too many parameters")}
	}
	outputDir := args[0]

	entryPoint, table, err := cfg.Provider.AcquireTable(ctx)
	if err != nil {
		return commands.WithExitCode(fmt.Errorf("unable to acquire the table: %w", err))
	}

	store, err := smbios.Scan(ctx, entryPoint, table)
	switch {
	case err == nil:
		logger.FromCtx(ctx).Debugf("the table contains %d structures", store.Len())
	case *cmd.force:
		logger.FromCtx(ctx).Warnf("the table cannot be decoded: %v", err)
	default:
		return commands.WithExitCode(fmt.Errorf("the acquired table is invalid (use --force to save it anyway): %w", err))
	}

	span, _ := tracer.StartChildSpanFromCtx(ctx, "writeDump")
	defer span.Finish()
	if err := firmwaretable.WriteDump(outputDir, entryPoint, table, *cmd.compress); err != nil {
		return fmt.Errorf("unable to save the table: %w", err)
	}

	_, err = fmt.Fprintf(cfg.Output(), "saved %d + %d bytes to %s\n", len(entryPoint), len(table), outputDir)
	return err
}
