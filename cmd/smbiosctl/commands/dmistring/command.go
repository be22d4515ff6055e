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

package dmistring

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/immune-gmbh/hwinventory/pkg/commands"
	"github.com/immune-gmbh/hwinventory/pkg/dmidecode"
)

// Command is the implementation of `commands.Command`.
type Command struct{}

// Usage prints the syntax of arguments for this command
func (cmd Command) Usage() string {
	return "[keyword]"
}

// Description explains what this verb commands to do
func (cmd Command) Description() string {
	return "print a single DMI string the way `dmidecode -s` does, or all of them"
}

// SetupFlagSet is called to allow the command implementation
// to setup which option flags it has.
func (cmd *Command) SetupFlagSet(flag *pflag.FlagSet) {}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	var keyword dmidecode.Keyword
	switch len(args) {
	case 0:
	case 1:
		keyword = dmidecode.Keyword(args[0])
		if !dmidecode.IsKeyword(keyword) {
			return commands.ErrArgs{Err: fmt.Errorf("unknown keyword '%s', valid keywords are: %s",
				keyword, joinKeywords(dmidecode.Keywords()))}
		}
	default:
		return commands.ErrArgs{Err: fmt.Errorf("expected at most one keyword, got %d", len(args))}
	}

	collector, err := cfg.NewCollector()
	if err != nil {
		return fmt.Errorf("unable to initialize the collector: %w", err)
	}
	defer collector.Close()

	store, err := collector.Store(ctx)
	if err != nil {
		return commands.WithExitCode(fmt.Errorf("unable to get the table: %w", err))
	}
	dmiTable, err := dmidecode.DMITableFromRecordStore(store)
	if err != nil {
		return commands.WithExitCode(err)
	}

	out := cfg.Output()
	if keyword != "" {
		value, ok := dmiTable.Value(keyword)
		if !ok {
			return commands.ErrExitCode{
				Code: commands.ExitCodeNotFound,
				Err:  fmt.Errorf("the table has no value for '%s'", keyword),
			}
		}
		_, err := fmt.Fprintln(out, value)
		return err
	}

	for _, keyword := range dmidecode.Keywords() {
		value, ok := dmiTable.Value(keyword)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", keyword, value); err != nil {
			return err
		}
	}
	return nil
}

func joinKeywords(keywords []dmidecode.Keyword) string {
	s := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		s = append(s, string(keyword))
	}
	return strings.Join(s, ", ")
}
