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

package records

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"

	"github.com/immune-gmbh/hwinventory/cmd/smbiosctl/helpers"
	"github.com/immune-gmbh/hwinventory/pkg/commands"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// Command is the implementation of `commands.Command`.
type Command struct {
	format *string
}

// Usage prints the syntax of arguments for this command
func (cmd Command) Usage() string {
	return "[type ...]"
}

// Description explains what this verb commands to do
func (cmd Command) Description() string {
	return "display the decoded structures, optionally only of the given types"
}

// SetupFlagSet is called to allow the command implementation
// to setup which option flags it has.
func (cmd *Command) SetupFlagSet(flag *pflag.FlagSet) {
	cmd.format = flag.String("format", "text", "possible values: text, json, dump")
}

// ParseTypes parses structure type codes (decimal or 0x-prefixed).
func ParseTypes(args []string) ([]smbios.StructureType, error) {
	result := make([]smbios.StructureType, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid structure type '%s': %w", arg, err)
		}
		result = append(result, smbios.StructureType(v))
	}
	return result, nil
}

func selectRecords(store *smbios.RecordStore, types []smbios.StructureType) []smbios.Record {
	if len(types) == 0 {
		return store.All()
	}
	var result []smbios.Record
	for _, t := range types {
		result = append(result, store.Get(t)...)
	}
	return result
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	types, err := ParseTypes(args)
	if err != nil {
		return commands.ErrArgs{Err: err}
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

	records := selectRecords(store, types)
	out := cfg.Output()
	switch *cmd.format {
	case "text":
		return printText(out, store, records)
	case "json":
		return printJSON(out, records)
	case "dump":
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		for _, r := range records {
			dumper.Fdump(out, r)
		}
		return nil
	}
	return commands.ErrArgs{Err: fmt.Errorf("unknown format '%s'", *cmd.format)}
}

type jsonRecord struct {
	Type     uint8         `json:"type"`
	TypeName string        `json:"typeName"`
	Handle   uint16        `json:"handle"`
	Record   smbios.Record `json:"record"`
}

func toJSONRecord(r smbios.Record) jsonRecord {
	hdr := r.Raw().Header
	return jsonRecord{
		Type:     uint8(hdr.Type),
		TypeName: hdr.Type.String(),
		Handle:   hdr.Handle,
		Record:   r,
	}
}

func printJSON(out io.Writer, records []smbios.Record) error {
	result := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		result = append(result, toJSONRecord(r))
	}
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize the structures: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", b)
	return err
}

func printText(out io.Writer, store *smbios.RecordStore, records []smbios.Record) error {
	ep := store.EntryPoint()
	_, err := fmt.Fprintf(out, "SMBIOS %s present (%s).\n%d structures, table length %d bytes.\n",
		store.Version(), ep.Anchor, store.Len(), ep.TableLength)
	if err != nil {
		return err
	}
	for _, r := range records {
		s := r.Raw()
		_, err := fmt.Fprintf(out, "\nHandle 0x%04X, DMI type %d, %d bytes\n%s\n",
			s.Header.Handle, uint8(s.Header.Type), s.Header.Length, s.Header.Type)
		if err != nil {
			return err
		}
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("unable to serialize structure 0x%04X: %w", s.Header.Handle, err)
		}
		for _, field := range helpers.Flatten(gjson.ParseBytes(b)) {
			if field.Value.Type == gjson.Null {
				continue
			}
			if _, err := fmt.Fprintf(out, "\t%s: %s\n", field.Key(), field.Value.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
