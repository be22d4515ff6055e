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

package info

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/facebookincubator/go-belt/tool/experimental/tracer"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"

	"github.com/immune-gmbh/hwinventory/cmd/smbiosctl/helpers"
	"github.com/immune-gmbh/hwinventory/pkg/commands"
	"github.com/immune-gmbh/hwinventory/pkg/inventory"
)

type category func(ctx context.Context, c *inventory.Collector) (any, error)

func wrap[T any](fn func(*inventory.Collector, context.Context) (T, error)) category {
	return func(ctx context.Context, c *inventory.Collector) (any, error) {
		return fn(c, ctx)
	}
}

var categories = map[string]category{
	"all":       wrap((*inventory.Collector).All),
	"bios":      wrap((*inventory.Collector).BIOS),
	"board":     wrap((*inventory.Collector).Board),
	"chassis":   wrap((*inventory.Collector).Chassis),
	"memory":    wrap((*inventory.Collector).Memory),
	"oem":       wrap((*inventory.Collector).OEMStrings),
	"processor": wrap((*inventory.Collector).Processor),
	"system":    wrap((*inventory.Collector).System),
}

func categoryNames() []string {
	result := make([]string, 0, len(categories))
	for name := range categories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Command is the implementation of `commands.Command`.
type Command struct {
	format  *string
	query   *string
	noColor *bool
}

// Usage prints the syntax of arguments for this command
func (cmd Command) Usage() string {
	return "[" + strings.Join(categoryNames(), "|") + "]"
}

// Description explains what this verb commands to do
func (cmd Command) Description() string {
	return "display the hardware information of the given category (default: all)"
}

// SetupFlagSet is called to allow the command implementation
// to setup which option flags it has.
func (cmd *Command) SetupFlagSet(flag *pflag.FlagSet) {
	cmd.format = flag.String("format", "text", "possible values: text, json, env")
	cmd.query = flag.String("query", "", "a gjson path to select a part of the JSON form, for example: memory.devices.#.size")
	cmd.noColor = flag.Bool("no-color", false, "disable colors in the text format")
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	categoryName := "all"
	switch len(args) {
	case 0:
	case 1:
		categoryName = strings.ToLower(args[0])
	default:
		return commands.ErrArgs{Err: fmt.Errorf("too many arguments")}
	}
	getInfo := categories[categoryName]
	if getInfo == nil {
		return commands.ErrArgs{Err: fmt.Errorf("unknown category '%s'", categoryName)}
	}
	switch *cmd.format {
	case "text", "json", "env":
	default:
		return commands.ErrArgs{Err: fmt.Errorf("unknown format '%s'", *cmd.format)}
	}

	collector, err := cfg.NewCollector()
	if err != nil {
		return fmt.Errorf("unable to initialize the collector: %w", err)
	}
	defer collector.Close()

	info, err := getInfo(ctx, collector)
	if err != nil {
		return commands.WithExitCode(fmt.Errorf("unable to get the information: %w", err))
	}

	span, _ := tracer.StartChildSpanFromCtx(ctx, "render")
	defer span.Finish()

	infoJSON, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("unable to serialize the information: %w", err)
	}

	value := gjson.ParseBytes(infoJSON)
	prefix := []string{categoryName}
	if categoryName == "all" {
		prefix = nil
	}
	if *cmd.query != "" {
		value = value.Get(*cmd.query)
		if !value.Exists() {
			return commands.ErrExitCode{Code: 1, Err: fmt.Errorf("nothing matches query '%s'", *cmd.query)}
		}
		prefix = nil
	}

	return cmd.render(cfg.Output(), value, prefix)
}

func (cmd Command) render(out io.Writer, value gjson.Result, prefix []string) error {
	switch *cmd.format {
	case "json":
		var raw any
		if err := json.Unmarshal([]byte(value.Raw), &raw); err != nil {
			return fmt.Errorf("unable to parse the JSON form: %w", err)
		}
		b, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to serialize the JSON form: %w", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", b)
		return err
	case "env":
		for _, field := range helpers.Flatten(value, prefix...) {
			key := field.EnvKey()
			if key == "" {
				key = "VALUE"
			}
			if _, err := fmt.Fprintf(out, "%s=%q\n", key, field.Value.String()); err != nil {
				return err
			}
		}
		return nil
	}

	keyColor := color.New(color.FgCyan)
	if *cmd.noColor {
		keyColor.DisableColor()
	}
	fields := helpers.Flatten(value, prefix...)
	width := 0
	for _, field := range fields {
		if l := len(field.Key()); l > width {
			width = l
		}
	}
	for _, field := range fields {
		key := field.Key()
		if key == "" {
			_, err := fmt.Fprintf(out, "%s\n", field.Value.String())
			if err != nil {
				return err
			}
			continue
		}
		_, err := fmt.Fprintf(out, "%s %s\n", keyColor.Sprintf("%-*s", width+1, key+":"), field.Value.String())
		if err != nil {
			return err
		}
	}
	return nil
}
