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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"sort"

	"github.com/facebookincubator/go-belt/beltctx"
	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	"github.com/facebookincubator/go-belt/tool/experimental/tracer"
	"github.com/facebookincubator/go-belt/tool/logger"
	fianoLog "github.com/linuxboot/fiano/pkg/log"
	"github.com/spf13/pflag"

	"github.com/immune-gmbh/hwinventory/cmd/smbiosctl/commands/dmistring"
	"github.com/immune-gmbh/hwinventory/cmd/smbiosctl/commands/dump"
	"github.com/immune-gmbh/hwinventory/cmd/smbiosctl/commands/fingerprint"
	"github.com/immune-gmbh/hwinventory/cmd/smbiosctl/commands/info"
	"github.com/immune-gmbh/hwinventory/cmd/smbiosctl/commands/records"
	"github.com/immune-gmbh/hwinventory/cmd/smbiosctl/helpers"
	"github.com/immune-gmbh/hwinventory/pkg/commands"
	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/inventory"
	"github.com/immune-gmbh/hwinventory/pkg/observability"
)

var (
	knownCommands = map[string]commands.Command{
		"dump":        &dump.Command{},
		"fingerprint": &fingerprint.Command{},
		"info":        &info.Command{},
		"records":     &records.Command{},
		"string":      &dmistring.Command{},
	}
	exitCode = 0
)

func usage(flagSet *pflag.FlagSet) {
	flagSet.Usage()
	exitCode = 2 // the standard Go's exit-code on invalid flags
}

type flags struct {
	isQuiet       *bool
	loggingLevel  logger.Level
	tracePrefix   *string
	netPprofAddr  *string
	source        *string
	dumpDir       *string
	imagePath     *string
	smbiosVersion *string
	maxTableSize  *uint32
}

// fiano will log warning output when trying to decompress non-compressed data,
// but then continue to process it correctly as uncompressed. Lower the errors
// logged to debug messages in our standard log, except if they are fatal.
type quietLogger struct {
	log logger.Logger
}

func (l quietLogger) Errorf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l quietLogger) Fatalf(format string, args ...any) {
	l.log.Fatalf(format, args...)
}

func (l quietLogger) Warnf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func setupFlag() (*pflag.FlagSet, *flags) {
	var f flags

	flagSet := pflag.NewFlagSet("smbiosctl", pflag.ExitOnError)
	flagSet.SetInterspersed(false)
	flagSet.Usage = func() {
		out := os.Stderr
		_, _ = fmt.Fprintf(out, "syntax: smbiosctl [options] <command> [command options] {arguments}\n")
		_, _ = fmt.Fprintf(out, "\nPossible commands:\n")

		var commandList []string
		for commandName := range knownCommands {
			commandList = append(commandList, commandName)
		}
		sort.Strings(commandList)

		for _, commandName := range commandList {
			command := knownCommands[commandName]
			_, _ = fmt.Fprintf(out, "    smbiosctl %-60s %s\n",
				fmt.Sprintf("%s %s", commandName, command.Usage()), command.Description())
		}
		_, _ = fmt.Fprintf(out, "\nOptions:\n")
		flagSet.PrintDefaults()
	}

	f.loggingLevel = logger.LevelWarning // the default value
	flagSet.Var(&f.loggingLevel, "log-level", "logging level")
	f.isQuiet = flagSet.Bool("quiet", false, "suppress stdout")
	f.tracePrefix = flagSet.String("trace-prefix", "", "prepend traceID with this value; it is useful to understand which automation was responsible for this run")
	f.netPprofAddr = flagSet.String("net-pprof-addr", "", "if non-empty then listens with net/http/pprof")
	f.source = flagSet.String("source", string(helpers.SourceAuto), "the way to get the table of this machine, possible values: auto, sysfs, devmem")
	f.dumpDir = flagSet.String("from-dump", "", "read the table from a directory saved by command 'dump' (or copied from /sys/firmware/dmi/tables)")
	f.imagePath = flagSet.String("from-image", "", "read the table from the SMBIOS static data of a UEFI firmware image")
	f.smbiosVersion = flagSet.String("smbios-version", firmwaretable.DefaultVersion.String(), "the version used for a table which comes without an entry point")
	f.maxTableSize = flagSet.Uint32("max-table-size", firmwaretable.DefaultMaxTableSize, "the amount of bytes to read from /dev/mem if only the maximum table size is known")
	return flagSet, &f
}

func (f *flags) config() (commands.Config, error) {
	version, err := helpers.ParseVersion(*f.smbiosVersion)
	if err != nil {
		return commands.Config{}, commands.ErrArgs{Err: err}
	}

	params := helpers.ProviderParams{
		Source:    helpers.Source(*f.source),
		DumpDir:   *f.dumpDir,
		ImagePath: *f.imagePath,
	}
	provider, err := helpers.NewProvider(params,
		firmwaretable.OptionVersion(version),
		firmwaretable.OptionMaxTableSize(*f.maxTableSize),
	)
	if err != nil {
		return commands.Config{}, commands.ErrArgs{Err: err}
	}

	return commands.Config{
		IsQuiet:  *f.isQuiet,
		Provider: provider,
		CollectorOptions: []inventory.Option{
			inventory.OptionCPUIDFallback(params.IsLocal()),
		},
	}, nil
}

func main() {
	ctx, endFunc := context.WithCancel(context.Background())
	defer func() {
		// os.Exit is called in a defer to have both: a custom exit code and
		// the other defers executed.
		if event := errmon.ObserveRecoverCtx(ctx, recover()); event != nil {
			endFunc()
			beltctx.Flush(ctx)
			panic(event.PanicValue)
		}

		logger.FromCtx(ctx).Debugf("exitcode is %d", exitCode)
		endFunc()
		beltctx.Flush(ctx)
		os.Exit(exitCode)
	}()

	// Parse arguments

	flagSet, flags := setupFlag()
	_ = flagSet.Parse(os.Args[1:])

	if flagSet.NArg() < 1 {
		_, _ = fmt.Fprintf(os.Stderr, "error: no command specified\n\n")
		usage(flagSet)
		return
	}

	// Initialize everything
	ctx = observability.WithBelt(
		ctx,
		flags.loggingLevel,
		*flags.tracePrefix,
		true,
	)

	if *flags.netPprofAddr != "" {
		go func() {
			err := http.ListenAndServe(*flags.netPprofAddr, nil)
			logger.FromCtx(ctx).Errorf("unable to start listening for https/net/pprof: %v", err)
		}()
	}

	commandName := flagSet.Arg(0)
	args := flagSet.Args()[1:]

	span, ctx := tracer.StartChildSpanFromCtx(ctx, commandName)
	defer span.Finish()

	logger.FromCtx(ctx).Debugf("cmd: '%s'; flags: %#+v; args: %v", commandName, flags, args)

	// "fiano" logs directly through its own global logger, this downgrades
	// all but fatal logs to debug.
	fianoLog.DefaultLogger = quietLogger{log: logger.FromCtx(ctx)}

	command := knownCommands[commandName]
	if command == nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: unknown command '%s'\n\n", commandName)
		usage(flagSet)
		return
	}

	cfg, err := flags.config()
	if err == nil {
		commandFlagSet := pflag.NewFlagSet(commandName, pflag.ExitOnError)
		commandFlagSet.Usage = func() {
			_, _ = fmt.Fprintf(os.Stderr, "syntax: smbiosctl %s [options] %s\n\nOptions:\n",
				commandName, command.Usage())
			commandFlagSet.PrintDefaults()
			_, _ = fmt.Fprintf(os.Stderr, "\n")
		}
		flagSet = commandFlagSet

		command.SetupFlagSet(flagSet)
		_ = flagSet.Parse(args)
		err = command.Execute(ctx, cfg, flagSet.Args())
	}

	// Process the error
	if err == nil {
		return
	}

	isSilentError := false
	exitCode = commands.ExitCodeGeneric
	nestedErr := err
setExitCodeLoop:
	for nestedErr != nil {
		switch nestedErr := nestedErr.(type) {
		case commands.ErrArgs:
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", nestedErr)
			usage(flagSet)
			return
		case commands.SilentError:
			isSilentError = true
		case commands.ExitCoder:
			exitCode = nestedErr.ExitCode()
			break setExitCodeLoop
		}
		nestedErr = errors.Unwrap(nestedErr)
	}
	if !isSilentError {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}
