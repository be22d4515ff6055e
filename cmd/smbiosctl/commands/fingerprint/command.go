package fingerprint

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/immune-gmbh/hwinventory/pkg/commands"
)

// Command is the implementation of `commands.Command`.
type Command struct{}

func (cmd Command) Usage() string {
	return ""
}

func (cmd Command) Description() string {
	return "print the hardware fingerprint (hash of the identifying serials)"
}

func (cmd *Command) SetupFlagSet(flag *pflag.FlagSet) {}

func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("this command does not accept arguments")}
	}

	collector, err := cfg.NewCollector()
	if err != nil {
		return fmt.Errorf("unable to initialize the collector: %w", err)
	}
	defer collector.Close()

	fp, err := collector.Fingerprint(ctx)
	if err != nil {
		return commands.WithExitCode(fmt.Errorf("unable to calculate the fingerprint: %w", err))
	}
	_, err = fmt.Fprintln(cfg.Output(), fp.String())
	return err
}
