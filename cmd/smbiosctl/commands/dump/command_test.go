package dump

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/commands"
	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

func run(t *testing.T, entryPoint, table []byte, flags []string, args ...string) error {
	var cmd Command
	flagSet := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	cmd.SetupFlagSet(flagSet)
	require.NoError(t, flagSet.Parse(flags))

	return cmd.Execute(context.Background(), commands.Config{
		Provider: firmwaretable.ProviderFunc(func(ctx context.Context) ([]byte, []byte, error) {
			return entryPoint, table, nil
		}),
		Stdout: &bytes.Buffer{},
	}, args)
}

func TestDump(t *testing.T) {
	b := smbiostest.SampleTable()
	entryPoint, table := b.EntryPoint3(3, 2), b.Bytes()

	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "xz"
		}
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "dump")
			var flags []string
			if compress {
				flags = append(flags, "--xz")
			}
			require.NoError(t, run(t, entryPoint, table, flags, dir))

			if compress {
				_, err := os.Stat(filepath.Join(dir, firmwaretable.DumpTableFileName+firmwaretable.CompressedSuffix))
				require.NoError(t, err)
			}

			gotEntryPoint, gotTable, err := firmwaretable.NewDumpDir(dir).AcquireTable(context.Background())
			require.NoError(t, err)
			require.Equal(t, entryPoint, gotEntryPoint)
			require.Equal(t, table, gotTable)
		})
	}

	t.Run("invalid_table", func(t *testing.T) {
		brokenEntryPoint := append([]byte{}, entryPoint...)
		brokenEntryPoint[0x05]++ // checksum

		dir := filepath.Join(t.TempDir(), "dump")
		err := run(t, brokenEntryPoint, table, nil, dir)
		var exitCoder commands.ExitCoder
		require.True(t, errors.As(err, &exitCoder))
		require.Equal(t, commands.ExitCodeInvalidTable, exitCoder.ExitCode())
		_, err = os.Stat(dir)
		require.True(t, os.IsNotExist(err))

		require.NoError(t, run(t, brokenEntryPoint, table, []string{"--force"}, dir))
		_, err = os.Stat(filepath.Join(dir, firmwaretable.DumpEntryPointFileName))
		require.NoError(t, err)
	})

	t.Run("args", func(t *testing.T) {
		err := run(t, entryPoint, table, nil)
		require.True(t, errors.As(err, &commands.ErrArgs{}))

		err = run(t, entryPoint, table, nil, "a", "b")
		require.True(t, errors.As(err, &commands.ErrArgs{}))
	})
}
