package dmistring

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/commands"
	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

func run(t *testing.T, b *smbiostest.TableBuilder, args ...string) (string, error) {
	provider := firmwaretable.ProviderFunc(func(ctx context.Context) ([]byte, []byte, error) {
		return b.EntryPoint3(3, 2), b.Bytes(), nil
	})

	var out bytes.Buffer
	err := (&Command{}).Execute(context.Background(), commands.Config{
		Provider: provider,
		Stdout:   &out,
	}, args)
	return out.String(), err
}

func TestString(t *testing.T) {
	b := smbiostest.SampleTable()

	t.Run("keyword", func(t *testing.T) {
		out, err := run(t, b, "system-serial-number")
		require.NoError(t, err)
		require.Equal(t, "SN-123456\n", out)

		out, err = run(t, b, "system-uuid")
		require.NoError(t, err)
		require.Equal(t, smbiostest.SampleSystemUUID+"\n", out)
	})

	t.Run("all", func(t *testing.T) {
		out, err := run(t, b)
		require.NoError(t, err)
		require.Contains(t, out, "bios-version: F.42\n")
		require.Contains(t, out, "baseboard-manufacturer: Acme\n")
		require.Contains(t, out, "system-uuid: "+smbiostest.SampleSystemUUID+"\n")
	})

	t.Run("unknown_keyword", func(t *testing.T) {
		_, err := run(t, b, "system-serial")
		require.True(t, errors.As(err, &commands.ErrArgs{}), err)
	})

	t.Run("too_many_args", func(t *testing.T) {
		_, err := run(t, b, "bios-vendor", "bios-version")
		require.True(t, errors.As(err, &commands.ErrArgs{}), err)
	})

	t.Run("missing_structure", func(t *testing.T) {
		onlyBIOS := smbiostest.NewTableBuilder().
			Add(0, 0x0000, smbiostest.NewFormatted(0x12).U8(0x04, 1), "Vendor").
			EndOfTable(0x0001)

		_, err := run(t, onlyBIOS, "system-manufacturer")
		var errExitCode commands.ErrExitCode
		require.True(t, errors.As(err, &errExitCode), err)
		require.Equal(t, commands.ExitCodeNotFound, errExitCode.Code)

		out, err := run(t, onlyBIOS, "bios-vendor")
		require.NoError(t, err)
		require.Equal(t, "Vendor\n", out)
	})
}
