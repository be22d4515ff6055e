package info

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/commands"
	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/inventory"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

func run(t *testing.T, provider firmwaretable.Provider, flags []string, args ...string) (string, error) {
	var cmd Command
	flagSet := pflag.NewFlagSet("info", pflag.ContinueOnError)
	cmd.SetupFlagSet(flagSet)
	require.NoError(t, flagSet.Parse(flags))

	var out bytes.Buffer
	err := cmd.Execute(context.Background(), commands.Config{
		Provider:         provider,
		CollectorOptions: []inventory.Option{inventory.OptionTTL(0)},
		Stdout:           &out,
	}, args)
	return out.String(), err
}

func sampleProvider() firmwaretable.Provider {
	b := smbiostest.SampleTable()
	return firmwaretable.ProviderFunc(func(ctx context.Context) ([]byte, []byte, error) {
		return b.EntryPoint3(3, 2), b.Bytes(), nil
	})
}

func TestInfo(t *testing.T) {
	provider := sampleProvider()

	t.Run("json", func(t *testing.T) {
		out, err := run(t, provider, []string{"--format=json"}, "system")
		require.NoError(t, err)

		var system inventory.SystemInfo
		require.NoError(t, json.Unmarshal([]byte(out), &system))
		require.Equal(t, "SN-123456", system.SerialNumber)
		require.Equal(t, "X100", system.ProductName)
	})

	t.Run("env", func(t *testing.T) {
		out, err := run(t, provider, []string{"--format=env"}, "bios")
		require.NoError(t, err)
		require.Contains(t, out, "BIOS_VENDOR=\"American Megatrends Inc.\"\n")
		require.Contains(t, out, "BIOS_VERSION=\"F.42\"\n")
	})

	t.Run("text", func(t *testing.T) {
		out, err := run(t, provider, []string{"--no-color"})
		require.NoError(t, err)
		require.Regexp(t, `(?m)^bios\.version:\s+F\.42$`, out)
		require.Regexp(t, `(?m)^system\.serialNumber:\s+SN-123456$`, out)
	})

	t.Run("query", func(t *testing.T) {
		out, err := run(t, provider, []string{"--query=system.productName"})
		require.NoError(t, err)
		require.Equal(t, "X100\n", out)

		_, err = run(t, provider, []string{"--query=system.nothing"})
		var exitCoder commands.ExitCoder
		require.True(t, errors.As(err, &exitCoder))
		require.Equal(t, 1, exitCoder.ExitCode())
	})

	t.Run("invalid_args", func(t *testing.T) {
		_, err := run(t, provider, nil, "gpu")
		require.True(t, errors.As(err, &commands.ErrArgs{}))

		_, err = run(t, provider, nil, "bios", "system")
		require.True(t, errors.As(err, &commands.ErrArgs{}))

		_, err = run(t, provider, []string{"--format=yaml"})
		require.True(t, errors.As(err, &commands.ErrArgs{}))
	})

	t.Run("provider_error", func(t *testing.T) {
		_, err := run(t, firmwaretable.ProviderFunc(func(ctx context.Context) ([]byte, []byte, error) {
			return nil, nil, firmwaretable.ErrNotFound{Source: "unit-test"}
		}), nil)
		var exitCoder commands.ExitCoder
		require.True(t, errors.As(err, &exitCoder))
		require.Equal(t, commands.ExitCodeNotFound, exitCoder.ExitCode())
	})
}
