package records

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
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

func run(t *testing.T, flags []string, args ...string) (string, error) {
	b := smbiostest.SampleTable()
	provider := firmwaretable.ProviderFunc(func(ctx context.Context) ([]byte, []byte, error) {
		return b.EntryPoint3(3, 2), b.Bytes(), nil
	})

	var cmd Command
	flagSet := pflag.NewFlagSet("records", pflag.ContinueOnError)
	cmd.SetupFlagSet(flagSet)
	require.NoError(t, flagSet.Parse(flags))

	var out bytes.Buffer
	err := cmd.Execute(context.Background(), commands.Config{
		Provider: provider,
		Stdout:   &out,
	}, args)
	return out.String(), err
}

func TestParseTypes(t *testing.T) {
	types, err := ParseTypes([]string{"1", "0x11", "127"})
	require.NoError(t, err)
	require.Equal(t, []smbios.StructureType{
		smbios.StructureTypeSystem,
		smbios.StructureTypeMemoryDevice,
		smbios.StructureTypeEndOfTable,
	}, types)

	_, err = ParseTypes([]string{"256"})
	require.Error(t, err)
	_, err = ParseTypes([]string{"bios"})
	require.Error(t, err)
}

func TestRecords(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := run(t, nil, "1")
		require.NoError(t, err)
		require.Contains(t, out, "SMBIOS 3.2 present (_SM3_).")
		require.Contains(t, out, "Handle 0x0001, DMI type 1, 27 bytes\nSystem Information\n")
		require.Contains(t, out, "\tSerialNumber: SN-123456\n")
		require.NotContains(t, out, "DMI type 0,")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, []string{"--format=json"}, "17")
		require.NoError(t, err)

		var records []struct {
			Type   uint8          `json:"type"`
			Handle uint16         `json:"handle"`
			Record map[string]any `json:"record"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &records))
		require.Len(t, records, 2)
		require.Equal(t, uint16(smbiostest.SampleHandleDIMM0), records[0].Handle)
		require.Equal(t, uint16(smbiostest.SampleHandleDIMM1), records[1].Handle)
		for _, r := range records {
			require.Equal(t, uint8(17), r.Type)
		}
	})

	t.Run("dump", func(t *testing.T) {
		out, err := run(t, []string{"--format=dump"}, "1")
		require.NoError(t, err)
		require.Contains(t, out, "SN-123456")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := run(t, nil, "x")
		require.True(t, errors.As(err, &commands.ErrArgs{}))

		_, err = run(t, []string{"--format=yaml"})
		require.True(t, errors.As(err, &commands.ErrArgs{}))
	})
}
