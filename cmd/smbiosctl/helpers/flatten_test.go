package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestFlatten(t *testing.T) {
	doc := gjson.Parse(`{"bios":{"vendor":"ACME","releaseDate":"01/02/2023"},"oemStrings":["a","b"],"empty":{}}`)

	fields := Flatten(doc)
	require.Len(t, fields, 4)

	require.Equal(t, "bios.vendor", fields[0].Key())
	require.Equal(t, "BIOS_VENDOR", fields[0].EnvKey())
	require.Equal(t, "ACME", fields[0].Value.String())

	require.Equal(t, "bios.releaseDate", fields[1].Key())
	require.Equal(t, "BIOS_RELEASE_DATE", fields[1].EnvKey())

	require.Equal(t, []string{"oemStrings", "0"}, fields[2].Path)
	require.Equal(t, "a", fields[2].Value.String())
	require.Equal(t, []string{"oemStrings", "1"}, fields[3].Path)
	require.Equal(t, "OEM_STRINGS_1", fields[3].EnvKey())

	t.Run("prefix", func(t *testing.T) {
		fields := Flatten(gjson.Parse(`{"vendor":"ACME"}`), "bios")
		require.Len(t, fields, 1)
		require.Equal(t, "bios.vendor", fields[0].Key())
	})
	t.Run("scalar", func(t *testing.T) {
		fields := Flatten(gjson.Parse(`42`), "value")
		require.Len(t, fields, 1)
		require.Equal(t, int64(42), fields[0].Value.Int())
	})
}
