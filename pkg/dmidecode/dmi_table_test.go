package dmidecode

import (
	"bytes"
	"context"
	"sort"
	"testing"

	gosmbios "github.com/digitalocean/go-smbios/smbios"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-facebook/go-dmidecode"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

func TestStructures(t *testing.T) {
	ctx := context.Background()
	b := smbiostest.SampleTable()

	store, err := smbios.Scan(ctx, b.EntryPoint3(3, 2), b.Bytes())
	require.NoError(t, err)

	expected, err := gosmbios.NewDecoder(bytes.NewReader(b.Bytes())).Decode()
	require.NoError(t, err)

	actual := Structures(store)
	require.Len(t, actual, len(expected))
	for idx := range expected {
		require.Equal(t, expected[idx].Header, actual[idx].Header, idx)
		require.True(t, bytes.Equal(expected[idx].Formatted, actual[idx].Formatted), idx)
		require.Len(t, actual[idx].Strings, len(expected[idx].Strings), idx)
		for strIdx, s := range expected[idx].Strings {
			require.Equal(t, s, actual[idx].Strings[strIdx])
		}
	}

	t.Run("copy", func(t *testing.T) {
		ss := Structures(store)
		ss[0].Formatted[0] ^= 0xFF
		bios, ok := store.BIOS()
		require.True(t, ok)
		require.NotEqual(t, ss[0].Formatted[0], bios.Raw().Formatted[0])
	})
}

func TestDMITableFromProvider(t *testing.T) {
	ctx := context.Background()
	b := smbiostest.SampleTable()

	t.Run("ok", func(t *testing.T) {
		dmiTable, err := DMITableFromProvider(ctx, firmwaretable.ProviderFunc(func(ctx context.Context) ([]byte, []byte, error) {
			return b.EntryPoint3(3, 2), b.Bytes(), nil
		}))
		require.NoError(t, err)
		require.Len(t, dmiTable.SMBIOSStructs, b.Count())

		major, minor, _ := dmiTable.EntryPoint.Version()
		require.Equal(t, [2]int{3, 2}, [2]int{major, minor})
		_, size := dmiTable.EntryPoint.Table()
		require.Equal(t, len(b.Bytes()), size)
	})

	t.Run("error", func(t *testing.T) {
		_, err := DMITableFromProvider(ctx, firmwaretable.ProviderFunc(func(ctx context.Context) ([]byte, []byte, error) {
			return nil, nil, firmwaretable.ErrNotFound{Source: "unit-test"}
		}))
		require.Error(t, err)
		require.ErrorAs(t, err, &ErrDMITable{})
	})
}

func TestValue(t *testing.T) {
	ctx := context.Background()
	b := smbiostest.SampleTable()

	newTable := func(t *testing.T, entryPoint, table []byte) *DMITable {
		store, err := smbios.Scan(ctx, entryPoint, table)
		require.NoError(t, err)
		dmiTable, err := DMITableFromRecordStore(store)
		require.NoError(t, err)
		return dmiTable
	}

	t.Run("sample", func(t *testing.T) {
		dmiTable := newTable(t, b.EntryPoint3(3, 2), b.Bytes())
		for keyword, expected := range map[Keyword]string{
			dmidecode.KeywordBIOSVendor:         "American Megatrends Inc.",
			dmidecode.KeywordBIOSVersion:        "F.42",
			dmidecode.KeywordBIOSReleaseDate:    "03/14/2023",
			dmidecode.KeywordSystemManufacturer: "Acme",
			dmidecode.KeywordSystemSerialNumber: "SN-123456",
			dmidecode.KeywordSystemFamily:       "Servers",
			dmidecode.KeywordSystemUUID:         smbiostest.SampleSystemUUID,
		} {
			value, ok := dmiTable.Value(keyword)
			require.True(t, ok, keyword)
			require.Equal(t, expected, value, keyword)
		}

		_, ok := dmiTable.Value(Keyword("no-such-keyword"))
		require.False(t, ok)
	})

	t.Run("legacy_uuid_byte_order", func(t *testing.T) {
		dmiTable := newTable(t, b.EntryPoint2(2, 4), b.Bytes())
		value, ok := dmiTable.Value(dmidecode.KeywordSystemUUID)
		require.True(t, ok)
		require.Equal(t, "33221100-5544-7766-8899-aabbccddeeff", value)
	})

	t.Run("short_and_missing_structures", func(t *testing.T) {
		short := smbiostest.NewTableBuilder().
			Add(1, 0x0001, smbiostest.NewFormatted(0x08).U8(0x04, 1), "Acme").
			EndOfTable(0x0002)
		dmiTable := newTable(t, short.EntryPoint3(3, 2), short.Bytes())

		value, ok := dmiTable.Value(dmidecode.KeywordSystemManufacturer)
		require.True(t, ok)
		require.Equal(t, "Acme", value)

		_, ok = dmiTable.Value(dmidecode.KeywordSystemUUID)
		require.False(t, ok)
		_, ok = dmiTable.Value(dmidecode.KeywordBIOSVendor)
		require.False(t, ok)
	})
}

func TestKeywords(t *testing.T) {
	keywords := Keywords()
	require.Len(t, keywords, len(dmidecode.Table))
	require.True(t, sort.SliceIsSorted(keywords, func(i, j int) bool {
		return keywords[i] < keywords[j]
	}))
	require.True(t, IsKeyword(dmidecode.KeywordChassisType))
	require.False(t, IsKeyword(Keyword("chassis")))
}
