package smbiostest

import (
	"bytes"
	"testing"

	gosmbios "github.com/digitalocean/go-smbios/smbios"
	"github.com/stretchr/testify/require"
)

func TestSampleTableIsDecodableByGoSMBIOS(t *testing.T) {
	b := SampleTable()

	ss, err := gosmbios.NewDecoder(bytes.NewReader(b.Bytes())).Decode()
	require.NoError(t, err)
	require.Len(t, ss, b.Count())

	require.Equal(t, uint8(1), ss[1].Header.Type)
	require.Equal(t, uint16(SampleHandleSystem), ss[1].Header.Handle)
	require.Equal(t, []string{"Acme", "X100", "1.0", "SN-123456", "SKU-42", "Servers"}, ss[1].Strings)
	require.Len(t, ss[1].Formatted, 0x1B-4)

	last := ss[len(ss)-1]
	require.Equal(t, uint8(127), last.Header.Type)
	require.Empty(t, last.Strings)
}

func TestEntryPointsAreParsableByGoSMBIOS(t *testing.T) {
	b := SampleTable()

	t.Run("smbios3", func(t *testing.T) {
		ep, err := gosmbios.ParseEntryPoint(bytes.NewReader(b.EntryPoint3(3, 2)))
		require.NoError(t, err)
		major, minor, _ := ep.Version()
		require.Equal(t, 3, major)
		require.Equal(t, 2, minor)
		_, size := ep.Table()
		require.Equal(t, len(b.Bytes()), size)
	})

	t.Run("legacy", func(t *testing.T) {
		ep, err := gosmbios.ParseEntryPoint(bytes.NewReader(b.EntryPoint2(2, 7)))
		require.NoError(t, err)
		ep32, ok := ep.(*gosmbios.EntryPoint32Bit)
		require.True(t, ok)
		require.Equal(t, uint16(b.Count()), ep32.NumberStructures)
		addr, size := ep.Table()
		require.Equal(t, 0xE8000, addr)
		require.Equal(t, len(b.Bytes()), size)
	})
}

func TestFormatted(t *testing.T) {
	f := NewFormatted(0x0C).U8(0x04, 1).U16(0x05, 0x0302).U32(0x07, 0x07060504).Bytes(0x0B, []byte{8})
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, f.Data())

	require.Equal(t,
		[]byte{200, 5, 0x34, 0x12, 0xAA, 'x', 0, 'y', 0, 0},
		EncodeStructure(200, 5, 0x1234, []byte{0xAA}, "x", "y"),
	)
	require.Equal(t,
		[]byte{127, 4, 1, 0, 0, 0},
		EncodeStructure(127, 4, 1, nil),
	)
}
