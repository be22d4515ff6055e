package firmwaretable

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

func TestParseSystab(t *testing.T) {
	t.Run("smbios3_preferred", func(t *testing.T) {
		addr, err := parseSystab([]byte("ACPI20=0x7affe014\nACPI=0x7affe000\nSMBIOS=0xf0000\nSMBIOS3=0x7aeb6000\n"))
		require.NoError(t, err)
		require.Equal(t, uint64(0x7aeb6000), addr)
	})

	t.Run("legacy_only", func(t *testing.T) {
		addr, err := parseSystab([]byte("ACPI20=0x7affe014\nSMBIOS=0xf0000\n"))
		require.NoError(t, err)
		require.Equal(t, uint64(0xf0000), addr)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := parseSystab([]byte("ACPI20=0x7affe014\n"))
		require.True(t, errors.As(err, &ErrNotFound{}), err)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := parseSystab([]byte("SMBIOS3=0xzz\n"))
		require.Error(t, err)
	})
}

type devMemFixture struct {
	dir   string
	table []byte
	count int
}

func newDevMemFixture(t *testing.T, entryPointAddr, tableAddr int64) devMemFixture {
	b := smbiostest.SampleTable()
	table := b.Bytes()

	ep := smbios.NewEntryPoint3(smbios.Version{Major: 3, Minor: 1}, uint32(len(table)))
	ep.TableAddress = uint64(tableAddr)
	epBytes, err := ep.MarshalBinary()
	require.NoError(t, err)

	mem := make([]byte, int(tableAddr)+len(table)+0x100)
	copy(mem[entryPointAddr:], epBytes)
	copy(mem[tableAddr:], table)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mem"), mem)
	writeFile(t, filepath.Join(dir, "systab"), []byte("ACPI20=0x7affe014\nSMBIOS3=0x100\n"))
	writeFile(t, filepath.Join(dir, "iomem"), []byte("00000000-0000ffff : Reserved\n00010000-0001ffff : System RAM\n"))
	return devMemFixture{dir: dir, table: table, count: b.Count()}
}

func (f devMemFixture) provider(opts ...Option) *DevMem {
	return NewDevMem(append([]Option{
		OptionDevMemPath(filepath.Join(f.dir, "mem")),
		OptionEFISystabPath(filepath.Join(f.dir, "systab")),
		OptionIOMemPath(filepath.Join(f.dir, "iomem")),
	}, opts...)...)
}

func TestDevMem(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		f := newDevMemFixture(t, 0x100, 0x400)

		entryPoint, table, err := f.provider().AcquireTable(ctx)
		require.NoError(t, err)
		require.Len(t, entryPoint, smbios.EntryPointSMBIOS3Size)
		require.Equal(t, f.table, table)

		store, err := smbios.Scan(ctx, entryPoint, table)
		require.NoError(t, err)
		require.Equal(t, f.count, store.Len())
	})

	t.Run("iomem_unreadable", func(t *testing.T) {
		f := newDevMemFixture(t, 0x100, 0x400)

		_, table, err := f.provider(OptionIOMemPath(filepath.Join(f.dir, "nonexistent"))).AcquireTable(ctx)
		require.NoError(t, err)
		require.Equal(t, f.table, table)
	})

	t.Run("range_not_in_iomem", func(t *testing.T) {
		f := newDevMemFixture(t, 0x100, 0x400)
		writeFile(t, filepath.Join(f.dir, "iomem"), []byte("00010000-0001ffff : System RAM\n"))

		_, _, err := f.provider().AcquireTable(ctx)
		require.True(t, errors.As(err, &ErrNotFound{}), err)
	})

	t.Run("no_entry_point_at_address", func(t *testing.T) {
		f := newDevMemFixture(t, 0x100, 0x400)
		writeFile(t, filepath.Join(f.dir, "systab"), []byte("SMBIOS3=0x200\n"))

		_, _, err := f.provider().AcquireTable(ctx)
		require.True(t, errors.As(err, &ErrNotFound{}), err)
		require.True(t, errors.As(err, &smbios.ErrInvalidEntryPoint{}), err)
	})

	t.Run("table_beyond_memory", func(t *testing.T) {
		f := newDevMemFixture(t, 0x100, 0x400)
		mem, err := os.ReadFile(filepath.Join(f.dir, "mem"))
		require.NoError(t, err)
		writeFile(t, filepath.Join(f.dir, "mem"), mem[:0x400+len(f.table)/2])

		_, _, err = f.provider().AcquireTable(ctx)
		require.True(t, errors.As(err, &ErrNotFound{}), err)
	})

	t.Run("max_table_size", func(t *testing.T) {
		f := newDevMemFixture(t, 0x100, 0x400)

		_, table, err := f.provider(OptionMaxTableSize(0x10)).AcquireTable(ctx)
		require.NoError(t, err)
		require.Equal(t, f.table[:0x10], table)
	})
}
