package firmwaretable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
	"github.com/immune-gmbh/hwinventory/pkg/uefi"
	"github.com/immune-gmbh/hwinventory/pkg/uefi/uefitest"
)

func TestFirmwareImage(t *testing.T) {
	ctx := context.Background()
	b := smbiostest.SampleTable()
	image := uefitest.NewFirmwareVolume(uefi.GUIDSMBIOSStaticData, b.Bytes())

	t.Run("ok", func(t *testing.T) {
		entryPoint, table, err := NewFirmwareImage(image).AcquireTable(ctx)
		require.NoError(t, err)
		require.Equal(t, b.Bytes(), table)

		store, err := smbios.Scan(ctx, entryPoint, table)
		require.NoError(t, err)
		require.Equal(t, b.Count(), store.Len())
		require.Equal(t, DefaultVersion, store.Version())

		system, ok := store.System()
		require.True(t, ok)
		require.Equal(t, "SN-123456", system.SerialNumber)
		require.Equal(t, smbiostest.SampleSystemUUID, system.UUID.String())
	})

	t.Run("version_option", func(t *testing.T) {
		store, err := Scan(ctx, NewFirmwareImage(image, OptionVersion(smbios.Version{Major: 3, Minor: 5})))
		require.NoError(t, err)
		require.Equal(t, smbios.Version{Major: 3, Minor: 5}, store.Version())
		require.Len(t, store.MemoryDevices(), 2)
	})

	t.Run("zero_filled_image", func(t *testing.T) {
		_, _, err := NewFirmwareImage(make([]byte, 4096)).AcquireTable(ctx)
		require.Error(t, err)
		require.True(t, errors.As(err, &ErrNotFound{}), err)
	})
}
