package uefi

import (
	"errors"
	"testing"

	"github.com/linuxboot/fiano/pkg/guid"
	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
	"github.com/immune-gmbh/hwinventory/pkg/uefi/uefitest"
)

func TestSMBIOSStaticDataFromImage(t *testing.T) {
	table := smbiostest.SampleTable().Bytes()

	t.Run("ok", func(t *testing.T) {
		image := uefitest.NewFirmwareVolume(GUIDSMBIOSStaticData, table)

		data, err := SMBIOSStaticDataFromImage(image)
		require.NoError(t, err)
		require.Equal(t, table, data)
	})

	t.Run("no_static_data_file", func(t *testing.T) {
		image := uefitest.NewFirmwareVolume(*guid.MustParse(`0B2A1C3D-4E5F-4A6B-8C7D-9E0F1A2B3C4D`), table)

		_, err := SMBIOSStaticDataFromImage(image)
		require.Error(t, err)
		require.True(t, errors.As(err, &ErrFindSMBIOSStaticData{}), err)
	})

	t.Run("empty_image", func(t *testing.T) {
		_, err := SMBIOSStaticDataFromImage(nil)
		require.Error(t, err)
	})
}

func TestGUIDSMBIOSStaticData(t *testing.T) {
	require.Equal(t, "DAF4BF89-CE71-4917-B522-C89D32FBC59F", GUIDSMBIOSStaticData.String())
}
