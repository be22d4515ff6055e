package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

func TestParseVersion(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := ParseVersion("2.8")
		require.NoError(t, err)
		require.Equal(t, smbios.Version{Major: 2, Minor: 8}, v)
	})
	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "3", "3.x", "256.0", "-1.0"} {
			_, err := ParseVersion(s)
			require.Error(t, err, s)
		}
	})
}

func TestNewProvider(t *testing.T) {
	t.Run("dump_dir", func(t *testing.T) {
		params := ProviderParams{DumpDir: t.TempDir()}
		require.False(t, params.IsLocal())
		provider, err := NewProvider(params)
		require.NoError(t, err)
		require.IsType(t, &firmwaretable.Files{}, provider)
	})
	t.Run("image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "image.bin")
		require.NoError(t, os.WriteFile(path, []byte{0xFF}, 0600))
		provider, err := NewProvider(ProviderParams{ImagePath: path})
		require.NoError(t, err)
		require.IsType(t, &firmwaretable.FirmwareImage{}, provider)
	})
	t.Run("image_missing", func(t *testing.T) {
		_, err := NewProvider(ProviderParams{ImagePath: filepath.Join(t.TempDir(), "nope")})
		require.Error(t, err)
	})
	t.Run("both", func(t *testing.T) {
		_, err := NewProvider(ProviderParams{DumpDir: "a", ImagePath: "b"})
		require.Error(t, err)
	})
	t.Run("sources", func(t *testing.T) {
		require.True(t, ProviderParams{}.IsLocal())

		provider, err := NewProvider(ProviderParams{Source: "SysFS"})
		require.NoError(t, err)
		require.IsType(t, &firmwaretable.SysFS{}, provider)

		provider, err = NewProvider(ProviderParams{Source: SourceDevMem})
		require.NoError(t, err)
		require.IsType(t, &firmwaretable.DevMem{}, provider)

		provider, err = NewProvider(ProviderParams{Source: SourceAuto})
		require.NoError(t, err)
		require.NotNil(t, provider)

		_, err = NewProvider(ProviderParams{Source: "stream"})
		require.Error(t, err)
	})
}
