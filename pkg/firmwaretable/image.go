package firmwaretable

import (
	"context"

	"github.com/immune-gmbh/hwinventory/pkg/uefi"
)

// FirmwareImage extracts the table built into a UEFI firmware image
// (the SMBIOS static data file). The entry point is synthesized.
type FirmwareImage struct {
	Image  []byte
	Config config
}

var _ Provider = (*FirmwareImage)(nil)

// NewFirmwareImage returns a new instance of FirmwareImage.
func NewFirmwareImage(image []byte, opts ...Option) *FirmwareImage {
	return &FirmwareImage{Image: image, Config: getConfig(opts...)}
}

// AcquireTable implements Provider.
func (p *FirmwareImage) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	table, err := uefi.SMBIOSStaticDataFromImage(p.Image)
	if err != nil {
		return nil, nil, ErrNotFound{Source: "firmware image", Err: err}
	}
	entryPoint, err := synthesizeEntryPoint(p.Config.Version, table)
	if err != nil {
		return nil, nil, err
	}
	return entryPoint, table, nil
}
